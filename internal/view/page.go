// Package view turns the attendance roster into the operator page.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/cmlabs-hris/student-attendance/internal/domain/attendance"
)

// Placeholder is shown for a timestamp that has not happened yet.
const Placeholder = "-"

const timeLayout = "15:04:05"

//go:embed templates/*.html
var templateFS embed.FS

// Page is everything the attendance page renders.
type Page struct {
	Title    string
	Counters attendance.CountersResponse
	Rows     []Row
}

// Row is one record in the list. ShowCheckOut is derived from IsPresent only.
type Row struct {
	ID           string
	Identifier   string
	Name         string
	CheckInTime  string
	CheckOutTime string
	ShowCheckOut bool
}

// BuildPage derives the page model from a roster snapshot. Times are shown
// in loc; a nil loc means UTC.
func BuildPage(title string, r attendance.Roster, loc *time.Location) Page {
	if loc == nil {
		loc = time.UTC
	}

	records := r.Records()
	page := Page{
		Title:    title,
		Counters: attendance.NewCountersResponse(r),
		Rows:     make([]Row, 0, len(records)),
	}
	for _, rec := range records {
		page.Rows = append(page.Rows, Row{
			ID:           rec.ID,
			Identifier:   rec.Identifier,
			Name:         rec.DisplayName,
			CheckInTime:  formatTime(&rec.CheckInAt, loc),
			CheckOutTime: formatTime(rec.CheckOutAt, loc),
			ShowCheckOut: rec.IsPresent,
		})
	}
	return page
}

func formatTime(t *time.Time, loc *time.Location) string {
	if t == nil || t.IsZero() {
		return Placeholder
	}
	return t.In(loc).Format(timeLayout)
}

// Renderer executes the embedded page template.
type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render writes the full HTML page.
func (r *Renderer) Render(w io.Writer, page Page) error {
	if err := r.tmpl.ExecuteTemplate(w, "index.html", page); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}
