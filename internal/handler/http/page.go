package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/student-attendance/internal/domain/attendance"
	"github.com/cmlabs-hris/student-attendance/internal/view"
)

// PageHandler serves the operator page and its live update stream
type PageHandler interface {
	Index(w http.ResponseWriter, r *http.Request)
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

// PageOptions configures the operator page
type PageOptions struct {
	Title     string
	Location  *time.Location
	KeepAlive time.Duration
}

type pageHandlerImpl struct {
	attendanceService attendance.AttendanceService
	renderer          *view.Renderer
	opts              PageOptions
}

func NewPageHandler(attendanceService attendance.AttendanceService, renderer *view.Renderer, opts PageOptions) PageHandler {
	if opts.KeepAlive <= 0 {
		opts.KeepAlive = 30 * time.Second
	}
	return &pageHandlerImpl{
		attendanceService: attendanceService,
		renderer:          renderer,
		opts:              opts,
	}
}

// Index implements PageHandler.
func (h *pageHandlerImpl) Index(w http.ResponseWriter, r *http.Request) {
	roster := h.attendanceService.Roster(r.Context())
	page := view.BuildPage(h.opts.Title, roster, h.opts.Location)

	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, page); err != nil {
		slog.Error("Failed to render attendance page", "error", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}

// CheckIn implements PageHandler.
func (h *pageHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form data", http.StatusBadRequest)
		return
	}

	req := attendance.CheckInRequest{
		Identifier: formValue(r, "identifier"),
		Name:       formValue(r, "name"),
	}
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	if _, err := h.attendanceService.CheckIn(r.Context(), *req.Identifier, *req.Name); err != nil {
		slog.Error("Failed to check in", "error", err)
		http.Error(w, "Failed to check in", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// CheckOut implements PageHandler. Unknown or already checked out targets
// are ignored and the page is simply shown again.
func (h *pageHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form data", http.StatusBadRequest)
		return
	}

	var err error
	if id := formValue(r, "record_id"); id != nil {
		_, err = h.attendanceService.CheckOutRecord(r.Context(), *id)
	} else {
		req := attendance.CheckOutRequest{Identifier: formValue(r, "identifier")}
		if vErr := req.Validate(); vErr != nil {
			http.Error(w, vErr.Error(), http.StatusUnprocessableEntity)
			return
		}
		_, err = h.attendanceService.CheckOut(r.Context(), *req.Identifier)
	}

	if err != nil && !errors.Is(err, attendance.ErrRecordNotFound) && !errors.Is(err, attendance.ErrAlreadyCheckedOut) {
		slog.Error("Failed to check out", "error", err)
		http.Error(w, "Failed to check out", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Stream implements PageHandler. It pushes the counters to open pages each
// time the roster changes.
func (h *pageHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	// Check if streaming is supported
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	ctx := r.Context()
	events, cleanup := h.attendanceService.Subscribe(ctx)
	defer cleanup()

	// Send the current state so a page opened before a change is not stale
	counters := attendance.NewCountersResponse(h.attendanceService.Roster(ctx))
	if err := writeEvent(w, "connected", counters); err != nil {
		return
	}
	flusher.Flush()

	keepalive := time.NewTicker(h.opts.KeepAlive)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := writeEvent(w, event.Event, event.Data); err != nil {
				slog.Debug("SSE client went away", "error", err)
				return
			}
			flusher.Flush()

		case <-keepalive.C:
			if err := writeEvent(w, "ping", map[string]int64{"timestamp": time.Now().Unix()}); err != nil {
				slog.Debug("SSE client went away", "error", err)
				return
			}
			flusher.Flush()

		case <-ctx.Done():
			return
		}
	}
}

func writeEvent(w http.ResponseWriter, name string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, payload)
	return err
}

// formValue returns nil when the field was not submitted at all.
func formValue(r *http.Request, key string) *string {
	values, ok := r.PostForm[key]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}
