package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/student-attendance/internal/domain/attendance"
	"github.com/cmlabs-hris/student-attendance/internal/pkg/sse"
	"github.com/google/uuid"
)

// rosterTopic is the hub topic every page subscribes to
const rosterTopic = "roster"

var _ attendance.AttendanceService = (*AttendanceServiceImpl)(nil)

// Option configures an AttendanceServiceImpl
type Option func(*AttendanceServiceImpl)

// WithClock overrides the time source used to stamp check-ins and check-outs.
func WithClock(now func() time.Time) Option {
	return func(s *AttendanceServiceImpl) {
		s.now = now
	}
}

// WithIDGenerator overrides record ID generation.
func WithIDGenerator(newID func() string) Option {
	return func(s *AttendanceServiceImpl) {
		s.newID = newID
	}
}

// WithLogger sets the logger. slog.Default() is used otherwise.
func WithLogger(logger *slog.Logger) Option {
	return func(s *AttendanceServiceImpl) {
		s.logger = logger
	}
}

// AttendanceServiceImpl keeps the session roster in memory. Every intent is
// applied under mu so mutations happen one at a time, in arrival order.
type AttendanceServiceImpl struct {
	mu     sync.Mutex
	roster attendance.Roster

	hub    *sse.Hub
	now    func() time.Time
	newID  func() string
	logger *slog.Logger
}

func NewAttendanceService(hub *sse.Hub, opts ...Option) *AttendanceServiceImpl {
	s := &AttendanceServiceImpl{
		hub:    hub,
		now:    time.Now,
		newID:  func() string { return uuid.NewString() },
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, identifier, displayName string) (attendance.Record, error) {
	s.mu.Lock()
	next, rec := attendance.CheckIn(s.roster, s.newID(), identifier, displayName, s.now())
	s.roster = next
	counters := attendance.NewCountersResponse(next)
	s.publish(counters)
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Student checked in",
		"record_id", rec.ID,
		"identifier", rec.Identifier,
		"present", counters.Present,
	)

	return rec, nil
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, identifier string) (attendance.Record, error) {
	return s.checkOut(ctx, "identifier", identifier, func(r attendance.Roster, now time.Time) (attendance.Roster, attendance.Record, error) {
		return attendance.CheckOut(r, identifier, now)
	})
}

// CheckOutRecord implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOutRecord(ctx context.Context, id string) (attendance.Record, error) {
	return s.checkOut(ctx, "record_id", id, func(r attendance.Roster, now time.Time) (attendance.Roster, attendance.Record, error) {
		return attendance.CheckOutByID(r, id, now)
	})
}

func (s *AttendanceServiceImpl) checkOut(
	ctx context.Context,
	key, value string,
	apply func(attendance.Roster, time.Time) (attendance.Roster, attendance.Record, error),
) (attendance.Record, error) {
	s.mu.Lock()
	next, rec, err := apply(s.roster, s.now())
	if err != nil {
		s.mu.Unlock()
		if errors.Is(err, attendance.ErrRecordNotFound) || errors.Is(err, attendance.ErrAlreadyCheckedOut) {
			s.logger.DebugContext(ctx, "Check-out ignored", key, value, "reason", err.Error())
			return attendance.Record{}, err
		}
		return attendance.Record{}, fmt.Errorf("failed to check out %s %q: %w", key, value, err)
	}
	s.roster = next
	counters := attendance.NewCountersResponse(next)
	s.publish(counters)
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Student checked out",
		"record_id", rec.ID,
		"identifier", rec.Identifier,
		"present", counters.Present,
	)

	return rec, nil
}

// Roster implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Roster(ctx context.Context) attendance.Roster {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roster
}

// Subscribe implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Subscribe(ctx context.Context) (<-chan attendance.SSEEvent, func()) {
	ch, cleanup := s.hub.Subscribe(rosterTopic)

	out := make(chan attendance.SSEEvent, 10)

	go func() {
		defer close(out)
		for {
			select {
			case event, ok := <-ch:
				if !ok {
					return
				}
				counters, ok := event.Data.(attendance.CountersResponse)
				if !ok {
					continue
				}
				select {
				case out <- attendance.SSEEvent{Event: event.Event, Data: counters}:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, cleanup
}

// publish must be called with mu held so subscribers see changes in order.
func (s *AttendanceServiceImpl) publish(counters attendance.CountersResponse) {
	s.hub.Publish(rosterTopic, sse.Event{
		Event: attendance.EventRosterChanged,
		Data:  counters,
	})
}
