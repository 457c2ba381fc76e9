package attendance

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/student-attendance/internal/domain/attendance"
	"github.com/cmlabs-hris/student-attendance/internal/pkg/sse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock advances one minute per reading
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Minute)
	return c.now
}

func newTestService(t *testing.T) (*AttendanceServiceImpl, *sse.Hub) {
	t.Helper()
	hub := sse.NewHub(10)
	clock := &fakeClock{now: time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)}
	seq := 0
	svc := NewAttendanceService(hub,
		WithClock(clock.Now),
		WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("rec-%d", seq)
		}),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	return svc, hub
}

func TestAttendanceService_CheckIn(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	rec, err := svc.CheckIn(ctx, "101", "Alice")
	require.NoError(t, err)

	assert.Equal(t, "rec-1", rec.ID)
	assert.True(t, rec.IsPresent)
	assert.False(t, rec.CheckInAt.IsZero())
	assert.Nil(t, rec.CheckOutAt)

	roster := svc.Roster(ctx)
	assert.Equal(t, 1, roster.Len())
	assert.Equal(t, 1, attendance.PresentCount(roster))
}

func TestAttendanceService_DefaultIDsAreUUIDs(t *testing.T) {
	svc := NewAttendanceService(sse.NewHub(1), WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

	a, err := svc.CheckIn(context.Background(), "101", "Alice")
	require.NoError(t, err)
	b, err := svc.CheckIn(context.Background(), "101", "Alice")
	require.NoError(t, err)

	assert.Len(t, a.ID, 36)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestAttendanceService_CheckOut(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	in, err := svc.CheckIn(ctx, "101", "Alice")
	require.NoError(t, err)

	out, err := svc.CheckOut(ctx, "101")
	require.NoError(t, err)

	assert.Equal(t, in.ID, out.ID)
	assert.False(t, out.IsPresent)
	require.NotNil(t, out.CheckOutAt)
	assert.True(t, out.CheckOutAt.After(in.CheckInAt))
}

func TestAttendanceService_CheckOutUnknownLeavesRosterUnchanged(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.CheckIn(ctx, "101", "Alice")
	require.NoError(t, err)
	before := svc.Roster(ctx)

	_, err = svc.CheckOut(ctx, "999")
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)

	after := svc.Roster(ctx)
	assert.Equal(t, before.Records(), after.Records())
	assert.Equal(t, before.CheckedOutTotal, after.CheckedOutTotal)
}

func TestAttendanceService_CheckOutRecord(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.CheckIn(ctx, "101", "Alice")
	require.NoError(t, err)
	second, err := svc.CheckIn(ctx, "101", "Alice")
	require.NoError(t, err)

	out, err := svc.CheckOutRecord(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, out.ID)

	_, err = svc.CheckOutRecord(ctx, second.ID)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)

	records := svc.Roster(ctx).Records()
	assert.True(t, records[0].IsPresent)
	assert.False(t, records[1].IsPresent)
}

func TestAttendanceService_Counters(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.CheckIn(ctx, "101", "Alice")
	require.NoError(t, err)
	_, err = svc.CheckIn(ctx, "102", "Bob")
	require.NoError(t, err)
	_, err = svc.CheckOut(ctx, "101")
	require.NoError(t, err)

	counters := attendance.NewCountersResponse(svc.Roster(ctx))
	assert.Equal(t, attendance.CountersResponse{Present: 1, CheckedIn: 2, CheckedOut: 1}, counters)
}

func TestAttendanceService_SubscribeReceivesChanges(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc, hub := newTestService(t)

	events, cleanup := svc.Subscribe(ctx)
	defer cleanup()
	require.Equal(t, 1, hub.SubscriberCount(rosterTopic))

	_, err := svc.CheckIn(ctx, "101", "Alice")
	require.NoError(t, err)
	_, err = svc.CheckOut(ctx, "101")
	require.NoError(t, err)
	// ignored check-outs do not notify
	_, _ = svc.CheckOut(ctx, "404")

	want := []attendance.CountersResponse{
		{Present: 1, CheckedIn: 1, CheckedOut: 0},
		{Present: 0, CheckedIn: 1, CheckedOut: 1},
	}
	for _, w := range want {
		select {
		case ev := <-events:
			assert.Equal(t, attendance.EventRosterChanged, ev.Event)
			assert.Equal(t, w, ev.Data)
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for roster event")
		}
	}

	select {
	case ev := <-events:
		t.Fatalf("unexpected event %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestAttendanceService_SubscribeStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	svc, hub := newTestService(t)

	events, cleanup := svc.Subscribe(ctx)
	cancel()

	select {
	case _, ok := <-events:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("subscription channel was not closed")
	}

	cleanup()
	assert.Equal(t, 0, hub.TotalSubscribers())
}

func TestAttendanceService_ConcurrentIntents(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("%d", i)
			_, _ = svc.CheckIn(ctx, id, "student "+id)
			_, _ = svc.CheckOut(ctx, id)
		}(i)
	}
	wg.Wait()

	roster := svc.Roster(ctx)
	assert.Equal(t, 50, roster.Len())
	assert.Equal(t, 50, roster.CheckedInTotal)
	assert.Equal(t, 50, roster.CheckedOutTotal)
	assert.Equal(t, 0, attendance.PresentCount(roster))
}
