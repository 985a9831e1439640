package debounce_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/labgrid/equipment-booking-backend/internal/pkg/debounce"
)

func TestTriggerCoalescesBursts(t *testing.T) {
	d := debounce.New(20 * time.Millisecond)
	defer d.Stop()

	var calls atomic.Int32
	for i := 0; i < 10; i++ {
		d.Trigger(func() { calls.Add(1) })
		time.Sleep(2 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)
	if got := calls.Load(); got != 1 {
		t.Errorf("burst of triggers fired %d times, want 1", got)
	}
}

func TestNewerTriggerWins(t *testing.T) {
	d := debounce.New(20 * time.Millisecond)
	defer d.Stop()

	var got atomic.Int32
	d.Trigger(func() { got.Store(1) })
	d.Trigger(func() { got.Store(2) })

	time.Sleep(100 * time.Millisecond)
	if got.Load() != 2 {
		t.Errorf("got %d, want the newer trigger (2) to win", got.Load())
	}
}

func TestStopCancelsPending(t *testing.T) {
	d := debounce.New(20 * time.Millisecond)

	var calls atomic.Int32
	d.Trigger(func() { calls.Add(1) })
	d.Stop()

	time.Sleep(100 * time.Millisecond)
	if got := calls.Load(); got != 0 {
		t.Errorf("stopped debouncer fired %d times, want 0", got)
	}
}

func TestZeroIntervalUsesDefault(t *testing.T) {
	d := debounce.New(0)
	defer d.Stop()

	var calls atomic.Int32
	d.Trigger(func() { calls.Add(1) })

	time.Sleep(debounce.DefaultInterval / 2)
	if calls.Load() != 0 {
		t.Fatal("fired before the default interval elapsed")
	}
	time.Sleep(debounce.DefaultInterval)
	if calls.Load() != 1 {
		t.Fatal("did not fire after the default interval")
	}
}
