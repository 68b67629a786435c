package controller

import (
	"context"
	"testing"
	"time"

	"github.com/jiegec/classroom-helper/bus"
	"github.com/jiegec/classroom-helper/config"
)

func TestDrainAppliesAllPendingMessagesInOneTick(t *testing.T) {
	// config.Init supplies the default bus buffer; a bare context would
	// give an unbuffered bus on which every Send is dropped.
	m := New(config.Init(context.Background()), testSettings(t), testRoster())
	before := len(m.statusLog) // New() already logs a startup summary line

	g := 88.5
	m.bus.Send(bus.Status("fetching ann"))
	m.bus.Send(bus.Grade(0, &g))
	m.bus.Send(bus.Status("fetching bob"))

	m.drain()

	if len(m.statusLog)-before != 2 {
		t.Fatalf("expected 2 status lines drained in one tick, got %d", len(m.statusLog)-before)
	}
	if m.roster[0].Blackbox == nil || *m.roster[0].Blackbox != 88.5 {
		t.Fatalf("expected grade message to set blackbox, got %+v", m.roster[0].Blackbox)
	}
}

func TestDrainIsNonBlockingOnEmptyBus(t *testing.T) {
	m := New(context.Background(), testSettings(t), testRoster())

	done := make(chan struct{})
	go func() {
		m.drain()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("drain blocked on an empty bus")
	}
}
