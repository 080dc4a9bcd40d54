package core

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/rs/zerolog"
)

type recordingModule struct {
	name string
	fail bool
	log  *[]string
}

func (r recordingModule) Name() string { return r.name }

func (r recordingModule) Start(context.Context) error {
	if r.fail {
		return errors.New("boom")
	}
	*r.log = append(*r.log, "start "+r.name)
	return nil
}

func (r recordingModule) Stop(context.Context) {
	*r.log = append(*r.log, "stop "+r.name)
}

func TestManagerStartStopOrder(t *testing.T) {
	var log []string
	m := NewManager(zerolog.Nop(), recordingModule{name: "summarise", log: &log})
	if err := m.Add(recordingModule{name: "admin", log: &log}); err != nil {
		t.Fatal(err)
	}
	if err := m.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := m.Add(recordingModule{name: "late", log: &log}); err == nil {
		t.Error("Add after Start should fail")
	}
	if err := m.Start(context.Background()); err == nil {
		t.Error("second Start should fail")
	}
	m.Stop(context.Background())

	want := []string{"start summarise", "start admin", "stop admin", "stop summarise"}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("log = %v", log)
	}
}

func TestManagerRollsBackOnFailure(t *testing.T) {
	var log []string
	m := NewManager(zerolog.Nop(),
		recordingModule{name: "summarise", log: &log},
		recordingModule{name: "admin", fail: true, log: &log},
	)
	if err := m.Start(context.Background()); err == nil {
		t.Fatal("expected start failure")
	}
	want := []string{"start summarise", "stop summarise"}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("log = %v", log)
	}
}
