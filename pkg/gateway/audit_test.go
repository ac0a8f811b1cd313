package gateway

import (
	"context"
	"errors"
	"testing"

	"github.com/nodenet-io/nodenet/pkg/audit"
	"github.com/nodenet-io/nodenet/pkg/model"
)

// stubPersister counts calls and optionally fails them.
type stubPersister struct {
	calls int
	err   error
}

func (s *stubPersister) bump() error { s.calls++; return s.err }

func (s *stubPersister) UpdateInterface(context.Context, string, int, UpdateInterfaceParams) error {
	return s.bump()
}
func (s *stubPersister) LinkSubnet(context.Context, string, int, LinkSubnetParams) error {
	return s.bump()
}
func (s *stubPersister) UnlinkSubnet(context.Context, string, int, int) error { return s.bump() }
func (s *stubPersister) DeleteInterface(context.Context, string, int) error   { return s.bump() }
func (s *stubPersister) CreateVLANInterface(context.Context, string, CreateVLANParams) error {
	return s.bump()
}
func (s *stubPersister) CreateBondInterface(context.Context, string, CreateBondParams) error {
	return s.bump()
}

// memLogger collects events in memory.
type memLogger struct {
	events []*audit.Event
}

func (m *memLogger) Log(e *audit.Event) error { m.events = append(m.events, e); return nil }
func (m *memLogger) Query(f audit.Filter) ([]*audit.Event, error) {
	return m.events, nil
}
func (m *memLogger) Close() error { return nil }

// ===================== Audit Decorator Tests =====================

func TestAuditedPersister_LogsEveryOperation(t *testing.T) {
	inner := &stubPersister{}
	log := &memLogger{}
	p := NewAuditedPersister(inner, log, "alice", true)
	ctx := context.Background()

	p.UpdateInterface(ctx, "abc123", 1, UpdateInterfaceParams{Name: "uplink0", VLAN: 5001})
	p.LinkSubnet(ctx, "abc123", 1, LinkSubnetParams{Mode: model.LinkModeDHCP, LinkID: 10})
	p.UnlinkSubnet(ctx, "abc123", 1, 11)
	p.DeleteInterface(ctx, "abc123", 2)
	p.CreateVLANInterface(ctx, "abc123", CreateVLANParams{Parent: 1, VLAN: 5002})
	p.CreateBondInterface(ctx, "abc123", CreateBondParams{Name: "bond0", Parents: []int{1, 2}})

	if inner.calls != 6 {
		t.Errorf("inner calls = %d, want 6", inner.calls)
	}
	if len(log.events) != 6 {
		t.Fatalf("logged events = %d, want 6", len(log.events))
	}

	wantOps := []string{
		"update_interface", "link_subnet", "unlink_subnet",
		"delete_interface", "create_vlan_interface", "create_bond_interface",
	}
	for i, op := range wantOps {
		e := log.events[i]
		if e.Operation != op {
			t.Errorf("events[%d].Operation = %q, want %q", i, e.Operation, op)
		}
		if e.Node != "abc123" || e.User != "alice" || !e.Success || !e.ExecuteMode {
			t.Errorf("events[%d] = %+v", i, e)
		}
	}

	if got := log.events[0].Fields["name"]; got != "uplink0" {
		t.Errorf("update fields name = %q, want uplink0", got)
	}
	if got := log.events[5].Fields["parents"]; got != "1,2" {
		t.Errorf("bond fields parents = %q, want 1,2", got)
	}
}

func TestAuditedPersister_RecordsFailure(t *testing.T) {
	wantErr := errors.New("queue full")
	inner := &stubPersister{err: wantErr}
	log := &memLogger{}
	p := NewAuditedPersister(inner, log, "alice", true)

	err := p.DeleteInterface(context.Background(), "abc123", 2)
	if !errors.Is(err, wantErr) {
		t.Fatalf("error = %v, want %v", err, wantErr)
	}

	if len(log.events) != 1 {
		t.Fatalf("logged events = %d, want 1", len(log.events))
	}
	e := log.events[0]
	if e.Success {
		t.Error("failed operation marked successful")
	}
	if e.Error != "queue full" {
		t.Errorf("Error = %q, want %q", e.Error, "queue full")
	}
}

func TestAuditedPersister_PreviewMode(t *testing.T) {
	log := &memLogger{}
	p := NewAuditedPersister(&stubPersister{}, log, "alice", false)

	p.LinkSubnet(context.Background(), "abc123", 1, LinkSubnetParams{Mode: model.LinkModeAuto, LinkID: -1})

	if log.events[0].ExecuteMode || !log.events[0].DryRun {
		t.Errorf("preview event = %+v, want dry_run", log.events[0])
	}
}
