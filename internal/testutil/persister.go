package testutil

import (
	"context"
	"sync"

	"github.com/nodenet-io/nodenet/pkg/gateway"
)

// Call records one persistence invocation.
type Call struct {
	Op     string
	Node   string
	ID     int
	LinkID int
	Update gateway.UpdateInterfaceParams
	Link   gateway.LinkSubnetParams
	VLAN   gateway.CreateVLANParams
	Bond   gateway.CreateBondParams
}

// RecordingPersister implements gateway.Persister by recording every call.
// Setting Err makes all calls fail with it. Safe for concurrent use;
// reconciliation flushes arrive on dispatcher goroutines.
type RecordingPersister struct {
	mu    sync.Mutex
	calls []Call

	Err error
}

func (p *RecordingPersister) record(c Call) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, c)
	return p.Err
}

// Calls returns a copy of the recorded calls.
func (p *RecordingPersister) Calls() []Call {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Call(nil), p.calls...)
}

// CallsTo returns the recorded calls with the given op name.
func (p *RecordingPersister) CallsTo(op string) []Call {
	var out []Call
	for _, c := range p.Calls() {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

func (p *RecordingPersister) UpdateInterface(ctx context.Context, node string, id int, params gateway.UpdateInterfaceParams) error {
	return p.record(Call{Op: "update_interface", Node: node, ID: id, Update: params})
}

func (p *RecordingPersister) LinkSubnet(ctx context.Context, node string, id int, params gateway.LinkSubnetParams) error {
	return p.record(Call{Op: "link_subnet", Node: node, ID: id, Link: params})
}

func (p *RecordingPersister) UnlinkSubnet(ctx context.Context, node string, id, linkID int) error {
	return p.record(Call{Op: "unlink_subnet", Node: node, ID: id, LinkID: linkID})
}

func (p *RecordingPersister) DeleteInterface(ctx context.Context, node string, id int) error {
	return p.record(Call{Op: "delete_interface", Node: node, ID: id})
}

func (p *RecordingPersister) CreateVLANInterface(ctx context.Context, node string, params gateway.CreateVLANParams) error {
	return p.record(Call{Op: "create_vlan", Node: node, VLAN: params})
}

func (p *RecordingPersister) CreateBondInterface(ctx context.Context, node string, params gateway.CreateBondParams) error {
	return p.record(Call{Op: "create_bond", Node: node, Bond: params})
}
