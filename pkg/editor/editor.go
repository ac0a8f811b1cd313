// Package editor is the client-side state engine behind the node
// networking screen. It flattens the relationally-encoded interface list
// into UI-ready rows, and keeps in-progress edits (a draft interface, a
// draft bond, multi-row selection, an in-place field edit) consistent
// across re-derivations whenever the underlying topology changes.
package editor

import (
	"time"

	"github.com/nodenet-io/nodenet/pkg/gateway"
	"github.com/nodenet-io/nodenet/pkg/model"
)

// Lookup resolves topology references for row derivation. topology.Store
// satisfies it. VLANsOnFabric and SubnetsOnVLAN must return stable orders,
// and repeated lookups of the same id must return the same pointer within
// one topology generation; bond eligibility compares VLANs by identity.
type Lookup interface {
	FabricByID(id int) *model.Fabric
	VLANByID(id int) *model.VLAN
	SubnetByID(id int) *model.Subnet
	VLANsOnFabric(fabricID int) []*model.VLAN
	SubnetsOnVLAN(vlanID int) []*model.Subnet
}

// Mode is the interaction mode of the screen.
type Mode string

const (
	ModeNone       Mode = "none"
	ModeSingle     Mode = "single"
	ModeMulti      Mode = "multi"
	ModeAdd        Mode = "add"
	ModeDelete     Mode = "delete"
	ModeCreateBond Mode = "create-bond"
)

// Sticky reports whether the mode was entered by an explicit user action.
// Sticky modes survive selection changes and reconciliation; they are left
// only through Cancel, ConfirmRemove, AddInterface or AddBond.
func (m Mode) Sticky() bool {
	switch m {
	case ModeAdd, ModeDelete, ModeCreateBond:
		return true
	}
	return false
}

// deriveMode computes the stable mode for a selection size.
func deriveMode(selected int) Mode {
	switch selected {
	case 0:
		return ModeNone
	case 1:
		return ModeSingle
	}
	return ModeMulti
}

// Editor holds all derived and transient state for one node's networking
// screen. It is not safe for concurrent use; the host drives it from a
// single goroutine and calls Reconcile whenever the topology store
// reports a change.
type Editor struct {
	node   string
	lookup Lookup
	gw     gateway.Persister
	disp   *gateway.Dispatcher

	// Derived per reconciliation pass.
	rows     []*InterfaceRow
	original map[int]*model.RawInterface
	linksMap map[int]map[int]*InterfaceRow

	// Transient user state.
	selected     map[string]bool
	mode         Mode
	actionOption string
	focus        *InterfaceRow
	draft        *InterfaceDraft
	bondDraft    *BondDraft
}

// NewEditor creates an editor for the node with the given system id.
func NewEditor(node string, lookup Lookup, persister gateway.Persister) *Editor {
	return &Editor{
		node:     node,
		lookup:   lookup,
		gw:       persister,
		disp:     gateway.NewDispatcher(30 * time.Second),
		original: make(map[int]*model.RawInterface),
		linksMap: make(map[int]map[int]*InterfaceRow),
		selected: make(map[string]bool),
		mode:     ModeNone,
	}
}

// Node returns the system id of the node being edited.
func (e *Editor) Node() string {
	return e.node
}

// Rows returns the flattened row list of the last reconciliation pass.
func (e *Editor) Rows() []*InterfaceRow {
	return e.rows
}

// RowFor returns the row for an (interface id, link id) pair, or nil.
func (e *Editor) RowFor(id, linkID int) *InterfaceRow {
	return e.linksMap[id][linkID]
}

// OriginalInterface returns the snapshot record the last pass captured
// for an interface id, or nil. The snapshot is the diff baseline for
// field saves and is never mutated.
func (e *Editor) OriginalInterface(id int) *model.RawInterface {
	return e.original[id]
}

// Mode returns the current interaction mode.
func (e *Editor) Mode() Mode {
	return e.mode
}

// Draft returns the in-progress interface draft, or nil.
func (e *Editor) Draft() *InterfaceDraft {
	return e.draft
}

// BondDraft returns the in-progress bond draft, or nil.
func (e *Editor) BondDraft() *BondDraft {
	return e.bondDraft
}

// Wait blocks until every fire-and-forget flush has finished. Intended
// for shutdown and tests.
func (e *Editor) Wait() {
	e.disp.Wait()
}
