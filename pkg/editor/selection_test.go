package editor

import (
	"context"
	"testing"

	"github.com/nodenet-io/nodenet/internal/testutil"
	"github.com/nodenet-io/nodenet/pkg/model"
)

func threeNICs(e *Editor) []*InterfaceRow {
	return e.Reconcile(testutil.Wire(
		testutil.NIC(1, "eth0", testutil.VLANUntagged,
			testutil.StaticLink(10, testutil.SubnetMain, "192.168.122.10")),
		testutil.NIC(2, "eth1", testutil.VLANUntagged),
		testutil.NIC(3, "eth2", testutil.VLANTen),
	))
}

// ============================================================================
// Toggle / Mode Tests
// ============================================================================

func TestToggle_DrivesStableModes(t *testing.T) {
	e, _ := newTestEditor()
	rows := threeNICs(e)

	if e.Mode() != ModeNone {
		t.Fatalf("initial mode = %q, want none", e.Mode())
	}

	e.Toggle(rows[0])
	if e.Mode() != ModeSingle || !e.IsSelected(rows[0]) {
		t.Errorf("after one toggle: mode = %q, selected = %v", e.Mode(), e.IsSelected(rows[0]))
	}
	if !e.IsOnlySelected(rows[0]) {
		t.Error("IsOnlySelected() = false for the single selected row")
	}

	e.Toggle(rows[1])
	if e.Mode() != ModeMulti {
		t.Errorf("after two toggles: mode = %q, want multi", e.Mode())
	}
	if e.IsOnlySelected(rows[0]) {
		t.Error("IsOnlySelected() = true with two rows selected")
	}

	e.Toggle(rows[0])
	e.Toggle(rows[1])
	if e.Mode() != ModeNone {
		t.Errorf("after deselecting all: mode = %q, want none", e.Mode())
	}
}

func TestToggleAll(t *testing.T) {
	e, _ := newTestEditor()
	rows := threeNICs(e)

	e.ToggleAll()
	if len(e.SelectedRows()) != len(rows) {
		t.Fatalf("len(SelectedRows()) = %d, want %d", len(e.SelectedRows()), len(rows))
	}
	if e.Mode() != ModeMulti {
		t.Errorf("mode = %q, want multi", e.Mode())
	}

	// With everything selected a second toggle clears.
	e.ToggleAll()
	if len(e.SelectedRows()) != 0 {
		t.Errorf("len(SelectedRows()) = %d after clearing toggle, want 0", len(e.SelectedRows()))
	}
	if e.Mode() != ModeNone {
		t.Errorf("mode = %q, want none", e.Mode())
	}
}

func TestToggleAll_CompletesPartialSelection(t *testing.T) {
	e, _ := newTestEditor()
	rows := threeNICs(e)

	e.Toggle(rows[1])
	e.ToggleAll()
	if len(e.SelectedRows()) != len(rows) {
		t.Errorf("len(SelectedRows()) = %d, want %d", len(e.SelectedRows()), len(rows))
	}
}

func TestSelectedRows_FollowRowOrder(t *testing.T) {
	e, _ := newTestEditor()
	rows := threeNICs(e)

	e.Toggle(rows[2])
	e.Toggle(rows[0])

	selected := e.SelectedRows()
	if len(selected) != 2 || selected[0] != rows[0] || selected[1] != rows[2] {
		t.Errorf("SelectedRows() order = %v, want row-list order", selected)
	}
}

func TestClearSelection(t *testing.T) {
	e, _ := newTestEditor()
	rows := threeNICs(e)

	e.Toggle(rows[0])
	e.SetActionOption("delete")
	e.ClearSelection()

	if len(e.SelectedRows()) != 0 || e.Mode() != ModeNone {
		t.Errorf("after clear: %d selected, mode %q", len(e.SelectedRows()), e.Mode())
	}
	if e.ActionOption() != "" {
		t.Errorf("ActionOption() = %q after selection emptied, want empty", e.ActionOption())
	}
}

func TestActionOption_SurvivesWhileSelected(t *testing.T) {
	e, _ := newTestEditor()
	rows := threeNICs(e)

	e.Toggle(rows[0])
	e.Toggle(rows[1])
	e.SetActionOption("create-bond")

	e.Toggle(rows[1])
	if e.ActionOption() != "create-bond" {
		t.Errorf("ActionOption() = %q with one row still selected, want create-bond", e.ActionOption())
	}

	e.Toggle(rows[0])
	if e.ActionOption() != "" {
		t.Errorf("ActionOption() = %q with nothing selected, want empty", e.ActionOption())
	}
}

// ============================================================================
// Quick Action Tests
// ============================================================================

func TestQuickAdd_PrefersAlias(t *testing.T) {
	e, _ := newTestEditor()
	rows := threeNICs(e)

	e.QuickAdd(rows[0]) // eth0 has a static link
	if e.Mode() != ModeAdd {
		t.Fatalf("mode = %q, want add", e.Mode())
	}
	d := e.Draft()
	if d == nil || d.Kind != model.TypeAlias {
		t.Errorf("draft = %+v, want alias kind", d)
	}
	if !e.IsOnlySelected(rows[0]) {
		t.Error("QuickAdd did not narrow the selection to its row")
	}
}

func TestQuickAdd_FallsBackToVLAN(t *testing.T) {
	e, _ := newTestEditor()
	rows := threeNICs(e)

	e.QuickAdd(rows[1]) // eth1 has no links to alias against
	d := e.Draft()
	if d == nil || d.Kind != model.TypeVLAN {
		t.Errorf("draft = %+v, want vlan kind", d)
	}
}

func TestQuickAdd_ReplacesSelection(t *testing.T) {
	e, _ := newTestEditor()
	rows := threeNICs(e)

	e.Toggle(rows[1])
	e.Toggle(rows[2])
	e.QuickAdd(rows[0])

	if !e.IsOnlySelected(rows[0]) {
		t.Error("previous multi-selection survived QuickAdd")
	}
}

func TestQuickRemove(t *testing.T) {
	e, _ := newTestEditor()
	rows := threeNICs(e)

	e.Toggle(rows[1])
	e.QuickRemove(rows[0])

	if e.Mode() != ModeDelete {
		t.Errorf("mode = %q, want delete", e.Mode())
	}
	if !e.IsOnlySelected(rows[0]) {
		t.Error("QuickRemove did not narrow the selection to its row")
	}
}

func TestToggle_AddModeSurvivesSelectionChange(t *testing.T) {
	e, _ := newTestEditor()
	rows := threeNICs(e)

	e.QuickAdd(rows[0])
	e.Toggle(rows[1])

	if e.Mode() != ModeAdd {
		t.Errorf("mode = %q, want add", e.Mode())
	}
	if e.Draft() == nil {
		t.Error("selection change discarded the open draft")
	}

	e.Cancel()
	if e.Mode() != ModeSingle {
		t.Errorf("mode after Cancel = %q, want single", e.Mode())
	}
}

func TestToggle_CreateBondModeSurvivesSelectionChange(t *testing.T) {
	e, _ := newTestEditor()
	rows := threeNICs(e)

	e.Toggle(rows[0])
	e.Toggle(rows[1])
	if _, err := e.ShowCreateBond(); err != nil {
		t.Fatalf("ShowCreateBond() error = %v", err)
	}

	e.Toggle(rows[1])
	if e.Mode() != ModeCreateBond {
		t.Errorf("mode = %q, want create-bond", e.Mode())
	}
	if e.BondDraft() == nil {
		t.Error("selection change discarded the bond draft")
	}

	e.Cancel()
	if e.Mode() != ModeMulti {
		t.Errorf("mode after Cancel = %q, want multi", e.Mode())
	}
}

// ============================================================================
// Cancel Tests
// ============================================================================

func TestCancel_InterfaceDraftReturnsToSingle(t *testing.T) {
	e, _ := newTestEditor()
	rows := threeNICs(e)

	e.QuickAdd(rows[0])
	e.Cancel()

	if e.Draft() != nil {
		t.Error("draft survived Cancel")
	}
	if e.Mode() != ModeSingle {
		t.Errorf("mode = %q, want single", e.Mode())
	}
}

func TestCancel_BondDraftReturnsToMulti(t *testing.T) {
	e, _ := newTestEditor()
	rows := threeNICs(e)

	e.Toggle(rows[0])
	e.Toggle(rows[1])
	if _, err := e.ShowCreateBond(); err != nil {
		t.Fatalf("ShowCreateBond() error = %v", err)
	}
	e.Cancel()

	if e.BondDraft() != nil {
		t.Error("bond draft survived Cancel")
	}
	if e.Mode() != ModeMulti {
		t.Errorf("mode = %q, want multi", e.Mode())
	}
}

func TestCancel_DeleteModeRecomputes(t *testing.T) {
	e, _ := newTestEditor()
	rows := threeNICs(e)

	e.QuickRemove(rows[0])
	e.Cancel()

	if e.Mode() != ModeSingle {
		t.Errorf("mode = %q, want single (one row still selected)", e.Mode())
	}
}

// ============================================================================
// Removal Tests
// ============================================================================

func TestConfirmRemove_DeletesInterface(t *testing.T) {
	e, p := newTestEditor()
	rows := threeNICs(e)

	e.QuickRemove(rows[1])
	if err := e.ConfirmRemove(context.Background()); err != nil {
		t.Fatalf("ConfirmRemove() error = %v", err)
	}

	calls := p.CallsTo("delete_interface")
	if len(calls) != 1 || calls[0].ID != 2 || calls[0].Node != "abc123" {
		t.Errorf("delete_interface calls = %+v, want one for interface 2", calls)
	}
	if e.Mode() != ModeNone || len(e.SelectedRows()) != 0 {
		t.Errorf("after removal: mode %q, %d selected", e.Mode(), len(e.SelectedRows()))
	}
}

func TestConfirmRemove_AliasUnlinksOneSlot(t *testing.T) {
	e, p := newTestEditor()
	rows := e.Reconcile(testutil.Wire(testutil.NIC(1, "eth0", testutil.VLANUntagged,
		testutil.StaticLink(10, testutil.SubnetMain, "192.168.122.10"),
		testutil.AutoLink(11, testutil.SubnetSpare),
	)))

	e.QuickRemove(rows[1])
	if err := e.ConfirmRemove(context.Background()); err != nil {
		t.Fatalf("ConfirmRemove() error = %v", err)
	}

	calls := p.CallsTo("unlink_subnet")
	if len(calls) != 1 || calls[0].ID != 1 || calls[0].LinkID != 11 {
		t.Errorf("unlink_subnet calls = %+v, want one for 1/11", calls)
	}
	if len(p.CallsTo("delete_interface")) != 0 {
		t.Error("alias removal deleted the whole interface")
	}
}

func TestConfirmRemove_RequiresDeleteMode(t *testing.T) {
	e, p := newTestEditor()
	rows := threeNICs(e)

	e.Toggle(rows[0])
	if err := e.ConfirmRemove(context.Background()); err == nil {
		t.Error("ConfirmRemove() outside delete mode succeeded")
	}
	if len(p.Calls()) != 0 {
		t.Errorf("gateway called %d times, want 0", len(p.Calls()))
	}
}

func TestConfirmRemove_PersistenceErrorKeepsState(t *testing.T) {
	e, p := newTestEditor()
	rows := threeNICs(e)
	p.Err = context.DeadlineExceeded

	e.QuickRemove(rows[0])
	if err := e.ConfirmRemove(context.Background()); err == nil {
		t.Fatal("ConfirmRemove() error = nil, want the persistence error")
	}
	if e.Mode() != ModeDelete {
		t.Errorf("mode = %q after failed removal, want delete", e.Mode())
	}
	if !e.IsOnlySelected(rows[0]) {
		t.Error("selection cleared despite failed removal")
	}
}
