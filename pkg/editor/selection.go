package editor

import (
	"github.com/nodenet-io/nodenet/pkg/model"
)

// Toggle flips a row in or out of the selection and recomputes the stable
// mode from the new size. Emptying the selection also clears any pending
// bulk action option. A sticky mode stays put: it is left through Cancel
// or a commit, never through a selection change.
func (e *Editor) Toggle(row *InterfaceRow) {
	key := row.Key()
	if e.selected[key] {
		delete(e.selected, key)
	} else {
		e.selected[key] = true
	}
	if !e.mode.Sticky() {
		e.recomputeMode()
	}
}

// ToggleAll selects every row, or clears the selection when every row is
// already selected.
func (e *Editor) ToggleAll() {
	if len(e.selected) == len(e.rows) && len(e.rows) > 0 {
		e.selected = make(map[string]bool)
	} else {
		for _, row := range e.rows {
			e.selected[row.Key()] = true
		}
	}
	if !e.mode.Sticky() {
		e.recomputeMode()
	}
}

// ClearSelection deselects everything and, outside a sticky mode, returns
// to the none mode.
func (e *Editor) ClearSelection() {
	e.selected = make(map[string]bool)
	if !e.mode.Sticky() {
		e.recomputeMode()
	}
}

// IsSelected reports whether the row is selected.
func (e *Editor) IsSelected(row *InterfaceRow) bool {
	return e.selected[row.Key()]
}

// IsOnlySelected reports whether the row is the single selected row.
func (e *Editor) IsOnlySelected(row *InterfaceRow) bool {
	return len(e.selected) == 1 && e.selected[row.Key()]
}

// SelectedRows returns the selected rows in row-list order.
func (e *Editor) SelectedRows() []*InterfaceRow {
	var out []*InterfaceRow
	for _, row := range e.rows {
		if e.selected[row.Key()] {
			out = append(out, row)
		}
	}
	return out
}

// SetActionOption records the bulk action chosen for the current
// selection. It is cleared automatically when the selection empties.
func (e *Editor) SetActionOption(option string) {
	e.actionOption = option
}

// ActionOption returns the pending bulk action option.
func (e *Editor) ActionOption() string {
	return e.actionOption
}

// QuickAdd selects exactly the given row and opens the add form for it,
// inferring the child type: alias when possible, VLAN otherwise.
func (e *Editor) QuickAdd(row *InterfaceRow) {
	e.selected = map[string]bool{row.Key(): true}
	kind := model.TypeVLAN
	if e.CanAddAlias(row) {
		kind = model.TypeAlias
	}
	e.Add(kind, row)
}

// QuickRemove selects exactly the given row and enters delete mode.
func (e *Editor) QuickRemove(row *InterfaceRow) {
	e.selected = map[string]bool{row.Key(): true}
	e.mode = ModeDelete
}

// Cancel abandons whichever draft is open and returns to the stable mode
// the user came from: single after an interface draft, multi after a bond
// draft.
func (e *Editor) Cancel() {
	switch {
	case e.draft != nil:
		e.draft = nil
		e.mode = ModeSingle
	case e.bondDraft != nil:
		e.bondDraft = nil
		e.mode = ModeMulti
	default:
		e.recomputeMode()
	}
}

// recomputeMode derives the stable mode from the selection size. An empty
// selection also drops the pending bulk action option.
func (e *Editor) recomputeMode() {
	e.mode = deriveMode(len(e.selected))
	if e.mode == ModeNone {
		e.actionOption = ""
	}
}
