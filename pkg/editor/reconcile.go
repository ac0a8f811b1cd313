package editor

import (
	"github.com/nodenet-io/nodenet/pkg/model"
)

// Reconcile re-derives the flattened row list, lookup map and diff
// snapshot from the raw interface list, then revalidates every piece of
// transient state against the new rows. It is safe to call repeatedly
// with unchanged input: identical topology yields value-equal rows in the
// same order and no side effects beyond the rebuild itself.
func (e *Editor) Reconcile(raw []*model.RawInterface) []*InterfaceRow {
	// Snapshot before any derivation; the snapshot is the diff baseline
	// for every later field save.
	original := make(map[int]*model.RawInterface, len(raw))
	byID := make(map[int]*model.RawInterface, len(raw))
	for _, ri := range raw {
		original[ri.ID] = ri.Clone()
		byID[ri.ID] = ri
	}

	// Interfaces absorbed into a bond never appear as top-level rows.
	bonded := make(map[int]bool)
	for _, ri := range raw {
		if ri.Type == model.TypeBond {
			for _, pid := range ri.Parents {
				bonded[pid] = true
			}
		}
	}

	var rows []*InterfaceRow
	linksMap := make(map[int]map[int]*InterfaceRow)
	for _, ri := range raw {
		if bonded[ri.ID] {
			continue
		}
		for _, row := range e.expandRows(ri, byID) {
			rows = append(rows, row)
			m := linksMap[row.ID]
			if m == nil {
				m = make(map[int]*InterfaceRow)
				linksMap[row.ID] = m
			}
			m[row.LinkID] = row
		}
	}

	e.rows = rows
	e.original = original
	e.linksMap = linksMap

	e.pruneSelection()
	e.pruneFocus(bonded)
	e.pruneDraft()

	return rows
}

// pruneSelection drops selection keys that no longer resolve to a row.
// Stable modes are recomputed from the surviving size; sticky modes are
// left to their explicit exits.
func (e *Editor) pruneSelection() {
	live := make(map[string]bool, len(e.selected))
	for _, row := range e.rows {
		if e.selected[row.Key()] {
			live[row.Key()] = true
		}
	}
	changed := len(live) != len(e.selected)
	e.selected = live
	if changed && !e.mode.Sticky() {
		e.recomputeMode()
	}
}

// pruneFocus clears an inline edit whose row vanished or whose interface
// was absorbed into a bond, flushing its pending edits first.
func (e *Editor) pruneFocus(bonded map[int]bool) {
	if e.focus == nil {
		return
	}
	if row := e.RowFor(e.focus.ID, e.focus.LinkID); row != nil && !bonded[e.focus.ID] {
		// Still present; re-point at the freshly derived row so pending
		// edits are not lost.
		row.Name = e.focus.Name
		row.IPAddress = e.focus.IPAddress
		e.focus = row
		return
	}
	stale := e.focus
	e.focus = nil
	e.flushRow(stale)
}

// pruneDraft revalidates the interface draft. The parent reference is
// refreshed to the new row with the same id/link id; a draft whose kind
// is no longer possible converts to the other kind when that one still
// is, and is discarded when neither is.
func (e *Editor) pruneDraft() {
	if e.draft == nil {
		return
	}

	parent := e.RowFor(e.draft.Parent.ID, e.draft.Parent.LinkID)
	if parent == nil {
		// Any surviving row of the same interface will do when the exact
		// link row went away.
		for _, row := range e.linksMap[e.draft.Parent.ID] {
			parent = row
			break
		}
	}
	if parent == nil {
		e.discardDraft()
		return
	}
	e.draft.Parent = parent

	switch e.draft.Kind {
	case model.TypeAlias:
		if e.CanAddAlias(parent) {
			return
		}
		if e.CanAddVLAN(parent) {
			e.draft = e.newDraft(model.TypeVLAN, parent)
			return
		}
	case model.TypeVLAN:
		if e.CanAddVLAN(parent) {
			return
		}
		if e.CanAddAlias(parent) {
			e.draft = e.newDraft(model.TypeAlias, parent)
			return
		}
	}
	e.discardDraft()
}

func (e *Editor) discardDraft() {
	e.draft = nil
	if e.mode == ModeAdd {
		e.mode = ModeNone
	}
}
