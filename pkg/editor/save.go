package editor

import (
	"context"

	"github.com/nodenet-io/nodenet/pkg/gateway"
	"github.com/nodenet-io/nodenet/pkg/model"
	"github.com/nodenet-io/nodenet/pkg/util"
)

// SaveInterface persists a row's name/VLAN edit if it differs from the
// snapshot. An empty or colliding name is reverted to the original and
// never reaches the gateway.
func (e *Editor) SaveInterface(ctx context.Context, row *InterfaceRow) error {
	params, ok := e.interfaceSaveParams(row)
	if !ok {
		return nil
	}
	return e.gw.UpdateInterface(ctx, e.node, row.ID, params)
}

// interfaceSaveParams runs the dirty check and name validation against
// the current snapshot. ok is false when there is nothing to persist; an
// invalid name is reverted on the row.
func (e *Editor) interfaceSaveParams(row *InterfaceRow) (gateway.UpdateInterfaceParams, bool) {
	orig := e.original[row.ID]
	if orig == nil {
		return gateway.UpdateInterfaceParams{}, false
	}
	vlanID := 0
	if row.VLAN != nil {
		vlanID = row.VLAN.ID
	}
	if row.Name == orig.Name && vlanID == orig.VLANID {
		return gateway.UpdateInterfaceParams{}, false
	}
	if row.Name == "" || e.IsInterfaceNameInvalid(row) {
		row.Name = orig.Name
		return gateway.UpdateInterfaceParams{}, false
	}
	return gateway.UpdateInterfaceParams{Name: row.Name, VLAN: vlanID}, true
}

// SaveInterfaceLink persists a row's link edit. Link edits carry no dirty
// check: reaching this call is always an intentional change.
func (e *Editor) SaveInterfaceLink(ctx context.Context, row *InterfaceRow) error {
	return e.gw.LinkSubnet(ctx, e.node, row.ID, gateway.LinkSubnetParams{
		Mode:      row.Mode,
		Subnet:    subnetID(row.Subnet),
		LinkID:    row.LinkID,
		IPAddress: row.IPAddress,
	})
}

// SaveInterfaceIPAddress persists an edited address if it is a valid IP
// literal inside the row's subnet. An invalid address is replaced with
// the snapshot's address for that link, not the last value the user
// typed, and nothing is sent.
func (e *Editor) SaveInterfaceIPAddress(ctx context.Context, row *InterfaceRow) error {
	params, ok := e.addressSaveParams(row)
	if !ok {
		return nil
	}
	return e.gw.LinkSubnet(ctx, e.node, row.ID, params)
}

// addressSaveParams validates the row's address edit against its subnet.
// ok is false when the address is invalid; the row's address is then
// reverted to the snapshot's.
func (e *Editor) addressSaveParams(row *InterfaceRow) (gateway.LinkSubnetParams, bool) {
	valid := util.IsValidIP(row.IPAddress) &&
		row.Subnet != nil &&
		util.IPInCIDR(row.IPAddress, row.Subnet.CIDR)
	if !valid {
		row.IPAddress = e.originalLinkAddress(row)
		return gateway.LinkSubnetParams{}, false
	}
	return gateway.LinkSubnetParams{
		Mode:      row.Mode,
		Subnet:    subnetID(row.Subnet),
		LinkID:    row.LinkID,
		IPAddress: row.IPAddress,
	}, true
}

// originalLinkAddress looks up the snapshot address of the row's link.
func (e *Editor) originalLinkAddress(row *InterfaceRow) string {
	orig := e.original[row.ID]
	if orig == nil {
		return ""
	}
	link := orig.LinkByID(row.LinkID)
	if link == nil {
		return ""
	}
	return link.IPAddress
}

// SetFocus marks a row as being inline-edited.
func (e *Editor) SetFocus(row *InterfaceRow) {
	e.focus = row
}

// Focus returns the row being inline-edited, or nil.
func (e *Editor) Focus() *InterfaceRow {
	return e.focus
}

// ClearFocus ends the inline edit and flushes its pending values. When a
// row is given, the call is a no-op unless that row is the focused one.
// Name/VLAN edits only apply to non-alias rows; the address edit is
// flushed for every row type.
func (e *Editor) ClearFocus(ctx context.Context, row *InterfaceRow) error {
	if e.focus == nil {
		return nil
	}
	if row != nil && row.Key() != e.focus.Key() {
		return nil
	}
	focused := e.focus
	e.focus = nil

	var err error
	if focused.Type != model.TypeAlias {
		err = e.SaveInterface(ctx, focused)
	}
	if lerr := e.SaveInterfaceIPAddress(ctx, focused); err == nil {
		err = lerr
	}
	return err
}

// flushRow is the reconciliation-time variant of the ClearFocus flush:
// the row vanished, there is no user action to report an error to, so the
// calls go through the fire-and-forget dispatcher. Dirty checks and
// validation run here, against this pass's snapshot; the dispatched
// closures carry resolved parameters only and read no editor state, so
// a later reconciliation pass cannot race them.
func (e *Editor) flushRow(row *InterfaceRow) {
	id := row.ID
	if row.Type != model.TypeAlias {
		if params, ok := e.interfaceSaveParams(row); ok {
			e.disp.Go("update_interface", func(ctx context.Context) error {
				return e.gw.UpdateInterface(ctx, e.node, id, params)
			})
		}
	}
	if params, ok := e.addressSaveParams(row); ok {
		e.disp.Go("link_subnet", func(ctx context.Context) error {
			return e.gw.LinkSubnet(ctx, e.node, id, params)
		})
	}
}
