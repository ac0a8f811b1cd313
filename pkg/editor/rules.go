package editor

import (
	"github.com/nodenet-io/nodenet/pkg/model"
)

// CanAddAlias reports whether another link can be stacked on the row's
// interface. Only rows with at least one addressed (or addressable) link
// qualify: dhcp and link_up links carry no address to alias against.
func (e *Editor) CanAddAlias(row *InterfaceRow) bool {
	if row == nil || row.Type == model.TypeAlias {
		return false
	}
	if len(row.Links) == 0 {
		return false
	}
	for _, link := range row.Links {
		if link.Mode.HasAddress() {
			return true
		}
	}
	return false
}

// CanAddVLAN reports whether a VLAN interface can be created on top of
// the row's interface: the row is neither an alias nor itself a VLAN
// interface, and at least one VLAN on its fabric is not yet consumed by
// one of its VLAN children.
func (e *Editor) CanAddVLAN(row *InterfaceRow) bool {
	return len(e.unusedVLANs(row)) > 0
}

// CanAddAnotherVLAN reports whether, after adding one VLAN interface,
// there would still be a VLAN left to choose.
func (e *Editor) CanAddAnotherVLAN(row *InterfaceRow) bool {
	return len(e.unusedVLANs(row)) > 1
}

// unusedVLANs lists the VLANs on the row's fabric not already consumed by
// a VLAN-type child of the row's interface, in fabric order.
func (e *Editor) unusedVLANs(row *InterfaceRow) []*model.VLAN {
	if row == nil || row.Type == model.TypeAlias || row.Type == model.TypeVLAN {
		return nil
	}
	if row.Fabric == nil {
		return nil
	}
	used := make(map[int]bool)
	for _, cid := range row.Children {
		child := e.original[cid]
		if child != nil && child.Type == model.TypeVLAN {
			used[child.VLANID] = true
		}
	}
	var out []*model.VLAN
	for _, v := range e.lookup.VLANsOnFabric(row.Fabric.ID) {
		if !used[v.ID] {
			out = append(out, v)
		}
	}
	return out
}

// unusedSubnets lists the subnets on a VLAN, skipping the one the parent
// row already has.
func (e *Editor) unusedSubnets(vlan *model.VLAN, parent *InterfaceRow) []*model.Subnet {
	if vlan == nil {
		return nil
	}
	var out []*model.Subnet
	for _, sub := range e.lookup.SubnetsOnVLAN(vlan.ID) {
		if parent.Subnet != nil && parent.Subnet.ID == sub.ID {
			continue
		}
		out = append(out, sub)
	}
	return out
}

// CanCreateBond reports whether the given rows can be aggregated: none is
// a bond or alias already, and all share the identical VLAN object. The
// comparison is by identity, not id; two rows whose VLANs failed to
// resolve must not be treated as matching.
func (e *Editor) CanCreateBond(rows []*InterfaceRow) bool {
	if len(rows) == 0 {
		return false
	}
	shared := rows[0].VLAN
	if shared == nil {
		return false
	}
	for _, row := range rows {
		if row.Type == model.TypeBond || row.Type == model.TypeAlias {
			return false
		}
		if row.VLAN != shared {
			return false
		}
	}
	return true
}

// IsInterfaceNameInvalid reports whether the row's name collides with a
// sibling interface on the same node. The comparison is case-sensitive
// and excludes the row's own interface by id.
func (e *Editor) IsInterfaceNameInvalid(row *InterfaceRow) bool {
	for id, ri := range e.original {
		if id != row.ID && ri.Name == row.Name {
			return true
		}
	}
	return false
}
