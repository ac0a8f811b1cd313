package editor

import (
	"fmt"

	"github.com/nodenet-io/nodenet/pkg/model"
)

// NoLink is the link id of the synthetic row an unconfigured interface
// (zero links) gets.
const NoLink = -1

// InterfaceRow is one editable row of the networking table: an
// (interface, link) pair, or the synthetic no-link row. Rows are rebuilt
// wholesale on every reconciliation pass and are never mutated by
// persistence code; the only in-place writes are the local reverts of
// rejected field edits.
type InterfaceRow struct {
	ID         int
	Name       string
	Type       model.InterfaceType
	MACAddress string
	Parents    []int
	Children   []int
	Links      []model.Link

	VLAN   *model.VLAN
	Fabric *model.Fabric

	LinkID    int
	Subnet    *model.Subnet
	Mode      model.LinkMode
	IPAddress string

	// Members holds the raw member records when the row is a bond.
	Members []*model.RawInterface
}

// Key identifies the row across reconciliation passes.
func (r *InterfaceRow) Key() string {
	return fmt.Sprintf("%d/%d", r.ID, r.LinkID)
}

// IsAlias reports whether the row represents a second or later link.
func (r *InterfaceRow) IsAlias() bool {
	return r.Type == model.TypeAlias
}

// expandRows derives the rows for one raw interface: one per link, with
// links two onward rendered as alias rows, or a single link_up row when
// the interface has no links at all. Alias rows follow the first-link row
// immediately, in link-array order.
func (e *Editor) expandRows(ri *model.RawInterface, byID map[int]*model.RawInterface) []*InterfaceRow {
	vlan := e.lookup.VLANByID(ri.VLANID)
	var fabric *model.Fabric
	if vlan != nil {
		fabric = e.lookup.FabricByID(vlan.FabricID)
	}

	base := func() *InterfaceRow {
		return &InterfaceRow{
			ID:         ri.ID,
			Name:       ri.Name,
			Type:       ri.Type,
			MACAddress: ri.MACAddress,
			Parents:    ri.Parents,
			Children:   ri.Children,
			Links:      append([]model.Link(nil), ri.Links...),
			VLAN:       vlan,
			Fabric:     fabric,
		}
	}

	if len(ri.Links) == 0 {
		row := base()
		row.LinkID = NoLink
		row.Mode = model.LinkModeLinkUp
		e.attachMembers(row, ri, byID)
		return []*InterfaceRow{row}
	}

	rows := make([]*InterfaceRow, 0, len(ri.Links))
	for i, link := range ri.Links {
		row := base()
		if i > 0 {
			row.Name = fmt.Sprintf("%s:%d", ri.Name, i)
			row.Type = model.TypeAlias
		}
		row.LinkID = link.ID
		row.Subnet = e.lookup.SubnetByID(link.SubnetID)
		row.Mode = link.Mode
		row.IPAddress = link.IPAddress
		e.attachMembers(row, ri, byID)
		rows = append(rows, row)
	}
	return rows
}

// attachMembers resolves a bond's parent ids to their raw records, in the
// bond's declared order.
func (e *Editor) attachMembers(row *InterfaceRow, ri *model.RawInterface, byID map[int]*model.RawInterface) {
	if ri.Type != model.TypeBond {
		return
	}
	for _, pid := range ri.Parents {
		if member, ok := byID[pid]; ok {
			row.Members = append(row.Members, member)
		}
	}
}
