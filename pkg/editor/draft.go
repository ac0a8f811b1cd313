package editor

import (
	"context"
	"fmt"

	"github.com/nodenet-io/nodenet/pkg/gateway"
	"github.com/nodenet-io/nodenet/pkg/model"
	"github.com/nodenet-io/nodenet/pkg/util"
)

// InterfaceDraft is the not-yet-committed "new interface" form. Kind is
// the variant tag: TypeAlias stacks another link on the parent's
// interface, TypeVLAN creates a VLAN interface on top of it. Switching
// kind goes through SetDraftKind, which re-derives every dependent field;
// the two variants never share stale values.
type InterfaceDraft struct {
	Kind   model.InterfaceType
	Parent *InterfaceRow

	VLAN      *model.VLAN
	Subnet    *model.Subnet
	Mode      model.LinkMode
	IPAddress string
}

// BondDraft is the not-yet-committed "new bond" form.
type BondDraft struct {
	Name           string
	Parents        []*InterfaceRow
	Primary        *InterfaceRow
	MACAddress     string
	Mode           model.BondMode
	LACPRate       model.LACPRate
	XmitHashPolicy model.XmitHashPolicy
}

// newDraft derives a draft's defaults for a kind and parent:
//
//	alias: parent's VLAN, the first subnet on it the parent does not
//	       already use, mode auto.
//	vlan:  the first unconsumed VLAN on the parent's fabric, no subnet,
//	       mode link_up.
func (e *Editor) newDraft(kind model.InterfaceType, parent *InterfaceRow) *InterfaceDraft {
	d := &InterfaceDraft{Kind: kind, Parent: parent}
	switch kind {
	case model.TypeAlias:
		d.VLAN = parent.VLAN
		if subnets := e.unusedSubnets(parent.VLAN, parent); len(subnets) > 0 {
			d.Subnet = subnets[0]
		}
		d.Mode = model.LinkModeAuto
	case model.TypeVLAN:
		if vlans := e.unusedVLANs(parent); len(vlans) > 0 {
			d.VLAN = vlans[0]
		}
		d.Mode = model.LinkModeLinkUp
	}
	return d
}

// Add opens the add form: a fresh draft of the given kind under the
// parent row, and the add interaction mode.
func (e *Editor) Add(kind model.InterfaceType, parent *InterfaceRow) *InterfaceDraft {
	e.draft = e.newDraft(kind, parent)
	e.mode = ModeAdd
	return e.draft
}

// SetDraftKind switches the draft's variant and re-derives VLAN, subnet
// and mode for the new kind.
func (e *Editor) SetDraftKind(kind model.InterfaceType) {
	if e.draft == nil {
		return
	}
	e.draft = e.newDraft(kind, e.draft.Parent)
}

// SetDraftVLAN picks a VLAN for the draft. Changing VLAN invalidates any
// previously chosen subnet.
func (e *Editor) SetDraftVLAN(vlan *model.VLAN) {
	if e.draft == nil {
		return
	}
	e.draft.VLAN = vlan
	e.draft.Subnet = nil
}

// SetDraftSubnet picks a subnet for the draft. Dropping the subnet forces
// the mode back to link_up; choosing one leaves the mode untouched.
func (e *Editor) SetDraftSubnet(subnet *model.Subnet) {
	if e.draft == nil {
		return
	}
	e.draft.Subnet = subnet
	if subnet == nil {
		e.draft.Mode = model.LinkModeLinkUp
	}
}

// DraftName returns the name the committed interface will get: the next
// alias slot for alias drafts, "<parent>.<vid>" for VLAN drafts.
func (e *Editor) DraftName() string {
	d := e.draft
	if d == nil {
		return ""
	}
	switch d.Kind {
	case model.TypeAlias:
		return fmt.Sprintf("%s:%d", d.Parent.Name, len(d.Parent.Links))
	case model.TypeVLAN:
		if d.VLAN == nil {
			return d.Parent.Name
		}
		return fmt.Sprintf("%s.%d", d.Parent.Name, d.VLAN.VID)
	}
	return ""
}

// AddInterface commits the draft. With an override kind it instead
// reopens the form as that kind, letting the caller flip type and commit
// later. On a successful commit the selection is cleared, the mode
// returns to none and the draft is discarded; on a persistence error the
// draft stays for the caller to retry or cancel.
func (e *Editor) AddInterface(ctx context.Context, override ...model.InterfaceType) error {
	if e.draft == nil {
		return fmt.Errorf("add interface: %w", util.ErrNotFound)
	}
	if len(override) > 0 {
		e.Add(override[0], e.draft.Parent)
		return nil
	}

	d := e.draft
	var err error
	switch d.Kind {
	case model.TypeAlias:
		err = e.gw.LinkSubnet(ctx, e.node, d.Parent.ID, gateway.LinkSubnetParams{
			Mode:      d.Mode,
			Subnet:    subnetID(d.Subnet),
			LinkID:    NoLink,
			IPAddress: "",
		})
	case model.TypeVLAN:
		if d.VLAN == nil {
			return util.NewValidationError("no VLAN available for the new interface")
		}
		err = e.gw.CreateVLANInterface(ctx, e.node, gateway.CreateVLANParams{
			Parent: d.Parent.ID,
			VLAN:   d.VLAN.ID,
			Mode:   d.Mode,
			Subnet: subnetID(d.Subnet),
		})
	default:
		return util.NewValidationError(fmt.Sprintf("cannot add interface of kind %q", d.Kind))
	}
	if err != nil {
		return err
	}

	e.draft = nil
	e.selected = make(map[string]bool)
	e.mode = ModeNone
	return nil
}

// ShowCreateBond opens the bond form over the current multi-selection.
// Defaults follow the kernel bonding driver: active-backup, slow LACP,
// layer2 hashing. The draft name is the next free bondN slot.
func (e *Editor) ShowCreateBond() (*BondDraft, error) {
	if e.mode != ModeMulti {
		return nil, util.NewValidationError("bond creation requires a multi-row selection")
	}
	parents := e.SelectedRows()
	if !e.CanCreateBond(parents) {
		return nil, util.NewValidationError("selected interfaces cannot form a bond")
	}

	bonds := 0
	for _, row := range e.rows {
		if row.Type == model.TypeBond {
			bonds++
		}
	}

	e.bondDraft = &BondDraft{
		Name:           fmt.Sprintf("bond%d", bonds),
		Parents:        parents,
		Primary:        parents[0],
		Mode:           model.BondModeActiveBackup,
		LACPRate:       model.LACPRateSlow,
		XmitHashPolicy: model.XmitHashLayer2,
	}
	e.mode = ModeCreateBond
	return e.bondDraft, nil
}

// BondPlaceholderMAC returns the MAC the bond will inherit when the
// operator leaves the field empty.
func (e *Editor) BondPlaceholderMAC() string {
	if e.bondDraft == nil || e.bondDraft.Primary == nil {
		return ""
	}
	return e.bondDraft.Primary.MACAddress
}

// BondMACInvalid reports whether the draft's MAC override fails six-octet
// colon-hex validation. An empty override is fine, the placeholder MAC
// applies.
func (e *Editor) BondMACInvalid() bool {
	if e.bondDraft == nil || e.bondDraft.MACAddress == "" {
		return false
	}
	return !util.IsValidMAC(e.bondDraft.MACAddress)
}

// ShowLACPRate reports whether the LACP rate field applies to the draft's
// bond mode.
func (e *Editor) ShowLACPRate() bool {
	return e.bondDraft != nil && e.bondDraft.Mode == model.BondMode8023AD
}

// ShowXMITHashPolicy reports whether the transmit hash policy field
// applies to the draft's bond mode.
func (e *Editor) ShowXMITHashPolicy() bool {
	if e.bondDraft == nil {
		return false
	}
	switch e.bondDraft.Mode {
	case model.BondModeBalanceXOR, model.BondMode8023AD, model.BondModeBalanceTLB:
		return true
	}
	return false
}

// AddBond commits the bond draft. On success the member rows disappear
// from the flat list immediately (the next reconciliation pass rebuilds
// the real state) and the screen returns to none mode.
func (e *Editor) AddBond(ctx context.Context) error {
	if e.bondDraft == nil {
		return fmt.Errorf("add bond: %w", util.ErrNotFound)
	}
	d := e.bondDraft
	if e.BondMACInvalid() {
		return util.NewValidationError(fmt.Sprintf("invalid MAC address %q", d.MACAddress))
	}

	parents := make([]int, len(d.Parents))
	for i, row := range d.Parents {
		parents[i] = row.ID
	}
	err := e.gw.CreateBondInterface(ctx, e.node, gateway.CreateBondParams{
		Name:           d.Name,
		MACAddress:     d.MACAddress,
		Parents:        parents,
		VLAN:           d.Primary.VLAN.ID,
		BondMode:       d.Mode,
		LACPRate:       d.LACPRate,
		XmitHashPolicy: d.XmitHashPolicy,
	})
	if err != nil {
		return err
	}

	member := make(map[int]bool, len(parents))
	for _, id := range parents {
		member[id] = true
	}
	var kept []*InterfaceRow
	for _, row := range e.rows {
		if member[row.ID] {
			delete(e.linksMap, row.ID)
			continue
		}
		kept = append(kept, row)
	}
	e.rows = kept

	e.bondDraft = nil
	e.selected = make(map[string]bool)
	e.mode = ModeNone
	return nil
}

// ConfirmRemove deletes the row selected by QuickRemove: alias rows
// unlink their IP slot, everything else deletes the whole interface. The
// screen returns to none mode on success.
func (e *Editor) ConfirmRemove(ctx context.Context) error {
	if e.mode != ModeDelete {
		return util.NewValidationError("nothing staged for removal")
	}
	selected := e.SelectedRows()
	if len(selected) != 1 {
		return util.NewValidationError("removal requires exactly one selected row")
	}
	row := selected[0]

	var err error
	if row.Type == model.TypeAlias {
		err = e.gw.UnlinkSubnet(ctx, e.node, row.ID, row.LinkID)
	} else {
		err = e.gw.DeleteInterface(ctx, e.node, row.ID)
	}
	if err != nil {
		return err
	}

	e.selected = make(map[string]bool)
	e.mode = ModeNone
	return nil
}

func subnetID(s *model.Subnet) int {
	if s == nil {
		return 0
	}
	return s.ID
}
