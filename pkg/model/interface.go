// Package model defines the domain records for node networking:
// interfaces, IP links, fabrics, VLANs and subnets as reported by the
// inventory service.
package model

// InterfaceType classifies a network interface.
type InterfaceType string

const (
	TypePhysical InterfaceType = "physical"
	TypeBond     InterfaceType = "bond"
	TypeVLAN     InterfaceType = "vlan"

	// TypeAlias is never stored on a RawInterface; it is assigned to the
	// derived rows that represent an interface's second and later links.
	TypeAlias InterfaceType = "alias"
)

// Valid reports whether t is a type the inventory service can report.
func (t InterfaceType) Valid() bool {
	switch t {
	case TypePhysical, TypeBond, TypeVLAN:
		return true
	}
	return false
}

// LinkMode is the IP configuration mode of a single link.
type LinkMode string

const (
	LinkModeAuto   LinkMode = "auto"    // address assigned from the subnet at deploy time
	LinkModeDHCP   LinkMode = "dhcp"    // address leased over DHCP
	LinkModeStatic LinkMode = "static"  // address pinned by the operator
	LinkModeLinkUp LinkMode = "link_up" // interface up, no address
)

// Valid reports whether m is a mode the inventory service accepts.
func (m LinkMode) Valid() bool {
	switch m {
	case LinkModeAuto, LinkModeDHCP, LinkModeStatic, LinkModeLinkUp:
		return true
	}
	return false
}

// HasAddress reports whether the mode carries (or can carry) an IP address.
func (m LinkMode) HasAddress() bool {
	return m == LinkModeAuto || m == LinkModeStatic
}

// Link is one IP-configuration slot on an interface. An interface with
// several links is rendered as several rows by the editor.
type Link struct {
	ID        int      `json:"id"`
	SubnetID  int      `json:"subnet_id,omitempty"`
	Mode      LinkMode `json:"mode"`
	IPAddress string   `json:"ip_address,omitempty"`
}

// RawInterface is a network interface exactly as the inventory service
// reports it. Bond membership and VLAN layering are relationally encoded:
// Parents holds the member ids of a bond, or the underlying physical
// interface of a VLAN interface; Children is the inverse.
type RawInterface struct {
	ID         int           `json:"id"`
	Name       string        `json:"name"`
	Type       InterfaceType `json:"type"`
	MACAddress string        `json:"mac_address,omitempty"`
	VLANID     int           `json:"vlan_id,omitempty"`
	Parents    []int         `json:"parents,omitempty"`
	Children   []int         `json:"children,omitempty"`
	Links      []Link        `json:"links,omitempty"`
}

// Clone returns a deep copy. The reconciliation snapshot relies on this so
// that later in-place edits to the live record cannot leak into the
// diff baseline.
func (ri *RawInterface) Clone() *RawInterface {
	if ri == nil {
		return nil
	}
	c := *ri
	if ri.Parents != nil {
		c.Parents = append([]int(nil), ri.Parents...)
	}
	if ri.Children != nil {
		c.Children = append([]int(nil), ri.Children...)
	}
	if ri.Links != nil {
		c.Links = append([]Link(nil), ri.Links...)
	}
	return &c
}

// LinkByID returns the link with the given id, or nil.
func (ri *RawInterface) LinkByID(linkID int) *Link {
	for i := range ri.Links {
		if ri.Links[i].ID == linkID {
			return &ri.Links[i]
		}
	}
	return nil
}

// IsBond reports whether the interface aggregates other interfaces.
func (ri *RawInterface) IsBond() bool {
	return ri.Type == TypeBond
}
