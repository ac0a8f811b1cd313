package model

// Fabric is a physical connectivity domain. Every VLAN belongs to exactly
// one fabric.
type Fabric struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// VLAN is a layer-2 broadcast domain on a fabric. VID 0 is the fabric's
// untagged VLAN.
type VLAN struct {
	ID       int    `json:"id"`
	FabricID int    `json:"fabric_id"`
	VID      int    `json:"vid"`
	Name     string `json:"name,omitempty"`
}

// Subnet is an IP range carried on a VLAN.
type Subnet struct {
	ID     int    `json:"id"`
	VLANID int    `json:"vlan_id"`
	CIDR   string `json:"cidr"`
	Name   string `json:"name,omitempty"`
}

// Node is an inventory machine owning a set of interfaces. SystemID is the
// stable identifier used by every persistence call.
type Node struct {
	SystemID   string          `json:"system_id"`
	Hostname   string          `json:"hostname"`
	Interfaces []*RawInterface `json:"interfaces,omitempty"`
}
