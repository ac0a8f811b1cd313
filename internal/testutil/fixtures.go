// Package testutil provides shared fixtures for editor and topology
// tests: a canned fabric/VLAN/subnet store and builders for raw
// interface records.
package testutil

import (
	"github.com/nodenet-io/nodenet/pkg/model"
	"github.com/nodenet-io/nodenet/pkg/topology"
)

// Well-known fixture ids. VLAN 5001 is fabric-0's untagged VLAN carrying
// subnet 1; VLANs 5002/5003 are tagged, with subnet 2 on 5002.
const (
	FabricID = 0

	VLANUntagged = 5001
	VLANTen      = 5002
	VLANTwenty   = 5003

	SubnetMain   = 1 // 192.168.122.0/24 on the untagged VLAN
	SubnetSecond = 2 // 10.20.0.0/24 on VLAN 10
	SubnetSpare  = 3 // 192.168.100.0/24 on the untagged VLAN
)

// SampleStore builds the canned topology store used across tests.
func SampleStore() *topology.Store {
	s := topology.NewStore()
	s.Fabrics[FabricID] = &model.Fabric{ID: FabricID, Name: "fabric-0"}
	s.VLANs[VLANUntagged] = &model.VLAN{ID: VLANUntagged, FabricID: FabricID, VID: 0}
	s.VLANs[VLANTen] = &model.VLAN{ID: VLANTen, FabricID: FabricID, VID: 10}
	s.VLANs[VLANTwenty] = &model.VLAN{ID: VLANTwenty, FabricID: FabricID, VID: 20}
	s.Subnets[SubnetMain] = &model.Subnet{ID: SubnetMain, VLANID: VLANUntagged, CIDR: "192.168.122.0/24"}
	s.Subnets[SubnetSecond] = &model.Subnet{ID: SubnetSecond, VLANID: VLANTen, CIDR: "10.20.0.0/24"}
	s.Subnets[SubnetSpare] = &model.Subnet{ID: SubnetSpare, VLANID: VLANUntagged, CIDR: "192.168.100.0/24"}
	return s
}

// NIC builds a physical interface on the given VLAN.
func NIC(id int, name string, vlan int, links ...model.Link) *model.RawInterface {
	return &model.RawInterface{
		ID:         id,
		Name:       name,
		Type:       model.TypePhysical,
		MACAddress: "52:54:00:00:00:0" + string(rune('0'+id%10)),
		VLANID:     vlan,
		Links:      links,
	}
}

// Bond builds a bond interface aggregating the given parent ids.
func Bond(id int, name string, vlan int, parents []int, links ...model.Link) *model.RawInterface {
	return &model.RawInterface{
		ID:      id,
		Name:    name,
		Type:    model.TypeBond,
		VLANID:  vlan,
		Parents: parents,
		Links:   links,
	}
}

// VLANChild builds a VLAN interface on top of a parent.
func VLANChild(id int, name string, vlan, parent int, links ...model.Link) *model.RawInterface {
	return &model.RawInterface{
		ID:      id,
		Name:    name,
		Type:    model.TypeVLAN,
		VLANID:  vlan,
		Parents: []int{parent},
		Links:   links,
	}
}

// StaticLink builds a static link with a pinned address.
func StaticLink(id, subnet int, ip string) model.Link {
	return model.Link{ID: id, SubnetID: subnet, Mode: model.LinkModeStatic, IPAddress: ip}
}

// AutoLink builds an auto-assign link.
func AutoLink(id, subnet int) model.Link {
	return model.Link{ID: id, SubnetID: subnet, Mode: model.LinkModeAuto}
}

// DHCPLink builds a DHCP link.
func DHCPLink(id, subnet int) model.Link {
	return model.Link{ID: id, SubnetID: subnet, Mode: model.LinkModeDHCP}
}

// Wire fills every interface's Children as the inverse of Parents and
// returns the slice unchanged, mimicking what the inventory service
// reports.
func Wire(interfaces ...*model.RawInterface) []*model.RawInterface {
	byID := make(map[int]*model.RawInterface, len(interfaces))
	for _, ri := range interfaces {
		byID[ri.ID] = ri
		ri.Children = nil
	}
	for _, ri := range interfaces {
		for _, pid := range ri.Parents {
			if parent, ok := byID[pid]; ok {
				parent.Children = append(parent.Children, ri.ID)
			}
		}
	}
	return interfaces
}
