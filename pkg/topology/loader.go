package topology

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nodenet-io/nodenet/pkg/model"
	"github.com/nodenet-io/nodenet/pkg/util"
)

// File schema for topology.yaml. The file mirrors what the inventory
// service reports over its API, flattened for fixtures and offline use.
type topologyFile struct {
	Fabrics []fabricEntry `yaml:"fabrics"`
	VLANs   []vlanEntry   `yaml:"vlans"`
	Subnets []subnetEntry `yaml:"subnets"`
	Nodes   []nodeEntry   `yaml:"nodes"`
}

type fabricEntry struct {
	ID   int    `yaml:"id"`
	Name string `yaml:"name"`
}

type vlanEntry struct {
	ID     int    `yaml:"id"`
	Fabric int    `yaml:"fabric"`
	VID    int    `yaml:"vid"`
	Name   string `yaml:"name"`
}

type subnetEntry struct {
	ID   int    `yaml:"id"`
	VLAN int    `yaml:"vlan"`
	CIDR string `yaml:"cidr"`
	Name string `yaml:"name"`
}

type nodeEntry struct {
	SystemID   string           `yaml:"system_id"`
	Hostname   string           `yaml:"hostname"`
	Interfaces []interfaceEntry `yaml:"interfaces"`
}

type interfaceEntry struct {
	ID         int         `yaml:"id"`
	Name       string      `yaml:"name"`
	Type       string      `yaml:"type"`
	MACAddress string      `yaml:"mac_address"`
	VLAN       int         `yaml:"vlan"`
	Parents    []int       `yaml:"parents"`
	Links      []linkEntry `yaml:"links"`
}

type linkEntry struct {
	ID        int    `yaml:"id"`
	Subnet    int    `yaml:"subnet"`
	Mode      string `yaml:"mode"`
	IPAddress string `yaml:"ip_address"`
}

// Load reads and validates a topology.yaml file.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading topology file: %w", err)
	}
	store, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return store, nil
}

// Parse builds a Store from YAML topology data and validates all
// cross-references. Children lists are derived as the inverse of Parents,
// so files never declare them.
func Parse(data []byte) (*Store, error) {
	var file topologyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}

	store := NewStore()
	for _, f := range file.Fabrics {
		store.Fabrics[f.ID] = &model.Fabric{ID: f.ID, Name: f.Name}
	}
	for _, v := range file.VLANs {
		store.VLANs[v.ID] = &model.VLAN{ID: v.ID, FabricID: v.Fabric, VID: v.VID, Name: v.Name}
	}
	for _, sub := range file.Subnets {
		store.Subnets[sub.ID] = &model.Subnet{ID: sub.ID, VLANID: sub.VLAN, CIDR: sub.CIDR, Name: sub.Name}
	}
	for _, n := range file.Nodes {
		node := &model.Node{SystemID: n.SystemID, Hostname: n.Hostname}
		for _, ie := range n.Interfaces {
			ri := &model.RawInterface{
				ID:         ie.ID,
				Name:       ie.Name,
				Type:       model.InterfaceType(ie.Type),
				MACAddress: ie.MACAddress,
				VLANID:     ie.VLAN,
				Parents:    append([]int(nil), ie.Parents...),
			}
			for _, le := range ie.Links {
				ri.Links = append(ri.Links, model.Link{
					ID:        le.ID,
					SubnetID:  le.Subnet,
					Mode:      model.LinkMode(le.Mode),
					IPAddress: le.IPAddress,
				})
			}
			node.Interfaces = append(node.Interfaces, ri)
		}
		deriveChildren(node.Interfaces)
		store.Nodes = append(store.Nodes, node)
	}

	if err := validate(store); err != nil {
		return nil, err
	}
	return store, nil
}

// deriveChildren fills each interface's Children as the inverse of Parents,
// preserving input order.
func deriveChildren(interfaces []*model.RawInterface) {
	byID := make(map[int]*model.RawInterface, len(interfaces))
	for _, ri := range interfaces {
		byID[ri.ID] = ri
	}
	for _, ri := range interfaces {
		for _, pid := range ri.Parents {
			if parent, ok := byID[pid]; ok {
				parent.Children = append(parent.Children, ri.ID)
			}
		}
	}
}

func validate(store *Store) error {
	var b util.ValidationBuilder

	for _, v := range store.VLANs {
		if store.Fabrics[v.FabricID] == nil {
			b.AddErrorf("vlan %d references unknown fabric %d", v.ID, v.FabricID)
		}
	}
	for _, sub := range store.Subnets {
		if store.VLANs[sub.VLANID] == nil {
			b.AddErrorf("subnet %d references unknown vlan %d", sub.ID, sub.VLANID)
		}
		if !util.IsValidCIDR(sub.CIDR) {
			b.AddErrorf("subnet %d has invalid cidr %q", sub.ID, sub.CIDR)
		}
	}
	for _, node := range store.Nodes {
		seen := make(map[int]bool)
		for _, ri := range node.Interfaces {
			if seen[ri.ID] {
				b.AddErrorf("node %s has duplicate interface id %d", node.SystemID, ri.ID)
			}
			seen[ri.ID] = true
			if !ri.Type.Valid() {
				b.AddErrorf("interface %s has invalid type %q", ri.Name, ri.Type)
			}
			if ri.VLANID != 0 && store.VLANs[ri.VLANID] == nil {
				b.AddErrorf("interface %s references unknown vlan %d", ri.Name, ri.VLANID)
			}
			for _, l := range ri.Links {
				if l.SubnetID != 0 && store.Subnets[l.SubnetID] == nil {
					b.AddErrorf("interface %s link %d references unknown subnet %d", ri.Name, l.ID, l.SubnetID)
				}
			}
		}
		for _, ri := range node.Interfaces {
			for _, pid := range ri.Parents {
				if !seen[pid] {
					b.AddErrorf("interface %s references unknown parent %d", ri.Name, pid)
				}
			}
		}
	}

	return b.Build()
}
