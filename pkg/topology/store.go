// Package topology holds the raw network topology of inventory nodes:
// fabrics, VLANs, subnets and per-node interface records. The store is the
// editor's only data source; the editor observes it and never writes back.
package topology

import (
	"reflect"
	"sort"

	"github.com/nodenet-io/nodenet/pkg/model"
)

// Store is an in-memory snapshot of the topology. Lookup methods hand out
// pointers owned by the store, so two rows resolved to the same VLAN share
// one *model.VLAN. The editor's bond eligibility check relies on that
// identity.
type Store struct {
	Fabrics map[int]*model.Fabric
	VLANs   map[int]*model.VLAN
	Subnets map[int]*model.Subnet
	Nodes   []*model.Node

	generation uint64
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		Fabrics: make(map[int]*model.Fabric),
		VLANs:   make(map[int]*model.VLAN),
		Subnets: make(map[int]*model.Subnet),
	}
}

// Generation increments every time Update swaps the content. Idempotent
// updates do not advance it.
func (s *Store) Generation() uint64 {
	return s.generation
}

// Update replaces the store content with fresh data. Returns false, leaving
// the current content (and pointer identity) untouched, when fresh is
// value-equal to what the store already holds. Safe to call repeatedly with
// unchanged input.
func (s *Store) Update(fresh *Store) bool {
	if fresh == nil {
		return false
	}
	if reflect.DeepEqual(s.Fabrics, fresh.Fabrics) &&
		reflect.DeepEqual(s.VLANs, fresh.VLANs) &&
		reflect.DeepEqual(s.Subnets, fresh.Subnets) &&
		reflect.DeepEqual(s.Nodes, fresh.Nodes) {
		return false
	}
	s.Fabrics = fresh.Fabrics
	s.VLANs = fresh.VLANs
	s.Subnets = fresh.Subnets
	s.Nodes = fresh.Nodes
	s.generation++
	return true
}

// FabricByID returns the fabric with the given id, or nil.
func (s *Store) FabricByID(id int) *model.Fabric {
	return s.Fabrics[id]
}

// VLANByID returns the VLAN with the given id, or nil.
func (s *Store) VLANByID(id int) *model.VLAN {
	return s.VLANs[id]
}

// SubnetByID returns the subnet with the given id, or nil.
func (s *Store) SubnetByID(id int) *model.Subnet {
	return s.Subnets[id]
}

// VLANsOnFabric returns the fabric's VLANs ordered by VID.
func (s *Store) VLANsOnFabric(fabricID int) []*model.VLAN {
	var out []*model.VLAN
	for _, v := range s.VLANs {
		if v.FabricID == fabricID {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].VID != out[j].VID {
			return out[i].VID < out[j].VID
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// SubnetsOnVLAN returns the VLAN's subnets ordered by id.
func (s *Store) SubnetsOnVLAN(vlanID int) []*model.Subnet {
	var out []*model.Subnet
	for _, sub := range s.Subnets {
		if sub.VLANID == vlanID {
			out = append(out, sub)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// NodeBySystemID returns the node with the given system id, or nil.
func (s *Store) NodeBySystemID(systemID string) *model.Node {
	for _, n := range s.Nodes {
		if n.SystemID == systemID {
			return n
		}
	}
	return nil
}

// NodeInterfaces returns the raw interface list of a node, in the order the
// inventory service reported them. Nil if the node is unknown.
func (s *Store) NodeInterfaces(systemID string) []*model.RawInterface {
	n := s.NodeBySystemID(systemID)
	if n == nil {
		return nil
	}
	return n.Interfaces
}
