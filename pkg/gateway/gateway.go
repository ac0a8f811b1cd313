// Package gateway defines the persistence interface the editor commits
// through, plus the concrete implementations: a Redis-backed pending-op
// queue consumed by the region controller, and an SSH tunnel for reaching
// a controller whose Redis is not directly exposed.
//
// Every call is addressed to a node by system id. Calls are synchronous at
// this level; fire-and-forget commits go through Dispatcher.
package gateway

import (
	"context"

	"github.com/nodenet-io/nodenet/pkg/model"
)

// UpdateInterfaceParams renames an interface and/or moves it to a VLAN.
type UpdateInterfaceParams struct {
	Name string
	VLAN int
}

// LinkSubnetParams creates or updates one IP link. LinkID < 0 means
// "create a new link"; otherwise the existing link is updated in place.
type LinkSubnetParams struct {
	Mode      model.LinkMode
	Subnet    int // 0 when no subnet is chosen
	LinkID    int
	IPAddress string
}

// CreateVLANParams creates a VLAN interface on top of a parent.
type CreateVLANParams struct {
	Parent int
	VLAN   int
	Mode   model.LinkMode
	Subnet int // 0 when no subnet is chosen
}

// CreateBondParams aggregates the parent interfaces into a new bond.
type CreateBondParams struct {
	Name           string
	MACAddress     string
	Parents        []int
	VLAN           int
	BondMode       model.BondMode
	LACPRate       model.LACPRate
	XmitHashPolicy model.XmitHashPolicy
}

// Persister is the remote side of the editor. Implementations must treat
// every call as an independent request: the editor never retries, never
// cancels, and serializes calls only by the speed of user interaction.
type Persister interface {
	UpdateInterface(ctx context.Context, node string, id int, p UpdateInterfaceParams) error
	LinkSubnet(ctx context.Context, node string, id int, p LinkSubnetParams) error
	UnlinkSubnet(ctx context.Context, node string, id, linkID int) error
	DeleteInterface(ctx context.Context, node string, id int) error
	CreateVLANInterface(ctx context.Context, node string, p CreateVLANParams) error
	CreateBondInterface(ctx context.Context, node string, p CreateBondParams) error
}
