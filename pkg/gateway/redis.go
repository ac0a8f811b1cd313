package gateway

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-redis/redis/v8"

	"github.com/nodenet-io/nodenet/pkg/util"
)

const (
	pendingSeqKey = "NODENET_PENDING_SEQ"
	pendingTable  = "NODENET_PENDING_OP"
)

// RedisPersister appends each mutation to a pending-operation queue in the
// controller's Redis. The controller consumes entries in sequence order and
// applies them against the inventory service; this client never reads them
// back.
type RedisPersister struct {
	rdb *redis.Client
}

// NewRedisPersister creates a persister for the given Redis address.
func NewRedisPersister(addr string) *RedisPersister {
	return &RedisPersister{
		rdb: redis.NewClient(&redis.Options{
			Addr: addr,
		}),
	}
}

// Connect tests the connection.
func (p *RedisPersister) Connect(ctx context.Context) error {
	if err := p.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %v", util.ErrNotConnected, err)
	}
	return nil
}

// Close closes the connection.
func (p *RedisPersister) Close() error {
	return p.rdb.Close()
}

func (p *RedisPersister) enqueue(ctx context.Context, op, node string, fields map[string]string) error {
	seq, err := p.rdb.Incr(ctx, pendingSeqKey).Result()
	if err != nil {
		return fmt.Errorf("allocating op sequence: %w", err)
	}
	key := fmt.Sprintf("%s|%d", pendingTable, seq)

	all := map[string]interface{}{
		"op":   op,
		"node": node,
	}
	for k, v := range fields {
		all[k] = v
	}
	if err := p.rdb.HSet(ctx, key, all).Err(); err != nil {
		return fmt.Errorf("enqueueing %s: %w", op, err)
	}
	util.WithNode(node).Debugf("queued %s as %s", op, key)
	return nil
}

func (p *RedisPersister) UpdateInterface(ctx context.Context, node string, id int, params UpdateInterfaceParams) error {
	return p.enqueue(ctx, "update_interface", node, updateInterfaceFields(id, params))
}

func (p *RedisPersister) LinkSubnet(ctx context.Context, node string, id int, params LinkSubnetParams) error {
	return p.enqueue(ctx, "link_subnet", node, linkSubnetFields(id, params))
}

func (p *RedisPersister) UnlinkSubnet(ctx context.Context, node string, id, linkID int) error {
	return p.enqueue(ctx, "unlink_subnet", node, map[string]string{
		"id":      strconv.Itoa(id),
		"link_id": strconv.Itoa(linkID),
	})
}

func (p *RedisPersister) DeleteInterface(ctx context.Context, node string, id int) error {
	return p.enqueue(ctx, "delete_interface", node, map[string]string{
		"id": strconv.Itoa(id),
	})
}

func (p *RedisPersister) CreateVLANInterface(ctx context.Context, node string, params CreateVLANParams) error {
	return p.enqueue(ctx, "create_vlan", node, createVLANFields(params))
}

func (p *RedisPersister) CreateBondInterface(ctx context.Context, node string, params CreateBondParams) error {
	return p.enqueue(ctx, "create_bond", node, createBondFields(params))
}

// Field builders are split out so queue encoding is testable without Redis.

func updateInterfaceFields(id int, p UpdateInterfaceParams) map[string]string {
	return map[string]string{
		"id":   strconv.Itoa(id),
		"name": p.Name,
		"vlan": strconv.Itoa(p.VLAN),
	}
}

func linkSubnetFields(id int, p LinkSubnetParams) map[string]string {
	fields := map[string]string{
		"id":         strconv.Itoa(id),
		"mode":       string(p.Mode),
		"ip_address": p.IPAddress,
	}
	if p.Subnet != 0 {
		fields["subnet"] = strconv.Itoa(p.Subnet)
	}
	// A negative link id asks the controller to create a new link.
	if p.LinkID >= 0 {
		fields["link_id"] = strconv.Itoa(p.LinkID)
	}
	return fields
}

func createVLANFields(p CreateVLANParams) map[string]string {
	fields := map[string]string{
		"parent": strconv.Itoa(p.Parent),
		"vlan":   strconv.Itoa(p.VLAN),
		"mode":   string(p.Mode),
	}
	if p.Subnet != 0 {
		fields["subnet"] = strconv.Itoa(p.Subnet)
	}
	return fields
}

func createBondFields(p CreateBondParams) map[string]string {
	return map[string]string{
		"name":                  p.Name,
		"mac_address":           p.MACAddress,
		"parents":               util.IntsToCSV(p.Parents),
		"vlan":                  strconv.Itoa(p.VLAN),
		"bond_mode":             string(p.BondMode),
		"bond_lacp_rate":        string(p.LACPRate),
		"bond_xmit_hash_policy": string(p.XmitHashPolicy),
	}
}
