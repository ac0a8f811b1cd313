package topology

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/go-redis/redis/v8"

	"github.com/nodenet-io/nodenet/pkg/model"
	"github.com/nodenet-io/nodenet/pkg/util"
)

// Redis hash-table layout mirrored from the region controller's cache:
//
//	FABRIC|<id>                      name
//	VLAN|<id>                        fabric, vid, name
//	SUBNET|<id>                      vlan, cidr, name
//	NODE|<system_id>                 hostname
//	NIC|<system_id>|<id>             idx, name, type, mac_address, vlan, parents
//	NICLINK|<system_id>|<nic>|<id>   idx, subnet, mode, ip_address
//
// idx preserves the order the inventory service reported records in; the
// editor's row derivation depends on it.

// Client reads the topology cache from a controller's Redis.
type Client struct {
	rdb *redis.Client
}

// NewClient creates a topology cache client for the given address.
func NewClient(addr string) *Client {
	return &Client{
		rdb: redis.NewClient(&redis.Options{
			Addr: addr,
		}),
	}
}

// Connect tests the connection.
func (c *Client) Connect(ctx context.Context) error {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %v", util.ErrNotConnected, err)
	}
	return nil
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// nicRecord is a NIC hash plus its ordering index, staged before assembly.
type nicRecord struct {
	idx  int
	node string
	nic  *model.RawInterface
}

type linkRecord struct {
	idx   int
	node  string
	nicID int
	link  model.Link
}

// FetchAll reads the entire topology cache and assembles a Store.
func (c *Client) FetchAll(ctx context.Context) (*Store, error) {
	keys, err := c.rdb.Keys(ctx, "*").Result()
	if err != nil {
		return nil, fmt.Errorf("listing topology keys: %w", err)
	}

	store := NewStore()
	nodes := make(map[string]*model.Node)
	var nics []nicRecord
	var links []linkRecord

	for _, key := range keys {
		parts := strings.Split(key, "|")
		vals, err := c.rdb.HGetAll(ctx, key).Result()
		if err != nil {
			util.Warnf("reading %s: %v", key, err)
			continue
		}

		switch parts[0] {
		case "FABRIC":
			if len(parts) != 2 {
				continue
			}
			id := atoi(parts[1])
			store.Fabrics[id] = &model.Fabric{ID: id, Name: vals["name"]}
		case "VLAN":
			if len(parts) != 2 {
				continue
			}
			id := atoi(parts[1])
			store.VLANs[id] = &model.VLAN{
				ID:       id,
				FabricID: atoi(vals["fabric"]),
				VID:      atoi(vals["vid"]),
				Name:     vals["name"],
			}
		case "SUBNET":
			if len(parts) != 2 {
				continue
			}
			id := atoi(parts[1])
			store.Subnets[id] = &model.Subnet{
				ID:     id,
				VLANID: atoi(vals["vlan"]),
				CIDR:   vals["cidr"],
				Name:   vals["name"],
			}
		case "NODE":
			if len(parts) != 2 {
				continue
			}
			nodes[parts[1]] = &model.Node{SystemID: parts[1], Hostname: vals["hostname"]}
		case "NIC":
			if len(parts) != 3 {
				continue
			}
			nics = append(nics, nicRecord{
				idx:  atoi(vals["idx"]),
				node: parts[1],
				nic: &model.RawInterface{
					ID:         atoi(parts[2]),
					Name:       vals["name"],
					Type:       model.InterfaceType(vals["type"]),
					MACAddress: vals["mac_address"],
					VLANID:     atoi(vals["vlan"]),
					Parents:    util.CSVToInts(vals["parents"]),
				},
			})
		case "NICLINK":
			if len(parts) != 4 {
				continue
			}
			links = append(links, linkRecord{
				idx:   atoi(vals["idx"]),
				node:  parts[1],
				nicID: atoi(parts[2]),
				link: model.Link{
					ID:        atoi(parts[3]),
					SubnetID:  atoi(vals["subnet"]),
					Mode:      model.LinkMode(vals["mode"]),
					IPAddress: vals["ip_address"],
				},
			})
		}
	}

	assemble(store, nodes, nics, links)
	return store, nil
}

// assemble attaches links to NICs and NICs to nodes, in reported order.
func assemble(store *Store, nodes map[string]*model.Node, nics []nicRecord, links []linkRecord) {
	sort.Slice(links, func(i, j int) bool { return links[i].idx < links[j].idx })
	sort.Slice(nics, func(i, j int) bool { return nics[i].idx < nics[j].idx })

	byNode := make(map[string]map[int]*model.RawInterface)
	for _, rec := range nics {
		node, ok := nodes[rec.node]
		if !ok {
			util.Warnf("NIC %d references unknown node %s", rec.nic.ID, rec.node)
			continue
		}
		node.Interfaces = append(node.Interfaces, rec.nic)
		if byNode[rec.node] == nil {
			byNode[rec.node] = make(map[int]*model.RawInterface)
		}
		byNode[rec.node][rec.nic.ID] = rec.nic
	}
	for _, rec := range links {
		nic := byNode[rec.node][rec.nicID]
		if nic == nil {
			util.Warnf("link %d references unknown NIC %d on node %s", rec.link.ID, rec.nicID, rec.node)
			continue
		}
		nic.Links = append(nic.Links, rec.link)
	}

	systemIDs := make([]string, 0, len(nodes))
	for id := range nodes {
		systemIDs = append(systemIDs, id)
	}
	sort.Strings(systemIDs)
	for _, id := range systemIDs {
		deriveChildren(nodes[id].Interfaces)
		store.Nodes = append(store.Nodes, nodes[id])
	}
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
