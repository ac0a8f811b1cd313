package gateway

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/nodenet-io/nodenet/pkg/model"
)

// ===================== Queue Encoding Tests =====================

func TestLinkSubnetFields(t *testing.T) {
	fields := linkSubnetFields(4, LinkSubnetParams{
		Mode:      model.LinkModeStatic,
		Subnet:    3,
		LinkID:    10,
		IPAddress: "192.168.122.10",
	})

	if fields["id"] != "4" || fields["mode"] != "static" || fields["subnet"] != "3" ||
		fields["link_id"] != "10" || fields["ip_address"] != "192.168.122.10" {
		t.Errorf("unexpected fields: %v", fields)
	}
}

func TestLinkSubnetFields_NewLinkOmitsLinkID(t *testing.T) {
	fields := linkSubnetFields(4, LinkSubnetParams{
		Mode:   model.LinkModeAuto,
		Subnet: 3,
		LinkID: -1,
	})

	if _, ok := fields["link_id"]; ok {
		t.Error("negative link id must not be encoded")
	}
	if _, ok := fields["ip_address"]; !ok {
		t.Error("ip_address field should always be present")
	}
}

func TestCreateVLANFields_NoSubnet(t *testing.T) {
	fields := createVLANFields(CreateVLANParams{
		Parent: 1,
		VLAN:   5002,
		Mode:   model.LinkModeLinkUp,
	})

	if _, ok := fields["subnet"]; ok {
		t.Error("zero subnet must not be encoded")
	}
	if fields["parent"] != "1" || fields["vlan"] != "5002" || fields["mode"] != "link_up" {
		t.Errorf("unexpected fields: %v", fields)
	}
}

func TestCreateBondFields(t *testing.T) {
	fields := createBondFields(CreateBondParams{
		Name:           "bond0",
		MACAddress:     "52:54:00:12:34:56",
		Parents:        []int{1, 2},
		VLAN:           5001,
		BondMode:       model.BondModeActiveBackup,
		LACPRate:       model.LACPRateSlow,
		XmitHashPolicy: model.XmitHashLayer2,
	})

	want := map[string]string{
		"name":                  "bond0",
		"mac_address":           "52:54:00:12:34:56",
		"parents":               "1,2",
		"vlan":                  "5001",
		"bond_mode":             "active-backup",
		"bond_lacp_rate":        "slow",
		"bond_xmit_hash_policy": "layer2",
	}
	for k, v := range want {
		if fields[k] != v {
			t.Errorf("fields[%q] = %q, want %q", k, fields[k], v)
		}
	}
}

// ===================== Dispatcher Tests =====================

func TestDispatcher_RunsCalls(t *testing.T) {
	d := NewDispatcher(time.Second)

	var mu sync.Mutex
	var ran []string
	d.Go("first", func(ctx context.Context) error {
		mu.Lock()
		defer mu.Unlock()
		ran = append(ran, "first")
		return nil
	})
	d.Go("second", func(ctx context.Context) error {
		mu.Lock()
		defer mu.Unlock()
		ran = append(ran, "second")
		return errors.New("rejected")
	})
	d.Wait()

	if len(ran) != 2 {
		t.Errorf("ran %d calls, want 2", len(ran))
	}
}

func TestDispatcher_CallGetsDeadline(t *testing.T) {
	d := NewDispatcher(time.Second)

	got := make(chan bool, 1)
	d.Go("probe", func(ctx context.Context) error {
		_, ok := ctx.Deadline()
		got <- ok
		return nil
	})
	d.Wait()

	if !<-got {
		t.Error("dispatched call should carry a deadline")
	}
}
