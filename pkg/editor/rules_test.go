package editor

import (
	"testing"

	"github.com/nodenet-io/nodenet/internal/testutil"
	"github.com/nodenet-io/nodenet/pkg/model"
)

// ============================================================================
// Alias Eligibility Tests
// ============================================================================

func TestCanAddAlias(t *testing.T) {
	tests := []struct {
		name  string
		links []model.Link
		want  bool
	}{
		{"static link", []model.Link{testutil.StaticLink(10, testutil.SubnetMain, "192.168.122.10")}, true},
		{"auto link", []model.Link{testutil.AutoLink(10, testutil.SubnetMain)}, true},
		{"dhcp only", []model.Link{testutil.DHCPLink(10, testutil.SubnetMain)}, false},
		{"link_up only", []model.Link{{ID: 10, Mode: model.LinkModeLinkUp}}, false},
		{"no links", nil, false},
		{"dhcp then static", []model.Link{
			testutil.DHCPLink(10, testutil.SubnetMain),
			testutil.StaticLink(11, testutil.SubnetSpare, "192.168.100.5"),
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEditor()
			rows := e.Reconcile(testutil.Wire(
				testutil.NIC(1, "eth0", testutil.VLANUntagged, tt.links...)))
			if got := e.CanAddAlias(rows[0]); got != tt.want {
				t.Errorf("CanAddAlias() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanAddAlias_NeverOnAliasRows(t *testing.T) {
	e, _ := newTestEditor()
	rows := e.Reconcile(testutil.Wire(testutil.NIC(1, "eth0", testutil.VLANUntagged,
		testutil.StaticLink(10, testutil.SubnetMain, "192.168.122.10"),
		testutil.AutoLink(11, testutil.SubnetSpare),
	)))

	if !e.CanAddAlias(rows[0]) {
		t.Error("CanAddAlias(first-link row) = false, want true")
	}
	if e.CanAddAlias(rows[1]) {
		t.Error("CanAddAlias(alias row) = true, want false")
	}
	if e.CanAddAlias(nil) {
		t.Error("CanAddAlias(nil) = true, want false")
	}
}

// ============================================================================
// VLAN Eligibility Tests
// ============================================================================

func TestCanAddVLAN_ConsumedByChildren(t *testing.T) {
	e, _ := newTestEditor()
	rows := e.Reconcile(testutil.Wire(
		testutil.NIC(1, "eth0", testutil.VLANUntagged),
		testutil.VLANChild(4, "eth0.10", testutil.VLANTen, 1),
	))

	nic := rows[0]
	if !e.CanAddVLAN(nic) {
		t.Error("CanAddVLAN() = false with two fabric VLANs left")
	}
	if !e.CanAddAnotherVLAN(nic) {
		t.Error("CanAddAnotherVLAN() = false with two fabric VLANs left")
	}

	vlans := e.unusedVLANs(nic)
	if len(vlans) != 2 {
		t.Fatalf("len(unusedVLANs) = %d, want 2", len(vlans))
	}
	if vlans[0].ID != testutil.VLANUntagged || vlans[1].ID != testutil.VLANTwenty {
		t.Errorf("unusedVLANs = [%d %d], want [%d %d]",
			vlans[0].ID, vlans[1].ID, testutil.VLANUntagged, testutil.VLANTwenty)
	}
}

func TestCanAddVLAN_LastVLANLeft(t *testing.T) {
	e, _ := newTestEditor()
	rows := e.Reconcile(testutil.Wire(
		testutil.NIC(1, "eth0", testutil.VLANUntagged),
		testutil.VLANChild(4, "eth0.0", testutil.VLANUntagged, 1),
		testutil.VLANChild(5, "eth0.10", testutil.VLANTen, 1),
	))

	nic := rows[0]
	if !e.CanAddVLAN(nic) {
		t.Error("CanAddVLAN() = false with one VLAN left")
	}
	if e.CanAddAnotherVLAN(nic) {
		t.Error("CanAddAnotherVLAN() = true with only one VLAN left")
	}
}

func TestCanAddVLAN_AllConsumed(t *testing.T) {
	e, _ := newTestEditor()
	rows := e.Reconcile(testutil.Wire(
		testutil.NIC(1, "eth0", testutil.VLANUntagged),
		testutil.VLANChild(4, "eth0.0", testutil.VLANUntagged, 1),
		testutil.VLANChild(5, "eth0.10", testutil.VLANTen, 1),
		testutil.VLANChild(6, "eth0.20", testutil.VLANTwenty, 1),
	))

	if e.CanAddVLAN(rows[0]) {
		t.Error("CanAddVLAN() = true with every fabric VLAN consumed")
	}
}

func TestCanAddVLAN_WrongRowTypes(t *testing.T) {
	e, _ := newTestEditor()
	rows := e.Reconcile(testutil.Wire(
		testutil.NIC(1, "eth0", testutil.VLANUntagged,
			testutil.StaticLink(10, testutil.SubnetMain, "192.168.122.10"),
			testutil.AutoLink(11, testutil.SubnetSpare)),
		testutil.VLANChild(4, "eth0.10", testutil.VLANTen, 1),
	))

	var alias, vlanRow *InterfaceRow
	for _, row := range rows {
		switch row.Type {
		case model.TypeAlias:
			alias = row
		case model.TypeVLAN:
			vlanRow = row
		}
	}
	if e.CanAddVLAN(alias) {
		t.Error("CanAddVLAN(alias row) = true, want false")
	}
	if e.CanAddVLAN(vlanRow) {
		t.Error("CanAddVLAN(vlan row) = true, want false")
	}
}

func TestCanAddVLAN_UnresolvedFabric(t *testing.T) {
	e, _ := newTestEditor()
	// VLAN id 999 is unknown to the store, so the row has no fabric.
	rows := e.Reconcile(testutil.Wire(testutil.NIC(1, "eth0", 999)))

	if e.CanAddVLAN(rows[0]) {
		t.Error("CanAddVLAN() = true for a row with no resolvable fabric")
	}
}

// ============================================================================
// Bond Eligibility Tests
// ============================================================================

func TestCanCreateBond(t *testing.T) {
	e, _ := newTestEditor()
	rows := e.Reconcile(testutil.Wire(
		testutil.NIC(1, "eth0", testutil.VLANUntagged),
		testutil.NIC(2, "eth1", testutil.VLANUntagged),
		testutil.NIC(3, "eth2", testutil.VLANTen),
		testutil.NIC(4, "eth3", testutil.VLANUntagged,
			testutil.StaticLink(40, testutil.SubnetMain, "192.168.122.40"),
			testutil.AutoLink(41, testutil.SubnetSpare)),
		testutil.NIC(5, "eth4", testutil.VLANUntagged),
		testutil.Bond(6, "bond0", testutil.VLANUntagged, []int{5}),
	))

	byName := make(map[string]*InterfaceRow)
	for _, row := range rows {
		byName[row.Name] = row
	}

	tests := []struct {
		name string
		rows []*InterfaceRow
		want bool
	}{
		{"two nics same vlan", []*InterfaceRow{byName["eth0"], byName["eth1"]}, true},
		{"single nic", []*InterfaceRow{byName["eth0"]}, true},
		{"different vlans", []*InterfaceRow{byName["eth0"], byName["eth2"]}, false},
		{"includes bond", []*InterfaceRow{byName["eth0"], byName["bond0"]}, false},
		{"includes alias", []*InterfaceRow{byName["eth3"], byName["eth3:1"]}, false},
		{"empty", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.CanCreateBond(tt.rows); got != tt.want {
				t.Errorf("CanCreateBond() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanCreateBond_ComparesVLANByIdentity(t *testing.T) {
	e, _ := newTestEditor()

	a := &model.VLAN{ID: testutil.VLANUntagged, FabricID: testutil.FabricID}
	b := &model.VLAN{ID: testutil.VLANUntagged, FabricID: testutil.FabricID}
	rows := []*InterfaceRow{
		{ID: 1, Type: model.TypePhysical, VLAN: a},
		{ID: 2, Type: model.TypePhysical, VLAN: b},
	}
	if e.CanCreateBond(rows) {
		t.Error("distinct VLAN objects with the same id treated as matching")
	}

	rows[1].VLAN = a
	if !e.CanCreateBond(rows) {
		t.Error("shared VLAN object rejected")
	}
}

func TestCanCreateBond_NilVLANNeverMatches(t *testing.T) {
	e, _ := newTestEditor()
	rows := []*InterfaceRow{
		{ID: 1, Type: model.TypePhysical},
		{ID: 2, Type: model.TypePhysical},
	}
	if e.CanCreateBond(rows) {
		t.Error("rows with unresolved VLANs treated as bondable")
	}
}

// ============================================================================
// Name Validation Tests
// ============================================================================

func TestIsInterfaceNameInvalid(t *testing.T) {
	e, _ := newTestEditor()
	rows := e.Reconcile(testutil.Wire(
		testutil.NIC(1, "eth0", testutil.VLANUntagged),
		testutil.NIC(2, "eth1", testutil.VLANUntagged),
	))

	row := rows[0]

	row.Name = "eth1"
	if !e.IsInterfaceNameInvalid(row) {
		t.Error("duplicate name accepted")
	}

	row.Name = "eth0"
	if e.IsInterfaceNameInvalid(row) {
		t.Error("own name rejected")
	}

	row.Name = "ETH1"
	if e.IsInterfaceNameInvalid(row) {
		t.Error("comparison is case-sensitive; ETH1 should not collide with eth1")
	}

	row.Name = "eno1"
	if e.IsInterfaceNameInvalid(row) {
		t.Error("fresh name rejected")
	}
}
