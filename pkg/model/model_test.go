package model

import (
	"testing"
)

// ===================== InterfaceType Tests =====================

func TestInterfaceType_Valid(t *testing.T) {
	tests := []struct {
		name     string
		typ      InterfaceType
		expected bool
	}{
		{"physical", TypePhysical, true},
		{"bond", TypeBond, true},
		{"vlan", TypeVLAN, true},
		{"alias is derived only", TypeAlias, false},
		{"empty", InterfaceType(""), false},
		{"unknown", InterfaceType("bridge"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.typ.Valid(); got != tt.expected {
				t.Errorf("Valid() = %v, want %v", got, tt.expected)
			}
		})
	}
}

// ===================== LinkMode Tests =====================

func TestLinkMode_HasAddress(t *testing.T) {
	tests := []struct {
		mode     LinkMode
		expected bool
	}{
		{LinkModeAuto, true},
		{LinkModeStatic, true},
		{LinkModeDHCP, false},
		{LinkModeLinkUp, false},
	}

	for _, tt := range tests {
		if got := tt.mode.HasAddress(); got != tt.expected {
			t.Errorf("%s.HasAddress() = %v, want %v", tt.mode, got, tt.expected)
		}
	}
}

// ===================== RawInterface Tests =====================

func TestRawInterface_Clone(t *testing.T) {
	ri := &RawInterface{
		ID:       1,
		Name:     "eth0",
		Type:     TypePhysical,
		VLANID:   5001,
		Parents:  []int{},
		Children: []int{9},
		Links: []Link{
			{ID: 10, SubnetID: 3, Mode: LinkModeStatic, IPAddress: "192.168.122.10"},
		},
	}

	c := ri.Clone()
	if c == ri {
		t.Fatal("Clone() returned the same pointer")
	}

	// Mutating the original must not affect the clone.
	ri.Name = "renamed"
	ri.Links[0].IPAddress = "192.168.122.99"
	ri.Children[0] = 42

	if c.Name != "eth0" {
		t.Errorf("clone Name = %q, want %q", c.Name, "eth0")
	}
	if c.Links[0].IPAddress != "192.168.122.10" {
		t.Errorf("clone link address = %q, want %q", c.Links[0].IPAddress, "192.168.122.10")
	}
	if c.Children[0] != 9 {
		t.Errorf("clone Children[0] = %d, want 9", c.Children[0])
	}
}

func TestRawInterface_CloneNil(t *testing.T) {
	var ri *RawInterface
	if ri.Clone() != nil {
		t.Error("Clone() of nil should be nil")
	}
}

func TestRawInterface_LinkByID(t *testing.T) {
	ri := &RawInterface{
		Links: []Link{
			{ID: 1, Mode: LinkModeDHCP},
			{ID: 2, Mode: LinkModeStatic, IPAddress: "10.0.0.2"},
		},
	}

	if l := ri.LinkByID(2); l == nil || l.IPAddress != "10.0.0.2" {
		t.Errorf("LinkByID(2) = %+v, want the static link", l)
	}
	if l := ri.LinkByID(99); l != nil {
		t.Errorf("LinkByID(99) = %+v, want nil", l)
	}
}

// ===================== Bond Parameter Tests =====================

func TestBondMode_Valid(t *testing.T) {
	for _, m := range BondModes {
		if !m.Valid() {
			t.Errorf("%s should be valid", m)
		}
	}
	if BondMode("round-robin").Valid() {
		t.Error("unknown mode should be invalid")
	}
}
