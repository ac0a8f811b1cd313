package topology

import (
	"testing"
)

func TestStore_UpdateIdempotent(t *testing.T) {
	current, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	vlanBefore := current.VLANByID(5001)

	// Re-parsing the same document yields value-equal but distinct objects;
	// Update must notice nothing changed and keep the current ones.
	fresh, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if current.Update(fresh) {
		t.Error("Update with value-equal data should report no change")
	}
	if current.Generation() != 0 {
		t.Errorf("generation = %d, want 0", current.Generation())
	}
	if current.VLANByID(5001) != vlanBefore {
		t.Error("unchanged update must preserve pointer identity")
	}
}

func TestStore_UpdateDetectsChange(t *testing.T) {
	current, _ := Parse([]byte(sampleYAML))
	fresh, _ := Parse([]byte(sampleYAML))
	fresh.NodeBySystemID("abc123").Interfaces[0].Name = "eno1"

	if !current.Update(fresh) {
		t.Fatal("Update should report the rename")
	}
	if current.Generation() != 1 {
		t.Errorf("generation = %d, want 1", current.Generation())
	}
	if current.NodeBySystemID("abc123").Interfaces[0].Name != "eno1" {
		t.Error("content should have been swapped")
	}
}

func TestStore_VLANsOnFabricOrdered(t *testing.T) {
	store, _ := Parse([]byte(sampleYAML))
	vlans := store.VLANsOnFabric(0)
	if len(vlans) != 2 {
		t.Fatalf("got %d vlans, want 2", len(vlans))
	}
	if vlans[0].VID != 0 || vlans[1].VID != 10 {
		t.Errorf("vlans not ordered by VID: %d, %d", vlans[0].VID, vlans[1].VID)
	}
}

func TestStore_LookupsShareIdentity(t *testing.T) {
	store, _ := Parse([]byte(sampleYAML))
	if store.VLANByID(5001) != store.VLANsOnFabric(0)[0] {
		t.Error("lookups must hand out the same *VLAN")
	}
}

func TestStore_UnknownLookups(t *testing.T) {
	store := NewStore()
	if store.FabricByID(1) != nil || store.VLANByID(1) != nil || store.SubnetByID(1) != nil {
		t.Error("unknown ids should resolve to nil")
	}
	if store.NodeInterfaces("nope") != nil {
		t.Error("unknown node should yield nil interfaces")
	}
}
