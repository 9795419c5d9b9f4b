package catalog

import (
	"sort"
	"testing"
)

func TestLookup(t *testing.T) {
	d, ok := Lookup("Back Squat")
	if !ok {
		t.Fatal("expected Back Squat to be in the catalog")
	}
	if !d.Compound {
		t.Error("expected Back Squat to be a compound movement")
	}
	if !d.Targets(PartLegs) {
		t.Error("expected Back Squat to target legs")
	}
	if d.Targets(PartChest) {
		t.Error("did not expect Back Squat to target chest")
	}

	if _, ok = Lookup("Underwater Basket Press"); ok {
		t.Error("expected unknown exercise to be absent")
	}
}

func TestAllSortedAndConsistent(t *testing.T) {
	all := All()
	if len(all) == 0 {
		t.Fatal("expected a non-empty catalog")
	}
	if !sort.SliceIsSorted(all, func(i, j int) bool { return all[i].Name < all[j].Name }) {
		t.Error("expected All() to be sorted by name")
	}
	for _, d := range all {
		if len(d.BodyParts) == 0 {
			t.Errorf("exercise %q has no body parts", d.Name)
		}
		if got, ok := Lookup(d.Name); !ok || got.Name != d.Name {
			t.Errorf("exercise %q not found through Lookup", d.Name)
		}
	}
}

func TestIsUpperBody(t *testing.T) {
	for _, part := range []string{PartChest, PartBack, PartShoulders, PartArms} {
		if !IsUpperBody(part) {
			t.Errorf("expected %s to be upper body", part)
		}
	}
	for _, part := range []string{PartLegs, PartCore} {
		if IsUpperBody(part) {
			t.Errorf("did not expect %s to be upper body", part)
		}
	}
}
