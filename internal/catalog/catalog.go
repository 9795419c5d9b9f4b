// Package catalog holds the static exercise reference data used by the
// substitution resolver: which body parts an exercise targets and whether it
// is a compound movement. Exercises outside the catalog are unknown and the
// resolver fails open on them.
package catalog

import (
	"slices"
	"sort"
)

// Body part identifiers used by descriptors and pain flags.
const (
	PartChest     = "chest"
	PartBack      = "back"
	PartShoulders = "shoulders"
	PartArms      = "arms"
	PartLegs      = "legs"
	PartCore      = "core"
)

// Descriptor describes one catalog exercise.
type Descriptor struct {
	Name      string
	BodyParts []string
	Compound  bool
}

// Targets reports whether the exercise targets the given body part.
func (d Descriptor) Targets(part string) bool {
	return slices.Contains(d.BodyParts, part)
}

var exercises = map[string]Descriptor{
	"Back Squat":            {Name: "Back Squat", BodyParts: []string{PartLegs, PartCore}, Compound: true},
	"Front Squat":           {Name: "Front Squat", BodyParts: []string{PartLegs, PartCore}, Compound: true},
	"Leg Press":             {Name: "Leg Press", BodyParts: []string{PartLegs}, Compound: true},
	"Bulgarian Split Squat": {Name: "Bulgarian Split Squat", BodyParts: []string{PartLegs}, Compound: false},
	"Leg Extension":         {Name: "Leg Extension", BodyParts: []string{PartLegs}, Compound: false},
	"Leg Curl":              {Name: "Leg Curl", BodyParts: []string{PartLegs}, Compound: false},
	"Romanian Deadlift":     {Name: "Romanian Deadlift", BodyParts: []string{PartLegs, PartBack}, Compound: true},
	"Deadlift":              {Name: "Deadlift", BodyParts: []string{PartLegs, PartBack, PartCore}, Compound: true},
	"Hip Thrust":            {Name: "Hip Thrust", BodyParts: []string{PartLegs}, Compound: true},
	"Bench Press":           {Name: "Bench Press", BodyParts: []string{PartChest, PartShoulders, PartArms}, Compound: true},
	"Incline Bench Press":   {Name: "Incline Bench Press", BodyParts: []string{PartChest, PartShoulders}, Compound: true},
	"Dumbbell Fly":          {Name: "Dumbbell Fly", BodyParts: []string{PartChest}, Compound: false},
	"Overhead Press":        {Name: "Overhead Press", BodyParts: []string{PartShoulders, PartArms}, Compound: true},
	"Lateral Raise":         {Name: "Lateral Raise", BodyParts: []string{PartShoulders}, Compound: false},
	"Barbell Row":           {Name: "Barbell Row", BodyParts: []string{PartBack, PartArms}, Compound: true},
	"Pull-Up":               {Name: "Pull-Up", BodyParts: []string{PartBack, PartArms}, Compound: true},
	"Lat Pulldown":          {Name: "Lat Pulldown", BodyParts: []string{PartBack, PartArms}, Compound: false},
	"Face Pull":             {Name: "Face Pull", BodyParts: []string{PartShoulders, PartBack}, Compound: false},
	"Biceps Curl":           {Name: "Biceps Curl", BodyParts: []string{PartArms}, Compound: false},
	"Triceps Pushdown":      {Name: "Triceps Pushdown", BodyParts: []string{PartArms}, Compound: false},
	"Plank":                 {Name: "Plank", BodyParts: []string{PartCore}, Compound: false},
	"Hanging Leg Raise":     {Name: "Hanging Leg Raise", BodyParts: []string{PartCore}, Compound: false},
	"Cable Crunch":          {Name: "Cable Crunch", BodyParts: []string{PartCore}, Compound: false},
}

// Lookup returns the descriptor for an exercise name.
func Lookup(name string) (Descriptor, bool) {
	d, ok := exercises[name]
	return d, ok
}

// All returns every catalog descriptor sorted by name so that callers
// iterating the catalog are deterministic.
func All() []Descriptor {
	all := make([]Descriptor, 0, len(exercises))
	for _, d := range exercises {
		all = append(all, d)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all
}

// UpperBodyParts are the parts covered by the upper-body antagonist rule.
var UpperBodyParts = []string{PartChest, PartBack, PartShoulders, PartArms}

// IsUpperBody reports whether a body part belongs to the upper body.
func IsUpperBody(part string) bool {
	return slices.Contains(UpperBodyParts, part)
}
