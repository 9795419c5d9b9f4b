package offline

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/liftwise/coach/internal/catalog"
	"github.com/liftwise/coach/internal/training"
)

// compoundPreference is the fixed allowlist of compound movements preferred
// when several substitutes survive filtering.
var compoundPreference = map[string]bool{
	"Back Squat":          true,
	"Front Squat":         true,
	"Leg Press":           true,
	"Hip Thrust":          true,
	"Romanian Deadlift":   true,
	"Deadlift":            true,
	"Bench Press":         true,
	"Incline Bench Press": true,
	"Overhead Press":      true,
	"Barbell Row":         true,
	"Pull-Up":             true,
}

// resolveSubstitution swaps an exercise that targets a painful body part for
// a safe alternative. Unknown exercises fail open: no substitution. An empty
// candidate pool is a logged limitation, not an error.
func (e *Engine) resolveSubstitution(
	ctx context.Context,
	name string,
	flags []training.PainFlag,
) *training.Substitution {
	descriptor, ok := catalog.Lookup(name)
	if !ok {
		return nil
	}

	flag, triggered := firstTriggeringFlag(descriptor, flags)
	if !triggered {
		return nil
	}

	candidates := candidatePool(name, flag.BodyPart)
	if len(candidates) == 0 {
		e.logger.LogAttrs(ctx, slog.LevelWarn, "no substitute available, keeping original exercise",
			slog.String("exercise", name),
			slog.String("body_part", flag.BodyPart))
		return nil
	}

	preferred := preferAntagonists(candidates, flag.BodyPart)
	preferred = preferCompounds(preferred)

	// Sort by name so the pick is deterministic regardless of map iteration.
	sort.Slice(preferred, func(i, j int) bool { return preferred[i].Name < preferred[j].Name })

	return &training.Substitution{
		From:   name,
		To:     preferred[0].Name,
		Reason: fmt.Sprintf("%s pain in %s", flag.Severity, flag.BodyPart),
	}
}

// firstTriggeringFlag returns the first active flag whose body part
// intersects the exercise's targeted parts. Flags are not combined.
func firstTriggeringFlag(d catalog.Descriptor, flags []training.PainFlag) (training.PainFlag, bool) {
	for _, flag := range flags {
		if d.Targets(flag.BodyPart) {
			return flag, true
		}
	}
	return training.PainFlag{}, false
}

// candidatePool returns every catalog exercise that does not target the
// painful body part, excluding the exercise being replaced.
func candidatePool(exclude, painfulPart string) []catalog.Descriptor {
	var pool []catalog.Descriptor
	for _, d := range catalog.All() {
		if d.Name == exclude || d.Targets(painfulPart) {
			continue
		}
		pool = append(pool, d)
	}
	return pool
}

// preferAntagonists narrows the pool to the fixed antagonist mapping when
// possible: upper-body pain prefers legs/core, leg pain prefers back/chest,
// core pain prefers legs/arms. Falls back to the full pool when the preferred
// subset is empty.
func preferAntagonists(pool []catalog.Descriptor, painfulPart string) []catalog.Descriptor {
	var preferredParts []string
	switch {
	case catalog.IsUpperBody(painfulPart):
		preferredParts = []string{catalog.PartLegs, catalog.PartCore}
	case painfulPart == catalog.PartLegs:
		preferredParts = []string{catalog.PartBack, catalog.PartChest}
	case painfulPart == catalog.PartCore:
		preferredParts = []string{catalog.PartLegs, catalog.PartArms}
	default:
		return pool
	}

	var preferred []catalog.Descriptor
	for _, d := range pool {
		for _, part := range preferredParts {
			if d.Targets(part) {
				preferred = append(preferred, d)
				break
			}
		}
	}
	if len(preferred) == 0 {
		return pool
	}
	return preferred
}

// preferCompounds narrows the pool to the compound allowlist when the
// intersection is non-empty.
func preferCompounds(pool []catalog.Descriptor) []catalog.Descriptor {
	var compounds []catalog.Descriptor
	for _, d := range pool {
		if compoundPreference[d.Name] {
			compounds = append(compounds, d)
		}
	}
	if len(compounds) == 0 {
		return pool
	}
	return compounds
}
