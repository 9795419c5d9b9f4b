// Package offline implements the deterministic decision engine: session plan
// generation, stall detection, pain-aware substitution, weekly review, and
// post-session insight. Every operation is a pure computation over its own
// arguments so identical input yields byte-identical output.
package offline

// Tunables for the prescription algorithms. These are deliberate
// simplifications kept in one place rather than scattered through control
// flow.
const (
	// Weight handling.
	BarWeightKg           = 20.0
	DefaultStartWeightKg  = 40.0
	WeightIncrementKg     = 2.5
	RoundIncrementKg      = 2.5
	HoldWeightReduction   = 0.95
	EmptyBarWarmupFactor  = 1.5
	RPEOvershootTolerance = 0.5

	// Warm-up ramp.
	EmptyBarReps    = 10
	EmptyBarRPECap  = 5.0
	WarmupRPECap    = 6.0
	warmupStepCount = 3

	// Readiness-driven effort caps and volume.
	ReducedRPECap             = 7.5
	RPECapBonus               = 0.5
	MaxRPECap                 = 9.5
	MinBackoffSets            = 1
	DoubleProgSets            = 3
	MinutesPerSet             = 3
	OptionalTimeCutoffMinutes = 45

	// Stall detection.
	StallWindowMin = 3
	DeloadFactor   = 0.92
	HighMeanRPE    = 9.0
	LowMeanReps    = 4.0

	// Weekly review.
	HugeVolumeKg         = 15000.0
	SolidVolumeKg        = 8000.0
	ShortSessionMinutes  = 40.0
	TargetWeeklySessions = 3
	MaxPRHighlights      = 3
)

// warmupFractions are the ramp steps as fractions of the top-set weight,
// paired with their target reps.
var warmupFractions = [warmupStepCount]struct {
	fraction float64
	reps     int
}{
	{fraction: 0.4, reps: 5},
	{fraction: 0.6, reps: 5},
	{fraction: 0.8, reps: 3},
}
