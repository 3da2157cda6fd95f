package parameter

// Density Modes
// Counts only; algorithms are identical between modes
const (
	// AmbientCountFull is the ambient mote count in full density
	AmbientCountFull = 350
	// AmbientCountLow is the ambient mote count in low-power density
	AmbientCountLow = 120

	// BurstBudgetFull is the per-event spawn budget in full density
	BurstBudgetFull = 120
	// BurstBudgetLow is the per-event spawn budget in low-power density
	BurstBudgetLow = 40
	// BurstPoolMultiplier sizes the pool to hold roughly this many simultaneous bursts
	BurstPoolMultiplier = 3

	// SnowCountFull is the snow flake count in full density
	SnowCountFull = 2000
	// SnowCountLow is the snow flake count in low-power density
	SnowCountLow = 700
)

// Ambient Field
const (
	// AmbientRadiusMin/Max bound the annulus around the trunk axis
	AmbientRadiusMin = 2.0
	AmbientRadiusMax = 5.0
	// AmbientHeightSpan is the total vertical spread, centered on y=0
	AmbientHeightSpan = 10.0

	// AmbientSpringStrength is the per-second pull toward home
	AmbientSpringStrength = 2.0
	// AmbientDamping multiplies velocity every frame
	AmbientDamping = 0.95

	// RepulsionRadius is the pointer influence radius in world units
	RepulsionRadius = 1.5
	// RepulsionForce is the per-second impulse at zero distance
	RepulsionForce = 5.0
	// RepulsionEpsilonSq skips repulsion below this squared distance
	RepulsionEpsilonSq = 1e-12

	// AttractStrength is the per-second pull toward the apex during the finale attract phase
	AttractStrength = 2.0
	// ExplodeStrength is the per-second outward push during the finale explode phase
	ExplodeStrength = 0.5
)

// Apex is the star point at the top of the tree
var (
	ApexX, ApexY, ApexZ = 0.0, 3.2, 0.0
	// ExplodeCenter is the reference point for the finale outward push
	ExplodeCenterX, ExplodeCenterY, ExplodeCenterZ = 0.0, 2.0, 0.0
)

// Finale Sequencer
const (
	// FinaleAttractEnd is the elapsed seconds at which attract hands over to explode
	FinaleAttractEnd = 0.8
	// FinaleExplodeEnd is the elapsed seconds at which explode hands over to settle
	FinaleExplodeEnd = 2.0
)

// Burst Pool
const (
	// BurstSpeedMin/Max bound the initial explosive speed (units per frame)
	BurstSpeedMin = 0.1
	BurstSpeedMax = 0.25
	// BurstGravity is the per-second downward impulse
	BurstGravity = 0.2
	// BurstDrag multiplies each velocity axis every frame
	BurstDrag = 0.98
	// BurstDecayRate is life lost per second; life starts at 1.0 (~0.67s)
	BurstDecayRate = 1.5
	// BurstParkCoord is where dead particles are moved, outside any visible volume
	BurstParkCoord = 9999.0
)

// Snow Field
const (
	SnowRadius    = 12.0
	SnowTop       = 10.0
	SnowBottom    = -8.0
	SnowSpanY     = 20.0
	SnowSpeedMin  = 0.5
	SnowSpeedMax  = 2.0
	SnowFallScale = 0.5
	SnowDriftX    = 0.5
	SnowDriftZ    = 0.3
	SnowDriftFreq = 0.8
	SnowOffsetMax = 100.0
)
