package track

// Lane dimensions (world units).
const (
	BaseWidth = 40.0
	MinWidth  = 10.0
)

// Section layout.
const (
	DefaultRes           = 0.5   // distance between sampling steps
	DefaultSectionLength = 500.0 // distance covered by one section
	DefaultWindow        = 4     // live sections kept by the streaming window
	MinWindow            = 2     // the section being walked plus one ahead
	DefaultSeed          = 1234567890
	PrefabMargin         = 5.0 // open run at both ends of a section
)

// Fill grid and budget.
const (
	FillQuantumX      = 0.05 // cross-section grid step (lane fraction)
	FillQuantumZ      = 1.0  // distance grid step
	FillMaxIterations = 1000
	FillMinCoverage   = 0.01
	FillMaxCoverage   = 0.05
	FillBlockPenalty  = 0.01 // extra budget charged per placed block
	FillMaxBlockWidth = 0.2
	FillMaxBlockDepth = 3.0

	// Coarsest sampling step that still gives the shallowest block two
	// cross-sections.
	MaxRes = FillQuantumZ / 2
)

// Block heights.
const (
	BlockMinHeight     = 1.0
	BlockHeightLow     = 1.5
	BlockHeightHigh    = 3.0
	PrefabHeightLow    = 1.0 // height scale at size challenge 0
	PrefabHeightHigh   = 4.0
	PrefabWallHeight   = 2.0
	DividerHeight      = 5.0
	DividerDepth       = 4.0
	PrefabSpacingLow   = 25.0
	PrefabSpacingHigh  = 5.0
	PrefabBasicKinds   = 3 // kinds available at prefab challenge 0
	ShortBlockDuration = 3.0
)

// Curve shaping.
const (
	CurveRateMax     = 0.0025
	WaveRateLow      = 0.002
	WaveRateHigh     = 0.005
	ZigZagMaxTurns   = 10
	ZigZagAngleScale = 0.9
	WidthGain        = 0.2 // first-order filter gain per step
)

// Powerups.
const (
	PowerupMaxCount  = 8.0
	PowerupMinCount  = 3.0
	PowerupHalfWidth = 0.02 // lane fraction
	PowerupHalfDepth = 1.0  // distance
	PowerupHover     = 1.0  // height above the floor
	PowerupRetries   = 20
	ClearanceWindow  = 8 // blocks scanned either side of the nearest one
	PowerupEdgeGap   = 0.01
	PowerupEdgeBand  = 0.15
)
