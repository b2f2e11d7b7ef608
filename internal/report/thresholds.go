package report

// Fixed domain constants shared by the report functions. These mirror
// the operating assumptions of the fleet team, not tunable settings.
const (
	// Underutilization window and flags.
	underutilWindowDays    = 7
	underutilMinTrips      = 3
	underutilMinDistanceKm = 100.0
	tripCountHistogramBins = 20

	// A vehicle active less than this long is "too new" to judge.
	longTermMinActiveDays = 28

	// Gap between consecutive trips of one vehicle considered idle.
	idleGapThresholdHrs = 6.0

	// Reference cruising speed for expected trip duration.
	expectedSpeedKmh = 40.0
	// Actual/expected duration ratio above which a trip is flagged.
	durationRatioThreshold = 2.0
	// Actual speed below which a trip counts as delayed or stuck.
	slowSpeedThresholdKmh = 10.0

	// Client usage bands relative to the fleet mean.
	clientLowBandFactor  = 0.5
	clientHighBandFactor = 1.5

	// Client-to-hub great-circle distance considered a mismatch.
	hubMismatchThresholdKm = 50.0

	// CO2 saved per electric kilometer driven, in kg.
	evEmissionFactorKgPerKm = 0.2
)
