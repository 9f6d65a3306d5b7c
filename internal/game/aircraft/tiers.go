package aircraft

type SpeedTier struct {
	ID            string
	Label         string
	SpeedMps      float64
	MaxAltitudeFt float64
}

// Tiers is ordered by table position; the index is what FlightState stores.
var Tiers = [...]SpeedTier{
	{ID: "100", Label: "100 m/s", SpeedMps: 100, MaxAltitudeFt: 500},
	{ID: "500", Label: "500 m/s", SpeedMps: 500, MaxAltitudeFt: 5_000},
	{ID: "1000", Label: "1,000 m/s", SpeedMps: 1_000, MaxAltitudeFt: 15_000},
	{ID: "5000", Label: "5,000 m/s", SpeedMps: 5_000, MaxAltitudeFt: 45_000},
	{ID: "MACH10", Label: "Mach 10", SpeedMps: 3_430, MaxAltitudeFt: 80_000},
	{ID: "MACH20", Label: "Mach 20", SpeedMps: 6_860, MaxAltitudeFt: 95_000},
	{ID: "MACH50", Label: "Mach 50", SpeedMps: 17_150, MaxAltitudeFt: 100_000},
}

const (
	MIN_TIER = 0
	MAX_TIER = len(Tiers) - 1
)

func ClampTier(i int) int {
	if i < MIN_TIER {
		return MIN_TIER
	}
	if i > MAX_TIER {
		return MAX_TIER
	}
	return i
}

func TierAt(i int) SpeedTier {
	return Tiers[ClampTier(i)]
}

func Ceiling(i int) float64 {
	return TierAt(i).MaxAltitudeFt
}

// TierIndex looks a tier up by ID.
func TierIndex(id string) (int, bool) {
	for i, t := range Tiers {
		if t.ID == id {
			return i, true
		}
	}
	return 0, false
}

// TopSpeedMps is the fastest tier's speed; the camera normalises against it.
func TopSpeedMps() float64 {
	top := 0.0
	for _, t := range Tiers {
		if t.SpeedMps > top {
			top = t.SpeedMps
		}
	}
	return top
}

// TopAltitudeFt is the highest ceiling in the table.
func TopAltitudeFt() float64 {
	return Tiers[MAX_TIER].MaxAltitudeFt
}
