package napschedule

// MaxAgeMonths is the last row of the age tables. Older babies reuse it.
const MaxAgeMonths = 18

// WakeWindowRange bounds the awake time between sleeps, in minutes.
type WakeWindowRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// NapDuration holds the expected nap lengths in minutes.
type NapDuration struct {
	FirstNap  float64 `json:"firstNap"`
	OtherNaps float64 `json:"otherNaps"`
}

// AgeConfig is the resolved table row for one age.
type AgeConfig struct {
	WakeWindow   WakeWindowRange `json:"wakeWindowRange"`
	NumberOfNaps int             `json:"numberOfNaps"`
	NapDuration  NapDuration     `json:"napDuration"`
}

var wakeWindowByAge = [MaxAgeMonths + 1]WakeWindowRange{
	// newborns
	{Min: 45, Max: 90},
	{Min: 60, Max: 90},
	{Min: 60, Max: 105},
	{Min: 75, Max: 120},
	// 4-6 months
	{Min: 90, Max: 150},
	{Min: 120, Max: 180},
	{Min: 120, Max: 180},
	// 7-9 months
	{Min: 150, Max: 210},
	{Min: 150, Max: 240},
	{Min: 180, Max: 270},
	// 10-12 months
	{Min: 180, Max: 270},
	{Min: 210, Max: 300},
	{Min: 240, Max: 300},
	// toddlers
	{Min: 240, Max: 360},
	{Min: 300, Max: 360},
	{Min: 300, Max: 420},
	{Min: 300, Max: 420},
	{Min: 360, Max: 480},
	{Min: 360, Max: 480},
}

var napsByAge = [MaxAgeMonths + 1]int{
	4, 4, 4,
	3, 3, 3,
	2, 2, 2, 2, 2, 2, 2, 2, 2,
	1, 1, 1, 1,
}

// OtherNaps drops to zero once the day collapses to a single nap.
var napDurationByAge = [MaxAgeMonths + 1]NapDuration{
	{FirstNap: 60, OtherNaps: 45},
	{FirstNap: 60, OtherNaps: 45},
	{FirstNap: 90, OtherNaps: 60},
	{FirstNap: 90, OtherNaps: 60},
	{FirstNap: 90, OtherNaps: 75},
	{FirstNap: 90, OtherNaps: 75},
	{FirstNap: 90, OtherNaps: 90},
	{FirstNap: 90, OtherNaps: 90},
	{FirstNap: 90, OtherNaps: 90},
	{FirstNap: 90, OtherNaps: 90},
	{FirstNap: 90, OtherNaps: 90},
	{FirstNap: 90, OtherNaps: 90},
	{FirstNap: 90, OtherNaps: 90},
	{FirstNap: 90, OtherNaps: 90},
	{FirstNap: 90, OtherNaps: 90},
	{FirstNap: 120, OtherNaps: 0},
	{FirstNap: 120, OtherNaps: 0},
	{FirstNap: 120, OtherNaps: 0},
	{FirstNap: 120, OtherNaps: 0},
}

// ConfigForAge resolves the table row for a whole-month age. Ages are clamped
// into [0, MaxAgeMonths]; an empty row falls back to the last one.
func ConfigForAge(ageMonths int) AgeConfig {
	key := clampAgeKey(ageMonths)

	wake := wakeWindowByAge[key]
	if wake.Min <= 0 || wake.Max <= 0 {
		wake = wakeWindowByAge[MaxAgeMonths]
	}
	naps := napsByAge[key]
	if naps <= 0 {
		naps = napsByAge[MaxAgeMonths]
	}
	duration := napDurationByAge[key]
	if duration == (NapDuration{}) {
		duration = napDurationByAge[MaxAgeMonths]
	}

	return AgeConfig{
		WakeWindow:   wake,
		NumberOfNaps: naps,
		NapDuration:  duration,
	}
}

func clampAgeKey(ageMonths int) int {
	switch {
	case ageMonths < 0:
		return 0
	case ageMonths > MaxAgeMonths:
		return MaxAgeMonths
	default:
		return ageMonths
	}
}
