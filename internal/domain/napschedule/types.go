package napschedule

import "time"

// LogType identifies a sleep log event.
type LogType string

const (
	LogWake  LogType = "wake"
	LogSleep LogType = "sleep"
)

// LogEvent is a timestamped wake or sleep transition.
type LogEvent struct {
	Type LogType   `json:"type"`
	Time time.Time `json:"time"`
}

// Input is the snapshot the engine schedules from.
type Input struct {
	BabyAgeMonths      float64    `json:"babyAgeMonths"`
	FirstWakeTimeToday time.Time  `json:"firstWakeTimeToday"`
	CurrentTime        time.Time  `json:"currentTime"`
	ActualNapDurations []float64  `json:"actualNapDurations"`
	Logs               []LogEvent `json:"logs"`
	DSTChange          bool       `json:"timezoneOrDstChange"`
}

// ScheduledNap is one projected nap.
type ScheduledNap struct {
	NapNumber  int       `json:"napNumber"`
	StartTime  time.Time `json:"startTime"`
	EndTime    time.Time `json:"endTime"`
	Duration   float64   `json:"duration"`
	WakeWindow float64   `json:"wakeWindow"`
}

// Adjustments reports which heuristics applied.
type Adjustments struct {
	EarlyWake      bool `json:"earlyWake"`
	CatnapDetected bool `json:"catnapDetected"`
	DSTAdjustment  bool `json:"dstAdjustment"`
}

// Schedule is the engine output.
type Schedule struct {
	ScheduledNaps      []ScheduledNap `json:"scheduledNaps"`
	RecommendedBedtime time.Time      `json:"recommendedBedtime"`
	NightSleepDuration int            `json:"nightSleepDuration"`
	IdealWakeWindow    float64        `json:"idealWakeWindow"`
	Config             AgeConfig      `json:"config"`
	Adjustments        Adjustments    `json:"adjustments"`
	Trace              []StepResult   `json:"trace,omitempty"`
}

// AgeInput is an age expressed in a caller-chosen unit.
type AgeInput struct {
	Value *float64 `json:"value"`
	Unit  string   `json:"unit"`
}

// Request captures the payload accepted by the planner service. Timestamps
// are RFC3339 or HH:MM on the current day in the resolved timezone.
type Request struct {
	Age          AgeInput       `json:"age"`
	FirstWake    string         `json:"firstWake"`
	CurrentTime  string         `json:"currentTime"`
	NapDurations []float64      `json:"napDurations"`
	Logs         []RequestLog   `json:"logs"`
	Sessions     []RequestSleep `json:"sessions"`
	DSTChange    *bool          `json:"dstChange"`
	Timezone     string         `json:"timezone"`
}

// RequestLog is the wire form of LogEvent.
type RequestLog struct {
	Type string `json:"type"`
	Time string `json:"time"`
}

// RequestSleep is the wire form of a recorded sleep session. An empty End
// means the baby is still asleep.
type RequestSleep struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Response is serialized back to API consumers.
type Response struct {
	Schedule Schedule `json:"schedule"`
	Text     string   `json:"text"`
	Timezone string   `json:"timezone"`
	Cached   bool     `json:"cached"`
}

// Config wires runtime settings for the planner domain.
type Config struct {
	Timezone      string
	AutoDetectDST bool
	CacheTTL      time.Duration
}
