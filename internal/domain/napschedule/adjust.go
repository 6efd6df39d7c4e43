package napschedule

import (
	"math"
	"time"
)

const (
	catnapThresholdMinutes = 45
	catnapAdjustment       = -30
	earlyWakeBeforeMinute  = 6 * 60
	earlyWakeAdjustment    = -15
	dstAdjustment          = 30
)

// Names of the wake-window steps, in application order.
const (
	StepMidpoint  = "midpoint"
	StepEarlyWake = "early_wake"
	StepDSTShift  = "dst_shift"
	StepCatnap    = "catnap"
	StepClamp     = "clamp"
)

type adjustContext struct {
	window             WakeWindowRange
	firstWake          time.Time
	dstChange          bool
	actualNapDurations []float64
}

// wakeWindowStep is one named stage of the ideal wake-window derivation.
// apply returns the new value and whether the step changed anything.
type wakeWindowStep struct {
	name  string
	apply func(value float64, ctx adjustContext) (float64, bool)
}

// The order matters: additive terms stack and the clamp runs once, last.
var wakeWindowPipeline = []wakeWindowStep{
	{name: StepMidpoint, apply: midpointStep},
	{name: StepEarlyWake, apply: earlyWakeStep},
	{name: StepDSTShift, apply: dstShiftStep},
	{name: StepCatnap, apply: catnapStep},
	{name: StepClamp, apply: clampStep},
}

// StepResult records the value after a pipeline step.
type StepResult struct {
	Step  string  `json:"step"`
	Value float64 `json:"value"`
	Fired bool    `json:"fired"`
}

func deriveIdealWakeWindow(ctx adjustContext) (float64, []StepResult) {
	value := 0.0
	trace := make([]StepResult, 0, len(wakeWindowPipeline))
	for _, step := range wakeWindowPipeline {
		var fired bool
		value, fired = step.apply(value, ctx)
		trace = append(trace, StepResult{Step: step.name, Value: value, Fired: fired})
	}
	return value, trace
}

func midpointStep(_ float64, ctx adjustContext) (float64, bool) {
	return (ctx.window.Min + ctx.window.Max) / 2, true
}

func earlyWakeStep(value float64, ctx adjustContext) (float64, bool) {
	if !isEarlyWake(ctx.firstWake) {
		return value, false
	}
	return value + earlyWakeAdjustment, true
}

func dstShiftStep(value float64, ctx adjustContext) (float64, bool) {
	if !ctx.dstChange {
		return value, false
	}
	return value + dstAdjustment, true
}

func catnapStep(value float64, ctx adjustContext) (float64, bool) {
	if len(ctx.actualNapDurations) == 0 {
		return value, false
	}
	if !isCatnap(ctx.actualNapDurations[len(ctx.actualNapDurations)-1]) {
		return value, false
	}
	return value + catnapAdjustment, true
}

func clampStep(value float64, ctx adjustContext) (float64, bool) {
	clamped := clampMinutes(value, ctx.window)
	return clamped, clamped != value
}

func clampMinutes(value float64, window WakeWindowRange) float64 {
	return math.Max(window.Min, math.Min(window.Max, value))
}

func isCatnap(minutes float64) bool {
	return minutes < catnapThresholdMinutes
}

// isEarlyWake compares the hour:minute of t in its own location.
func isEarlyWake(t time.Time) bool {
	return minuteOfDay(t) < earlyWakeBeforeMinute
}

func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
