package napschedule

import (
	"fmt"
	"math"
	"time"
)

const (
	napShrinkMinutes        = 15
	bedtimeExtraWakeMinutes = 30
	bedtimeWindowStart      = 18*60 + 30
	bedtimeWindowEnd        = 20*60 + 30
	youngNightSleepMinutes  = 660
	olderNightSleepMinutes  = 720
	youngNightSleepAgeLimit = 6
)

// Generate derives today's remaining naps and a bedtime from the snapshot in.
// It keeps no state between calls; identical input yields identical output.
// A zero CurrentTime means now.
func Generate(in Input) (Schedule, error) {
	if err := validateInput(in); err != nil {
		return Schedule{}, err
	}

	current := in.CurrentTime
	if current.IsZero() {
		current = time.Now().In(in.FirstWakeTimeToday.Location())
	}

	cfg := ConfigForAge(ageKey(in.BabyAgeMonths))
	window, trace := deriveIdealWakeWindow(adjustContext{
		window:             cfg.WakeWindow,
		firstWake:          in.FirstWakeTimeToday,
		dstChange:          in.DSTChange,
		actualNapDurations: in.ActualNapDurations,
	})

	anchor := schedulingAnchor(current, in.FirstWakeTimeToday, in.Logs)
	naps, window, next := projectNaps(cfg, window, anchor, len(in.ActualNapDurations))

	base := next
	if len(naps) > 0 {
		base = naps[len(naps)-1].EndTime
	}

	nightSleep := olderNightSleepMinutes
	if in.BabyAgeMonths < youngNightSleepAgeLimit {
		nightSleep = youngNightSleepMinutes
	}

	return Schedule{
		ScheduledNaps:      naps,
		RecommendedBedtime: recommendBedtime(base, window),
		NightSleepDuration: nightSleep,
		IdealWakeWindow:    window,
		Config:             cfg,
		Adjustments: Adjustments{
			EarlyWake:      isEarlyWake(in.FirstWakeTimeToday),
			CatnapDetected: anyCatnap(in.ActualNapDurations),
			DSTAdjustment:  in.DSTChange,
		},
		Trace: trace,
	}, nil
}

func validateInput(in Input) error {
	if math.IsNaN(in.BabyAgeMonths) || math.IsInf(in.BabyAgeMonths, 0) || in.BabyAgeMonths < 0 {
		return ErrInvalidAge
	}
	if in.FirstWakeTimeToday.IsZero() {
		return fmt.Errorf("first wake time: %w", ErrInvalidTimestamp)
	}
	for i, d := range in.ActualNapDurations {
		if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
			return fmt.Errorf("nap %d: %w", i+1, ErrInvalidNapDuration)
		}
	}
	for i, log := range in.Logs {
		if log.Type != LogWake && log.Type != LogSleep {
			return fmt.Errorf("log %d (%q): %w", i+1, log.Type, ErrInvalidLogEvent)
		}
		if log.Time.IsZero() {
			return fmt.Errorf("log %d: %w", i+1, ErrInvalidTimestamp)
		}
	}
	return nil
}

// ageKey floors fractional months onto the whole-month table.
func ageKey(ageMonths float64) int {
	if ageMonths >= MaxAgeMonths {
		return MaxAgeMonths
	}
	return int(math.Floor(ageMonths))
}

// schedulingAnchor is where the next wake window starts counting: now, but
// never before the first wake, and lifted to the latest logged wake.
func schedulingAnchor(current, firstWake time.Time, logs []LogEvent) time.Time {
	anchor := current
	if anchor.Before(firstWake) {
		anchor = firstWake
	}

	var latestWake time.Time
	found := false
	for _, log := range logs {
		if log.Type != LogWake {
			continue
		}
		if !found || log.Time.After(latestWake) {
			latestWake = log.Time
			found = true
		}
	}
	if found && latestWake.After(anchor) {
		anchor = latestWake
	}
	return anchor
}

// projectNaps lays out the remaining naps back to back. It returns the naps,
// the wake window in effect after the last one, and the time the baby is
// next awake from.
func projectNaps(cfg AgeConfig, window float64, anchor time.Time, napsTaken int) ([]ScheduledNap, float64, time.Time) {
	remaining := cfg.NumberOfNaps - napsTaken
	naps := make([]ScheduledNap, 0, max(remaining, 0))

	next := anchor
	for i := 0; i < remaining; i++ {
		start := addMinutes(next, window)
		duration := cfg.NapDuration.OtherNaps
		if napsTaken == 0 && i == 0 {
			duration = cfg.NapDuration.FirstNap
		}
		end := addMinutes(start, duration)

		naps = append(naps, ScheduledNap{
			NapNumber:  napsTaken + i + 1,
			StartTime:  start,
			EndTime:    end,
			Duration:   duration,
			WakeWindow: window,
		})
		next = end

		if i < remaining-1 {
			window = math.Max(cfg.WakeWindow.Min, window-napShrinkMinutes)
		}
	}
	return naps, window, next
}

// recommendBedtime adds the longer evening wake window to base and pulls the
// result into the 18:30-20:30 window by time of day on the same date.
func recommendBedtime(base time.Time, window float64) time.Time {
	bedtime := addMinutes(base, window+bedtimeExtraWakeMinutes)

	tod := minuteOfDay(bedtime)
	if tod < bedtimeWindowStart {
		return atMinuteOfDay(bedtime, bedtimeWindowStart)
	}
	if tod > bedtimeWindowEnd {
		latest := atMinuteOfDay(bedtime, bedtimeWindowEnd)
		if bedtime.After(latest) {
			bedtime = latest
		}
	}
	return bedtime
}

func atMinuteOfDay(t time.Time, minute int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, minute/60, minute%60, 0, 0, t.Location())
}

func addMinutes(t time.Time, minutes float64) time.Time {
	return t.Add(time.Duration(minutes * float64(time.Minute)))
}

func anyCatnap(durations []float64) bool {
	for _, d := range durations {
		if isCatnap(d) {
			return true
		}
	}
	return false
}
