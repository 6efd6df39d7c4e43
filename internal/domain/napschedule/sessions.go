package napschedule

import (
	"sort"
	"time"
)

// Session is a recorded sleep period. A zero End means still asleep.
type Session struct {
	Start time.Time
	End   time.Time
}

// HistoryFromSessions turns today's recorded sleep into nap durations and
// wake/sleep log events. Sleep that ended by firstWake is the night and is
// skipped; a session straddling firstWake is clipped to it. Sessions that
// start after now are ignored.
func HistoryFromSessions(sessions []Session, firstWake, now time.Time) ([]float64, []LogEvent) {
	sorted := make([]Session, 0, len(sessions))
	for _, s := range sessions {
		if s.Start.IsZero() {
			continue
		}
		sorted = append(sorted, s)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	var (
		durations []float64
		logs      []LogEvent
	)
	for _, s := range sorted {
		if !now.IsZero() && s.Start.After(now) {
			continue
		}
		open := s.End.IsZero()
		if !open && !s.End.After(firstWake) {
			continue
		}
		if !open && !s.End.After(s.Start) {
			continue
		}
		start := s.Start
		if start.Before(firstWake) {
			start = firstWake
		}

		logs = append(logs, LogEvent{Type: LogSleep, Time: start})
		if open {
			continue
		}
		durations = append(durations, s.End.Sub(start).Minutes())
		logs = append(logs, LogEvent{Type: LogWake, Time: s.End})
	}
	return durations, logs
}
