package napschedule

import (
	"fmt"
	"math"
	"strings"

	"github.com/yanqian/nap-planner/pkg/util"
)

// Format renders a schedule as plain text, one line per projected nap.
func Format(s Schedule) string {
	lines := make([]string, 0, len(s.ScheduledNaps)+2)

	if len(s.ScheduledNaps) == 0 {
		lines = append(lines, "No more naps scheduled for today.")
	} else {
		lines = append(lines, fmt.Sprintf("Next %d nap(s) scheduled:", len(s.ScheduledNaps)))
		for _, nap := range s.ScheduledNaps {
			lines = append(lines, fmt.Sprintf("  Nap %d: %s - %s (~%d min)",
				nap.NapNumber,
				nap.StartTime.Format(util.ClockLayout),
				nap.EndTime.Format(util.ClockLayout),
				int(math.Round(nap.Duration)),
			))
		}
	}

	lines = append(lines, fmt.Sprintf("Recommended bedtime: %s (target night sleep: %dh %dm)",
		s.RecommendedBedtime.Format(util.ClockLayout),
		s.NightSleepDuration/60,
		s.NightSleepDuration%60,
	))

	return strings.Join(lines, "\n")
}
