package napschedule

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testZone = time.FixedZone("Test/Local", 2*60*60)

func at(hour, minute int) time.Time {
	return time.Date(2024, time.March, 4, hour, minute, 0, 0, testZone)
}

func TestGenerateSixMonthDay(t *testing.T) {
	schedule, err := Generate(Input{
		BabyAgeMonths:      6,
		FirstWakeTimeToday: at(7, 0),
		CurrentTime:        at(7, 0),
	})
	require.NoError(t, err)

	require.Equal(t, 2, schedule.Config.NumberOfNaps)
	require.Len(t, schedule.ScheduledNaps, 2)

	first := schedule.ScheduledNaps[0]
	require.Equal(t, 1, first.NapNumber)
	require.Equal(t, at(9, 30), first.StartTime)
	require.Equal(t, at(11, 0), first.EndTime)
	require.Equal(t, 90.0, first.Duration)
	require.Equal(t, 150.0, first.WakeWindow)

	second := schedule.ScheduledNaps[1]
	require.Equal(t, 2, second.NapNumber)
	require.Equal(t, at(13, 15), second.StartTime)
	require.Equal(t, at(14, 45), second.EndTime)
	require.Equal(t, 90.0, second.Duration)
	require.Equal(t, 135.0, second.WakeWindow)

	require.Equal(t, at(18, 30), schedule.RecommendedBedtime)
	require.Equal(t, 720, schedule.NightSleepDuration)
	require.Equal(t, 135.0, schedule.IdealWakeWindow)
	require.Equal(t, Adjustments{}, schedule.Adjustments)
}

func TestGenerateCatnapShortensWindow(t *testing.T) {
	schedule, err := Generate(Input{
		BabyAgeMonths:      6,
		FirstWakeTimeToday: at(7, 0),
		CurrentTime:        at(9, 0),
		ActualNapDurations: []float64{30},
	})
	require.NoError(t, err)

	require.Len(t, schedule.ScheduledNaps, 1)
	nap := schedule.ScheduledNaps[0]
	require.Equal(t, 120.0, nap.WakeWindow)
	require.Equal(t, 2, nap.NapNumber)
	require.Equal(t, at(11, 0), nap.StartTime)
	require.Equal(t, 90.0, nap.Duration)
	require.True(t, schedule.Adjustments.CatnapDetected)
}

func TestGenerateEarlyWake(t *testing.T) {
	schedule, err := Generate(Input{
		BabyAgeMonths:      6,
		FirstWakeTimeToday: at(5, 30),
		CurrentTime:        at(5, 30),
	})
	require.NoError(t, err)

	require.Equal(t, 135.0, schedule.ScheduledNaps[0].WakeWindow)
	require.Equal(t, at(7, 45), schedule.ScheduledNaps[0].StartTime)
	require.Equal(t, 120.0, schedule.ScheduledNaps[1].WakeWindow)
	require.True(t, schedule.Adjustments.EarlyWake)
}

func TestGenerateAdjustmentsStackBeforeClamp(t *testing.T) {
	cases := []struct {
		name      string
		firstWake time.Time
		naps      []float64
		dst       bool
		want      float64
	}{
		{name: "dst only clamps to max", firstWake: at(7, 0), dst: true, want: 180},
		{name: "early wake and dst", firstWake: at(5, 30), dst: true, want: 165},
		{name: "early wake and catnap clamps to min", firstWake: at(5, 30), naps: []float64{30}, want: 120},
		{name: "all three", firstWake: at(5, 0), naps: []float64{20}, dst: true, want: 135},
		{name: "catnap only counts the latest nap", firstWake: at(7, 0), naps: []float64{20, 60}, want: 150},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			schedule, err := Generate(Input{
				BabyAgeMonths:      6,
				FirstWakeTimeToday: tc.firstWake,
				CurrentTime:        tc.firstWake,
				ActualNapDurations: tc.naps,
				DSTChange:          tc.dst,
			})
			require.NoError(t, err)

			if len(schedule.ScheduledNaps) > 0 {
				require.Equal(t, tc.want, schedule.ScheduledNaps[0].WakeWindow)
			} else {
				require.Equal(t, tc.want, schedule.IdealWakeWindow)
			}
		})
	}
}

func TestGenerateCatnapDetectedLooksAtAllNaps(t *testing.T) {
	schedule, err := Generate(Input{
		BabyAgeMonths:      8,
		FirstWakeTimeToday: at(7, 0),
		CurrentTime:        at(13, 0),
		ActualNapDurations: []float64{30, 80},
	})
	require.NoError(t, err)
	require.True(t, schedule.Adjustments.CatnapDetected)
	require.Equal(t, 195.0, schedule.IdealWakeWindow)
	require.Empty(t, schedule.ScheduledNaps)
}

func TestGenerateNoNapsRemaining(t *testing.T) {
	schedule, err := Generate(Input{
		BabyAgeMonths:      6,
		FirstWakeTimeToday: at(7, 0),
		CurrentTime:        at(17, 0),
		ActualNapDurations: []float64{90, 90, 45},
	})
	require.NoError(t, err)

	require.Empty(t, schedule.ScheduledNaps)
	// 17:00 + 150 + 30 stays inside the bedtime window.
	require.Equal(t, at(20, 0), schedule.RecommendedBedtime)
}

func TestGenerateAnchor(t *testing.T) {
	t.Run("current time before first wake", func(t *testing.T) {
		schedule, err := Generate(Input{
			BabyAgeMonths:      6,
			FirstWakeTimeToday: at(7, 0),
			CurrentTime:        at(6, 0),
		})
		require.NoError(t, err)
		require.Equal(t, at(9, 30), schedule.ScheduledNaps[0].StartTime)
	})

	t.Run("latest logged wake wins when later", func(t *testing.T) {
		schedule, err := Generate(Input{
			BabyAgeMonths:      6,
			FirstWakeTimeToday: at(7, 0),
			CurrentTime:        at(10, 0),
			ActualNapDurations: []float64{60},
			Logs: []LogEvent{
				{Type: LogWake, Time: at(10, 30)},
				{Type: LogSleep, Time: at(9, 30)},
				{Type: LogWake, Time: at(7, 0)},
			},
		})
		require.NoError(t, err)
		require.Len(t, schedule.ScheduledNaps, 1)
		require.Equal(t, at(13, 0), schedule.ScheduledNaps[0].StartTime)
		require.Equal(t, at(14, 30), schedule.ScheduledNaps[0].EndTime)
	})

	t.Run("earlier logged wake is ignored", func(t *testing.T) {
		schedule, err := Generate(Input{
			BabyAgeMonths:      6,
			FirstWakeTimeToday: at(7, 0),
			CurrentTime:        at(11, 0),
			ActualNapDurations: []float64{60},
			Logs:               []LogEvent{{Type: LogWake, Time: at(10, 30)}},
		})
		require.NoError(t, err)
		require.Equal(t, at(13, 30), schedule.ScheduledNaps[0].StartTime)
	})

	t.Run("sleep events never move the anchor", func(t *testing.T) {
		schedule, err := Generate(Input{
			BabyAgeMonths:      6,
			FirstWakeTimeToday: at(7, 0),
			CurrentTime:        at(7, 0),
			Logs:               []LogEvent{{Type: LogSleep, Time: at(8, 0)}},
		})
		require.NoError(t, err)
		require.Equal(t, at(9, 30), schedule.ScheduledNaps[0].StartTime)
	})
}

func TestGenerateFractionalWindows(t *testing.T) {
	schedule, err := Generate(Input{
		BabyAgeMonths:      0,
		FirstWakeTimeToday: at(7, 0),
		CurrentTime:        at(7, 0),
	})
	require.NoError(t, err)

	require.Len(t, schedule.ScheduledNaps, 4)
	require.Equal(t, 67.5, schedule.ScheduledNaps[0].WakeWindow)
	require.Equal(t, at(7, 0).Add(67*time.Minute+30*time.Second), schedule.ScheduledNaps[0].StartTime)
	require.Equal(t, 60.0, schedule.ScheduledNaps[0].Duration)
	require.Equal(t, 52.5, schedule.ScheduledNaps[1].WakeWindow)
	require.Equal(t, 45.0, schedule.ScheduledNaps[1].Duration)
	require.Equal(t, 45.0, schedule.ScheduledNaps[2].WakeWindow)
	require.Equal(t, 45.0, schedule.ScheduledNaps[3].WakeWindow)
	require.Equal(t, 660, schedule.NightSleepDuration)
}

func TestGenerateFractionalAgeFloors(t *testing.T) {
	schedule, err := Generate(Input{
		BabyAgeMonths:      5.9,
		FirstWakeTimeToday: at(7, 0),
		CurrentTime:        at(7, 0),
	})
	require.NoError(t, err)
	require.Equal(t, ConfigForAge(5), schedule.Config)
	require.Equal(t, 660, schedule.NightSleepDuration)
}

func TestGenerateSingleNapToddler(t *testing.T) {
	schedule, err := Generate(Input{
		BabyAgeMonths:      30,
		FirstWakeTimeToday: at(7, 0),
		CurrentTime:        at(7, 0),
	})
	require.NoError(t, err)

	require.Len(t, schedule.ScheduledNaps, 1)
	require.Equal(t, at(14, 0), schedule.ScheduledNaps[0].StartTime)
	require.Equal(t, at(16, 0), schedule.ScheduledNaps[0].EndTime)
	// 16:00 + 450 min lands at 23:30 and is pulled back.
	require.Equal(t, at(20, 30), schedule.RecommendedBedtime)
}

func TestGenerateDeterministic(t *testing.T) {
	in := Input{
		BabyAgeMonths:      9,
		FirstWakeTimeToday: at(5, 45),
		CurrentTime:        at(11, 10),
		ActualNapDurations: []float64{40},
		Logs:               []LogEvent{{Type: LogWake, Time: at(11, 20)}},
		DSTChange:          true,
	}
	first, err := Generate(in)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := Generate(in)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestGenerateInvariants(t *testing.T) {
	wakes := []time.Time{at(5, 0), at(6, 30), at(8, 0)}
	histories := [][]float64{nil, {30}, {90}, {60, 20}, {90, 90, 90, 90, 90}}

	for age := 0; age <= 24; age++ {
		for _, wake := range wakes {
			for _, history := range histories {
				for _, dst := range []bool{false, true} {
					in := Input{
						BabyAgeMonths:      float64(age),
						FirstWakeTimeToday: wake,
						CurrentTime:        wake.Add(2 * time.Hour),
						ActualNapDurations: history,
						DSTChange:          dst,
					}
					schedule, err := Generate(in)
					require.NoError(t, err)

					bounds := schedule.Config.WakeWindow
					require.GreaterOrEqual(t, schedule.IdealWakeWindow, bounds.Min)
					require.LessOrEqual(t, schedule.IdealWakeWindow, bounds.Max)

					want := schedule.Config.NumberOfNaps - len(history)
					if want < 0 {
						want = 0
					}
					require.Len(t, schedule.ScheduledNaps, want)

					anchor := in.CurrentTime
					for i, nap := range schedule.ScheduledNaps {
						require.GreaterOrEqual(t, nap.WakeWindow, bounds.Min)
						require.LessOrEqual(t, nap.WakeWindow, bounds.Max)
						require.Equal(t, addMinutes(anchor, nap.WakeWindow), nap.StartTime)
						require.False(t, nap.EndTime.Before(nap.StartTime))
						require.Equal(t, len(history)+i+1, nap.NapNumber)
						anchor = nap.EndTime
					}
				}
			}
		}
	}
}

func TestGenerateRejectsMalformedInput(t *testing.T) {
	cases := []struct {
		name string
		in   Input
		want error
	}{
		{name: "negative age", in: Input{BabyAgeMonths: -1, FirstWakeTimeToday: at(7, 0)}, want: ErrInvalidAge},
		{name: "nan age", in: Input{BabyAgeMonths: math.NaN(), FirstWakeTimeToday: at(7, 0)}, want: ErrInvalidAge},
		{name: "missing first wake", in: Input{BabyAgeMonths: 4}, want: ErrInvalidTimestamp},
		{name: "negative nap", in: Input{BabyAgeMonths: 4, FirstWakeTimeToday: at(7, 0), ActualNapDurations: []float64{-5}}, want: ErrInvalidNapDuration},
		{name: "unknown log type", in: Input{BabyAgeMonths: 4, FirstWakeTimeToday: at(7, 0), Logs: []LogEvent{{Type: "feed", Time: at(8, 0)}}}, want: ErrInvalidLogEvent},
		{name: "zero log time", in: Input{BabyAgeMonths: 4, FirstWakeTimeToday: at(7, 0), Logs: []LogEvent{{Type: LogWake}}}, want: ErrInvalidTimestamp},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Generate(tc.in)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestRecommendBedtime(t *testing.T) {
	cases := []struct {
		name   string
		base   time.Time
		window float64
		want   time.Time
	}{
		{name: "early candidate snaps to window start", base: at(15, 45), window: 90, want: at(18, 30)},
		{name: "late candidate pulled back", base: at(19, 0), window: 100, want: at(20, 30)},
		{name: "inside window untouched", base: at(17, 0), window: 90, want: at(19, 0)},
		{name: "seconds past window end are kept", base: at(18, 0).Add(45 * time.Second), window: 120, want: at(20, 30).Add(45 * time.Second)},
		{name: "seconds before window start snap", base: at(16, 0), window: 119.5, want: at(18, 30)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, recommendBedtime(tc.base, tc.window))
		})
	}
}

func TestGenerateDefaultsCurrentTimeToNow(t *testing.T) {
	wake := time.Now().Add(-time.Hour)
	schedule, err := Generate(Input{BabyAgeMonths: 6, FirstWakeTimeToday: wake})
	require.NoError(t, err)
	require.NotEmpty(t, schedule.ScheduledNaps)
	require.True(t, schedule.ScheduledNaps[0].StartTime.After(wake))
}
