package napschedule

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	apperrors "github.com/yanqian/nap-planner/pkg/errors"
	"github.com/yanqian/nap-planner/pkg/util"
)

// Service exposes nap planning capabilities.
type Service interface {
	Plan(ctx context.Context, req Request) (Response, error)
	AgeConfig(ctx context.Context, age AgeInput) (AgeConfig, error)
}

// Cache memoises schedules by a digest of the resolved engine input.
type Cache interface {
	Get(ctx context.Context, key string) (Schedule, bool, error)
	Set(ctx context.Context, key string, schedule Schedule, ttl time.Duration) error
}

type service struct {
	cfg      Config
	cache    Cache
	logger   *slog.Logger
	timezone *time.Location
	now      func() time.Time
}

// NewService wires up the planner domain.
func NewService(cfg Config, cache Cache, logger *slog.Logger) (Service, error) {
	loc, err := util.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("planner timezone: %w", err)
	}
	return &service{
		cfg:      cfg,
		cache:    cache,
		logger:   logger.With("component", "napschedule.service"),
		timezone: loc,
		now:      time.Now,
	}, nil
}

func (s *service) Plan(ctx context.Context, req Request) (Response, error) {
	loc := s.timezone
	if tz := strings.TrimSpace(req.Timezone); tz != "" {
		var err error
		if loc, err = util.LoadLocation(tz); err != nil {
			return Response{}, apperrors.Wrap(apperrors.CodeInvalidInput, "timezone must be an IANA zone name", err)
		}
	}

	in, err := s.resolveInput(req, loc)
	if err != nil {
		return Response{}, err
	}

	key := cacheKey(loc, in)
	if schedule, ok := s.lookup(ctx, key); ok {
		return Response{Schedule: schedule, Text: Format(schedule), Timezone: loc.String(), Cached: true}, nil
	}

	schedule, err := Generate(in)
	if err != nil {
		return Response{}, apperrors.Wrap(apperrors.CodeInvalidInput, "cannot build schedule", err)
	}
	s.logger.Debug("schedule generated",
		"age_months", in.BabyAgeMonths,
		"naps", len(schedule.ScheduledNaps),
		"ideal_wake_window", schedule.IdealWakeWindow,
		"adjustments", firedSteps(schedule.Trace),
	)
	s.store(ctx, key, schedule)

	return Response{Schedule: schedule, Text: Format(schedule), Timezone: loc.String()}, nil
}

func (s *service) AgeConfig(_ context.Context, age AgeInput) (AgeConfig, error) {
	months, err := resolveAge(age)
	if err != nil {
		return AgeConfig{}, err
	}
	return ConfigForAge(ageKey(months)), nil
}

func (s *service) resolveInput(req Request, loc *time.Location) (Input, error) {
	months, err := resolveAge(req.Age)
	if err != nil {
		return Input{}, err
	}

	now := s.now().In(loc)
	current := now
	if strings.TrimSpace(req.CurrentTime) != "" {
		if current, err = parseTimestamp(req.CurrentTime, now, loc); err != nil {
			return Input{}, apperrors.Wrap(apperrors.CodeInvalidInput, "currentTime must be RFC3339 or HH:MM", err)
		}
	}
	if strings.TrimSpace(req.FirstWake) == "" {
		return Input{}, apperrors.Wrap(apperrors.CodeInvalidInput, "firstWake is required", ErrInvalidTimestamp)
	}
	firstWake, err := parseTimestamp(req.FirstWake, current, loc)
	if err != nil {
		return Input{}, apperrors.Wrap(apperrors.CodeInvalidInput, "firstWake must be RFC3339 or HH:MM", err)
	}

	logs := make([]LogEvent, 0, len(req.Logs))
	for _, raw := range req.Logs {
		ts, err := parseTimestamp(raw.Time, current, loc)
		if err != nil {
			return Input{}, apperrors.Wrap(apperrors.CodeInvalidInput, "log time must be RFC3339 or HH:MM", err)
		}
		logs = append(logs, LogEvent{Type: LogType(strings.ToLower(strings.TrimSpace(raw.Type))), Time: ts})
	}

	durations := append([]float64(nil), req.NapDurations...)
	if len(req.Sessions) > 0 {
		sessions, err := parseSessions(req.Sessions, current, loc)
		if err != nil {
			return Input{}, err
		}
		sessionDurations, sessionLogs := HistoryFromSessions(sessions, firstWake, current)
		if len(durations) == 0 {
			durations = sessionDurations
		}
		if len(logs) == 0 {
			logs = sessionLogs
		}
	}

	dst := false
	switch {
	case req.DSTChange != nil:
		dst = *req.DSTChange
	case s.cfg.AutoDetectDST:
		dst = ClockShiftOn(firstWake)
	}

	return Input{
		BabyAgeMonths:      months,
		FirstWakeTimeToday: firstWake,
		CurrentTime:        current,
		ActualNapDurations: durations,
		Logs:               logs,
		DSTChange:          dst,
	}, nil
}

func (s *service) lookup(ctx context.Context, key string) (Schedule, bool) {
	if s.cache == nil || key == "" {
		return Schedule{}, false
	}
	schedule, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("schedule cache lookup failed", "error", err)
		return Schedule{}, false
	}
	return schedule, ok
}

func (s *service) store(ctx context.Context, key string, schedule Schedule) {
	if s.cache == nil || key == "" {
		return
	}
	if err := s.cache.Set(ctx, key, schedule, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("schedule cache write failed", "error", err)
	}
}

func resolveAge(age AgeInput) (float64, error) {
	if age.Value == nil {
		return 0, apperrors.Wrap(apperrors.CodeInvalidInput, "age.value is required", ErrInvalidAge)
	}
	unit, err := ParseAgeUnit(age.Unit)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.CodeInvalidInput, "unsupported age unit", err)
	}
	months, err := ToMonths(*age.Value, unit)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.CodeInvalidInput, "invalid age", err)
	}
	return months, nil
}

func parseSessions(raw []RequestSleep, ref time.Time, loc *time.Location) ([]Session, error) {
	out := make([]Session, 0, len(raw))
	for _, r := range raw {
		start, err := parseTimestamp(r.Start, ref, loc)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.CodeInvalidInput, "session start must be RFC3339 or HH:MM", err)
		}
		var end time.Time
		if strings.TrimSpace(r.End) != "" {
			if end, err = parseTimestamp(r.End, ref, loc); err != nil {
				return nil, apperrors.Wrap(apperrors.CodeInvalidInput, "session end must be RFC3339 or HH:MM", err)
			}
		}
		out = append(out, Session{Start: start, End: end})
	}
	return out, nil
}

func parseTimestamp(raw string, ref time.Time, loc *time.Location) (time.Time, error) {
	ts, err := util.ParseWallClock(raw, ref, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", ErrInvalidTimestamp, err)
	}
	return ts, nil
}

func cacheKey(loc *time.Location, in Input) string {
	payload, err := json.Marshal(in)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(append([]byte(loc.String()+"|"), payload...))
	return hex.EncodeToString(sum[:])
}

func firedSteps(trace []StepResult) []string {
	out := make([]string, 0, len(trace))
	for _, step := range trace {
		if step.Fired && step.Step != StepMidpoint {
			out = append(out, step.Step)
		}
	}
	return out
}
