package service

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/habitflow/habitflow-api/internal/core/domain"
	"github.com/habitflow/habitflow-api/internal/core/ports"
)

const (
	dailyWindowDays      = 30
	weekStreakThreshold  = 7
	monthStreakThreshold = 30
)

// ReportCache abstracts the analytics result cache (Redis). Implementations
// must treat cache failures as misses; the service always falls back to a
// recompute.
type ReportCache interface {
	Get(ctx context.Context, userID string) (*domain.AnalyticsReport, error)
	Set(ctx context.Context, userID string, report *domain.AnalyticsReport) error
	Invalidate(ctx context.Context, userID string) error
}

// AnalyticsService derives the stats/charts/summary payload from a user's
// habit ledger. Pure read; the only side effect is the result cache.
type AnalyticsService struct {
	habits ports.HabitRepository
	cache  ReportCache
	logger zerolog.Logger
	now    func() time.Time
}

func NewAnalyticsService(habits ports.HabitRepository, cache ReportCache, logger zerolog.Logger) *AnalyticsService {
	return &AnalyticsService{habits: habits, cache: cache, logger: logger, now: time.Now}
}

// Report computes the full analytics payload for one user, serving from
// cache when a fresh entry exists.
func (s *AnalyticsService) Report(ctx context.Context, userID string) (*domain.AnalyticsReport, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, userID)
		if err != nil {
			s.logger.Warn().Err(err).Str("user_id", userID).Msg("analytics cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	habits, err := s.habits.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	report := s.compute(habits)

	if s.cache != nil {
		if err := s.cache.Set(ctx, userID, report); err != nil {
			s.logger.Warn().Err(err).Str("user_id", userID).Msg("analytics cache write failed")
		}
	}
	return report, nil
}

func (s *AnalyticsService) compute(habits []domain.Habit) *domain.AnalyticsReport {
	now := s.now()
	todayStart := startOfDay(now)
	todayEnd := endOfDay(now)

	totalCompletions := 0
	completionsToday := 0
	bestStreak := 0
	streakSum := 0
	for _, h := range habits {
		count := h.CompletionCount()
		totalCompletions += count
		completionsToday += h.CompletionsBetween(todayStart, todayEnd)
		// "Streak" here is the habit's total completion count — a documented
		// simplification, not a consecutive-day run.
		if count > bestStreak {
			bestStreak = count
		}
		streakSum += count
	}

	averageStreak := 0
	if len(habits) > 0 {
		averageStreak = int(math.Round(float64(streakSum) / float64(len(habits))))
	}

	report := &domain.AnalyticsReport{
		Stats: domain.AnalyticsStats{
			TotalCompletions: totalCompletions,
			AverageStreak:    averageStreak,
			BestStreak:       bestStreak,
			CompletionsToday: completionsToday,
		},
		Charts: domain.AnalyticsCharts{
			DailyProgress:     dailyProgress(habits, now),
			WeeklyProgress:    weeklyProgress(habits, now),
			HabitStreaks:      habitStreaks(habits),
			HabitDistribution: habitDistribution(habits),
		},
	}

	rate := 0
	if len(habits) > 0 {
		rate = int(math.Round(float64(completionsToday) / float64(len(habits)) * 100))
	}
	with7, with30 := 0, 0
	for _, h := range habits {
		if h.CompletionCount() >= weekStreakThreshold {
			with7++
		}
		if h.CompletionCount() >= monthStreakThreshold {
			with30++
		}
	}
	report.Summary = domain.AnalyticsSummary{
		TodaysCompletionRate:  rate,
		HabitsWith7DayStreak:  with7,
		HabitsWith30DayStreak: with30,
	}
	return report
}

// dailyProgress buckets completions across all habits into the trailing 30
// calendar days, oldest first, today included.
func dailyProgress(habits []domain.Habit, now time.Time) []domain.DailyCount {
	points := make([]domain.DailyCount, 0, dailyWindowDays)
	for offset := dailyWindowDays - 1; offset >= 0; offset-- {
		day := startOfDay(now.AddDate(0, 0, -offset))
		points = append(points, domain.DailyCount{
			Date:        day.Format("Jan 02"),
			Completions: countOnDay(habits, day),
		})
	}
	return points
}

// weeklyProgress buckets completions into the current ISO week, Monday
// through Sunday.
func weeklyProgress(habits []domain.Habit, now time.Time) []domain.WeekdayCount {
	monday := startOfWeek(now)
	points := make([]domain.WeekdayCount, 0, 7)
	for i := 0; i < 7; i++ {
		day := monday.AddDate(0, 0, i)
		points = append(points, domain.WeekdayCount{
			Day:         day.Format("Mon"),
			Completions: countOnDay(habits, day),
		})
	}
	return points
}

func habitStreaks(habits []domain.Habit) []domain.HabitStreak {
	out := make([]domain.HabitStreak, 0, len(habits))
	for _, h := range habits {
		out = append(out, domain.HabitStreak{
			Name:   h.Name,
			Streak: h.CompletionCount(),
			Fill:   h.Color,
		})
	}
	return out
}

// habitDistribution excludes habits with zero completions so proportion
// charts never render empty slices.
func habitDistribution(habits []domain.Habit) []domain.HabitShare {
	out := make([]domain.HabitShare, 0, len(habits))
	for _, h := range habits {
		if h.CompletionCount() == 0 {
			continue
		}
		out = append(out, domain.HabitShare{
			Name:        h.Name,
			Completions: h.CompletionCount(),
			Fill:        h.Color,
		})
	}
	return out
}

func countOnDay(habits []domain.Habit, day time.Time) int {
	from := startOfDay(day)
	to := endOfDay(day)
	n := 0
	for _, h := range habits {
		n += h.CompletionsBetween(from, to)
	}
	return n
}

// Day boundaries use the server's local time, matching the rest of the
// calendar-day semantics in this package.

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// startOfWeek returns the most recent Monday at midnight.
func startOfWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 { // Sunday
		weekday = 7
	}
	return startOfDay(t.AddDate(0, 0, -(weekday - 1)))
}
