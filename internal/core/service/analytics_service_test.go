package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/habitflow/habitflow-api/internal/core/domain"
)

// fixedNow is a Saturday afternoon; the surrounding week runs Mon 9th
// through Sun 15th.
var fixedNow = time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)

func analyticsFixture(repo *stubHabitRepo, cache *stubReportCache) *AnalyticsService {
	var c ReportCache
	if cache != nil {
		c = cache
	}
	svc := NewAnalyticsService(repo, c, zerolog.Nop())
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func seedHabit(t *testing.T, repo *stubHabitRepo, name, color string, dates ...time.Time) *domain.Habit {
	t.Helper()
	completions := make([]domain.Completion, 0, len(dates))
	for _, d := range dates {
		completions = append(completions, domain.Completion{Date: d})
	}
	h, err := repo.Create(context.Background(), &domain.Habit{
		UserID:      "user_1",
		Name:        name,
		Color:       color,
		Completions: completions,
	})
	if err != nil {
		t.Fatalf("seed %s: %v", name, err)
	}
	return h
}

func day(offset int) time.Time {
	return time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestAnalyticsService_Report_Empty(t *testing.T) {
	svc := analyticsFixture(newStubHabitRepo(), nil)

	report, err := svc.Report(context.Background(), "user_1")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if report.Stats.TotalCompletions != 0 || report.Stats.BestStreak != 0 || report.Stats.AverageStreak != 0 {
		t.Fatalf("expected zeroed stats, got %+v", report.Stats)
	}
	if report.Summary.TodaysCompletionRate != 0 {
		t.Fatalf("expected zero rate, got %d", report.Summary.TodaysCompletionRate)
	}
	if len(report.Charts.DailyProgress) != 30 {
		t.Fatalf("daily chart must still span 30 days, got %d", len(report.Charts.DailyProgress))
	}
	if len(report.Charts.HabitDistribution) != 0 {
		t.Fatalf("expected no distribution, got %v", report.Charts.HabitDistribution)
	}
}

func TestAnalyticsService_Report_Stats(t *testing.T) {
	repo := newStubHabitRepo()
	seedHabit(t, repo, "Read", "#ff0000", day(0), day(-1), day(-2))
	seedHabit(t, repo, "Run", "#00ff00", day(-1))
	seedHabit(t, repo, "Meditate", "#0000ff")
	svc := analyticsFixture(repo, nil)

	report, err := svc.Report(context.Background(), "user_1")
	if err != nil {
		t.Fatalf("report: %v", err)
	}

	if report.Stats.TotalCompletions != 4 {
		t.Fatalf("total completions: expected 4, got %d", report.Stats.TotalCompletions)
	}
	if report.Stats.BestStreak != 3 {
		t.Fatalf("best streak: expected 3, got %d", report.Stats.BestStreak)
	}
	// 4 completions over 3 habits rounds to 1.
	if report.Stats.AverageStreak != 1 {
		t.Fatalf("average streak: expected 1, got %d", report.Stats.AverageStreak)
	}
	if report.Stats.CompletionsToday != 1 {
		t.Fatalf("completions today: expected 1, got %d", report.Stats.CompletionsToday)
	}
	// 1 of 3 habits done today → 33%.
	if report.Summary.TodaysCompletionRate != 33 {
		t.Fatalf("rate: expected 33, got %d", report.Summary.TodaysCompletionRate)
	}
}

func TestAnalyticsService_Report_StreakThresholds(t *testing.T) {
	repo := newStubHabitRepo()

	var seven, thirty []time.Time
	for i := 0; i < 7; i++ {
		seven = append(seven, day(-i))
	}
	for i := 0; i < 30; i++ {
		thirty = append(thirty, day(-i))
	}
	seedHabit(t, repo, "Seven", "#ff0000", seven...)
	seedHabit(t, repo, "Thirty", "#00ff00", thirty...)
	seedHabit(t, repo, "Few", "#0000ff", day(0))
	svc := analyticsFixture(repo, nil)

	report, err := svc.Report(context.Background(), "user_1")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if report.Summary.HabitsWith7DayStreak != 2 {
		t.Fatalf("7-day threshold: expected 2, got %d", report.Summary.HabitsWith7DayStreak)
	}
	if report.Summary.HabitsWith30DayStreak != 1 {
		t.Fatalf("30-day threshold: expected 1, got %d", report.Summary.HabitsWith30DayStreak)
	}
}

func TestAnalyticsService_Report_DailyChart(t *testing.T) {
	repo := newStubHabitRepo()
	// Two completions on the same day, one outside the 30-day window.
	seedHabit(t, repo, "Read", "#ff0000", day(-3), day(-3).Add(12*time.Hour), day(-31))
	svc := analyticsFixture(repo, nil)

	report, err := svc.Report(context.Background(), "user_1")
	if err != nil {
		t.Fatalf("report: %v", err)
	}

	daily := report.Charts.DailyProgress
	if len(daily) != 30 {
		t.Fatalf("expected 30 buckets, got %d", len(daily))
	}
	if daily[0].Date != day(-29).Format("Jan 02") {
		t.Fatalf("oldest-first ordering broken: first bucket %q", daily[0].Date)
	}
	if daily[29].Date != "Mar 14" {
		t.Fatalf("last bucket must be today, got %q", daily[29].Date)
	}

	total := 0
	for _, b := range daily {
		total += b.Completions
		if b.Date == "Mar 11" && b.Completions != 2 {
			t.Fatalf("Mar 11: expected 2 completions, got %d", b.Completions)
		}
	}
	// The day(-31) entry falls outside the window.
	if total != 2 {
		t.Fatalf("window total: expected 2, got %d", total)
	}
}

func TestAnalyticsService_Report_WeeklyChart(t *testing.T) {
	repo := newStubHabitRepo()
	// fixedNow is Saturday Mar 14; the week is Mon Mar 9 – Sun Mar 15.
	seedHabit(t, repo, "Read", "#ff0000", day(-5), day(0), day(-7))
	svc := analyticsFixture(repo, nil)

	report, err := svc.Report(context.Background(), "user_1")
	if err != nil {
		t.Fatalf("report: %v", err)
	}

	weekly := report.Charts.WeeklyProgress
	if len(weekly) != 7 {
		t.Fatalf("expected 7 buckets, got %d", len(weekly))
	}
	if weekly[0].Day != "Mon" || weekly[6].Day != "Sun" {
		t.Fatalf("week must run Mon–Sun, got %q..%q", weekly[0].Day, weekly[6].Day)
	}
	// Mon Mar 9 and Sat Mar 14 fall inside; Sat Mar 7 does not.
	if weekly[0].Completions != 1 {
		t.Fatalf("Monday: expected 1, got %d", weekly[0].Completions)
	}
	if weekly[5].Completions != 1 {
		t.Fatalf("Saturday: expected 1, got %d", weekly[5].Completions)
	}
	total := 0
	for _, b := range weekly {
		total += b.Completions
	}
	if total != 2 {
		t.Fatalf("week total: expected 2, got %d", total)
	}
}

func TestAnalyticsService_Report_DistributionExcludesZero(t *testing.T) {
	repo := newStubHabitRepo()
	seedHabit(t, repo, "Read", "#ff0000", day(0))
	seedHabit(t, repo, "Idle", "#00ff00")
	svc := analyticsFixture(repo, nil)

	report, err := svc.Report(context.Background(), "user_1")
	if err != nil {
		t.Fatalf("report: %v", err)
	}

	if len(report.Charts.HabitDistribution) != 1 || report.Charts.HabitDistribution[0].Name != "Read" {
		t.Fatalf("distribution: %+v", report.Charts.HabitDistribution)
	}
	// The streak chart still carries every habit, zeroes included.
	if len(report.Charts.HabitStreaks) != 2 {
		t.Fatalf("streak chart: %+v", report.Charts.HabitStreaks)
	}
	if report.Charts.HabitStreaks[0].Fill != "#ff0000" {
		t.Fatalf("streak fill must carry habit color, got %q", report.Charts.HabitStreaks[0].Fill)
	}
}

func TestAnalyticsService_Report_CacheHit(t *testing.T) {
	repo := newStubHabitRepo()
	seedHabit(t, repo, "Read", "#ff0000", day(0))
	cache := newStubReportCache()
	svc := analyticsFixture(repo, cache)

	first, err := svc.Report(context.Background(), "user_1")
	if err != nil {
		t.Fatalf("first report: %v", err)
	}
	if cache.reports["user_1"] == nil {
		t.Fatalf("report not written to cache")
	}

	// Change the underlying data without invalidating: the stale cached
	// report must be served.
	seedHabit(t, repo, "Run", "#00ff00", day(0))
	second, err := svc.Report(context.Background(), "user_1")
	if err != nil {
		t.Fatalf("second report: %v", err)
	}
	if second.Stats.TotalCompletions != first.Stats.TotalCompletions {
		t.Fatalf("expected cached report, got a recompute")
	}
}

func TestAnalyticsService_Report_CacheFailureFallsBack(t *testing.T) {
	repo := newStubHabitRepo()
	seedHabit(t, repo, "Read", "#ff0000", day(0))
	cache := newStubReportCache()
	cache.getErr = context.DeadlineExceeded
	svc := analyticsFixture(repo, cache)

	report, err := svc.Report(context.Background(), "user_1")
	if err != nil {
		t.Fatalf("cache failure must not fail the report: %v", err)
	}
	if report.Stats.TotalCompletions != 1 {
		t.Fatalf("expected recomputed report, got %+v", report.Stats)
	}
}
