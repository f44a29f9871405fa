package domain

// Analytics payload types. Field names mirror the JSON contract consumed by
// the dashboard charts.
//
// Note on "streak": every streak figure below is a total completion count,
// not a consecutive-day run. That simplification is the documented contract
// of this API; changing it to true streak logic would change observable
// output for every client.

// DailyCount is one bucket of the trailing-30-day progress chart.
type DailyCount struct {
	Date        string `json:"date"` // short label, e.g. "Jan 02"
	Completions int    `json:"completions"`
}

// WeekdayCount is one bucket of the current-week (Mon–Sun) progress chart.
type WeekdayCount struct {
	Day         string `json:"day"` // weekday abbreviation, e.g. "Mon"
	Completions int    `json:"completions"`
}

// HabitStreak is the per-habit bar-chart tuple.
type HabitStreak struct {
	Name   string `json:"name"`
	Streak int    `json:"streak"` // total completions, see package note
	Fill   string `json:"fill"`   // habit color tag
}

// HabitShare is the per-habit proportion-chart tuple. Habits with zero
// completions are excluded from distribution data.
type HabitShare struct {
	Name        string `json:"name"`
	Completions int    `json:"completions"`
	Fill        string `json:"fill"`
}

// AnalyticsStats holds the top-level counters.
type AnalyticsStats struct {
	TotalCompletions int `json:"totalCompletions"`
	AverageStreak    int `json:"averageStreak"`
	BestStreak       int `json:"bestStreak"`
	CompletionsToday int `json:"completionsToday"`
}

// AnalyticsCharts groups the time-bucketed and per-habit chart series.
type AnalyticsCharts struct {
	DailyProgress     []DailyCount   `json:"dailyProgress"`
	WeeklyProgress    []WeekdayCount `json:"weeklyProgress"`
	HabitStreaks      []HabitStreak  `json:"habitStreaks"`
	HabitDistribution []HabitShare   `json:"habitDistribution"`
}

// AnalyticsSummary holds the derived progress indicators.
type AnalyticsSummary struct {
	TodaysCompletionRate  int `json:"todaysCompletionRate"`
	HabitsWith7DayStreak  int `json:"habitsWith7DayStreak"`
	HabitsWith30DayStreak int `json:"habitsWith30DayStreak"`
}

// AnalyticsReport is the full read-only aggregate over one user's habits.
type AnalyticsReport struct {
	Stats   AnalyticsStats   `json:"stats"`
	Charts  AnalyticsCharts  `json:"charts"`
	Summary AnalyticsSummary `json:"summary"`
}
