package model

import "time"

type Member struct {
	ID       int    `gorm:"primaryKey" json:"id"`
	Username string `gorm:"uniqueIndex" json:"username"`
	Password string `json:"-"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar"`
	Timezone string `json:"timezone"`
}

// Log subtypes. One table holds every kind of daily log; the engine
// buckets rows by Type.
const (
	LogMeal        = "meal"
	LogWorkout     = "workout"
	LogSleep       = "sleep"
	LogWater       = "water"
	LogWeight      = "weight"
	LogSupplement  = "supplement"
	LogJournal     = "journal"
	LogMeditation  = "meditation"
	LogMindfulness = "mindfulness"
	LogMood        = "mood"
	LogSocial      = "social"
	LogWin         = "win"
)

type HealthLog struct {
	ID             int       `gorm:"primaryKey" json:"id"`
	MemberID       int       `gorm:"index:idx_member_date" json:"member_id"`
	LogDate        string    `gorm:"type:date;index:idx_member_date" json:"log_date"`
	Type           string    `gorm:"size:20" json:"type"`
	Calories       int       `json:"calories,omitempty"`
	Protein        float64   `json:"protein,omitempty"`
	Carbs          float64   `json:"carbs,omitempty"`
	Fat            float64   `json:"fat,omitempty"`
	WaterMl        int       `json:"water_ml,omitempty"`
	SleepHours     float64   `json:"sleep_hours,omitempty"`
	DurationMin    int       `json:"duration_min,omitempty"`
	CaloriesBurned int       `json:"calories_burned,omitempty"`
	WeightKg       float64   `json:"weight_kg,omitempty"`
	Mood           string    `gorm:"size:20" json:"mood,omitempty"`
	Text           string    `gorm:"type:text" json:"text,omitempty"`
	Gratitude      string    `gorm:"type:text" json:"gratitude,omitempty"`
	Tags           string    `json:"tags,omitempty"`
	RuleID         string    `gorm:"size:64" json:"rule_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// DailyTotals is the external-feed record (step counter, explicit water
// override). Absence is normal and means zeros.
type DailyTotals struct {
	ID              int    `gorm:"primaryKey" json:"id"`
	MemberID        int    `gorm:"uniqueIndex:uk_totals_member_date" json:"member_id"`
	TotalsDate      string `gorm:"type:date;uniqueIndex:uk_totals_member_date" json:"totals_date"`
	Steps           int    `json:"steps"`
	WaterMlOverride int    `json:"water_ml_override"`
}

type Habit struct {
	ID          int    `gorm:"primaryKey" json:"id"`
	MemberID    int    `gorm:"index" json:"member_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Frequency   string `gorm:"size:10" json:"frequency"` // DAILY, WEEKLY, MONTHLY, CUSTOM
	Priority    string `gorm:"size:10" json:"priority"`  // LOW, MEDIUM, HIGH, CRITICAL
	StreakCount int    `json:"streak_count"`
	IsActive    bool   `gorm:"default:true" json:"is_active"`
}

type HabitCompletion struct {
	ID          int       `gorm:"primaryKey" json:"id"`
	MemberID    int       `gorm:"index" json:"member_id"`
	HabitID     int       `gorm:"index" json:"habit_id"`
	CompletedAt time.Time `json:"completed_at"`
	Value       float64   `json:"value"`
}

// FocusTask is one persisted row of the once-per-date Today's Focus batch.
type FocusTask struct {
	ID          int        `gorm:"primaryKey" json:"id"`
	MemberID    int        `gorm:"index:idx_focus_member_date" json:"member_id"`
	TaskDate    string     `gorm:"type:date;index:idx_focus_member_date" json:"task_date"`
	BatchID     string     `gorm:"size:36" json:"batch_id"`
	ReminderID  string     `gorm:"size:64" json:"reminder_id"`
	Type        string     `gorm:"size:20" json:"type"`
	Title       string     `json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Priority    string     `gorm:"size:10" json:"priority"`
	ActionType  string     `gorm:"size:30" json:"action_type"`
	Position    int        `json:"position"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// WinEntry is a persisted achievement notice. The (member, date, rule)
// unique key makes re-running detection for a processed date an upsert
// instead of a duplicate.
type WinEntry struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	MemberID  int       `gorm:"uniqueIndex:uk_win_member_date_rule" json:"member_id"`
	WinDate   string    `gorm:"type:date;uniqueIndex:uk_win_member_date_rule" json:"win_date"`
	RuleID    string    `gorm:"size:64;uniqueIndex:uk_win_member_date_rule" json:"rule_id"`
	Text      string    `gorm:"type:text" json:"text"`
	Gratitude string    `gorm:"type:text" json:"gratitude,omitempty"`
	Mood      string    `gorm:"size:20" json:"mood,omitempty"`
	Tags      string    `json:"tags,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Profile struct {
	ID             int     `gorm:"primaryKey" json:"id"`
	MemberID       int     `gorm:"uniqueIndex" json:"member_id"`
	CalorieGoal    int     `json:"calorie_goal"`
	StepGoal       int     `json:"step_goal"`
	WaterGoalMl    int     `json:"water_goal_ml"`
	SleepGoalHours float64 `json:"sleep_goal_hours"`
	ProteinTarget  float64 `json:"protein_target"`
	CarbsTarget    float64 `json:"carbs_target"`
	FatTarget      float64 `json:"fat_target"`
}

func (Member) TableName() string          { return "members" }
func (HealthLog) TableName() string       { return "health_logs" }
func (DailyTotals) TableName() string     { return "daily_totals" }
func (Habit) TableName() string           { return "habits" }
func (HabitCompletion) TableName() string { return "habit_completions" }
func (FocusTask) TableName() string       { return "focus_tasks" }
func (WinEntry) TableName() string        { return "win_entries" }
func (Profile) TableName() string         { return "profiles" }
