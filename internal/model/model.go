package model

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type User struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

type LogRequest struct {
	Date           string  `json:"date"`
	Type           string  `json:"type" binding:"required"`
	Calories       int     `json:"calories"`
	Protein        float64 `json:"protein"`
	Carbs          float64 `json:"carbs"`
	Fat            float64 `json:"fat"`
	WaterMl        int     `json:"water_ml"`
	SleepHours     float64 `json:"sleep_hours"`
	DurationMin    int     `json:"duration_min"`
	CaloriesBurned int     `json:"calories_burned"`
	WeightKg       float64 `json:"weight_kg"`
	Mood           string  `json:"mood"`
	Text           string  `json:"text"`
}

type TotalsRequest struct {
	Date            string `json:"date"`
	Steps           int    `json:"steps"`
	WaterMlOverride int    `json:"water_ml_override"`
}

type HabitRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Frequency   string `json:"frequency"`
	Priority    string `json:"priority"`
}
