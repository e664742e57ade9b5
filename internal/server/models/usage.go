package models

// DailyUsage is one user's request counter for one UTC calendar day.
type DailyUsage struct {
	UserID       string
	Date         string
	RequestCount int
}
