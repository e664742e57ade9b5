// Package models defines server-side data models persisted in the database.
package models

// UserStats is the per-user gamification snapshot. Topics behaves as a set:
// it only grows and holds each name once.
type UserStats struct {
	UserID       string   `json:"-"`
	TotalLogins  int      `json:"total_logins"`
	LastLogin    string   `json:"last_login,omitempty"`
	QuizzesTaken int      `json:"quizzes_taken"`
	Topics       []string `json:"topics"`
}
