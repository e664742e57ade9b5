package client

import (
	"context"
	"time"
)

type Client interface {
	Ping(ctx context.Context) error
	SignUp(ctx context.Context, username, password string) error
	SignIn(ctx context.Context, username, password string) (*Session, error)
	Logout()
	Usage(ctx context.Context) (int, error)
	CheckUsage(ctx context.Context) (bool, error)
	Stats(ctx context.Context) (*Stats, error)
	RecordLogin(ctx context.Context) (string, error)
	RecordTopic(ctx context.Context, topic string) (bool, error)
	Badges(ctx context.Context) ([]Badge, error)
	Award(ctx context.Context, grade *float64) ([]string, error)
}

type Session struct {
	Token    string `json:"token"`
	UserID   string `json:"userId"`
	UserName string `json:"username"`
}

type Stats struct {
	TotalLogins  int      `json:"total_logins"`
	QuizzesTaken int      `json:"quizzes_taken"`
	Topics       []string `json:"topics"`
}

type Badge struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	AwardedAt   time.Time `json:"awarded_at"`
}
