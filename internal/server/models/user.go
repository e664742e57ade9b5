package models

import "time"

type User struct {
	ID             string
	UserName       string
	HashedPassword string
	CreatedAt      time.Time
}
