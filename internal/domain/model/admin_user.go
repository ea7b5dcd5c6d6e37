package model

import "time"

type AdminUser struct {
	ID           int64
	Email        string
	DisplayName  string
	Role         string
	PasswordHash string
	TOTPSecret   string
	CreatedAt    time.Time
}
