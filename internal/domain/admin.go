package domain

import (
	"time"
)

type Admin struct {
	Id        int64
	Username  string
	PassHash  string
	CreatedAt time.Time
}

type AdminCredentials struct {
	Username string
	Password string
}
