// File: internal/model/user.go
package model

import "time"

type User struct {
	ID               int       `db:"id" json:"id"`
	TelegramID       int64     `db:"tg_id" json:"tg_id"`
	ClockOffsetHours int       `db:"clock_offset_hours" json:"clock_offset_hours"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}
