// File: internal/model/product.go
package model

import "time"

// Product 使用者的一筆食品紀錄
// ProducedAt/ExpiresAt 一律以 UTC 儲存，未套用使用者時差
// UserClockOffset 為建立當下使用者時差的快照，之後不再回寫
type Product struct {
	ID              int       `db:"id" json:"id"`
	UserID          int       `db:"user_id" json:"user_id"`
	Name            string    `db:"name" json:"name"`
	Count           int       `db:"count" json:"count"`
	ProducedAt      time.Time `db:"produced_at" json:"produced_at"`
	ExpiresAt       time.Time `db:"expires_at" json:"expires_at"`
	Category        string    `db:"category" json:"category"`
	Shop            string    `db:"shop" json:"shop"`
	Image           string    `db:"image" json:"image"`
	UserClockOffset int       `db:"user_clock_offset" json:"user_clock_offset"`
	ProgressPercent int       `db:"progress_percent" json:"progress_percent"`
	ProgressColor   string    `db:"progress_color" json:"progress_color"`
	Is50            bool      `db:"is_50" json:"is_50"`
	Is25            bool      `db:"is_25" json:"is_25"`
	Is10            bool      `db:"is_10" json:"is_10"`
	IsBad           bool      `db:"is_bad" json:"is_bad"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}
