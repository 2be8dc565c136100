// File: internal/service/freshness.go
package service

import (
	"errors"
	"math"
	"time"
)

// 新鮮度燈號
const (
	ColorGreen  = "green"
	ColorOrange = "orange"
	ColorRed    = "red"
)

// displayGraceHours 所有顯示時間固定往後平移的小時數，再加上使用者自設時差
const displayGraceHours = 3

// ErrInvalidInterval 表示過期時間未晚於生產時間
var ErrInvalidInterval = errors.New("expiration must be strictly after production")

// Freshness 單次新鮮度評估的結果
// DisplayProducedAt/DisplayExpiresAt 僅供顯示，百分比一律以未平移的原始時間計算
type Freshness struct {
	DisplayProducedAt time.Time
	DisplayExpiresAt  time.Time
	Percent           int
	Color             string
}

// ComputeFreshness 依據生產時間、過期時間、使用者時差與當前時間計算新鮮度
// 純函式，不讀系統時鐘；now 由呼叫端注入
// 100 = 剛生產，0 = 已過期；超出範圍會收斂到 [0, 100]
func ComputeFreshness(producedAt, expiresAt time.Time, clockOffsetHours int, now time.Time) (*Freshness, error) {
	total := expiresAt.Sub(producedAt)
	if total <= 0 {
		return nil, ErrInvalidInterval
	}

	elapsed := now.Sub(producedAt)
	percent := int(math.Floor((1 - elapsed.Seconds()/total.Seconds()) * 100))
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	offset := time.Duration(displayGraceHours+clockOffsetHours) * time.Hour
	return &Freshness{
		DisplayProducedAt: producedAt.Add(offset),
		DisplayExpiresAt:  expiresAt.Add(offset),
		Percent:           percent,
		Color:             colorFor(percent),
	}, nil
}

// colorFor 依百分比分級：>50 green、>25 orange、其餘 red
// 邊界值 50 歸 orange、25 歸 red
func colorFor(percent int) string {
	switch {
	case percent > 50:
		return ColorGreen
	case percent > 25:
		return ColorOrange
	default:
		return ColorRed
	}
}

// ThresholdFlags 回傳百分比已跨越的門檻旗標，存檔供之後的到期提醒使用
func ThresholdFlags(percent int) (is50, is25, is10, isBad bool) {
	return percent <= 50, percent <= 25, percent <= 10, percent <= 0
}
