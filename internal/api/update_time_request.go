package api

// swagger:model api.UpdateTimeRequest
// Time 為使用者自設的小時時差，任何整數皆可，不做範圍驗證
type UpdateTimeRequest struct {
	Time int `form:"time" example:"-5"`
}
