package api

// swagger:model api.ProfileResponse
type ProfileResponse struct {
	CountProducts int `json:"count_products" example:"3"`
}
