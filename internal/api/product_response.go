package api

// swagger:model api.ProductResponse
// Produced/Expire 為平移後的顯示時間，Percent/Color 以原始時間即時計算
type ProductResponse struct {
	ID       int    `json:"id" example:"11"`
	Name     string `json:"name" example:"Молоко"`
	Count    int    `json:"count" example:"2"`
	Produced string `json:"produced" example:"2024-01-01T03:00:00Z"`
	Expire   string `json:"expire" example:"2024-01-05T03:00:00Z"`
	Category string `json:"category" example:"dairy"`
	Shop     string `json:"shop" example:"Lenta"`
	Image    string `json:"image" example:"data:image/png;base64,iVBORw0KGgo="`
	Percent  int    `json:"percent" example:"75"`
	Color    string `json:"color" example:"green"`
}
