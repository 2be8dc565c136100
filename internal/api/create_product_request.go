package api

// swagger:model api.CreateProductRequest
type CreateProductRequest struct {
	Name     string `form:"name" validate:"required" example:"Молоко"`
	Count    int    `form:"count" validate:"required,gt=0" example:"2"`
	Produced string `form:"produced" validate:"required" example:"2024-01-01T00:00:00Z"`
	Expire   string `form:"expire" validate:"required" example:"2024-01-05T00:00:00Z"`
	Category string `form:"category" validate:"required" example:"dairy"`
	Shop     string `form:"shop" validate:"required" example:"Lenta"`
	Image    string `form:"image" validate:"required" example:"iVBORw0KGgo="`
}
