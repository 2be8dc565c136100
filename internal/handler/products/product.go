package products

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"fresh-or-rotten/internal/api"
	"fresh-or-rotten/internal/database"
	"fresh-or-rotten/internal/middleware"
	"fresh-or-rotten/internal/model"
	"fresh-or-rotten/internal/service"
	"fresh-or-rotten/internal/store"
	"fresh-or-rotten/internal/worker"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
)

var (
	nowFn                 = time.Now
	computeFreshness      = service.ComputeFreshness
	createProduct         = store.CreateProduct
	listProducts          = store.ListProducts
	getProductByID        = store.GetProductByID
	deleteProduct         = store.DeleteProduct
	updateProductProgress = store.UpdateProductProgress
)

func resolvedUser(c echo.Context) (*model.User, bool) {
	u, ok := c.Get(middleware.ContextUserKey).(*model.User)
	return u, ok
}

func toResponse(p *model.Product, f *service.Freshness) api.ProductResponse {
	return api.ProductResponse{
		ID:       p.ID,
		Name:     p.Name,
		Count:    p.Count,
		Produced: f.DisplayProducedAt.Format(time.RFC3339),
		Expire:   f.DisplayExpiresAt.Format(time.RFC3339),
		Category: p.Category,
		Shop:     p.Shop,
		Image:    p.Image,
		Percent:  f.Percent,
		Color:    f.Color,
	}
}

// @Summary     Create a product
// @Description 新增一筆食品，快照使用者目前時差並寫入建立當下的新鮮度
// @Tags        products
// @Accept      application/x-www-form-urlencoded
// @Produce     json
// @Param       tg_id    path     int    true "Telegram 帳號 ID"
// @Param       name     formData string true "食品名稱"
// @Param       count    formData int    true "數量"
// @Param       produced formData string true "生產時間 (RFC 3339)"
// @Param       expire   formData string true "過期時間 (RFC 3339)"
// @Param       category formData string true "分類"
// @Param       shop     formData string true "商店"
// @Param       image    formData string true "圖片 (base64)"
// @Success     201      {object} api.ProductResponse
// @Failure     400      {object} api.ErrorResponse
// @Failure     500      {object} api.ErrorResponse
// @Router      /products/{tg_id} [post]
func CreateProductHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateProductRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid form data"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		producedAt, err := time.Parse(time.RFC3339, req.Produced)
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid produced timestamp"})
		}
		expiresAt, err := time.Parse(time.RFC3339, req.Expire)
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid expire timestamp"})
		}

		user, ok := resolvedUser(c)
		if !ok {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "user not resolved"})
		}

		// 建立當下算一次新鮮度，區間不合法在這裡就擋下，不會寫入任何資料
		f, err := computeFreshness(producedAt.UTC(), expiresAt.UTC(), user.ClockOffsetHours, nowFn().UTC())
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}
		is50, is25, is10, isBad := service.ThresholdFlags(f.Percent)

		product := &model.Product{
			UserID:          user.ID,
			Name:            req.Name,
			Count:           req.Count,
			ProducedAt:      producedAt.UTC(),
			ExpiresAt:       expiresAt.UTC(),
			Category:        req.Category,
			Shop:            req.Shop,
			Image:           "data:image/png;base64," + req.Image,
			UserClockOffset: user.ClockOffsetHours,
			ProgressPercent: f.Percent,
			ProgressColor:   f.Color,
			Is50:            is50,
			Is25:            is25,
			Is10:            is10,
			IsBad:           isBad,
		}
		created, err := createProduct(c.Request().Context(), db, product)
		if err != nil {
			if errors.Is(err, service.ErrInvalidInterval) {
				return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		return c.JSON(http.StatusCreated, toResponse(created, f))
	}
}

// @Summary     List products
// @Description 列出使用者的食品，每筆都以當前時間重新計算新鮮度
// @Tags        products
// @Produce     json
// @Param       tg_id path  int    true  "Telegram 帳號 ID"
// @Param       shop  query string false "商店名稱，空值或 All 表示不過濾"
// @Success     200   {array}  api.ProductResponse
// @Failure     500   {object} api.ErrorResponse
// @Router      /products/{tg_id} [get]
func ListProductsHandler(db database.DB, wp worker.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := resolvedUser(c)
		if !ok {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "user not resolved"})
		}

		items, err := listProducts(c.Request().Context(), db, user.ID, c.QueryParam("shop"))
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		now := nowFn().UTC()
		resp := make([]api.ProductResponse, 0, len(items))
		for i := range items {
			p := items[i]
			// 資料表有 expires_at > produced_at 的 CHECK，這裡只是引擎的防線
			f, err := computeFreshness(p.ProducedAt, p.ExpiresAt, p.UserClockOffset, now)
			if err != nil {
				continue
			}
			resp = append(resp, toResponse(&p, f))

			// 存檔的快照落後時離線回寫，回應不等它
			if f.Percent != p.ProgressPercent || f.Color != p.ProgressColor {
				is50, is25, is10, isBad := service.ThresholdFlags(f.Percent)
				id := p.ID
				percent, color := f.Percent, f.Color
				wp.Submit(func() {
					_ = updateProductProgress(context.Background(), db, id, percent, color, is50, is25, is10, isBad)
				})
			}
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// @Summary     Get a product by ID
// @Description 取得單筆食品並重新計算新鮮度
// @Tags        products
// @Produce     json
// @Param       tg_id path int true "Telegram 帳號 ID"
// @Param       id    path int true "食品 ID"
// @Success     200   {object} api.ProductResponse
// @Failure     400   {object} api.ErrorResponse
// @Failure     404   {object} api.ErrorResponse
// @Failure     500   {object} api.ErrorResponse
// @Router      /products/{tg_id}/{id} [get]
func GetProductHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid product ID"})
		}
		user, ok := resolvedUser(c)
		if !ok {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "user not resolved"})
		}

		p, err := getProductByID(c.Request().Context(), db, id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "product not found"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		// 別人的食品一律當作不存在
		if p.UserID != user.ID {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "product not found"})
		}

		f, err := computeFreshness(p.ProducedAt, p.ExpiresAt, p.UserClockOffset, nowFn().UTC())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.JSON(http.StatusOK, toResponse(p, f))
	}
}

// @Summary     Delete a product
// @Description 依 ID 刪除食品，不存在時同樣回傳成功
// @Tags        products
// @Param       tg_id path int true "Telegram 帳號 ID"
// @Param       id    path int true "食品 ID"
// @Success     204   "No Content"
// @Failure     400   {object} api.ErrorResponse
// @Failure     500   {object} api.ErrorResponse
// @Router      /products/{tg_id}/{id} [delete]
func DeleteProductHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid product ID"})
		}
		if err := deleteProduct(c.Request().Context(), db, id); err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.NoContent(http.StatusNoContent)
	}
}
