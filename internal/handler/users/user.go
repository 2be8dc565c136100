package users

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"fresh-or-rotten/internal/api"
	"fresh-or-rotten/internal/cache"
	"fresh-or-rotten/internal/database"
	"fresh-or-rotten/internal/middleware"
	"fresh-or-rotten/internal/model"
	"fresh-or-rotten/internal/store"

	"github.com/labstack/echo/v4"
)

// profileCountTTL 個人頁數量快取的存活時間
const profileCountTTL = 30 * time.Second

var (
	countProducts         = store.CountProducts
	updateUserClockOffset = store.UpdateUserClockOffset
)

func resolvedUser(c echo.Context) (*model.User, bool) {
	u, ok := c.Get(middleware.ContextUserKey).(*model.User)
	return u, ok
}

// @Summary     Get my profile
// @Description 回傳使用者的食品總數，結果短暫快取
// @Tags        users
// @Produce     json
// @Param       tg_id path int true "Telegram 帳號 ID"
// @Success     200   {object} api.ProfileResponse
// @Failure     500   {object} api.ErrorResponse
// @Router      /main/{tg_id} [get]
func ProfileHandler(db database.DB, cch cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := resolvedUser(c)
		if !ok {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "user not resolved"})
		}

		key := fmt.Sprintf("profile:count:%d", user.ID)
		if s, err := cch.Get(c.Request().Context(), key).Result(); err == nil {
			if n, convErr := strconv.Atoi(s); convErr == nil {
				return c.JSON(http.StatusOK, api.ProfileResponse{CountProducts: n})
			}
		}

		count, err := countProducts(c.Request().Context(), db, user.ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		// 快取寫入失敗只影響下次是否命中，不影響本次回應
		_ = cch.Set(c.Request().Context(), key, count, profileCountTTL).Err()

		return c.JSON(http.StatusOK, api.ProfileResponse{CountProducts: count})
	}
}

// @Summary     Update my clock offset
// @Description 覆寫使用者自設的小時時差，任何整數皆接受
// @Tags        users
// @Accept      application/x-www-form-urlencoded
// @Param       tg_id path     int true "Telegram 帳號 ID"
// @Param       time  formData int true "小時時差"
// @Success     204   "No Content"
// @Failure     400   {object} api.ErrorResponse
// @Failure     500   {object} api.ErrorResponse
// @Router      /users/{tg_id}/time [patch]
func UpdateUserTimeHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.UpdateTimeRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid form data"})
		}

		user, ok := resolvedUser(c)
		if !ok {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "user not resolved"})
		}

		if err := updateUserClockOffset(c.Request().Context(), db, user.ID, req.Time); err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.NoContent(http.StatusNoContent)
	}
}
