package middleware

import (
	"net/http"
	"strconv"

	"fresh-or-rotten/internal/database"
	"fresh-or-rotten/internal/store"

	"github.com/labstack/echo/v4"
)

const ContextUserKey = "user"

var getOrCreateUser = store.GetOrCreateUser

// ResolveUser 從路徑參數取出 tg_id，查詢或建立使用者後放入 context
// 所有以 :tg_id 開頭的路由都經過這裡，對應到每個請求開頭的 get-or-create
func ResolveUser(db database.DB) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tgID, err := strconv.ParseInt(c.Param("tg_id"), 10, 64)
			if err != nil || tgID <= 0 {
				return echo.NewHTTPError(http.StatusBadRequest, "invalid telegram ID")
			}
			user, err := getOrCreateUser(c.Request().Context(), db, tgID)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "failed to resolve user")
			}
			c.Set(ContextUserKey, user)
			return next(c)
		}
	}
}
