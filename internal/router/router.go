// File: internal/router/router.go
package router

import (
	"github.com/labstack/echo/v4"

	"fresh-or-rotten/internal/cache"
	"fresh-or-rotten/internal/database"
	"fresh-or-rotten/internal/handler"
	"fresh-or-rotten/internal/handler/products"
	"fresh-or-rotten/internal/handler/users"
	"fresh-or-rotten/internal/middleware"
	"fresh-or-rotten/internal/worker"
)

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, db database.DB, rdb cache.Cache, wp worker.Pool) {
	api := e.Group("/api")

	// 健康檢查
	api.GET("/ping", handler.PingHandler(db, rdb))

	// 個人頁與時差設定
	api.GET("/main/:tg_id", users.ProfileHandler(db, rdb), middleware.ResolveUser(db))
	api.PATCH("/users/:tg_id/time", users.UpdateUserTimeHandler(db), middleware.ResolveUser(db))

	// 食品 CRUD，一律先解析使用者
	apiProducts := api.Group("/products/:tg_id", middleware.ResolveUser(db))
	apiProducts.GET("", products.ListProductsHandler(db, wp))
	apiProducts.POST("", products.CreateProductHandler(db))
	apiProducts.GET("/:id", products.GetProductHandler(db))
	apiProducts.DELETE("/:id", products.DeleteProductHandler(db))
}
