package server

import (
	"commerce/internal/config"
	"commerce/internal/handler"

	"github.com/labstack/echo/v4"
)

// ルート登録に必要なhandler一式
type Handlers struct {
	Auth         *handler.AuthHandler
	Product      *handler.ProductHandler
	AdminProduct *handler.AdminProductHandler
	Category     *handler.CategoryHandler
	Cart         *handler.CartHandler
	Order        *handler.OrderHandler
	Address      *handler.AddressHandler
}

// すべて/api配下に登録する
func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	api := e.Group("/api")

	h.Auth.RegisterRoutes(api)
	h.Product.RegisterRoutes(api)
	h.AdminProduct.RegisterRoutes(api, cfg)
	h.Category.RegisterRoutes(api, cfg)
	h.Cart.RegisterRoutes(api, cfg)
	h.Order.RegisterRoutes(api, cfg)
	h.Address.RegisterRoutes(api, cfg)
}
