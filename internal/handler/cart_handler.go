package handler

import (
	"net/http"
	"strconv"

	"commerce/internal/config"
	"commerce/internal/middleware"
	"commerce/internal/usecase"

	"github.com/labstack/echo/v4"
)

// カートのHTTP
type CartHandler struct {
	uc *usecase.CartUsecase
}

// DI
func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

type replaceCartRequest struct {
	Items []usecase.CartItemInput `json:"items"`
}

func (h *CartHandler) RegisterRoutes(api *echo.Group, cfg config.Config) {
	g := api.Group("")
	g.Use(middleware.AuthJWT(cfg))

	g.POST("/carts/products/:productId/quantity/:quantity", h.addProduct)
	g.GET("/carts/users/cart", h.getUserCart)
	g.GET("/carts/:cartId", h.getCart)
	g.PUT("/cart/products/:productId/quantity/:operation", h.updateQuantity)
	g.DELETE("/carts/:cartId/product/:productId", h.deleteProduct)
	g.POST("/cart/create", h.replaceItems)

	admin := api.Group("/carts")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.AdminRoleGuard())
	admin.GET("", h.listAll)
}

func (h *CartHandler) addProduct(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product id"})
	}
	qty, err := strconv.ParseInt(c.Param("quantity"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid quantity"})
	}

	out, err := h.uc.AddProductToCart(c.Request().Context(), userID, productID, qty)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *CartHandler) getUserCart(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.GetUserCart(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// 自分のemailとカートIDが一致するときだけ取得できる
func (h *CartHandler) getCart(c echo.Context) error {
	email, ok := getUserEmailFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	cartID, err := strconv.ParseInt(c.Param("cartId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid cart id"})
	}

	out, err := h.uc.GetCart(c.Request().Context(), email, cartID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// operationはaddかdelete。deleteは数量を1減らす
func (h *CartHandler) updateQuantity(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product id"})
	}

	var delta int64
	switch c.Param("operation") {
	case "add":
		delta = 1
	case "delete":
		delta = -1
	default:
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid operation"})
	}

	out, err := h.uc.UpdateProductQuantity(c.Request().Context(), userID, productID, delta)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) deleteProduct(c echo.Context) error {
	if _, ok := getUserIDFromContext(c); !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	cartID, err := strconv.ParseInt(c.Param("cartId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid cart id"})
	}
	productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product id"})
	}

	msg, err := h.uc.DeleteProductFromCart(c.Request().Context(), cartID, productID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: msg})
}

// 明細の一括入れ替え
func (h *CartHandler) replaceItems(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req replaceCartRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.ReplaceCartItems(c.Request().Context(), userID, req.Items); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, SuccessResponse{Message: "cart created"})
}

func (h *CartHandler) listAll(c echo.Context) error {
	out, err := h.uc.ListAllCarts(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
