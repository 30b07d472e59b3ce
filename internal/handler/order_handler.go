package handler

import (
	"net/http"

	"commerce/internal/config"
	"commerce/internal/middleware"
	"commerce/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 注文と決済のHTTP
type OrderHandler struct {
	orderUC   *usecase.OrderUsecase
	paymentUC *usecase.PaymentUsecase
}

// DI
func NewOrderHandler(orderUC *usecase.OrderUsecase, paymentUC *usecase.PaymentUsecase) *OrderHandler {
	return &OrderHandler{
		orderUC:   orderUC,
		paymentUC: paymentUC,
	}
}

type stripeClientSecretResponse struct {
	ClientSecret string `json:"clientSecret"`
}

func (h *OrderHandler) RegisterRoutes(api *echo.Group, cfg config.Config) {
	g := api.Group("/order")
	g.Use(middleware.AuthJWT(cfg))

	g.POST("/users/payments/:paymentMethod", h.placeOrder)
	g.GET("/users", h.listUserOrders)
	g.POST("/stripe-client-secret", h.createStripeClientSecret)
}

func (h *OrderHandler) placeOrder(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}
	email, ok := getUserEmailFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req usecase.PlaceOrderInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.orderUC.PlaceOrder(c.Request().Context(), userID, email, c.Param("paymentMethod"), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *OrderHandler) listUserOrders(c echo.Context) error {
	email, ok := getUserEmailFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.orderUC.GetUserOrders(c.Request().Context(), email)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) createStripeClientSecret(c echo.Context) error {
	var req usecase.StripePaymentInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	secret, err := h.paymentUC.CreateStripeClientSecret(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, stripeClientSecretResponse{ClientSecret: secret})
}
