package usecase

import (
	"context"
	"net/http"
	"strings"
)

// 決済ゲートウェイにインテントを作らせる約束
type PaymentGateway interface {
	CreateIntent(ctx context.Context, amount int64, currency string) (clientSecret string, err error)
}

type PaymentUsecase struct {
	gateway PaymentGateway
}

// DI
func NewPaymentUsecase(gateway PaymentGateway) *PaymentUsecase {
	return &PaymentUsecase{gateway: gateway}
}

// クライアントシークレット作成の入力。Amountは最小通貨単位
type StripePaymentInput struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// Stripeのclient secretを作る。ゲートウェイ障害は502
func (u *PaymentUsecase) CreateStripeClientSecret(ctx context.Context, in StripePaymentInput) (string, error) {
	if in.Amount <= 0 {
		return "", NewHTTPError(http.StatusBadRequest, "amount must be > 0")
	}
	currency := strings.ToLower(strings.TrimSpace(in.Currency))
	if currency == "" {
		return "", NewHTTPError(http.StatusBadRequest, "currency required")
	}

	secret, err := u.gateway.CreateIntent(ctx, in.Amount, currency)
	if err != nil {
		return "", NewHTTPError(http.StatusBadGateway, "payment gateway error")
	}
	return secret, nil
}
