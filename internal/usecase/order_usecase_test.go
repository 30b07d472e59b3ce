package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"commerce/internal/domain/model"
	repo "commerce/internal/repository"
	"commerce/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type orderMocks struct {
	carts      *CartRepoMock
	cartItems  *CartItemRepoMock
	products   *ProductRepoMock
	inventory  *InventoryRepoMock
	orders     *OrderRepoMock
	orderItems *OrderItemRepoMock
	payments   *PaymentRepoMock
	addresses  *AddressRepoMock
}

func newOrderUsecase() (*usecase.OrderUsecase, orderMocks) {
	m := orderMocks{
		carts:      new(CartRepoMock),
		cartItems:  new(CartItemRepoMock),
		products:   new(ProductRepoMock),
		inventory:  new(InventoryRepoMock),
		orders:     new(OrderRepoMock),
		orderItems: new(OrderItemRepoMock),
		payments:   new(PaymentRepoMock),
		addresses:  new(AddressRepoMock),
	}
	tx := txManagerStub{repos: txReposStub{
		carts:      m.carts,
		cartItems:  m.cartItems,
		products:   m.products,
		inventory:  m.inventory,
		orders:     m.orders,
		orderItems: m.orderItems,
		payments:   m.payments,
		addresses:  m.addresses,
	}}
	return usecase.NewOrderUsecase(m.orders, m.orderItems, tx), m
}

// 確定に成功すると在庫が減り、カートが空になり、合計がスナップショットされる
func TestOrderUsecase_PlaceOrder_Success(t *testing.T) {
	uc, m := newOrderUsecase()

	cart := model.Cart{ID: 5, UserID: 7, TotalPrice: dec("270")}
	items := []model.CartItem{
		{ID: 11, CartID: 5, ProductID: 1, Quantity: 3, Price: dec("90"), Discount: dec("10")},
	}

	m.carts.On("FindByEmail", mock.Anything, "user@example.com").Return(cart, nil)
	m.addresses.On("FindByID", mock.Anything, int64(2)).Return(model.Address{ID: 2, UserID: 7}, nil)
	m.cartItems.On("ListByCartID", mock.Anything, int64(5)).Return(items, nil)
	m.payments.On("Create", mock.Anything, mock.MatchedBy(func(p model.Payment) bool {
		return p.PaymentMethod == "card" && p.PgName == "stripe"
	})).Return(int64(21), nil)
	m.orders.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		return o.Email == "user@example.com" &&
			o.Status == model.OrderStatusAccepted &&
			o.TotalAmount.Equal(dec("270")) &&
			o.AddressID == 2 && o.PaymentID == 21
	})).Return(int64(31), nil)
	m.payments.On("AttachOrder", mock.Anything, int64(21), int64(31)).Return(nil)
	m.inventory.On("DecreaseStockIfEnough", mock.Anything, int64(1), int64(3)).Return(true, nil)
	m.orderItems.On("CreateBulk", mock.Anything, int64(31), mock.MatchedBy(func(list []model.OrderItem) bool {
		return len(list) == 1 && list[0].ProductID == 1 && list[0].Quantity == 3 &&
			list[0].OrderedProductPrice.Equal(dec("90"))
	})).Return(nil)
	m.cartItems.On("DeleteAllByCartID", mock.Anything, int64(5)).Return(nil)
	m.carts.On("UpdateTotalPrice", mock.Anything, int64(5), mock.MatchedBy(func(total decimal.Decimal) bool {
		return total.Equal(decimal.Zero)
	})).Return(nil)
	m.orders.On("FindByID", mock.Anything, int64(31)).Return(model.Order{
		ID: 31, Email: "user@example.com", TotalAmount: dec("270"),
		Status: model.OrderStatusAccepted, AddressID: 2, PaymentID: 21,
	}, nil)
	m.orderItems.On("ListByOrderID", mock.Anything, int64(31)).Return([]model.OrderItem{
		{ID: 41, OrderID: 31, ProductID: 1, Quantity: 3, OrderedProductPrice: dec("90"), Discount: dec("10")},
	}, nil)

	out, err := uc.PlaceOrder(context.Background(), 7, "user@example.com", "card", usecase.PlaceOrderInput{
		AddressID: 2,
		PgName:    "stripe",
	})
	assert.NoError(t, err)
	assert.Equal(t, model.OrderStatusAccepted, out.Status)
	assert.True(t, out.TotalAmount.Equal(dec("270")))
	assert.Equal(t, 1, len(out.Items))

	m.inventory.AssertExpectations(t)
	m.cartItems.AssertExpectations(t)
	m.carts.AssertExpectations(t)
}

func TestOrderUsecase_PlaceOrder_CartNotFound(t *testing.T) {
	uc, m := newOrderUsecase()

	m.carts.On("FindByEmail", mock.Anything, "user@example.com").Return(model.Cart{}, repo.ErrNotFound)

	_, err := uc.PlaceOrder(context.Background(), 7, "user@example.com", "card", usecase.PlaceOrderInput{AddressID: 2})
	assertHTTPError(t, err, http.StatusNotFound)
}

// 他人の住所への配送は403
func TestOrderUsecase_PlaceOrder_ForeignAddress(t *testing.T) {
	uc, m := newOrderUsecase()

	m.carts.On("FindByEmail", mock.Anything, "user@example.com").Return(model.Cart{ID: 5, UserID: 7}, nil)
	m.addresses.On("FindByID", mock.Anything, int64(2)).Return(model.Address{ID: 2, UserID: 99}, nil)

	_, err := uc.PlaceOrder(context.Background(), 7, "user@example.com", "card", usecase.PlaceOrderInput{AddressID: 2})
	assertHTTPError(t, err, http.StatusForbidden)
}

func TestOrderUsecase_PlaceOrder_EmptyCart(t *testing.T) {
	uc, m := newOrderUsecase()

	m.carts.On("FindByEmail", mock.Anything, "user@example.com").Return(model.Cart{ID: 5, UserID: 7}, nil)
	m.addresses.On("FindByID", mock.Anything, int64(2)).Return(model.Address{ID: 2, UserID: 7}, nil)
	m.cartItems.On("ListByCartID", mock.Anything, int64(5)).Return([]model.CartItem{}, nil)

	_, err := uc.PlaceOrder(context.Background(), 7, "user@example.com", "card", usecase.PlaceOrderInput{AddressID: 2})
	assertHTTPError(t, err, http.StatusBadRequest)
}

// 在庫不足はトランザクションごと失敗する
func TestOrderUsecase_PlaceOrder_InsufficientStockAborts(t *testing.T) {
	uc, m := newOrderUsecase()

	cart := model.Cart{ID: 5, UserID: 7, TotalPrice: dec("900")}
	items := []model.CartItem{
		{ID: 11, CartID: 5, ProductID: 1, Quantity: 10, Price: dec("90")},
	}

	m.carts.On("FindByEmail", mock.Anything, "user@example.com").Return(cart, nil)
	m.addresses.On("FindByID", mock.Anything, int64(2)).Return(model.Address{ID: 2, UserID: 7}, nil)
	m.cartItems.On("ListByCartID", mock.Anything, int64(5)).Return(items, nil)
	m.payments.On("Create", mock.Anything, mock.Anything).Return(int64(21), nil)
	m.orders.On("Create", mock.Anything, mock.Anything).Return(int64(31), nil)
	m.payments.On("AttachOrder", mock.Anything, int64(21), int64(31)).Return(nil)
	m.inventory.On("DecreaseStockIfEnough", mock.Anything, int64(1), int64(10)).Return(false, nil)
	m.products.On("FindByID", mock.Anything, int64(1)).Return(model.Product{ID: 1, Name: "coffee", Quantity: 4}, nil)

	_, err := uc.PlaceOrder(context.Background(), 7, "user@example.com", "card", usecase.PlaceOrderInput{AddressID: 2})
	assertHTTPError(t, err, http.StatusBadRequest)

	//カートは空にされない
	m.cartItems.AssertNotCalled(t, "DeleteAllByCartID", mock.Anything, int64(5))
}

func TestOrderUsecase_GetUserOrders_Empty(t *testing.T) {
	uc, m := newOrderUsecase()

	m.orders.On("ListByEmail", mock.Anything, "user@example.com").Return([]model.Order{}, nil)

	out, err := uc.GetUserOrders(context.Background(), "user@example.com")
	assert.NoError(t, err)
	assert.Empty(t, out)
}
