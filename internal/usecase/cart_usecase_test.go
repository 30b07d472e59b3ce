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

func newCartUsecase(cartRepo *CartRepoMock, itemRepo *CartItemRepoMock, productRepo *ProductRepoMock) *usecase.CartUsecase {
	tx := txManagerStub{repos: txReposStub{
		carts:     cartRepo,
		cartItems: itemRepo,
		products:  productRepo,
	}}
	return usecase.NewCartUsecase(cartRepo, itemRepo, productRepo, tx)
}

// 在庫10、価格100、割引10%の商品を3個入れると合計270
func TestCartUsecase_AddProductToCart_Success(t *testing.T) {
	ctx := context.Background()

	cartRepo := new(CartRepoMock)
	itemRepo := new(CartItemRepoMock)
	productRepo := new(ProductRepoMock)
	uc := newCartUsecase(cartRepo, itemRepo, productRepo)

	p := model.Product{
		ID:           1,
		Name:         "coffee",
		Quantity:     10,
		Price:        dec("100"),
		Discount:     dec("10"),
		SpecialPrice: dec("90"),
	}
	cart := model.Cart{ID: 5, UserID: 7, TotalPrice: dec("0")}

	productRepo.On("FindByID", mock.Anything, int64(1)).Return(p, nil)
	cartRepo.On("GetOrCreateByUserID", mock.Anything, int64(7)).Return(cart, nil)
	itemRepo.On("FindByCartAndProduct", mock.Anything, int64(5), int64(1)).Return(model.CartItem{}, repo.ErrNotFound)
	itemRepo.On("Create", mock.Anything, mock.MatchedBy(func(item model.CartItem) bool {
		return item.CartID == 5 && item.ProductID == 1 && item.Quantity == 3 &&
			item.Price.Equal(dec("90")) && item.Discount.Equal(dec("10"))
	})).Return(model.CartItem{ID: 11, CartID: 5, ProductID: 1, Quantity: 3, Price: dec("90"), Discount: dec("10")}, nil)
	cartRepo.On("UpdateTotalPrice", mock.Anything, int64(5), mock.MatchedBy(func(total decimal.Decimal) bool {
		return total.Equal(dec("270"))
	})).Return(nil)
	itemRepo.On("ListByCartID", mock.Anything, int64(5)).Return([]model.CartItem{
		{ID: 11, CartID: 5, ProductID: 1, Quantity: 3, Price: dec("90"), Discount: dec("10")},
	}, nil)

	out, err := uc.AddProductToCart(ctx, 7, 1, 3)
	assert.NoError(t, err)
	assert.True(t, out.TotalPrice.Equal(dec("270")))
	assert.Equal(t, 1, len(out.Products))
	assert.Equal(t, int64(3), out.Products[0].Quantity)

	cartRepo.AssertExpectations(t)
	itemRepo.AssertExpectations(t)
}

func TestCartUsecase_AddProductToCart_ProductNotFound(t *testing.T) {
	productRepo := new(ProductRepoMock)
	uc := newCartUsecase(new(CartRepoMock), new(CartItemRepoMock), productRepo)

	productRepo.On("FindByID", mock.Anything, int64(99)).Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.AddProductToCart(context.Background(), 7, 99, 1)
	assertHTTPError(t, err, http.StatusNotFound)
}

// 同じ商品の二重追加は409
func TestCartUsecase_AddProductToCart_DuplicateLine(t *testing.T) {
	cartRepo := new(CartRepoMock)
	itemRepo := new(CartItemRepoMock)
	productRepo := new(ProductRepoMock)
	uc := newCartUsecase(cartRepo, itemRepo, productRepo)

	p := model.Product{ID: 1, Name: "coffee", Quantity: 10, SpecialPrice: dec("90")}
	productRepo.On("FindByID", mock.Anything, int64(1)).Return(p, nil)
	cartRepo.On("GetOrCreateByUserID", mock.Anything, int64(7)).Return(model.Cart{ID: 5, UserID: 7}, nil)
	itemRepo.On("FindByCartAndProduct", mock.Anything, int64(5), int64(1)).Return(model.CartItem{ID: 11}, nil)

	_, err := uc.AddProductToCart(context.Background(), 7, 1, 1)
	assertHTTPError(t, err, http.StatusConflict)
}

func TestCartUsecase_AddProductToCart_OutOfStock(t *testing.T) {
	cartRepo := new(CartRepoMock)
	itemRepo := new(CartItemRepoMock)
	productRepo := new(ProductRepoMock)
	uc := newCartUsecase(cartRepo, itemRepo, productRepo)

	p := model.Product{ID: 1, Name: "coffee", Quantity: 0}
	productRepo.On("FindByID", mock.Anything, int64(1)).Return(p, nil)
	cartRepo.On("GetOrCreateByUserID", mock.Anything, int64(7)).Return(model.Cart{ID: 5}, nil)
	itemRepo.On("FindByCartAndProduct", mock.Anything, int64(5), int64(1)).Return(model.CartItem{}, repo.ErrNotFound)

	_, err := uc.AddProductToCart(context.Background(), 7, 1, 1)
	assertHTTPError(t, err, http.StatusBadRequest)
}

func TestCartUsecase_AddProductToCart_InsufficientStock(t *testing.T) {
	cartRepo := new(CartRepoMock)
	itemRepo := new(CartItemRepoMock)
	productRepo := new(ProductRepoMock)
	uc := newCartUsecase(cartRepo, itemRepo, productRepo)

	p := model.Product{ID: 1, Name: "coffee", Quantity: 2}
	productRepo.On("FindByID", mock.Anything, int64(1)).Return(p, nil)
	cartRepo.On("GetOrCreateByUserID", mock.Anything, int64(7)).Return(model.Cart{ID: 5}, nil)
	itemRepo.On("FindByCartAndProduct", mock.Anything, int64(5), int64(1)).Return(model.CartItem{}, repo.ErrNotFound)

	_, err := uc.AddProductToCart(context.Background(), 7, 1, 3)
	assertHTTPError(t, err, http.StatusBadRequest)
}

// 数量が0になったら明細ごと消える
func TestCartUsecase_UpdateProductQuantity_RemovesLineAtZero(t *testing.T) {
	cartRepo := new(CartRepoMock)
	itemRepo := new(CartItemRepoMock)
	productRepo := new(ProductRepoMock)
	uc := newCartUsecase(cartRepo, itemRepo, productRepo)

	p := model.Product{ID: 1, Name: "coffee", Quantity: 10, SpecialPrice: dec("90"), Discount: dec("10")}
	cart := model.Cart{ID: 5, UserID: 7, TotalPrice: dec("90")}
	item := model.CartItem{ID: 11, CartID: 5, ProductID: 1, Quantity: 1, Price: dec("90"), Discount: dec("10")}

	cartRepo.On("FindByUserID", mock.Anything, int64(7)).Return(cart, nil)
	productRepo.On("FindByID", mock.Anything, int64(1)).Return(p, nil)
	itemRepo.On("FindByCartAndProduct", mock.Anything, int64(5), int64(1)).Return(item, nil)
	itemRepo.On("DeleteByCartAndProduct", mock.Anything, int64(5), int64(1)).Return(nil)
	cartRepo.On("UpdateTotalPrice", mock.Anything, int64(5), mock.MatchedBy(func(total decimal.Decimal) bool {
		return total.Equal(dec("0"))
	})).Return(nil)
	itemRepo.On("ListByCartID", mock.Anything, int64(5)).Return([]model.CartItem{}, nil)

	out, err := uc.UpdateProductQuantity(context.Background(), 7, 1, -1)
	assert.NoError(t, err)
	assert.True(t, out.TotalPrice.Equal(dec("0")))
	assert.Empty(t, out.Products)

	itemRepo.AssertExpectations(t)
}

// マイナスまで減らすのは400
func TestCartUsecase_UpdateProductQuantity_NegativeResult(t *testing.T) {
	cartRepo := new(CartRepoMock)
	itemRepo := new(CartItemRepoMock)
	productRepo := new(ProductRepoMock)
	uc := newCartUsecase(cartRepo, itemRepo, productRepo)

	p := model.Product{ID: 1, Name: "coffee", Quantity: 10, SpecialPrice: dec("90")}
	cartRepo.On("FindByUserID", mock.Anything, int64(7)).Return(model.Cart{ID: 5, TotalPrice: dec("0")}, nil)
	productRepo.On("FindByID", mock.Anything, int64(1)).Return(p, nil)
	itemRepo.On("FindByCartAndProduct", mock.Anything, int64(5), int64(1)).Return(model.CartItem{Quantity: 0}, nil)

	_, err := uc.UpdateProductQuantity(context.Background(), 7, 1, -1)
	assertHTTPError(t, err, http.StatusBadRequest)
}

// 数量変更でスナップショットが現在の商品価格に追従する
func TestCartUsecase_UpdateProductQuantity_RefreshesSnapshot(t *testing.T) {
	cartRepo := new(CartRepoMock)
	itemRepo := new(CartItemRepoMock)
	productRepo := new(ProductRepoMock)
	uc := newCartUsecase(cartRepo, itemRepo, productRepo)

	//追加時は90だったが、今は80に値下げされている
	p := model.Product{ID: 1, Name: "coffee", Quantity: 10, SpecialPrice: dec("80"), Discount: dec("20")}
	cart := model.Cart{ID: 5, UserID: 7, TotalPrice: dec("180")}
	item := model.CartItem{ID: 11, CartID: 5, ProductID: 1, Quantity: 2, Price: dec("90"), Discount: dec("10")}

	cartRepo.On("FindByUserID", mock.Anything, int64(7)).Return(cart, nil)
	productRepo.On("FindByID", mock.Anything, int64(1)).Return(p, nil)
	itemRepo.On("FindByCartAndProduct", mock.Anything, int64(5), int64(1)).Return(item, nil)
	itemRepo.On("Update", mock.Anything, mock.MatchedBy(func(updated model.CartItem) bool {
		return updated.Quantity == 3 && updated.Price.Equal(dec("80")) && updated.Discount.Equal(dec("20"))
	})).Return(nil)
	//180 - 90*2 + 80*3 = 240
	cartRepo.On("UpdateTotalPrice", mock.Anything, int64(5), mock.MatchedBy(func(total decimal.Decimal) bool {
		return total.Equal(dec("240"))
	})).Return(nil)
	itemRepo.On("ListByCartID", mock.Anything, int64(5)).Return([]model.CartItem{
		{ID: 11, CartID: 5, ProductID: 1, Quantity: 3, Price: dec("80"), Discount: dec("20")},
	}, nil)

	out, err := uc.UpdateProductQuantity(context.Background(), 7, 1, 1)
	assert.NoError(t, err)
	assert.True(t, out.TotalPrice.Equal(dec("240")))

	itemRepo.AssertExpectations(t)
	cartRepo.AssertExpectations(t)
}

func TestCartUsecase_DeleteProductFromCart_Message(t *testing.T) {
	cartRepo := new(CartRepoMock)
	itemRepo := new(CartItemRepoMock)
	productRepo := new(ProductRepoMock)
	uc := newCartUsecase(cartRepo, itemRepo, productRepo)

	cartRepo.On("FindByID", mock.Anything, int64(5)).Return(model.Cart{ID: 5, TotalPrice: dec("180")}, nil)
	productRepo.On("FindByID", mock.Anything, int64(1)).Return(model.Product{ID: 1, Name: "coffee"}, nil)
	itemRepo.On("FindByCartAndProduct", mock.Anything, int64(5), int64(1)).Return(model.CartItem{Quantity: 2, Price: dec("90")}, nil)
	itemRepo.On("DeleteByCartAndProduct", mock.Anything, int64(5), int64(1)).Return(nil)
	cartRepo.On("UpdateTotalPrice", mock.Anything, int64(5), mock.MatchedBy(func(total decimal.Decimal) bool {
		return total.Equal(dec("0"))
	})).Return(nil)

	msg, err := uc.DeleteProductFromCart(context.Background(), 5, 1)
	assert.NoError(t, err)
	assert.Equal(t, "Product coffee removed from the cart !!!", msg)
}

// 他人のカートはemailが合わないので404
func TestCartUsecase_GetCart_WrongOwner(t *testing.T) {
	cartRepo := new(CartRepoMock)
	uc := newCartUsecase(cartRepo, new(CartItemRepoMock), new(ProductRepoMock))

	cartRepo.On("FindByEmailAndID", mock.Anything, "mallory@example.com", int64(5)).Return(model.Cart{}, repo.ErrNotFound)

	_, err := uc.GetCart(context.Background(), "mallory@example.com", 5)
	assertHTTPError(t, err, http.StatusNotFound)
}

func TestCartUsecase_ListAllCarts_EmptyIs404(t *testing.T) {
	cartRepo := new(CartRepoMock)
	uc := newCartUsecase(cartRepo, new(CartItemRepoMock), new(ProductRepoMock))

	cartRepo.On("ListAll", mock.Anything).Return([]model.Cart{}, nil)

	_, err := uc.ListAllCarts(context.Background())
	assertHTTPError(t, err, http.StatusNotFound)
}

// 一括入れ替えは全消し→作り直し→合計の付け直し
func TestCartUsecase_ReplaceCartItems(t *testing.T) {
	cartRepo := new(CartRepoMock)
	itemRepo := new(CartItemRepoMock)
	productRepo := new(ProductRepoMock)
	uc := newCartUsecase(cartRepo, itemRepo, productRepo)

	cartRepo.On("GetOrCreateByUserID", mock.Anything, int64(7)).Return(model.Cart{ID: 5, UserID: 7}, nil)
	itemRepo.On("DeleteAllByCartID", mock.Anything, int64(5)).Return(nil)
	productRepo.On("FindByID", mock.Anything, int64(1)).Return(model.Product{ID: 1, SpecialPrice: dec("90"), Discount: dec("10")}, nil)
	productRepo.On("FindByID", mock.Anything, int64(2)).Return(model.Product{ID: 2, SpecialPrice: dec("50"), Discount: dec("0")}, nil)
	itemRepo.On("Create", mock.Anything, mock.Anything).Return(model.CartItem{}, nil)
	//90*2 + 50*1 = 230
	cartRepo.On("UpdateTotalPrice", mock.Anything, int64(5), mock.MatchedBy(func(total decimal.Decimal) bool {
		return total.Equal(dec("230"))
	})).Return(nil)

	err := uc.ReplaceCartItems(context.Background(), 7, []usecase.CartItemInput{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
	})
	assert.NoError(t, err)

	cartRepo.AssertExpectations(t)
	itemRepo.AssertExpectations(t)
}
