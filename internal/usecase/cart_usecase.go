package usecase

import (
	"context"
	"fmt"
	"net/http"

	"commerce/internal/domain/model"
	repo "commerce/internal/repository"

	"github.com/shopspring/decimal"
)

type CartUsecase struct {
	cartRepo     repo.CartRepository
	cartItemRepo repo.CartItemRepository
	productRepo  repo.ProductRepository
	txManager    repo.TransactionManager
}

// DI
func NewCartUsecase(
	cartRepo repo.CartRepository,
	cartItemRepo repo.CartItemRepository,
	productRepo repo.ProductRepository,
	txManager repo.TransactionManager,
) *CartUsecase {
	return &CartUsecase{
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
		txManager:    txManager,
	}
}

// カート内の1商品。Price/Discountは追加時点のスナップショット
type CartLine struct {
	ProductID int64           `json:"productId"`
	Name      string          `json:"name"`
	Image     string          `json:"image"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Discount  decimal.Decimal `json:"discount"`
}

type CartResponse struct {
	ID         int64           `json:"id"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	Products   []CartLine      `json:"products"`
}

// 一括入れ替えの入力
type CartItemInput struct {
	ProductID int64 `json:"productId"`
	Quantity  int64 `json:"quantity"`
}

// 商品をカートに追加する。カートが無ければ作る
func (u *CartUsecase) AddProductToCart(ctx context.Context, userID int64, productID int64, qty int64) (CartResponse, error) {
	if qty <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err != nil {
		if err == repo.ErrNotFound {
			return CartResponse{}, NewHTTPError(http.StatusNotFound, "product not found")
		}
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	cart, err := u.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//同じ商品の二重追加は競合。数量変更APIを使ってもらう
	if _, err := u.cartItemRepo.FindByCartAndProduct(ctx, cart.ID, productID); err == nil {
		return CartResponse{}, NewHTTPError(http.StatusConflict,
			fmt.Sprintf("Product %s already exists in the cart", p.Name))
	} else if err != repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//在庫チェック
	if p.Quantity == 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("Product %s is not available", p.Name))
	}
	if p.Quantity < qty {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("Please, make an order of the %s less than or equal to the quantity %d", p.Name, p.Quantity))
	}

	//追加時点の価格と割引をスナップショット
	if _, err := u.cartItemRepo.Create(ctx, model.CartItem{
		CartID:    cart.ID,
		ProductID: productID,
		Quantity:  qty,
		Price:     p.SpecialPrice,
		Discount:  p.Discount,
	}); err != nil {
		if err == repo.ErrDuplicate {
			return CartResponse{}, NewHTTPError(http.StatusConflict,
				fmt.Sprintf("Product %s already exists in the cart", p.Name))
		}
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	newTotal := cart.TotalPrice.Add(p.SpecialPrice.Mul(decimal.NewFromInt(qty)))
	if err := u.cartRepo.UpdateTotalPrice(ctx, cart.ID, newTotal); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	cart.TotalPrice = newTotal
	return u.buildCartResponse(ctx, cart)
}

// 数量を正負のdeltaで変更する。0になったら明細を削除する
func (u *CartUsecase) UpdateProductQuantity(ctx context.Context, userID int64, productID int64, delta int64) (CartResponse, error) {
	cart, err := u.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		if err == repo.ErrNotFound {
			return CartResponse{}, NewHTTPError(http.StatusNotFound, "cart not found")
		}
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err != nil {
		if err == repo.ErrNotFound {
			return CartResponse{}, NewHTTPError(http.StatusNotFound, "product not found")
		}
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//在庫チェック（増加分に対して）
	if p.Quantity == 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("Product %s is not available", p.Name))
	}
	if p.Quantity < delta {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("Please, make an order of the %s less than or equal to the quantity %d", p.Name, p.Quantity))
	}

	item, err := u.cartItemRepo.FindByCartAndProduct(ctx, cart.ID, productID)
	if err != nil {
		if err == repo.ErrNotFound {
			return CartResponse{}, NewHTTPError(http.StatusNotFound,
				fmt.Sprintf("Product %s not available in the cart", p.Name))
		}
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	newQty := item.Quantity + delta
	if newQty < 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "The resulting quantity cannot be negative")
	}

	//明細を除いた合計に戻してから付け直す
	newTotal := cart.TotalPrice.Sub(item.Price.Mul(decimal.NewFromInt(item.Quantity)))

	if newQty == 0 {
		if err := u.cartItemRepo.DeleteByCartAndProduct(ctx, cart.ID, productID); err != nil {
			return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	} else {
		//スナップショットを現在の商品価格に追従させる
		item.Quantity = newQty
		item.Price = p.SpecialPrice
		item.Discount = p.Discount
		if err := u.cartItemRepo.Update(ctx, item); err != nil {
			return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		newTotal = newTotal.Add(p.SpecialPrice.Mul(decimal.NewFromInt(newQty)))
	}

	if err := u.cartRepo.UpdateTotalPrice(ctx, cart.ID, newTotal); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	cart.TotalPrice = newTotal
	return u.buildCartResponse(ctx, cart)
}

// 商品をカートから削除し、確認メッセージを返す
func (u *CartUsecase) DeleteProductFromCart(ctx context.Context, cartID int64, productID int64) (string, error) {
	cart, err := u.cartRepo.FindByID(ctx, cartID)
	if err != nil {
		if err == repo.ErrNotFound {
			return "", NewHTTPError(http.StatusNotFound, "cart not found")
		}
		return "", NewHTTPError(http.StatusInternalServerError, "db error")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err != nil {
		if err == repo.ErrNotFound {
			return "", NewHTTPError(http.StatusNotFound, "product not found")
		}
		return "", NewHTTPError(http.StatusInternalServerError, "db error")
	}

	item, err := u.cartItemRepo.FindByCartAndProduct(ctx, cartID, productID)
	if err != nil {
		if err == repo.ErrNotFound {
			return "", NewHTTPError(http.StatusNotFound,
				fmt.Sprintf("Product %s not available in the cart", p.Name))
		}
		return "", NewHTTPError(http.StatusInternalServerError, "db error")
	}

	newTotal := cart.TotalPrice.Sub(item.Price.Mul(decimal.NewFromInt(item.Quantity)))
	if err := u.cartItemRepo.DeleteByCartAndProduct(ctx, cartID, productID); err != nil {
		return "", NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if err := u.cartRepo.UpdateTotalPrice(ctx, cartID, newTotal); err != nil {
		return "", NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return fmt.Sprintf("Product %s removed from the cart !!!", p.Name), nil
}

// 明細の一括入れ替え。既存明細を消してから作り直す
func (u *CartUsecase) ReplaceCartItems(ctx context.Context, userID int64, items []CartItemInput) error {
	err := u.txManager.WithinTx(ctx, func(r repo.TxRepos) error {
		cart, err := r.Carts().GetOrCreateByUserID(ctx, userID)
		if err != nil {
			return err
		}

		if err := r.CartItems().DeleteAllByCartID(ctx, cart.ID); err != nil {
			return err
		}

		total := decimal.Zero
		for _, in := range items {
			if in.Quantity <= 0 {
				return NewHTTPError(http.StatusBadRequest, "invalid quantity")
			}

			p, err := r.Products().FindByID(ctx, in.ProductID)
			if err != nil {
				if err == repo.ErrNotFound {
					return NewHTTPError(http.StatusNotFound, "product not found")
				}
				return err
			}

			if _, err := r.CartItems().Create(ctx, model.CartItem{
				CartID:    cart.ID,
				ProductID: p.ID,
				Quantity:  in.Quantity,
				Price:     p.SpecialPrice,
				Discount:  p.Discount,
			}); err != nil {
				return err
			}

			total = total.Add(p.SpecialPrice.Mul(decimal.NewFromInt(in.Quantity)))
		}

		return r.Carts().UpdateTotalPrice(ctx, cart.ID, total)
	})
	if err != nil {
		if _, ok := AsHTTPError(err); ok {
			return err
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// 自分のカートを取得
func (u *CartUsecase) GetUserCart(ctx context.Context, userID int64) (CartResponse, error) {
	cart, err := u.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		if err == repo.ErrNotFound {
			return CartResponse{}, NewHTTPError(http.StatusNotFound, "cart not found")
		}
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return u.buildCartResponse(ctx, cart)
}

// 所有者のemailとカートIDの両方が一致したときだけ返す
func (u *CartUsecase) GetCart(ctx context.Context, email string, cartID int64) (CartResponse, error) {
	cart, err := u.cartRepo.FindByEmailAndID(ctx, email, cartID)
	if err != nil {
		if err == repo.ErrNotFound {
			return CartResponse{}, NewHTTPError(http.StatusNotFound, "cart not found")
		}
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return u.buildCartResponse(ctx, cart)
}

// 全カート一覧（管理者用）
func (u *CartUsecase) ListAllCarts(ctx context.Context) ([]CartResponse, error) {
	carts, err := u.cartRepo.ListAll(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if len(carts) == 0 {
		return nil, NewHTTPError(http.StatusNotFound, "No cart exists")
	}

	out := make([]CartResponse, 0, len(carts))
	for _, cart := range carts {
		res, err := u.buildCartResponse(ctx, cart)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, nil
}

// 明細と商品情報をまとめてレスポンスに組み立てる
func (u *CartUsecase) buildCartResponse(ctx context.Context, cart model.Cart) (CartResponse, error) {
	items, err := u.cartItemRepo.ListByCartID(ctx, cart.ID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	lines := make([]CartLine, 0, len(items))
	for _, item := range items {
		p, err := u.productRepo.FindByID(ctx, item.ProductID)
		if err != nil {
			if err == repo.ErrNotFound {
				continue
			}
			return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		lines = append(lines, CartLine{
			ProductID: p.ID,
			Name:      p.Name,
			Image:     p.Image,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Discount:  item.Discount,
		})
	}

	return CartResponse{
		ID:         cart.ID,
		TotalPrice: cart.TotalPrice,
		Products:   lines,
	}, nil
}
