package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"commerce/internal/domain/model"
	repo "commerce/internal/repository"

	"github.com/shopspring/decimal"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// 画像ファイルを保存して参照名を返す約束
type FileStore interface {
	Store(originalName string, src io.Reader) (string, error)
}

type ProductUsecase struct {
	productRepo  repo.ProductRepository
	categoryRepo repo.CategoryRepository
	auditRepo    repo.AuditLogRepository
	txManager    repo.TransactionManager
	fileStore    FileStore
}

// DI
func NewProductUsecase(
	productRepo repo.ProductRepository,
	categoryRepo repo.CategoryRepository,
	auditRepo repo.AuditLogRepository,
	txManager repo.TransactionManager,
	fileStore FileStore,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		auditRepo:    auditRepo,
		txManager:    txManager,
		fileStore:    fileStore,
	}
}

// 一覧リクエストの共通入力
type ListInput struct {
	PageNumber int
	PageSize   int
	SortBy     string
	SortOrder  string
}

type ProductPageResponse struct {
	Content []model.Product `json:"content"`
	PageInfo
}

// 商品の作成・更新の入力DTO
type ProductInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Quantity    int64           `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Discount    decimal.Decimal `json:"discount"`
}

// special price = price - price*discount/100
func computeSpecialPrice(price, discount decimal.Decimal) decimal.Decimal {
	return price.Sub(price.Mul(discount).Div(decimal.NewFromInt(100)))
}

func (u *ProductUsecase) ListProducts(ctx context.Context, in ListInput) (ProductPageResponse, error) {
	q, err := normalizePageQuery(in.PageNumber, in.PageSize, in.SortBy, in.SortOrder)
	if err != nil {
		return ProductPageResponse{}, err
	}

	items, total, err := u.productRepo.List(ctx, repo.ProductListQuery{Page: q})
	if err != nil {
		return ProductPageResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return ProductPageResponse{Content: items, PageInfo: newPageInfo(q, total)}, nil
}

func (u *ProductUsecase) ListProductsByCategory(ctx context.Context, categoryID int64, in ListInput) (ProductPageResponse, error) {
	q, err := normalizePageQuery(in.PageNumber, in.PageSize, in.SortBy, in.SortOrder)
	if err != nil {
		return ProductPageResponse{}, err
	}

	//カテゴリの存在チェック
	if _, err := u.categoryRepo.FindByID(ctx, categoryID); err != nil {
		if err == repo.ErrNotFound {
			return ProductPageResponse{}, NewHTTPError(http.StatusNotFound, "category not found")
		}
		return ProductPageResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	items, total, err := u.productRepo.List(ctx, repo.ProductListQuery{Page: q, CategoryID: &categoryID})
	if err != nil {
		return ProductPageResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return ProductPageResponse{Content: items, PageInfo: newPageInfo(q, total)}, nil
}

func (u *ProductUsecase) SearchProductsByKeyword(ctx context.Context, keyword string, in ListInput) (ProductPageResponse, error) {
	q, err := normalizePageQuery(in.PageNumber, in.PageSize, in.SortBy, in.SortOrder)
	if err != nil {
		return ProductPageResponse{}, err
	}

	items, total, err := u.productRepo.List(ctx, repo.ProductListQuery{Page: q, Keyword: strings.TrimSpace(keyword)})
	if err != nil {
		return ProductPageResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return ProductPageResponse{Content: items, PageInfo: newPageInfo(q, total)}, nil
}

func (u *ProductUsecase) CreateProduct(ctx context.Context, adminUserID int64, categoryID int64, in ProductInput) (model.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "name required")
	}
	if in.Quantity < 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "quantity must be >= 0")
	}
	if in.Price.IsNegative() {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}
	if in.Discount.IsNegative() || in.Discount.GreaterThan(decimal.NewFromInt(100)) {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "discount must be between 0 and 100")
	}

	//カテゴリの存在チェック
	if _, err := u.categoryRepo.FindByID(ctx, categoryID); err != nil {
		if err == repo.ErrNotFound {
			return model.Product{}, NewHTTPError(http.StatusNotFound, "category not found")
		}
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//同一カテゴリ内の商品名重複チェック
	exists, err := u.productRepo.ExistsByCategoryAndName(ctx, categoryID, name, 0)
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if exists {
		return model.Product{}, NewHTTPError(http.StatusConflict, "product already exists")
	}

	created, err := u.productRepo.Create(ctx, model.Product{
		Name:         name,
		Description:  in.Description,
		Image:        "default.png",
		Quantity:     in.Quantity,
		Price:        in.Price,
		Discount:     in.Discount,
		SpecialPrice: computeSpecialPrice(in.Price, in.Discount),
		CategoryID:   categoryID,
		UserID:       adminUserID,
	})
	if err != nil {
		if err == repo.ErrDuplicate {
			return model.Product{}, NewHTTPError(http.StatusConflict, "product already exists")
		}
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.writeAudit(ctx, adminUserID, model.AuditActionCreate, model.AuditResourceProduct, created.ID, "", created); err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return created, nil
}

// 商品更新。カートに入っている明細のスナップショットも同じトランザクションで追従させる
func (u *ProductUsecase) UpdateProduct(ctx context.Context, adminUserID int64, productID int64, in ProductInput) (model.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "name required")
	}
	if in.Quantity < 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "quantity must be >= 0")
	}
	if in.Price.IsNegative() {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}
	if in.Discount.IsNegative() || in.Discount.GreaterThan(decimal.NewFromInt(100)) {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "discount must be between 0 and 100")
	}

	var updated model.Product

	err := u.txManager.WithinTx(ctx, func(r repo.TxRepos) error {
		before, err := r.Products().FindByID(ctx, productID)
		if err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "product not found")
			}
			return err
		}

		exists, err := r.Products().ExistsByCategoryAndName(ctx, before.CategoryID, name, productID)
		if err != nil {
			return err
		}
		if exists {
			return NewHTTPError(http.StatusConflict, "product already exists")
		}

		updated = before
		updated.Name = name
		updated.Description = in.Description
		updated.Quantity = in.Quantity
		updated.Price = in.Price
		updated.Discount = in.Discount
		updated.SpecialPrice = computeSpecialPrice(in.Price, in.Discount)

		if err := r.Products().Update(ctx, updated); err != nil {
			return err
		}

		//在庫数が変わっていれば調整履歴を残す
		if in.Quantity != before.Quantity {
			adj := model.InventoryAdjustment{
				ProductID:   productID,
				AdminUserID: adminUserID,
				Delta:       in.Quantity - before.Quantity,
				Reason:      "admin product update",
			}
			if err := r.Inventory().CreateAdjustment(ctx, adj); err != nil {
				return err
			}
		}

		//この商品を持つカートのスナップショットと合計を追従させる
		if err := syncCartsOnProductChange(ctx, r, updated); err != nil {
			return err
		}

		return writeAuditTx(ctx, r, adminUserID, model.AuditActionUpdate, model.AuditResourceProduct, productID, before, updated)
	})
	if err != nil {
		if _, ok := AsHTTPError(err); ok {
			return model.Product{}, err
		}
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return updated, nil
}

// 商品削除。参照しているカート明細も同じトランザクションで取り除く
func (u *ProductUsecase) DeleteProduct(ctx context.Context, adminUserID int64, productID int64) error {
	err := u.txManager.WithinTx(ctx, func(r repo.TxRepos) error {
		before, err := r.Products().FindByID(ctx, productID)
		if err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "product not found")
			}
			return err
		}

		carts, err := r.Carts().ListByProductID(ctx, productID)
		if err != nil {
			return err
		}
		for _, cart := range carts {
			item, err := r.CartItems().FindByCartAndProduct(ctx, cart.ID, productID)
			if err != nil {
				if err == repo.ErrNotFound {
					continue
				}
				return err
			}

			lineTotal := item.Price.Mul(decimal.NewFromInt(item.Quantity))
			if err := r.CartItems().DeleteByCartAndProduct(ctx, cart.ID, productID); err != nil {
				return err
			}
			if err := r.Carts().UpdateTotalPrice(ctx, cart.ID, cart.TotalPrice.Sub(lineTotal)); err != nil {
				return err
			}
		}

		if err := r.Products().Delete(ctx, productID); err != nil {
			return err
		}

		return writeAuditTx(ctx, r, adminUserID, model.AuditActionDelete, model.AuditResourceProduct, productID, before, "")
	})
	if err != nil {
		if _, ok := AsHTTPError(err); ok {
			return err
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// 商品画像の差し替え
func (u *ProductUsecase) UpdateProductImage(ctx context.Context, adminUserID int64, productID int64, originalName string, src io.Reader) (model.Product, error) {
	p, err := u.productRepo.FindByID(ctx, productID)
	if err != nil {
		if err == repo.ErrNotFound {
			return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
		}
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	stored, err := u.fileStore.Store(originalName, src)
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid image file")
	}

	if err := u.productRepo.UpdateImage(ctx, productID, stored); err != nil {
		if err == repo.ErrNotFound {
			return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
		}
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	after := p
	after.Image = stored

	if err := u.writeAudit(ctx, adminUserID, model.AuditActionUpdate, model.AuditResourceProduct, productID, p, after); err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return after, nil
}

// カート明細のスナップショットを商品の現在値に合わせ、合計金額を付け替える
func syncCartsOnProductChange(ctx context.Context, r repo.TxRepos, p model.Product) error {
	carts, err := r.Carts().ListByProductID(ctx, p.ID)
	if err != nil {
		return err
	}

	for _, cart := range carts {
		item, err := r.CartItems().FindByCartAndProduct(ctx, cart.ID, p.ID)
		if err != nil {
			if err == repo.ErrNotFound {
				continue
			}
			return err
		}

		qty := decimal.NewFromInt(item.Quantity)
		oldLine := item.Price.Mul(qty)
		newLine := p.SpecialPrice.Mul(qty)

		item.Price = p.SpecialPrice
		item.Discount = p.Discount
		if err := r.CartItems().Update(ctx, item); err != nil {
			return err
		}

		newTotal := cart.TotalPrice.Sub(oldLine).Add(newLine)
		if err := r.Carts().UpdateTotalPrice(ctx, cart.ID, newTotal); err != nil {
			return err
		}
	}
	return nil
}

// 監査ログ（トランザクション外）
func (u *ProductUsecase) writeAudit(ctx context.Context, actorID int64, action model.AuditAction, resource model.AuditResourceType, resourceID int64, before, after interface{}) error {
	return u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  actorID,
		Action:       action,
		ResourceType: resource,
		ResourceID:   resourceID,
		BeforeJSON:   toJSON(before),
		AfterJSON:    toJSON(after),
	})
}

func writeAuditTx(ctx context.Context, r repo.TxRepos, actorID int64, action model.AuditAction, resource model.AuditResourceType, resourceID int64, before, after interface{}) error {
	return r.AuditLogs().Create(ctx, model.AuditLog{
		ActorUserID:  actorID,
		Action:       action,
		ResourceType: resource,
		ResourceID:   resourceID,
		BeforeJSON:   toJSON(before),
		AfterJSON:    toJSON(after),
	})
}

func toJSON(v interface{}) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
