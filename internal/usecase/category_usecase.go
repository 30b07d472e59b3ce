package usecase

import (
	"context"
	"net/http"
	"strings"

	"commerce/internal/domain/model"
	repo "commerce/internal/repository"
)

type CategoryUsecase struct {
	categoryRepo repo.CategoryRepository
	auditRepo    repo.AuditLogRepository
}

// DI
func NewCategoryUsecase(categoryRepo repo.CategoryRepository, auditRepo repo.AuditLogRepository) *CategoryUsecase {
	return &CategoryUsecase{
		categoryRepo: categoryRepo,
		auditRepo:    auditRepo,
	}
}

type CategoryPageResponse struct {
	Content []model.Category `json:"content"`
	PageInfo
}

type CategoryInput struct {
	Name string `json:"name"`
}

func (u *CategoryUsecase) ListCategories(ctx context.Context, in ListInput) (CategoryPageResponse, error) {
	q, err := normalizePageQuery(in.PageNumber, in.PageSize, in.SortBy, in.SortOrder)
	if err != nil {
		return CategoryPageResponse{}, err
	}

	items, total, err := u.categoryRepo.List(ctx, q)
	if err != nil {
		return CategoryPageResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return CategoryPageResponse{Content: items, PageInfo: newPageInfo(q, total)}, nil
}

func (u *CategoryUsecase) CreateCategory(ctx context.Context, adminUserID int64, in CategoryInput) (model.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "name required")
	}

	created, err := u.categoryRepo.Create(ctx, model.Category{Name: name})
	if err != nil {
		//名前のユニーク制約違反
		if err == repo.ErrDuplicate {
			return model.Category{}, NewHTTPError(http.StatusConflict, "category already exists")
		}
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := writeCategoryAudit(ctx, u.auditRepo, adminUserID, model.AuditActionCreate, created.ID, "", created); err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return created, nil
}

func (u *CategoryUsecase) UpdateCategory(ctx context.Context, adminUserID int64, categoryID int64, in CategoryInput) (model.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "name required")
	}

	before, err := u.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		if err == repo.ErrNotFound {
			return model.Category{}, NewHTTPError(http.StatusNotFound, "category not found")
		}
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	updated := before
	updated.Name = name
	if err := u.categoryRepo.Update(ctx, updated); err != nil {
		if err == repo.ErrDuplicate {
			return model.Category{}, NewHTTPError(http.StatusConflict, "category already exists")
		}
		if err == repo.ErrNotFound {
			return model.Category{}, NewHTTPError(http.StatusNotFound, "category not found")
		}
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := writeCategoryAudit(ctx, u.auditRepo, adminUserID, model.AuditActionUpdate, categoryID, before, updated); err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return updated, nil
}

func (u *CategoryUsecase) DeleteCategory(ctx context.Context, adminUserID int64, categoryID int64) error {
	before, err := u.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "category not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.categoryRepo.Delete(ctx, categoryID); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "category not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := writeCategoryAudit(ctx, u.auditRepo, adminUserID, model.AuditActionDelete, categoryID, before, ""); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return nil
}

func writeCategoryAudit(ctx context.Context, audit repo.AuditLogRepository, actorID int64, action model.AuditAction, categoryID int64, before, after interface{}) error {
	return audit.Create(ctx, model.AuditLog{
		ActorUserID:  actorID,
		Action:       action,
		ResourceType: model.AuditResourceCategory,
		ResourceID:   categoryID,
		BeforeJSON:   toJSON(before),
		AfterJSON:    toJSON(after),
	})
}
