package usecase

import (
	"net/http"
	"strings"

	repo "commerce/internal/repository"
)

// 一覧レスポンス共通のページ情報。pageNumberは0始まり
type PageInfo struct {
	PageNumber    int   `json:"pageNumber"`
	PageSize      int   `json:"pageSize"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	LastPage      bool  `json:"lastPage"`
}

// ページ条件の入力検証と正規化
func normalizePageQuery(pageNumber, pageSize int, sortBy, sortOrder string) (repo.PageQuery, error) {
	if pageNumber < 0 {
		return repo.PageQuery{}, NewHTTPError(http.StatusBadRequest, "invalid page number")
	}
	if pageSize < 1 || pageSize > 100 {
		return repo.PageQuery{}, NewHTTPError(http.StatusBadRequest, "invalid page size")
	}

	order := strings.ToLower(strings.TrimSpace(sortOrder))
	switch order {
	case "":
		order = "asc"
	case "asc", "desc":
	default:
		return repo.PageQuery{}, NewHTTPError(http.StatusBadRequest, "invalid sort order")
	}

	return repo.PageQuery{
		PageNumber: pageNumber,
		PageSize:   pageSize,
		SortBy:     strings.TrimSpace(sortBy),
		SortOrder:  order,
	}, nil
}

func newPageInfo(q repo.PageQuery, total int64) PageInfo {
	totalPages := int(total) / q.PageSize
	if int(total)%q.PageSize != 0 {
		totalPages++
	}
	return PageInfo{
		PageNumber:    q.PageNumber,
		PageSize:      q.PageSize,
		TotalElements: total,
		TotalPages:    totalPages,
		LastPage:      q.PageNumber >= totalPages-1,
	}
}
