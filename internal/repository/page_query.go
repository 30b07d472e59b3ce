package repository

import "errors"

// レコードが見つからないを統一
var ErrNotFound = errors.New("not found")

// 名前などの重複
var ErrDuplicate = errors.New("duplicate")

// 一覧取得のページ条件。PageNumberは0始まり
type PageQuery struct {
	PageNumber int
	PageSize   int
	SortBy     string
	SortOrder  string // asc / desc
}

// OFFSET計算
func (q PageQuery) Offset() int {
	return q.PageNumber * q.PageSize
}
