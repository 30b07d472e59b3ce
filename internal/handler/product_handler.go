package handler

import (
	"net/http"
	"strconv"

	"commerce/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// 一覧系クエリの共通読み取り。pageNumberは0始まり
func parseListInput(c echo.Context) (usecase.ListInput, error) {
	in := usecase.ListInput{
		PageNumber: 0,
		PageSize:   50,
		SortBy:     c.QueryParam("sortBy"),
		SortOrder:  c.QueryParam("sortOrder"),
	}

	if v := c.QueryParam("pageNumber"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return usecase.ListInput{}, usecase.NewHTTPError(http.StatusBadRequest, "invalid page number")
		}
		in.PageNumber = n
	}
	if v := c.QueryParam("pageSize"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return usecase.ListInput{}, usecase.NewHTTPError(http.StatusBadRequest, "invalid page size")
		}
		in.PageSize = n
	}

	return in, nil
}

// /public/products の公開API
type ProductHandler struct {
	uc *usecase.ProductUsecase
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// 公開商品のルートを登録
func (h *ProductHandler) RegisterRoutes(api *echo.Group) {
	api.GET("/public/products", h.list)
	api.GET("/public/categories/:id/products", h.listByCategory)
	api.GET("/public/products/keyword/:keyword", h.searchByKeyword)
}

func (h *ProductHandler) list(c echo.Context) error {
	in, err := parseListInput(c)
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.ListProducts(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) listByCategory(c echo.Context) error {
	categoryID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	in, err := parseListInput(c)
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.ListProductsByCategory(c.Request().Context(), categoryID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) searchByKeyword(c echo.Context) error {
	keyword := c.Param("keyword")

	in, err := parseListInput(c)
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.SearchProductsByKeyword(c.Request().Context(), keyword, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
