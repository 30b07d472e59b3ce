package middleware

import (
	"net/http"

	"commerce/internal/domain/model"

	"github.com/labstack/echo/v4"
)

//contextに入っているrolesにADMINが含まれるかを確認します。

func AdminRoleGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawRoles := c.Get(CtxUserRolesKey)
			roles, ok := rawRoles.([]string)
			if !ok || len(roles) == 0 {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//USERだけは拒否、ADMINを持つ場合のみ許可
			isAdmin := false
			for _, r := range roles {
				if r == string(model.RoleAdmin) {
					isAdmin = true
					break
				}
			}
			if !isAdmin {
				return c.JSON(http.StatusForbidden, errorJSON("admin only"))
			}

			return next(c)
		}
	}
}
