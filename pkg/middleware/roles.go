package middleware

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
)

// RequireRoles は認証済みユーザーが指定ロールのいずれかを持つことを要求するGinミドルウェアを返す。
// BasicAuthの後に適用する。ロールを指定しない場合は誰でも通過できる。
func RequireRoles(roles ...string) gin.HandlerFunc {
	required := slices.Clone(roles)

	return func(c *gin.Context) {
		if len(required) == 0 {
			c.Next()
			return
		}

		id, ok := GetIdentity(c)
		if !ok {
			AbortUnauthorized(c, ReasonMissingHeader)
			return
		}

		if !slices.ContainsFunc(required, id.HasRole) {
			AbortWithError(c, http.StatusForbidden, "Forbidden: insufficient role")
			return
		}
		c.Next()
	}
}
