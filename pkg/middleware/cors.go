package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
)

// corsHeaders は許可されたオリジンへのレスポンスに付与するヘッダー。
var corsHeaders = map[string]string{
	"Access-Control-Allow-Methods":  "GET, POST, OPTIONS",
	"Access-Control-Allow-Headers":  "Authorization, Content-Type, X-Request-ID",
	"Access-Control-Expose-Headers": "WWW-Authenticate, X-Request-ID",
	"Access-Control-Max-Age":        "86400",
}

// CORS はブラウザ拡張やWebクライアントからのクロスオリジンリクエストを許可するGinミドルウェアを返す。
// "chrome-extension://*" のように末尾が "*" のオリジンは前方一致で扱う。
// プリフライト（OPTIONS）は認証より前に204で応答するため、BasicAuthより先に適用する。
func CORS(allowedOrigins []string) gin.HandlerFunc {
	var exact, prefixes []string
	for _, o := range allowedOrigins {
		if p, ok := strings.CutSuffix(o, "*"); ok {
			prefixes = append(prefixes, p)
			continue
		}
		exact = append(exact, o)
	}
	allowed := func(origin string) bool {
		if origin == "" {
			return false
		}
		return slices.Contains(exact, origin) ||
			slices.ContainsFunc(prefixes, func(p string) bool { return strings.HasPrefix(origin, p) })
	}

	return func(c *gin.Context) {
		c.Writer.Header().Add("Vary", "Origin")
		if origin := c.GetHeader("Origin"); allowed(origin) {
			c.Header("Access-Control-Allow-Origin", origin)
			for k, v := range corsHeaders {
				c.Header(k, v)
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
