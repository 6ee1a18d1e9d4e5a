package middleware

import (
	"encoding/base64"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
)

// Realm は WWW-Authenticate ヘッダーで通知する認証領域。
const Realm = "Darija Translator API"

// basicScheme はAuthorizationヘッダーのスキーム。
const basicScheme = "Basic"

// contextKeyIdentity はGinコンテキストにIdentityを格納するためのキー。
const contextKeyIdentity = "identity"

// 認証失敗時の理由。ステータスはいずれも401。
const (
	ReasonMissingHeader      = "Missing or invalid Authorization header"
	ReasonInvalidBase64      = "Invalid Base64 encoding"
	ReasonInvalidFormat      = "Invalid credentials format"
	ReasonInvalidCredentials = "Invalid username or password"
)

// Identity は認証済みユーザーを表す。リクエストごとに生成され共有されない。
type Identity struct {
	// Username は認証されたユーザー名。
	Username string
	// Roles は認証時点のロールのスナップショット。
	Roles []string
}

// HasRole は認証時点のロールに指定ロールが含まれるかを返す。
func (i Identity) HasRole(role string) bool {
	return slices.Contains(i.Roles, role)
}

// AuthenticateFunc はユーザー名と平文パスワードを検証し、成功時にロールを返す。
// ユーザーの存在有無などの失敗理由は返さない。
type AuthenticateFunc func(username, password string) (roles []string, ok bool)

// BasicAuth はHTTP Basic認証を行うGinミドルウェアを返す。
// パスが "health" セグメントで終わるリクエストは認証せずに通過させる。
// 認証に成功した場合、コンテキストに Identity を設定する。
func BasicAuth(authenticate AuthenticateFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if isHealthPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		encoded, found := strings.CutPrefix(c.GetHeader("Authorization"), basicScheme+" ")
		encoded = strings.TrimSpace(encoded)
		if !found || encoded == "" {
			AbortUnauthorized(c, ReasonMissingHeader)
			return
		}

		decoded, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			AbortUnauthorized(c, ReasonInvalidBase64)
			return
		}

		// パスワード側に ":" が含まれてもよいため最初の ":" でのみ分割する
		username, password, ok := strings.Cut(string(decoded), ":")
		if !ok {
			AbortUnauthorized(c, ReasonInvalidFormat)
			return
		}

		roles, ok := authenticate(username, password)
		if !ok {
			AbortUnauthorized(c, ReasonInvalidCredentials)
			return
		}

		c.Set(contextKeyIdentity, Identity{Username: username, Roles: slices.Clone(roles)})
		c.Next()
	}
}

// GetIdentity はGinコンテキストから認証済みユーザーを取得する。
// BasicAuthミドルウェアが事前に適用されている必要がある。
func GetIdentity(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(contextKeyIdentity)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}

// isHealthPath はヘルスチェック用のパスかを判定する。
func isHealthPath(path string) bool {
	return path == "health" || strings.HasSuffix(path, "/health")
}

// AbortUnauthorized は WWW-Authenticate ヘッダー付きの401を返す。
func AbortUnauthorized(c *gin.Context, reason string) {
	c.Header("WWW-Authenticate", basicScheme+` realm="`+Realm+`"`)
	AbortWithError(c, http.StatusUnauthorized, "Unauthorized: "+reason)
}
