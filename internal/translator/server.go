package translator

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nao1215/darija-translator/internal/account"
	"github.com/nao1215/darija-translator/pkg/middleware"
)

// Translator は英語テキストを翻訳する外部ゲートウェイ。
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// 操作の識別子。
const (
	opTranslate   = "translate"
	opCurrentUser = "currentUser"
	opHealth      = "health"
)

// operationRoles は操作ごとに必要なロール。空の場合はロール検査を行わない。
var operationRoles = map[string][]string{
	opTranslate:   {account.RoleUser, account.RoleAdmin},
	opCurrentUser: {account.RoleUser, account.RoleAdmin},
	opHealth:      nil,
}

// Server は翻訳サービスのHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// port はサーバーのリッスンポート。
	port string
	// accounts は起動時に読み込んだアカウントのレジストリ。
	accounts *account.Store
	// translator は翻訳ゲートウェイ。
	translator Translator
}

// NewServer は新しい翻訳サーバーを生成する。
// accountsは生成前に読み込みを完了している必要がある。
func NewServer(port string, accounts *account.Store, translator Translator, allowedOrigins []string) *Server {
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(middleware.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(allowedOrigins))

	s := &Server{
		router:     router,
		port:       port,
		accounts:   accounts,
		translator: translator,
	}
	router.Use(middleware.BasicAuth(s.authenticate))
	s.setupRoutes()

	return s
}

// Run はHTTPサーバーを起動する。
func (s *Server) Run() error {
	return s.router.Run(fmt.Sprintf(":%s", s.port))
}

// setupRoutes はAPIルーティングを設定する。
func (s *Server) setupRoutes() {
	api := s.router.Group("/translator")
	{
		s.handle(api, http.MethodPost, "/translate", opTranslate, s.handleTranslate())
		s.handle(api, http.MethodGet, "/me", opCurrentUser, s.handleCurrentUser())
		s.handle(api, http.MethodGet, "/health", opHealth, s.handleHealth())
	}

	// 未定義のパスとメソッドも共通のエラーボディで応答する
	s.router.NoRoute(func(c *gin.Context) {
		middleware.AbortWithError(c, http.StatusNotFound, "Not found: "+c.Request.URL.Path)
	})
	s.router.NoMethod(func(c *gin.Context) {
		middleware.AbortWithError(c, http.StatusMethodNotAllowed, "Method not allowed: "+c.Request.Method)
	})
}

// handle は操作に必要なロール検査を前置してハンドラを登録する。
func (s *Server) handle(group *gin.RouterGroup, method, path, operation string, h gin.HandlerFunc) {
	handlers := []gin.HandlerFunc{}
	if roles := operationRoles[operation]; len(roles) > 0 {
		handlers = append(handlers, middleware.RequireRoles(roles...))
	}
	group.Handle(method, path, append(handlers, h)...)
}

// authenticate はアカウントレジストリで認証し、成功時はロールを返す。
func (s *Server) authenticate(username, password string) ([]string, bool) {
	acc, ok := s.accounts.Authenticate(username, password)
	if !ok {
		return nil, false
	}
	return acc.Roles, true
}
