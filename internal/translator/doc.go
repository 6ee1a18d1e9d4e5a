// Package translator は英語からモロッコ・ダリジャ語への翻訳APIのHTTPサーバーを提供する。
//
// すべてのリクエストはBasic認証を通過する必要がある（ヘルスチェックを除く）。
// 各操作は必要なロールを operationRoles で宣言し、認証後にロール検査が行われる。
//
// エンドポイント:
//   - POST /translator/translate: テキストを翻訳する（USER または ADMIN）
//   - GET /translator/me: 認証済みユーザーの情報を返す（USER または ADMIN）
//   - GET /translator/health: ヘルスチェック（認証不要）
package translator
