// Package middleware はGinベースのHTTP APIで使用する共通ミドルウェアを提供する。
//
// HTTP Basic認証によるアカウント認証、操作ごとのロール認可、
// リクエストID付与、パニックリカバリ、CORS設定を含む。
// 認証済みユーザーの情報はGinコンテキストに Identity として格納され、
// 後続のハンドラが GetIdentity で取得する。
package middleware
