// Package httpclient は外部APIへのHTTP通信を行うクライアントを提供する。
//
// 接続・書き込み・読み込みのタイムアウトを個別に設定でき、
// 2xx以外のレスポンスはステータスコードとボディを保持する StatusError として返す。
// 翻訳ゲートウェイがLLMプロバイダを呼び出す際に使用する。
package httpclient
