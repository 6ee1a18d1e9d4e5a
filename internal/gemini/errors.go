package gemini

import "fmt"

// ValidationError は翻訳対象テキストが不正な場合のエラー。
type ValidationError struct {
	// Message はエラーメッセージ。
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ConfigurationError はAPIキーが設定されていない場合のエラー。
// ゲートウェイの生成時にのみ返される。
type ConfigurationError struct {
	// Message はエラーメッセージ。
	Message string
}

func (e *ConfigurationError) Error() string { return e.Message }

// UpstreamError はプロバイダが2xx以外のステータスを返した場合のエラー。
type UpstreamError struct {
	// StatusCode はプロバイダが返したHTTPステータスコード。
	StatusCode int
	// Body はレスポンスボディ。読み取れなかった場合は "Unknown error"。
	Body string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("Gemini API request failed: %d - %s", e.StatusCode, e.Body)
}

// ParseError はプロバイダのレスポンスから翻訳結果を取り出せなかった場合のエラー。
type ParseError struct {
	// Message はエラーメッセージ。
	Message string
	// Err はJSONデコードの失敗原因。構造が想定と異なるだけの場合はnil。
	Err error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ParseError) Unwrap() error { return e.Err }

// TransportError はプロバイダとの通信自体に失敗した場合のエラー（接続失敗、タイムアウト等）。
type TransportError struct {
	// Err は通信失敗の原因。
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("Failed to communicate with Gemini API: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

const (
	// msgTextRequired は翻訳対象テキストが空の場合のメッセージ。
	msgTextRequired = "Text to translate is required"
	// msgNoTranslation はレスポンスに翻訳結果が含まれない場合のメッセージ。
	msgNoTranslation = "No translation found in provider response"
	// msgParseFailed はレスポンスのJSONデコードに失敗した場合のメッセージ。
	msgParseFailed = "Failed to parse provider response"
	// msgMissingAPIKey はAPIキーが見つからない場合のメッセージ。
	msgMissingAPIKey = "GEMINI_API_KEY not found. Please set it as environment variable or in config.properties"
	// unknownErrorBody はエラーレスポンスのボディが読み取れない場合の代替テキスト。
	unknownErrorBody = "Unknown error"
)
