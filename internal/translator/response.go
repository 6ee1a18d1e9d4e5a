package translator

import "time"

// TranslateRequest は翻訳リクエストのボディ。
type TranslateRequest struct {
	Text string `json:"text"`
}

// TranslationResponse は翻訳結果のレスポンス。
type TranslationResponse struct {
	OriginalText   string `json:"originalText"`
	TranslatedText string `json:"translatedText"`
	SourceLanguage string `json:"sourceLanguage"`
	TargetLanguage string `json:"targetLanguage"`
	Timestamp      int64  `json:"timestamp"`
}

// HealthResponse はヘルスチェックのレスポンス。
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp int64  `json:"timestamp"`
}

// UserInfoResponse は認証済みユーザー情報のレスポンス。
type UserInfoResponse struct {
	Username  string `json:"username"`
	Admin     bool   `json:"admin"`
	Timestamp int64  `json:"timestamp"`
}

// nowMillis は現在時刻をエポックミリ秒で返す。
func nowMillis() int64 {
	return time.Now().UnixMilli()
}
