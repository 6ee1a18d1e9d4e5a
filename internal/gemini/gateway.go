package gemini

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/nao1215/darija-translator/pkg/httpclient"
)

const (
	// DefaultEndpoint はGemini generateContent APIのエンドポイント。
	DefaultEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.5-flash:generateContent"

	// SourceLanguage は翻訳元言語の表示名。
	SourceLanguage = "English"
	// TargetLanguage は翻訳先言語の表示名。
	TargetLanguage = "Moroccan Darija"

	// APIKeyEnv はAPIキーを保持する環境変数名。
	APIKeyEnv = "GEMINI_API_KEY"
	// APIKeyProperty は静的設定ファイルでAPIキーを保持するキー名。
	APIKeyProperty = "gemini.api.key"
)

// Gateway はGemini APIを使った翻訳ゲートウェイ。
// 生成後は状態を変更しないため、複数のゴルーチンから同時に使用できる。
type Gateway struct {
	client *httpclient.Client
	apiKey string
}

// options はゲートウェイ生成時のオプション。
type options struct {
	endpoint string
	timeouts httpclient.Timeouts
}

// Option はゲートウェイの生成オプションを設定する関数。
type Option func(*options)

// WithEndpoint は呼び出し先のエンドポイントを変更する。空文字列の場合は既定値を使う。
func WithEndpoint(endpoint string) Option {
	return func(o *options) {
		if endpoint != "" {
			o.endpoint = endpoint
		}
	}
}

// WithTimeouts は通信のタイムアウトを変更する。
func WithTimeouts(t httpclient.Timeouts) Option {
	return func(o *options) {
		o.timeouts = t
	}
}

// New は新しい翻訳ゲートウェイを生成する。
// APIキーが空の場合は ConfigurationError を返し、ゲートウェイは生成されない。
func New(apiKey string, opts ...Option) (*Gateway, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, &ConfigurationError{Message: msgMissingAPIKey}
	}

	o := options{endpoint: DefaultEndpoint, timeouts: httpclient.DefaultTimeouts}
	for _, opt := range opts {
		opt(&o)
	}

	return &Gateway{
		client: httpclient.New(o.endpoint, o.timeouts),
		apiKey: apiKey,
	}, nil
}

// Translate は英語テキストをダリジャ語に翻訳する。
// 失敗時は ValidationError, UpstreamError, ParseError, TransportError のいずれかを返す。
// 自動リトライは行わない。
func (g *Gateway) Translate(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", &ValidationError{Message: msgTextRequired}
	}

	payload := buildPayload(BuildPrompt(text))
	body, err := g.client.PostJSON(ctx, "", url.Values{"key": {g.apiKey}}, payload)
	if err != nil {
		var statusErr *httpclient.StatusError
		if errors.As(err, &statusErr) {
			upstream := &UpstreamError{StatusCode: statusErr.StatusCode, Body: string(statusErr.Body)}
			if statusErr.ReadErr != nil {
				upstream.Body = unknownErrorBody
			}
			return "", upstream
		}
		return "", &TransportError{Err: err}
	}

	return ExtractTranslation(body)
}
