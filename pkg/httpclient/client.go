package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
)

// Timeouts は1回のHTTP通信に適用するタイムアウト。
type Timeouts struct {
	// Connect はTCP接続とTLSハンドシェイクのタイムアウト。
	Connect time.Duration
	// Write はソケットへの1回の書き込みのタイムアウト。
	Write time.Duration
	// Read はソケットからの1回の読み込みのタイムアウト。
	Read time.Duration
}

// DefaultTimeouts は接続30秒・書き込み30秒・読み込み60秒のタイムアウト。
var DefaultTimeouts = Timeouts{
	Connect: 30 * time.Second,
	Write:   30 * time.Second,
	Read:    60 * time.Second,
}

// Client は外部API呼び出し用のHTTPクライアント。
type Client struct {
	// rest は内部で使用するrestyクライアント。
	rest *resty.Client
	// baseURL は接続先のベースURL。
	baseURL string
	// timeouts は通信に適用するタイムアウト。
	timeouts Timeouts
}

// New は新しいHTTPクライアントを生成する。
// baseURLには接続先のベースURL（例: "https://generativelanguage.googleapis.com"）を指定する。
func New(baseURL string, timeouts Timeouts) *Client {
	return &Client{
		rest:     resty.New().SetTransport(newTransport(timeouts)),
		baseURL:  baseURL,
		timeouts: timeouts,
	}
}

// StatusError は2xx以外のレスポンスを表す。
type StatusError struct {
	// StatusCode はHTTPステータスコード。
	StatusCode int
	// Body はレスポンスボディ。
	Body []byte
	// ReadErr はボディの読み取りに失敗した場合のエラー。
	ReadErr error
}

// Error はエラーメッセージを返す。
func (e *StatusError) Error() string {
	if e.ReadErr != nil {
		return fmt.Sprintf("HTTPエラー: status=%d, body読み取り失敗: %v", e.StatusCode, e.ReadErr)
	}
	return fmt.Sprintf("HTTPエラー: status=%d, body=%s", e.StatusCode, e.Body)
}

// PostJSON は指定パスにJSONボディでPOSTリクエストを送信し、2xxレスポンスのボディを返す。
// queryはURLのクエリパラメータとして付与する。
func (c *Client) PostJSON(ctx context.Context, path string, query url.Values, body any) ([]byte, error) {
	payload, err := encodeJSON(body)
	if err != nil {
		return nil, fmt.Errorf("リクエストボディのシリアライズに失敗: %w", err)
	}

	resp, err := c.rest.R().
		SetContext(ctx).
		SetQueryParamsFromValues(query).
		SetHeader("Content-Type", "application/json; charset=utf-8").
		SetBody(payload).
		SetDoNotParseResponse(true).
		Post(c.baseURL + path)
	if err != nil {
		// url.Error はクエリ文字列を含むURLを表示するため、原因だけを残す
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return nil, fmt.Errorf("POST %s: %w", c.baseURL+path, err)
	}
	raw := resp.RawBody()
	defer raw.Close()

	data, readErr := io.ReadAll(raw)
	if !resp.IsSuccess() {
		return nil, &StatusError{StatusCode: resp.StatusCode(), Body: data, ReadErr: readErr}
	}
	if readErr != nil {
		return nil, fmt.Errorf("レスポンスボディの読み取りに失敗: %w", readErr)
	}
	return data, nil
}

// encodeJSON はHTMLエスケープせずにJSONへシリアライズする。
func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// newTransport はタイムアウトを適用したTransportを生成する。
func newTransport(t Timeouts) *http.Transport {
	dialer := &net.Dialer{Timeout: t.Connect, KeepAlive: 30 * time.Second}
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			conn, err := dialer.DialContext(ctx, network, addr)
			if err != nil {
				return nil, err
			}
			return &deadlineConn{Conn: conn, read: t.Read, write: t.Write}, nil
		},
		ForceAttemptHTTP2:     true,
		TLSHandshakeTimeout:   t.Connect,
		ResponseHeaderTimeout: t.Read,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
	}
}

// deadlineConn は読み書きのたびにデッドラインを設定するコネクション。
type deadlineConn struct {
	net.Conn
	read  time.Duration
	write time.Duration
}

// Read は読み込みタイムアウトを設定してから読み込む。
func (c *deadlineConn) Read(b []byte) (int, error) {
	if c.read > 0 {
		if err := c.Conn.SetReadDeadline(time.Now().Add(c.read)); err != nil {
			return 0, err
		}
	}
	return c.Conn.Read(b)
}

// Write は書き込みタイムアウトを設定してから書き込む。
func (c *deadlineConn) Write(b []byte) (int, error) {
	if c.write > 0 {
		if err := c.Conn.SetWriteDeadline(time.Now().Add(c.write)); err != nil {
			return 0, err
		}
	}
	return c.Conn.Write(b)
}
