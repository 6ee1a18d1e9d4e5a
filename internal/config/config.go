package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/magiconair/properties"
	"github.com/nao1215/darija-translator/internal/gemini"
)

// Config は翻訳サービスの設定。
type Config struct {
	// Port はサーバーのリッスンポート。
	Port string
	// UsersFile はアカウント定義のプロパティファイルのパス。
	UsersFile string
	// UsersDB はアカウント定義のSQLiteデータベースのDSN。設定されている場合はUsersFileより優先する。
	UsersDB string
	// ConfigFile は静的設定ファイルのパス。
	ConfigFile string
	// AllowedOrigins はCORSで許可するオリジン。
	AllowedOrigins []string
	// GeminiEndpoint はGemini APIのエンドポイント。
	GeminiEndpoint string
	// GeminiAPIKey はGemini APIのキー。見つからない場合は空文字列。
	GeminiAPIKey string
}

// Load は環境変数と静的設定ファイルから設定を読み込む。
// APIキーは環境変数 GEMINI_API_KEY を優先し、なければ設定ファイルの gemini.api.key を使う。
// 設定ファイルが存在しない場合はエラーにしない。
func Load() (*Config, error) {
	cfg := &Config{
		Port:           getEnvOr("PORT", "8080"),
		UsersFile:      getEnvOr("USERS_FILE", "users.properties"),
		UsersDB:        os.Getenv("USERS_DB"),
		ConfigFile:     getEnvOr("CONFIG_FILE", "config.properties"),
		AllowedOrigins: splitList(os.Getenv("ALLOWED_ORIGINS")),
		GeminiEndpoint: getEnvOr("GEMINI_ENDPOINT", gemini.DefaultEndpoint),
	}

	props, err := readProperties(cfg.ConfigFile)
	if err != nil {
		return nil, err
	}
	cfg.GeminiAPIKey = resolveAPIKey(os.Getenv(gemini.APIKeyEnv), props[gemini.APIKeyProperty])

	return cfg, nil
}

// readProperties はJavaプロパティ形式の静的設定ファイルを読み込む。
// ファイルが存在しない場合は空のマップを返す。解析に失敗した場合はエラーを返す。
func readProperties(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("設定ファイルの読み込みに失敗: path=%s: %w", path, err)
	}

	loader := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	props, err := loader.LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("設定ファイルの解析に失敗: path=%s: %w", path, err)
	}
	return props.Map(), nil
}

// resolveAPIKey は環境変数の値を優先してAPIキーを決定する。
func resolveAPIKey(fromEnv, fromFile string) string {
	if key := strings.TrimSpace(fromEnv); key != "" {
		return key
	}
	return strings.TrimSpace(fromFile)
}

// splitList はカンマ区切りの文字列を分割し、空要素を除いて返す。
func splitList(s string) []string {
	var out []string
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// getEnvOr は環境変数を取得し、設定されていない場合はデフォルト値を返す。
func getEnvOr(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
