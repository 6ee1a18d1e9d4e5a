package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"slices"
	"sort"
	"strings"

	"github.com/magiconair/properties"
	_ "modernc.org/sqlite"
)

// ErrSourceUnavailable はソースが存在しない、または読み取れないことを表す。
// Load はこのエラーの場合のみ既定アカウントで構築する。
var ErrSourceUnavailable = errors.New("アカウントソースを読み取れません")

// プロパティキーの接尾辞。
const (
	suffixPassword = ".password"
	suffixRoles    = ".roles"
	suffixEnabled  = ".enabled"
)

// propertiesLoader はJavaのプロパティ形式を解析する。値中の ${...} は展開しない。
var propertiesLoader = &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}

// Source はアカウント定義の読み込み元。
type Source interface {
	// Accounts はソースに定義された全アカウントを返す。
	Accounts() ([]Account, error)
}

// PropertiesSource は "{username}.password" 形式のキーを持つ
// Javaプロパティ形式のファイルからアカウントを読み込む。
// "#" と "!" のコメント行、"key=value" "key:value" "key value" の各形式を扱う。
type PropertiesSource struct {
	// Path はプロパティファイルのパス。
	Path string
}

// Accounts はプロパティファイルを読み込んでアカウント一覧を返す。
// ユーザー名は ".password" で終わるキーから検出する。
// ファイルを読み取れない場合は ErrSourceUnavailable を、解析に失敗した場合はそれ以外のエラーを返す。
func (p PropertiesSource) Accounts() ([]Account, error) {
	data, err := os.ReadFile(p.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	props, err := propertiesLoader.LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("プロパティファイルの解析に失敗: path=%s: %w", p.Path, err)
	}

	var usernames []string
	for _, key := range props.Keys() {
		if name, ok := strings.CutSuffix(key, suffixPassword); ok {
			usernames = append(usernames, name)
		}
	}
	sort.Strings(usernames)

	accounts := make([]Account, 0, len(usernames))
	for _, name := range usernames {
		hash, _ := props.Get(name + suffixPassword)
		roles, ok := props.Get(name + suffixRoles)
		if !ok {
			roles = RoleUser
		}
		enabled := true
		if v, ok := props.Get(name + suffixEnabled); ok {
			enabled = parseEnabled(v)
		}
		accounts = append(accounts, Account{
			Username:       name,
			CredentialHash: hash,
			Roles:          parseRoles(roles),
			Enabled:        enabled,
		})
	}
	return accounts, nil
}

// SQLiteSource は accounts テーブルからアカウントを読み込む。
type SQLiteSource struct {
	// DB は modernc.org/sqlite ドライバで開いたデータベース接続。
	DB *sql.DB
}

// OpenSQLiteSource はDSNでSQLiteデータベースを開き、スキーマを適用する。
func OpenSQLiteSource(ctx context.Context, dsn string) (*SQLiteSource, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("データベース接続に失敗: %w", err)
	}
	// 起動時に一度読むだけなので接続は1本に固定する（:memory: でも同じDBを参照できる）。
	db.SetMaxOpenConns(1)
	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteSource{DB: db}, nil
}

// Close はデータベース接続を閉じる。
func (s *SQLiteSource) Close() error {
	return s.DB.Close()
}

// Accounts は accounts テーブルの全行をアカウントとして返す。
// 問い合わせに失敗した場合は ErrSourceUnavailable を返す。
func (s *SQLiteSource) Accounts() ([]Account, error) {
	rows, err := s.DB.Query(`SELECT username, password_hash, roles, enabled FROM accounts ORDER BY username`)
	if err != nil {
		return nil, fmt.Errorf("%w: アカウントの取得に失敗: %w", ErrSourceUnavailable, err)
	}
	defer rows.Close()

	var accounts []Account
	for rows.Next() {
		var (
			a       Account
			roles   string
			enabled int
		)
		if err := rows.Scan(&a.Username, &a.CredentialHash, &roles, &enabled); err != nil {
			return nil, fmt.Errorf("%w: アカウント行の読み取りに失敗: %w", ErrSourceUnavailable, err)
		}
		a.Roles = parseRoles(roles)
		a.Enabled = enabled != 0
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: アカウントの走査に失敗: %w", ErrSourceUnavailable, err)
	}
	return accounts, nil
}

// parseRoles はカンマ区切りのロール文字列を分解する。
// 空要素と重複は除外し、結果が空なら USER とする。
func parseRoles(s string) []string {
	var roles []string
	for _, r := range strings.Split(s, ",") {
		r = strings.TrimSpace(r)
		if r == "" || slices.Contains(roles, r) {
			continue
		}
		roles = append(roles, r)
	}
	if len(roles) == 0 {
		return []string{RoleUser}
	}
	return roles
}

// parseEnabled は "true"（大文字小文字を区別しない）の場合のみtrueを返す。
func parseEnabled(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "true")
}
