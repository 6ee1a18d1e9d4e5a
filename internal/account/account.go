package account

import (
	"errors"
	"log"
	"slices"

	"github.com/nao1215/darija-translator/pkg/password"
)

// ロール名。
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// Account は認証対象のアカウントを表す。
type Account struct {
	// Username はアカウントの一意なキー。大文字小文字を区別する。
	Username string
	// CredentialHash は password.Encode で生成したソルト付きトークン。
	CredentialHash string
	// Roles はアカウントに付与されたロールの集合。
	Roles []string
	// Enabled がfalseのアカウントは認証に成功しない。
	Enabled bool
}

// HasRole はアカウントが指定ロールを持つかを返す。
func (a Account) HasRole(role string) bool {
	return slices.Contains(a.Roles, role)
}

// Store はアカウントの読み取り専用レジストリ。
// 構築後は変更されないため、並行アクセスに対して安全である。
type Store struct {
	// accounts はユーザー名をキーとするアカウントのマップ。
	accounts map[string]Account
}

// NewStore はアカウント一覧からStoreを生成する。
// 同じユーザー名が複数ある場合は後に現れたものが優先される。
func NewStore(accounts []Account) *Store {
	m := make(map[string]Account, len(accounts))
	for _, a := range accounts {
		a.Roles = slices.Clone(a.Roles)
		m[a.Username] = a
	}
	return &Store{accounts: m}
}

// NewDefaultStore は既定の2アカウントを持つStoreを生成する。
// ハッシュは起動ごとに新しいソルトで生成される。
func NewDefaultStore() *Store {
	return NewStore([]Account{
		{
			Username:       "admin",
			CredentialHash: password.Encode("admin123"),
			Roles:          []string{RoleAdmin, RoleUser},
			Enabled:        true,
		},
		{
			Username:       "user",
			CredentialHash: password.Encode("user123"),
			Roles:          []string{RoleUser},
			Enabled:        true,
		},
	})
}

// Load はソースからStoreを構築する。
// ソースが存在しない・読み取れない場合（ErrSourceUnavailable）のみ既定アカウントで構築する。
// 内容の解析に失敗した場合は既定アカウントに切り替えず、エラーを返す。
func Load(src Source) (*Store, error) {
	accounts, err := src.Accounts()
	if err != nil {
		if !errors.Is(err, ErrSourceUnavailable) {
			return nil, err
		}
		log.Printf("アカウントソースを読み取れないため、既定アカウントを作成します: %v", err)
		store := NewDefaultStore()
		log.Printf("既定アカウントを作成しました: admin, user")
		return store, nil
	}
	store := NewStore(accounts)
	log.Printf("アカウントを読み込みました: %d件", store.Len())
	return store, nil
}

// Len は登録済みアカウント数を返す。
func (s *Store) Len() int {
	return len(s.accounts)
}

// FindByUsername はユーザー名でアカウントを検索する。
func (s *Store) FindByUsername(username string) (Account, bool) {
	a, ok := s.accounts[username]
	if !ok {
		return Account{}, false
	}
	a.Roles = slices.Clone(a.Roles)
	return a, true
}

// Authenticate はユーザー名と平文パスワードでアカウントを認証する。
// 存在しない・無効・パスワード不一致のいずれでもfalseを返し、理由は区別しない。
func (s *Store) Authenticate(username, plaintext string) (Account, bool) {
	a, ok := s.FindByUsername(username)
	if !ok || !a.Enabled {
		return Account{}, false
	}
	if !password.Matches(plaintext, a.CredentialHash) {
		return Account{}, false
	}
	return a, true
}
