package account

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"testing"

	"github.com/nao1215/darija-translator/pkg/password"
)

// TestPropertiesSource はプロパティファイルからの読み込みを検証する。
func TestPropertiesSource(t *testing.T) {
	t.Parallel()

	t.Run("ロールと有効フラグが読み込まれること", func(t *testing.T) {
		t.Parallel()

		path := writeProperties(t, `# アカウント定義
admin.password=`+password.Encode("admin123")+`
admin.roles=ADMIN, USER
admin.enabled=true

guest.password=`+password.Encode("guest")+`
guest.enabled=false
`)
		accounts, err := PropertiesSource{Path: path}.Accounts()
		if err != nil {
			t.Fatalf("Accounts()でエラーが発生: %v", err)
		}
		if len(accounts) != 2 {
			t.Fatalf("len = %d, want 2", len(accounts))
		}

		admin := accounts[0]
		if admin.Username != "admin" {
			t.Errorf("Username = %q, want %q", admin.Username, "admin")
		}
		if !slices.Equal(admin.Roles, []string{"ADMIN", "USER"}) {
			t.Errorf("Roles = %v, want [ADMIN USER]", admin.Roles)
		}
		if !admin.Enabled {
			t.Error("adminが無効になっている")
		}
		if !password.Matches("admin123", admin.CredentialHash) {
			t.Error("adminのハッシュが一致しない")
		}

		guest := accounts[1]
		if guest.Enabled {
			t.Error("guestが有効になっている")
		}
		if !slices.Equal(guest.Roles, []string{RoleUser}) {
			t.Errorf("Roles = %v, want [USER]", guest.Roles)
		}
	})

	t.Run("enabledがtrue以外の値なら無効になること", func(t *testing.T) {
		t.Parallel()

		path := writeProperties(t, "a.password=x\na.enabled=yes\nb.password=x\nb.enabled=TRUE\n")
		accounts, err := PropertiesSource{Path: path}.Accounts()
		if err != nil {
			t.Fatalf("Accounts()でエラーが発生: %v", err)
		}
		if accounts[0].Enabled {
			t.Error("enabled=yes が有効と解釈された")
		}
		if !accounts[1].Enabled {
			t.Error("enabled=TRUE が無効と解釈された")
		}
	})

	t.Run("passwordキーの無いユーザーは無視されること", func(t *testing.T) {
		t.Parallel()

		path := writeProperties(t, "orphan.roles=ADMIN\nalice.password=x\n")
		accounts, err := PropertiesSource{Path: path}.Accounts()
		if err != nil {
			t.Fatalf("Accounts()でエラーが発生: %v", err)
		}
		if len(accounts) != 1 || accounts[0].Username != "alice" {
			t.Errorf("accounts = %+v, want alice のみ", accounts)
		}
	})

	t.Run("Javaプロパティ形式のコメントと区切りを解釈すること", func(t *testing.T) {
		t.Parallel()

		path := writeProperties(t, `! 管理者
# 一般ユーザー
admin.password = `+password.Encode("admin123")+`
admin.roles    : ADMIN, \
                 USER
alice.password `+password.Encode("wonderland")+`
alice.enabled  true
`)
		accounts, err := PropertiesSource{Path: path}.Accounts()
		if err != nil {
			t.Fatalf("Accounts()でエラーが発生: %v", err)
		}
		if len(accounts) != 2 {
			t.Fatalf("len = %d, want 2", len(accounts))
		}
		if !slices.Equal(accounts[0].Roles, []string{"ADMIN", "USER"}) {
			t.Errorf("admin Roles = %v, want [ADMIN USER]", accounts[0].Roles)
		}
		if !password.Matches("admin123", accounts[0].CredentialHash) {
			t.Error("adminのハッシュが一致しない")
		}
		if accounts[1].Username != "alice" || !accounts[1].Enabled {
			t.Errorf("accounts[1] = %+v, want 有効な alice", accounts[1])
		}
		if !password.Matches("wonderland", accounts[1].CredentialHash) {
			t.Error("aliceのハッシュが一致しない")
		}
	})

	t.Run("値中の${...}は展開されないこと", func(t *testing.T) {
		t.Parallel()

		path := writeProperties(t, "alice.password=x\nalice.roles=${missing}\n")
		accounts, err := PropertiesSource{Path: path}.Accounts()
		if err != nil {
			t.Fatalf("Accounts()でエラーが発生: %v", err)
		}
		if !slices.Equal(accounts[0].Roles, []string{"${missing}"}) {
			t.Errorf("Roles = %v, want [${missing}]", accounts[0].Roles)
		}
	})

	t.Run("ファイルが存在しない場合ErrSourceUnavailableが返ること", func(t *testing.T) {
		t.Parallel()

		_, err := (PropertiesSource{Path: filepath.Join(t.TempDir(), "none")}).Accounts()
		if !errors.Is(err, ErrSourceUnavailable) {
			t.Fatalf("err = %v, want ErrSourceUnavailable", err)
		}
	})

	t.Run("解析できない場合はErrSourceUnavailable以外のエラーが返ること", func(t *testing.T) {
		t.Parallel()

		path := writeProperties(t, "alice.password=\\u12zz\n")
		_, err := PropertiesSource{Path: path}.Accounts()
		if err == nil {
			t.Fatal("Accounts()がエラーを返すべきだが、nilが返った")
		}
		if errors.Is(err, ErrSourceUnavailable) {
			t.Errorf("err = %v, ErrSourceUnavailableであってはならない", err)
		}
	})
}

// TestSQLiteSource はSQLiteテーブルからの読み込みを検証する。
func TestSQLiteSource(t *testing.T) {
	t.Parallel()

	src, err := OpenSQLiteSource(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("インメモリDB接続に失敗: %v", err)
	}
	t.Cleanup(func() { src.Close() })

	if _, err := src.DB.Exec(
		`INSERT INTO accounts (username, password_hash, roles, enabled) VALUES (?, ?, ?, ?), (?, ?, ?, ?)`,
		"admin", password.Encode("admin123"), "ADMIN,USER", 1,
		"locked", password.Encode("locked"), "", 0,
	); err != nil {
		t.Fatalf("テストデータの挿入に失敗: %v", err)
	}

	store, err := Load(src)
	if err != nil {
		t.Fatalf("Load()でエラーが発生: %v", err)
	}
	if store.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", store.Len())
	}

	admin, ok := store.Authenticate("admin", "admin123")
	if !ok {
		t.Fatal("admin/admin123 で認証できない")
	}
	if !admin.HasRole(RoleAdmin) {
		t.Errorf("Roles = %v, want ADMIN を含む", admin.Roles)
	}

	locked, ok := store.FindByUsername("locked")
	if !ok {
		t.Fatal("lockedが見つからない")
	}
	if locked.Enabled {
		t.Error("lockedが有効になっている")
	}
	if !slices.Equal(locked.Roles, []string{RoleUser}) {
		t.Errorf("Roles = %v, want [USER]", locked.Roles)
	}
	if _, ok := store.Authenticate("locked", "locked"); ok {
		t.Error("無効なアカウントで認証に成功した")
	}
}

// TestOpenSQLiteSource_Reopen は既存のデータベースを開き直してもデータが保たれることを検証する。
func TestOpenSQLiteSource_Reopen(t *testing.T) {
	t.Parallel()

	dsn := filepath.Join(t.TempDir(), "accounts.db")

	first, err := OpenSQLiteSource(context.Background(), dsn)
	if err != nil {
		t.Fatalf("1回目のOpenSQLiteSource()でエラーが発生: %v", err)
	}
	if _, err := first.DB.Exec(
		`INSERT INTO accounts (username, password_hash) VALUES (?, ?)`,
		"user", password.Encode("user123"),
	); err != nil {
		t.Fatalf("テストデータの挿入に失敗: %v", err)
	}
	first.Close()

	second, err := OpenSQLiteSource(context.Background(), dsn)
	if err != nil {
		t.Fatalf("2回目のOpenSQLiteSource()でエラーが発生: %v", err)
	}
	t.Cleanup(func() { second.Close() })

	accounts, err := second.Accounts()
	if err != nil {
		t.Fatalf("Accounts()でエラーが発生: %v", err)
	}
	if len(accounts) != 1 {
		t.Fatalf("len = %d, want 1", len(accounts))
	}
	if !slices.Equal(accounts[0].Roles, []string{RoleUser}) || !accounts[0].Enabled {
		t.Errorf("account = %+v, want 既定値 roles=[USER] enabled=true", accounts[0])
	}
}
