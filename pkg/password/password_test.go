package password

import (
	"encoding/base64"
	"testing"
)

// TestEncode はEncode関数を検証する。
func TestEncode(t *testing.T) {
	t.Parallel()

	t.Run("ソルトとハッシュを連結した48バイトがBase64で返ること", func(t *testing.T) {
		t.Parallel()

		token := Encode("admin123")
		raw, err := base64.StdEncoding.DecodeString(token)
		if err != nil {
			t.Fatalf("トークンのデコードに失敗: %v", err)
		}
		if len(raw) != SaltLength+32 {
			t.Errorf("len = %d, want %d", len(raw), SaltLength+32)
		}
	})

	t.Run("同じ平文でも毎回異なるトークンになること", func(t *testing.T) {
		t.Parallel()

		first := Encode("user123")
		second := Encode("user123")
		if first == second {
			t.Errorf("2回のEncode()が同じトークンを返した: %q", first)
		}
	})
}

// TestMatches はMatches関数を検証する。
func TestMatches(t *testing.T) {
	t.Parallel()

	t.Run("エンコードした平文と一致すること", func(t *testing.T) {
		t.Parallel()

		for _, p := range []string{"admin123", "", "p:a:ss", "مرحبا", "with space\n"} {
			if !Matches(p, Encode(p)) {
				t.Errorf("Matches(%q, Encode(%q)) = false, want true", p, p)
			}
		}
	})

	t.Run("異なる平文とは一致しないこと", func(t *testing.T) {
		t.Parallel()

		token := Encode("admin123")
		if Matches("admin124", token) {
			t.Error("異なるパスワードで一致した")
		}
		if Matches("", token) {
			t.Error("空のパスワードで一致した")
		}
	})

	t.Run("不正なトークンではfalseが返ること", func(t *testing.T) {
		t.Parallel()

		valid := Encode("secret")
		raw, _ := base64.StdEncoding.DecodeString(valid)

		cases := map[string]string{
			"空文字列":        "",
			"Base64ではない":  "%%%not-base64%%%",
			"ソルト長未満":      base64.StdEncoding.EncodeToString(raw[:SaltLength-1]),
			"ソルトのみ":       base64.StdEncoding.EncodeToString(raw[:SaltLength]),
			"ハッシュが途中で切れる": base64.StdEncoding.EncodeToString(raw[:SaltLength+10]),
		}
		for name, token := range cases {
			if Matches("secret", token) {
				t.Errorf("%s: Matches() = true, want false", name)
			}
		}
	})
}
