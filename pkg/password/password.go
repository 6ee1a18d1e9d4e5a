package password

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
)

// SaltLength はトークン先頭に埋め込むソルトのバイト長。
const SaltLength = 16

// Encode は平文パスワードから新しいソルト付きトークンを生成する。
// 呼び出しごとにソルトを生成するため、同じ平文でも毎回異なるトークンになる。
func Encode(plaintext string) string {
	salt := make([]byte, SaltLength)
	// crypto/rand.Read は失敗時にプロセスを停止させるため、エラーは返らない。
	_, _ = rand.Read(salt)

	sum := hash(plaintext, salt)

	combined := make([]byte, 0, SaltLength+len(sum))
	combined = append(combined, salt...)
	combined = append(combined, sum...)
	return base64.StdEncoding.EncodeToString(combined)
}

// Matches は平文パスワードがトークンと一致するかを判定する。
// トークンが不正な場合は常にfalseを返す。
func Matches(plaintext, token string) bool {
	combined, err := base64.StdEncoding.DecodeString(token)
	if err != nil || len(combined) < SaltLength {
		return false
	}

	salt := combined[:SaltLength]
	stored := combined[SaltLength:]
	return subtle.ConstantTimeCompare(stored, hash(plaintext, salt)) == 1
}

// hash は SHA-256(salt || plaintext) を計算する。
func hash(plaintext string, salt []byte) []byte {
	h := sha256.New()
	h.Write(salt)
	h.Write([]byte(plaintext))
	return h.Sum(nil)
}
