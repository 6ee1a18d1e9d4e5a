// Package password はアカウントの認証情報を一方向ハッシュで扱う機能を提供する。
//
// トークンは 16 バイトのソルトと SHA-256 ハッシュを連結し、Base64 で
// エンコードした 1 つの文字列として保存する。照合は定数時間比較で行う。
package password
