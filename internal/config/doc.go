// Package config は翻訳サービスのプロセス設定を環境変数と静的設定ファイルから読み込む。
package config
