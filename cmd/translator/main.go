// 翻訳サービスのエントリポイント。
// アカウントレジストリを読み込んでからBasic認証付きのHTTPサーバーを起動し、
// 英語テキストをGemini API経由でモロッコ・ダリジャ語に翻訳する。
package main

import (
	"context"
	"errors"
	"io/fs"
	"log"

	"github.com/joho/godotenv"
	"github.com/nao1215/darija-translator/internal/account"
	"github.com/nao1215/darija-translator/internal/config"
	"github.com/nao1215/darija-translator/internal/gemini"
	"github.com/nao1215/darija-translator/internal/translator"
)

func main() {
	// 既に設定済みの環境変数は上書きしない
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf(".envの読み込みに失敗: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("設定の読み込みに失敗: %v", err)
	}

	accounts, err := loadAccounts(cfg)
	if err != nil {
		log.Fatalf("アカウントの読み込みに失敗: %v", err)
	}

	gateway, err := gemini.New(cfg.GeminiAPIKey, gemini.WithEndpoint(cfg.GeminiEndpoint))
	if err != nil {
		log.Fatalf("翻訳ゲートウェイの初期化に失敗: %v", err)
	}

	server := translator.NewServer(cfg.Port, accounts, gateway, cfg.AllowedOrigins)

	log.Printf("翻訳サービスを起動します: :%s", cfg.Port)
	if err := server.Run(); err != nil {
		log.Fatalf("翻訳サービスの起動に失敗: %v", err)
	}
}

// loadAccounts はアカウントレジストリを読み込む。
// USERS_DB が設定されている場合はSQLite、それ以外はプロパティファイルから読み込む。
// ソースを開けない場合は既定アカウントを使い、内容が不正な場合はエラーを返す。
func loadAccounts(cfg *config.Config) (*account.Store, error) {
	if cfg.UsersDB == "" {
		return account.Load(account.PropertiesSource{Path: cfg.UsersFile})
	}

	src, err := account.OpenSQLiteSource(context.Background(), cfg.UsersDB)
	if err != nil {
		log.Printf("アカウントDBを開けません、既定アカウントを作成します: %v", err)
		return account.NewDefaultStore(), nil
	}
	defer src.Close()

	return account.Load(src)
}
