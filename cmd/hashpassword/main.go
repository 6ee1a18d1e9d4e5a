// アカウント定義用のパスワードトークンを生成するツール。
// 引数を与えた場合はそれぞれをハッシュ化し、引数がない場合はエコーなしでパスワードを入力させる。
// 出力されたトークンは users.properties の {username}.password や accounts テーブルに設定する。
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/nao1215/darija-translator/pkg/password"
	"golang.org/x/term"
)

func main() {
	if len(os.Args) > 1 {
		for _, plaintext := range os.Args[1:] {
			fmt.Println(password.Encode(plaintext))
		}
		return
	}

	fmt.Fprint(os.Stderr, "Enter password: ")
	plaintext, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		log.Fatalf("パスワードの読み込みに失敗: %v", err)
	}
	if len(plaintext) == 0 {
		log.Fatal("パスワードが空です")
	}

	fmt.Println(password.Encode(string(plaintext)))
}
