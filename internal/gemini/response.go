package gemini

import (
	"encoding/json"
	"strings"
)

// ExtractTranslation はgenerateContentのレスポンスから翻訳結果を取り出す。
// candidates[0].content.parts[0].text を前後の空白を除去して返す。
// 途中の配列が空、配列でない、またはtextが文字列でない場合は ParseError を返す。
func ExtractTranslation(body []byte) (string, error) {
	var root any
	if err := json.Unmarshal(body, &root); err != nil {
		return "", &ParseError{Message: msgParseFailed, Err: err}
	}

	candidate, ok := firstElement(field(root, "candidates"))
	if !ok {
		return "", &ParseError{Message: msgNoTranslation}
	}
	p, ok := firstElement(field(field(candidate, "content"), "parts"))
	if !ok {
		return "", &ParseError{Message: msgNoTranslation}
	}
	text, ok := field(p, "text").(string)
	if !ok {
		return "", &ParseError{Message: msgNoTranslation}
	}
	return strings.TrimSpace(text), nil
}

// field はJSONオブジェクトから指定キーの値を取り出す。オブジェクトでない場合はnil。
func field(v any, key string) any {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	return obj[key]
}

// firstElement はJSON配列の先頭要素を取り出す。配列でないか空の場合はfalse。
func firstElement(v any) (any, bool) {
	arr, ok := v.([]any)
	if !ok || len(arr) == 0 {
		return nil, false
	}
	return arr[0], true
}
