// Package gemini はGoogle Gemini generateContent APIを使った翻訳ゲートウェイを提供する。
//
// 英語テキストからモロッコ・ダリジャ語への翻訳プロンプトを組み立て、
// プロバイダを呼び出し、入れ子になったレスポンスJSONから翻訳結果を取り出す。
// 外部の失敗はすべて型付きエラー（UpstreamError, ParseError, TransportError）に変換される。
package gemini
