package gemini

import "fmt"

// promptTemplate は翻訳プロンプトのテンプレート。
const promptTemplate = "Translate the following English text to Moroccan Arabic Darija (Moroccan dialect). " +
	"Use Arabic script and maintain the natural, colloquial tone of Darija. " +
	"Only return the translation, nothing else.\n\n" +
	"English text: \"%s\"\n\n" +
	"Darija translation:"

// BuildPrompt は英語テキストをダリジャ語に翻訳させるプロンプトを生成する。
// テキストはそのまま埋め込まれ、エスケープはリクエストペイロードのJSONエンコード時に行われる。
func BuildPrompt(text string) string {
	return fmt.Sprintf(promptTemplate, text)
}

// generateRequest はgenerateContent APIのリクエストペイロード。
type generateRequest struct {
	Contents []content `json:"contents"`
}

// content はプロンプトの1コンテンツ。
type content struct {
	Parts []part `json:"parts"`
}

// part はコンテンツを構成するテキスト片。
type part struct {
	Text string `json:"text"`
}

// buildPayload はプロンプト1件だけを含むリクエストペイロードを生成する。
func buildPayload(prompt string) generateRequest {
	return generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}
}
