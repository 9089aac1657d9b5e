package speech

import (
	"context"
	"strings"

	"github.com/google/generative-ai-go/genai"
)

const transcribePrompt = "請將這段語音逐字轉寫為繁體中文文字，只輸出轉寫內容，不要加任何說明。"

type Result struct {
	Success bool   `json:"success"`
	Text    string `json:"text,omitempty"`
	Error   string `json:"error,omitempty"`
}

type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string) Result
}

// PartsGenerator is the multimodal slice of the Gemini backend.
type PartsGenerator interface {
	GenerateParts(ctx context.Context, parts ...genai.Part) (string, error)
}

type GeminiTranscriber struct {
	gen PartsGenerator
}

func NewGeminiTranscriber(gen PartsGenerator) *GeminiTranscriber {
	return &GeminiTranscriber{gen: gen}
}

func (t *GeminiTranscriber) Transcribe(ctx context.Context, audio []byte, mimeType string) Result {
	if len(audio) == 0 {
		return Result{Error: "音訊檔案是空的。"}
	}

	mimeType = normalizeMIME(mimeType)
	text, err := t.gen.GenerateParts(ctx,
		genai.Blob{MIMEType: mimeType, Data: audio},
		genai.Text(transcribePrompt),
	)
	if err != nil {
		return Result{Error: err.Error()}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return Result{Error: "無法辨識語音內容。"}
	}
	return Result{Success: true, Text: text}
}

// normalizeMIME strips parameters such as codecs and maps browser recorder
// types onto ones Gemini accepts.
func normalizeMIME(mimeType string) string {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}

	switch mimeType {
	case "":
		return "audio/webm"
	case "audio/x-wav", "audio/wave":
		return "audio/wav"
	case "audio/mpeg3", "audio/x-mpeg-3":
		return "audio/mp3"
	default:
		return mimeType
	}
}

var _ Transcriber = (*GeminiTranscriber)(nil)
