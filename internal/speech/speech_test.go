package speech

import (
	"context"
	"errors"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	text  string
	err   error
	parts []genai.Part
}

func (f *fakeGenerator) GenerateParts(_ context.Context, parts ...genai.Part) (string, error) {
	f.parts = parts
	return f.text, f.err
}

func TestTranscribeSendsAudioBlob(t *testing.T) {
	gen := &fakeGenerator{text: " 我要預約明天的內科 \n"}
	tr := NewGeminiTranscriber(gen)

	res := tr.Transcribe(context.Background(), []byte{1, 2, 3}, "audio/webm;codecs=opus")

	assert.True(t, res.Success)
	assert.Equal(t, "我要預約明天的內科", res.Text)
	require.Len(t, gen.parts, 2)
	blob, ok := gen.parts[0].(genai.Blob)
	require.True(t, ok)
	assert.Equal(t, "audio/webm", blob.MIMEType)
	assert.Equal(t, []byte{1, 2, 3}, blob.Data)
}

func TestTranscribeFailures(t *testing.T) {
	empty := NewGeminiTranscriber(&fakeGenerator{}).Transcribe(context.Background(), nil, "audio/wav")
	assert.False(t, empty.Success)
	assert.NotEmpty(t, empty.Error)

	failing := NewGeminiTranscriber(&fakeGenerator{err: errors.New("boom")}).
		Transcribe(context.Background(), []byte{1}, "audio/wav")
	assert.False(t, failing.Success)
	assert.Contains(t, failing.Error, "boom")

	silent := NewGeminiTranscriber(&fakeGenerator{text: "   "}).
		Transcribe(context.Background(), []byte{1}, "audio/wav")
	assert.False(t, silent.Success)
}

func TestNormalizeMIME(t *testing.T) {
	assert.Equal(t, "audio/webm", normalizeMIME(""))
	assert.Equal(t, "audio/wav", normalizeMIME("audio/x-wav"))
	assert.Equal(t, "audio/ogg", normalizeMIME(" Audio/OGG; codecs=opus"))
}
