package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/medassist/internal/chat"
	"github.com/BruksfildServices01/medassist/internal/middleware"
	"github.com/BruksfildServices01/medassist/internal/speech"
	"github.com/BruksfildServices01/medassist/internal/storage"
)

type fakeTranscriber struct {
	result      speech.Result
	gotBytes    int
	gotMIME     string
	gotDeadline time.Duration
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audio []byte, mimeType string) speech.Result {
	f.gotBytes = len(audio)
	f.gotMIME = mimeType
	if deadline, ok := ctx.Deadline(); ok {
		f.gotDeadline = time.Until(deadline)
	}
	return f.result
}

type fakeEngine struct {
	reply    chat.Reply
	owner    string
	messages []string
}

func (f *fakeEngine) Handle(_ context.Context, owner, message string) chat.Reply {
	f.owner = owner
	f.messages = append(f.messages, message)
	return f.reply
}

type fakeS3 struct {
	keys []string
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.keys = append(f.keys, *in.Key)
	return &s3.PutObjectOutput{}, nil
}

func asOwner(owner string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUsername, owner)
		c.Next()
	}
}

func audioRequest(t *testing.T, field string, data []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="voice.webm"`)
	h.Set("Content-Type", "audio/webm")
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/transcribe", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func serveTranscribe(h *TranscribeHandler, req *http.Request) (*httptest.ResponseRecorder, TranscribeResponse) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/transcribe", asOwner("alice"), h.Transcribe)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp TranscribeResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestTranscribeForwardsTextToEngine(t *testing.T) {
	tr := &fakeTranscriber{result: speech.Result{Success: true, Text: "我想查詢我的預約"}}
	engine := &fakeEngine{reply: chat.Reply{Success: true, Message: "您目前沒有預約。"}}
	s3c := &fakeS3{}
	archive := storage.NewAudioArchive(s3c, "voice-bucket", nil)

	h := NewTranscribeHandler(tr, engine, archive, 1<<20, time.Second, nil)
	w, resp := serveTranscribe(h, audioRequest(t, "audio", []byte("RIFF-audio")))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, "我想查詢我的預約", resp.Text)
	assert.Equal(t, "您目前沒有預約。", resp.AIResponse)

	assert.Equal(t, "alice", engine.owner)
	assert.Equal(t, []string{"我想查詢我的預約"}, engine.messages)
	assert.Equal(t, len("RIFF-audio"), tr.gotBytes)
	assert.Equal(t, "audio/webm", tr.gotMIME)

	require.Len(t, s3c.keys, 1)
	assert.Regexp(t, `^audio/alice/[0-9a-f-]{36}\.webm$`, s3c.keys[0])
}

func TestTranscribeBoundsBackendCall(t *testing.T) {
	tr := &fakeTranscriber{result: speech.Result{Success: true, Text: "你好"}}

	h := NewTranscribeHandler(tr, &fakeEngine{}, nil, 1<<20, 5*time.Second, nil)
	serveTranscribe(h, audioRequest(t, "audio", []byte("voice")))

	assert.Greater(t, tr.gotDeadline, time.Duration(0))
	assert.LessOrEqual(t, tr.gotDeadline, 5*time.Second)
}

func TestTranscribeFailureSkipsEngine(t *testing.T) {
	tr := &fakeTranscriber{result: speech.Result{Error: "無法辨識語音內容。"}}
	engine := &fakeEngine{}

	h := NewTranscribeHandler(tr, engine, nil, 1<<20, time.Second, nil)
	w, resp := serveTranscribe(h, audioRequest(t, "audio", []byte("noise")))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "無法辨識語音內容")
	assert.Empty(t, engine.messages)
}

func TestTranscribeRequiresAudioField(t *testing.T) {
	h := NewTranscribeHandler(&fakeTranscriber{}, &fakeEngine{}, nil, 1<<20, time.Second, nil)

	w, _ := serveTranscribe(h, audioRequest(t, "file", []byte("x")))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTranscribeRejectsOversizedUpload(t *testing.T) {
	tr := &fakeTranscriber{}
	h := NewTranscribeHandler(tr, &fakeEngine{}, nil, 4, time.Second, nil)

	w, _ := serveTranscribe(h, audioRequest(t, "audio", []byte("too large")))

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Zero(t, tr.gotBytes)
}

func TestTranscribeWithoutBackend(t *testing.T) {
	h := NewTranscribeHandler(nil, &fakeEngine{}, nil, 1<<20, time.Second, nil)

	w, _ := serveTranscribe(h, audioRequest(t, "audio", []byte("x")))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestChatHandlerPassesOwnerAndMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := &fakeEngine{reply: chat.Reply{Success: false, Error: "系統忙碌中"}}

	r := gin.New()
	r.POST("/api/chat", asOwner("bob"), NewChatHandler(engine).Send)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewBufferString(`{"message":"我要取消預約"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"系統忙碌中"}`, w.Body.String())
	assert.Equal(t, "bob", engine.owner)
	assert.Equal(t, []string{"我要取消預約"}, engine.messages)
}
