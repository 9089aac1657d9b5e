package handlers

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/medassist/internal/middleware"
	"github.com/BruksfildServices01/medassist/internal/speech"
	"github.com/BruksfildServices01/medassist/internal/storage"
)

type TranscribeHandler struct {
	transcriber speech.Transcriber
	engine      ChatEngine
	archive     *storage.AudioArchive
	maxBytes    int64
	timeout     time.Duration
	logger      *zap.Logger
}

func NewTranscribeHandler(
	transcriber speech.Transcriber,
	engine ChatEngine,
	archive *storage.AudioArchive,
	maxBytes int64,
	timeout time.Duration,
	logger *zap.Logger,
) *TranscribeHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TranscribeHandler{
		transcriber: transcriber,
		engine:      engine,
		archive:     archive,
		maxBytes:    maxBytes,
		timeout:     timeout,
		logger:      logger,
	}
}

type TranscribeResponse struct {
	Success    bool   `json:"success"`
	Text       string `json:"text,omitempty"`
	AIResponse string `json:"ai_response,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Transcribe reads the multipart "audio" field, turns it into text and hands
// the text to the chat engine as if the user had typed it.
func (h *TranscribeHandler) Transcribe(c *gin.Context) {
	if h.transcriber == nil {
		c.JSON(http.StatusServiceUnavailable, TranscribeResponse{Error: "語音辨識服務尚未設定。"})
		return
	}

	fh, err := c.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, TranscribeResponse{Error: "請上傳語音檔案。"})
		return
	}
	if h.maxBytes > 0 && fh.Size > h.maxBytes {
		c.JSON(http.StatusRequestEntityTooLarge, TranscribeResponse{Error: "語音檔案太大。"})
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, TranscribeResponse{Error: "無法讀取語音檔案。"})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, TranscribeResponse{Error: "無法讀取語音檔案。"})
		return
	}

	ctx := c.Request.Context()
	owner := middleware.Owner(c)
	mimeType := fh.Header.Get("Content-Type")

	if h.archive.Enabled() {
		if _, err := h.archive.Archive(ctx, owner, data, mimeType); err != nil {
			h.logger.Warn("audio archive failed", zap.String("owner", owner), zap.Error(err))
		}
	}

	result := h.transcribe(ctx, data, mimeType)
	if !result.Success {
		c.JSON(http.StatusOK, TranscribeResponse{Error: "語音辨識失敗：" + result.Error})
		return
	}

	resp := TranscribeResponse{Success: true, Text: result.Text}
	if h.engine != nil {
		reply := h.engine.Handle(ctx, owner, result.Text)
		if reply.Success {
			resp.AIResponse = reply.Message
		} else {
			resp.AIResponse = reply.Error
		}
	}

	c.JSON(http.StatusOK, resp)
}

func (h *TranscribeHandler) transcribe(ctx context.Context, data []byte, mimeType string) speech.Result {
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}
	return h.transcriber.Transcribe(ctx, data, mimeType)
}
