package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BruksfildServices01/medassist/internal/httperr"
	"github.com/BruksfildServices01/medassist/internal/llm"
	"github.com/BruksfildServices01/medassist/internal/metrics"
)

// Reply paths, also used as metric labels.
const (
	PathDirect   = "direct"
	PathBackend  = "backend"
	PathFallback = "fallback"
	PathError    = "error"
)

type Reply struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Path    string `json:"-"`
}

const systemPrompt = `你是一位醫院的智慧掛號與衛教助理，請一律使用繁體中文回答。
你可以協助使用者預約、查詢、修改掛號，並提供一般健康衛教資訊。
回答要簡潔、親切；提供健康資訊時須提醒使用者這不能取代醫師診斷，緊急狀況請立即就醫。
若有【系統補充資訊】，請以其中的資料為準，不要自行編造預約資料。`

var errNoBackend = errors.New("generative backend is not configured")

type Composer struct {
	backend llm.Backend
	timeout time.Duration
	metrics *metrics.ChatMetrics
}

func NewComposer(backend llm.Backend, backendTimeout time.Duration, m *metrics.ChatMetrics) *Composer {
	return &Composer{backend: backend, timeout: backendTimeout, metrics: m}
}

func (c *Composer) Compose(ctx context.Context, d Decision, message string) Reply {
	if d.Kind == DecisionDirect {
		if d.Success {
			return Reply{Success: true, Message: d.Reply, Path: PathDirect}
		}
		return Reply{Success: false, Error: d.Reply, Path: PathDirect}
	}

	text, err := c.generate(ctx, buildPrompt(d.Context, message))
	if err == nil {
		return Reply{Success: true, Message: text, Path: PathBackend}
	}

	if llm.IsQuota(err) {
		if answer, ok := FallbackAnswer(message); ok {
			return Reply{Success: true, Message: answer, Path: PathFallback}
		}
	}

	return Reply{
		Success: false,
		Error:   fmt.Sprintf("%s（%v）", httperr.UserMessage(httperr.BackendUnavailable(err)), err),
		Path:    PathError,
	}
}

func (c *Composer) generate(ctx context.Context, prompt string) (string, error) {
	if c.backend == nil {
		return "", llm.Wrap(errNoBackend)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := c.backend.Generate(ctx, prompt)
	if err == nil && strings.TrimSpace(text) == "" {
		err = llm.Wrap(errors.New("empty reply"))
	}
	c.metrics.ObserveBackend(time.Since(start).Seconds(), err, llm.IsQuota(err))

	return strings.TrimSpace(text), err
}

func buildPrompt(followUp, message string) string {
	var b strings.Builder
	b.WriteString(systemPrompt)
	b.WriteString("\n\n")
	if followUp != "" {
		b.WriteString("【系統補充資訊】\n")
		b.WriteString(followUp)
		b.WriteString("\n\n")
	}
	b.WriteString("使用者訊息：")
	b.WriteString(message)
	return b.String()
}
