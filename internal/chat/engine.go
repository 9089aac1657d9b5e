package chat

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/medassist/internal/llm"
	"github.com/BruksfildServices01/medassist/internal/metrics"
)

type Config struct {
	StoreTimeout   time.Duration
	BackendTimeout time.Duration
}

// Engine handles one chat message at a time and keeps no state between
// messages.
type Engine struct {
	extractor *Extractor
	manager   *Manager
	composer  *Composer
	logger    *zap.Logger
	metrics   *metrics.ChatMetrics
}

func NewEngine(
	store AppointmentStore,
	backend llm.Backend,
	now func() time.Time,
	cfg Config,
	logger *zap.Logger,
	m *metrics.ChatMetrics,
) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Engine{
		extractor: NewExtractor(now),
		manager:   NewManager(store, now, cfg.StoreTimeout),
		composer:  NewComposer(backend, cfg.BackendTimeout, m),
		logger:    logger,
		metrics:   m,
	}
}

func (e *Engine) Handle(ctx context.Context, owner, message string) Reply {
	message = strings.TrimSpace(message)

	intent := Classify(message)
	slots := e.extractor.Extract(message)
	decision := e.manager.Decide(ctx, owner, intent, slots, message)
	reply := e.composer.Compose(ctx, decision, message)

	e.metrics.ObserveMessage(intent.String(), reply.Path)

	fields := []zap.Field{
		zap.String("owner", owner),
		zap.String("intent", intent.String()),
		zap.String("path", reply.Path),
		zap.Bool("success", reply.Success),
	}
	if len(decision.Missing) > 0 {
		fields = append(fields, zap.Strings("missing", decision.Missing))
	}
	if decision.Appointment != nil {
		fields = append(fields, zap.Uint("appointment_id", decision.Appointment.ID))
	}

	if reply.Success {
		e.logger.Info("chat message handled", fields...)
	} else {
		e.logger.Warn("chat message failed", append(fields, zap.String("error", reply.Error))...)
	}

	return reply
}
