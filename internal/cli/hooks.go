package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pearls/pkg/observability"
)

// installLogHooks routes pipeline and cache events to the debug log.
func installLogHooks(l *log.Logger) {
	h := &logHooks{logger: l.WithPrefix("hooks")}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
}

// logHooks implements every observability hook interface by logging at
// debug level.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnGenerateStart(_ context.Context, rows, cols, layers int) {
	h.logger.Debug("generate start", "rows", rows, "cols", cols, "layers", layers)
}

func (h *logHooks) OnGenerateComplete(_ context.Context, layers, cells int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("generate failed", "err", err)
		return
	}
	h.logger.Debug("generate done", "layers", layers, "cells", cells, "duration", d)
}

func (h *logHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render start", "formats", formats)
}

func (h *logHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "formats", formats, "err", err)
		return
	}
	h.logger.Debug("render done", "formats", formats, "duration", d)
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *logHooks) OnCacheError(_ context.Context, keyType string, err error) {
	h.logger.Debug("cache error", "type", keyType, "err", err)
}

func (h *logHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request", "method", method, "path", path)
}

func (h *logHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "path", path, "status", status, "duration", d)
}
