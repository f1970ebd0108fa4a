package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by writing debug records to a
// logger. The CLI registers it under --verbose.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger}
}

// Register installs h for every hook category.
func (h *LogHooks) Register() {
	SetParseHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h *LogHooks) OnParseComplete(_ context.Context, source string, requirements, unrecognized int, d time.Duration) {
	h.logger.Debug("parsed", "source", source, "requirements", requirements, "unrecognized", unrecognized, "took", d.Round(time.Microsecond))
}

func (h *LogHooks) OnCacheHit(_ context.Context, namespace string) {
	h.logger.Debug("cache hit", "ns", namespace)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, namespace string) {
	h.logger.Debug("cache miss", "ns", namespace)
}

func (h *LogHooks) OnCacheSet(_ context.Context, namespace string, size int) {
	h.logger.Debug("cache set", "ns", namespace, "bytes", size)
}

func (h *LogHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("http", "method", method, "host", host, "path", path, "status", status, "took", d.Round(time.Millisecond))
}

func (h *LogHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Warn("http request failed", "method", method, "host", host, "path", path, "err", err)
}

var (
	_ ParseHooks = (*LogHooks)(nil)
	_ CacheHooks = (*LogHooks)(nil)
	_ HTTPHooks  = (*LogHooks)(nil)
)
