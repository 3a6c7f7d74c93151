package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes cache and HTTP events to a logger at debug level.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log through logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger}
}

func (h *LogHooks) OnCacheHit(_ context.Context, key string) {
	h.logger.Debug("cache hit", "key", key)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, key string) {
	h.logger.Debug("cache miss", "key", key)
}

func (h *LogHooks) OnCacheSet(_ context.Context, key string, size int) {
	h.logger.Debug("cache set", "key", key, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, service, method, url string) {
	h.logger.Debug("request", "service", service, "method", method, "url", url)
}

func (h *LogHooks) OnResponse(_ context.Context, service, method, url string, status int, d time.Duration) {
	h.logger.Debug("response", "service", service, "method", method, "url", url,
		"status", status, "elapsed", d.Round(time.Millisecond))
}

func (h *LogHooks) OnError(_ context.Context, service, method, url string, err error) {
	h.logger.Debug("request failed", "service", service, "method", method, "url", url, "err", err)
}
