package queue

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/tagdemo/storefront/internal/core/domain"
	"github.com/tagdemo/storefront/internal/core/ports"
)

// LogCollector writes every event as a structured log line. It is the local
// stand-in for the tag's collection endpoint.
type LogCollector struct {
	log zerolog.Logger
}

var _ ports.Collector = (*LogCollector)(nil)

func NewLogCollector(log zerolog.Logger) *LogCollector {
	return &LogCollector{log: log.With().Str("component", "collector").Logger()}
}

func (c *LogCollector) Name() string { return "log" }

func (c *LogCollector) Collect(_ context.Context, event domain.TagEvent) error {
	raw, err := json.Marshal(event)
	if err != nil {
		return err
	}
	c.log.Info().
		Str("event", event.Name).
		Str("user_id", event.UserID).
		RawJSON("payload", raw).
		Msg("tag event")
	return nil
}

func (c *LogCollector) Close() error { return nil }
