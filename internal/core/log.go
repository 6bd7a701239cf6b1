package core

import (
	"context"
	"log/slog"

	"github.com/sliink/logmerge/internal/model"
)

// LogTo subscribes logger to every event on the bus. Errors are logged at
// error level, everything else at debug.
func (b *EventBus) LogTo(logger *slog.Logger, listenerID string) {
	b.SubscribeAll(listenerID, func(event Event) {
		level := slog.LevelDebug
		if event.Type == model.EventError {
			level = slog.LevelError
		}
		logger.Log(context.Background(), level, "pipeline event",
			"type", event.Type,
			"source", event.SourceID,
			"data", event.Data,
		)
	})
}
