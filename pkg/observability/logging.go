package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/typeb/pkg/domain"
)

// LogHooks logs each finished message at Info and each letter at Debug.
// Letter lines record index, class and positions only, never the letters themselves.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnLetter: func(ctx context.Context, e *domain.LetterEvent) {
			logger.DebugContext(ctx, "letter",
				"direction", e.Direction.String(),
				"index", e.Index,
				"class", e.Class.String(),
				"positions", e.Positions.String(),
			)
		},
		OnMessage: func(ctx context.Context, e *domain.MessageEvent) {
			attrs := []any{
				"direction", e.Direction.String(),
				"letters", e.Letters,
				"skipped", e.Skipped,
				"final", e.Final.String(),
				"duration", e.Duration,
			}
			if e.Err != nil {
				logger.WarnContext(ctx, "message rejected", append(attrs, "error", e.Err)...)
				return
			}
			logger.InfoContext(ctx, "message processed", attrs...)
		},
	}
}
