package build

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/events"

	entities "github.com/KirkDiggler/build-api/internal/entities/build"
)

// Event types published after a build change has been saved
const (
	EventOptionSelected   = "build.option.selected"
	EventOptionDeselected = "build.option.deselected"
	EventBuildImported    = "build.imported"
)

// publish emits a build event. The build is the source and the option, when
// there is one, the target. Publish failures are logged and never fail the
// operation, which has already been saved.
func (o *orchestrator) publish(ctx context.Context, eventType string, b *entities.Build, option *entities.Option) {
	var target core.Entity
	if option != nil {
		target = option
	}

	if err := o.eventBus.Publish(ctx, events.NewGameEvent(eventType, b, target)); err != nil {
		slog.WarnContext(ctx, "failed to publish build event",
			"event", eventType,
			"build_id", b.ID,
			"error", err)
	}
}
