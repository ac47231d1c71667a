package messaging

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jhoicas/stylelane-api/internal/application/inventory"
	"github.com/jhoicas/stylelane-api/internal/domain/event"
)

var _ inventory.Notifier = (*LogNotifier)(nil)

// LogNotifier registra los eventos en el log estructurado. Se usa con RABBITMQ_ENABLED=false.
type LogNotifier struct {
	log zerolog.Logger
}

// NewLogNotifier crea el notifier sobre el logger dado.
func NewLogNotifier(l zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: l}
}

func (n *LogNotifier) Publish(_ context.Context, ev event.Event) error {
	n.log.Info().
		Str("event_id", ev.ID).
		Str("event_type", string(ev.Type)).
		Str("routing_key", ev.RoutingKey()).
		Str("store_id", ev.StoreID).
		Str("actor_id", ev.ActorID).
		Interface("payload", ev.Payload).
		Msg("notificación")
	return nil
}
