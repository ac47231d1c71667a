package inventory

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/stylelane-api/internal/domain/event"
	"github.com/jhoicas/stylelane-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Garantiza atomicidad del motor de reposición: estado, despacho e inventario se confirman juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		invRepo repository.InventoryRepository,
		restockRepo repository.RestockRepository,
		shipmentRepo repository.ShipmentRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

// Notifier publica eventos del motor (RabbitMQ o log).
type Notifier interface {
	Publish(ctx context.Context, ev event.Event) error
}

// notify publica tras el commit; un fallo solo se registra.
func notify(ctx context.Context, n Notifier, ev event.Event) {
	if n == nil {
		return
	}
	if err := n.Publish(ctx, ev); err != nil {
		log.Warn().Err(err).
			Str("event_type", string(ev.Type)).
			Str("event_id", ev.ID).
			Msg("no se pudo publicar la notificación")
	}
}
