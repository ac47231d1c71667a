// Package restock contiene la máquina de estados de las solicitudes de reposición.
package restock

import (
	"fmt"
	"strings"

	"github.com/jhoicas/stylelane-api/internal/domain"
	"github.com/jhoicas/stylelane-api/internal/domain/entity"
)

// Action acción que un supplier ejecuta sobre una solicitud.
type Action string

const (
	ActionAccept Action = "accept"
	ActionReject Action = "reject"
	ActionShip   Action = "ship"
)

// Effect efecto secundario que acompaña a una transición.
type Effect int

const (
	// EffectNone solo cambia el estado.
	EffectNone Effect = iota
	// EffectFulfill crea o actualiza el Shipment y suma la cantidad solicitada al inventario.
	EffectFulfill
)

// Rule resultado de evaluar (estado actual, acción).
type Rule struct {
	Next   string
	Effect Effect
}

type key struct {
	status string
	action Action
}

// transitions tabla completa; cualquier par ausente es ilegal.
var transitions = map[key]Rule{
	{entity.RestockStatusPending, ActionAccept}:  {Next: entity.RestockStatusApproved, Effect: EffectNone},
	{entity.RestockStatusPending, ActionReject}:  {Next: entity.RestockStatusRejected, Effect: EffectNone},
	{entity.RestockStatusApproved, ActionReject}: {Next: entity.RestockStatusRejected, Effect: EffectNone},
	{entity.RestockStatusPending, ActionShip}:    {Next: entity.RestockStatusShipped, Effect: EffectFulfill},
	{entity.RestockStatusApproved, ActionShip}:   {Next: entity.RestockStatusShipped, Effect: EffectFulfill},
}

// ParseAction normaliza y valida una acción recibida del exterior.
func ParseAction(s string) (Action, error) {
	a := Action(strings.ToLower(strings.TrimSpace(s)))
	switch a {
	case ActionAccept, ActionReject, ActionShip:
		return a, nil
	}
	return "", fmt.Errorf("%w: acción desconocida %q", domain.ErrValidation, s)
}

// Next evalúa la tabla. Devuelve ErrConflict si la transición no existe.
func Next(status string, action Action) (Rule, error) {
	if IsTerminal(status) {
		return Rule{}, fmt.Errorf("%w: la solicitud ya está cerrada (%s)", domain.ErrConflict, status)
	}
	rule, ok := transitions[key{status, action}]
	if !ok {
		return Rule{}, fmt.Errorf("%w: no se puede aplicar %q a una solicitud en estado %q", domain.ErrConflict, action, status)
	}
	return rule, nil
}

// IsTerminal indica si el estado ya no admite acciones.
func IsTerminal(status string) bool {
	for k := range transitions {
		if k.status == status {
			return false
		}
	}
	return true
}

// EventType nombre del evento publicado al llegar a un estado.
func EventType(status string) string {
	return "restock." + status
}
