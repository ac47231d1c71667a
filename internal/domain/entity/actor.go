package entity

import (
	"fmt"

	"github.com/jhoicas/stylelane-api/internal/domain"
)

// Actor identifica a quien ejecuta una operación. Lo construye la capa HTTP a partir
// del token ya verificado; los casos de uso nunca leen estado de sesión ambiental.
type Actor struct {
	UserID  string
	Role    string
	StoreID string
}

// Is indica si el actor tiene el rol indicado.
func (a Actor) Is(role string) bool { return a.Role == role }

// Require devuelve ErrForbidden si el actor no tiene ninguno de los roles indicados.
func (a Actor) Require(roles ...string) error {
	for _, r := range roles {
		if a.Role == r {
			return nil
		}
	}
	return fmt.Errorf("%w: rol %q no permitido", domain.ErrForbidden, a.Role)
}
