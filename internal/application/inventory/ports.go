package inventory

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Es la única primitiva de concurrencia del
// motor de saldos: cada Add/Edit/Delete/Recalculate corre como una unidad
// atómica y cualquier error hace Rollback de todos los escritos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		balanceRepo repository.BalanceRepository,
	) error) error
}
