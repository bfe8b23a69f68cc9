package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/token"
)

// MovementUseCase es el motor de saldos: toda mutación del libro mayor
// (alta, edición, borrado, recomputación) pasa por aquí, y cada una actualiza
// movimientos y saldos dentro de una sola transacción vía TxRunner.
type MovementUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	locationRepo repository.LocationRepository
	movementRepo repository.MovementRepository
	balanceRepo  repository.BalanceRepository
}

// NewMovementUseCase construye el motor de saldos.
func NewMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
	movementRepo repository.MovementRepository,
	balanceRepo repository.BalanceRepository,
) *MovementUseCase {
	return &MovementUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		locationRepo: locationRepo,
		movementRepo: movementRepo,
		balanceRepo:  balanceRepo,
	}
}

// MovementInput datos de un movimiento a crear o editar. FromLocation y
// ToLocation vacíos significan "no aplica"; al menos uno debe venir.
type MovementInput struct {
	ID           string // vacío en alta = se genera un token MOV-XXXXXXXX
	ProductID    string
	FromLocation string
	ToLocation   string
	Qty          int64
}

// applyDelta es la primitiva acumuladora incondicional: crea la fila de saldo
// si no existe (saldo = delta) o suma el delta a la existente, refrescando
// last_updated. Aquí no hay validación; la suficiencia se verifica antes,
// en el protocolo de mutación. Debe invocarse siempre dentro de la
// transacción de la mutación que la origina, y lee con GetForUpdate: el
// read-modify-write sobre la fila de saldo necesita el lock para no perder
// actualizaciones entre escritores concurrentes de la misma clave.
func applyDelta(balanceRepo repository.BalanceRepository, productID, locationID string, delta int64, now time.Time) (*entity.Balance, error) {
	b, err := balanceRepo.GetForUpdate(productID, locationID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		b = &entity.Balance{ProductID: productID, LocationID: locationID, Balance: delta, LastUpdated: now}
	} else {
		b.Balance += delta
		b.LastUpdated = now
	}
	if err := balanceRepo.Upsert(b); err != nil {
		return nil, err
	}
	return b, nil
}

// Add registra un movimiento nuevo. Orden del protocolo: validación
// estructural → existencia de producto/ubicaciones → colisión de ID →
// (en tx) chequeo de suficiencia en origen ANTES de escribir nada →
// inserción en el libro mayor → deltas de saldo. Commit o Rollback como
// unidad.
func (uc *MovementUseCase) Add(ctx context.Context, input MovementInput) (*entity.Movement, error) {
	if violations := structuralViolations(input.FromLocation, input.ToLocation, input.Qty); len(violations) > 0 {
		return nil, domain.NewValidationError(violations)
	}
	if err := uc.checkReferences(input.ProductID, input.FromLocation, input.ToLocation); err != nil {
		return nil, err
	}

	if input.ID == "" {
		input.ID = token.NewMovementID()
	}
	existing, err := uc.movementRepo.GetByID(input.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now().UTC()
	mov := &entity.Movement{
		ID:           input.ID,
		ProductID:    input.ProductID,
		FromLocation: input.FromLocation,
		ToLocation:   input.ToLocation,
		Qty:          input.Qty,
		Timestamp:    now,
	}

	err = uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, balanceRepo repository.BalanceRepository) error {
		if mov.HasFrom() {
			// Bloquea la fila del saldo origen y verifica suficiencia antes
			// de cualquier escritura.
			b, err := balanceRepo.GetForUpdate(mov.ProductID, mov.FromLocation)
			if err != nil {
				return err
			}
			if balanceOf(b) < mov.Qty {
				return domain.ErrInsufficientStock
			}
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		if mov.HasFrom() {
			if _, err := applyDelta(balanceRepo, mov.ProductID, mov.FromLocation, -mov.Qty, now); err != nil {
				return err
			}
		}
		if mov.HasTo() {
			if _, err := applyDelta(balanceRepo, mov.ProductID, mov.ToLocation, mov.Qty, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// Edit modifica producto, ubicaciones y/o cantidad de un movimiento
// existente. Dentro de la transacción: primero revierte el efecto viejo,
// re-verifica suficiencia contra el estado ya revertido y aplica el efecto
// nuevo. Si la suficiencia falla, el Rollback de la transacción deshace la
// reversión y los saldos quedan exactamente como si la edición nunca hubiera
// empezado.
func (uc *MovementUseCase) Edit(ctx context.Context, id string, input MovementInput) (*entity.Movement, error) {
	pre, err := uc.movementRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if pre == nil {
		return nil, domain.ErrNotFound
	}
	if violations := structuralViolations(input.FromLocation, input.ToLocation, input.Qty); len(violations) > 0 {
		return nil, domain.NewValidationError(violations)
	}
	if err := uc.checkReferences(input.ProductID, input.FromLocation, input.ToLocation); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var updated *entity.Movement
	err = uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, balanceRepo repository.BalanceRepository) error {
		// 0. Releer el movimiento dentro de la tx: pudo haberse borrado entre
		// la lectura previa y el inicio de la transacción, y revertir un
		// efecto que ya no está en el libro mayor rompería la conservación.
		old, err := movRepo.GetByID(id)
		if err != nil {
			return err
		}
		if old == nil {
			return domain.ErrNotFound
		}
		updated = &entity.Movement{
			ID:           old.ID,
			ProductID:    input.ProductID,
			FromLocation: input.FromLocation,
			ToLocation:   input.ToLocation,
			Qty:          input.Qty,
			Timestamp:    old.Timestamp, // el timestamp es de creación, no se toca
		}

		// 1. Reversión del efecto viejo: devolver al origen, debitar el destino.
		if err := reverse(balanceRepo, old, now); err != nil {
			return err
		}
		// 2. Suficiencia contra el estado revertido (la tx ve sus propios escritos).
		if updated.HasFrom() {
			b, err := balanceRepo.GetForUpdate(updated.ProductID, updated.FromLocation)
			if err != nil {
				return err
			}
			if balanceOf(b) < updated.Qty {
				return domain.ErrInsufficientStock
			}
		}
		// 3. Actualizar la fila del libro mayor y aplicar el efecto nuevo.
		if err := movRepo.Update(updated); err != nil {
			return err
		}
		if updated.HasFrom() {
			if _, err := applyDelta(balanceRepo, updated.ProductID, updated.FromLocation, -updated.Qty, now); err != nil {
				return err
			}
		}
		if updated.HasTo() {
			if _, err := applyDelta(balanceRepo, updated.ProductID, updated.ToLocation, updated.Qty, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete elimina un movimiento revirtiendo su efecto sobre los saldos.
// No hay re-chequeo de suficiencia: el borrado puede dejar legalmente un
// saldo almacenado negativo.
func (uc *MovementUseCase) Delete(ctx context.Context, id string) error {
	now := time.Now().UTC()
	return uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, balanceRepo repository.BalanceRepository) error {
		// La lectura va dentro de la tx: revertir un movimiento que otro
		// escritor acaba de borrar duplicaría la reversión.
		old, err := movRepo.GetByID(id)
		if err != nil {
			return err
		}
		if old == nil {
			return domain.ErrNotFound
		}
		if err := reverse(balanceRepo, old, now); err != nil {
			return err
		}
		return movRepo.Delete(id)
	})
}

// RecalculateAll reconstruye la tabla de saldos entera desde el libro mayor:
// vacía las filas y reaplica cada movimiento como hecho histórico ya validado
// (sin chequeos de suficiencia). El vaciado y todos los upserts van en la
// misma transacción, así una falla a mitad de recorrido deja la tabla en su
// estado previo. La acumulación es conmutativa y asociativa: cualquier orden
// de recorrido produce los mismos saldos, y ejecutarlo dos veces seguidas es
// idempotente.
func (uc *MovementUseCase) RecalculateAll(ctx context.Context) error {
	now := time.Now().UTC()
	return uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, balanceRepo repository.BalanceRepository) error {
		movements, err := movRepo.ListAll()
		if err != nil {
			return err
		}

		type pair struct{ productID, locationID string }
		net := make(map[pair]int64)
		for _, m := range movements {
			if m.HasFrom() {
				net[pair{m.ProductID, m.FromLocation}] -= m.Qty
			}
			if m.HasTo() {
				net[pair{m.ProductID, m.ToLocation}] += m.Qty
			}
		}

		if err := balanceRepo.DeleteAll(); err != nil {
			return err
		}
		for p, qty := range net {
			b := &entity.Balance{ProductID: p.productID, LocationID: p.locationID, Balance: qty, LastUpdated: now}
			if err := balanceRepo.Upsert(b); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetByID devuelve un movimiento del libro mayor.
func (uc *MovementUseCase) GetByID(id string) (*entity.Movement, error) {
	m, err := uc.movementRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return m, nil
}

// List devuelve todos los movimientos, más recientes primero.
func (uc *MovementUseCase) List() ([]*entity.Movement, error) {
	return uc.movementRepo.List()
}

// GetBalance devuelve el saldo almacenado del par (producto, ubicación).
// La ausencia de fila significa "nunca se movió" y equivale a 0, no es error.
func (uc *MovementUseCase) GetBalance(productID, locationID string) (int64, error) {
	b, err := uc.balanceRepo.Get(productID, locationID)
	if err != nil {
		return 0, err
	}
	return balanceOf(b), nil
}

// ListNonZeroBalances devuelve las filas de saldo distintas de cero,
// ordenadas por (product_id, location_id).
func (uc *MovementUseCase) ListNonZeroBalances() ([]*entity.Balance, error) {
	return uc.balanceRepo.ListNonZero()
}

// reverse aplica los deltas inversos de un movimiento ya registrado:
// +qty en el origen (deshace el descuento), -qty en el destino.
func reverse(balanceRepo repository.BalanceRepository, m *entity.Movement, now time.Time) error {
	if m.HasFrom() {
		if _, err := applyDelta(balanceRepo, m.ProductID, m.FromLocation, m.Qty, now); err != nil {
			return err
		}
	}
	if m.HasTo() {
		if _, err := applyDelta(balanceRepo, m.ProductID, m.ToLocation, -m.Qty, now); err != nil {
			return err
		}
	}
	return nil
}

// checkReferences verifica que producto y ubicaciones referenciadas existan.
func (uc *MovementUseCase) checkReferences(productID, fromLocation, toLocation string) error {
	p, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	for _, locID := range []string{fromLocation, toLocation} {
		if locID == "" {
			continue
		}
		loc, err := uc.locationRepo.GetByID(locID)
		if err != nil {
			return err
		}
		if loc == nil {
			return domain.ErrNotFound
		}
	}
	return nil
}

func balanceOf(b *entity.Balance) int64 {
	if b == nil {
		return 0
	}
	return b.Balance
}
