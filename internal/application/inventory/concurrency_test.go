package inventory_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Disciplina de bloqueo: todo read-modify-write sobre una fila de saldo dentro
// de una mutación debe leer con GetForUpdate. Una lectura sin lock seguida de
// upsert pierde actualizaciones entre escritores concurrentes de la misma
// clave (en read committed dos transacciones pueden leer el mismo valor
// previo y la segunda pisa el delta de la primera).
// ──────────────────────────────────────────────────────────────────────────────

// lockAuditRunner envuelve el TxRunner en memoria y registra, por transacción,
// qué lecturas de saldo tomaron el lock y cuáles no.
type lockAuditRunner struct {
	store      *memory.Store
	lockedKeys []string // lecturas vía GetForUpdate
	plainKeys  []string // lecturas vía Get (sin lock)
}

func (r *lockAuditRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	balanceRepo repository.BalanceRepository,
) error) error {
	return r.store.Run(ctx, func(movRepo repository.MovementRepository, balanceRepo repository.BalanceRepository) error {
		return fn(movRepo, &lockAuditBalanceRepo{inner: balanceRepo, audit: r})
	})
}

type lockAuditBalanceRepo struct {
	inner repository.BalanceRepository
	audit *lockAuditRunner
}

var _ repository.BalanceRepository = (*lockAuditBalanceRepo)(nil)

func balanceAuditKey(productID, locationID string) string {
	return fmt.Sprintf("%s/%s", productID, locationID)
}

func (b *lockAuditBalanceRepo) Get(productID, locationID string) (*entity.Balance, error) {
	b.audit.plainKeys = append(b.audit.plainKeys, balanceAuditKey(productID, locationID))
	return b.inner.Get(productID, locationID)
}

func (b *lockAuditBalanceRepo) GetForUpdate(productID, locationID string) (*entity.Balance, error) {
	b.audit.lockedKeys = append(b.audit.lockedKeys, balanceAuditKey(productID, locationID))
	return b.inner.GetForUpdate(productID, locationID)
}

func (b *lockAuditBalanceRepo) Upsert(balance *entity.Balance) error { return b.inner.Upsert(balance) }
func (b *lockAuditBalanceRepo) ListByProduct(productID string) ([]*entity.Balance, error) {
	return b.inner.ListByProduct(productID)
}
func (b *lockAuditBalanceRepo) ListByLocation(locationID string) ([]*entity.Balance, error) {
	return b.inner.ListByLocation(locationID)
}
func (b *lockAuditBalanceRepo) ListNonZero() ([]*entity.Balance, error) { return b.inner.ListNonZero() }
func (b *lockAuditBalanceRepo) DeleteAll() error                       { return b.inner.DeleteAll() }
func (b *lockAuditBalanceRepo) SumAll() (int64, error)                 { return b.inner.SumAll() }

func newAuditedEngine(t *testing.T) (*inventory.MovementUseCase, *lockAuditRunner) {
	t.Helper()
	store := memory.NewStore()
	for _, p := range []entity.Product{{ID: "P1", Name: "Tornillo M4"}} {
		p := p
		require.NoError(t, store.Products().Create(&p))
	}
	for _, l := range []entity.Location{
		{ID: "LOC-A", Name: "Bodega A"},
		{ID: "LOC-B", Name: "Bodega B"},
	} {
		l := l
		require.NoError(t, store.Locations().Create(&l))
	}
	audit := &lockAuditRunner{store: store}
	uc := inventory.NewMovementUseCase(audit, store.Products(), store.Locations(), store.Movements(), store.Balances())
	return uc, audit
}

// El alta de un traslado debe bloquear la fila destino igual que la origen:
// el acreedor también hace read-modify-write.
func TestAdd_BloqueaOrigenYDestino(t *testing.T) {
	uc, audit := newAuditedEngine(t)
	mustAdd(t, uc, inventory.MovementInput{ID: "M1", ProductID: "P1", ToLocation: "LOC-A", Qty: 10})

	audit.lockedKeys, audit.plainKeys = nil, nil
	mustAdd(t, uc, inventory.MovementInput{ID: "M2", ProductID: "P1", FromLocation: "LOC-A", ToLocation: "LOC-B", Qty: 5})

	assert.Contains(t, audit.lockedKeys, "P1/LOC-A")
	assert.Contains(t, audit.lockedKeys, "P1/LOC-B")
	assert.Empty(t, audit.plainKeys, "ninguna lectura de saldo dentro de la mutación puede ir sin lock")
}

// La edición toca hasta cuatro filas (reversión + efecto nuevo): todas con lock.
func TestEdit_BloqueaTodasLasFilasQueToca(t *testing.T) {
	uc, audit := newAuditedEngine(t)
	mustAdd(t, uc, inventory.MovementInput{ID: "M1", ProductID: "P1", ToLocation: "LOC-A", Qty: 10})
	mustAdd(t, uc, inventory.MovementInput{ID: "M2", ProductID: "P1", FromLocation: "LOC-A", ToLocation: "LOC-B", Qty: 5})

	audit.lockedKeys, audit.plainKeys = nil, nil
	_, err := uc.Edit(context.Background(), "M2", inventory.MovementInput{ProductID: "P1", FromLocation: "LOC-A", ToLocation: "LOC-B", Qty: 3})
	require.NoError(t, err)

	assert.Contains(t, audit.lockedKeys, "P1/LOC-A")
	assert.Contains(t, audit.lockedKeys, "P1/LOC-B")
	assert.Empty(t, audit.plainKeys)
}

// La reversión del borrado también es read-modify-write en ambos lados.
func TestDelete_BloqueaLasFilasRevertidas(t *testing.T) {
	uc, audit := newAuditedEngine(t)
	mustAdd(t, uc, inventory.MovementInput{ID: "M1", ProductID: "P1", ToLocation: "LOC-A", Qty: 10})
	mustAdd(t, uc, inventory.MovementInput{ID: "M2", ProductID: "P1", FromLocation: "LOC-A", ToLocation: "LOC-B", Qty: 5})

	audit.lockedKeys, audit.plainKeys = nil, nil
	require.NoError(t, uc.Delete(context.Background(), "M2"))

	assert.Contains(t, audit.lockedKeys, "P1/LOC-A")
	assert.Contains(t, audit.lockedKeys, "P1/LOC-B")
	assert.Empty(t, audit.plainKeys)
}

// ──────────────────────────────────────────────────────────────────────────────
// Movimiento borrado entre la lectura previa y la transacción: la edición y
// el borrado releen dentro de la tx, así nunca revierten un efecto que ya no
// está en el libro mayor.
// ──────────────────────────────────────────────────────────────────────────────

// interceptRunner ejecuta un hook justo antes de abrir la transacción,
// simulando a otro escritor que gana la carrera.
type interceptRunner struct {
	store  *memory.Store
	before func()
}

func (r *interceptRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	balanceRepo repository.BalanceRepository,
) error) error {
	if r.before != nil {
		r.before()
		r.before = nil
	}
	return r.store.Run(ctx, fn)
}

func TestEdit_MovimientoBorradoPorOtroEscritor(t *testing.T) {
	store := memory.NewStore()
	for _, p := range []entity.Product{{ID: "P1", Name: "Tornillo M4"}} {
		p := p
		require.NoError(t, store.Products().Create(&p))
	}
	for _, l := range []entity.Location{
		{ID: "LOC-A", Name: "Bodega A"},
		{ID: "LOC-B", Name: "Bodega B"},
	} {
		l := l
		require.NoError(t, store.Locations().Create(&l))
	}
	runner := &interceptRunner{store: store}
	uc := inventory.NewMovementUseCase(runner, store.Products(), store.Locations(), store.Movements(), store.Balances())
	mustAdd(t, uc, inventory.MovementInput{ID: "M1", ProductID: "P1", ToLocation: "LOC-A", Qty: 10})
	mustAdd(t, uc, inventory.MovementInput{ID: "M2", ProductID: "P1", FromLocation: "LOC-A", ToLocation: "LOC-B", Qty: 5})

	// Otro escritor borra M2 después de la lectura previa de Edit pero antes
	// de su transacción.
	runner.before = func() {
		require.NoError(t, store.Movements().Delete("M2"))
	}
	_, err := uc.Edit(context.Background(), "M2", inventory.MovementInput{ProductID: "P1", FromLocation: "LOC-A", ToLocation: "LOC-B", Qty: 3})

	require.ErrorIs(t, err, domain.ErrNotFound)
	// Ningún saldo cambió: sin fila en el libro mayor no hay nada que
	// revertir ni aplicar.
	assert.EqualValues(t, 5, mustBalance(t, uc, "P1", "LOC-A"))
	assert.EqualValues(t, 5, mustBalance(t, uc, "P1", "LOC-B"))
}

func TestDelete_MovimientoBorradoPorOtroEscritor(t *testing.T) {
	store := memory.NewStore()
	for _, p := range []entity.Product{{ID: "P1", Name: "Tornillo M4"}} {
		p := p
		require.NoError(t, store.Products().Create(&p))
	}
	for _, l := range []entity.Location{{ID: "LOC-A", Name: "Bodega A"}} {
		l := l
		require.NoError(t, store.Locations().Create(&l))
	}
	runner := &interceptRunner{store: store}
	uc := inventory.NewMovementUseCase(runner, store.Products(), store.Locations(), store.Movements(), store.Balances())
	mustAdd(t, uc, inventory.MovementInput{ID: "M1", ProductID: "P1", ToLocation: "LOC-A", Qty: 10})

	runner.before = func() {
		require.NoError(t, store.Movements().Delete("M1"))
	}
	err := uc.Delete(context.Background(), "M1")

	require.ErrorIs(t, err, domain.ErrNotFound)
	// La reversión no se aplicó dos veces.
	assert.EqualValues(t, 10, mustBalance(t, uc, "P1", "LOC-A"))
}
