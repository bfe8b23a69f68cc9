package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/memory"
)

func TestRun_CommitPublicaLosCambios(t *testing.T) {
	store := memory.NewStore()

	err := store.Run(context.Background(), func(movRepo repository.MovementRepository, balanceRepo repository.BalanceRepository) error {
		if err := movRepo.Create(&entity.Movement{ID: "M1", ProductID: "P1", ToLocation: "LOC-A", Qty: 5}); err != nil {
			return err
		}
		return balanceRepo.Upsert(&entity.Balance{ProductID: "P1", LocationID: "LOC-A", Balance: 5})
	})
	require.NoError(t, err)

	m, err := store.Movements().GetByID("M1")
	require.NoError(t, err)
	require.NotNil(t, m)
	b, err := store.Balances().Get("P1", "LOC-A")
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.EqualValues(t, 5, b.Balance)
}

// Un error dentro de la transacción descarta el clon completo: ninguna de las
// escrituras previas al error sobrevive.
func TestRun_ErrorDescartaTodo(t *testing.T) {
	store := memory.NewStore()
	require.NoError(t, store.Balances().Upsert(&entity.Balance{ProductID: "P1", LocationID: "LOC-A", Balance: 10}))

	boom := errors.New("boom")
	err := store.Run(context.Background(), func(movRepo repository.MovementRepository, balanceRepo repository.BalanceRepository) error {
		if err := movRepo.Create(&entity.Movement{ID: "M1", ProductID: "P1", ToLocation: "LOC-A", Qty: 5}); err != nil {
			return err
		}
		if err := balanceRepo.Upsert(&entity.Balance{ProductID: "P1", LocationID: "LOC-A", Balance: 999}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	m, err := store.Movements().GetByID("M1")
	require.NoError(t, err)
	assert.Nil(t, m)
	b, err := store.Balances().Get("P1", "LOC-A")
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.EqualValues(t, 10, b.Balance, "el saldo previo queda intacto")
}

// Update sobre un movimiento inexistente devuelve ErrNotFound, igual que el
// UPDATE de PostgreSQL que no afecta filas.
func TestMovementUpdate_NoExiste(t *testing.T) {
	store := memory.NewStore()

	err := store.Movements().Update(&entity.Movement{ID: "M1", ProductID: "P1", ToLocation: "LOC-A", Qty: 5})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

// La transacción ve sus propias escrituras antes del commit.
func TestRun_LecturaDeEscriturasPropias(t *testing.T) {
	store := memory.NewStore()

	err := store.Run(context.Background(), func(movRepo repository.MovementRepository, balanceRepo repository.BalanceRepository) error {
		if err := balanceRepo.Upsert(&entity.Balance{ProductID: "P1", LocationID: "LOC-A", Balance: 3}); err != nil {
			return err
		}
		b, err := balanceRepo.Get("P1", "LOC-A")
		if err != nil {
			return err
		}
		require.NotNil(t, b)
		assert.EqualValues(t, 3, b.Balance)
		return nil
	})
	require.NoError(t, err)
}
