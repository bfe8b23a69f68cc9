package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/memory"
)

func newLocationUseCase(t *testing.T) (*usecase.LocationUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	return usecase.NewLocationUseCase(store.Locations(), store.Movements()), store
}

func TestLocationCreate(t *testing.T) {
	uc, _ := newLocationUseCase(t)

	out, err := uc.Create(dto.CreateLocationRequest{ID: "LOC-A", Name: "Bodega A", Description: "Pasillo 1"})
	require.NoError(t, err)

	assert.Equal(t, "LOC-A", out.ID)
	assert.Equal(t, "Bodega A", out.Name)
}

func TestLocationCreate_GeneraToken(t *testing.T) {
	uc, _ := newLocationUseCase(t)

	out, err := uc.Create(dto.CreateLocationRequest{Name: "Bodega B"})
	require.NoError(t, err)

	assert.Regexp(t, `^LOC-[0-9A-F]{8}$`, out.ID)
}

func TestLocationCreate_NombreObligatorio(t *testing.T) {
	uc, _ := newLocationUseCase(t)

	_, err := uc.Create(dto.CreateLocationRequest{ID: "LOC-A"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLocationCreate_Duplicada(t *testing.T) {
	uc, _ := newLocationUseCase(t)
	_, err := uc.Create(dto.CreateLocationRequest{ID: "LOC-A", Name: "Bodega A"})
	require.NoError(t, err)

	_, err = uc.Create(dto.CreateLocationRequest{ID: "LOC-A", Name: "Otra"})
	require.ErrorIs(t, err, domain.ErrDuplicate)
}

// El detalle separa los movimientos donde la ubicación es origen de aquellos
// donde es destino.
func TestLocationGetByID_SeparaOrigenYDestino(t *testing.T) {
	uc, store := newLocationUseCase(t)
	_, err := uc.Create(dto.CreateLocationRequest{ID: "LOC-A", Name: "Bodega A"})
	require.NoError(t, err)
	require.NoError(t, store.Movements().Create(&entity.Movement{ID: "M1", ProductID: "P1", ToLocation: "LOC-A", Qty: 5}))
	require.NoError(t, store.Movements().Create(&entity.Movement{ID: "M2", ProductID: "P1", FromLocation: "LOC-A", ToLocation: "LOC-B", Qty: 2}))
	require.NoError(t, store.Movements().Create(&entity.Movement{ID: "M3", ProductID: "P1", ToLocation: "LOC-C", Qty: 9}))

	detail, err := uc.GetByID("LOC-A")
	require.NoError(t, err)

	require.Len(t, detail.MovementsFrom, 1)
	assert.Equal(t, "M2", detail.MovementsFrom[0].ID)
	require.Len(t, detail.MovementsTo, 1)
	assert.Equal(t, "M1", detail.MovementsTo[0].ID)
}

func TestLocationGetByID_NoEncontrada(t *testing.T) {
	uc, _ := newLocationUseCase(t)
	_, err := uc.GetByID("NADA")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLocationUpdate(t *testing.T) {
	uc, _ := newLocationUseCase(t)
	_, err := uc.Create(dto.CreateLocationRequest{ID: "LOC-A", Name: "Bodega A"})
	require.NoError(t, err)

	out, err := uc.Update("LOC-A", dto.UpdateLocationRequest{Name: "Bodega Central", Description: "Reubicada"})
	require.NoError(t, err)

	assert.Equal(t, "LOC-A", out.ID)
	assert.Equal(t, "Bodega Central", out.Name)
	assert.Equal(t, "Reubicada", out.Description)
}

func TestLocationDelete_SinMovimientos(t *testing.T) {
	uc, _ := newLocationUseCase(t)
	_, err := uc.Create(dto.CreateLocationRequest{ID: "LOC-A", Name: "Bodega A"})
	require.NoError(t, err)

	require.NoError(t, uc.Delete("LOC-A"))

	_, err = uc.GetByID("LOC-A")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

// La guarda cuenta referencias como origen Y como destino.
func TestLocationDelete_GuardaReferencial(t *testing.T) {
	uc, store := newLocationUseCase(t)
	_, err := uc.Create(dto.CreateLocationRequest{ID: "LOC-A", Name: "Bodega A"})
	require.NoError(t, err)
	require.NoError(t, store.Movements().Create(&entity.Movement{ID: "M1", ProductID: "P1", ToLocation: "LOC-A", Qty: 5}))
	require.NoError(t, store.Movements().Create(&entity.Movement{ID: "M2", ProductID: "P1", FromLocation: "LOC-A", Qty: 1}))

	err = uc.Delete("LOC-A")

	var gErr *domain.ReferentialGuardError
	require.ErrorAs(t, err, &gErr)
	assert.Equal(t, "ubicación", gErr.Resource)
	assert.EqualValues(t, 2, gErr.Count)
}
