package usecase

import (
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/token"
)

// LocationUseCase casos de uso CRUD para ubicaciones.
type LocationUseCase struct {
	repo         repository.LocationRepository
	movementRepo repository.MovementRepository
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(repo repository.LocationRepository, movementRepo repository.MovementRepository) *LocationUseCase {
	return &LocationUseCase{repo: repo, movementRepo: movementRepo}
}

// Create crea una nueva ubicación. ID vacío = se genera un token LOC-XXXXXXXX.
func (uc *LocationUseCase) Create(in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.ID == "" {
		in.ID = token.NewLocationID()
	}
	existing, err := uc.repo.GetByID(in.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	location := &entity.Location{ID: in.ID, Name: in.Name, Description: in.Description}
	if err := uc.repo.Create(location); err != nil {
		return nil, err
	}
	return toLocationResponse(location), nil
}

// GetByID obtiene una ubicación con sus movimientos de salida y entrada.
func (uc *LocationUseCase) GetByID(id string) (*dto.LocationDetailResponse, error) {
	location, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrNotFound
	}
	from, err := uc.movementRepo.ListByFromLocation(id)
	if err != nil {
		return nil, err
	}
	to, err := uc.movementRepo.ListByToLocation(id)
	if err != nil {
		return nil, err
	}
	out := &dto.LocationDetailResponse{
		LocationResponse: *toLocationResponse(location),
		MovementsFrom:    toMovementResponses(from),
		MovementsTo:      toMovementResponses(to),
	}
	return out, nil
}

// List lista todas las ubicaciones.
func (uc *LocationUseCase) List() (*dto.LocationListResponse, error) {
	locations, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := &dto.LocationListResponse{Locations: make([]dto.LocationResponse, 0, len(locations))}
	for _, l := range locations {
		out.Locations = append(out.Locations, *toLocationResponse(l))
	}
	out.Total = len(out.Locations)
	return out, nil
}

// Update actualiza nombre y descripción.
func (uc *LocationUseCase) Update(id string, in dto.UpdateLocationRequest) (*dto.LocationResponse, error) {
	location, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	location.Name = in.Name
	location.Description = in.Description
	if err := uc.repo.Update(location); err != nil {
		return nil, err
	}
	return toLocationResponse(location), nil
}

// Delete elimina una ubicación solo si ningún movimiento la referencia como
// origen o destino.
func (uc *LocationUseCase) Delete(id string) error {
	location, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if location == nil {
		return domain.ErrNotFound
	}
	count, err := uc.movementRepo.CountByLocation(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return &domain.ReferentialGuardError{Resource: "ubicación", ID: id, Count: count}
	}
	return uc.repo.Delete(id)
}

func toLocationResponse(l *entity.Location) *dto.LocationResponse {
	return &dto.LocationResponse{ID: l.ID, Name: l.Name, Description: l.Description}
}
