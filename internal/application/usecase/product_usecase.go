package usecase

import (
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/token"
)

// ProductUseCase casos de uso CRUD para productos. Los saldos no se tocan
// aquí: solo el motor de movimientos los deriva.
type ProductUseCase struct {
	repo         repository.ProductRepository
	movementRepo repository.MovementRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, movementRepo repository.MovementRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, movementRepo: movementRepo}
}

// Create crea un nuevo producto. ID vacío = se genera un token PRD-XXXXXXXX.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.ID == "" {
		in.ID = token.NewProductID()
	}
	existing, err := uc.repo.GetByID(in.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	product := &entity.Product{ID: in.ID, Name: in.Name, Description: in.Description}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto con su historial de movimientos (más recientes primero).
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductDetailResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	movements, err := uc.movementRepo.ListByProduct(id)
	if err != nil {
		return nil, err
	}
	out := &dto.ProductDetailResponse{
		ProductResponse: *toProductResponse(product),
		Movements:       toMovementResponses(movements),
	}
	return out, nil
}

// List lista todos los productos.
func (uc *ProductUseCase) List() (*dto.ProductListResponse, error) {
	products, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := &dto.ProductListResponse{Products: make([]dto.ProductResponse, 0, len(products))}
	for _, p := range products {
		out.Products = append(out.Products, *toProductResponse(p))
	}
	out.Total = len(out.Products)
	return out, nil
}

// Update actualiza nombre y descripción. El ID es estable y no se cambia.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	product.Name = in.Name
	product.Description = in.Description
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto solo si ningún movimiento lo referencia
// (guarda de integridad referencial).
func (uc *ProductUseCase) Delete(id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	count, err := uc.movementRepo.CountByProduct(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return &domain.ReferentialGuardError{Resource: "producto", ID: id, Count: count}
	}
	return uc.repo.Delete(id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{ID: p.ID, Name: p.Name, Description: p.Description}
}

func toMovementResponses(movements []*entity.Movement) []dto.MovementResponse {
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.MovementResponse{
			ID:           m.ID,
			ProductID:    m.ProductID,
			FromLocation: m.FromLocation,
			ToLocation:   m.ToLocation,
			Qty:          m.Qty,
			Timestamp:    m.Timestamp,
		})
	}
	return out
}
