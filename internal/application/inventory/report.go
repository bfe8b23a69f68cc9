package inventory

import (
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// ReportUseCase vistas de solo lectura sobre la tabla de saldos: reporte de
// saldos distintos de cero, resúmenes por producto/ubicación y contadores
// del tablero. No escribe nada.
type ReportUseCase struct {
	productRepo  repository.ProductRepository
	locationRepo repository.LocationRepository
	movementRepo repository.MovementRepository
	balanceRepo  repository.BalanceRepository
}

// NewReportUseCase construye el caso de uso de reportes.
func NewReportUseCase(
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
	movementRepo repository.MovementRepository,
	balanceRepo repository.BalanceRepository,
) *ReportUseCase {
	return &ReportUseCase{
		productRepo:  productRepo,
		locationRepo: locationRepo,
		movementRepo: movementRepo,
		balanceRepo:  balanceRepo,
	}
}

// BalanceReport arma el reporte: filas con saldo ≠ 0 ordenadas por
// (product_id, location_id) con nombres resueltos, más los escalares de
// resumen. TotalUnits se calcula sobre TODAS las filas almacenadas,
// incluidas las que están en cero.
func (uc *ReportUseCase) BalanceReport() (*dto.BalanceReportResponse, error) {
	balances, err := uc.balanceRepo.ListNonZero()
	if err != nil {
		return nil, err
	}

	rows := make([]dto.BalanceRow, 0, len(balances))
	stats := dto.BalanceStats{}
	for _, b := range balances {
		product, err := uc.productRepo.GetByID(b.ProductID)
		if err != nil {
			return nil, err
		}
		location, err := uc.locationRepo.GetByID(b.LocationID)
		if err != nil {
			return nil, err
		}
		if product == nil || location == nil {
			continue
		}
		rows = append(rows, dto.BalanceRow{
			ProductID:    b.ProductID,
			ProductName:  product.Name,
			LocationID:   b.LocationID,
			LocationName: location.Name,
			Balance:      b.Balance,
		})
		if b.Balance > 0 {
			stats.PositiveCount++
		} else {
			stats.NegativeCount++
		}
	}

	total, err := uc.balanceRepo.SumAll()
	if err != nil {
		return nil, err
	}
	stats.TotalUnits = total

	return &dto.BalanceReportResponse{Balances: rows, Stats: stats}, nil
}

// ProductSummary resume el stock de un producto: total (suma de todos sus
// saldos, negativos incluidos) y desglose por ubicación de los saldos
// estrictamente positivos.
func (uc *ReportUseCase) ProductSummary(productID string) (*dto.ProductSummaryResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	balances, err := uc.balanceRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}

	out := &dto.ProductSummaryResponse{
		ProductID:          product.ID,
		ProductName:        product.Name,
		ProductDescription: product.Description,
		LocationsWithStock: []dto.LocationStock{},
	}
	for _, b := range balances {
		out.TotalStock += b.Balance
		if b.Balance <= 0 {
			continue
		}
		location, err := uc.locationRepo.GetByID(b.LocationID)
		if err != nil {
			return nil, err
		}
		name := ""
		if location != nil {
			name = location.Name
		}
		out.LocationsWithStock = append(out.LocationsWithStock, dto.LocationStock{
			LocationID:   b.LocationID,
			LocationName: name,
			Balance:      b.Balance,
			LastUpdated:  b.LastUpdated,
		})
	}
	out.TotalLocations = len(out.LocationsWithStock)
	return out, nil
}

// LocationSummary resume una ubicación: productos con saldo positivo y el
// total de unidades (solo positivos cuentan).
func (uc *ReportUseCase) LocationSummary(locationID string) (*dto.LocationSummaryResponse, error) {
	location, err := uc.locationRepo.GetByID(locationID)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrNotFound
	}

	balances, err := uc.balanceRepo.ListByLocation(locationID)
	if err != nil {
		return nil, err
	}

	out := &dto.LocationSummaryResponse{
		LocationID:          location.ID,
		LocationName:        location.Name,
		LocationDescription: location.Description,
		ProductsInLocation:  []dto.ProductStock{},
	}
	for _, b := range balances {
		if b.Balance <= 0 {
			continue
		}
		product, err := uc.productRepo.GetByID(b.ProductID)
		if err != nil {
			return nil, err
		}
		name := ""
		if product != nil {
			name = product.Name
		}
		out.TotalItems += b.Balance
		out.ProductsInLocation = append(out.ProductsInLocation, dto.ProductStock{
			ProductID:   b.ProductID,
			ProductName: name,
			Balance:     b.Balance,
			LastUpdated: b.LastUpdated,
		})
	}
	out.TotalProductTypes = len(out.ProductsInLocation)
	return out, nil
}

// Dashboard contadores globales: productos, ubicaciones, movimientos y
// pares con saldo activo (≠ 0).
func (uc *ReportUseCase) Dashboard() (*dto.DashboardResponse, error) {
	products, err := uc.productRepo.List()
	if err != nil {
		return nil, err
	}
	locations, err := uc.locationRepo.List()
	if err != nil {
		return nil, err
	}
	movementCount, err := uc.movementRepo.Count()
	if err != nil {
		return nil, err
	}
	nonZero, err := uc.balanceRepo.ListNonZero()
	if err != nil {
		return nil, err
	}
	return &dto.DashboardResponse{
		ProductCount:  int64(len(products)),
		LocationCount: int64(len(locations)),
		MovementCount: movementCount,
		BalanceCount:  len(nonZero),
	}, nil
}
