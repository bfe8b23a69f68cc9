package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC  *usecase.ProductUseCase
	LocationUC *usecase.LocationUseCase
	Movements  *inventory.MovementUseCase
	Reports    *inventory.ReportUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.Reports)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Get("/:id/summary", productHandler.Summary)

	// Locations
	locations := api.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC, deps.Reports)
	locations.Post("/", locationHandler.Create)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.GetByID)
	locations.Put("/:id", locationHandler.Update)
	locations.Delete("/:id", locationHandler.Delete)
	locations.Get("/:id/summary", locationHandler.Summary)

	// Movements (libro mayor)
	movements := api.Group("/movements")
	movementHandler := NewMovementHandler(deps.Movements)
	movements.Post("/", movementHandler.Create)
	movements.Post("/validate", movementHandler.Validate)
	movements.Get("/", movementHandler.List)
	movements.Get("/:id", movementHandler.GetByID)
	movements.Put("/:id", movementHandler.Update)
	movements.Delete("/:id", movementHandler.Delete)

	// Balances y reportes
	balanceHandler := NewBalanceHandler(deps.Movements, deps.Reports)
	balances := api.Group("/balances")
	balances.Get("/report", balanceHandler.Report)
	balances.Post("/recalculate", balanceHandler.Recalculate)
	balances.Get("/:product_id/:location_id", balanceHandler.Get)

	api.Get("/dashboard", balanceHandler.Dashboard)
}
