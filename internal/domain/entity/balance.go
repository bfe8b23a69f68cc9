package entity

import "time"

// Balance representa el saldo materializado de un producto en una ubicación,
// derivado de los movimientos del libro mayor. La fila se crea con el primer
// movimiento que toca el par (producto, ubicación) y persiste aunque el saldo
// llegue a cero; el saldo puede ser negativo (ediciones y borrados no
// re-verifican suficiencia).
type Balance struct {
	ProductID   string
	LocationID  string
	Balance     int64
	LastUpdated time.Time
}
