package entity

import "time"

// Movement representa un movimiento de inventario en el libro mayor.
// FromLocation y ToLocation son opcionales ("" = no aplica), pero al menos
// una debe estar presente: solo To = entrada, solo From = salida, ambas =
// traslado entre ubicaciones.
type Movement struct {
	ID           string
	ProductID    string
	FromLocation string
	ToLocation   string
	Qty          int64
	Timestamp    time.Time
}

// HasFrom indica si el movimiento descuenta stock de una ubicación origen.
func (m *Movement) HasFrom() bool { return m.FromLocation != "" }

// HasTo indica si el movimiento acredita stock en una ubicación destino.
func (m *Movement) HasTo() bool { return m.ToLocation != "" }
