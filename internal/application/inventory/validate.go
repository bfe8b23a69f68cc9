package inventory

import "fmt"

// structuralViolations aplica las reglas que no requieren leer saldos:
// al menos una ubicación y cantidad positiva.
func structuralViolations(fromLocation, toLocation string, qty int64) []string {
	var violations []string
	if fromLocation == "" && toLocation == "" {
		violations = append(violations, "debe especificarse al menos una ubicación (origen o destino)")
	}
	if qty <= 0 {
		violations = append(violations, "la cantidad debe ser positiva")
	}
	return violations
}

// Validate es el chequeo previo de solo lectura para un movimiento: acumula
// TODAS las reglas violadas (ubicaciones faltantes, cantidad no positiva,
// stock insuficiente en el origen) en vez de fallar en la primera, para que
// el caller pueda reportarlas juntas. No escribe nada.
func (uc *MovementUseCase) Validate(productID, fromLocation, toLocation string, qty int64) ([]string, error) {
	violations := structuralViolations(fromLocation, toLocation, qty)

	if fromLocation != "" {
		current, err := uc.GetBalance(productID, fromLocation)
		if err != nil {
			return nil, err
		}
		if current < qty {
			violations = append(violations, fmt.Sprintf(
				"stock insuficiente en %s: disponible %d, solicitado %d", fromLocation, current, qty))
		}
	}
	return violations, nil
}
