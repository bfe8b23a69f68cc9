package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Violations solo viene en errores de validación (lista completa de reglas violadas).
	Violations []string `json:"violations,omitempty"`
}
