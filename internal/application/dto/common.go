package dto

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 || p.Limit > 100 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// LineErrorDTO error de validación de una línea de documento.
type LineErrorDTO struct {
	Line    int    `json:"line"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse cuerpo de error HTTP. Errors va poblado solo en errores de
// validación con detalle por línea.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Errors  []LineErrorDTO `json:"errors,omitempty"`
}
