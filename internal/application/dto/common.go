package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// FilterQuery parámetros de filtro comunes a inventario, resumen, gráficos y reporte.
// MinQuantity ausente = 0.
type FilterQuery struct {
	Supplier    string `query:"supplier"`
	MinQuantity *int   `query:"min_quantity"`
}

// FilterDTO criterio efectivamente aplicado, devuelto en cada respuesta.
type FilterDTO struct {
	Supplier    string `json:"supplier"`
	MinQuantity int    `json:"min_quantity"`
}

// SnapshotMetaDTO identifica el snapshot del que sale una respuesta.
type SnapshotMetaDTO struct {
	ID               string `json:"id"`
	Version          uint64 `json:"version"`
	RefreshedAt      string `json:"refreshed_at"`       // RFC3339
	RefreshedAtLabel string `json:"refreshed_at_label"` // HH:MM:SS
}
