// internal/models/forecast.go
package models

import "time"

// PrediccionVenta is a stored per-category sales prediction for one period.
type PrediccionVenta struct {
	ID              string    `json:"id" db:"id"`
	Periodo         string    `json:"periodo" db:"periodo"` // "2026-09"
	Anio            int       `json:"anio" db:"anio"`
	Mes             int       `json:"mes" db:"mes"`
	CategoriaID     int64     `json:"categoria_id" db:"categoria_id"`
	MontoEstimado   float64   `json:"monto_estimado" db:"monto_estimado"`
	CantidadEstimada int      `json:"cantidad_estimada" db:"cantidad_estimada"`
	Confianza       float64   `json:"confianza" db:"confianza"`
	FechaGeneracion time.Time `json:"fecha_generacion" db:"fecha_generacion"`
}

// CrecimientoCategoria captures month-over-month growth per category.
type CrecimientoCategoria struct {
	CategoriaID      int64   `json:"categoria_id"`
	Periodo          string  `json:"periodo"`
	MontoActual      float64 `json:"monto_actual"`
	MontoAnterior    float64 `json:"monto_anterior"`
	CrecimientoPct   float64 `json:"crecimiento_pct"`
}
