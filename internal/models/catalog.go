// internal/models/catalog.go
package models

import "time"

// Categoria is a product category from the catalog. Category names feed the
// interpreter's dynamic entity rules.
type Categoria struct {
	ID          int64     `json:"id" db:"id"`
	Nombre      string    `json:"nombre" db:"nombre"`
	Descripcion string    `json:"descripcion,omitempty" db:"descripcion"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Producto is a catalog product.
type Producto struct {
	ID           int64     `json:"id" db:"id"`
	Nombre       string    `json:"nombre" db:"nombre"`
	Marca        string    `json:"marca" db:"marca"`
	Descripcion  string    `json:"descripcion" db:"descripcion"`
	Precio       float64   `json:"precio" db:"precio"`
	Stock        int       `json:"stock" db:"stock"`
	CategoriaID  int64     `json:"categoria_id" db:"categoria_id"`
	URLImagen    string    `json:"url_imagen_principal,omitempty" db:"url_imagen_principal"`
	Descuento    float64   `json:"descuento" db:"descuento"`
	FechaCreacion time.Time `json:"fecha_creacion" db:"fecha_creacion"`
}

// ProductSearchQuery carries the filters the catalog search endpoint accepts.
// Keys mirror the interpreter's output parameters.
type ProductSearchQuery struct {
	Search      string `form:"search" json:"search"`
	Categoria   string `form:"categoria" json:"categoria"`
	PrecioGte   *int   `form:"precio__gte" json:"precio__gte,omitempty"`
	PrecioLte   *int   `form:"precio__lte" json:"precio__lte,omitempty"`
	FechaInicio string `form:"fecha_inicio" json:"fecha_inicio,omitempty"`
	FechaFin    string `form:"fecha_fin" json:"fecha_fin,omitempty"`
	Page        int    `form:"page" json:"page"`
	Size        int    `form:"size" json:"size"`
}
