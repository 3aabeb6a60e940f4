// internal/models/sales.go
package models

import "time"

// Venta statuses mirror the storefront checkout lifecycle.
const (
	VentaPendiente = "PENDIENTE"
	VentaPagada    = "PAGADA"
	VentaEnviada   = "ENVIADA"
	VentaCancelada = "CANCELADA"
)

// Venta is a completed (or in-flight) storefront order.
type Venta struct {
	ID         string    `json:"id" db:"id"`
	UsuarioID  string    `json:"usuario_id" db:"usuario_id"`
	Fecha      time.Time `json:"fecha" db:"fecha"`
	MontoTotal float64   `json:"monto_total" db:"monto_total"`
	Direccion  string    `json:"direccion" db:"direccion"`
	Estado     string    `json:"estado" db:"estado"`
}

// DetalleVenta is a single line item of a sale.
type DetalleVenta struct {
	ID             string  `json:"id" db:"id"`
	VentaID        string  `json:"venta_id" db:"venta_id"`
	ProductoID     int64   `json:"producto_id" db:"producto_id"`
	Cantidad       int     `json:"cantidad" db:"cantidad"`
	PrecioUnitario float64 `json:"precio_unitario" db:"precio_unitario"`
}

// DailySales is one row of the sales-per-day aggregate used by reports.
type DailySales struct {
	Fecha      string  `json:"fecha"`
	NumVentas  int     `json:"num_ventas"`
	MontoTotal float64 `json:"monto_total"`
}

// MonthlyClients is one row of the clients-per-month aggregate.
type MonthlyClients struct {
	Mes         string `json:"mes"`
	NumClientes int    `json:"num_clientes"`
}

// TopProduct is one row of the top-sellers aggregate.
type TopProduct struct {
	ProductoID     int64   `json:"producto_id"`
	Nombre         string  `json:"nombre"`
	Categoria      string  `json:"categoria"`
	CantidadVendida int    `json:"cantidad_vendida"`
	MontoTotal     float64 `json:"monto_total"`
}

// ClienteResumen is one row of the client listing report.
type ClienteResumen struct {
	ID           string  `json:"id"`
	Nombre       string  `json:"nombre"`
	Email        string  `json:"email"`
	NumCompras   int     `json:"num_compras"`
	TotalGastado float64 `json:"total_gastado"`
	UltimaCompra string  `json:"ultima_compra"`
}

// MonthlyCategorySales is the (year, month, category) sales aggregate the
// forecasting job trains on.
type MonthlyCategorySales struct {
	Anio        int     `json:"anio"`
	Mes         int     `json:"mes"`
	CategoriaID int64   `json:"categoria_id"`
	Cantidad    int     `json:"cantidad"`
	Monto       float64 `json:"monto"`
}
