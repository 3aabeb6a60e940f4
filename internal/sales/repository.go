// internal/sales/repository.go
package sales

import (
	"context"

	"github.com/oogway7h/ShopIA-web/internal/common/database"
	"github.com/oogway7h/ShopIA-web/internal/common/errors"
	"github.com/oogway7h/ShopIA-web/internal/common/logger"
	"github.com/oogway7h/ShopIA-web/internal/models"
)

// Repository reads the sales aggregates backing reports and forecasting.
// Only paid orders count toward revenue aggregates.
type Repository struct {
	db  *database.PostgresClient
	log logger.Logger
}

func NewRepository(db *database.PostgresClient, log logger.Logger) *Repository {
	return &Repository{db: db, log: log}
}

// CreateVenta records an order.
func (r *Repository) CreateVenta(ctx context.Context, v *models.Venta) error {
	const query = `
		INSERT INTO ventas (id, usuario_id, fecha, monto_total, direccion, estado)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query, v.ID, v.UsuarioID, v.Fecha, v.MontoTotal, v.Direccion, v.Estado)
	if err != nil {
		return errors.NewQueryExecutionFailedError("create_venta", err)
	}
	return nil
}

// ListVentas returns orders within the inclusive [desde, hasta] date range.
// Empty bounds fall back to the full history.
func (r *Repository) ListVentas(ctx context.Context, desde, hasta string) ([]models.Venta, error) {
	const query = `
		SELECT id, usuario_id, fecha, monto_total, COALESCE(direccion, ''), estado
		FROM ventas
		WHERE ($1 = '' OR fecha >= $1::date)
		  AND ($2 = '' OR fecha < $2::date + INTERVAL '1 day')
		ORDER BY fecha DESC`

	rows, err := r.db.Query(ctx, query, desde, hasta)
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("list_ventas", err)
	}
	defer rows.Close()

	var ventas []models.Venta
	for rows.Next() {
		var v models.Venta
		if err := rows.Scan(&v.ID, &v.UsuarioID, &v.Fecha, &v.MontoTotal, &v.Direccion, &v.Estado); err != nil {
			return nil, errors.NewQueryExecutionFailedError("list_ventas", err)
		}
		ventas = append(ventas, v)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewQueryExecutionFailedError("list_ventas", err)
	}
	return ventas, nil
}

// SalesByDay aggregates paid sales per calendar day in the range.
func (r *Repository) SalesByDay(ctx context.Context, desde, hasta string) ([]models.DailySales, error) {
	const query = `
		SELECT to_char(fecha, 'YYYY-MM-DD') AS dia,
		       COUNT(*) AS num_ventas,
		       COALESCE(SUM(monto_total), 0) AS monto_total
		FROM ventas
		WHERE estado = 'PAGADA'
		  AND ($1 = '' OR fecha >= $1::date)
		  AND ($2 = '' OR fecha < $2::date + INTERVAL '1 day')
		GROUP BY dia
		ORDER BY dia`

	rows, err := r.db.Query(ctx, query, desde, hasta)
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("sales_by_day", err)
	}
	defer rows.Close()

	var out []models.DailySales
	for rows.Next() {
		var d models.DailySales
		if err := rows.Scan(&d.Fecha, &d.NumVentas, &d.MontoTotal); err != nil {
			return nil, errors.NewQueryExecutionFailedError("sales_by_day", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewQueryExecutionFailedError("sales_by_day", err)
	}
	return out, nil
}

// ClientsByMonth counts distinct buyers per month over the last monthsBack
// months.
func (r *Repository) ClientsByMonth(ctx context.Context, monthsBack int) ([]models.MonthlyClients, error) {
	if monthsBack < 1 {
		monthsBack = 12
	}
	const query = `
		SELECT to_char(fecha, 'YYYY-MM') AS mes,
		       COUNT(DISTINCT usuario_id) AS num_clientes
		FROM ventas
		WHERE fecha >= date_trunc('month', NOW()) - ($1 || ' months')::interval
		GROUP BY mes
		ORDER BY mes`

	rows, err := r.db.Query(ctx, query, monthsBack)
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("clients_by_month", err)
	}
	defer rows.Close()

	var out []models.MonthlyClients
	for rows.Next() {
		var m models.MonthlyClients
		if err := rows.Scan(&m.Mes, &m.NumClientes); err != nil {
			return nil, errors.NewQueryExecutionFailedError("clients_by_month", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewQueryExecutionFailedError("clients_by_month", err)
	}
	return out, nil
}

// ClientSummaries lists clients with their purchase totals for the client
// report.
func (r *Repository) ClientSummaries(ctx context.Context) ([]models.ClienteResumen, error) {
	const query = `
		SELECT u.id, u.nombre, u.email,
		       COUNT(v.id) AS num_compras,
		       COALESCE(SUM(v.monto_total), 0) AS total_gastado,
		       COALESCE(to_char(MAX(v.fecha), 'YYYY-MM-DD'), '') AS ultima_compra
		FROM usuarios u
		LEFT JOIN ventas v ON v.usuario_id = u.id AND v.estado = 'PAGADA'
		GROUP BY u.id, u.nombre, u.email
		ORDER BY total_gastado DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("client_summaries", err)
	}
	defer rows.Close()

	var out []models.ClienteResumen
	for rows.Next() {
		var c models.ClienteResumen
		if err := rows.Scan(&c.ID, &c.Nombre, &c.Email, &c.NumCompras, &c.TotalGastado, &c.UltimaCompra); err != nil {
			return nil, errors.NewQueryExecutionFailedError("client_summaries", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewQueryExecutionFailedError("client_summaries", err)
	}
	return out, nil
}

// TopProducts returns the best sellers by units sold.
func (r *Repository) TopProducts(ctx context.Context, limit int) ([]models.TopProduct, error) {
	if limit < 1 || limit > 100 {
		limit = 10
	}
	const query = `
		SELECT p.id, p.nombre, c.nombre AS categoria,
		       SUM(d.cantidad) AS cantidad_vendida,
		       SUM(d.cantidad * d.precio_unitario) AS monto_total
		FROM detalle_ventas d
		JOIN ventas v ON v.id = d.venta_id AND v.estado = 'PAGADA'
		JOIN productos p ON p.id = d.producto_id
		JOIN categorias c ON c.id = p.categoria_id
		GROUP BY p.id, p.nombre, c.nombre
		ORDER BY cantidad_vendida DESC
		LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("top_products", err)
	}
	defer rows.Close()

	var out []models.TopProduct
	for rows.Next() {
		var p models.TopProduct
		if err := rows.Scan(&p.ProductoID, &p.Nombre, &p.Categoria, &p.CantidadVendida, &p.MontoTotal); err != nil {
			return nil, errors.NewQueryExecutionFailedError("top_products", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewQueryExecutionFailedError("top_products", err)
	}
	return out, nil
}

// MonthlyCategorySales returns the per-category monthly training series for
// the forecaster, oldest month first.
func (r *Repository) MonthlyCategorySales(ctx context.Context, monthsBack int) ([]models.MonthlyCategorySales, error) {
	if monthsBack < 1 {
		monthsBack = 12
	}
	const query = `
		SELECT EXTRACT(YEAR FROM v.fecha)::int AS anio,
		       EXTRACT(MONTH FROM v.fecha)::int AS mes,
		       p.categoria_id,
		       SUM(d.cantidad) AS cantidad,
		       SUM(d.cantidad * d.precio_unitario) AS monto
		FROM detalle_ventas d
		JOIN ventas v ON v.id = d.venta_id AND v.estado = 'PAGADA'
		JOIN productos p ON p.id = d.producto_id
		WHERE v.fecha >= date_trunc('month', NOW()) - ($1 || ' months')::interval
		GROUP BY anio, mes, p.categoria_id
		ORDER BY anio, mes, p.categoria_id`

	rows, err := r.db.Query(ctx, query, monthsBack)
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("monthly_category_sales", err)
	}
	defer rows.Close()

	var out []models.MonthlyCategorySales
	for rows.Next() {
		var m models.MonthlyCategorySales
		if err := rows.Scan(&m.Anio, &m.Mes, &m.CategoriaID, &m.Cantidad, &m.Monto); err != nil {
			return nil, errors.NewQueryExecutionFailedError("monthly_category_sales", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewQueryExecutionFailedError("monthly_category_sales", err)
	}
	return out, nil
}
