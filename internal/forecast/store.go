// internal/forecast/store.go
package forecast

import (
	"context"

	"github.com/oogway7h/ShopIA-web/internal/common/database"
	"github.com/oogway7h/ShopIA-web/internal/common/errors"
	"github.com/oogway7h/ShopIA-web/internal/common/logger"
	"github.com/oogway7h/ShopIA-web/internal/models"
)

// PostgresStore persists forecast output. Re-running a period overwrites
// its previous predictions.
type PostgresStore struct {
	db  *database.PostgresClient
	log logger.Logger
}

func NewPostgresStore(db *database.PostgresClient, log logger.Logger) *PostgresStore {
	return &PostgresStore{db: db, log: log}
}

func (s *PostgresStore) SavePredictions(ctx context.Context, predicciones []models.PrediccionVenta) error {
	const query = `
		INSERT INTO predicciones_venta
			(id, periodo, anio, mes, categoria_id, monto_estimado, cantidad_estimada, confianza, fecha_generacion)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (periodo, categoria_id) DO UPDATE SET
			monto_estimado = EXCLUDED.monto_estimado,
			cantidad_estimada = EXCLUDED.cantidad_estimada,
			confianza = EXCLUDED.confianza,
			fecha_generacion = EXCLUDED.fecha_generacion`

	for _, p := range predicciones {
		_, err := s.db.Exec(ctx, query,
			p.ID, p.Periodo, p.Anio, p.Mes, p.CategoriaID,
			p.MontoEstimado, p.CantidadEstimada, p.Confianza, p.FechaGeneracion)
		if err != nil {
			return errors.NewQueryExecutionFailedError("save_predictions", err)
		}
	}
	return nil
}

func (s *PostgresStore) SaveGrowth(ctx context.Context, crecimiento []models.CrecimientoCategoria) error {
	const query = `
		INSERT INTO crecimiento_categorias
			(categoria_id, periodo, monto_actual, monto_anterior, crecimiento_pct)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (periodo, categoria_id) DO UPDATE SET
			monto_actual = EXCLUDED.monto_actual,
			monto_anterior = EXCLUDED.monto_anterior,
			crecimiento_pct = EXCLUDED.crecimiento_pct`

	for _, c := range crecimiento {
		_, err := s.db.Exec(ctx, query,
			c.CategoriaID, c.Periodo, c.MontoActual, c.MontoAnterior, c.CrecimientoPct)
		if err != nil {
			return errors.NewQueryExecutionFailedError("save_growth", err)
		}
	}
	return nil
}

// ListPredictions returns the stored predictions for a period, all periods
// when empty.
func (s *PostgresStore) ListPredictions(ctx context.Context, periodo string) ([]models.PrediccionVenta, error) {
	const query = `
		SELECT id, periodo, anio, mes, categoria_id, monto_estimado, cantidad_estimada, confianza, fecha_generacion
		FROM predicciones_venta
		WHERE ($1 = '' OR periodo = $1)
		ORDER BY periodo DESC, categoria_id`

	rows, err := s.db.Query(ctx, query, periodo)
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("list_predictions", err)
	}
	defer rows.Close()

	var out []models.PrediccionVenta
	for rows.Next() {
		var p models.PrediccionVenta
		if err := rows.Scan(&p.ID, &p.Periodo, &p.Anio, &p.Mes, &p.CategoriaID,
			&p.MontoEstimado, &p.CantidadEstimada, &p.Confianza, &p.FechaGeneracion); err != nil {
			return nil, errors.NewQueryExecutionFailedError("list_predictions", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewQueryExecutionFailedError("list_predictions", err)
	}
	return out, nil
}
