// internal/forecast/store_test.go
package forecast

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oogway7h/ShopIA-web/internal/common/database"
	"github.com/oogway7h/ShopIA-web/internal/common/logger"
	"github.com/oogway7h/ShopIA-web/internal/models"
)

func newMockStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewPostgresStore(&database.PostgresClient{DB: db}, logger.NewTestLogger(t)), mock
}

func TestSavePredictionsUpserts(t *testing.T) {
	store, mock := newMockStore(t)
	generated := time.Date(2026, 8, 31, 3, 0, 0, 0, time.UTC)

	mock.ExpectExec("INSERT INTO predicciones_venta").
		WithArgs("p-1", "2026-09", 2026, 9, int64(1), 5000.0, 50, 1.0, generated).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.SavePredictions(context.Background(), []models.PrediccionVenta{{
		ID: "p-1", Periodo: "2026-09", Anio: 2026, Mes: 9, CategoriaID: 1,
		MontoEstimado: 5000, CantidadEstimada: 50, Confianza: 1.0, FechaGeneracion: generated,
	}})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveGrowth(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("INSERT INTO crecimiento_categorias").
		WithArgs(int64(1), "2026-07", 2500.0, 2000.0, 25.0).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.SaveGrowth(context.Background(), []models.CrecimientoCategoria{{
		CategoriaID: 1, Periodo: "2026-07", MontoActual: 2500, MontoAnterior: 2000, CrecimientoPct: 25,
	}})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListPredictions(t *testing.T) {
	store, mock := newMockStore(t)
	generated := time.Date(2026, 8, 31, 3, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{
		"id", "periodo", "anio", "mes", "categoria_id",
		"monto_estimado", "cantidad_estimada", "confianza", "fecha_generacion",
	}).AddRow("p-1", "2026-09", 2026, 9, 1, 5000.0, 50, 1.0, generated)
	mock.ExpectQuery("FROM predicciones_venta").
		WithArgs("2026-09").
		WillReturnRows(rows)

	got, err := store.ListPredictions(context.Background(), "2026-09")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].CategoriaID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
