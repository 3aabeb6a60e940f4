// internal/server/server_test.go
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oogway7h/ShopIA-web/internal/catalog"
	"github.com/oogway7h/ShopIA-web/internal/common/config"
	"github.com/oogway7h/ShopIA-web/internal/common/database"
	"github.com/oogway7h/ShopIA-web/internal/common/errors"
	"github.com/oogway7h/ShopIA-web/internal/common/logger"
	"github.com/oogway7h/ShopIA-web/internal/common/metrics"
	"github.com/oogway7h/ShopIA-web/internal/forecast"
	"github.com/oogway7h/ShopIA-web/internal/models"
	"github.com/oogway7h/ShopIA-web/internal/nlp"
	"github.com/oogway7h/ShopIA-web/internal/reports"
)

type staticCategories struct {
	cats []models.Categoria
}

func (s *staticCategories) ListCategories(ctx context.Context) ([]models.Categoria, error) {
	return s.cats, nil
}

type stubSales struct {
	ventas   []models.Venta
	daily    []models.DailySales
	monthly  []models.MonthlyClients
	clientes []models.ClienteResumen
	top      []models.TopProduct
	serie    []models.MonthlyCategorySales
}

func (s *stubSales) ListVentas(ctx context.Context, desde, hasta string) ([]models.Venta, error) {
	return s.ventas, nil
}
func (s *stubSales) SalesByDay(ctx context.Context, desde, hasta string) ([]models.DailySales, error) {
	return s.daily, nil
}
func (s *stubSales) ClientsByMonth(ctx context.Context, monthsBack int) ([]models.MonthlyClients, error) {
	return s.monthly, nil
}
func (s *stubSales) ClientSummaries(ctx context.Context) ([]models.ClienteResumen, error) {
	return s.clientes, nil
}
func (s *stubSales) TopProducts(ctx context.Context, limit int) ([]models.TopProduct, error) {
	return s.top, nil
}
func (s *stubSales) MonthlyCategorySales(ctx context.Context, monthsBack int) ([]models.MonthlyCategorySales, error) {
	return s.serie, nil
}

type stubForecastStore struct{}

func (stubForecastStore) SavePredictions(ctx context.Context, p []models.PrediccionVenta) error {
	return nil
}
func (stubForecastStore) SaveGrowth(ctx context.Context, c []models.CrecimientoCategoria) error {
	return nil
}

type stubVentaStore struct {
	created []models.Venta
	err     error
}

func (s *stubVentaStore) CreateVenta(ctx context.Context, v *models.Venta) error {
	if s.err != nil {
		return s.err
	}
	s.created = append(s.created, *v)
	return nil
}

type fakeNotifier struct {
	notified []models.Venta
	err      error
}

func (f *fakeNotifier) NotifyVenta(ctx context.Context, venta models.Venta, email string) error {
	f.notified = append(f.notified, venta)
	return f.err
}

type stubPredictions struct {
	preds []models.PrediccionVenta
}

func (s *stubPredictions) ListPredictions(ctx context.Context, periodo string) ([]models.PrediccionVenta, error) {
	return s.preds, nil
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "shopia-web"
	cfg.App.Environment = "test"
	cfg.Interpreter.ReloadOnCategoryChange = true
	return cfg
}

func newTestServer(t *testing.T, sales *stubSales) *Server {
	t.Helper()
	log := logger.NewTestLogger(t)

	interp := nlp.NewInterpreter(
		nlp.NewSpanishTokenizer(),
		&staticCategories{cats: []models.Categoria{{ID: 1, Nombre: "Teclados"}}},
		log,
	)
	require.NoError(t, interp.Initialize(context.Background()))

	fc := forecast.NewService(sales, stubForecastStore{}, 3, 12, log)

	return New(Deps{
		Config:      testConfig(),
		Log:         log,
		Interpreter: interp,
		Reports:     reports.NewService(sales, log),
		Forecast:    fc,
		Predictions: &stubPredictions{},
	})
}

func doRequest(t *testing.T, srv *Server, method, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func TestComandoVozReportAction(t *testing.T) {
	srv := newTestServer(t, &stubSales{})

	w := doRequest(t, srv, http.MethodPost, "/api/reportes/comando_voz/",
		[]byte(`{"texto":"reporte de ventas"}`))

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "descargar", resp["accion"])
	assert.Equal(t, "ventas", resp["reporte_id"])
	assert.Equal(t, "/api/reportes/ventas/pdf/", resp["url"])
	assert.Equal(t, "listado_ventas.pdf", resp["fileName"])
	assert.Equal(t, map[string]interface{}{}, resp["params"])
}

func TestComandoVozCategoryAction(t *testing.T) {
	srv := newTestServer(t, &stubSales{})

	w := doRequest(t, srv, http.MethodPost, "/api/reportes/comando_voz/",
		[]byte(`{"texto":"mostrar teclados"}`))

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "navegar", resp["accion"])
	assert.Equal(t, "/categoria/1", resp["url"])
}

func TestComandoVozUnrecognized(t *testing.T) {
	srv := newTestServer(t, &stubSales{})

	w := doRequest(t, srv, http.MethodPost, "/api/reportes/comando_voz/",
		[]byte(`{"texto":"hola que tal"}`))

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, nlp.MsgNotRecognized, resp["error"])
}

func TestComandoVozSchemaRejection(t *testing.T) {
	srv := newTestServer(t, &stubSales{})

	cases := [][]byte{
		[]byte(`{}`),
		[]byte(`{"texto":""}`),
		[]byte(`{"texto":"hola","extra":1}`),
		[]byte(`{"texto":42}`),
		[]byte(`no es json`),
	}
	for _, body := range cases {
		w := doRequest(t, srv, http.MethodPost, "/api/reportes/comando_voz/", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body: %s", body)
		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, string(errors.ErrCodeInvalidRequestFormat), resp["codigo"], "body: %s", body)
	}
}

func TestComandoVozCountsIntents(t *testing.T) {
	srv := newTestServer(t, &stubSales{})
	label := string(nlp.IntentReportePDFVentas)
	before := testutil.ToFloat64(metrics.CommandIntents.WithLabelValues(label))

	w := doRequest(t, srv, http.MethodPost, "/api/reportes/comando_voz/",
		[]byte(`{"texto":"reporte de ventas"}`))
	require.Equal(t, http.StatusOK, w.Code)

	after := testutil.ToFloat64(metrics.CommandIntents.WithLabelValues(label))
	assert.Equal(t, before+1, after)

	beforeNone := testutil.ToFloat64(metrics.CommandIntents.WithLabelValues("none"))
	w = doRequest(t, srv, http.MethodPost, "/api/reportes/comando_voz/",
		[]byte(`{"texto":"hola que tal"}`))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, beforeNone+1, testutil.ToFloat64(metrics.CommandIntents.WithLabelValues("none")))
}

func TestComandoVozNotInitialized(t *testing.T) {
	log := logger.NewNoOpLogger()
	interp := nlp.NewInterpreter(nlp.NewSpanishTokenizer(), &staticCategories{}, log)

	srv := New(Deps{
		Config:      testConfig(),
		Log:         log,
		Interpreter: interp,
		Reports:     reports.NewService(&stubSales{}, log),
		Forecast:    forecast.NewService(&stubSales{}, stubForecastStore{}, 3, 12, log),
		Predictions: &stubPredictions{},
	})

	w := doRequest(t, srv, http.MethodPost, "/api/reportes/comando_voz/",
		[]byte(`{"texto":"reporte de ventas"}`))

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, nlp.MsgNotInitialized, resp["error"])
}

func TestVentasReportEndpoint(t *testing.T) {
	srv := newTestServer(t, &stubSales{ventas: []models.Venta{
		{ID: "v-1", MontoTotal: 349.90, Estado: models.VentaPagada},
	}})

	w := doRequest(t, srv, http.MethodGet, "/api/reportes/ventas/pdf/?fecha_inicio=2026-08-01", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp reports.VentasReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.NumVentas)
	assert.Equal(t, 349.90, resp.MontoTotal)
}

func TestVentasExcelEndpoint(t *testing.T) {
	srv := newTestServer(t, &stubSales{})

	w := doRequest(t, srv, http.MethodGet, "/api/reportes/ventas/excel/", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "listado_ventas.xlsx")
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		w.Header().Get("Content-Type"))
	assert.NotZero(t, w.Body.Len())
}

func TestVentasJSONEndpoint(t *testing.T) {
	srv := newTestServer(t, &stubSales{daily: []models.DailySales{
		{Fecha: "2026-08-30", NumVentas: 2, MontoTotal: 500},
	}})

	w := doRequest(t, srv, http.MethodGet, "/api/reportes/ventasjson/", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string][]models.DailySales
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp["ventas_por_dia"], 1)
	assert.Equal(t, 2, resp["ventas_por_dia"][0].NumVentas)
}

func TestGenerarPrediccionesEndpoint(t *testing.T) {
	srv := newTestServer(t, &stubSales{serie: []models.MonthlyCategorySales{
		{Anio: 2026, Mes: 5, CategoriaID: 1, Cantidad: 10, Monto: 1000},
		{Anio: 2026, Mes: 6, CategoriaID: 1, Cantidad: 20, Monto: 2000},
		{Anio: 2026, Mes: 7, CategoriaID: 1, Cantidad: 30, Monto: 3000},
	}})

	w := doRequest(t, srv, http.MethodPost, "/api/predicciones/generar/", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Generadas    int                      `json:"generadas"`
		Predicciones []models.PrediccionVenta `json:"predicciones"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Generadas)
}

func TestGenerarPrediccionesInsufficientData(t *testing.T) {
	srv := newTestServer(t, &stubSales{})

	w := doRequest(t, srv, http.MethodPost, "/api/predicciones/generar/", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t, &stubSales{})

	w := doRequest(t, srv, http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	checks := resp["checks"].(map[string]interface{})
	assert.Equal(t, true, checks["interpreter"])
}

func TestCreateVentaNotifies(t *testing.T) {
	srv := newTestServer(t, &stubSales{})
	store := &stubVentaStore{}
	notifier := &fakeNotifier{}
	srv.ventas = store
	srv.notifier = notifier

	w := doRequest(t, srv, http.MethodPost, "/api/ventas/",
		[]byte(`{"usuario_id":"u-1","monto_total":349.90,"email":"ana@example.com"}`))

	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, store.created, 1)
	assert.Equal(t, models.VentaPagada, store.created[0].Estado)
	assert.NotEmpty(t, store.created[0].ID)
	require.Len(t, notifier.notified, 1)
	assert.Equal(t, store.created[0].ID, notifier.notified[0].ID)
}

func TestCreateVentaNotificationFailureStillCreated(t *testing.T) {
	srv := newTestServer(t, &stubSales{})
	store := &stubVentaStore{}
	srv.ventas = store
	srv.notifier = &fakeNotifier{err: assert.AnError}

	w := doRequest(t, srv, http.MethodPost, "/api/ventas/",
		[]byte(`{"usuario_id":"u-1","monto_total":100}`))

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, store.created, 1)
}

func TestCreateVentaBadPayload(t *testing.T) {
	srv := newTestServer(t, &stubSales{})
	srv.ventas = &stubVentaStore{}

	w := doRequest(t, srv, http.MethodPost, "/api/ventas/",
		[]byte(`{"monto_total":-5}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// newCatalogTestServer backs the catalog with sqlmock so category writes and
// the interpreter reload can be exercised end to end. The initial category
// load sees an empty catalog.
func newCatalogTestServer(t *testing.T) (*Server, sqlmock.Sqlmock) {
	t.Helper()
	log := logger.NewTestLogger(t)
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := catalog.NewRepository(&database.PostgresClient{DB: db}, log)
	catalogSvc := catalog.NewService(repo, nil, nil, log)
	interp := nlp.NewInterpreter(nlp.NewSpanishTokenizer(), catalogSvc, log)

	mock.ExpectQuery("SELECT id, nombre").
		WillReturnRows(sqlmock.NewRows([]string{"id", "nombre", "descripcion", "created_at"}))
	require.NoError(t, interp.Initialize(context.Background()))

	srv := New(Deps{
		Config:      testConfig(),
		Log:         log,
		Interpreter: interp,
		Catalog:     catalogSvc,
		Reports:     reports.NewService(&stubSales{}, log),
		Forecast:    forecast.NewService(&stubSales{}, stubForecastStore{}, 3, 12, log),
		Predictions: &stubPredictions{},
	})
	return srv, mock
}

func interpretCategory(t *testing.T, srv *Server, texto string) map[string]interface{} {
	t.Helper()
	w := doRequest(t, srv, http.MethodPost, "/api/reportes/comando_voz/",
		[]byte(`{"texto":"`+texto+`"}`))
	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestCreateCategoriaReloadsInterpreter(t *testing.T) {
	srv, mock := newCatalogTestServer(t)

	created := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery("INSERT INTO categorias").
		WithArgs("Monitores", "").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(9, created))
	mock.ExpectQuery("SELECT id, nombre").
		WillReturnRows(sqlmock.NewRows([]string{"id", "nombre", "descripcion", "created_at"}).
			AddRow(9, "Monitores", "", created))

	w := doRequest(t, srv, http.MethodPost, "/api/categorias/",
		[]byte(`{"nombre":"Monitores"}`))
	require.Equal(t, http.StatusCreated, w.Code)

	// the freshly created category is now recognized
	resp := interpretCategory(t, srv, "mostrar monitores")
	assert.Equal(t, "navegar", resp["accion"])
	assert.Equal(t, "/categoria/9", resp["url"])
}

func TestUpdateCategoriaReloadsInterpreter(t *testing.T) {
	srv, mock := newCatalogTestServer(t)

	created := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	mock.ExpectExec("UPDATE categorias").
		WithArgs("Parlantes", "", int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT id, nombre").
		WillReturnRows(sqlmock.NewRows([]string{"id", "nombre", "descripcion", "created_at"}).
			AddRow(9, "Parlantes", "", created))

	w := doRequest(t, srv, http.MethodPut, "/api/categorias/9/",
		[]byte(`{"nombre":"Parlantes"}`))
	require.Equal(t, http.StatusOK, w.Code)

	resp := interpretCategory(t, srv, "mostrar parlantes")
	assert.Equal(t, "navegar", resp["accion"])
	assert.Equal(t, "/categoria/9", resp["url"])
}

func TestDeleteCategoriaReloadsInterpreter(t *testing.T) {
	srv, mock := newCatalogTestServer(t)

	created := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery("INSERT INTO categorias").
		WithArgs("Monitores", "").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(9, created))
	mock.ExpectQuery("SELECT id, nombre").
		WillReturnRows(sqlmock.NewRows([]string{"id", "nombre", "descripcion", "created_at"}).
			AddRow(9, "Monitores", "", created))
	w := doRequest(t, srv, http.MethodPost, "/api/categorias/",
		[]byte(`{"nombre":"Monitores"}`))
	require.Equal(t, http.StatusCreated, w.Code)

	mock.ExpectExec("DELETE FROM categorias").
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT id, nombre").
		WillReturnRows(sqlmock.NewRows([]string{"id", "nombre", "descripcion", "created_at"}))

	w = doRequest(t, srv, http.MethodDelete, "/api/categorias/9/", nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	// the deleted category's rule is gone
	resp := interpretCategory(t, srv, "mostrar monitores")
	assert.Equal(t, nlp.MsgNotRecognized, resp["error"])
}

func TestDeleteCategoriaNotFound(t *testing.T) {
	srv, mock := newCatalogTestServer(t)

	mock.ExpectExec("DELETE FROM categorias").
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	w := doRequest(t, srv, http.MethodDelete, "/api/categorias/5/", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
