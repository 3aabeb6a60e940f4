// internal/server/server.go
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/oogway7h/ShopIA-web/internal/catalog"
	"github.com/oogway7h/ShopIA-web/internal/common/config"
	"github.com/oogway7h/ShopIA-web/internal/common/database"
	"github.com/oogway7h/ShopIA-web/internal/common/logger"
	"github.com/oogway7h/ShopIA-web/internal/common/observability"
	"github.com/oogway7h/ShopIA-web/internal/forecast"
	"github.com/oogway7h/ShopIA-web/internal/models"
	"github.com/oogway7h/ShopIA-web/internal/nlp"
	"github.com/oogway7h/ShopIA-web/internal/reports"
)

// Server wires the HTTP surface over the domain services.
type Server struct {
	cfg         *config.Config
	log         logger.Logger
	interpreter *nlp.Interpreter
	catalog     *catalog.Service
	reports     *reports.Service
	forecast    *forecast.Service
	predictions PredictionLister
	ventas      VentaStore
	notifier    OrderNotifier
	obs         *observability.Observability

	pg    *database.PostgresClient
	redis *database.RedisClient
	es    *database.ElasticsearchClient

	now func() time.Time
}

// PredictionLister reads stored forecast output.
type PredictionLister interface {
	ListPredictions(ctx context.Context, periodo string) ([]models.PrediccionVenta, error)
}

// VentaStore records new orders.
type VentaStore interface {
	CreateVenta(ctx context.Context, v *models.Venta) error
}

// OrderNotifier fans out order notifications.
type OrderNotifier interface {
	NotifyVenta(ctx context.Context, venta models.Venta, email string) error
}

// Deps carries everything the server needs; nil optional fields disable
// their endpoints' backing checks.
type Deps struct {
	Config      *config.Config
	Log         logger.Logger
	Interpreter *nlp.Interpreter
	Catalog     *catalog.Service
	Reports     *reports.Service
	Forecast    *forecast.Service
	Predictions PredictionLister
	Ventas      VentaStore
	Notifier    OrderNotifier
	Obs         *observability.Observability

	Postgres      *database.PostgresClient
	Redis         *database.RedisClient
	Elasticsearch *database.ElasticsearchClient
}

func New(deps Deps) *Server {
	return &Server{
		cfg:         deps.Config,
		log:         deps.Log,
		interpreter: deps.Interpreter,
		catalog:     deps.Catalog,
		reports:     deps.Reports,
		forecast:    deps.Forecast,
		predictions: deps.Predictions,
		ventas:      deps.Ventas,
		notifier:    deps.Notifier,
		obs:         deps.Obs,
		pg:          deps.Postgres,
		redis:       deps.Redis,
		es:          deps.Elasticsearch,
		now:         time.Now,
	}
}

// Router builds the gin engine with all routes installed.
func (s *Server) Router() *gin.Engine {
	if s.cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.requestLogger())
	if s.obs != nil {
		r.Use(s.observe())
	}

	corsCfg := cors.DefaultConfig()
	if len(s.cfg.Server.CORSOrigins) > 0 {
		corsCfg.AllowOrigins = s.cfg.Server.CORSOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	r.Use(cors.New(corsCfg))

	r.GET("/health", s.handleHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		rep := api.Group("/reportes")
		{
			rep.POST("/comando_voz/", s.handleComandoVoz)

			rep.GET("/ventas/pdf/", s.handleVentasReport)
			rep.GET("/clientes/pdf/", s.handleClientesReport)
			rep.GET("/mas_vendidos/pdf/", s.handleMasVendidosReport)

			rep.GET("/ventas/excel/", s.handleVentasExcel)
			rep.GET("/clientes/excel/", s.handleClientesExcel)
			rep.GET("/mas_vendidos/excel/", s.handleMasVendidosExcel)

			rep.GET("/ventasjson/", s.handleVentasJSON)
			rep.GET("/clientesjson/", s.handleClientesJSON)
		}

		api.GET("/categorias/", s.handleListCategorias)
		api.POST("/categorias/", s.handleCreateCategoria)
		api.PUT("/categorias/:id/", s.handleUpdateCategoria)
		api.DELETE("/categorias/:id/", s.handleDeleteCategoria)
		api.GET("/categorias/:id/productos/", s.handleCategoriaProductos)

		api.POST("/ventas/", s.handleCreateVenta)

		pred := api.Group("/predicciones")
		{
			pred.POST("/generar/", s.handleGenerarPredicciones)
			pred.GET("/", s.handleListPredicciones)
		}
	}

	r.GET("/catalogo/buscar", s.handleCatalogoBuscar)

	return r
}

// HTTPServer wraps the router in an http.Server with configured timeouts.
func (s *Server) HTTPServer() *http.Server {
	readTimeout := time.Duration(s.cfg.Server.ReadTimeout) * time.Millisecond
	writeTimeout := time.Duration(s.cfg.Server.WriteTimeout) * time.Millisecond
	if readTimeout <= 0 {
		readTimeout = 15 * time.Second
	}
	if writeTimeout <= 0 {
		writeTimeout = 30 * time.Second
	}
	return &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.Router(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	ctx := c.Request.Context()
	checks := gin.H{}
	healthy := true

	if s.pg != nil {
		if err := s.pg.Ping(ctx); err != nil {
			checks["postgres"] = err.Error()
			healthy = false
		} else {
			checks["postgres"] = "ok"
		}
	}
	if s.redis != nil {
		if err := s.redis.Ping(ctx); err != nil {
			checks["redis"] = err.Error()
			healthy = false
		} else {
			checks["redis"] = "ok"
		}
	}
	if s.es != nil {
		if err := s.es.Ping(); err != nil {
			checks["elasticsearch"] = err.Error()
			healthy = false
		} else {
			checks["elasticsearch"] = "ok"
		}
	}
	checks["interpreter"] = s.interpreter.IsReady()

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{
		"status":  map[bool]string{true: "ok", false: "degraded"}[healthy],
		"app":     s.cfg.App.Name,
		"version": s.cfg.App.Version,
		"checks":  checks,
	})
}
