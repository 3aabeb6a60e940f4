// internal/reports/service.go
package reports

import (
	"context"
	"time"

	"github.com/oogway7h/ShopIA-web/internal/common/logger"
	"github.com/oogway7h/ShopIA-web/internal/models"
)

// Report identifiers, matching the interpreter's download actions.
const (
	ReportVentas      = "ventas"
	ReportClientes    = "clientes"
	ReportMasVendidos = "mas_vendidos"
)

// SalesSource is the slice of the sales repository reports read from.
type SalesSource interface {
	ListVentas(ctx context.Context, desde, hasta string) ([]models.Venta, error)
	SalesByDay(ctx context.Context, desde, hasta string) ([]models.DailySales, error)
	ClientsByMonth(ctx context.Context, monthsBack int) ([]models.MonthlyClients, error)
	ClientSummaries(ctx context.Context) ([]models.ClienteResumen, error)
	TopProducts(ctx context.Context, limit int) ([]models.TopProduct, error)
}

// Service assembles the report payloads. The PDF URLs the interpreter hands
// out serve these payloads; rendering is the frontend's job.
type Service struct {
	source SalesSource
	log    logger.Logger
	now    func() time.Time
}

func NewService(source SalesSource, log logger.Logger) *Service {
	return &Service{source: source, log: log, now: time.Now}
}

// VentasReport is the sales listing payload.
type VentasReport struct {
	GeneradoEn string         `json:"generado_en"`
	Desde      string         `json:"desde,omitempty"`
	Hasta      string         `json:"hasta,omitempty"`
	NumVentas  int            `json:"num_ventas"`
	MontoTotal float64        `json:"monto_total"`
	Ventas     []models.Venta `json:"ventas"`
}

func (s *Service) Ventas(ctx context.Context, desde, hasta string) (*VentasReport, error) {
	ventas, err := s.source.ListVentas(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}
	report := &VentasReport{
		GeneradoEn: s.now().Format(time.RFC3339),
		Desde:      desde,
		Hasta:      hasta,
		NumVentas:  len(ventas),
		Ventas:     ventas,
	}
	for _, v := range ventas {
		report.MontoTotal += v.MontoTotal
	}
	return report, nil
}

// ClientesReport is the client listing payload.
type ClientesReport struct {
	GeneradoEn  string                  `json:"generado_en"`
	NumClientes int                     `json:"num_clientes"`
	Clientes    []models.ClienteResumen `json:"clientes"`
}

func (s *Service) Clientes(ctx context.Context) (*ClientesReport, error) {
	clientes, err := s.source.ClientSummaries(ctx)
	if err != nil {
		return nil, err
	}
	return &ClientesReport{
		GeneradoEn:  s.now().Format(time.RFC3339),
		NumClientes: len(clientes),
		Clientes:    clientes,
	}, nil
}

// MasVendidosReport is the best-sellers payload.
type MasVendidosReport struct {
	GeneradoEn string              `json:"generado_en"`
	Productos  []models.TopProduct `json:"productos"`
}

func (s *Service) MasVendidos(ctx context.Context, limit int) (*MasVendidosReport, error) {
	productos, err := s.source.TopProducts(ctx, limit)
	if err != nil {
		return nil, err
	}
	return &MasVendidosReport{
		GeneradoEn: s.now().Format(time.RFC3339),
		Productos:  productos,
	}, nil
}

// VentasPorDia feeds the sales dashboard chart.
func (s *Service) VentasPorDia(ctx context.Context, desde, hasta string) ([]models.DailySales, error) {
	return s.source.SalesByDay(ctx, desde, hasta)
}

// ClientesPorMes feeds the clients dashboard chart.
func (s *Service) ClientesPorMes(ctx context.Context, monthsBack int) ([]models.MonthlyClients, error) {
	return s.source.ClientsByMonth(ctx, monthsBack)
}
