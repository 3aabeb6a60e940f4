// internal/forecast/service.go
package forecast

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/oogway7h/ShopIA-web/internal/common/errors"
	"github.com/oogway7h/ShopIA-web/internal/common/logger"
	"github.com/oogway7h/ShopIA-web/internal/models"
)

// SalesSource supplies the monthly training series.
type SalesSource interface {
	MonthlyCategorySales(ctx context.Context, monthsBack int) ([]models.MonthlyCategorySales, error)
}

// Store persists forecast output.
type Store interface {
	SavePredictions(ctx context.Context, predicciones []models.PrediccionVenta) error
	SaveGrowth(ctx context.Context, crecimiento []models.CrecimientoCategoria) error
}

// Service fits a per-category linear trend over monthly sales and predicts
// the next month. Categories with too little history are skipped.
type Service struct {
	source        SalesSource
	store         Store
	minSamples    int
	historyMonths int
	log           logger.Logger

	now   func() time.Time
	newID func() string
}

func NewService(source SalesSource, store Store, minSamples, historyMonths int, log logger.Logger) *Service {
	if minSamples < 2 {
		minSamples = 3
	}
	if historyMonths < minSamples {
		historyMonths = 12
	}
	return &Service{
		source:        source,
		store:         store,
		minSamples:    minSamples,
		historyMonths: historyMonths,
		log:           log,
		now:           time.Now,
		newID:         uuid.NewString,
	}
}

// Run trains on the recent history and stores next-month predictions plus
// month-over-month growth. It returns the predictions it wrote.
func (s *Service) Run(ctx context.Context) ([]models.PrediccionVenta, error) {
	series, err := s.source.MonthlyCategorySales(ctx, s.historyMonths)
	if err != nil {
		return nil, err
	}

	byCategory := map[int64][]models.MonthlyCategorySales{}
	for _, row := range series {
		byCategory[row.CategoriaID] = append(byCategory[row.CategoriaID], row)
	}

	now := s.now()
	targetYear, targetMonth := nextMonth(now.Year(), int(now.Month()))
	targetIdx := monthIndex(targetYear, targetMonth)
	periodo := fmt.Sprintf("%04d-%02d", targetYear, targetMonth)

	categoryIDs := make([]int64, 0, len(byCategory))
	for id := range byCategory {
		categoryIDs = append(categoryIDs, id)
	}
	sort.Slice(categoryIDs, func(i, j int) bool { return categoryIDs[i] < categoryIDs[j] })

	var predicciones []models.PrediccionVenta
	var crecimiento []models.CrecimientoCategoria
	for _, categoriaID := range categoryIDs {
		rows := byCategory[categoriaID]
		if len(rows) < s.minSamples {
			s.log.Debug("skipping category with short history", map[string]interface{}{
				"categoria_id": categoriaID,
				"samples":      len(rows),
			})
			continue
		}
		sort.Slice(rows, func(i, j int) bool {
			return monthIndex(rows[i].Anio, rows[i].Mes) < monthIndex(rows[j].Anio, rows[j].Mes)
		})

		base := monthIndex(rows[0].Anio, rows[0].Mes)
		montoPoints := make([]point, 0, len(rows))
		cantidadPoints := make([]point, 0, len(rows))
		for _, row := range rows {
			x := float64(monthIndex(row.Anio, row.Mes) - base)
			montoPoints = append(montoPoints, point{x: x, y: row.Monto})
			cantidadPoints = append(cantidadPoints, point{x: x, y: float64(row.Cantidad)})
		}

		montoTrend := fitLinear(montoPoints)
		cantidadTrend := fitLinear(cantidadPoints)
		x := float64(targetIdx - base)

		predicciones = append(predicciones, models.PrediccionVenta{
			ID:               s.newID(),
			Periodo:          periodo,
			Anio:             targetYear,
			Mes:              targetMonth,
			CategoriaID:      categoriaID,
			MontoEstimado:    round2(montoTrend.At(x)),
			CantidadEstimada: int(math.Round(cantidadTrend.At(x))),
			Confianza:        round2(montoTrend.R2),
			FechaGeneracion:  now,
		})

		last := rows[len(rows)-1]
		prev := rows[len(rows)-2]
		growth := models.CrecimientoCategoria{
			CategoriaID:   categoriaID,
			Periodo:       fmt.Sprintf("%04d-%02d", last.Anio, last.Mes),
			MontoActual:   last.Monto,
			MontoAnterior: prev.Monto,
		}
		if prev.Monto != 0 {
			growth.CrecimientoPct = round2((last.Monto - prev.Monto) / prev.Monto * 100)
		}
		crecimiento = append(crecimiento, growth)
	}

	if len(predicciones) == 0 {
		return nil, errors.NewForecastInsufficientDataError(
			fmt.Sprintf("no category reached %d months of history", s.minSamples))
	}

	if err := s.store.SavePredictions(ctx, predicciones); err != nil {
		return nil, err
	}
	if err := s.store.SaveGrowth(ctx, crecimiento); err != nil {
		return nil, err
	}

	s.log.Info("forecast run complete", map[string]interface{}{
		"periodo":    periodo,
		"categorias": len(predicciones),
	})
	return predicciones, nil
}

func monthIndex(year, month int) int {
	return year*12 + (month - 1)
}

func nextMonth(year, month int) (int, int) {
	if month == 12 {
		return year + 1, 1
	}
	return year, month + 1
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
