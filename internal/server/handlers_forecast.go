// internal/server/handlers_forecast.go
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oogway7h/ShopIA-web/internal/common/metrics"
)

// handleGenerarPredicciones triggers a forecast run on demand.
func (s *Server) handleGenerarPredicciones(c *gin.Context) {
	predicciones, err := s.forecast.Run(c.Request.Context())
	if err != nil {
		metrics.ForecastRuns.WithLabelValues("failure").Inc()
		s.respondError(c, err)
		return
	}
	metrics.ForecastRuns.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, gin.H{
		"generadas":    len(predicciones),
		"predicciones": predicciones,
	})
}

func (s *Server) handleListPredicciones(c *gin.Context) {
	predicciones, err := s.predictions.ListPredictions(c.Request.Context(), c.Query("periodo"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"predicciones": predicciones})
}
