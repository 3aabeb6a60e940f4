// internal/server/handlers_sales.go
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/oogway7h/ShopIA-web/internal/common/errors"
	"github.com/oogway7h/ShopIA-web/internal/models"
)

// handleCreateVenta records an order and fans out the confirmation
// notification. Notification failures never fail the sale.
func (s *Server) handleCreateVenta(c *gin.Context) {
	var payload struct {
		UsuarioID  string  `json:"usuario_id" binding:"required"`
		MontoTotal float64 `json:"monto_total" binding:"required,gt=0"`
		Direccion  string  `json:"direccion"`
		Email      string  `json:"email"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		s.respondError(c, errors.NewInvalidRequestFormatError(err.Error()))
		return
	}

	venta := &models.Venta{
		ID:         uuid.NewString(),
		UsuarioID:  payload.UsuarioID,
		Fecha:      s.now(),
		MontoTotal: payload.MontoTotal,
		Direccion:  payload.Direccion,
		Estado:     models.VentaPagada,
	}
	if err := s.ventas.CreateVenta(c.Request.Context(), venta); err != nil {
		s.respondError(c, err)
		return
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyVenta(c.Request.Context(), *venta, payload.Email); err != nil {
			s.log.WithError(err).Warn("order notification failed", map[string]interface{}{
				"venta_id": venta.ID,
			})
		}
	}

	c.JSON(http.StatusCreated, venta)
}
