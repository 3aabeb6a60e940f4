// internal/server/handlers_reports.go
package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/oogway7h/ShopIA-web/internal/common/errors"
	"github.com/oogway7h/ShopIA-web/internal/common/metrics"
	"github.com/oogway7h/ShopIA-web/internal/reports"
)

func (s *Server) respondError(c *gin.Context, err error) {
	if stdErr, ok := err.(*errors.StandardError); ok {
		body := gin.H{
			"error":  stdErr.Message,
			"codigo": stdErr.Code,
		}
		if stdErr.Details != "" {
			body["detalles"] = stdErr.Details
		}
		c.JSON(errors.HTTPStatus(stdErr.Code), body)
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func (s *Server) handleVentasReport(c *gin.Context) {
	report, err := s.reports.Ventas(c.Request.Context(), c.Query("fecha_inicio"), c.Query("fecha_fin"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	metrics.ReportsGenerated.WithLabelValues(reports.ReportVentas, "json").Inc()
	c.JSON(http.StatusOK, report)
}

func (s *Server) handleClientesReport(c *gin.Context) {
	report, err := s.reports.Clientes(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	metrics.ReportsGenerated.WithLabelValues(reports.ReportClientes, "json").Inc()
	c.JSON(http.StatusOK, report)
}

func (s *Server) handleMasVendidosReport(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	report, err := s.reports.MasVendidos(c.Request.Context(), limit)
	if err != nil {
		s.respondError(c, err)
		return
	}
	metrics.ReportsGenerated.WithLabelValues(reports.ReportMasVendidos, "json").Inc()
	c.JSON(http.StatusOK, report)
}

func (s *Server) handleVentasExcel(c *gin.Context) {
	f, err := s.reports.VentasExcel(c.Request.Context(), c.Query("fecha_inicio"), c.Query("fecha_fin"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.writeWorkbook(c, f, "listado_ventas.xlsx", reports.ReportVentas)
}

func (s *Server) handleClientesExcel(c *gin.Context) {
	f, err := s.reports.ClientesExcel(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.writeWorkbook(c, f, "listado_clientes.xlsx", reports.ReportClientes)
}

func (s *Server) handleMasVendidosExcel(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	f, err := s.reports.MasVendidosExcel(c.Request.Context(), limit)
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.writeWorkbook(c, f, "reporte_mas_vendidos.xlsx", reports.ReportMasVendidos)
}

func (s *Server) writeWorkbook(c *gin.Context, f *excelize.File, fileName, reportID string) {
	defer f.Close()

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, fileName))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		s.log.WithError(err).Error("workbook write failed", map[string]interface{}{"file": fileName})
		return
	}
	metrics.ReportsGenerated.WithLabelValues(reportID, "excel").Inc()
}

func (s *Server) handleVentasJSON(c *gin.Context) {
	serie, err := s.reports.VentasPorDia(c.Request.Context(), c.Query("fecha_inicio"), c.Query("fecha_fin"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ventas_por_dia": serie})
}

func (s *Server) handleClientesJSON(c *gin.Context) {
	meses, _ := strconv.Atoi(c.DefaultQuery("meses", "12"))
	serie, err := s.reports.ClientesPorMes(c.Request.Context(), meses)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"clientes_por_mes": serie})
}
