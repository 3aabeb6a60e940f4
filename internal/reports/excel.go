// internal/reports/excel.go
package reports

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/oogway7h/ShopIA-web/internal/common/errors"
)

// VentasExcel builds the sales listing workbook.
func (s *Service) VentasExcel(ctx context.Context, desde, hasta string) (*excelize.File, error) {
	report, err := s.Ventas(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}

	f, sheet, err := newWorkbook("Ventas")
	if err != nil {
		return nil, errors.NewReportGenerationFailedError(ReportVentas, err)
	}
	headers := []interface{}{"ID", "Usuario", "Fecha", "Monto", "Estado"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, errors.NewReportGenerationFailedError(ReportVentas, err)
	}
	for i, v := range report.Ventas {
		row := []interface{}{v.ID, v.UsuarioID, v.Fecha.Format("2006-01-02"), v.MontoTotal, v.Estado}
		if err := setRow(f, sheet, i+2, row); err != nil {
			return nil, errors.NewReportGenerationFailedError(ReportVentas, err)
		}
	}
	totals := []interface{}{"TOTAL", "", "", report.MontoTotal, ""}
	if err := setRow(f, sheet, len(report.Ventas)+2, totals); err != nil {
		return nil, errors.NewReportGenerationFailedError(ReportVentas, err)
	}
	return f, nil
}

// ClientesExcel builds the client listing workbook.
func (s *Service) ClientesExcel(ctx context.Context) (*excelize.File, error) {
	report, err := s.Clientes(ctx)
	if err != nil {
		return nil, err
	}

	f, sheet, err := newWorkbook("Clientes")
	if err != nil {
		return nil, errors.NewReportGenerationFailedError(ReportClientes, err)
	}
	headers := []interface{}{"ID", "Nombre", "Email", "Compras", "Total gastado", "Última compra"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, errors.NewReportGenerationFailedError(ReportClientes, err)
	}
	for i, c := range report.Clientes {
		row := []interface{}{c.ID, c.Nombre, c.Email, c.NumCompras, c.TotalGastado, c.UltimaCompra}
		if err := setRow(f, sheet, i+2, row); err != nil {
			return nil, errors.NewReportGenerationFailedError(ReportClientes, err)
		}
	}
	return f, nil
}

// MasVendidosExcel builds the best-sellers workbook.
func (s *Service) MasVendidosExcel(ctx context.Context, limit int) (*excelize.File, error) {
	report, err := s.MasVendidos(ctx, limit)
	if err != nil {
		return nil, err
	}

	f, sheet, err := newWorkbook("Más vendidos")
	if err != nil {
		return nil, errors.NewReportGenerationFailedError(ReportMasVendidos, err)
	}
	headers := []interface{}{"Producto", "Categoría", "Unidades", "Monto"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, errors.NewReportGenerationFailedError(ReportMasVendidos, err)
	}
	for i, p := range report.Productos {
		row := []interface{}{p.Nombre, p.Categoria, p.CantidadVendida, p.MontoTotal}
		if err := setRow(f, sheet, i+2, row); err != nil {
			return nil, errors.NewReportGenerationFailedError(ReportMasVendidos, err)
		}
	}
	return f, nil
}

func newWorkbook(sheet string) (*excelize.File, string, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, "", err
	}
	return f, sheet, nil
}

func setRow(f *excelize.File, sheet string, rowNum int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("row %d: %w", rowNum, err)
	}
	return f.SetSheetRow(sheet, cell, &values)
}
