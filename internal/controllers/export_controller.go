package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"fleet-dashboard/internal/entities"
	"fleet-dashboard/internal/services"
	"fleet-dashboard/pkg/utils"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ExportController выгружает текущее отфильтрованное представление
// сессии: в XLSX-файл либо обычным JSON-списком.
type ExportController struct {
	sessionManager *services.SessionManager
	logger         *zap.Logger
}

func NewExportController(sessionManager *services.SessionManager, logger *zap.Logger) *ExportController {
	return &ExportController{
		sessionManager: sessionManager,
		logger:         logger,
	}
}

// exportHeaders повторяют порядок колонок таблицы дашборда.
var exportHeaders = []string{
	"SI No", "Equipment Description/Make", "Make", "Year of Manufacture",
	"Site Location", "Registration Number", "Insurance", "Permit", "Tax",
	"Fitness Certificate", "Remarks",
}

func rowToSlice(item entities.Equipment) []interface{} {
	return []interface{}{
		item.SINo, item.Description, item.Make, item.Year.String(),
		item.SiteLocation, item.RegistrationNumber, item.Insurance,
		item.Permit, item.Tax, item.FitnessCertificate, item.Remarks,
	}
}

func (c *ExportController) ExportEquipment(ctx echo.Context) error {
	session, err := resolveSession(ctx, c.sessionManager)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	data := session.Dashboard.FilteredRecords()
	format := strings.ToLower(ctx.QueryParam("format"))

	if format == "xlsx" {
		return c.respondWithXLSX(ctx, data, session.Dashboard.CurrentSheet())
	}

	return utils.SuccessResponse(ctx, data, "Экспорт успешно сформирован", http.StatusOK)
}

func (c *ExportController) respondWithXLSX(ctx echo.Context, data []entities.Equipment, sheetName string) error {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", sheetName)
	f.SetSheetRow(sheetName, "A1", &exportHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheetName, "A1", "K1", style)

	for i, item := range data {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := rowToSlice(item)
		f.SetSheetRow(sheetName, cell, &row)
	}
	// Авто-ширина колонок для читаемости
	f.SetColWidth(sheetName, "B", "B", 35)
	f.SetColWidth(sheetName, "E", "F", 22)
	f.SetColWidth(sheetName, "J", "K", 25)

	fileName := fmt.Sprintf("equipment_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}
