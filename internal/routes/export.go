package routes

import (
	"github.com/labstack/echo/v4"

	"fleet-dashboard/internal/controllers"
)

func runExportRouter(api *echo.Group, exportController *controllers.ExportController) {
	api.GET("/export", exportController.ExportEquipment)
}
