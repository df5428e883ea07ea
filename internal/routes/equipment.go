package routes

import (
	"github.com/labstack/echo/v4"

	"fleet-dashboard/internal/controllers"
)

func runEquipmentRouter(api *echo.Group, equipmentController *controllers.EquipmentController) {
	equipment := api.Group("/equipment")

	equipment.POST("", equipmentController.CreateEquipment)
	equipment.PUT("/:id", equipmentController.UpdateEquipment)
	equipment.DELETE("/:id", equipmentController.DeleteEquipment)
	equipment.POST("/bulk-delete", equipmentController.BulkDelete)
	equipment.POST("/bulk-status", equipmentController.BulkUpdateStatus)
}
