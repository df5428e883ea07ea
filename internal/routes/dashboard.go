package routes

import (
	"github.com/labstack/echo/v4"

	"fleet-dashboard/internal/controllers"
)

func runDashboardRouter(api *echo.Group, dashboardController *controllers.DashboardController) {
	dashboard := api.Group("/dashboard")

	dashboard.GET("/state", dashboardController.GetState)
	dashboard.POST("/sheet", dashboardController.SetSheet)
	dashboard.POST("/search", dashboardController.SetSearch)
	dashboard.POST("/page", dashboardController.SetPage)
	dashboard.POST("/refresh", dashboardController.Refresh)
	dashboard.POST("/select", dashboardController.SelectItem)
	dashboard.POST("/select-all", dashboardController.SelectAll)
	dashboard.POST("/selection/clear", dashboardController.ClearSelection)
	dashboard.POST("/form/open", dashboardController.OpenForm)
	dashboard.POST("/form/close", dashboardController.CloseForm)
}
