package routes

import (
	"github.com/labstack/echo/v4"

	"fleet-dashboard/internal/controllers"
)

func runToastRouter(api *echo.Group, toastController *controllers.ToastController) {
	toasts := api.Group("/toasts")

	toasts.GET("", toastController.ListToasts)
	toasts.DELETE("/:id", toastController.DismissToast)
}
