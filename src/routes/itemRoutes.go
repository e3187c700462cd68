package routes

import (
	"github.com/CardLedger/CardLedger-Backend/src/controllers"
	"github.com/CardLedger/CardLedger-Backend/src/services"
	"github.com/gin-gonic/gin"
)

func SetupItemRoutes(router *gin.Engine, service *services.ItemService, export *services.ExportService, downloader services.Downloader, pageLimit int) {

	itemController := controllers.NewItemController(service, export, downloader, pageLimit)

	items := router.Group("/items")
	{
		items.GET("", itemController.SearchItems)
		items.GET("/count", itemController.CountItems)
		items.GET("/totals", itemController.GetInventoryTotals)
		items.GET("/export", itemController.ExportToExcel)
		items.POST("/import", itemController.ImportItemsFromExcel)
		items.POST("/import/url", itemController.ImportItemsFromURL)
		items.GET("/:id", itemController.GetItemByID)
		items.POST("", itemController.CreateItem)
		items.PATCH("/:id", itemController.EditItem)
		items.DELETE("/:id", itemController.DeleteItem)
	}
}
