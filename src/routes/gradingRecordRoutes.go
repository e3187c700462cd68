package routes

import (
	"github.com/CardLedger/CardLedger-Backend/src/controllers"
	"github.com/CardLedger/CardLedger-Backend/src/services"
	"github.com/gin-gonic/gin"
)

func SetupGradingRecordRoutes(router *gin.Engine, service *services.GradingRecordService, pageLimit int) {

	gradingRecordController := controllers.NewGradingRecordController(service, pageLimit)

	records := router.Group("/grading-records")
	{
		records.GET("", gradingRecordController.GetNewestGradingRecords)
		records.GET("/:id", gradingRecordController.GetGradingRecord)
		records.PATCH("/:id", gradingRecordController.EditGradingRecord)
		records.DELETE("/:id", gradingRecordController.DeleteGradingRecord)
	}
}
