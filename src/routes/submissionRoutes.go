package routes

import (
	"github.com/CardLedger/CardLedger-Backend/src/controllers"
	"github.com/CardLedger/CardLedger-Backend/src/services"
	"github.com/gin-gonic/gin"
)

func SetupSubmissionRoutes(router *gin.Engine, service *services.SubmissionService, pageLimit int) {

	submissionController := controllers.NewSubmissionController(service, pageLimit)

	submissions := router.Group("/submissions")
	{
		submissions.GET("", submissionController.GetNewestSubmissions)
		submissions.GET("/summaries", submissionController.GetSubmissionSummaries)
		submissions.GET("/:number", submissionController.GetSubmission)
		submissions.POST("", submissionController.CreateSubmission)
		submissions.PATCH("/:number", submissionController.EditSubmission)
	}
}
