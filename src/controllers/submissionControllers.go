package controllers

import (
	"net/http"

	"github.com/CardLedger/CardLedger-Backend/src/dtos"
	"github.com/CardLedger/CardLedger-Backend/src/services"
	"github.com/gin-gonic/gin"
)

type SubmissionController struct {
	service   *services.SubmissionService
	pageLimit int
}

func NewSubmissionController(service *services.SubmissionService, pageLimit int) *SubmissionController {
	return &SubmissionController{service: service, pageLimit: pageLimit}
}

// CreateSubmission handles POST requests sending items to a grader. All items are submitted
// or none are.
func (c *SubmissionController) CreateSubmission(ctx *gin.Context) {
	body, ok := readBody(ctx)
	if !ok {
		return
	}
	submission, itemIDs, err := dtos.ParseSubmissionCreate(body)
	if err != nil {
		respondError(ctx, err)
		return
	}

	created, err := c.service.CreateSubmission(submission, itemIDs)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, created)
}

func (c *SubmissionController) GetNewestSubmissions(ctx *gin.Context) {
	skip, limit, ok := page(ctx, c.pageLimit)
	if !ok {
		return
	}

	submissions, err := c.service.GetNewestSubmissions(skip, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, submissions)
}

func (c *SubmissionController) GetSubmission(ctx *gin.Context) {
	number, ok := parseID(ctx, "number", "submission number")
	if !ok {
		return
	}

	submission, err := c.service.GetSubmission(number)
	if err != nil {
		respondError(ctx, err)
		return
	}
	if submission == nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return
	}
	ctx.JSON(http.StatusOK, submission)
}

func (c *SubmissionController) EditSubmission(ctx *gin.Context) {
	number, ok := parseID(ctx, "number", "submission number")
	if !ok {
		return
	}
	body, ok := readBody(ctx)
	if !ok {
		return
	}
	update, err := dtos.ParseSubmissionUpdate(body)
	if err != nil {
		respondError(ctx, err)
		return
	}

	outcome, submission, err := c.service.EditSubmission(number, update)
	if err != nil {
		respondError(ctx, err)
		return
	}
	if outcome == services.EditNotFound {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return
	}
	ctx.JSON(http.StatusOK, submission)
}

// GetSubmissionSummaries handles GET requests for per-submission cost and return figures.
func (c *SubmissionController) GetSubmissionSummaries(ctx *gin.Context) {
	skip, limit, ok := page(ctx, c.pageLimit)
	if !ok {
		return
	}

	summaries, err := c.service.GetSubmissionSummaries(skip, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, summaries)
}
