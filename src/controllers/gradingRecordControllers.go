package controllers

import (
	"net/http"

	"github.com/CardLedger/CardLedger-Backend/src/dtos"
	"github.com/CardLedger/CardLedger-Backend/src/services"
	"github.com/gin-gonic/gin"
)

type GradingRecordController struct {
	service   *services.GradingRecordService
	pageLimit int
}

func NewGradingRecordController(service *services.GradingRecordService, pageLimit int) *GradingRecordController {
	return &GradingRecordController{service: service, pageLimit: pageLimit}
}

func (c *GradingRecordController) GetNewestGradingRecords(ctx *gin.Context) {
	skip, limit, ok := page(ctx, c.pageLimit)
	if !ok {
		return
	}

	records, err := c.service.GetNewestGradingRecords(skip, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dtos.NewGradingRecordDisplays(records))
}

func (c *GradingRecordController) GetGradingRecord(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "grading record ID")
	if !ok {
		return
	}

	record, err := c.service.GetGradingRecord(id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	if record == nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Grading record not found"})
		return
	}
	ctx.JSON(http.StatusOK, dtos.NewGradingRecordDisplay(record))
}

// EditGradingRecord handles PATCH requests. Grading a record moves its item back to storage.
func (c *GradingRecordController) EditGradingRecord(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "grading record ID")
	if !ok {
		return
	}
	body, ok := readBody(ctx)
	if !ok {
		return
	}
	update, err := dtos.ParseGradingRecordUpdate(body)
	if err != nil {
		respondError(ctx, err)
		return
	}

	outcome, err := c.service.EditGradingRecord(id, update)
	if err != nil {
		respondError(ctx, err)
		return
	}
	if outcome == services.EditNotFound {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Grading record not found"})
		return
	}

	record, err := c.service.GetGradingRecord(id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dtos.NewGradingRecordDisplay(record))
}

func (c *GradingRecordController) DeleteGradingRecord(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "grading record ID")
	if !ok {
		return
	}

	deleted, err := c.service.DeleteGradingRecord(id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	if !deleted {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Grading record not found"})
		return
	}
	ctx.Status(http.StatusNoContent)
}
