package controllers

import (
	"bytes"
	"net/http"

	"github.com/CardLedger/CardLedger-Backend/src/dtos"
	"github.com/CardLedger/CardLedger-Backend/src/services"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ItemController struct {
	service    *services.ItemService
	export     *services.ExportService
	downloader services.Downloader
	pageLimit  int
}

func NewItemController(service *services.ItemService, export *services.ExportService, downloader services.Downloader, pageLimit int) *ItemController {
	return &ItemController{service: service, export: export, downloader: downloader, pageLimit: pageLimit}
}

// SearchItems handles GET requests for a page of items matching the query filters. With no
// filters it returns the newest items.
func (c *ItemController) SearchItems(ctx *gin.Context) {
	skip, limit, ok := page(ctx, c.pageLimit)
	if !ok {
		return
	}
	search, err := parseItemSearch(ctx.Request.URL.Query())
	if err != nil {
		respondError(ctx, err)
		return
	}

	items, err := c.service.SearchItems(search, skip, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dtos.NewItemDisplays(items))
}

func (c *ItemController) GetItemByID(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "item ID")
	if !ok {
		return
	}

	item, err := c.service.GetItemByID(id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	if item == nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}
	ctx.JSON(http.StatusOK, dtos.NewItemDisplay(item))
}

func (c *ItemController) CreateItem(ctx *gin.Context) {
	body, ok := readBody(ctx)
	if !ok {
		return
	}
	item, err := dtos.ParseItemCreate(body)
	if err != nil {
		respondError(ctx, err)
		return
	}

	created, err := c.service.CreateItem(item)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dtos.NewItemDisplay(created))
}

// EditItem handles PATCH requests. Only the fields present in the body change; an explicit
// null clears a nullable field.
func (c *ItemController) EditItem(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "item ID")
	if !ok {
		return
	}
	body, ok := readBody(ctx)
	if !ok {
		return
	}
	update, err := dtos.ParseItemUpdate(body)
	if err != nil {
		respondError(ctx, err)
		return
	}

	outcome, item, err := c.service.EditItem(id, update)
	if err != nil {
		respondError(ctx, err)
		return
	}
	if outcome == services.EditNotFound {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}
	ctx.JSON(http.StatusOK, dtos.NewItemDisplay(item))
}

func (c *ItemController) DeleteItem(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "item ID")
	if !ok {
		return
	}

	deleted, err := c.service.DeleteItem(id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	if !deleted {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (c *ItemController) CountItems(ctx *gin.Context) {
	count, err := c.service.CountItems()
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"count": count})
}

// GetInventoryTotals handles GET requests for the per-status count, cost and return totals.
func (c *ItemController) GetInventoryTotals(ctx *gin.Context) {
	totals, err := c.service.GetInventoryTotals()
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, totals)
}

// ImportItemsFromExcel handles multipart uploads of an .xlsx workbook in the "file" field.
func (c *ItemController) ImportItemsFromExcel(ctx *gin.Context) {
	file, _, err := ctx.Request.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	defer file.Close()

	result, err := c.service.ImportItemsFromExcel(file)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, result)
}

type importURLRequest struct {
	URL string `json:"url" binding:"required"`
}

// ImportItemsFromURL downloads a shared Google Drive workbook and imports it.
func (c *ItemController) ImportItemsFromURL(ctx *gin.Context) {
	var req importURLRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := c.service.ImportItemsFromURL(ctx.Request.Context(), c.downloader, req.URL)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// ExportToExcel streams a workbook of the items matching the query filters plus every
// submission summary.
func (c *ItemController) ExportToExcel(ctx *gin.Context) {
	search, err := parseItemSearch(ctx.Request.URL.Query())
	if err != nil {
		respondError(ctx, err)
		return
	}

	var buf bytes.Buffer
	if err := c.export.ExportToExcel(&buf, search); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Header("Content-Disposition", `attachment; filename="inventory.xlsx"`)
	ctx.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
