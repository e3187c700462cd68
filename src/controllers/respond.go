package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/CardLedger/CardLedger-Backend/src/dtos"
	"github.com/CardLedger/CardLedger-Backend/src/models"
	"github.com/CardLedger/CardLedger-Backend/src/validators"
	"github.com/gin-gonic/gin"
)

// respondError maps user errors to 400 and everything else, integrity errors included, to 500.
func respondError(ctx *gin.Context, err error) {
	var (
		validationErr *validators.ValidationError
		intentErr     *validators.IntentMismatchError
		statusErr     *validators.StatusMismatchError
		enumErr       *models.InvalidEnumValueError
		fieldErr      *dtos.FieldError
	)
	switch {
	case errors.As(err, &validationErr):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "violations": validationErr.Violations})
	case errors.As(err, &intentErr), errors.As(err, &statusErr), errors.As(err, &enumErr), errors.As(err, &fieldErr):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		_ = ctx.Error(err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func parseID(ctx *gin.Context, param, label string) (int, bool) {
	id, err := strconv.Atoi(ctx.Param(param))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + label})
		return 0, false
	}
	return id, true
}

// page reads the skip and limit query parameters. limit defaults to, and is capped at,
// maxLimit.
func page(ctx *gin.Context, maxLimit int) (int, int, bool) {
	skip, err := strconv.Atoi(ctx.DefaultQuery("skip", "0"))
	if err != nil || skip < 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid skip parameter"})
		return 0, 0, false
	}
	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", strconv.Itoa(maxLimit)))
	if err != nil || limit < 1 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
		return 0, 0, false
	}
	return skip, min(limit, maxLimit), true
}

func readBody(ctx *gin.Context) ([]byte, bool) {
	body, err := ctx.GetRawData()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	return body, true
}
