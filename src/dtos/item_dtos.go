package dtos

import (
	"github.com/CardLedger/CardLedger-Backend/src/models"
	"github.com/CardLedger/CardLedger-Backend/src/valuation"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// ItemDisplayDTO is an item together with its derived figures.
type ItemDisplayDTO struct {
	models.ItemModel
	TotalGradingFees int                   `json:"totalGradingFees"`
	TotalCost        int                   `json:"totalCost"`
	GradingCompany   models.GradingCompany `json:"gradingCompany"`
	Grade            *float64              `json:"grade"`
	Cert             *int                  `json:"cert"`
	TotalFees        *float64              `json:"totalFees"`
	ReturnUSD        *float64              `json:"returnUsd"`
	ReturnJPY        *int                  `json:"returnJpy"`
	NetJPY           *int                  `json:"netJpy"`
	NetPercent       *float64              `json:"netPercent"`
}

// NewItemDisplay evaluates item, whose grading records and their submissions must be loaded.
func NewItemDisplay(item *models.ItemModel) ItemDisplayDTO {
	v := valuation.Evaluate(item)
	return ItemDisplayDTO{
		ItemModel:        *item,
		TotalGradingFees: v.TotalGradingFees,
		TotalCost:        v.TotalCost,
		GradingCompany:   v.GradingCompany,
		Grade:            toPtr(v.Grade),
		Cert:             toPtr(v.Cert),
		TotalFees:        toPtr(v.TotalFees),
		ReturnUSD:        toPtr(v.ReturnUSD),
		ReturnJPY:        toPtr(v.ReturnJPY),
		NetJPY:           toPtr(v.NetJPY),
		NetPercent:       toPtr(v.NetPercent),
	}
}

func NewItemDisplays(items []models.ItemModel) []ItemDisplayDTO {
	return lo.Map(items, func(item models.ItemModel, _ int) ItemDisplayDTO {
		return NewItemDisplay(&item)
	})
}

// GradingRecordDisplayDTO is a grading record with the names of its item and grader.
type GradingRecordDisplayDTO struct {
	ID                int                   `json:"id"`
	ItemID            int                   `json:"itemId"`
	ItemName          string                `json:"itemName"`
	SetName           string                `json:"setName"`
	SubmissionNumber  int                   `json:"submissionNumber"`
	SubmissionCompany models.GradingCompany `json:"submissionCompany"`
	GradingFee        *int                  `json:"gradingFee"`
	Grade             *float64              `json:"grade"`
	Cert              *int                  `json:"cert"`
	IsCracked         bool                  `json:"isCracked"`
}

// NewGradingRecordDisplay flattens a record loaded with its item and submission.
func NewGradingRecordDisplay(record *models.GradingRecordModel) GradingRecordDisplayDTO {
	dto := GradingRecordDisplayDTO{
		ID:               record.ID,
		ItemID:           record.ItemID,
		SubmissionNumber: record.SubmissionNumber,
		GradingFee:       record.GradingFee,
		Grade:            record.Grade,
		Cert:             record.Cert,
		IsCracked:        record.IsCracked,
	}
	if record.Item != nil {
		dto.ItemName = record.Item.Name
		dto.SetName = record.Item.SetName
	}
	if record.Submission != nil {
		dto.SubmissionCompany = record.Submission.SubmissionCompany
	}
	return dto
}

func NewGradingRecordDisplays(records []models.GradingRecordModel) []GradingRecordDisplayDTO {
	return lo.Map(records, func(record models.GradingRecordModel, _ int) GradingRecordDisplayDTO {
		return NewGradingRecordDisplay(&record)
	})
}

func toPtr[T any](o mo.Option[T]) *T {
	if v, ok := o.Get(); ok {
		return &v
	}
	return nil
}
