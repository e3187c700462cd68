package services

import (
	"errors"
	"fmt"
	"slices"

	"github.com/CardLedger/CardLedger-Backend/src/models"
	"github.com/CardLedger/CardLedger-Backend/src/validators"
	"github.com/CardLedger/CardLedger-Backend/src/valuation"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubmissionService struct {
	db     *gorm.DB
	cache  *Cache
	logger log.Logger
}

func NewSubmissionService(db *gorm.DB, cache *Cache, logger log.Logger) *SubmissionService {
	return &SubmissionService{db: db, cache: cache, logger: logger}
}

// SubmissionSummary reports the cost and outcome of one submission. Costs count the purchase
// of every submitted item plus the grading fees charged by this submission.
type SubmissionSummary struct {
	models.SubmissionModel
	CardCost        int     `json:"cardCost"`
	GradingCost     int     `json:"gradingCost"`
	TotalCost       int     `json:"totalCost"`
	TotalReturn     int     `json:"totalReturn"`
	TotalProfit     int     `json:"totalProfit"`
	ProfitOnSold    int     `json:"profitOnSold"`
	NumCards        int     `json:"numCards"`
	NumSold         int     `json:"numSold"`
	PercentSold     float64 `json:"percentSold"`
	ProfitPerSold   int     `json:"profitPerSold"`
	NumClosed       int     `json:"numClosed"`
	PercentClosed   float64 `json:"percentClosed"`
	ProfitPerClosed int     `json:"profitPerClosed"`
}

// CreateSubmission sends every listed item to grading in one transaction. Each item must
// intend to be graded, sit in storage and not already belong to the submission. The
// submission row is created when missing; an existing one must be with the same company. On
// any failure nothing is written and the error that stopped the batch is returned.
func (s *SubmissionService) CreateSubmission(summary *models.SubmissionModel, itemIDs []int) (*models.SubmissionModel, error) {
	if err := validators.ValidateSubmission(summary); err != nil {
		return nil, err
	}
	if err := validators.ValidateSubmissionItems(itemIDs); err != nil {
		return nil, err
	}
	number := summary.SubmissionNumber

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.SubmissionModel
		err := tx.First(&existing, number).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			row := *summary
			row.GradingRecords = nil
			if err := tx.Omit(clause.Associations).Create(&row).Error; err != nil {
				return translateDBError("submission", number, err)
			}
		case err != nil:
			return err
		case existing.SubmissionCompany != summary.SubmissionCompany:
			return validators.NewValidationError("consistent_submission_company",
				fmt.Sprintf("Submission %d is with %s, not %s", number, existing.SubmissionCompany, summary.SubmissionCompany),
				"submission_company")
		}

		for _, id := range itemIDs {
			if err := submitItem(tx, id, number); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		level.Warn(s.logger).Log("msg", "submission rejected", "submission_number", number, "err", err)
		return nil, err
	}

	s.cache.Invalidate(inventoryCachePrefix)
	level.Info(s.logger).Log("msg", "items submitted", "submission_number", number, "items", len(itemIDs))

	return s.GetSubmission(number)
}

func submitItem(tx *gorm.DB, itemID, number int) error {
	var item models.ItemModel
	if err := tx.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &IntegrityError{Entity: "item", ID: itemID, Detail: "submitted item does not exist"}
		}
		return err
	}
	if err := validators.CheckIntent(&item, models.IntentGrade); err != nil {
		return err
	}
	if err := validators.CheckStatus(&item, models.StatusStorage); err != nil {
		return err
	}

	var count int64
	if err := tx.Model(&models.GradingRecordModel{}).
		Where("item_id = ? AND submission_number = ?", itemID, number).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return validators.NewValidationError(validators.RuleSubmissionItems,
			fmt.Sprintf("Item %d already has a grading record for submission %d", itemID, number),
			"item_ids")
	}

	record := models.GradingRecordModel{ItemID: itemID, SubmissionNumber: number}
	if err := tx.Omit(clause.Associations).Create(&record).Error; err != nil {
		return translateDBError("grading record", itemID, err)
	}

	return tx.Model(&models.ItemModel{}).
		Where("id = ?", itemID).
		Update("status", int(models.StatusSubmitted)).Error
}

// GetSubmission returns the submission with its records and their items, or nil.
func (s *SubmissionService) GetSubmission(number int) (*models.SubmissionModel, error) {
	var submission models.SubmissionModel
	err := s.db.
		Preload("GradingRecords", func(db *gorm.DB) *gorm.DB {
			return db.Order("grading_records.id ASC")
		}).
		Preload("GradingRecords.Item").
		First(&submission, number).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &submission, nil
}

// GetNewestSubmissions selects the highest submission numbers and returns them ascending.
func (s *SubmissionService) GetNewestSubmissions(skip, limit int) ([]models.SubmissionModel, error) {
	var submissions []models.SubmissionModel
	err := s.db.
		Order("submission_number DESC").
		Offset(skip).
		Limit(limit).
		Find(&submissions).Error
	if err != nil {
		return nil, err
	}
	slices.Reverse(submissions)
	return submissions, nil
}

// EditSubmission changes the company or dates of a submission. The number is immutable.
func (s *SubmissionService) EditSubmission(number int, update models.SubmissionUpdate) (EditOutcome, *models.SubmissionModel, error) {
	outcome := EditNotFound
	var edited models.SubmissionModel

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&edited, number).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		update.ApplyTo(&edited)
		if err := validators.ValidateSubmission(&edited); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Save(&edited).Error; err != nil {
			return translateDBError("submission", number, err)
		}
		outcome = EditSuccess
		return nil
	})
	if err != nil || outcome == EditNotFound {
		return EditNotFound, nil, err
	}

	s.cache.Invalidate(inventoryCachePrefix)
	level.Info(s.logger).Log("msg", "submission edited", "submission_number", number)

	return outcome, &edited, nil
}

// GetSubmissionSummaries summarizes one page of the newest submissions.
func (s *SubmissionService) GetSubmissionSummaries(skip, limit int) ([]SubmissionSummary, error) {
	submissions, err := s.GetNewestSubmissions(skip, limit)
	if err != nil {
		return nil, err
	}

	summaries := make([]SubmissionSummary, 0, len(submissions))
	for _, submission := range submissions {
		var records []models.GradingRecordModel
		if err := s.db.Preload("Item").
			Where("submission_number = ?", submission.SubmissionNumber).
			Find(&records).Error; err != nil {
			return nil, err
		}

		summary, err := summarize(submission, records)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func summarize(submission models.SubmissionModel, records []models.GradingRecordModel) (SubmissionSummary, error) {
	summary := SubmissionSummary{SubmissionModel: submission, NumCards: len(records)}

	for _, record := range records {
		if record.Item == nil {
			return SubmissionSummary{}, &IntegrityError{
				Entity: "grading record",
				ID:     record.ID,
				Detail: fmt.Sprintf("item %d does not exist", record.ItemID),
			}
		}
		item := record.Item
		cardCost := item.PurchasePrice + item.ImportFee
		fee := valuation.TotalGradingFees([]models.GradingRecordModel{record})

		summary.CardCost += cardCost
		summary.GradingCost += fee

		if item.Status != models.StatusSubmitted {
			summary.NumClosed++
		}
		if item.Status == models.StatusClosed {
			summary.NumSold++
		}
		if ret, ok := valuation.Evaluate(item).ReturnJPY.Get(); ok {
			summary.TotalReturn += ret
			summary.ProfitOnSold += ret - cardCost - fee
		}
	}

	summary.TotalCost = summary.CardCost + summary.GradingCost
	summary.TotalProfit = summary.TotalReturn - summary.TotalCost
	summary.PercentSold = percent(summary.NumSold, summary.NumCards)
	summary.PercentClosed = percent(summary.NumClosed, summary.NumCards)
	summary.ProfitPerSold = perUnit(summary.ProfitOnSold, summary.NumSold)
	summary.ProfitPerClosed = perUnit(summary.TotalProfit, summary.NumClosed)
	return summary, nil
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return decimal.NewFromInt(int64(part)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(whole))).
		Round(2).
		InexactFloat64()
}

func perUnit(total, units int) int {
	if units == 0 {
		return 0
	}
	return int(decimal.NewFromInt(int64(total)).Div(decimal.NewFromInt(int64(units))).Round(0).IntPart())
}

// pruneEmptySubmissions deletes the listed submissions that no longer hold any record.
func pruneEmptySubmissions(tx *gorm.DB, numbers []int) error {
	if len(numbers) == 0 {
		return nil
	}
	return tx.
		Where("submission_number IN ?", numbers).
		Where("NOT EXISTS (SELECT 1 FROM grading_records gr WHERE gr.submission_number = submissions.submission_number)").
		Delete(&models.SubmissionModel{}).Error
}
