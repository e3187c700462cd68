package services

import (
	"errors"
	"fmt"
	"slices"

	"github.com/CardLedger/CardLedger-Backend/src/models"
	"github.com/CardLedger/CardLedger-Backend/src/validators"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GradingRecordService struct {
	db     *gorm.DB
	cache  *Cache
	logger log.Logger
}

func NewGradingRecordService(db *gorm.DB, cache *Cache, logger log.Logger) *GradingRecordService {
	return &GradingRecordService{db: db, cache: cache, logger: logger}
}

// GetGradingRecord returns the record with its item and submission, or nil.
func (s *GradingRecordService) GetGradingRecord(id int) (*models.GradingRecordModel, error) {
	var record models.GradingRecordModel
	err := s.db.Preload("Item").Preload("Submission").First(&record, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// GetNewestGradingRecords selects the newest records and returns them in ascending id order.
func (s *GradingRecordService) GetNewestGradingRecords(skip, limit int) ([]models.GradingRecordModel, error) {
	var records []models.GradingRecordModel
	err := s.db.Preload("Item").Preload("Submission").
		Order("grading_records.id DESC").
		Offset(skip).
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	slices.Reverse(records)
	return records, nil
}

// DeleteGradingRecord removes a record. A SUBMITTED item goes back to STORAGE and a
// submission left without records is deleted with it. It reports false when the record does
// not exist.
func (s *GradingRecordService) DeleteGradingRecord(id int) (bool, error) {
	found := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var record models.GradingRecordModel
		if err := tx.First(&record, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		found = true

		if err := returnToStorage(tx, &record); err != nil {
			return err
		}
		if err := tx.Delete(&models.GradingRecordModel{}, id).Error; err != nil {
			return err
		}
		return pruneEmptySubmissions(tx, []int{record.SubmissionNumber})
	})
	if err != nil || !found {
		return false, err
	}

	s.cache.Invalidate(inventoryCachePrefix)
	level.Info(s.logger).Log("msg", "grading record deleted", "record_id", id)

	return true, nil
}

// EditGradingRecord records grading outcomes. A fully ungraded record takes its fee, grade and
// cert together; the first grade returns a SUBMITTED item to STORAGE.
func (s *GradingRecordService) EditGradingRecord(id int, update models.GradingRecordUpdate) (EditOutcome, error) {
	outcome := EditNotFound
	var record models.GradingRecordModel

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&record, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		if err := validators.CheckGradingRecordUpdate(&record, update); err != nil {
			return err
		}

		wasGraded := record.Grade != nil
		update.ApplyTo(&record)
		if !wasGraded && record.Grade != nil {
			if err := returnToStorage(tx, &record); err != nil {
				return err
			}
		}

		if err := tx.Omit(clause.Associations).Save(&record).Error; err != nil {
			return translateDBError("grading record", id, err)
		}
		outcome = EditSuccess
		return nil
	})
	if err != nil {
		return EditNotFound, err
	}

	if outcome == EditSuccess {
		s.cache.Invalidate(inventoryCachePrefix)
		level.Info(s.logger).Log("msg", "grading record edited", "record_id", id, "item_id", record.ItemID)
	}
	return outcome, nil
}

// returnToStorage moves the record's item from SUBMITTED to STORAGE. Items in any other
// status are left alone.
func returnToStorage(tx *gorm.DB, record *models.GradingRecordModel) error {
	var item models.ItemModel
	if err := tx.Select("id", "status").First(&item, record.ItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &IntegrityError{
				Entity: "grading record",
				ID:     record.ID,
				Detail: fmt.Sprintf("item %d does not exist", record.ItemID),
			}
		}
		return err
	}
	if item.Status != models.StatusSubmitted {
		return nil
	}
	return tx.Model(&models.ItemModel{}).
		Where("id = ?", item.ID).
		Update("status", int(models.StatusStorage)).Error
}
