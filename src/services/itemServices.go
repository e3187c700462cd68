package services

import (
	"errors"
	"slices"
	"time"

	"github.com/CardLedger/CardLedger-Backend/src/models"
	"github.com/CardLedger/CardLedger-Backend/src/validators"
	"github.com/CardLedger/CardLedger-Backend/src/valuation"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Every cached read is keyed under this prefix and dropped on any inventory write.
const (
	inventoryCachePrefix = "inventory_"
	itemCountCacheKey    = inventoryCachePrefix + "item_count"
	totalsCacheKey       = inventoryCachePrefix + "totals"
	cacheDuration        = 10 * time.Minute
)

type ItemService struct {
	db     *gorm.DB
	cache  *Cache
	logger log.Logger
}

func NewItemService(db *gorm.DB, cache *Cache, logger log.Logger) *ItemService {
	return &ItemService{db: db, cache: cache, logger: logger}
}

// withGrading preloads the grading history the derived values are computed from.
func withGrading(db *gorm.DB) *gorm.DB {
	return db.
		Preload("GradingRecords", func(db *gorm.DB) *gorm.DB {
			return db.Order("grading_records.submission_number ASC")
		}).
		Preload("GradingRecords.Submission")
}

func loadItem(db *gorm.DB, id int) (*models.ItemModel, error) {
	var item models.ItemModel
	if err := withGrading(db).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// CreateItem validates item and stores it as a new row. The id is assigned by the store and
// any grading records on item are ignored.
func (s *ItemService) CreateItem(item *models.ItemModel) (*models.ItemModel, error) {
	created := *item
	created.ID = 0
	created.GradingRecords = nil
	if created.Qualifiers == nil {
		created.Qualifiers = datatypes.JSONSlice[models.Qualifier]{}
	}

	if err := validators.ValidateItem(&created); err != nil {
		return nil, err
	}

	if err := s.db.Omit(clause.Associations).Create(&created).Error; err != nil {
		return nil, translateDBError("item", created.ID, err)
	}

	s.cache.Invalidate(inventoryCachePrefix)
	level.Info(s.logger).Log("msg", "item created", "item_id", created.ID, "status", created.Status)

	return &created, nil
}

// GetItemByID returns the item with its grading history, or nil when it does not exist.
func (s *ItemService) GetItemByID(id int) (*models.ItemModel, error) {
	return loadItem(s.db, id)
}

// GetNewestItems selects the newest items and returns them in ascending id order. It is the
// search with no filters.
func (s *ItemService) GetNewestItems(skip, limit int) ([]models.ItemModel, error) {
	return s.SearchItems(ItemSearch{}, skip, limit)
}

func (s *ItemService) CountItems() (int64, error) {
	if cached, found := s.cache.Get(itemCountCacheKey); found {
		return cached.(int64), nil
	}

	var count int64
	if err := s.db.Model(&models.ItemModel{}).Count(&count).Error; err != nil {
		return 0, err
	}

	s.cache.Set(itemCountCacheKey, count, cacheDuration)
	return count, nil
}

// DeleteItem removes the item together with its grading records and every submission that
// no longer holds a record. It reports false when the item does not exist.
func (s *ItemService) DeleteItem(id int) (bool, error) {
	found := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var item models.ItemModel
		if err := tx.Select("id").First(&item, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		found = true

		var numbers []int
		if err := tx.Model(&models.GradingRecordModel{}).
			Where("item_id = ?", id).
			Pluck("submission_number", &numbers).Error; err != nil {
			return err
		}

		if err := tx.Where("item_id = ?", id).Delete(&models.GradingRecordModel{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.ItemModel{}, id).Error; err != nil {
			return translateDBError("item", id, err)
		}
		return pruneEmptySubmissions(tx, numbers)
	})
	if err != nil || !found {
		return false, err
	}

	s.cache.Invalidate(inventoryCachePrefix)
	level.Info(s.logger).Log("msg", "item deleted", "item_id", id)

	return true, nil
}

// EditItem applies a sparse update. The merged item is validated as a whole, with intent and
// status resolved against the stored row, before anything is written.
func (s *ItemService) EditItem(id int, update models.ItemUpdate) (EditOutcome, *models.ItemModel, error) {
	outcome := EditNotFound
	var edited *models.ItemModel

	err := s.db.Transaction(func(tx *gorm.DB) error {
		current, err := loadItem(tx, id)
		if err != nil || current == nil {
			return err
		}

		merged, err := validators.ValidateItemUpdate(current, update)
		if err != nil {
			return err
		}

		if err := tx.Omit(clause.Associations).Save(merged).Error; err != nil {
			return translateDBError("item", id, err)
		}
		outcome, edited = EditSuccess, merged
		return nil
	})
	if err != nil {
		return EditNotFound, nil, err
	}

	if outcome == EditSuccess {
		s.cache.Invalidate(inventoryCachePrefix)
		level.Info(s.logger).Log("msg", "item edited", "item_id", id, "status", edited.Status, "intent", edited.Intent)
	}
	return outcome, edited, nil
}

// GetInventoryTotals returns cost, return and net per status, computed by the database.
func (s *ItemService) GetInventoryTotals() ([]valuation.StatusTotals, error) {
	if cached, found := s.cache.Get(totalsCacheKey); found {
		return cached.([]valuation.StatusTotals), nil
	}

	totals, err := valuation.QueryTotals(s.db)
	if err != nil {
		return nil, err
	}

	s.cache.Set(totalsCacheKey, totals, cacheDuration)
	return totals, nil
}

// pageAscending reverses a newest-first page into ascending id order.
func pageAscending(items []models.ItemModel) []models.ItemModel {
	slices.Reverse(items)
	return items
}
