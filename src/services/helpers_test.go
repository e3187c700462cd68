package services

import (
	"testing"
	"time"

	"github.com/CardLedger/CardLedger-Backend/src/db/dbtest"
	"github.com/CardLedger/CardLedger-Backend/src/models"
	"github.com/go-kit/log"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db          *gorm.DB
	cache       *Cache
	items       *ItemService
	submissions *SubmissionService
	records     *GradingRecordService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	conn := dbtest.NewTestDB(t)
	cache := NewCache()
	logger := log.NewNopLogger()
	return &fixture{
		db:          conn,
		cache:       cache,
		items:       NewItemService(conn, cache, logger),
		submissions: NewSubmissionService(conn, cache, logger),
		records:     NewGradingRecordService(conn, cache, logger),
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// storageItem is a raw card waiting to be graded.
func storageItem(name string) *models.ItemModel {
	return &models.ItemModel{
		Name:          name,
		SetName:       "Base Set",
		Category:      models.CategoryCard,
		Language:      models.LanguageJapanese,
		Qualifiers:    []models.Qualifier{models.QualifierFirstEdition},
		PurchaseDate:  day(2024, 1, 10),
		PurchasePrice: 10000,
		ImportFee:     500,
		Status:        models.StatusStorage,
		Intent:        models.IntentGrade,
		ListType:      models.ListingTypeNoList,
	}
}

// soldItem returns 12000 JPY against a 10500 JPY cost.
func soldItem(name string) *models.ItemModel {
	item := storageItem(name)
	item.Status = models.StatusClosed
	item.Intent = models.IntentSell
	item.ListType = models.ListingTypeAuction
	item.ListDate = lo.ToPtr(day(2024, 2, 1))
	item.SaleTotal = lo.ToPtr(100.0)
	item.SaleDate = lo.ToPtr(day(2024, 2, 8))
	item.Shipping = lo.ToPtr(5.0)
	item.SaleFee = lo.ToPtr(15.0)
	item.UsdToJpyRate = lo.ToPtr(150.0)
	return item
}

func (f *fixture) create(t *testing.T, item *models.ItemModel) *models.ItemModel {
	t.Helper()
	created, err := f.items.CreateItem(item)
	require.NoError(t, err)
	return created
}

func (f *fixture) submit(t *testing.T, number int, company models.GradingCompany, ids ...int) *models.SubmissionModel {
	t.Helper()
	submission, err := f.submissions.CreateSubmission(&models.SubmissionModel{
		SubmissionNumber:  number,
		SubmissionCompany: company,
		SubmissionDate:    day(2024, 3, 1),
	}, ids)
	require.NoError(t, err)
	return submission
}

func (f *fixture) reload(t *testing.T, id int) *models.ItemModel {
	t.Helper()
	item, err := f.items.GetItemByID(id)
	require.NoError(t, err)
	require.NotNil(t, item)
	return item
}

func (f *fixture) submissionExists(t *testing.T, number int) bool {
	t.Helper()
	var count int64
	require.NoError(t, f.db.Model(&models.SubmissionModel{}).Where("submission_number = ?", number).Count(&count).Error)
	return count > 0
}

func ids(items []models.ItemModel) []int {
	return lo.Map(items, func(item models.ItemModel, _ int) int { return item.ID })
}
