package validators

import (
	"testing"
	"time"

	"github.com/CardLedger/CardLedger-Backend/src/models"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// validItem builds an item holding exactly the fields its status requires.
func validItem(status models.Status) *models.ItemModel {
	item := &models.ItemModel{
		ID:            7,
		Name:          "Umbreon VMAX",
		SetName:       "Eevee Heroes",
		Category:      models.CategoryCard,
		Language:      models.LanguageJapanese,
		Qualifiers:    []models.Qualifier{models.QualifierFirstEdition},
		PurchaseDate:  date(2024, 1, 10),
		PurchasePrice: 12000,
		Status:        status,
		Intent:        models.IntentSell,
		ListType:      models.ListingTypeNoList,
	}
	switch status {
	case models.StatusListed:
		item.ListPrice = lo.ToPtr(150.0)
		item.ListType = models.ListingTypeFixed
		item.ListDate = lo.ToPtr(date(2024, 2, 1))
	case models.StatusClosed:
		item.ListType = models.ListingTypeAuction
		item.SaleTotal = lo.ToPtr(140.0)
		item.SaleDate = lo.ToPtr(date(2024, 3, 1))
		item.Shipping = lo.ToPtr(5.0)
		item.SaleFee = lo.ToPtr(18.2)
		item.UsdToJpyRate = lo.ToPtr(149.3)
	}
	return item
}

func requireViolation(t *testing.T, err error, rule string) *ValidationError {
	t.Helper()
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.True(t, validationErr.Has(rule), "expected %s in %v", rule, validationErr.Violations)
	return validationErr
}

func TestEveryStatusAcceptsItsRequiredFields(t *testing.T) {
	for _, status := range models.AllStatuses() {
		t.Run(status.String(), func(t *testing.T) {
			require.NoError(t, ValidateItem(validItem(status)))
		})
	}
}

func TestStorageWithListPrice(t *testing.T) {
	item := validItem(models.StatusStorage)
	item.ListPrice = lo.ToPtr(99.0)

	err := requireViolation(t, ValidateItem(item), RuleRequiredNullFields)
	require.Len(t, err.Violations, 1)
	require.Equal(t, []string{"list_price"}, err.Violations[0].Fields)
	require.Equal(t, "Status STORAGE requires the following fields to be null: [list_price]", err.Error())
}

func TestClosedMissingSaleFields(t *testing.T) {
	item := validItem(models.StatusClosed)
	item.Shipping = nil
	item.UsdToJpyRate = nil

	err := requireViolation(t, ValidateItem(item), RuleRequiredFields)
	require.Equal(t, "Status CLOSED requires the following missing fields: [shipping, usd_to_jpy_rate]", err.Error())
}

func TestReportsAllViolations(t *testing.T) {
	item := validItem(models.StatusStorage)
	item.ListDate = lo.ToPtr(date(2023, 12, 31))
	item.GroupDiscount = true
	item.Name = " "

	err := requireViolation(t, ValidateItem(item), RuleListDate)
	require.True(t, err.Has(RuleGroupDiscount))
	require.True(t, err.Has(RuleRequiredText))
	require.True(t, err.Has(RuleRequiredNullFields))
	require.Contains(t, err.Error(),
		"Listing date cannot be before purchase date (got listing date: 2023-12-31, purchase date: 2024-01-10)")
}

func TestSaleDateBeforeListDate(t *testing.T) {
	item := validItem(models.StatusClosed)
	item.ListDate = lo.ToPtr(date(2024, 3, 5))

	err := requireViolation(t, ValidateItem(item), RuleSaleDate)
	require.Equal(t, "Sale date cannot be before listing date (got sale date: 2024-03-01, listing date: 2024-03-05)", err.Error())
}

func TestListingTypeRules(t *testing.T) {
	listed := validItem(models.StatusListed)
	listed.ListType = models.ListingTypeNoList
	err := requireViolation(t, ValidateItem(listed), RuleListingType)
	require.Equal(t, "Item cannot have list_type of NO_LIST if listed or sold", err.Error())

	stored := validItem(models.StatusVault)
	stored.ListType = models.ListingTypeFixed
	requireViolation(t, ValidateItem(stored), RuleListingType)
}

func TestAuditTargetCannotBeListed(t *testing.T) {
	item := validItem(models.StatusListed)
	item.AuditTarget = true
	requireViolation(t, ValidateItem(item), RuleAuditTarget)

	held := validItem(models.StatusOrder)
	held.AuditTarget = true
	require.NoError(t, ValidateItem(held))
}

func TestGroupDiscountOnlyWhenSold(t *testing.T) {
	item := validItem(models.StatusClosed)
	item.GroupDiscount = true
	require.NoError(t, ValidateItem(item))
}

func TestUndefinedEnumValues(t *testing.T) {
	item := validItem(models.StatusStorage)
	item.Category = models.Category(9)
	item.Qualifiers = append(item.Qualifiers, models.Qualifier(42))

	err := requireViolation(t, ValidateItem(item), RuleEnumRange)
	require.True(t, err.Has(RuleQualifiers))
}

func TestStatusMustMatchIntentOnCreate(t *testing.T) {
	item := validItem(models.StatusListed)
	item.Intent = models.IntentKeep

	err := requireViolation(t, ValidateItem(item), RuleStatusForIntent)
	require.Contains(t, err.Error(), "Item with intent KEEP cannot have status LISTED")
}

func TestSubmittedItemCannotCarryGrade(t *testing.T) {
	item := validItem(models.StatusSubmitted)
	item.GradingRecords = []models.GradingRecordModel{{
		SubmissionNumber: 3,
		Submission:       &models.SubmissionModel{SubmissionNumber: 3, SubmissionCompany: models.GradingCompanyPSA},
		GradingFee:       lo.ToPtr(2500),
		Grade:            lo.ToPtr(10.0),
		Cert:             lo.ToPtr(8812345),
	}}

	err := requireViolation(t, ValidateItem(item), RuleRequiredNullFields)
	require.Equal(t, "Status SUBMITTED requires the following fields to be null: [grade, cert]", err.Error())

	item.GradingRecords[0].IsCracked = true
	require.NoError(t, ValidateItem(item))
}

func TestSubmittedSlabIgnoresPurchaseGrade(t *testing.T) {
	slab := func(records ...models.GradingRecordModel) *models.ItemModel {
		item := validItem(models.StatusSubmitted)
		item.PurchaseGradingCompany = models.GradingCompanyPSA
		item.PurchaseGrade = lo.ToPtr(9.0)
		item.PurchaseCert = lo.ToPtr(44120031)
		item.GradingRecords = records
		return item
	}
	pending := models.GradingRecordModel{
		SubmissionNumber: 12,
		Submission:       &models.SubmissionModel{SubmissionNumber: 12, SubmissionCompany: models.GradingCompanyCGC},
	}
	certOnly := pending
	certOnly.Cert = lo.ToPtr(4100221)

	tests := []struct {
		name    string
		item    *models.ItemModel
		wantErr string
	}{
		{"pending record", slab(pending), ""},
		{"cert already returned", slab(certOnly), "Status SUBMITTED requires the following fields to be null: [cert]"},
		{"no grading history", slab(), "Status SUBMITTED requires the following fields to be null: [grade, cert]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateItem(tt.item)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			requireViolation(t, err, RuleRequiredNullFields)
			require.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestUpdateResolvesIntentAndStatusAgainstStoredItem(t *testing.T) {
	current := validItem(models.StatusListed)

	// intent alone would leave a KEEP item listed
	_, err := ValidateItemUpdate(current, models.ItemUpdate{Intent: mo.Some(models.IntentKeep)})
	requireViolation(t, err, RuleIntentStatusUpdate)

	// status alone is checked against the stored SELL intent
	update := models.ItemUpdate{
		Status:    mo.Some(models.StatusStorage),
		ListPrice: mo.Some[*float64](nil),
		ListDate:  mo.Some[*time.Time](nil),
		ListType:  mo.Some(models.ListingTypeNoList),
	}
	merged, err := ValidateItemUpdate(current, update)
	require.NoError(t, err)
	require.Equal(t, models.StatusStorage, merged.Status)
	require.Nil(t, merged.ListPrice)

	// the stored item is untouched
	require.Equal(t, models.StatusListed, current.Status)
	require.NotNil(t, current.ListPrice)

	update.Intent = mo.Some(models.IntentKeep)
	_, err = ValidateItemUpdate(current, update)
	require.NoError(t, err)
}

func TestUpdateRunsItemRules(t *testing.T) {
	current := validItem(models.StatusStorage)

	_, err := ValidateItemUpdate(current, models.ItemUpdate{ListPrice: mo.Some(lo.ToPtr(10.0))})
	requireViolation(t, err, RuleRequiredNullFields)
}
