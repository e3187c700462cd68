// Package validators checks items and grading records against the inventory rules.
package validators

import (
	"fmt"
	"strings"
	"time"

	"github.com/CardLedger/CardLedger-Backend/src/models"
	"github.com/CardLedger/CardLedger-Backend/src/valuation"
	"github.com/samber/lo"
)

const (
	RuleRequiredText        = "required_text"
	RuleEnumRange           = "enum_range"
	RuleQualifiers          = "qualifiers"
	RuleListDate            = "list_date_not_before_purchase_date"
	RuleSaleDate            = "sale_date_not_before_list_date"
	RuleRequiredFields      = "check_required_fields_based_on_status"
	RuleRequiredNullFields  = "check_required_null_fields_based_on_status"
	RuleListingType         = "appropriate_listing_type"
	RuleGroupDiscount       = "appropriate_group_discount"
	RuleAuditTarget         = "appropriate_audit_target"
	RuleStatusForIntent     = "appropriate_status_based_on_intent"
	RuleIntentStatusUpdate  = "consistent_intent_and_status"
	RuleGradingRecordUpdate = "atomic_grading_outcome"
)

const dateLayout = "2006-01-02"

// isNull reports whether a policy field is unset on the item. grade and cert are read from
// the latest grading record, which a pending submission has not filled in yet. Purchase values
// only count for an item with no grading history.
var isNull = map[string]func(*models.ItemModel, valuation.Values) bool{
	models.FieldListPrice:    func(i *models.ItemModel, _ valuation.Values) bool { return i.ListPrice == nil },
	models.FieldListType:     func(*models.ItemModel, valuation.Values) bool { return false },
	models.FieldListDate:     func(i *models.ItemModel, _ valuation.Values) bool { return i.ListDate == nil },
	models.FieldSaleTotal:    func(i *models.ItemModel, _ valuation.Values) bool { return i.SaleTotal == nil },
	models.FieldSaleDate:     func(i *models.ItemModel, _ valuation.Values) bool { return i.SaleDate == nil },
	models.FieldShipping:     func(i *models.ItemModel, _ valuation.Values) bool { return i.Shipping == nil },
	models.FieldSaleFee:      func(i *models.ItemModel, _ valuation.Values) bool { return i.SaleFee == nil },
	models.FieldUsdToJpyRate: func(i *models.ItemModel, _ valuation.Values) bool { return i.UsdToJpyRate == nil },
	models.FieldGrade: func(i *models.ItemModel, v valuation.Values) bool {
		if latest, ok := valuation.LatestRecord(i.GradingRecords); ok {
			return latest.IsCracked || latest.Grade == nil
		}
		return v.Grade.IsAbsent()
	},
	models.FieldCert: func(i *models.ItemModel, v valuation.Values) bool {
		if latest, ok := valuation.LatestRecord(i.GradingRecords); ok {
			return latest.IsCracked || latest.Cert == nil
		}
		return v.Cert.IsAbsent()
	},
}

// ValidateItem runs every item rule for a new item and reports all violations at once.
func ValidateItem(item *models.ItemModel) error {
	e := checkItem(item)
	if !item.Intent.Allows(item.Status) {
		e.add(RuleStatusForIntent, fmt.Sprintf("Item with intent %s cannot have status %s (allowed: %s)",
			item.Intent, item.Status, formatStatuses(item.Intent.AllowedStatuses())),
			"intent", "status")
	}
	return e.err()
}

// ValidateItemUpdate applies update to a copy of current and validates the result. The
// intent/status pair is checked as it will be stored, taking whichever side the update does
// not supply from current.
func ValidateItemUpdate(current *models.ItemModel, update models.ItemUpdate) (*models.ItemModel, error) {
	merged := *current
	merged.Qualifiers = append([]models.Qualifier{}, current.Qualifiers...)
	update.ApplyTo(&merged)

	e := checkItem(&merged)
	if !merged.Intent.Allows(merged.Status) {
		e.add(RuleIntentStatusUpdate, fmt.Sprintf("Item %d cannot have intent %s with status %s (allowed: %s)",
			merged.ID, merged.Intent, merged.Status, formatStatuses(merged.Intent.AllowedStatuses())),
			"intent", "status")
	}
	if err := e.err(); err != nil {
		return nil, err
	}
	return &merged, nil
}

func checkItem(item *models.ItemModel) *ValidationError {
	e := &ValidationError{}

	if strings.TrimSpace(item.Name) == "" {
		e.add(RuleRequiredText, "Item name cannot be blank", "name")
	}
	if strings.TrimSpace(item.SetName) == "" {
		e.add(RuleRequiredText, "Item set name cannot be blank", "set_name")
	}

	checkEnums(e, item)

	if bad := lo.Filter(item.Qualifiers, func(q models.Qualifier, _ int) bool { return !q.IsValid() }); len(bad) > 0 {
		e.add(RuleQualifiers, fmt.Sprintf("Qualifiers must be defined Qualifier values (got %v)", bad), "qualifiers")
	}

	if item.ListDate != nil && item.ListDate.Before(item.PurchaseDate) {
		e.add(RuleListDate, fmt.Sprintf("Listing date cannot be before purchase date (got listing date: %s, purchase date: %s)",
			formatDate(*item.ListDate), formatDate(item.PurchaseDate)), "list_date", "purchase_date")
	}

	if item.ListDate != nil && item.SaleDate != nil && item.SaleDate.Before(*item.ListDate) {
		e.add(RuleSaleDate, fmt.Sprintf("Sale date cannot be before listing date (got sale date: %s, listing date: %s)",
			formatDate(*item.SaleDate), formatDate(*item.ListDate)), "sale_date", "list_date")
	}

	if item.Status.IsValid() {
		values := valuation.Evaluate(item)

		missing := lo.Filter(item.Status.RequiredFields(), func(f string, _ int) bool { return isNull[f](item, values) })
		if len(missing) > 0 {
			e.add(RuleRequiredFields, fmt.Sprintf("Status %s requires the following missing fields: %s",
				item.Status, formatFields(missing)), missing...)
		}

		notNull := lo.Filter(item.Status.RequiredToBeNull(), func(f string, _ int) bool { return !isNull[f](item, values) })
		if len(notNull) > 0 {
			e.add(RuleRequiredNullFields, fmt.Sprintf("Status %s requires the following fields to be null: %s",
				item.Status, formatFields(notNull)), notNull...)
		}
	}

	listedOrSold := item.Status == models.StatusListed || item.Status == models.StatusClosed
	switch {
	case listedOrSold && item.ListType == models.ListingTypeNoList:
		e.add(RuleListingType, "Item cannot have list_type of NO_LIST if listed or sold", "list_type", "status")
	case !listedOrSold && item.ListType != models.ListingTypeNoList:
		e.add(RuleListingType, "Item cannot have a list_type other than NO_LIST if not listed or sold", "list_type", "status")
	}

	if item.GroupDiscount && item.Status != models.StatusClosed {
		e.add(RuleGroupDiscount, "Group discount cannot be assigned to an unsold item", "group_discount", "status")
	}

	if item.AuditTarget && listedOrSold {
		e.add(RuleAuditTarget, "Item assigned as an audit target can not be listed or closed", "audit_target", "status")
	}

	return e
}

func checkEnums(e *ValidationError, item *models.ItemModel) {
	checks := []struct {
		field string
		valid bool
		value fmt.Stringer
	}{
		{"category", item.Category.IsValid(), item.Category},
		{"language", item.Language.IsValid(), item.Language},
		{"purchase_grading_company", item.PurchaseGradingCompany.IsValid(), item.PurchaseGradingCompany},
		{"status", item.Status.IsValid(), item.Status},
		{"intent", item.Intent.IsValid(), item.Intent},
		{"list_type", item.ListType.IsValid(), item.ListType},
		{"object_variant", item.ObjectVariant.IsValid(), item.ObjectVariant},
	}
	for _, c := range checks {
		if !c.valid {
			e.add(RuleEnumRange, fmt.Sprintf("Field %s has undefined value %s", c.field, c.value), c.field)
		}
	}
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func formatFields(fields []string) string {
	return "[" + strings.Join(fields, ", ") + "]"
}

func formatStatuses(statuses []models.Status) string {
	return formatFields(lo.Map(statuses, func(s models.Status, _ int) string { return s.String() }))
}
