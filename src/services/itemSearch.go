package services

import (
	"fmt"
	"time"

	"github.com/CardLedger/CardLedger-Backend/src/models"
	"github.com/CardLedger/CardLedger-Backend/src/valuation"
	"github.com/samber/lo"
	"github.com/tidwall/match"
	"gorm.io/gorm"
)

// ItemSearch is a sparse item filter; nil fields and empty lists match everything. Text fields
// holding * or ? are matched as wildcard patterns, anything else must match exactly.
type ItemSearch struct {
	Name    *string
	SetName *string
	Details *string

	Category               *models.Category
	Language               *models.Language
	Status                 *models.Status
	Intent                 *models.Intent
	ListType               *models.ListingType
	ObjectVariant          *models.ObjectVariant
	PurchaseGradingCompany *models.GradingCompany

	CrackedFromPurchase *bool
	GroupDiscount       *bool
	AuditTarget         *bool

	// Qualifiers must all be present on the item.
	Qualifiers []models.Qualifier

	// Effective grading after the item's history is applied.
	GradingCompany *models.GradingCompany
	Grade          *float64
	Cert           *int

	// SubmissionNumbers matches items holding a record in any of the submissions.
	SubmissionNumbers []int
	// CrackedFrom matches items cracked out of the slab returned by that submission.
	CrackedFrom *int

	PurchaseDateMin, PurchaseDateMax   *time.Time
	PurchasePriceMin, PurchasePriceMax *int
	ListDateMin, ListDateMax           *time.Time
	SaleTotalMin, SaleTotalMax         *float64
	SaleDateMin, SaleDateMax           *time.Time
	TotalCostMin, TotalCostMax         *int
	ReturnJPYMin, ReturnJPYMax         *int
	NetJPYMin, NetJPYMax               *int
	NetPercentMin, NetPercentMax       *float64
}

// SearchItems returns one page of matching items, selected newest first and returned in
// ascending id order. Filters the database can evaluate, including the derived values, run in
// SQL; qualifier, cracked_from and wildcard filters run on the loaded rows before paging.
func (s *ItemService) SearchItems(search ItemSearch, skip, limit int) ([]models.ItemModel, error) {
	query := search.where(withGrading(s.db.Model(&models.ItemModel{}))).Order("items.id DESC")

	var items []models.ItemModel
	if !search.needsPostFilter() {
		if err := query.Offset(skip).Limit(limit).Find(&items).Error; err != nil {
			return nil, err
		}
		return pageAscending(items), nil
	}

	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	items = lo.Filter(items, func(item models.ItemModel, _ int) bool {
		return search.matches(&item)
	})
	return pageAscending(page(items, skip, limit)), nil
}

func (f ItemSearch) where(q *gorm.DB) *gorm.DB {
	q = textFilter(q, "items.name", f.Name)
	q = textFilter(q, "items.set_name", f.SetName)
	q = textFilter(q, "items.details", f.Details)

	q = enumFilter(q, "items.category = ?", f.Category)
	q = enumFilter(q, "items.language = ?", f.Language)
	q = enumFilter(q, "items.status = ?", f.Status)
	q = enumFilter(q, "items.intent = ?", f.Intent)
	q = enumFilter(q, "items.list_type = ?", f.ListType)
	q = enumFilter(q, "items.object_variant = ?", f.ObjectVariant)
	q = enumFilter(q, "items.purchase_grading_company = ?", f.PurchaseGradingCompany)

	q = filter(q, "items.cracked_from_purchase = ?", f.CrackedFromPurchase)
	q = filter(q, "items.group_discount = ?", f.GroupDiscount)
	q = filter(q, "items.audit_target = ?", f.AuditTarget)

	q = enumFilter(q, derived(valuation.ExprGradingCompany, "= ?"), f.GradingCompany)
	q = filter(q, derived(valuation.ExprGrade, "= ?"), f.Grade)
	q = filter(q, derived(valuation.ExprCert, "= ?"), f.Cert)

	if len(f.SubmissionNumbers) > 0 {
		q = q.Where("EXISTS (SELECT 1 FROM grading_records gr WHERE gr.item_id = items.id AND gr.submission_number IN ?)",
			f.SubmissionNumbers)
	}

	q = between(q, "items.purchase_date", f.PurchaseDateMin, f.PurchaseDateMax)
	q = between(q, "items.purchase_price", f.PurchasePriceMin, f.PurchasePriceMax)
	q = between(q, "items.list_date", f.ListDateMin, f.ListDateMax)
	q = between(q, "items.sale_total", f.SaleTotalMin, f.SaleTotalMax)
	q = between(q, "items.sale_date", f.SaleDateMin, f.SaleDateMax)
	q = between(q, valuation.ExprTotalCost.String(), f.TotalCostMin, f.TotalCostMax)
	q = between(q, valuation.ExprReturnJPY.String(), f.ReturnJPYMin, f.ReturnJPYMax)
	q = between(q, valuation.ExprNetJPY.String(), f.NetJPYMin, f.NetJPYMax)
	q = between(q, valuation.ExprNetPercent.String(), f.NetPercentMin, f.NetPercentMax)
	return q
}

func (f ItemSearch) needsPostFilter() bool {
	return len(f.Qualifiers) > 0 || f.CrackedFrom != nil ||
		isPattern(f.Name) || isPattern(f.SetName) || isPattern(f.Details)
}

func (f ItemSearch) matches(item *models.ItemModel) bool {
	if !lo.Every([]models.Qualifier(item.Qualifiers), f.Qualifiers) {
		return false
	}
	if f.CrackedFrom != nil && !lo.SomeBy(item.GradingRecords, func(r models.GradingRecordModel) bool {
		return r.SubmissionNumber == *f.CrackedFrom && r.IsCracked
	}) {
		return false
	}
	return matchPattern(f.Name, &item.Name) &&
		matchPattern(f.SetName, &item.SetName) &&
		matchPattern(f.Details, item.Details)
}

func isPattern(p *string) bool {
	return p != nil && match.IsPattern(*p)
}

// matchPattern only judges wildcard patterns; exact values were already applied in SQL.
func matchPattern(p, value *string) bool {
	if !isPattern(p) {
		return true
	}
	return value != nil && match.Match(*value, *p)
}

func textFilter(q *gorm.DB, column string, v *string) *gorm.DB {
	if v == nil || match.IsPattern(*v) {
		return q
	}
	return q.Where(column+" = ?", *v)
}

func filter[T any](q *gorm.DB, cond string, v *T) *gorm.DB {
	if v == nil {
		return q
	}
	return q.Where(cond, *v)
}

func enumFilter[E ~int](q *gorm.DB, cond string, v *E) *gorm.DB {
	if v == nil {
		return q
	}
	return q.Where(cond, int(*v))
}

func between[T any](q *gorm.DB, expr string, lower, upper *T) *gorm.DB {
	q = filter(q, expr+" >= ?", lower)
	return filter(q, expr+" <= ?", upper)
}

func derived(e valuation.Expr, op string) string {
	return fmt.Sprintf("%s %s", e, op)
}

func page[T any](rows []T, skip, limit int) []T {
	skip = max(skip, 0)
	if skip >= len(rows) {
		return nil
	}
	rows = rows[skip:]
	if limit >= 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}
