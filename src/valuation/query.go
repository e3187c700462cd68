package valuation

import (
	"strings"

	"github.com/CardLedger/CardLedger-Backend/src/models"
	"gorm.io/gorm"
)

type valuesRow struct {
	ID               int                   `gorm:"column:id"`
	TotalGradingFees int                   `gorm:"column:total_grading_fees"`
	TotalCost        int                   `gorm:"column:total_cost"`
	GradingCompany   models.GradingCompany `gorm:"column:grading_company"`
	Grade            *float64              `gorm:"column:grade"`
	Cert             *int                  `gorm:"column:cert"`
	TotalFees        *float64              `gorm:"column:total_fees"`
	ReturnUSD        *float64              `gorm:"column:return_usd"`
	ReturnJPY        *int                  `gorm:"column:return_jpy"`
	NetJPY           *int                  `gorm:"column:net_jpy"`
	NetPercent       *float64              `gorm:"column:net_percent"`
}

// QueryValues evaluates the derived values of the given items inside the database.
func QueryValues(db *gorm.DB, ids []int) (map[int]Values, error) {
	var rows []valuesRow
	err := db.Table("items").
		Select("items.id, "+strings.Join(SelectList(), ", ")).
		Where("items.id IN ?", ids).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	values := make(map[int]Values, len(rows))
	for _, row := range rows {
		values[row.ID] = Values{
			TotalGradingFees: row.TotalGradingFees,
			TotalCost:        row.TotalCost,
			GradingCompany:   row.GradingCompany,
			Grade:            optionOf(row.Grade),
			Cert:             optionOf(row.Cert),
			TotalFees:        optionOf(row.TotalFees),
			ReturnUSD:        optionOf(row.ReturnUSD),
			ReturnJPY:        optionOf(row.ReturnJPY),
			NetJPY:           optionOf(row.NetJPY),
			NetPercent:       optionOf(row.NetPercent),
		}
	}
	return values, nil
}

// StatusTotals aggregates the items holding one status.
type StatusTotals struct {
	Status      models.Status `json:"status" gorm:"column:status"`
	NumItems    int           `json:"numItems" gorm:"column:num_items"`
	TotalCost   int           `json:"totalCost" gorm:"column:total_cost"`
	TotalReturn int           `json:"totalReturn" gorm:"column:total_return"`
	TotalNet    int           `json:"totalNet" gorm:"column:total_net"`
}

// QueryTotals sums cost, return and net per status. Unsold items add nothing to return and net.
func QueryTotals(db *gorm.DB) ([]StatusTotals, error) {
	var totals []StatusTotals
	err := db.Table("items").
		Select(strings.Join([]string{
			"items.status AS status",
			"COUNT(*) AS num_items",
			"CAST(COALESCE(SUM(" + ExprTotalCost.String() + "), 0) AS BIGINT) AS total_cost",
			"CAST(COALESCE(SUM(" + ExprReturnJPY.String() + "), 0) AS BIGINT) AS total_return",
			"CAST(COALESCE(SUM(" + ExprNetJPY.String() + "), 0) AS BIGINT) AS total_net",
		}, ", ")).
		Group("items.status").
		Order("items.status").
		Scan(&totals).Error
	return totals, err
}
