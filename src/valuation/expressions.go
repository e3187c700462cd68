package valuation

import (
	"fmt"

	"github.com/CardLedger/CardLedger-Backend/src/models"
)

// Expr is a SQL expression evaluated against a row of the items table. Expressions are
// written for both SQLite and PostgreSQL: ROUND is applied to NUMERIC casts so both round
// half away from zero.
type Expr string

func (e Expr) String() string {
	return string(e)
}

const latestRecord = `FROM grading_records gr WHERE gr.item_id = items.id ORDER BY gr.submission_number DESC LIMIT 1`

var (
	ExprTotalGradingFees = Expr(`COALESCE((SELECT SUM(gr.grading_fee) FROM grading_records gr WHERE gr.item_id = items.id), 0)`)

	ExprTotalCost = Expr(fmt.Sprintf(`(items.purchase_price + %s + items.import_fee)`, ExprTotalGradingFees))

	exprHasRecords    = `EXISTS (SELECT 1 FROM grading_records gr WHERE gr.item_id = items.id)`
	exprLatestCracked = `COALESCE((SELECT gr.is_cracked ` + latestRecord + `), FALSE)`
	exprLatestGrade   = `(SELECT gr.grade ` + latestRecord + `)`
	exprLatestCert    = `(SELECT gr.cert ` + latestRecord + `)`
	exprLatestCompany = `(SELECT s.submission_company FROM grading_records gr ` +
		`JOIN submissions s ON s.submission_number = gr.submission_number ` +
		`WHERE gr.item_id = items.id ORDER BY gr.submission_number DESC LIMIT 1)`

	exprRaw = fmt.Sprintf(`(%s = TRUE OR (NOT %s AND items.cracked_from_purchase = TRUE))`,
		exprLatestCracked, exprHasRecords)

	ExprGradingCompany = Expr(fmt.Sprintf(`(CASE WHEN %s THEN %d WHEN %s THEN %s ELSE items.purchase_grading_company END)`,
		exprRaw, int(models.GradingCompanyRaw), exprHasRecords, exprLatestCompany))

	ExprGrade = Expr(fmt.Sprintf(`(CASE WHEN %s THEN NULL ELSE COALESCE(%s, items.purchase_grade) END)`,
		exprRaw, exprLatestGrade))

	ExprCert = Expr(fmt.Sprintf(`(CASE WHEN %s THEN NULL ELSE COALESCE(%s, items.purchase_cert) END)`,
		exprRaw, exprLatestCert))

	ExprTotalFees = Expr(`(CASE WHEN items.shipping IS NOT NULL AND items.sale_fee IS NOT NULL ` +
		`THEN ROUND(CAST(items.shipping + items.sale_fee AS NUMERIC), 2) ELSE NULL END)`)

	ExprReturnUSD = Expr(fmt.Sprintf(`(CASE WHEN items.sale_total IS NOT NULL AND %[1]s IS NOT NULL `+
		`THEN ROUND(CAST(items.sale_total - %[1]s AS NUMERIC), 2) ELSE NULL END)`, ExprTotalFees))

	ExprReturnJPY = Expr(fmt.Sprintf(`(CASE WHEN %[1]s IS NOT NULL AND items.usd_to_jpy_rate IS NOT NULL `+
		`THEN CAST(ROUND(CAST(%[1]s * items.usd_to_jpy_rate AS NUMERIC)) AS INTEGER) ELSE NULL END)`, ExprReturnUSD))

	ExprNetJPY = Expr(fmt.Sprintf(`(CASE WHEN %[1]s IS NOT NULL THEN %[1]s - %[2]s ELSE NULL END)`,
		ExprReturnJPY, ExprTotalCost))

	ExprNetPercent = Expr(fmt.Sprintf(`(CASE WHEN %[2]s = 0 THEN 0.0 WHEN %[1]s IS NULL THEN NULL `+
		`ELSE ROUND(CAST(100.0 * %[1]s / %[2]s AS NUMERIC), 2) END)`, ExprNetJPY, ExprTotalCost))
)

// Derived column names, as exposed to search filters and query results.
const (
	ColumnTotalGradingFees = "total_grading_fees"
	ColumnTotalCost        = "total_cost"
	ColumnGradingCompany   = "grading_company"
	ColumnGrade            = "grade"
	ColumnCert             = "cert"
	ColumnTotalFees        = "total_fees"
	ColumnReturnUSD        = "return_usd"
	ColumnReturnJPY        = "return_jpy"
	ColumnNetJPY           = "net_jpy"
	ColumnNetPercent       = "net_percent"
)

var columns = map[string]Expr{
	ColumnTotalGradingFees: ExprTotalGradingFees,
	ColumnTotalCost:        ExprTotalCost,
	ColumnGradingCompany:   ExprGradingCompany,
	ColumnGrade:            ExprGrade,
	ColumnCert:             ExprCert,
	ColumnTotalFees:        ExprTotalFees,
	ColumnReturnUSD:        ExprReturnUSD,
	ColumnReturnJPY:        ExprReturnJPY,
	ColumnNetJPY:           ExprNetJPY,
	ColumnNetPercent:       ExprNetPercent,
}

var columnOrder = []string{
	ColumnTotalGradingFees, ColumnTotalCost, ColumnGradingCompany, ColumnGrade, ColumnCert,
	ColumnTotalFees, ColumnReturnUSD, ColumnReturnJPY, ColumnNetJPY, ColumnNetPercent,
}

// Column returns the expression computing a derived column.
func Column(name string) (Expr, bool) {
	e, ok := columns[name]
	return e, ok
}

// SelectList renders "expr AS name" for every derived column.
func SelectList() []string {
	list := make([]string, 0, len(columnOrder))
	for _, name := range columnOrder {
		list = append(list, fmt.Sprintf("%s AS %s", columns[name], name))
	}
	return list
}
