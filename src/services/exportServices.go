package services

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/CardLedger/CardLedger-Backend/src/dtos"
	"github.com/CardLedger/CardLedger-Backend/src/models"
	"github.com/CardLedger/CardLedger-Backend/src/valuation"
	"github.com/samber/lo"
	"github.com/samber/mo"
	excelize "github.com/xuri/excelize/v2"
)

const SubmissionsSheet = "Submissions"

// derivedItemColumns follow the item fields in exported sheets. Import ignores them.
var derivedItemColumns = []string{"totalCost", "gradingCompany", "grade", "cert", "returnJpy", "netJpy", "netPercent"}

var submissionColumns = []string{
	"submissionNumber", "submissionCompany", "submissionDate", "returnDate", "breakEvenDate",
	"cardCost", "gradingCost", "totalCost", "totalReturn", "totalProfit", "profitOnSold",
	"numCards", "numSold", "percentSold", "profitPerSold", "numClosed", "percentClosed", "profitPerClosed",
}

type ExportService struct {
	items       *ItemService
	submissions *SubmissionService
}

func NewExportService(items *ItemService, submissions *SubmissionService) *ExportService {
	return &ExportService{items: items, submissions: submissions}
}

// ExportToExcel writes a workbook with every item matching search and every submission
// summary. The Items sheet can be imported back with ImportItemsFromExcel.
func (s *ExportService) ExportToExcel(w io.Writer, search ItemSearch) error {
	items, err := s.items.SearchItems(search, 0, -1)
	if err != nil {
		return err
	}
	summaries, err := s.submissions.GetSubmissionSummaries(0, -1)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetList()[0], ItemsSheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(SubmissionsSheet); err != nil {
		return err
	}

	itemRows := lo.Map(items, func(item models.ItemModel, _ int) []interface{} { return itemRow(&item) })
	if err := writeSheet(f, ItemsSheet, append(append([]string{}, dtos.ItemFields...), derivedItemColumns...), itemRows); err != nil {
		return err
	}
	summaryRows := lo.Map(summaries, func(s SubmissionSummary, _ int) []interface{} { return summaryRow(&s) })
	if err := writeSheet(f, SubmissionsSheet, submissionColumns, summaryRows); err != nil {
		return err
	}

	return f.Write(w)
}

func writeSheet(f *excelize.File, sheet string, header []string, rows [][]interface{}) error {
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	if err := f.SetRowStyle(sheet, 1, 1, bold); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing %s row %d: %w", sheet, i+2, err)
		}
	}
	return nil
}

// itemRow follows dtos.ItemFields then derivedItemColumns.
func itemRow(item *models.ItemModel) []interface{} {
	v := valuation.Evaluate(item)
	qualifiers := lo.Map(item.Qualifiers, func(q models.Qualifier, _ int) string { return q.String() })
	return []interface{}{
		item.Name, item.SetName, item.Category.String(), item.Language.String(), strings.Join(qualifiers, ", "), cellOf(item.Details),
		dateCell(item.PurchaseDate), item.PurchasePrice, item.ImportFee, item.PurchaseGradingCompany.String(), cellOf(item.PurchaseGrade), cellOf(item.PurchaseCert),
		item.Status.String(), item.Intent.String(), item.CrackedFromPurchase,
		cellOf(item.ListPrice), item.ListType.String(), nullableDateCell(item.ListDate),
		cellOf(item.SaleTotal), nullableDateCell(item.SaleDate), cellOf(item.Shipping), cellOf(item.SaleFee), cellOf(item.UsdToJpyRate),
		item.GroupDiscount, item.AuditTarget, item.ObjectVariant.String(),
		v.TotalCost, v.GradingCompany.String(), optionCell(v.Grade), optionCell(v.Cert),
		optionCell(v.ReturnJPY), optionCell(v.NetJPY), optionCell(v.NetPercent),
	}
}

func summaryRow(s *SubmissionSummary) []interface{} {
	return []interface{}{
		s.SubmissionNumber, s.SubmissionCompany.String(), dateCell(s.SubmissionDate),
		nullableDateCell(s.ReturnDate), nullableDateCell(s.BreakEvenDate),
		s.CardCost, s.GradingCost, s.TotalCost, s.TotalReturn, s.TotalProfit, s.ProfitOnSold,
		s.NumCards, s.NumSold, s.PercentSold, s.ProfitPerSold, s.NumClosed, s.PercentClosed, s.ProfitPerClosed,
	}
}

func cellOf[T any](p *T) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

func optionCell[T any](o mo.Option[T]) interface{} {
	if v, ok := o.Get(); ok {
		return v
	}
	return nil
}

func dateCell(t time.Time) string {
	return t.Format(dtos.DateLayout)
}

func nullableDateCell(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return dateCell(*t)
}
