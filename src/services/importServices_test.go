package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/CardLedger/CardLedger-Backend/src/models"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	excelize "github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, sheet string, rows ...[]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", sheet))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

var importHeader = []interface{}{
	"name", "setName", "category", "language", "qualifiers", "purchaseDate", "purchasePrice",
	"status", "intent", "notes",
}

func TestImportItemsFromExcel(t *testing.T) {
	f := newFixture(t)
	buf := workbook(t, "Inventory",
		importHeader,
		[]interface{}{"Charizard", "Base Set", "CARD", "ENGLISH", "FIRST_EDITION", "2024-01-10", 25000, "STORAGE", "GRADE", "ignored"},
		[]interface{}{},
		[]interface{}{"Booster", "Jungle", "PACK", "JAPANESE", nil, "2024-02-01", 8000, "VAULT", "KEEP"},
		[]interface{}{"Broken", "Fossil", "CARD", "ELVISH", nil, "2024-02-01", 100, "STORAGE", "KEEP"},
		[]interface{}{"Listed keeper", "Fossil", "CARD", "ENGLISH", nil, "2024-02-01", 100, "LISTED", "KEEP"},
	)

	result, err := f.items.ImportItemsFromExcel(buf)
	require.NoError(t, err)
	require.Equal(t, 2, result.Imported)
	require.Len(t, result.Errors, 2)
	require.Equal(t, "Row 5: Invalid Language: ELVISH", result.Errors[0])
	require.Contains(t, result.Errors[1], "Row 6: ")

	items, err := f.items.GetNewestItems(0, 10)
	require.NoError(t, err)
	require.Equal(t, []string{"Charizard", "Booster"}, lo.Map(items, func(i models.ItemModel, _ int) string { return i.Name }))
	require.Equal(t, []models.Qualifier{models.QualifierFirstEdition}, []models.Qualifier(items[0].Qualifiers))
	require.Equal(t, 25000, items[0].PurchasePrice)
	require.Equal(t, models.CategoryPack, items[1].Category)
}

func TestImportRejectsInvalidWorkbook(t *testing.T) {
	f := newFixture(t)
	_, err := f.items.ImportItemsFromExcel(bytes.NewBufferString("not a workbook"))
	require.ErrorContains(t, err, "invalid excel file")
}

type stubDownloader struct {
	body []byte
	err  error
	url  string
}

func (d *stubDownloader) Download(_ context.Context, fileURL string) (io.ReadCloser, string, error) {
	d.url = fileURL
	if d.err != nil {
		return nil, "", d.err
	}
	return io.NopCloser(bytes.NewReader(d.body)), "inventory.xlsx", nil
}

func TestImportItemsFromURL(t *testing.T) {
	f := newFixture(t)
	buf := workbook(t, ItemsSheet,
		importHeader,
		[]interface{}{"Mew", "Promo", "CARD", "ENGLISH", "", "2024-01-10", 3000, "STORAGE", "KEEP"},
	)
	d := &stubDownloader{body: buf.Bytes()}

	result, err := f.items.ImportItemsFromURL(context.Background(), d, "https://drive.google.com/file/d/abc/view")
	require.NoError(t, err)
	require.Equal(t, 1, result.Imported)
	require.Equal(t, "https://drive.google.com/file/d/abc/view", d.url)

	_, err = f.items.ImportItemsFromURL(context.Background(), &stubDownloader{err: errors.New("offline")}, "x")
	require.EqualError(t, err, "offline")
}

func TestExportRoundTrip(t *testing.T) {
	f := searchFixture(t)
	export := NewExportService(f.items, f.submissions)

	var buf bytes.Buffer
	require.NoError(t, export.ExportToExcel(&buf, ItemSearch{}))

	book, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer book.Close()
	require.Equal(t, []string{ItemsSheet, SubmissionsSheet}, book.GetSheetList())

	rows, err := book.GetRows(ItemsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 6)
	require.Equal(t, "name", rows[0][0])
	require.Equal(t, "Charizard", rows[1][0])

	summaries, err := book.GetRows(SubmissionsSheet)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	require.Equal(t, "1", summaries[1][0])
	require.Equal(t, "PSA", summaries[1][1])

	// the exported items sheet imports back into an empty inventory
	fresh := newFixture(t)
	result, err := fresh.items.ImportItemsFromExcel(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Empty(t, result.Errors)
	require.Equal(t, 5, result.Imported)

	imported, err := fresh.items.GetNewestItems(0, 10)
	require.NoError(t, err)
	original, err := f.items.GetNewestItems(0, 10)
	require.NoError(t, err)
	for i := range original {
		require.Equal(t, original[i].Name, imported[i].Name)
		require.Equal(t, original[i].Status, imported[i].Status)
		require.Equal(t, original[i].SaleTotal, imported[i].SaleTotal)
		require.Equal(t, []models.Qualifier(original[i].Qualifiers), []models.Qualifier(imported[i].Qualifiers))
	}
}
