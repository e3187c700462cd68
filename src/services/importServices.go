package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/CardLedger/CardLedger-Backend/src/dtos"
	"github.com/go-kit/log/level"
	"github.com/samber/lo"
	excelize "github.com/xuri/excelize/v2"
)

const ItemsSheet = "Items"

type ImportResult struct {
	Imported int      `json:"imported"`
	Errors   []string `json:"errors"`
}

// Downloader fetches a remote spreadsheet.
type Downloader interface {
	Download(ctx context.Context, fileURL string) (io.ReadCloser, string, error)
}

// ImportItemsFromExcel creates one item per row of the Items sheet, or of the first sheet
// when there is none. The first row holds the field names used in request bodies; other
// columns are ignored. Rows are imported independently and failures are reported per row.
func (s *ItemService) ImportItemsFromExcel(r io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("invalid excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("excel file has no sheets")
	}
	sheet := sheets[0]
	if lo.Contains(sheets, ItemsSheet) {
		sheet = ItemsSheet
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", sheet, err)
	}

	result := &ImportResult{Errors: []string{}}
	if len(rows) == 0 {
		return result, nil
	}
	header := lo.Map(rows[0], func(h string, _ int) string { return strings.TrimSpace(h) })

	for i, row := range rows[1:] {
		line := i + 2
		fields := make(map[string]string)
		for col, cell := range row {
			if col >= len(header) || !lo.Contains(dtos.ItemFields, header[col]) || strings.TrimSpace(cell) == "" {
				continue
			}
			fields[header[col]] = cell
		}
		if len(fields) == 0 {
			continue
		}

		body, err := json.Marshal(fields)
		if err != nil {
			return nil, err
		}
		item, err := dtos.ParseItemCreate(body)
		if err == nil {
			_, err = s.CreateItem(item)
		}
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", line, err))
			continue
		}
		result.Imported++
	}

	level.Info(s.logger).Log("msg", "items imported", "sheet", sheet, "imported", result.Imported, "failed", len(result.Errors))
	return result, nil
}

// ImportItemsFromURL downloads a spreadsheet and imports it like ImportItemsFromExcel.
func (s *ItemService) ImportItemsFromURL(ctx context.Context, d Downloader, fileURL string) (*ImportResult, error) {
	body, name, err := d.Download(ctx, fileURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	level.Info(s.logger).Log("msg", "importing remote spreadsheet", "name", name)
	return s.ImportItemsFromExcel(body)
}
