package controllers_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/CardLedger/CardLedger-Backend/src/middleware"
	"github.com/stretchr/testify/require"
	excelize "github.com/xuri/excelize/v2"
)

func TestCreateAndGetItem(t *testing.T) {
	s := newTestServer(t, nil)

	id := s.createItem(t, "Charizard", "STORAGE", "GRADE")

	w := s.do(t, http.MethodGet, fmt.Sprintf("/items/%d", id), "")
	require.Equal(t, http.StatusOK, w.Code)
	item := decode[object](t, w)
	require.Equal(t, "Charizard", item["name"])
	require.Equal(t, "STORAGE", item["status"])
	require.Equal(t, "RAW", item["gradingCompany"])
	require.Equal(t, []interface{}{"FIRST_EDITION"}, item["qualifiers"])
	require.EqualValues(t, 10500, item["totalCost"])
	require.Nil(t, item["returnJpy"])
	require.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestItemRequestErrors(t *testing.T) {
	s := newTestServer(t, nil)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		error  string
	}{
		{"bad id", http.MethodGet, "/items/abc", "", http.StatusBadRequest, "Invalid item ID"},
		{"missing item", http.MethodGet, "/items/42", "", http.StatusNotFound, "Item not found"},
		{"missing edit", http.MethodPatch, "/items/42", `{"name": "x"}`, http.StatusNotFound, "Item not found"},
		{"missing delete", http.MethodDelete, "/items/42", "", http.StatusNotFound, "Item not found"},
		{"malformed body", http.MethodPost, "/items", `{"name":`, http.StatusBadRequest, "body: malformed JSON"},
		{"unknown enum", http.MethodPost, "/items", itemBody("x", "BURIED", "KEEP"), http.StatusBadRequest, "Invalid Status: BURIED"},
		{"unknown search parameter", http.MethodGet, "/items?colour=red", "", http.StatusBadRequest, "colour: unknown search parameter"},
		{"bad search value", http.MethodGet, "/items?purchasePriceMin=cheap", "", http.StatusBadRequest, "purchasePriceMin: "},
		{"bad limit", http.MethodGet, "/items?limit=0", "", http.StatusBadRequest, "Invalid limit parameter"},
		{"bad skip", http.MethodGet, "/items?skip=-1", "", http.StatusBadRequest, "Invalid skip parameter"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, tt.method, tt.path, tt.body)
			require.Equal(t, tt.status, w.Code, w.Body.String())
			require.Contains(t, decode[object](t, w)["error"], tt.error)
		})
	}
}

func TestCreateItemReportsViolations(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(t, http.MethodPost, "/items", itemBody("Keeper", "LISTED", "KEEP"))
	require.Equal(t, http.StatusBadRequest, w.Code)

	violations := decode[object](t, w)["violations"].([]interface{})
	rules := make([]string, 0, len(violations))
	for _, v := range violations {
		rules = append(rules, v.(map[string]interface{})["rule"].(string))
	}
	require.Contains(t, rules, "check_required_fields_based_on_status")
	require.Contains(t, rules, "appropriate_listing_type")
	require.Contains(t, rules, "appropriate_status_based_on_intent")
}

func TestEditAndDeleteItem(t *testing.T) {
	s := newTestServer(t, nil)
	id := s.createItem(t, "Blastoise", "STORAGE", "GRADE")
	path := fmt.Sprintf("/items/%d", id)

	w := s.do(t, http.MethodPatch, path, `{"details": "light whitening", "importFee": 800}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	item := decode[object](t, w)
	require.Equal(t, "light whitening", item["details"])
	require.EqualValues(t, 10800, item["totalCost"])

	w = s.do(t, http.MethodPatch, path, `{"details": null}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Nil(t, decode[object](t, w)["details"])

	w = s.do(t, http.MethodPatch, path, `{"listPrice": 99.5}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodDelete, path, "")
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, path, "").Code)
}

func TestSearchItems(t *testing.T) {
	s := newTestServer(t, nil)
	for _, name := range []string{"Pikachu", "Pikachu Illustrator", "Raichu", "Mewtwo"} {
		s.createItem(t, name, "STORAGE", "GRADE")
	}
	s.createItem(t, "Vaulted Pikachu", "VAULT", "KEEP")

	names := func(w *httptest.ResponseRecorder) []string {
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var names []string
		for _, item := range decode[[]object](t, w) {
			names = append(names, item["name"].(string))
		}
		return names
	}

	require.Equal(t, []string{"Raichu", "Mewtwo", "Vaulted Pikachu"}, names(s.do(t, http.MethodGet, "/items", "")))
	require.Equal(t, []string{"Pikachu Illustrator", "Raichu"}, names(s.do(t, http.MethodGet, "/items?skip=2&limit=2", "")))
	require.Equal(t, []string{"Pikachu", "Pikachu Illustrator"}, names(s.do(t, http.MethodGet, "/items?name=Pikachu*", "")))
	require.Equal(t, []string{"Vaulted Pikachu"}, names(s.do(t, http.MethodGet, "/items?status=vault&qualifiers=FIRST_EDITION", "")))
	require.Equal(t, []string{"Mewtwo"}, names(s.do(t, http.MethodGet, "/items?intent=GRADE&limit=1", "")))
}

func TestCountAndTotals(t *testing.T) {
	s := newTestServer(t, nil)
	s.createItem(t, "Pikachu", "STORAGE", "GRADE")
	s.createItem(t, "Raichu", "STORAGE", "GRADE")

	w := s.do(t, http.MethodGet, "/items/count", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.EqualValues(t, 2, decode[object](t, w)["count"])

	w = s.do(t, http.MethodGet, "/items/totals", "")
	require.Equal(t, http.StatusOK, w.Code)
	totals := decode[[]object](t, w)
	require.Len(t, totals, 1)
	require.Equal(t, "STORAGE", totals[0]["status"])
	require.EqualValues(t, 2, totals[0]["numItems"])
	require.EqualValues(t, 21000, totals[0]["totalCost"])
}

func uploadWorkbook(t *testing.T, rows ...[]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

var uploadRows = [][]interface{}{
	{"name", "setName", "category", "language", "purchaseDate", "purchasePrice", "status", "intent"},
	{"Gengar", "Fossil", "CARD", "ENGLISH", "2024-01-10", 4000, "STORAGE", "GRADE"},
	{"Gyarados", "Base Set", "CARD", "MARTIAN", "2024-01-10", 4000, "STORAGE", "GRADE"},
}

func TestImportItemsFromExcel(t *testing.T) {
	s := newTestServer(t, nil)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "inventory.xlsx")
	require.NoError(t, err)
	_, err = part.Write(uploadWorkbook(t, uploadRows...))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/items/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	result := decode[object](t, w)
	require.EqualValues(t, 1, result["imported"])
	require.Equal(t, []interface{}{"Row 3: Invalid Language: MARTIAN"}, result["errors"])

	require.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/items/import", "").Code)
}

type fakeDownloader struct {
	body []byte
	err  error
}

func (d fakeDownloader) Download(context.Context, string) (io.ReadCloser, string, error) {
	if d.err != nil {
		return nil, "", d.err
	}
	return io.NopCloser(bytes.NewReader(d.body)), "inventory.xlsx", nil
}

func TestImportItemsFromURL(t *testing.T) {
	s := newTestServer(t, fakeDownloader{body: uploadWorkbook(t, uploadRows[:2]...)})

	w := s.do(t, http.MethodPost, "/items/import/url", `{"url": "https://drive.google.com/file/d/abc123/view"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.EqualValues(t, 1, decode[object](t, w)["imported"])

	require.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/items/import/url", `{}`).Code)

	failing := newTestServer(t, fakeDownloader{err: errors.New("file is a folder")})
	w = failing.do(t, http.MethodPost, "/items/import/url", `{"url": "https://drive.google.com/file/d/abc123/view"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, decode[object](t, w)["error"], "file is a folder")
}

func TestExportToExcel(t *testing.T) {
	s := newTestServer(t, nil)
	s.createItem(t, "Gengar", "STORAGE", "GRADE")
	s.createItem(t, "Haunter", "VAULT", "KEEP")

	w := s.do(t, http.MethodGet, "/items/export?status=STORAGE", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	require.Contains(t, w.Header().Get("Content-Disposition"), "inventory.xlsx")

	f, err := excelize.OpenReader(w.Body)
	require.NoError(t, err)
	defer f.Close()
	require.Equal(t, []string{"Items", "Submissions"}, f.GetSheetList())

	rows, err := f.GetRows("Items")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "name", rows[0][0])
	require.Equal(t, "Gengar", rows[1][0])
}
