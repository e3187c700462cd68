package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/CardLedger/CardLedger-Backend/src/db/dbtest"
	"github.com/CardLedger/CardLedger-Backend/src/middleware"
	"github.com/CardLedger/CardLedger-Backend/src/routes"
	"github.com/CardLedger/CardLedger-Backend/src/services"
	"github.com/gin-gonic/gin"
	"github.com/go-kit/log"
	"github.com/stretchr/testify/require"
)

const testPageLimit = 3

type testServer struct {
	router *gin.Engine
}

func newTestServer(t *testing.T, downloader services.Downloader) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn := dbtest.NewTestDB(t)
	cache := services.NewCache()
	logger := log.NewNopLogger()
	items := services.NewItemService(conn, cache, logger)
	submissions := services.NewSubmissionService(conn, cache, logger)
	records := services.NewGradingRecordService(conn, cache, logger)

	router := gin.New()
	router.Use(middleware.RequestLogger(logger))
	routes.SetupItemRoutes(router, items, services.NewExportService(items, submissions), downloader, testPageLimit)
	routes.SetupSubmissionRoutes(router, submissions, testPageLimit)
	routes.SetupGradingRecordRoutes(router, records, testPageLimit)
	return &testServer{router: router}
}

func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

type object = map[string]interface{}

func itemBody(name, status, intent string) string {
	return fmt.Sprintf(`{
		"name": %q,
		"setName": "Base Set",
		"category": "CARD",
		"language": "ENGLISH",
		"qualifiers": ["FIRST_EDITION"],
		"purchaseDate": "2024-01-10",
		"purchasePrice": 10000,
		"importFee": 500,
		"status": %q,
		"intent": %q
	}`, name, status, intent)
}

// createItem posts an item and returns its id.
func (s *testServer) createItem(t *testing.T, name, status, intent string) int {
	t.Helper()
	w := s.do(t, http.MethodPost, "/items", itemBody(name, status, intent))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return int(decode[object](t, w)["id"].(float64))
}
