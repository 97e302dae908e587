package internal

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exportlens/internal/controllers"
	"exportlens/internal/parsers"
	"exportlens/internal/services"
	"exportlens/internal/statistic"
	"exportlens/internal/structures"
	"exportlens/internal/testutil"
)

func testHandler(t *testing.T) http.Handler {
	conf := &structures.Config{
		AppName: "ExportLens",
		Upload: structures.UploadConfig{
			MaxFileSize: 1024 * 1024,
			MaxFiles:    5,
			TempDir:     filepath.Join(t.TempDir(), "staging"),
		},
		Aggregation: structures.AggregationConfig{TopN: 10, PreviewRows: 10},
	}
	logger := &testutil.MockLogger{}
	metrics := testutil.NewMockMetrics()
	compressor, err := statistic.NewZstdCompressor()
	require.NoError(t, err)

	store := services.NewSessionStore(testutil.NewMockCache(), statistic.NewTableCodec(compressor), logger)
	fm := statistic.NewFileManager(conf, logger)
	svc := services.NewExportService(conf, logger, metrics, parsers.NewBuilder(parsers.NewDefaultRegistry()), store, fm)

	router := InitRoutes(controllers.NewApiController(logger, svc, conf))
	return NewHandler(controllers.NewHealthController(conf), conf, router, metrics)
}

func TestInitRoutes_RegistersSixRoutes(t *testing.T) {
	router := InitRoutes(controllers.NewApiController(&testutil.MockLogger{}, nil, &structures.Config{}))
	routes := router.GetRoutes()

	require.Len(t, routes, 6)
	urls := make([]string, len(routes))
	for i, r := range routes {
		urls[i] = r.Url
	}
	assert.ElementsMatch(t, []string{"/upload", "/preview", "/chart", "/download/csv", "/download/urls", "/session"}, urls)
}

func TestHandler_MethodEnforcement(t *testing.T) {
	h := testHandler(t)
	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/upload"},
		{http.MethodPost, "/preview"},
		{http.MethodPost, "/chart"},
		{http.MethodPost, "/download/csv"},
		{http.MethodDelete, "/download/urls"},
		{http.MethodGet, "/session"},
	}
	for _, tt := range tests {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.path, nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rr.Code, tt.method+" "+tt.path)
	}
}

func TestHandler_Health(t *testing.T) {
	rr := httptest.NewRecorder()
	testHandler(t).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestHandler_UploadThenDownload(t *testing.T) {
	h := testHandler(t)

	export := map[string]any{
		"Activity": map[string]any{
			"Video Browsing History": map[string]any{"VideoList": []any{
				map[string]any{"Date": "2022-11-05 16:24:24", "Link": "https://x/1"},
				map[string]any{"Date": "2022-12-01 08:00:00", "Link": "https://x/2"},
			}},
		},
	}
	body, err := json.Marshal(services.UploadRequest{
		Platform: "tiktok",
		Files:    []services.UploadFile{{Name: "user_data.json", Content: testutil.Payload(export)}},
	})
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(string(body))))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	session := rr.Header().Get(controllers.SessionHeader)
	require.NotEmpty(t, session)

	get := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set(controllers.SessionHeader, session)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr
	}

	csv := get("/download/csv")
	assert.Equal(t, http.StatusOK, csv.Code)
	assert.Equal(t, "Date,Link,Source\n2022-11-05 16:24:24,https://x/1,Browsing\n2022-12-01 08:00:00,https://x/2,Browsing\n", csv.Body.String())

	urls := get("/download/urls")
	assert.Equal(t, "https://x/1,https://x/2", urls.Body.String())

	chart := get("/chart?granularity=year")
	assert.Equal(t, http.StatusOK, chart.Code)
	assert.Contains(t, chart.Body.String(), `{"period":"2022","count":2}`)

	req := httptest.NewRequest(http.MethodDelete, "/session", nil)
	req.Header.Set(controllers.SessionHeader, session)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	assert.Equal(t, http.StatusNotFound, get("/preview").Code)
}
