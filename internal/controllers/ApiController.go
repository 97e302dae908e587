package controllers

import (
	"errors"
	"net/http"
	"strconv"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"exportlens/internal/formatters"
	"exportlens/internal/models"
	"exportlens/internal/providers"
	"exportlens/internal/services"
	"exportlens/internal/statistic"
	"exportlens/internal/structures"
)

const (
	SessionHeader = "X-Session-ID"
	SessionCookie = "exportlens_session"
)

type ApiController struct {
	logger      providers.Logger
	service     services.ExportServiceInterface
	maxBodySize int64
}

func NewApiController(logger providers.Logger, service services.ExportServiceInterface, conf *structures.Config) *ApiController {
	// base64 inflates payloads by 4/3; leave room for the JSON envelope.
	perFile := conf.Upload.MaxFileSize/3*4 + 4096
	return &ApiController{
		logger:      logger,
		service:     service,
		maxBodySize: perFile * int64(max(conf.Upload.MaxFiles, 1)),
	}
}

// sessionID reads the caller's session from header or cookie. ok is false
// when none was supplied.
func sessionID(r *http.Request) (string, bool) {
	if id := r.Header.Get(SessionHeader); id != "" {
		return id, true
	}
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		return c.Value, true
	}
	return "", false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// statusFor maps pipeline errors onto HTTP status codes.
func statusFor(err error) int {
	var (
		noDataErr      *models.NoDataError
		missingErr     *models.MissingColumnError
		unsupportedErr *models.UnsupportedPlatformError
		decodeErr      *models.DecodeError
	)
	switch {
	case errors.Is(err, services.ErrNoTable):
		return http.StatusNotFound
	case errors.As(err, &noDataErr), errors.As(err, &missingErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &unsupportedErr), errors.As(err, &decodeErr):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (ac *ApiController) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		ac.logger.Errorf(providers.GetLogTypeByRequestType(r.Method), "%s %s: %s", r.Method, r.URL.Path, err)
		writeJSON(w, status, errorResponse{Error: "Internal Server Error", Kind: "internal"})
		return
	}
	writeJSON(w, status, errorResponse{Error: err.Error(), Kind: services.ErrorKind(err)})
}

type uploadResponse struct {
	*services.UploadResult
	Error *errorResponse `json:"error,omitempty"`
}

func (ac *ApiController) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, ac.maxBodySize)
	var req services.UploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Bad Request", Kind: "request"})
		return
	}

	id, ok := sessionID(r)
	if !ok {
		id = uuid.NewString()
		http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: id, Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode})
	}
	w.Header().Set(SessionHeader, id)
	req.SessionID = id

	result, err := ac.service.Process(&req)
	if err != nil {
		// Without a result the request itself was rejected before parsing.
		if result == nil {
			kind := services.ErrorKind(err)
			if kind == "internal" {
				kind = "request"
			}
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Kind: kind})
			return
		}
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			ac.logger.Errorf(providers.TypePost, "Session %s: %s", id, err)
			writeJSON(w, status, uploadResponse{UploadResult: result, Error: &errorResponse{Error: "Internal Server Error", Kind: "internal"}})
			return
		}
		writeJSON(w, status, uploadResponse{UploadResult: result, Error: &errorResponse{Error: err.Error(), Kind: services.ErrorKind(err)}})
		return
	}
	writeJSON(w, http.StatusOK, uploadResponse{UploadResult: result})
}

func (ac *ApiController) Preview(w http.ResponseWriter, r *http.Request) {
	id, _ := sessionID(r)
	preview, err := ac.service.Preview(id)
	if err != nil {
		ac.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, preview)
}

func attachment(w http.ResponseWriter, filename, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (ac *ApiController) DownloadCSV(w http.ResponseWriter, r *http.Request) {
	id, _ := sessionID(r)
	data, err := ac.service.CSV(id)
	if err != nil {
		ac.writeError(w, r, err)
		return
	}
	attachment(w, formatters.CSVFileName, formatters.CSVMimeType, data)
}

func (ac *ApiController) DownloadURLs(w http.ResponseWriter, r *http.Request) {
	id, _ := sessionID(r)
	urls, err := ac.service.URLList(id)
	if err != nil {
		ac.writeError(w, r, err)
		return
	}
	attachment(w, formatters.URLListFileName, formatters.URLListMimeType, []byte(urls))
}

// chartOptions reads ?granularity=&group=&top=. Without any of them the
// platform preset applies and nil is returned.
func chartOptions(r *http.Request) (*statistic.Options, error) {
	q := r.URL.Query()
	if q.Get("granularity") == "" && q.Get("group") == "" && q.Get("top") == "" {
		return nil, nil
	}
	g, err := statistic.ParseGranularity(q.Get("granularity"))
	if err != nil {
		return nil, err
	}
	opts := &statistic.Options{Granularity: g, GroupBy: q.Get("group")}
	if top := q.Get("top"); top != "" {
		n, err := strconv.Atoi(top)
		if err != nil || n < 0 {
			return nil, errors.New("top must be a non-negative integer")
		}
		opts.TopN = n
	}
	return opts, nil
}

func (ac *ApiController) Chart(w http.ResponseWriter, r *http.Request) {
	opts, err := chartOptions(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Kind: "request"})
		return
	}
	id, _ := sessionID(r)
	agg, err := ac.service.Chart(id, opts)
	if err != nil {
		ac.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, agg)
}

func (ac *ApiController) ClearSession(w http.ResponseWriter, r *http.Request) {
	if id, ok := sessionID(r); ok {
		ac.service.Clear(id)
	}
	w.WriteHeader(http.StatusNoContent)
}
