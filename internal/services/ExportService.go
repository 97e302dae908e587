package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/gookit/validate"

	"exportlens/internal/formatters"
	"exportlens/internal/models"
	"exportlens/internal/parsers"
	"exportlens/internal/providers"
	"exportlens/internal/statistic"
	"exportlens/internal/structures"
)

var (
	ErrNoTable      = errors.New("no table for this session")
	ErrTooManyFiles = errors.New("too many files in one upload")
)

type UploadFile struct {
	Name    string `json:"name" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// UploadRequest is one upload slot: files of a single platform.
type UploadRequest struct {
	SessionID string       `json:"-"`
	Platform  string       `json:"platform"`
	Sections  []string     `json:"sections"`
	Files     []UploadFile `json:"files" validate:"required|minLen:1"`
}

type FileErrorView struct {
	File    string `json:"file"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type UploadResult struct {
	Platform models.Platform        `json:"platform"`
	Preview  *models.Preview        `json:"preview,omitempty"`
	Chart    *statistic.Aggregation `json:"chart,omitempty"`
	Files    []parsers.FileOutcome  `json:"files"`
	Errors   []FileErrorView        `json:"errors"`
}

type ExportServiceInterface interface {
	Process(req *UploadRequest) (*UploadResult, error)
	Preview(sessionID string) (*models.Preview, error)
	CSV(sessionID string) ([]byte, error)
	URLList(sessionID string) (string, error)
	Chart(sessionID string, opts *statistic.Options) (*statistic.Aggregation, error)
	Clear(sessionID string)
}

type ExportService struct {
	config      *structures.Config
	logger      providers.Logger
	metrics     providers.MetricsProviderInterface
	builder     *parsers.Builder
	store       SessionStoreInterface
	fileManager *statistic.FileManager
}

func NewExportService(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface, builder *parsers.Builder, store SessionStoreInterface, fileManager *statistic.FileManager) ExportServiceInterface {
	return &ExportService{
		config:      conf,
		logger:      logger,
		metrics:     metrics,
		builder:     builder,
		store:       store,
		fileManager: fileManager,
	}
}

func ErrorKind(err error) string {
	var (
		decodeErr      *models.DecodeError
		noDataErr      *models.NoDataError
		missingErr     *models.MissingColumnError
		unsupportedErr *models.UnsupportedPlatformError
	)
	switch {
	case errors.Is(err, ErrNoTable):
		return "no_table"
	case errors.As(err, &decodeErr):
		return "decode"
	case errors.As(err, &noDataErr):
		return "no_data"
	case errors.As(err, &missingErr):
		return "missing_column"
	case errors.As(err, &unsupportedErr):
		return "unsupported_platform"
	case errors.Is(err, models.ErrFileTooLarge):
		return "file_too_large"
	case errors.Is(err, models.ErrFileType):
		return "file_type"
	}
	return "internal"
}

func (es *ExportService) validate(req *UploadRequest) error {
	v := validate.Struct(req)
	if !v.Validate() {
		return errors.New(v.Errors.String())
	}
	for i := range req.Files {
		fv := validate.Struct(&req.Files[i])
		if !fv.Validate() {
			return fmt.Errorf("file %d: %s", i, fv.Errors.String())
		}
	}
	if limit := es.config.Upload.MaxFiles; limit > 0 && len(req.Files) > limit {
		return ErrTooManyFiles
	}
	return nil
}

// resolvePlatform prefers the explicit tag and falls back to sniffing the
// first file name.
func (es *ExportService) resolvePlatform(req *UploadRequest) (models.Platform, error) {
	if req.Platform != "" {
		return models.ParsePlatform(req.Platform)
	}
	p, err := parsers.DetectPlatform(req.Files[0].Name)
	if err != nil {
		return "", err
	}
	es.logger.Infof(providers.TypePost, "Platform of %s detected from file name: %s", req.Files[0].Name, p)
	return p, nil
}

// sources unwraps the transport encoding of every file and, when staging is
// on, moves the bytes to disk. The returned paths must be removed by the caller.
func (es *ExportService) sources(files []UploadFile) ([]parsers.Source, []*models.FileError, []string) {
	var (
		sources []parsers.Source
		failed  []*models.FileError
		staged  []string
	)
	for _, f := range files {
		raw, err := parsers.SplitPayload(f.Content)
		if err == nil {
			err = es.fileManager.Validate(f.Name, len(raw))
		}
		if err != nil {
			failed = append(failed, &models.FileError{File: f.Name, Err: err})
			continue
		}
		if !es.config.Upload.Stage {
			sources = append(sources, parsers.Source{Name: f.Name, Data: raw})
			continue
		}
		path, err := es.fileManager.Stage(f.Name, raw)
		if err != nil {
			failed = append(failed, &models.FileError{File: f.Name, Err: err})
			continue
		}
		staged = append(staged, path)
		sources = append(sources, parsers.Source{Name: f.Name, Path: path})
	}
	return sources, failed, staged
}

// Process runs one upload through the pipeline. The session's previous table
// is replaced only when the new one was built successfully.
func (es *ExportService) Process(req *UploadRequest) (*UploadResult, error) {
	if err := es.validate(req); err != nil {
		return nil, err
	}
	platform, err := es.resolvePlatform(req)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	sources, failed, staged := es.sources(req.Files)
	defer func() {
		for _, path := range staged {
			if err := es.fileManager.Remove(path); err != nil {
				es.logger.Errorf(providers.TypePost, "Unable to remove staged file %s: %s", path, err)
			}
		}
	}()

	built, buildErr := es.builder.Build(platform, sources, models.NewSectionSelector(req.Sections...))
	es.metrics.ObserveParseDuration(platform.String(), time.Since(start))

	result := &UploadResult{Platform: platform, Files: []parsers.FileOutcome{}, Errors: []FileErrorView{}}
	if built != nil {
		failed = append(failed, built.Errors...)
		result.Files = append(result.Files, built.Files...)
	}
	for _, fe := range failed {
		kind := ErrorKind(fe.Err)
		es.metrics.IncFileErrors(platform.String(), kind)
		es.logger.Warnf(providers.TypePost, "Session %s: %s", req.SessionID, fe)
		result.Errors = append(result.Errors, FileErrorView{File: fe.File, Kind: kind, Message: fe.Err.Error()})
	}

	if buildErr != nil {
		es.metrics.IncUploads(platform.String(), ErrorKind(buildErr))
		return result, buildErr
	}

	table := built.Table
	es.metrics.AddRowsParsed(platform.String(), table.Len())
	if err := es.store.Put(req.SessionID, table); err != nil {
		es.metrics.IncUploads(platform.String(), "internal")
		return result, err
	}

	outcome := "ok"
	if len(result.Errors) > 0 {
		outcome = "partial"
	}
	es.metrics.IncUploads(platform.String(), outcome)
	es.logger.Infof(providers.TypePost, "Session %s: %s table with %d rows from %d file(s)", req.SessionID, platform, table.Len(), len(result.Files))

	result.Preview = models.NewPreview(table, es.config.Aggregation.PreviewRows)
	result.Chart, err = es.aggregate(table, nil)
	if err != nil {
		es.logger.Errorf(providers.TypePost, "Session %s: chart aggregation failed: %s", req.SessionID, err)
	}
	return result, nil
}

func (es *ExportService) table(sessionID string) (*models.Table, error) {
	table, ok := es.store.Get(sessionID)
	if !ok {
		return nil, ErrNoTable
	}
	return table, nil
}

func (es *ExportService) Preview(sessionID string) (*models.Preview, error) {
	table, err := es.table(sessionID)
	if err != nil {
		return nil, err
	}
	return models.NewPreview(table, es.config.Aggregation.PreviewRows), nil
}

func (es *ExportService) CSV(sessionID string) ([]byte, error) {
	table, err := es.table(sessionID)
	if err != nil {
		return nil, err
	}
	return formatters.ToCSV(table)
}

func (es *ExportService) URLList(sessionID string) (string, error) {
	table, err := es.table(sessionID)
	if err != nil {
		return "", err
	}
	urls, err := statistic.ExtractURLs(table)
	if err != nil {
		return "", err
	}
	return formatters.ToURLList(urls), nil
}

// Chart aggregates the session table. nil opts selects the platform preset.
func (es *ExportService) Chart(sessionID string, opts *statistic.Options) (*statistic.Aggregation, error) {
	table, err := es.table(sessionID)
	if err != nil {
		return nil, err
	}
	return es.aggregate(table, opts)
}

func (es *ExportService) aggregate(table *models.Table, opts *statistic.Options) (*statistic.Aggregation, error) {
	if opts == nil {
		preset := statistic.ChartPreset(table.Platform)
		if preset.TopN > 0 && es.config.Aggregation.TopN > 0 {
			preset.TopN = es.config.Aggregation.TopN
		}
		opts = &preset
	}
	return statistic.AggregateByTime(table, *opts)
}

func (es *ExportService) Clear(sessionID string) {
	es.store.Delete(sessionID)
}
