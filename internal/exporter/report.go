package exporter

import (
	"context"
	"log/slog"
	"path/filepath"

	"go.opentelemetry.io/otel/attribute"

	"attendcli/internal/config"
	apperrors "attendcli/internal/errors"
	"attendcli/internal/infrastructure"
	"attendcli/pkg/contracts/domain"
)

// Output formats
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// File names inside a dataset directory
const (
	ReportJSONFile = "report.json"
	WorkbookFile   = "report.xlsx"
)

// ReportExporter writes reports below <dir>/<dataset>/
type ReportExporter struct {
	dir     string
	formats []string
	bom     bool
	csv     *CSVWriter
	logger  *slog.Logger
}

// NewReportExporter creates an exporter from the output configuration
func NewReportExporter(cfg config.OutputConfig, logger *slog.Logger) *ReportExporter {
	logger = infrastructure.WithComponent(logger, "exporter")
	return &ReportExporter{
		dir:     cfg.Dir,
		formats: cfg.Formats,
		bom:     cfg.BOMPrefix,
		csv:     NewCSVWriter(cfg.Dir, logger),
		logger:  logger,
	}
}

// DatasetDir returns the directory a dataset's files are written to
func (e *ReportExporter) DatasetDir(dataset string) string {
	return filepath.Join(e.dir, dataset)
}

// Export writes the report in every configured format and returns the
// written paths
func (e *ReportExporter) Export(ctx context.Context, dataset string, report *domain.Report) ([]string, error) {
	ctx, span := infrastructure.StartSpan(ctx, "export", attribute.String("dataset", dataset))
	defer span.End()

	dir := e.DatasetDir(dataset)
	var written []string

	for _, format := range e.formats {
		paths, err := e.write(format, dataset, dir, report)
		if err != nil {
			err = apperrors.NewStorageError("failed to export report", err).
				WithContext("dataset", dataset).
				WithContext("format", format)
			infrastructure.RecordError(span, err)
			return written, err
		}
		written = append(written, paths...)
	}

	e.logger.InfoContext(ctx, "Report exported",
		slog.String("dataset", dataset),
		slog.String("dir", dir),
		slog.Int("files", len(written)))
	return written, nil
}

func (e *ReportExporter) write(format, dataset, dir string, report *domain.Report) ([]string, error) {
	switch format {
	case FormatJSON:
		path := filepath.Join(dir, ReportJSONFile)
		return []string{path}, WriteJSON(path, report)

	case FormatCSV:
		var paths []string
		for _, table := range Tables(report) {
			path, err := e.csv.WriteTable(dataset, table, e.bom)
			if err != nil {
				return paths, err
			}
			paths = append(paths, path)
		}
		return paths, nil

	case FormatXLSX:
		path := filepath.Join(dir, WorkbookFile)
		return []string{path}, WriteWorkbook(path, Tables(report))

	default:
		return nil, apperrors.NewAppValidationError("unsupported output format " + format)
	}
}
