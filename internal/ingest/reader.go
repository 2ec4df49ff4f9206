package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	apperrors "attendcli/internal/errors"
	"attendcli/pkg/contracts/domain"
)

// headerSearchRows bounds how far down a sheet the header row may sit
const headerSearchRows = 10

// timestampLayouts are tried in order; day-first for slashed dates
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.RFC3339,
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"2/1/2006 15:04:05",
	"2/1/2006 15:04",
	"02-01-2006 15:04:05",
	"02-01-2006 15:04",
	"02/01/2006 03:04:05 PM",
	"02/01/2006 03:04 PM",
}

// SupportedExtensions lists the punch file types ReadFile understands
var SupportedExtensions = []string{".csv", ".xlsx"}

// Reader converts punch tables into punch events
type Reader struct {
	loc    *time.Location
	logger *slog.Logger
}

// NewReader creates a reader that interprets wall-clock timestamps in loc
func NewReader(loc *time.Location, logger *slog.Logger) *Reader {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{loc: loc, logger: logger}
}

// ReadFile reads a .csv or .xlsx punch table
func (r *Reader) ReadFile(path string) ([]domain.PunchEvent, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".csv" && ext != ".xlsx" {
		return nil, apperrors.NewAppValidationError(fmt.Sprintf("unsupported punch file %q", filepath.Base(path))).
			WithContext("extension", ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to open punch file", err).WithContext("path", path)
	}
	defer f.Close()

	var punches []domain.PunchEvent
	if ext == ".csv" {
		punches, err = r.ReadCSV(f)
	} else {
		punches, err = r.ReadXLSX(f)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	r.logger.Info("Punch file loaded",
		slog.String("file", filepath.Base(path)),
		slog.Int("punches", len(punches)))
	return punches, nil
}

// ReadCSV reads a comma or semicolon separated punch table. A UTF-8 BOM
// is ignored.
func (r *Reader) ReadCSV(src io.Reader) ([]domain.PunchEvent, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to read punch table", err)
	}
	data = bytes.TrimPrefix(data, []byte("\ufeff"))

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = sniffDelimiter(data)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, apperrors.NewParsingError("malformed csv punch table", err)
	}
	return r.fromRows(rows, false)
}

// ReadXLSX reads the first sheet of a workbook that carries a punch header.
// Timestamp cells may be real Excel dates or text.
func (r *Reader) ReadXLSX(src io.Reader) ([]domain.PunchEvent, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, apperrors.NewParsingError("failed to open workbook", err)
	}
	defer f.Close()

	var firstErr error
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, apperrors.NewParsingError("failed to read sheet", err).WithContext("sheet", sheet)
		}
		punches, err := r.fromRows(rows, true)
		if err == nil {
			r.logger.Debug("Punch sheet selected", slog.String("sheet", sheet))
			return punches, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	if firstErr == nil {
		firstErr = apperrors.NewMissingFieldError(ColumnTimestamp)
	}
	return nil, firstErr
}

// fromRows locates the header row and converts the data rows below it
func (r *Reader) fromRows(rows [][]string, excelDates bool) ([]domain.PunchEvent, error) {
	headerRow, columns, err := findHeader(rows)
	if err != nil {
		return nil, err
	}

	cell := func(row []string, col string) string {
		idx, ok := columns[col]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	punches := make([]domain.PunchEvent, 0, len(rows)-headerRow-1)
	unparseable := 0
	for _, row := range rows[headerRow+1:] {
		if blank(row) {
			continue
		}

		p := domain.PunchEvent{
			Employee: domain.Employee{
				ID:         cell(row, ColumnID),
				Name:       NormalizeName(cell(row, ColumnName)),
				Department: strings.Join(strings.Fields(cell(row, ColumnDepartment)), " "),
			},
		}
		if raw := cell(row, ColumnTimestamp); raw != "" {
			if ts, ok := r.ParseTimestamp(raw, excelDates); ok {
				p.Timestamp = ts
			} else {
				p.RawTimestamp = raw
				unparseable++
			}
		}
		punches = append(punches, p)
	}

	if unparseable > 0 {
		r.logger.Warn("Unparseable timestamps kept for review", slog.Int("count", unparseable))
	}
	return punches, nil
}

// ParseTimestamp interprets a timestamp cell in the reader's location.
// With excelDates a bare number is read as an Excel serial date.
func (r *Reader) ParseTimestamp(raw string, excelDates bool) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	if excelDates {
		if serial, err := strconv.ParseFloat(raw, 64); err == nil {
			t, err := excelize.ExcelDateToTime(serial, false)
			if err != nil {
				return time.Time{}, false
			}
			t = t.Round(time.Second)
			return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, r.loc), true
		}
	}

	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, raw, r.loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// findHeader returns the index of the first row naming a timestamp column
// and an identity column, with the canonical column positions
func findHeader(rows [][]string) (int, map[string]int, error) {
	sawTimestamp := false
	for i := 0; i < len(rows) && i < headerSearchRows; i++ {
		columns := make(map[string]int)
		for j, h := range rows[i] {
			if col, ok := CanonicalColumn(h); ok {
				if _, dup := columns[col]; !dup {
					columns[col] = j
				}
			}
		}

		_, hasTS := columns[ColumnTimestamp]
		_, hasID := columns[ColumnID]
		_, hasName := columns[ColumnName]
		if hasTS && (hasID || hasName) {
			return i, columns, nil
		}
		sawTimestamp = sawTimestamp || hasTS
	}

	if sawTimestamp {
		return 0, nil, apperrors.NewMissingFieldError("employee")
	}
	return 0, nil, apperrors.NewMissingFieldError(ColumnTimestamp)
}

// sniffDelimiter picks ';' when the first line has more semicolons than commas
func sniffDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	if bytes.Count(line, []byte(";")) > bytes.Count(line, []byte(",")) {
		return ';'
	}
	return ','
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
