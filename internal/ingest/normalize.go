package ingest

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Canonical column names
const (
	ColumnDepartment = "department"
	ColumnID         = "id"
	ColumnName       = "name"
	ColumnTimestamp  = "timestamp"
)

// headerAliases maps normalized header text to a canonical column
var headerAliases = map[string]string{
	"departamento": ColumnDepartment,
	"department":   ColumnDepartment,
	"dept":         ColumnDepartment,
	"area":         ColumnDepartment,

	"id":            ColumnID,
	"id_de_usuario": ColumnID,
	"id_usuario":    ColumnID,
	"user_id":       ColumnID,
	"employee_id":   ColumnID,
	"badge":         ColumnID,

	"nombre":   ColumnName,
	"name":     ColumnName,
	"empleado": ColumnName,
	"employee": ColumnName,

	"fecha_hora":   ColumnTimestamp,
	"fecha_y_hora": ColumnTimestamp,
	"timestamp":    ColumnTimestamp,
	"datetime":     ColumnTimestamp,
	"date_time":    ColumnTimestamp,
	"marcaje":      ColumnTimestamp,
}

// NormalizeHeader folds a header cell to lowercase ASCII words joined by
// underscores: "ID de\rusuario" becomes "id_de_usuario" and "Fecha/Hora"
// becomes "fecha_hora".
func NormalizeHeader(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	pending := false
	for _, r := range strings.ToLower(folded) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pending && b.Len() > 0 {
				b.WriteByte('_')
			}
			pending = false
			b.WriteRune(r)
			continue
		}
		pending = true
	}
	return b.String()
}

// CanonicalColumn resolves a raw header cell to a canonical column name
func CanonicalColumn(header string) (string, bool) {
	col, ok := headerAliases[NormalizeHeader(header)]
	return col, ok
}

// NormalizeName collapses whitespace and title-cases an employee name
func NormalizeName(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return cases.Title(language.Und).String(strings.Join(fields, " "))
}
