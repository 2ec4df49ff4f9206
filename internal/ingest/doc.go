// Package ingest reads punch tables exported by time clocks.
//
// CSV (comma or semicolon separated) and XLSX files are supported. Header
// cells are matched after accent folding, so "Departamento", "ID de
// usuario", "Nombre" and "Fecha/Hora" are recognized as well as their
// English names. Rows whose timestamp cannot be interpreted are kept with
// the raw text so the engine can flag them.
package ingest
