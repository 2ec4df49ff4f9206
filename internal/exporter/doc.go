// Package exporter writes attendance reports for the rendering layer.
//
// A report is flattened into tables (shifts, outliers, monthly, employees,
// fused, general, clusters, cluster_assignments, warnings) and written as
// one CSV file per table, as sheets of an .xlsx workbook, or as the full
// structured report in report.json. Every dataset gets its own directory.
//
// Example usage:
//
//	exp := exporter.NewReportExporter(cfg.Output, logger)
//	paths, err := exp.Export(ctx, "plant-north", report)
package exporter
