// Package analytics computes the statistics of an enriched shift table:
// per-employee outliers and the monthly, fused and general summaries.
//
// Quantiles use linear interpolation between order statistics at
// h = (n-1)p. Means and standard deviations come from gonum/stat.
//
// Outlier fences are Q1 - f*IQR and Q3 + f*IQR with f = 1.5 by default.
// When the IQR is zero the fences collapse onto Q1 and every other value is
// flagged; with few observations this is expected.
//
// Fused rows are ordered by month, day type (weekday first), days worked
// descending, average hours descending and finally employee key, so that
// equal rows always come out in the same order.
package analytics
