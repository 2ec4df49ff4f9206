// Package engine runs one attendance dataset end to end.
//
// A run copies its punches, reconciles them into one shift per employee and
// day, derives calendar metrics, and then computes the outlier map, the
// monthly, fused and general summaries and the weekday and weekend
// clusterings. Non-fatal conditions are attached to the report as warnings;
// the only fatal error is a required field missing from the whole dataset.
//
// Each stage runs in its own OpenTelemetry span below "engine.run".
package engine
