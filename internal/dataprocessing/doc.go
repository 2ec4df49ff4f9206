// Package dataprocessing turns raw punch events into enriched shift records.
// It is the first stage of every report run.
//
// # Architecture
//
// The package is organized into two components:
//
// 1. Reconciler: groups punches by employee and calendar day and pairs the
// earliest and latest punch into entry and exit
// 2. Deriver: computes duration, weekday index, weekend flag and month bucket
//
// # Usage
//
//	reconciler := dataprocessing.NewReconciler(time.UTC, logger)
//	records, err := reconciler.Reconcile(punches)
//	if err != nil {
//	    return err // MissingFieldError: nothing downstream is meaningful
//	}
//	records = dataprocessing.NewDeriver().Derive(records)
//
// # Data Flow
//
//	PunchEvents → Reconciler → ShiftRecords → Deriver → enriched ShiftRecords
//
// # Error Handling
//
// Only dataset-wide gaps are fatal: a dataset where no punch carries a
// timestamp, or none identifies an employee, fails with a MISSING_FIELD
// error. Everything else is kept and flagged:
//
//   - a single punch on a day yields an incomplete record (single_punch)
//   - punches without a usable timestamp collapse into one undated record
//     per employee (missing_timestamp, unparseable_timestamp)
//   - punches without id and name are grouped under "unknown" (missing_employee)
//   - an exit before entry demotes the record (negative_duration)
//
// Incomplete records never carry a duration and never feed numeric
// aggregates.
package dataprocessing
