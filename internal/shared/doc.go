// Package shared holds code used by several packages that belongs to no
// single stage of the report pipeline.
//
// # Test Utilities
//
// The testutil subpackage provides:
//
//	- A buffered slog handler with assertions on captured records
//	- Punch and shift fixtures (Punch, CompleteShift, ShiftsWithHours)
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    logger, handler := testutil.NewTestLogger(t)
//	    shifts := testutil.ShiftsWithHours("Luis", "2024-01-01", 8, 8, 2)
//	    ...
//	    testutil.AssertNoErrors(t, handler)
//	}
package shared
