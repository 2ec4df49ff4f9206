// Package batch runs the attendance engine over several independent
// datasets at once. Concurrency is bounded by an errgroup limit and every
// dataset works on a private copy of its punches.
package batch
