// Package report aggregates terminal assignments into the run verdict and
// publishes it: as a structured JSON report to a file or stdout, and
// optionally to an HTTP webhook for downstream CI consumption.
package report
