// Package executor runs a single assignment to completion: it invokes the
// opaque test-process interface against the assigned environment, enforces
// the wall-clock timeout and classifies the terminal outcome. It never
// retries; retry policy belongs to the caller, because targets are assumed
// to be deterministic checks.
package executor
