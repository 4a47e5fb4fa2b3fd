// Package scheduler assigns resolved targets to available environments and
// drives them through the executor. It implements the two-stage pipeline:
// cheap targets (ops and other scopes) run first, model-level targets only
// start after every first-stage assignment is terminal, regardless of the
// first stage's outcome. Completed assignments are streamed as they finish,
// not batched.
package scheduler
