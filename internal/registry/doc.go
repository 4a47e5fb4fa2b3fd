// Package registry catalogs the execution environments of a run and tracks
// their availability. Environments are registered once at startup from the
// grid model and never destroyed mid-run; only their busy/free state mutates
// during scheduling, and only through this package.
package registry
