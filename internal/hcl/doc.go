// Package hcl implements the config.Loader interface for HCL grid files.
// It discovers .hcl files under the configured paths, decodes them into the
// schema structures and translates the result into the model.
package hcl
