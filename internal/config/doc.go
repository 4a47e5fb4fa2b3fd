// Package config defines the contract for loading grid configuration into
// the format-agnostic model. Concrete implementations, such as the HCL
// loader, live in separate packages so tests can substitute their own.
package config
