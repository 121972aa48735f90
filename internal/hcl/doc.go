// Package hcl implements the config.Loader interface for HCL project files.
// It discovers .hcl files under the configured paths, parses and decodes
// them against the schema package, and translates the result into the
// format-agnostic config model.
package hcl
