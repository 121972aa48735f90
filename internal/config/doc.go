// Package config defines the format-agnostic model of a techgridgo project
// and the Loader interface that format-specific loaders (currently HCL)
// implement. Downstream packages consume only this model; none of them knows
// which file format the project was written in.
package config
