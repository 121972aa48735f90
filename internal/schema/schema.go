// Package schema declares the HCL block structures of a techgridgo project
// file. These structs are decode targets only; the hcl package translates
// them into the format-agnostic config model.
package schema

import "github.com/hashicorp/hcl/v2"

// Object represents an `object` block from a project file. Each block
// declares one node of the production/technology graph.
type Object struct {
	Name     string      `hcl:"name,label"`
	Root     bool        `hcl:"root,optional"`
	Tags     []string    `hcl:"tags,optional"`
	Requires []*Requires `hcl:"requires,block"`
}

// Requires represents a `requires` block within an object. The block label
// selects the mode: "all" requires every listed object, "any" requires one.
// The `of` attribute stays an expression here so the translator can evaluate
// and type-convert it in one place.
type Requires struct {
	Mode string         `hcl:"mode,label"`
	Of   hcl.Expression `hcl:"of"`
}

// Milestones represents the `milestones` block of a project file.
type Milestones struct {
	Order    hcl.Expression `hcl:"order"`
	Unlocked hcl.Expression `hcl:"unlocked,optional"`
}

// ProjectRoot represents the top-level structure of a project file,
// containing all object declarations and the milestone settings.
type ProjectRoot struct {
	Objects    []*Object   `hcl:"object,block"`
	Milestones *Milestones `hcl:"milestones,block"`
	Remain     hcl.Body    `hcl:",remain"`
}
