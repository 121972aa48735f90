package config

// Model is the unified, format-agnostic representation of an entire project:
// every object in the production/technology graph plus the milestone settings.
type Model struct {
	Objects    []*Object
	Milestones *Milestones
}

// Object is the format-agnostic representation of a single graph object
// (item, recipe, technology, and so on).
type Object struct {
	// Name is the unique identifier of the object within the project.
	Name string
	// Root marks the object as obtainable with no prerequisites at all,
	// for example a primitive resource.
	Root bool
	// Tags carries free-form labels. Objects tagged "progression" form the
	// default milestone ordering when the project declares none.
	Tags []string
	// Requires lists the object's dependency groups in declaration order.
	Requires []*Requirement
}

// RequireAll and RequireAny are the two requirement modes an object's
// requires block may carry.
const (
	RequireAll = "all"
	RequireAny = "any"
)

// Requirement is one dependency group of an object.
type Requirement struct {
	// Mode is RequireAll (every listed object is needed) or RequireAny
	// (any one listed object suffices).
	Mode string
	// Of names the prerequisite objects.
	Of []string
}

// Milestones is the project's milestone configuration.
type Milestones struct {
	// Order names the milestone objects in gate order. Position in this
	// list assigns each milestone its reachability bit.
	Order []string
	// Unlocked names the milestones the user has already crossed.
	Unlocked []string
}
