package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/techgridgo/internal/config"
	"github.com/vk/techgridgo/internal/schema"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// translateObject converts the HCL-specific object schema into the agnostic model.
func (l *Loader) translateObject(s *schema.Object) (*config.Object, error) {
	obj := &config.Object{
		Name: s.Name,
		Root: s.Root,
		Tags: s.Tags,
	}
	for _, req := range s.Requires {
		switch req.Mode {
		case config.RequireAll, config.RequireAny:
			// valid
		default:
			return nil, fmt.Errorf("object %q: invalid requires mode %q: must be %q or %q",
				s.Name, req.Mode, config.RequireAll, config.RequireAny)
		}
		of, err := l.stringList(req.Of)
		if err != nil {
			return nil, fmt.Errorf("object %q: requires %q: %w", s.Name, req.Mode, err)
		}
		obj.Requires = append(obj.Requires, &config.Requirement{
			Mode: req.Mode,
			Of:   of,
		})
	}
	return obj, nil
}

// translateMilestones converts the HCL-specific milestones schema into the agnostic model.
func (l *Loader) translateMilestones(s *schema.Milestones) (*config.Milestones, error) {
	order, err := l.stringList(s.Order)
	if err != nil {
		return nil, fmt.Errorf("milestones order: %w", err)
	}
	m := &config.Milestones{Order: order}

	if s.Unlocked != nil {
		unlocked, err := l.stringList(s.Unlocked)
		if err != nil {
			return nil, fmt.Errorf("milestones unlocked: %w", err)
		}
		m.Unlocked = unlocked
	}
	return m, nil
}

// stringList evaluates an HCL expression and converts the resulting value
// into a slice of strings. A null or absent expression yields nil.
func (l *Loader) stringList(expr hcl.Expression) ([]string, error) {
	if expr == nil {
		return nil, nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to evaluate expression: %w", diags)
	}
	if val.IsNull() {
		return nil, nil
	}
	converted, err := convert.Convert(val, cty.List(cty.String))
	if err != nil {
		return nil, fmt.Errorf("expected a list of strings: %w", err)
	}
	var out []string
	if err := gocty.FromCtyValue(converted, &out); err != nil {
		return nil, fmt.Errorf("failed to decode list of strings: %w", err)
	}
	return out, nil
}
