// Package settings holds the mutable per-project configuration the milestone
// engine consumes: the ordered milestone list and the per-object unlocked
// flags. Mutations publish a change notification carrying a visual-only
// marker, so subscribers can skip recomputation for cosmetic edits.
package settings
