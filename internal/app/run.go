package app

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/vk/techgridgo/internal/ctxlog"
	"github.com/vk/techgridgo/internal/graph"
	"github.com/vk/techgridgo/internal/milestone"
)

// Run executes the milestone computation and renders the accessibility
// report to the application's output writer.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	a.engine.Watch(ctx)
	defer a.engine.Close()

	result, err := a.engine.Compute(ctx)
	if err != nil {
		return fmt.Errorf("milestone computation failed: %w", err)
	}

	if a.config.Object != "" {
		id, ok := a.graph.NodeByName(a.config.Object)
		if !ok {
			return fmt.Errorf("object %q is not declared in the project", a.config.Object)
		}
		a.renderObject(result, id)
	} else {
		a.renderReport(result)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// renderReport prints one line per object: accessibility under the current
// locked-milestone filter and the most advanced prerequisite milestone.
func (a *App) renderReport(result *milestone.Result) {
	filtered := !a.config.All
	w := tabwriter.NewWriter(a.outW, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "OBJECT\tACCESSIBLE\tREQUIRES")
	for id := 0; id < a.graph.Len(); id++ {
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			a.graph.Name(graph.NodeID(id)),
			yesNo(result.IsAccessible(graph.NodeID(id), filtered)),
			a.highestName(result, graph.NodeID(id)))
	}
	w.Flush()

	fmt.Fprintf(a.outW, "\n%d objects, %d milestones, %d pops in %s",
		a.graph.Len(), len(result.Milestones()), result.Pops(), result.Elapsed())
	if result.Partial() {
		fmt.Fprint(a.outW, " (partial: step cap reached)")
	}
	fmt.Fprintln(a.outW)
}

// renderObject prints the detailed record of a single object.
func (a *App) renderObject(result *milestone.Result, id graph.NodeID) {
	filtered := !a.config.All
	fmt.Fprintf(a.outW, "object:     %s\n", a.graph.Name(id))
	fmt.Fprintf(a.outW, "mask:       %#x\n", uint64(result.Mask(id)))
	fmt.Fprintf(a.outW, "accessible: %s\n", yesNo(result.IsAccessible(id, filtered)))
	fmt.Fprintf(a.outW, "requires:   %s\n", a.highestName(result, id))
}

// highestName resolves the highest still-locked milestone of a node to its
// name, or "-" when none applies.
func (a *App) highestName(result *milestone.Result, id graph.NodeID) string {
	m, ok := result.HighestRequired(id, !a.config.All)
	if !ok {
		return "-"
	}
	return a.graph.Name(m)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
