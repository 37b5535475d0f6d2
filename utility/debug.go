package utility

import (
	"fmt"
	"maps"
	"slices"
	"sort"

	"github.com/maruel/natural"

	"twigwind/utils/debug"
)

// String returns readable dump of generator state. It exists solely for
// manual inspection during debugging.
func (g *Generator) String() string {
	if g == nil {
		return "<nil Generator>"
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	tw := debug.NewTreeWriter()

	tw.Line(0, "Seen tokens: %d", len(g.seen))
	keys := slices.Collect(maps.Keys(g.seen))
	sort.Sort(natural.StringSlice(keys))
	var unmatched []string
	for _, k := range keys {
		tw.Line(1, "Token[%q] feature[%s]", k, g.seen[k])
		if !g.produced[k] {
			unmatched = append(unmatched, k)
		}
	}
	tw.SortedList(0, "Unmatched", unmatched)

	tw.Line(0, "Rules: %d", len(g.rules))
	for i, r := range g.rules {
		tw.TextBlock(1, fmt.Sprintf("Rule[%d]", i), r)
	}
	return tw.String()
}
