package pivot

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/loomgrid/gridcore/pkg/grid"
)

// Node is one node of a pivot tree: either the synthetic root or a group
// node (level >= 0, GroupValue set). A group node at the deepest
// configured rowGroup level has no Children; its Rows holds the raw
// records that fell into it (for detail views), and its Aggregated row
// is already the terminal value the flat output renders.
type Node struct {
	ID         string
	Level      int // -1 for the synthetic root
	GroupKey   string
	GroupValue string
	Aggregated grid.Row
	Children   []*Node
	Rows       []grid.Row // only set on the deepest group level
	IsExpanded bool
}

// BuildTree groups data by cfg.RowGroups depth-first, aggregating each
// group node's Aggregated row over its subtree, and returns the synthetic
// root (level -1, always expanded, never itself rendered).
func BuildTree(data []grid.Row, cfg Config) *Node {
	root := &Node{
		ID:         uuid.NewString(),
		Level:      -1,
		Aggregated: aggregateRow(data, cfg.ValueFields),
		IsExpanded: true,
	}
	root.Children = buildLevel(data, cfg, 0)
	return root
}

// buildLevel groups data by cfg.RowGroups[depth] into an insertion-ordered
// map and recurses into depth+1 for each group's subset. At the deepest
// level (depth == len(cfg.RowGroups)-1) the resulting group nodes keep
// their raw rows instead of recursing further.
func buildLevel(data []grid.Row, cfg Config, depth int) []*Node {
	key := cfg.RowGroups[depth]
	groups := lo.GroupBy(data, func(r grid.Row) string {
		return stringifyGroupValue(r[key])
	})

	// lo.GroupBy does not preserve insertion order; recover it by walking
	// data once and recording each group value's first appearance.
	var order []string
	seen := make(map[string]bool, len(groups))
	for _, r := range data {
		v := stringifyGroupValue(r[key])
		if !seen[v] {
			seen[v] = true
			order = append(order, v)
		}
	}

	nodes := make([]*Node, 0, len(order))
	for _, groupValue := range order {
		subset := groups[groupValue]
		node := &Node{
			ID:         uuid.NewString(),
			Level:      depth,
			GroupKey:   key,
			GroupValue: groupValue,
			Aggregated: aggregateRow(subset, cfg.ValueFields),
			IsExpanded: true,
		}
		if depth+1 < len(cfg.RowGroups) {
			node.Children = buildLevel(subset, cfg, depth+1)
		} else {
			node.Rows = subset
		}
		nodes = append(nodes, node)
	}
	return nodes
}

func stringifyGroupValue(v any) string {
	if v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprintf("%v", t)
	}
}
