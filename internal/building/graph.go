package building

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// GraphNode is one saved design alternative. Nodes form a tree: every
// commit becomes a child of the node that was current when it was made,
// so branching off an earlier state just means checking it out first.
type GraphNode struct {
	ID        string
	ParentID  string
	Label     string
	CreatedAt time.Time
	State     Snapshot
}

// Graph is the design exploration graph over registry snapshots.
type Graph struct {
	nodes   map[string]*GraphNode
	current string
	now     func() time.Time
}

// NewGraph creates an empty exploration graph.
func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[string]*GraphNode),
		now:   time.Now,
	}
}

// Commit saves a snapshot as a child of the current node and makes it
// current. Returns the new node.
func (g *Graph) Commit(label string, snap Snapshot) *GraphNode {
	node := &GraphNode{
		ID:        uuid.NewString(),
		ParentID:  g.current,
		Label:     label,
		CreatedAt: g.now(),
		State:     snap,
	}
	g.nodes[node.ID] = node
	g.current = node.ID
	return node
}

// Checkout makes the given node current and returns its snapshot for
// the caller to restore into the registry.
func (g *Graph) Checkout(id string) (Snapshot, error) {
	node, ok := g.nodes[id]
	if !ok {
		return Snapshot{}, fmt.Errorf("%w: graph node %s", ErrNotFound, id)
	}
	g.current = id
	return node.State, nil
}

// Current returns the current node, or nil before the first commit.
func (g *Graph) Current() *GraphNode {
	return g.nodes[g.current]
}

// Children returns the direct children of a node, oldest first.
func (g *Graph) Children(id string) []*GraphNode {
	var out []*GraphNode
	for _, n := range g.nodes {
		if n.ParentID == id {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// Nodes returns every node, oldest first.
func (g *Graph) Nodes() []*GraphNode {
	out := make([]*GraphNode, 0, len(g.nodes))
	for _, n := range g.nodes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// Len returns the number of saved alternatives.
func (g *Graph) Len() int { return len(g.nodes) }
