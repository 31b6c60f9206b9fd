// Package viz renders collaboration networks as interactive HTML using
// Cytoscape.js.
package viz

import (
	"fmt"

	"github.com/campuskg/scholargraph/internal/collab"
)

// GraphData contains all data needed to render the visualization.
type GraphData struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node represents one researcher in the rendered graph.
type Node struct {
	ID    string `json:"id"`
	Label string `json:"label"`

	// Tooltip fields
	Papers int     `json:"papers"`
	Degree float64 `json:"degree"`
}

// Edge represents a collaboration between two researchers.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Weight int    `json:"weight"`
}

// IsEmpty returns true if the graph has no nodes.
func (g *GraphData) IsEmpty() bool {
	return len(g.Nodes) == 0
}

// FromNetwork converts a collaboration network into renderable graph data.
// Researcher names double as node IDs since they are unique in the network.
func FromNetwork(net *collab.Network) *GraphData {
	g := &GraphData{
		Nodes: make([]Node, 0, len(net.Nodes)),
		Edges: make([]Edge, 0, len(net.Edges)),
	}
	for _, n := range net.Nodes {
		g.Nodes = append(g.Nodes, Node{
			ID:     n.Name,
			Label:  n.Name,
			Papers: n.Papers,
			Degree: n.Degree,
		})
	}
	for _, e := range net.Edges {
		g.Edges = append(g.Edges, Edge{
			Source: e.A,
			Target: e.B,
			Weight: e.Weight,
		})
	}
	return g
}

// edgeID generates a unique edge ID for the current visualization session.
// IDs are based on slice position and are not stable across builds.
func edgeID(source, target string, index int) string {
	return fmt.Sprintf("%s-%s-%d", source, target, index)
}
