// Package collab analyzes co-authorship networks and research trends over
// the institution-filtered paper pool returned by semantic search.
package collab

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/campuskg/scholargraph/internal/semantic"
)

// Defaults for network and trend analysis.
const (
	DefaultMinPapers     = 2
	DefaultPoolSize      = 50
	DefaultTrendPoolSize = 100
	DefaultYearsBack     = 10
)

// Config holds the tunables of collaboration analysis.
type Config struct {
	// Institutions is the allow-list of institution-name substrings,
	// matched case-insensitively against a paper's affiliation.
	Institutions []string `yaml:"institutions" json:"institutions"`

	// MinPapers drops authors with fewer papers from the network.
	MinPapers int `yaml:"min_papers" json:"min_papers"`

	// PoolSize is how many papers are sampled for network analysis.
	PoolSize int `yaml:"pool_size" json:"pool_size"`

	// TrendPoolSize is the wider pool sampled for trend analysis.
	TrendPoolSize int `yaml:"trend_pool_size" json:"trend_pool_size"`
}

// Searcher is the slice of the semantic engine the analyzer depends on.
type Searcher interface {
	Search(ctx context.Context, query string, topK int) ([]semantic.Result, error)
}

// Node is one researcher in the collaboration network.
type Node struct {
	Name   string  `json:"name"`
	Papers int     `json:"papers"`
	Degree float64 `json:"degree_centrality"` // distinct collaborators / (n-1)
}

// Edge is an undirected collaboration between two researchers, weighted by
// the number of shared papers in the pool. A is lexically before B.
type Edge struct {
	A      string `json:"a"`
	B      string `json:"b"`
	Weight int    `json:"weight"`
}

// Network is the collaboration graph for one research area.
type Network struct {
	Nodes      []Node  `json:"nodes"` // sorted by name
	Edges      []Edge  `json:"edges"`
	Density    float64 `json:"density"`
	Components int     `json:"components"`
}

// Analyzer runs collaboration and trend analysis for a research area.
type Analyzer struct {
	search Searcher
	cfg    Config
	now    func() time.Time
}

// NewAnalyzer creates an analyzer. Zero-valued config fields fall back to
// their defaults; an empty institution list matches nothing.
func NewAnalyzer(search Searcher, cfg Config) *Analyzer {
	if cfg.MinPapers == 0 {
		cfg.MinPapers = DefaultMinPapers
	}
	if cfg.PoolSize == 0 {
		cfg.PoolSize = DefaultPoolSize
	}
	if cfg.TrendPoolSize == 0 {
		cfg.TrendPoolSize = DefaultTrendPoolSize
	}
	return &Analyzer{search: search, cfg: cfg, now: time.Now}
}

// Network builds the co-authorship graph for a research area: papers that
// pass the institutional filter and have more than one author contribute
// nodes and weighted edges; authors below MinPapers are dropped.
func (a *Analyzer) Network(ctx context.Context, researchArea string) (*Network, error) {
	papers, err := a.search.Search(ctx, researchArea, a.cfg.PoolSize)
	if err != nil {
		return nil, fmt.Errorf("searching papers: %w", err)
	}

	paperCount := make(map[string]int)
	edgeWeight := make(map[[2]string]int)

	for _, paper := range papers {
		if !a.institutionMatch(paper.Affiliation) || len(paper.Authors) < 2 {
			continue
		}

		for _, name := range paper.Authors {
			if name != "" {
				paperCount[name]++
			}
		}

		for i, first := range paper.Authors {
			for _, second := range paper.Authors[i+1:] {
				if first == "" || second == "" || first == second {
					continue
				}
				edgeWeight[pairKey(first, second)]++
			}
		}
	}

	active := make(map[string]bool, len(paperCount))
	for name, count := range paperCount {
		if count >= a.cfg.MinPapers {
			active[name] = true
		}
	}

	net := &Network{}
	neighbors := make(map[string]map[string]bool)

	for pair, weight := range edgeWeight {
		if !active[pair[0]] || !active[pair[1]] {
			continue
		}
		net.Edges = append(net.Edges, Edge{A: pair[0], B: pair[1], Weight: weight})
		addNeighbor(neighbors, pair[0], pair[1])
		addNeighbor(neighbors, pair[1], pair[0])
	}
	sort.Slice(net.Edges, func(i, j int) bool {
		if net.Edges[i].A != net.Edges[j].A {
			return net.Edges[i].A < net.Edges[j].A
		}
		return net.Edges[i].B < net.Edges[j].B
	})

	names := make([]string, 0, len(active))
	for name := range active {
		names = append(names, name)
	}
	sort.Strings(names)

	n := len(names)
	for _, name := range names {
		var degree float64
		if n > 1 {
			degree = float64(len(neighbors[name])) / float64(n-1)
		}
		net.Nodes = append(net.Nodes, Node{
			Name:   name,
			Papers: paperCount[name],
			Degree: degree,
		})
	}

	if n > 1 {
		net.Density = 2 * float64(len(net.Edges)) / float64(n*(n-1))
	}
	net.Components = countComponents(names, neighbors)

	return net, nil
}

// TopByDegree returns up to n nodes ranked by degree centrality, ties by
// name ascending.
func (net *Network) TopByDegree(n int) []Node {
	sorted := make([]Node, len(net.Nodes))
	copy(sorted, net.Nodes)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Degree != sorted[j].Degree {
			return sorted[i].Degree > sorted[j].Degree
		}
		return sorted[i].Name < sorted[j].Name
	})
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

func (a *Analyzer) institutionMatch(affiliation string) bool {
	if affiliation == "" {
		return false
	}
	lower := strings.ToLower(affiliation)
	for _, inst := range a.cfg.Institutions {
		if strings.Contains(lower, inst) {
			return true
		}
	}
	return false
}

// pairKey returns the unordered pair as a sorted key.
func pairKey(a, b string) [2]string {
	if b < a {
		a, b = b, a
	}
	return [2]string{a, b}
}

func addNeighbor(neighbors map[string]map[string]bool, from, to string) {
	if neighbors[from] == nil {
		neighbors[from] = make(map[string]bool)
	}
	neighbors[from][to] = true
}

// countComponents counts connected components by traversal.
func countComponents(names []string, neighbors map[string]map[string]bool) int {
	seen := make(map[string]bool, len(names))
	components := 0

	for _, start := range names {
		if seen[start] {
			continue
		}
		components++
		stack := []string{start}
		for len(stack) > 0 {
			name := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if seen[name] {
				continue
			}
			seen[name] = true
			for next := range neighbors[name] {
				if !seen[next] {
					stack = append(stack, next)
				}
			}
		}
	}
	return components
}
