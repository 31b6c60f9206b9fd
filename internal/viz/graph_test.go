package viz

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/campuskg/scholargraph/internal/collab"
)

func sampleNetwork() *collab.Network {
	return &collab.Network{
		Nodes: []collab.Node{
			{Name: "Alpha A.", Papers: 2, Degree: 0.5},
			{Name: "Beta B.", Papers: 3, Degree: 1.0},
			{Name: "Gamma G.", Papers: 2, Degree: 0.5},
		},
		Edges: []collab.Edge{
			{A: "Alpha A.", B: "Beta B.", Weight: 2},
			{A: "Beta B.", B: "Gamma G.", Weight: 1},
		},
		Density:    2.0 / 3.0,
		Components: 1,
	}
}

func TestFromNetwork(t *testing.T) {
	g := FromNetwork(sampleNetwork())

	if len(g.Nodes) != 3 || len(g.Edges) != 2 {
		t.Fatalf("graph = %d nodes, %d edges, want 3 and 2", len(g.Nodes), len(g.Edges))
	}
	if g.Nodes[1].ID != "Beta B." || g.Nodes[1].Papers != 3 || g.Nodes[1].Degree != 1.0 {
		t.Errorf("nodes[1] = %+v", g.Nodes[1])
	}
	if g.Edges[0].Source != "Alpha A." || g.Edges[0].Target != "Beta B." || g.Edges[0].Weight != 2 {
		t.Errorf("edges[0] = %+v", g.Edges[0])
	}
	if g.IsEmpty() {
		t.Error("IsEmpty() = true for populated graph")
	}
}

func TestFromNetwork_Empty(t *testing.T) {
	g := FromNetwork(&collab.Network{})
	if !g.IsEmpty() {
		t.Error("IsEmpty() = false for empty network")
	}
}

func TestToCytoscapeJSON(t *testing.T) {
	g := FromNetwork(sampleNetwork())

	raw, err := g.ToCytoscapeJSON()
	if err != nil {
		t.Fatalf("ToCytoscapeJSON failed: %v", err)
	}

	var elements CytoscapeElements
	if err := json.Unmarshal([]byte(raw), &elements); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if len(elements.Nodes) != 3 || len(elements.Edges) != 2 {
		t.Fatalf("elements = %d nodes, %d edges", len(elements.Nodes), len(elements.Edges))
	}
	if elements.Nodes[0].Data.ID != "Alpha A." {
		t.Errorf("nodes[0].Data = %+v", elements.Nodes[0].Data)
	}
	if elements.Edges[0].Data.ID == "" {
		t.Error("edge ID empty")
	}
	if elements.Edges[0].Data.ID == elements.Edges[1].Data.ID {
		t.Error("edge IDs not unique")
	}
	if elements.Edges[0].Data.Weight != 2 {
		t.Errorf("edges[0].Data.Weight = %d, want 2", elements.Edges[0].Data.Weight)
	}
}

func TestGenerateHTML(t *testing.T) {
	g := FromNetwork(sampleNetwork())

	html, err := GenerateHTML(g, DefaultOptions())
	if err != nil {
		t.Fatalf("GenerateHTML failed: %v", err)
	}

	for _, want := range []string{
		"<!DOCTYPE html>",
		"cytoscape",
		"Alpha A.",
		`"cose"`,
		"Collaboration Network",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("HTML missing %q", want)
		}
	}
}

func TestGenerateHTML_CustomTitleAndLayout(t *testing.T) {
	g := FromNetwork(sampleNetwork())

	html, err := GenerateHTML(g, HTMLOptions{Title: "ML at Birmingham", Layout: "circle"})
	if err != nil {
		t.Fatalf("GenerateHTML failed: %v", err)
	}
	if !strings.Contains(html, "ML at Birmingham") {
		t.Error("custom title missing")
	}
	if !strings.Contains(html, `"circle"`) {
		t.Error("circle layout missing")
	}
}

func TestGenerateHTML_EmptyGraph(t *testing.T) {
	html, err := GenerateHTML(&GraphData{}, DefaultOptions())
	if err != nil {
		t.Fatalf("GenerateHTML failed: %v", err)
	}
	if !strings.Contains(html, "No collaboration data") {
		t.Error("empty-state page missing message")
	}
}

func TestGenerateHTML_Validation(t *testing.T) {
	if _, err := GenerateHTML(nil, DefaultOptions()); err == nil {
		t.Error("nil graph accepted")
	}
	if _, err := GenerateHTML(&GraphData{}, HTMLOptions{Layout: "spiral"}); err == nil {
		t.Error("invalid layout accepted")
	}
}

func TestValidateLayout(t *testing.T) {
	for _, layout := range append([]string{""}, ValidLayouts...) {
		if err := validateLayout(layout); err != nil {
			t.Errorf("validateLayout(%q) = %v", layout, err)
		}
	}
	if err := validateLayout("spiral"); err == nil {
		t.Error("validateLayout(spiral) = nil, want error")
	}
}
