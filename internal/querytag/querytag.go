// Package querytag classifies free-text research queries against fixed
// keyword tables. The tags annotate displayed output only; nothing in
// retrieval or ranking consumes them.
package querytag

import (
	"sort"
	"strings"
)

// Components are the coarse labels detected in a query, plus the query
// itself verbatim. Empty slices are valid output when nothing matches.
type Components struct {
	Domains       []string `json:"domains"`
	Methods       []string `json:"methods"`
	Constraints   []string `json:"constraints"`
	OriginalQuery string   `json:"original_query"`
}

// The tables are data-driven so new labels are additive: add an entry, no
// branching logic to touch.
var domainKeywords = map[string][]string{
	"healthcare":      {"healthcare", "health care", "clinical", "patient", "diagnosis", "medical"},
	"oncology":        {"cancer", "tumor", "tumour", "oncology"},
	"medical_imaging": {"medical imaging", "ct scan", "mri", "x-ray", "radiology", "ultrasound"},
	"computer_vision": {"computer vision", "image", "segmentation", "object detection", "video"},
	"nlp":             {"natural language", "nlp", "text mining", "language model", "speech"},
	"genomics":        {"genomic", "gene expression", "dna", "sequencing", "proteomic"},
	"epidemiology":    {"epidemiolog", "covid", "pandemic", "public health", "disease spread"},
}

var methodKeywords = map[string][]string{
	"deep_learning": {"deep learning", "neural network", "cnn", "convolutional", "transformer",
		"lstm", "gru", "attention"},
	"machine_learning": {"machine learning", "classification", "clustering", "random forest",
		"svm", "gradient boosting", "prediction model"},
	"reinforcement_learning": {"reinforcement learning", "q-learning", "policy gradient"},
	"statistics":             {"bayesian", "statistical", "regression analysis", "survival analysis"},
	"graph_methods":          {"graph neural", "knowledge graph", "network analysis"},
}

var constraintPatterns = map[string][]string{
	"recent":        {"recent", "latest", "state of the art", "state-of-the-art", "emerging"},
	"interpretable": {"interpretable", "explainable", "transparent"},
	"privacy":       {"privacy", "federated", "anonymis", "anonymiz"},
	"real_time":     {"real time", "real-time", "online", "streaming"},
	"robust":        {"robust", "adversarial", "uncertainty"},
}

// Extract tags a query with the domain, method, and constraint labels whose
// keywords appear as case-insensitive substrings. Labels are returned
// sorted so output is reproducible. Extract never fails.
func Extract(query string) Components {
	lower := strings.ToLower(query)
	return Components{
		Domains:       matchLabels(lower, domainKeywords),
		Methods:       matchLabels(lower, methodKeywords),
		Constraints:   matchLabels(lower, constraintPatterns),
		OriginalQuery: query,
	}
}

// matchLabels returns the sorted labels with at least one keyword present
// in the lower-cased query.
func matchLabels(lowerQuery string, table map[string][]string) []string {
	labels := make([]string, 0)
	for label, keywords := range table {
		for _, kw := range keywords {
			if strings.Contains(lowerQuery, kw) {
				labels = append(labels, label)
				break
			}
		}
	}
	sort.Strings(labels)
	return labels
}
