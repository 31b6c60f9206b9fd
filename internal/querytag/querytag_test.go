package querytag

import (
	"reflect"
	"testing"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name            string
		query           string
		wantDomains     []string
		wantMethods     []string
		wantConstraints []string
	}{
		{
			name:            "multi component query",
			query:           "recent deep learning for cancer detection in CT scans",
			wantDomains:     []string{"medical_imaging", "oncology"},
			wantMethods:     []string{"deep_learning"},
			wantConstraints: []string{"recent"},
		},
		{
			name:            "no matches",
			query:           "quantum chromodynamics lattice simulations",
			wantDomains:     []string{},
			wantMethods:     []string{},
			wantConstraints: []string{},
		},
		{
			name:            "case insensitive",
			query:           "EXPLAINABLE Machine Learning for CLINICAL decisions",
			wantDomains:     []string{"healthcare"},
			wantMethods:     []string{"machine_learning"},
			wantConstraints: []string{"interpretable"},
		},
		{
			name:            "one keyword yields label once",
			query:           "transformer attention neural network models",
			wantDomains:     []string{},
			wantMethods:     []string{"deep_learning"},
			wantConstraints: []string{},
		},
		{
			name:            "british spelling",
			query:           "tumour segmentation with anonymised records",
			wantDomains:     []string{"computer_vision", "oncology"},
			wantMethods:     []string{},
			wantConstraints: []string{"privacy"},
		},
		{
			name:            "hyphen variants",
			query:           "state-of-the-art real-time robust inference",
			wantDomains:     []string{},
			wantMethods:     []string{},
			wantConstraints: []string{"real_time", "recent", "robust"},
		},
		{
			name:            "empty query",
			query:           "",
			wantDomains:     []string{},
			wantMethods:     []string{},
			wantConstraints: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.query)
			if !reflect.DeepEqual(got.Domains, tt.wantDomains) {
				t.Errorf("Domains = %v, want %v", got.Domains, tt.wantDomains)
			}
			if !reflect.DeepEqual(got.Methods, tt.wantMethods) {
				t.Errorf("Methods = %v, want %v", got.Methods, tt.wantMethods)
			}
			if !reflect.DeepEqual(got.Constraints, tt.wantConstraints) {
				t.Errorf("Constraints = %v, want %v", got.Constraints, tt.wantConstraints)
			}
			if got.OriginalQuery != tt.query {
				t.Errorf("OriginalQuery = %q, want verbatim %q", got.OriginalQuery, tt.query)
			}
		})
	}
}

func TestExtract_LabelsSorted(t *testing.T) {
	got := Extract("covid patient dna imaging with cnn and bayesian graph neural models")
	for _, labels := range [][]string{got.Domains, got.Methods, got.Constraints} {
		for i := 1; i < len(labels); i++ {
			if labels[i-1] > labels[i] {
				t.Errorf("labels not sorted: %v", labels)
			}
		}
	}
}
