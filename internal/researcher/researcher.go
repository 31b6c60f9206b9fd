// Package researcher ranks institution-affiliated researchers for a
// research area by aggregating semantic search hits per author and scoring
// the aggregates with a weighted heuristic.
package researcher

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/campuskg/scholargraph/internal/semantic"
)

// DefaultTopK is the default number of researchers returned.
const DefaultTopK = 10

// Weights are the composite score coefficients.
type Weights struct {
	PaperCount  float64 `yaml:"paper_count" json:"paper_count"`
	AvgCitation float64 `yaml:"avg_citation" json:"avg_citation"`
	RecentPaper float64 `yaml:"recent_paper" json:"recent_paper"`
	Diversity   float64 `yaml:"diversity" json:"diversity"`
}

// Config holds the tunables of the ranking heuristic. The pool size is a
// fixed constant independent of the requested topK.
type Config struct {
	// Institutions is the allow-list of institution-name substrings,
	// matched case-insensitively against a paper's affiliation.
	Institutions []string `yaml:"institutions" json:"institutions"`

	// RecencyCutoffYear: papers from this year onward count as recent.
	RecencyCutoffYear int `yaml:"recency_cutoff_year" json:"recency_cutoff_year"`

	// PoolSize is how many papers are sampled from semantic search.
	PoolSize int `yaml:"pool_size" json:"pool_size"`

	// DiversityCap bounds the distinct-title contribution to the score.
	DiversityCap int `yaml:"diversity_cap" json:"diversity_cap"`

	// TitlePrefixLen is the prefix length used as a near-duplicate proxy:
	// titles identical in their first TitlePrefixLen characters count once.
	TitlePrefixLen int `yaml:"title_prefix_len" json:"title_prefix_len"`

	Weights Weights `yaml:"weights" json:"weights"`
}

// DefaultConfig returns the documented default configuration. The default
// allow-list targets the University of Birmingham campus.
func DefaultConfig() Config {
	return Config{
		Institutions: []string{
			"university of birmingham",
			"birmingham business school",
			"college of social sciences",
			"birmingham medical school",
			"university of birmingham dubai",
		},
		RecencyCutoffYear: 2019,
		PoolSize:          50,
		DiversityCap:      10,
		TitlePrefixLen:    50,
		Weights: Weights{
			PaperCount:  0.3,
			AvgCitation: 0.001,
			RecentPaper: 0.4,
			Diversity:   0.3,
		},
	}
}

// PaperRecord is one contributing paper in an author's aggregate.
type PaperRecord struct {
	Title      string  `json:"title"`
	Year       int     `json:"year,omitempty"`
	Citations  int     `json:"citations"`
	Similarity float32 `json:"similarity"`
}

// Aggregate holds the per-author statistics accumulated over the filtered
// paper pool. An aggregate always has PaperCount >= 1: entries are only
// created when a paper is attributed.
type Aggregate struct {
	Name           string        `json:"name"`
	Papers         []PaperRecord `json:"papers"`
	PaperCount     int           `json:"paper_count"`
	TotalCitations int           `json:"total_citations"`
	RecentPapers   int           `json:"recent_papers"`

	// Affiliation is the affiliation of the author's last accumulated
	// paper (last-write-wins, as in the original system).
	Affiliation string `json:"affiliation,omitempty"`
}

// AvgCitations returns the mean citation count over accumulated papers.
func (a *Aggregate) AvgCitations() float64 {
	if a.PaperCount == 0 {
		return 0
	}
	return float64(a.TotalCitations) / float64(a.PaperCount)
}

// Ranked is one scored researcher in the output.
type Ranked struct {
	Score float64 `json:"score"`
	Name  string  `json:"name"`
	Aggregate
	// TopPapers are up to 3 representative papers for display, ranked by
	// similarity*0.7 + citations*0.0001.
	TopPapers []PaperRecord `json:"top_papers"`
}

// Searcher is the slice of the semantic engine the ranker depends on.
type Searcher interface {
	Search(ctx context.Context, query string, topK int) ([]semantic.Result, error)
}

// Ranker turns a ranked paper list into a ranked researcher list.
type Ranker struct {
	search Searcher
	cfg    Config
}

// NewRanker creates a ranker over the given searcher. Zero-valued config
// fields fall back to their defaults.
func NewRanker(search Searcher, cfg Config) *Ranker {
	def := DefaultConfig()
	if len(cfg.Institutions) == 0 {
		cfg.Institutions = def.Institutions
	}
	if cfg.RecencyCutoffYear == 0 {
		cfg.RecencyCutoffYear = def.RecencyCutoffYear
	}
	if cfg.PoolSize == 0 {
		cfg.PoolSize = def.PoolSize
	}
	if cfg.DiversityCap == 0 {
		cfg.DiversityCap = def.DiversityCap
	}
	if cfg.TitlePrefixLen == 0 {
		cfg.TitlePrefixLen = def.TitlePrefixLen
	}
	if cfg.Weights == (Weights{}) {
		cfg.Weights = def.Weights
	}
	return &Ranker{search: search, cfg: cfg}
}

// Rank samples a fixed pool of papers for the research area, keeps those
// affiliated with an allow-listed institution, accumulates per-author
// statistics, and returns the topK researchers by composite score. Ties
// are broken by author name ascending so output is reproducible.
func (r *Ranker) Rank(ctx context.Context, researchArea string, topK int) ([]Ranked, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}

	papers, err := r.search.Search(ctx, researchArea, r.cfg.PoolSize)
	if err != nil {
		return nil, fmt.Errorf("searching papers: %w", err)
	}

	aggregates := make(map[string]*Aggregate)
	for _, paper := range papers {
		// A paper with no affiliation cannot be attributed to the
		// institution, regardless of its authors.
		if !r.institutionMatch(paper.Affiliation) {
			continue
		}

		record := PaperRecord{
			Title:      paper.Title,
			Year:       paper.Year,
			Citations:  paper.Citations,
			Similarity: paper.Similarity,
		}

		for _, name := range paper.Authors {
			if name == "" {
				continue
			}
			agg, ok := aggregates[name]
			if !ok {
				agg = &Aggregate{Name: name}
				aggregates[name] = agg
			}
			agg.PaperCount++
			agg.TotalCitations += paper.Citations
			agg.Papers = append(agg.Papers, record)
			if paper.Year >= r.cfg.RecencyCutoffYear {
				agg.RecentPapers++
			}
			agg.Affiliation = paper.Affiliation
		}
	}

	ranked := make([]Ranked, 0, len(aggregates))
	for _, agg := range aggregates {
		ranked = append(ranked, Ranked{
			Score:     r.score(agg),
			Name:      agg.Name,
			Aggregate: *agg,
			TopPapers: representativePapers(agg.Papers, 3),
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Name < ranked[j].Name
	})

	if topK < len(ranked) {
		ranked = ranked[:topK]
	}
	return ranked, nil
}

// institutionMatch reports whether an affiliation belongs to the target
// institution. An empty affiliation never matches.
func (r *Ranker) institutionMatch(affiliation string) bool {
	if affiliation == "" {
		return false
	}
	lower := strings.ToLower(affiliation)
	for _, inst := range r.cfg.Institutions {
		if strings.Contains(lower, inst) {
			return true
		}
	}
	return false
}

// score computes the composite heuristic:
//
//	papers*W.PaperCount + avgCitations*W.AvgCitation +
//	recent*W.RecentPaper + min(distinctTitlePrefixes, cap)*W.Diversity
func (r *Ranker) score(agg *Aggregate) float64 {
	diversity := distinctTitlePrefixes(agg.Papers, r.cfg.TitlePrefixLen)
	if diversity > r.cfg.DiversityCap {
		diversity = r.cfg.DiversityCap
	}

	w := r.cfg.Weights
	return float64(agg.PaperCount)*w.PaperCount +
		agg.AvgCitations()*w.AvgCitation +
		float64(agg.RecentPapers)*w.RecentPaper +
		float64(diversity)*w.Diversity
}

// distinctTitlePrefixes counts distinct title prefixes of the given rune
// length. This is a deduplication proxy: near-duplicate titles that only
// differ past the prefix still count as distinct.
func distinctTitlePrefixes(papers []PaperRecord, prefixLen int) int {
	prefixes := make(map[string]struct{}, len(papers))
	for _, p := range papers {
		runes := []rune(p.Title)
		if len(runes) > prefixLen {
			runes = runes[:prefixLen]
		}
		prefixes[string(runes)] = struct{}{}
	}
	return len(prefixes)
}

// representativePapers returns up to n papers ranked by
// similarity*0.7 + citations*0.0001, ties stable by accumulation order.
func representativePapers(papers []PaperRecord, n int) []PaperRecord {
	sorted := make([]PaperRecord, len(papers))
	copy(sorted, papers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return displayRank(sorted[i]) > displayRank(sorted[j])
	})
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

func displayRank(p PaperRecord) float64 {
	return float64(p.Similarity)*0.7 + float64(p.Citations)*0.0001
}
