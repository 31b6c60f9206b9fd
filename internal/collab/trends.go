package collab

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// trendKeywords are the title keywords tracked over time. The list is
// data-driven: adding a keyword requires no code changes elsewhere.
var trendKeywords = []string{
	"deep learning", "machine learning", "neural network", "artificial intelligence",
	"computer vision", "natural language processing", "reinforcement learning",
	"transformer", "attention", "convolutional", "lstm", "gru",
	"classification", "segmentation", "detection", "prediction",
	"medical imaging", "healthcare", "clinical", "diagnosis",
	"covid", "cancer", "tumor", "disease",
	"interpretable", "explainable", "federated", "privacy",
	"robust", "adversarial", "uncertainty", "ensemble",
}

// YearStats summarizes one year of institutional output in the pool.
type YearStats struct {
	Year          int     `json:"year"`
	Papers        int     `json:"papers"`
	Citations     int     `json:"citations"`
	UniqueAuthors int     `json:"unique_authors"`
	AvgCitations  float64 `json:"avg_citations"`
}

// EmergingKeyword is a title keyword growing in recent years.
type EmergingKeyword struct {
	Keyword     string  `json:"keyword"`
	RecentCount int     `json:"recent_count"`
	Growth      float64 `json:"growth"`
}

// Trends is the yearly trend analysis for one research area.
type Trends struct {
	Years          []YearStats       `json:"years"` // ascending by year
	TotalPapers    int               `json:"total_papers"`
	TotalCitations int               `json:"total_citations"`

	// PaperTrend is the least-squares slope of papers per year. Zero when
	// fewer than three years of data exist.
	PaperTrend float64 `json:"paper_trend"`

	Emerging []EmergingKeyword `json:"emerging_keywords"`
}

// Trends analyzes institutional research activity over the yearsBack window
// ending at the current year. A non-positive yearsBack uses the default.
func (a *Analyzer) Trends(ctx context.Context, researchArea string, yearsBack int) (*Trends, error) {
	if yearsBack <= 0 {
		yearsBack = DefaultYearsBack
	}
	startYear := a.now().Year() - yearsBack

	papers, err := a.search.Search(ctx, researchArea, a.cfg.TrendPoolSize)
	if err != nil {
		return nil, fmt.Errorf("searching papers: %w", err)
	}

	type yearAccum struct {
		papers    int
		citations int
		authors   map[string]bool
	}
	yearly := make(map[int]*yearAccum)
	keywordByYear := make(map[string]map[int]int)

	for _, paper := range papers {
		if !a.institutionMatch(paper.Affiliation) || paper.Year < startYear || paper.Year == 0 {
			continue
		}

		acc := yearly[paper.Year]
		if acc == nil {
			acc = &yearAccum{authors: make(map[string]bool)}
			yearly[paper.Year] = acc
		}
		acc.papers++
		acc.citations += paper.Citations
		for _, name := range paper.Authors {
			if name != "" {
				acc.authors[name] = true
			}
		}

		title := strings.ToLower(paper.Title)
		for _, kw := range trendKeywords {
			if strings.Contains(title, kw) {
				if keywordByYear[kw] == nil {
					keywordByYear[kw] = make(map[int]int)
				}
				keywordByYear[kw][paper.Year]++
			}
		}
	}

	years := make([]int, 0, len(yearly))
	for year := range yearly {
		years = append(years, year)
	}
	sort.Ints(years)

	trends := &Trends{}
	papersByYear := make([]float64, 0, len(years))
	for _, year := range years {
		acc := yearly[year]
		avg := float64(acc.citations) / float64(max(acc.papers, 1))
		trends.Years = append(trends.Years, YearStats{
			Year:          year,
			Papers:        acc.papers,
			Citations:     acc.citations,
			UniqueAuthors: len(acc.authors),
			AvgCitations:  avg,
		})
		trends.TotalPapers += acc.papers
		trends.TotalCitations += acc.citations
		papersByYear = append(papersByYear, float64(acc.papers))
	}

	if len(papersByYear) > 2 {
		trends.PaperTrend = slope(papersByYear)
	}
	trends.Emerging = emergingKeywords(years, keywordByYear)

	return trends, nil
}

// emergingKeywords finds keywords whose count in the last three data years
// is at least 2 and exceeds the count in all earlier years, ranked by
// growth rate. Requires at least three years of data.
func emergingKeywords(years []int, keywordByYear map[string]map[int]int) []EmergingKeyword {
	if len(years) < 3 {
		return nil
	}
	recentYears := years[len(years)-3:]
	earlierYears := years[:len(years)-3]

	var emerging []EmergingKeyword
	for kw, counts := range keywordByYear {
		recent := 0
		for _, y := range recentYears {
			recent += counts[y]
		}
		earlier := 0
		for _, y := range earlierYears {
			earlier += counts[y]
		}

		if recent >= 2 && recent > earlier {
			growth := float64(recent-earlier) / float64(max(earlier, 1))
			emerging = append(emerging, EmergingKeyword{
				Keyword:     kw,
				RecentCount: recent,
				Growth:      growth,
			})
		}
	}

	sort.Slice(emerging, func(i, j int) bool {
		if emerging[i].Growth != emerging[j].Growth {
			return emerging[i].Growth > emerging[j].Growth
		}
		return emerging[i].Keyword < emerging[j].Keyword
	})

	if len(emerging) > 10 {
		emerging = emerging[:10]
	}
	return emerging
}

// slope is the least-squares slope of y over x = 0..len(y)-1.
func slope(y []float64) float64 {
	n := float64(len(y))
	var sumX, sumY, sumXY, sumXX float64
	for i, v := range y {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumXX += x * x
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (n*sumXY - sumX*sumY) / denom
}
