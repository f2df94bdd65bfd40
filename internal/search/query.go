package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/marczakjulia/BYT-PROJECT/internal/domain"
	"github.com/marczakjulia/BYT-PROJECT/internal/normalize"
)

// Params configures a movie search.
type Params struct {
	Query  string             // Free text; empty matches every movie
	Genres []domain.GenreKind // Movies having any of these genres
	Cut    domain.CutKind     // Only movies in this cut, if set

	MinLength int // Minutes including cut extras
	MaxLength int

	Limit  int
	Offset int

	SortBy string // "relevance" (default), "title", "length"
}

// DefaultParams returns sensible defaults.
func DefaultParams() Params {
	return Params{
		Limit:  20,
		SortBy: "relevance",
	}
}

// Result holds the matching movies and facet counts over all matches.
type Result struct {
	Query  string       `json:"query"`
	Total  uint64       `json:"total"`
	TookMs int64        `json:"took_ms"`
	Hits   []Hit        `json:"hits"`
	Genres []FacetCount `json:"genres,omitempty"`
	Cuts   []FacetCount `json:"cuts,omitempty"`
}

// Hit is a single matching movie.
type Hit struct {
	ID     string   `json:"id"`
	Score  float64  `json:"score"`
	Title  string   `json:"title"`
	Genres []string `json:"genres,omitempty"`
	Cut    string   `json:"cut"`
	Length int      `json:"length"`
}

// FacetCount represents a facet value and its count.
type FacetCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Search runs a query against the index.
func (s *MovieIndex) Search(ctx context.Context, params Params) (*Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if params.Limit <= 0 {
		params.Limit = DefaultParams().Limit
	}

	req := bleve.NewSearchRequestOptions(buildSearchQuery(params), params.Limit, params.Offset, false)
	addSorting(req, params)
	req.AddFacet("genres", bleve.NewFacetRequest("genres", 10))
	req.AddFacet("cut", bleve.NewFacetRequest("cut", 10))
	req.Fields = []string{"display_title", "genres", "cut", "length"}

	res, err := s.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	result := &Result{
		Query:  params.Query,
		Total:  res.Total,
		TookMs: res.Took.Milliseconds(),
		Hits:   make([]Hit, 0, len(res.Hits)),
		Genres: facetCounts(res, "genres"),
		Cuts:   facetCounts(res, "cut"),
	}

	for _, h := range res.Hits {
		hit := Hit{ID: h.ID, Score: h.Score}
		if t, ok := h.Fields["display_title"].(string); ok {
			hit.Title = t
		}
		if c, ok := h.Fields["cut"].(string); ok {
			hit.Cut = c
		}
		if l, ok := h.Fields["length"].(float64); ok {
			hit.Length = int(l)
		}
		hit.Genres = storedStrings(h.Fields["genres"])
		result.Hits = append(result.Hits, hit)
	}

	return result, nil
}

// buildSearchQuery constructs the Bleve query from params.
func buildSearchQuery(params Params) query.Query {
	var queries []query.Query

	if q := normalize.Fold(params.Query); q != "" {
		titleMatch := bleve.NewMatchQuery(q)
		titleMatch.SetField("title")
		titleMatch.SetBoost(3.0)

		directorMatch := bleve.NewMatchQuery(q)
		directorMatch.SetField("director")
		directorMatch.SetBoost(1.5)

		countryMatch := bleve.NewMatchQuery(q)
		countryMatch.SetField("country")

		descMatch := bleve.NewMatchQuery(q)
		descMatch.SetField("description")
		descMatch.SetBoost(0.5)

		textQueries := []query.Query{titleMatch, directorMatch, countryMatch, descMatch}

		// Typo tolerance and autocomplete apply to the last word typed.
		words := strings.Fields(q)
		last := words[len(words)-1]

		fuzzy := bleve.NewFuzzyQuery(last)
		fuzzy.SetFuzziness(1)
		fuzzy.SetField("title")
		fuzzy.SetBoost(0.8)
		textQueries = append(textQueries, fuzzy)

		if len(last) >= 2 {
			prefix := bleve.NewPrefixQuery(last)
			prefix.SetField("title")
			prefix.SetBoost(0.5)
			textQueries = append(textQueries, prefix)
		}

		queries = append(queries, bleve.NewDisjunctionQuery(textQueries...))
	}

	if len(params.Genres) > 0 {
		genreQueries := make([]query.Query, len(params.Genres))
		for i, g := range params.Genres {
			gq := bleve.NewTermQuery(string(g))
			gq.SetField("genres")
			genreQueries[i] = gq
		}
		queries = append(queries, bleve.NewDisjunctionQuery(genreQueries...))
	}

	if params.Cut != "" {
		cq := bleve.NewTermQuery(string(params.Cut))
		cq.SetField("cut")
		queries = append(queries, cq)
	}

	if params.MinLength > 0 || params.MaxLength > 0 {
		var lo, hi *float64
		if params.MinLength > 0 {
			v := float64(params.MinLength)
			lo = &v
		}
		if params.MaxLength > 0 {
			v := float64(params.MaxLength)
			hi = &v
		}
		inclusive := true
		rq := bleve.NewNumericRangeInclusiveQuery(lo, hi, &inclusive, &inclusive)
		rq.SetField("length")
		queries = append(queries, rq)
	}

	switch len(queries) {
	case 0:
		return bleve.NewMatchAllQuery()
	case 1:
		return queries[0]
	default:
		return bleve.NewConjunctionQuery(queries...)
	}
}

// addSorting configures sort order.
func addSorting(req *bleve.SearchRequest, params Params) {
	switch params.SortBy {
	case "title":
		req.SortBy([]string{"title", "-_score"})
	case "length":
		req.SortBy([]string{"length", "title"})
	default:
		req.SortBy([]string{"-_score", "title"})
	}
}

func facetCounts(res *bleve.SearchResult, field string) []FacetCount {
	facet, ok := res.Facets[field]
	if !ok || facet.Terms == nil {
		return nil
	}
	var counts []FacetCount
	for _, term := range facet.Terms.Terms() {
		counts = append(counts, FacetCount{Value: term.Term, Count: term.Count})
	}
	return counts
}

// storedStrings reads a stored multi-value field, which Bleve returns as a
// string for one value and a slice for several.
func storedStrings(v any) []string {
	switch v := v.(type) {
	case string:
		return []string{v}
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
