package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/simple"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"
)

// buildIndexMapping creates the Bleve mapping for movie documents.
//
// Title and director use the simple analyzer so prefix and fuzzy queries
// see whole words. Genres, cut and age restriction are keywords for
// filtering and facets.
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = simple.Name

	docMapping := bleve.NewDocumentMapping()

	// Returned in hits, never searched.
	displayTitle := bleve.NewTextFieldMapping()
	displayTitle.Index = false
	displayTitle.Store = true
	docMapping.AddFieldMappingsAt("display_title", displayTitle)

	title := bleve.NewTextFieldMapping()
	title.Analyzer = simple.Name
	docMapping.AddFieldMappingsAt("title", title)

	director := bleve.NewTextFieldMapping()
	director.Analyzer = simple.Name
	docMapping.AddFieldMappingsAt("director", director)

	country := bleve.NewTextFieldMapping()
	country.Analyzer = simple.Name
	docMapping.AddFieldMappingsAt("country", country)

	// Stemmed, not stored.
	description := bleve.NewTextFieldMapping()
	description.Analyzer = en.AnalyzerName
	description.Store = false
	docMapping.AddFieldMappingsAt("description", description)

	for _, name := range []string{"id", "genres", "cut", "age_restriction"} {
		fm := bleve.NewTextFieldMapping()
		fm.Analyzer = keyword.Name
		fm.Store = true
		docMapping.AddFieldMappingsAt(name, fm)
	}

	length := bleve.NewNumericFieldMapping()
	length.Store = true
	docMapping.AddFieldMappingsAt("length", length)

	indexMapping.AddDocumentMapping("_default", docMapping)

	return indexMapping
}
