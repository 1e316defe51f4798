package search

import (
	"fmt"
	"sort"
	"time"
)

// SearchAPI provides a high-level interface for searching notes
type SearchAPI struct {
	engine *Engine
}

// NewSearchAPI creates a new search API instance
func NewSearchAPI() (*SearchAPI, error) {
	api := &SearchAPI{
		engine: NewEngine(),
	}

	if err := api.engine.BuildIndex(); err != nil {
		return nil, fmt.Errorf("failed to build search index: %w", err)
	}

	return api, nil
}

// RefreshIndex rebuilds the search index
func (api *SearchAPI) RefreshIndex() error {
	return api.engine.BuildIndex()
}

// Search performs a search with the given query
func (api *SearchAPI) Search(query string) ([]SearchResult, error) {
	return api.engine.Search(query)
}

// SearchOptions represents options for searching
type SearchOptions struct {
	Query      string
	Tags       []string
	Decks      []string
	Types      []string
	MaxResults int
	SortBy     string // "relevance", "name", "modified"
}

// SearchWithOptions performs a search with specific options
func (api *SearchAPI) SearchWithOptions(opts SearchOptions) ([]SearchResult, error) {
	query := opts.Query

	for _, tag := range opts.Tags {
		if query != "" {
			query += " AND "
		}
		query += fmt.Sprintf("tag:%s", tag)
	}

	for i, deck := range opts.Decks {
		if i == 0 && query != "" {
			query += " AND ("
		} else if i == 0 {
			query += "("
		} else {
			query += " OR "
		}
		query += fmt.Sprintf("deck:%q", deck)
		if i == len(opts.Decks)-1 {
			query += ")"
		}
	}

	for i, typ := range opts.Types {
		if i == 0 && query != "" {
			query += " AND ("
		} else if i == 0 {
			query += "("
		} else {
			query += " OR "
		}
		query += fmt.Sprintf("type:%q", typ)
		if i == len(opts.Types)-1 {
			query += ")"
		}
	}

	results, err := api.engine.Search(query)
	if err != nil {
		return nil, err
	}

	switch opts.SortBy {
	case "name":
		sortResultsByName(results)
	case "modified":
		sortResultsByModified(results)
	// "relevance" is default, already sorted by score
	}

	if opts.MaxResults > 0 && len(results) > opts.MaxResults {
		results = results[:opts.MaxResults]
	}

	return results, nil
}

// QuickFilter provides simple tag-based filtering
func (api *SearchAPI) QuickFilter(tags []string) ([]SearchResult, error) {
	if len(tags) == 0 {
		// Return all notes
		return api.Search("")
	}

	query := ""
	for i, tag := range tags {
		if i > 0 {
			query += " AND "
		}
		query += fmt.Sprintf("tag:%s", tag)
	}

	return api.engine.Search(query)
}

// SearchDeck searches within a single deck
func (api *SearchAPI) SearchDeck(query string, deck string) ([]SearchResult, error) {
	fullQuery := query
	if fullQuery != "" {
		fullQuery += " AND "
	}
	fullQuery += fmt.Sprintf("deck:%q", deck)

	return api.engine.Search(fullQuery)
}

// SearchType searches notes of a single note type
func (api *SearchAPI) SearchType(query string, noteType string) ([]SearchResult, error) {
	fullQuery := query
	if fullQuery != "" {
		fullQuery += " AND "
	}
	fullQuery += fmt.Sprintf("type:%q", noteType)

	return api.engine.Search(fullQuery)
}

// GetRecentNotes returns notes modified within the specified duration
func (api *SearchAPI) GetRecentNotes(since time.Duration) ([]SearchResult, error) {
	days := int(since.Hours() / 24)
	if days < 1 {
		days = 1
	}
	query := fmt.Sprintf("modified:<%dd", days)

	return api.engine.Search(query)
}

// GetNotesByTags returns notes that have all specified tags
func (api *SearchAPI) GetNotesByTags(tags []string) ([]SearchResult, error) {
	if len(tags) == 0 {
		return []SearchResult{}, nil
	}

	query := ""
	for i, tag := range tags {
		if i > 0 {
			query += " AND "
		}
		query += fmt.Sprintf("tag:%s", tag)
	}

	return api.engine.Search(query)
}

// GetNotesByAnyTags returns notes that have any of the specified tags
func (api *SearchAPI) GetNotesByAnyTags(tags []string) ([]SearchResult, error) {
	if len(tags) == 0 {
		return []SearchResult{}, nil
	}

	query := ""
	for i, tag := range tags {
		if i > 0 {
			query += " OR "
		}
		query += fmt.Sprintf("tag:%s", tag)
	}

	return api.engine.Search(query)
}

// SearchByContent performs a full-text content search
func (api *SearchAPI) SearchByContent(searchTerm string) ([]SearchResult, error) {
	return api.engine.Search(fmt.Sprintf("content:%q", searchTerm))
}

// Helper functions for sorting

func sortResultsByName(results []SearchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Item.Name < results[j].Item.Name
	})
}

func sortResultsByModified(results []SearchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Item.Modified.After(results[j].Item.Modified)
	})
}
