package search

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ruoyu-qian/typedeck/pkg/files"
	"github.com/ruoyu-qian/typedeck/pkg/models"
	"github.com/ruoyu-qian/typedeck/pkg/utils"
)

// SearchItem is one indexed note
type SearchItem struct {
	ID         string
	Path       string
	Name       string // first-field excerpt used for display
	Deck       string
	Type       string // note type name
	Tags       []string
	Fields     map[string]string
	Content    string // all field values, flattened to plain text
	Modified   time.Time
	IsArchived bool
}

// SearchResult represents a search result with relevance score
type SearchResult struct {
	Item       SearchItem
	Score      float64
	Highlights map[string][]string // field -> highlighted excerpts
}

// Index represents the search index
type Index struct {
	mu    sync.RWMutex
	items []SearchItem

	// Inverted indexes for fast lookup
	tagIndex      map[string][]int // normalized tag -> item indices
	deckIndex     map[string][]int // lowercased deck name -> item indices
	typeIndex     map[string][]int // lowercased note type name -> item indices
	contentTokens map[string][]int // token -> item indices
}

// Engine represents the search engine
type Engine struct {
	index           *Index
	parser          *Parser
	includeArchived bool // Whether to include archived notes in search
}

// NewEngine creates a new search engine
func NewEngine() *Engine {
	return &Engine{
		index: &Index{
			items:         []SearchItem{},
			tagIndex:      make(map[string][]int),
			deckIndex:     make(map[string][]int),
			typeIndex:     make(map[string][]int),
			contentTokens: make(map[string][]int),
		},
		parser: NewParser(),
	}
}

// BuildIndex builds the search index from all active notes
func (e *Engine) BuildIndex() error {
	return e.BuildIndexWithOptions(false)
}

// BuildIndexWithOptions builds the search index with options
func (e *Engine) BuildIndexWithOptions(includeArchived bool) error {
	e.index.mu.Lock()
	defer e.index.mu.Unlock()

	// Clear existing index
	e.index.items = []SearchItem{}
	e.index.tagIndex = make(map[string][]int)
	e.index.deckIndex = make(map[string][]int)
	e.index.typeIndex = make(map[string][]int)
	e.index.contentTokens = make(map[string][]int)

	// Note types supply field order for display names
	noteTypes := make(map[string]*models.NoteType)
	typeFiles, err := files.ListNoteTypes()
	if err != nil {
		return fmt.Errorf("failed to list note types: %w", err)
	}
	for _, typeFile := range typeFiles {
		nt, err := files.ReadNoteType(typeFile)
		if err != nil {
			continue // Skip note types that can't be read
		}
		noteTypes[nt.Name] = nt
	}

	noteFiles, err := files.ListNotes()
	if err != nil {
		return fmt.Errorf("failed to list notes: %w", err)
	}
	for _, noteFile := range noteFiles {
		note, err := files.ReadNote(noteFile)
		if err != nil {
			continue // Skip notes that can't be read
		}
		e.addToIndex(noteItem(note, noteTypes[note.Type], false))
	}

	// Index archived notes if requested
	if includeArchived {
		archived, err := files.ListArchivedNotes()
		if err == nil {
			for _, noteFile := range archived {
				note, err := files.ReadArchivedNote(noteFile)
				if err != nil {
					continue // Skip notes that can't be read
				}
				e.addToIndex(noteItem(note, noteTypes[note.Type], true))
			}
		}
	}

	return nil
}

// noteItem flattens a note into its indexed form. The note type supplies
// field order; without one the fields fall back to name order.
func noteItem(note *models.Note, nt *models.NoteType, archived bool) SearchItem {
	var values []string
	if nt != nil {
		for _, f := range nt.Fields {
			if v, ok := note.Fields[f.Name]; ok {
				values = append(values, v)
			}
		}
	} else {
		names := make([]string, 0, len(note.Fields))
		for name := range note.Fields {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			values = append(values, note.Fields[name])
		}
	}

	name := note.ID
	for _, v := range values {
		if excerpt := utils.Excerpt(v, 60); excerpt != "" {
			name = excerpt
			break
		}
	}

	return SearchItem{
		ID:         note.ID,
		Path:       note.Path,
		Name:       name,
		Deck:       note.Deck,
		Type:       note.Type,
		Tags:       note.Tags,
		Fields:     note.Fields,
		Content:    utils.Flatten(utils.StripHTML(strings.Join(values, " "))),
		Modified:   note.Modified,
		IsArchived: archived,
	}
}

// addToIndex adds an item to the index and updates inverted indexes
func (e *Engine) addToIndex(item SearchItem) {
	idx := len(e.index.items)
	e.index.items = append(e.index.items, item)

	// Update tag index
	for _, tag := range item.Tags {
		normalized := models.NormalizeTagName(tag)
		e.index.tagIndex[normalized] = append(e.index.tagIndex[normalized], idx)
	}

	// Update deck and type indexes
	if item.Deck != "" {
		deck := strings.ToLower(item.Deck)
		e.index.deckIndex[deck] = append(e.index.deckIndex[deck], idx)
	}
	if item.Type != "" {
		typ := strings.ToLower(item.Type)
		e.index.typeIndex[typ] = append(e.index.typeIndex[typ], idx)
	}

	// Update content token index (simple word tokenization)
	for _, token := range tokenizeContent(item.Content) {
		e.index.contentTokens[token] = append(e.index.contentTokens[token], idx)
	}
}

// Search performs a search using the given query
func (e *Engine) Search(queryStr string) ([]SearchResult, error) {
	query, err := e.parser.Parse(queryStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse query: %w", err)
	}

	// Check if query asks for archived notes and rebuild index if needed
	hasArchivedQuery := false
	for _, condition := range query.Conditions {
		if condition.Field == FieldStatus {
			statusStr := strings.ToLower(condition.Value.(string))
			if statusStr == "archived" {
				hasArchivedQuery = true
				break
			}
		}
	}

	if hasArchivedQuery && !e.includeArchived {
		e.includeArchived = true
		if err := e.BuildIndexWithOptions(true); err != nil {
			return nil, fmt.Errorf("failed to rebuild index with archived notes: %w", err)
		}
	} else if !hasArchivedQuery && e.includeArchived {
		e.includeArchived = false
		if err := e.BuildIndexWithOptions(false); err != nil {
			return nil, fmt.Errorf("failed to rebuild index without archived notes: %w", err)
		}
	}

	e.index.mu.RLock()
	defer e.index.mu.RUnlock()

	// An empty query matches every indexed note
	var finalMatches []int
	if len(query.Conditions) == 0 {
		for i := range e.index.items {
			finalMatches = append(finalMatches, i)
		}
	} else {
		var conditionMatches [][]int
		for _, condition := range query.Conditions {
			matches := e.evaluateCondition(condition)
			conditionMatches = append(conditionMatches, matches)
		}

		finalMatches = e.combineMatches(conditionMatches, query.Logic)
	}

	results := make([]SearchResult, 0, len(finalMatches))
	for _, idx := range finalMatches {
		if idx < len(e.index.items) {
			result := SearchResult{
				Item:       e.index.items[idx],
				Score:      e.calculateScore(e.index.items[idx], query),
				Highlights: e.generateHighlights(e.index.items[idx], query),
			}
			results = append(results, result)
		}
	}

	sortResultsByScore(results)

	return results, nil
}

// evaluateCondition evaluates a single search condition
func (e *Engine) evaluateCondition(condition Condition) []int {
	var matches []int

	switch condition.Field {
	case FieldTag:
		searchTag := models.NormalizeTagName(condition.Value.(string))
		// Support partial tag matching
		for tag, indices := range e.index.tagIndex {
			if strings.HasPrefix(tag, searchTag) {
				matches = append(matches, indices...)
			}
		}
		matches = deduplicateIndices(matches)

	case FieldDeck:
		pattern := strings.ToLower(condition.Value.(string))
		for deck, indices := range e.index.deckIndex {
			if strings.HasPrefix(deck, pattern) {
				matches = append(matches, indices...)
			}
		}
		matches = deduplicateIndices(matches)

	case FieldTypeField:
		pattern := strings.ToLower(condition.Value.(string))
		for typ, indices := range e.index.typeIndex {
			if strings.HasPrefix(typ, pattern) {
				matches = append(matches, indices...)
			}
		}
		matches = deduplicateIndices(matches)

	case FieldNoteField:
		q := condition.Value.(FieldQuery)
		text := strings.ToLower(q.Text)
		for i, item := range e.index.items {
			value, ok := noteFieldValue(item, q.Name)
			if !ok {
				continue
			}
			if text == "" {
				if strings.TrimSpace(value) != "" {
					matches = append(matches, i)
				}
			} else if strings.Contains(strings.ToLower(value), text) {
				matches = append(matches, i)
			}
		}

	case FieldContent:
		searchTerm := strings.ToLower(condition.Value.(string))
		// Use token index for word-based search
		if indices, exists := e.index.contentTokens[searchTerm]; exists {
			matches = indices
		} else {
			// Fallback to substring search for partial words and phrases
			for i, item := range e.index.items {
				if strings.Contains(strings.ToLower(item.Content), searchTerm) {
					matches = append(matches, i)
				}
			}
		}

	case FieldModified:
		duration := condition.Value.(time.Duration)
		cutoff := time.Now().Add(-duration)
		for i, item := range e.index.items {
			if condition.Operator == OperatorGreaterThan && item.Modified.After(cutoff) {
				matches = append(matches, i)
			} else if condition.Operator == OperatorLessThan && item.Modified.Before(cutoff) {
				matches = append(matches, i)
			}
		}

	case FieldStatus:
		statusStr := strings.ToLower(condition.Value.(string))
		if statusStr == "archived" {
			for i, item := range e.index.items {
				if item.IsArchived {
					matches = append(matches, i)
				}
			}
		} else if statusStr == "active" {
			for i, item := range e.index.items {
				if !item.IsArchived {
					matches = append(matches, i)
				}
			}
		}
		// If status value is not recognized, return no matches
	}

	// Handle negation
	if condition.Negate {
		matches = e.invertMatches(matches)
	}

	return matches
}

// noteFieldValue looks up a note field by name, ignoring case
func noteFieldValue(item SearchItem, name string) (string, bool) {
	if v, ok := item.Fields[name]; ok {
		return v, true
	}
	for k, v := range item.Fields {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return "", false
}

// combineMatches combines match sets based on logical operators
func (e *Engine) combineMatches(conditionMatches [][]int, operators []Operator) []int {
	if len(conditionMatches) == 0 {
		return []int{}
	}

	result := conditionMatches[0]

	for i := 1; i < len(conditionMatches); i++ {
		if i-1 < len(operators) {
			switch operators[i-1] {
			case OperatorAND:
				result = intersectSlices(result, conditionMatches[i])
			case OperatorOR:
				result = unionSlices(result, conditionMatches[i])
			}
		}
	}

	return result
}

// invertMatches returns all indices not in the given matches
func (e *Engine) invertMatches(matches []int) []int {
	matchSet := make(map[int]bool)
	for _, m := range matches {
		matchSet[m] = true
	}

	var inverted []int
	for i := range e.index.items {
		if !matchSet[i] {
			inverted = append(inverted, i)
		}
	}

	return inverted
}

// calculateScore calculates relevance score for a search result
func (e *Engine) calculateScore(item SearchItem, query *Query) float64 {
	score := 1.0

	// Boost exact deck matches over prefix matches
	for _, condition := range query.Conditions {
		if condition.Field == FieldDeck {
			pattern := strings.ToLower(condition.Value.(string))
			if strings.ToLower(item.Deck) == pattern {
				score += 2.0
			} else if strings.HasPrefix(strings.ToLower(item.Deck), pattern) {
				score += 1.0
			}
		}
	}

	// Boost for tag matches
	tagMatches := 0
	for _, condition := range query.Conditions {
		if condition.Field == FieldTag {
			searchTag := models.NormalizeTagName(condition.Value.(string))
			for _, itemTag := range item.Tags {
				if models.NormalizeTagName(itemTag) == searchTag {
					tagMatches++
				}
			}
		}
	}
	score += float64(tagMatches) * 0.5

	// Boost for recently edited notes
	age := time.Since(item.Modified)
	if age < 24*time.Hour {
		score += 1.0
	} else if age < 7*24*time.Hour {
		score += 0.5
	}

	return score
}

// generateHighlights generates highlighted excerpts for matching fields
func (e *Engine) generateHighlights(item SearchItem, query *Query) map[string][]string {
	highlights := make(map[string][]string)

	for _, condition := range query.Conditions {
		switch condition.Field {
		case FieldContent:
			searchTerm := condition.Value.(string)
			excerpts := extractExcerpts(item.Content, searchTerm, 3, 50)
			if len(excerpts) > 0 {
				highlights["content"] = excerpts
			}
		case FieldNoteField:
			q := condition.Value.(FieldQuery)
			value, ok := noteFieldValue(item, q.Name)
			if !ok {
				continue
			}
			if q.Text == "" || strings.Contains(strings.ToLower(value), strings.ToLower(q.Text)) {
				highlights[q.Name] = []string{utils.Excerpt(value, 120)}
			}
		}
	}

	return highlights
}

// Helper functions

func tokenizeContent(content string) []string {
	// Simple word tokenization
	var tokens []string
	// Replace hyphens with spaces to split hyphenated words
	content = strings.ReplaceAll(content, "-", " ")
	words := strings.Fields(content)

	for _, word := range words {
		// Remove common punctuation
		word = strings.Trim(word, ".,!?;:\"'")
		if len(word) > 2 { // Skip very short words
			tokens = append(tokens, strings.ToLower(word))
		}
	}

	return tokens
}

func intersectSlices(a, b []int) []int {
	set := make(map[int]bool)
	for _, v := range a {
		set[v] = true
	}

	var result []int
	for _, v := range b {
		if set[v] {
			result = append(result, v)
		}
	}

	return result
}

func deduplicateIndices(indices []int) []int {
	seen := make(map[int]bool)
	var result []int

	for _, idx := range indices {
		if !seen[idx] {
			seen[idx] = true
			result = append(result, idx)
		}
	}

	return result
}

func unionSlices(a, b []int) []int {
	set := make(map[int]bool)
	for _, v := range a {
		set[v] = true
	}
	for _, v := range b {
		set[v] = true
	}

	result := make([]int, 0, len(set))
	for v := range set {
		result = append(result, v)
	}
	sort.Ints(result)

	return result
}

func sortResultsByScore(results []SearchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
}

func extractExcerpts(content, searchTerm string, maxExcerpts, contextChars int) []string {
	var excerpts []string
	lowerContent := strings.ToLower(content)
	lowerTerm := strings.ToLower(searchTerm)

	index := 0
	for i := 0; i < maxExcerpts; i++ {
		pos := strings.Index(lowerContent[index:], lowerTerm)
		if pos == -1 {
			break
		}

		pos += index
		start := pos - contextChars
		if start < 0 {
			start = 0
		}

		end := pos + len(searchTerm) + contextChars
		if end > len(content) {
			end = len(content)
		}

		excerpt := content[start:end]
		if start > 0 {
			excerpt = "..." + excerpt
		}
		if end < len(content) {
			excerpt = excerpt + "..."
		}

		excerpts = append(excerpts, excerpt)
		index = pos + len(searchTerm)
	}

	return excerpts
}
