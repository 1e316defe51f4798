package files

import (
	"fmt"

	"github.com/ruoyu-qian/typedeck/pkg/models"
)

// Store is an in-memory snapshot of the project content, loaded once per
// command so callers resolve names without re-reading files.
type Store struct {
	NoteTypes map[string]*models.NoteType
	Notes     []*models.Note
	Decks     []*models.Deck
}

// LoadStore reads every note type, note and deck in the project.
func LoadStore() (*Store, error) {
	s := &Store{NoteTypes: make(map[string]*models.NoteType)}

	typeNames, err := ListNoteTypes()
	if err != nil {
		return nil, err
	}
	for _, name := range typeNames {
		nt, err := ReadNoteType(name)
		if err != nil {
			return nil, err
		}
		s.NoteTypes[nt.Name] = nt
	}

	noteNames, err := ListNotes()
	if err != nil {
		return nil, err
	}
	for _, name := range noteNames {
		note, err := ReadNote(name)
		if err != nil {
			return nil, err
		}
		s.Notes = append(s.Notes, note)
	}

	deckNames, err := ListDecks()
	if err != nil {
		return nil, err
	}
	for _, name := range deckNames {
		deck, err := ReadDeck(name)
		if err != nil {
			return nil, err
		}
		s.Decks = append(s.Decks, deck)
	}

	return s, nil
}

// Deck resolves a deck by display name.
func (s *Store) Deck(name string) (*models.Deck, bool) {
	for _, d := range s.Decks {
		if d.Name == name {
			return d, true
		}
	}
	return nil, false
}

// NoteType resolves a note type by name.
func (s *Store) NoteType(name string) (*models.NoteType, bool) {
	nt, ok := s.NoteTypes[name]
	return nt, ok
}

// DeckNotes returns the notes filed under the named deck.
func (s *Store) DeckNotes(deck string) []*models.Note {
	var notes []*models.Note
	for _, n := range s.Notes {
		if n.Deck == deck {
			notes = append(notes, n)
		}
	}
	return notes
}

// DeckCards derives every card of the named deck. Notes whose type is
// missing are reported as an error rather than silently skipped.
func (s *Store) DeckCards(deck string) ([]*models.Card, error) {
	var cards []*models.Card
	for _, n := range s.DeckNotes(deck) {
		nt, ok := s.NoteTypes[n.Type]
		if !ok {
			return nil, fmt.Errorf("note %s uses unknown note type %q", n.ID, n.Type)
		}
		cards = append(cards, models.Cards(n, nt)...)
	}
	return cards, nil
}
