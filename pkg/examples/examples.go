package examples

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ruoyu-qian/typedeck/pkg/files"
	"github.com/ruoyu-qian/typedeck/pkg/models"
)

// ExampleSet represents a collection of related starter content
type ExampleSet struct {
	Category    string
	Name        string
	Description string
	NoteTypes   []models.NoteType
	Decks       []models.Deck
	Notes       []*models.Note
}

// GetExamples returns example sets for the given category
func GetExamples(category string) []ExampleSet {
	switch category {
	case "standard":
		sets := getStandardExamples()
		for i := range sets {
			sets[i].Category = "standard"
		}
		return sets
	case "spanish":
		sets := getSpanishExamples()
		for i := range sets {
			sets[i].Category = "spanish"
		}
		return sets
	case "all":
		var all []ExampleSet

		standard := getStandardExamples()
		for i := range standard {
			standard[i].Category = "standard"
		}
		all = append(all, standard...)

		spanish := getSpanishExamples()
		for i := range spanish {
			spanish[i].Category = "spanish"
		}
		all = append(all, spanish...)

		return all
	default:
		return []ExampleSet{}
	}
}

// InstallNoteType installs a note type example to the user's .typedeck directory
func InstallNoteType(nt models.NoteType, force bool) (bool, error) {
	path := filepath.Join(files.NoteTypesDir, files.Slugify(nt.Name)+".yaml")
	fullPath := filepath.Join(files.TypedeckDir, path)

	if !force {
		if _, err := os.Stat(fullPath); err == nil {
			return false, fmt.Errorf("note type already exists at %s", path)
		}
	}

	if err := files.WriteNoteType(&nt); err != nil {
		return false, err
	}

	return true, nil
}

// InstallDeck installs a deck example to the user's .typedeck directory
func InstallDeck(deck models.Deck, force bool) (bool, error) {
	path := filepath.Join(files.DecksDir, files.Slugify(deck.Name)+".yaml")
	fullPath := filepath.Join(files.TypedeckDir, path)

	if !force {
		if _, err := os.Stat(fullPath); err == nil {
			return false, fmt.Errorf("deck already exists at %s", path)
		}
	}

	deck.Path = ""
	if err := files.WriteDeck(&deck); err != nil {
		return false, err
	}

	return true, nil
}

// InstallNote installs a note example to the user's .typedeck directory
func InstallNote(note *models.Note, force bool) (bool, error) {
	path := filepath.Join(files.NotesDir, note.ID+".yaml")
	fullPath := filepath.Join(files.TypedeckDir, path)

	if !force {
		if _, err := os.Stat(fullPath); err == nil {
			return false, fmt.Errorf("note already exists at %s", path)
		}
	}

	// Copy before writing so the caller's literal keeps a clean Path.
	n := *note
	n.Path = ""
	if err := files.WriteNote(&n); err != nil {
		return false, err
	}

	return true, nil
}
