package examples

import "github.com/ruoyu-qian/typedeck/pkg/models"

func getSpanishExamples() []ExampleSet {
	return []ExampleSet{
		{
			Name:        "Spanish Starter Deck",
			Description: "A small Spanish vocabulary deck built around typed answers",
			NoteTypes: []models.NoteType{
				typedAnswerNoteType(),
				clozeTypedAnswerNoteType(),
			},
			Decks: []models.Deck{
				{
					Name:        "Spanish",
					Description: "Starter Spanish vocabulary. Answers are typed and checked letter by letter.",
					NewPerDay:   10,
				},
			},
			Notes: []*models.Note{
				{
					ID:   "example-hola",
					Type: "Basic (type in the answer)",
					Deck: "Spanish",
					Fields: map[string]string{
						"Front": "Hello (informal greeting)",
						"Back":  "hola",
					},
					Tags: []string{"example", "spanish", "greetings"},
				},
				{
					ID:   "example-adios",
					Type: "Basic (type in the answer)",
					Deck: "Spanish",
					Fields: map[string]string{
						"Front": "Goodbye",
						"Back":  "adiós",
					},
					Tags: []string{"example", "spanish", "greetings"},
				},
				{
					ID:   "example-gracias",
					Type: "Basic (type in the answer)",
					Deck: "Spanish",
					Fields: map[string]string{
						"Front": "Thank you",
						"Back":  "gracias",
					},
					Tags: []string{"example", "spanish"},
				},
				{
					ID:   "example-manana",
					Type: "Basic (type in the answer)",
					Deck: "Spanish",
					Fields: map[string]string{
						"Front": "Tomorrow",
						"Back":  "mañana",
					},
					Tags: []string{"example", "spanish", "time"},
				},
				{
					ID:   "example-dias",
					Type: "Cloze (type in the answer)",
					Deck: "Spanish",
					Fields: map[string]string{
						"Text":       "{{c1::lunes}} is Monday and {{c2::viernes}} is Friday",
						"Back Extra": "Days of the week are not capitalized in Spanish.",
					},
					Tags: []string{"example", "spanish", "time"},
				},
			},
		},
	}
}
