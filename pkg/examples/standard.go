package examples

import "github.com/ruoyu-qian/typedeck/pkg/models"

func getStandardExamples() []ExampleSet {
	return []ExampleSet{
		{
			Name:        "Standard Note Types",
			Description: "The stock note types: basic cards, typed answers and cloze deletions",
			NoteTypes: []models.NoteType{
				basicNoteType(),
				typedAnswerNoteType(),
				clozeNoteType(),
				clozeTypedAnswerNoteType(),
			},
		},
	}
}

func basicNoteType() models.NoteType {
	return models.NoteType{
		Name: "Basic",
		Fields: []models.FieldDef{
			{Name: "Front", Font: "Arial", Size: 20},
			{Name: "Back", Font: "Arial", Size: 20},
		},
		Templates: []models.Template{
			{
				Name:     "Card 1",
				Question: "{{Front}}",
				Answer:   "{{FrontSide}}\n\n<hr id=answer>\n\n{{Back}}",
			},
		},
	}
}

func typedAnswerNoteType() models.NoteType {
	return models.NoteType{
		Name: "Basic (type in the answer)",
		Fields: []models.FieldDef{
			{Name: "Front", Font: "Arial", Size: 20},
			{Name: "Back", Font: "Arial", Size: 20},
		},
		Templates: []models.Template{
			{
				Name:     "Card 1",
				Question: "{{Front}}\n\n{{type:Back}}",
				Answer:   "{{Front}}\n\n<hr id=answer>\n\n{{type:Back}}",
			},
		},
	}
}

func clozeNoteType() models.NoteType {
	return models.NoteType{
		Name:  "Cloze",
		Cloze: true,
		Fields: []models.FieldDef{
			{Name: "Text", Font: "Arial", Size: 20},
			{Name: "Back Extra", Font: "Arial", Size: 20},
		},
		Templates: []models.Template{
			{
				Name:     "Cloze",
				Question: "{{cloze:Text}}",
				Answer:   "{{cloze:Text}}<br>\n{{Back Extra}}",
			},
		},
	}
}

func clozeTypedAnswerNoteType() models.NoteType {
	return models.NoteType{
		Name:  "Cloze (type in the answer)",
		Cloze: true,
		Fields: []models.FieldDef{
			{Name: "Text", Font: "Arial", Size: 20},
			{Name: "Back Extra", Font: "Arial", Size: 20},
		},
		Templates: []models.Template{
			{
				Name:     "Cloze",
				Question: "{{cloze:Text}}\n\n{{type:cloze:Text}}",
				Answer:   "{{cloze:Text}}<br>\n{{type:cloze:Text}}<br>\n{{Back Extra}}",
			},
		},
	}
}
