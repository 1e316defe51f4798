package tui

import (
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ruoyu-qian/typedeck/pkg/diff"
	"github.com/ruoyu-qian/typedeck/pkg/files"
	"github.com/ruoyu-qian/typedeck/pkg/models"
	"github.com/ruoyu-qian/typedeck/pkg/scheduler"
)

func setupStudyProject(t *testing.T) func() {
	tempDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tempDir)

	if err := files.InitProjectStructure(); err != nil {
		t.Fatalf("Failed to init project structure: %v", err)
	}

	return func() {
		os.Chdir(oldWd)
	}
}

func createStudyFixtures(t *testing.T) {
	for _, nt := range []*models.NoteType{typedNoteType(), clozeNoteType()} {
		if err := files.WriteNoteType(nt); err != nil {
			t.Fatalf("Failed to create note type %s: %v", nt.Name, err)
		}
	}

	hola := typedNote("study-hola", "hello", "hola")
	hola.Tags = []string{"vocab"}
	notes := []*models.Note{
		hola,
		typedNote("study-adios", "goodbye", "adiós"),
		{
			ID:   "study-days",
			Type: "Cloze (type in the answer)",
			Deck: "Spanish",
			Fields: map[string]string{
				"Text":       "La semana empieza el {{c1::lunes}} y termina el {{c2::viernes}}.",
				"Back Extra": "weekdays",
			},
		},
	}
	for _, note := range notes {
		if err := files.WriteNote(note); err != nil {
			t.Fatalf("Failed to create note %s: %v", note.ID, err)
		}
	}

	if err := files.WriteDeck(&models.Deck{Name: "Spanish", Description: "Beginner vocabulary"}); err != nil {
		t.Fatalf("Failed to create deck: %v", err)
	}
}

func typedNoteType() *models.NoteType {
	return &models.NoteType{
		Name: "Basic (type in the answer)",
		Fields: []models.FieldDef{
			{Name: "Front"},
			{Name: "Back"},
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

func clozeNoteType() *models.NoteType {
	return &models.NoteType{
		Name: "Cloze (type in the answer)",
		Fields: []models.FieldDef{
			{Name: "Text"},
			{Name: "Back Extra"},
		},
		Templates: []models.Template{
			{
				Name:     "Cloze",
				Question: "{{cloze:Text}}\n\n{{type:cloze:Text}}",
				Answer:   "{{cloze:Text}}<br>\n{{type:cloze:Text}}<br>\n{{Back Extra}}",
			},
		},
		Cloze: true,
	}
}

func typedNote(id, front, back string) *models.Note {
	return &models.Note{
		ID:   id,
		Type: "Basic (type in the answer)",
		Deck: "Spanish",
		Fields: map[string]string{
			"Front": front,
			"Back":  back,
		},
	}
}

func typedCards(notes ...*models.Note) []*models.Card {
	nt := typedNoteType()
	var cards []*models.Card
	for _, n := range notes {
		cards = append(cards, models.Cards(n, nt)...)
	}
	return cards
}

func dueReview(cardID string, due time.Time) *models.Review {
	r := scheduler.NewState(cardID)
	r.Due = due
	return r
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBuildSessionQueueOrder(t *testing.T) {
	now := time.Now()
	cards := typedCards(
		typedNote("n-late", "uno", "one"),
		typedNote("n-early", "dos", "two"),
		typedNote("n-future", "tres", "three"),
		typedNote("n-new", "cuatro", "four"),
	)
	reviews := []*models.Review{
		dueReview("n-late#0", now.Add(-1*time.Hour)),
		dueReview("n-early#0", now.Add(-2*time.Hour)),
		dueReview("n-future#0", now.Add(1*time.Hour)),
	}

	session, err := buildSession(&models.Deck{Name: "Spanish"}, cards, reviews, models.DefaultSettings(), now)
	if err != nil {
		t.Fatalf("Failed to build session: %v", err)
	}

	if session.Total() != 3 {
		t.Fatalf("Expected 3 queued cards, got %d", session.Total())
	}

	want := []string{"n-early#0", "n-late#0", "n-new#0"}
	for i, id := range want {
		if got := session.cards[i].Item.Card.ID(); got != id {
			t.Errorf("Queue position %d: expected %s, got %s", i, id, got)
		}
	}
	if !session.cards[2].Item.New {
		t.Error("Unseen card not marked new")
	}

	due, fresh := session.Remaining()
	if due != 2 || fresh != 1 {
		t.Errorf("Expected 2 due and 1 new remaining, got %d and %d", due, fresh)
	}
	if pos, total := session.Position(); pos != 1 || total != 3 {
		t.Errorf("Expected position 1 of 3, got %d of %d", pos, total)
	}
}

func TestBuildSessionNewCardCap(t *testing.T) {
	cards := typedCards(
		typedNote("n1", "uno", "one"),
		typedNote("n2", "dos", "two"),
		typedNote("n3", "tres", "three"),
		typedNote("n4", "cuatro", "four"),
	)
	settings := models.DefaultSettings()
	settings.Study.MaxNewPerDay = 2

	session, err := buildSession(&models.Deck{Name: "Spanish"}, cards, nil, settings, time.Now())
	if err != nil {
		t.Fatalf("Failed to build session: %v", err)
	}
	if session.Total() != 2 {
		t.Errorf("Expected the study setting to cap new cards at 2, got %d", session.Total())
	}

	// A deck limit takes precedence over the study setting
	session, err = buildSession(&models.Deck{Name: "Spanish", NewPerDay: 1}, cards, nil, settings, time.Now())
	if err != nil {
		t.Fatalf("Failed to build session: %v", err)
	}
	if session.Total() != 1 {
		t.Errorf("Expected the deck limit to cap new cards at 1, got %d", session.Total())
	}
}

func TestBuildSessionEmptyQueue(t *testing.T) {
	session, err := buildSession(&models.Deck{Name: "Spanish"}, nil, nil, models.DefaultSettings(), time.Now())
	if err != nil {
		t.Fatalf("Failed to build session: %v", err)
	}

	if !session.Finished() {
		t.Error("Empty queue should start finished")
	}
	if session.Current() != nil {
		t.Error("Empty queue should have no current card")
	}
	if pos, total := session.Position(); pos != 0 || total != 0 {
		t.Errorf("Expected position 0 of 0, got %d of %d", pos, total)
	}
}

func TestSessionSubmit(t *testing.T) {
	session, err := buildSession(&models.Deck{Name: "Spanish"},
		typedCards(typedNote("n1", "hello", "hola")), nil, models.DefaultSettings(), time.Now())
	if err != nil {
		t.Fatalf("Failed to build session: %v", err)
	}

	c := session.Current()
	if c == nil || !c.Expecting() {
		t.Fatal("Typed card should expect an answer")
	}

	if session.Submit("ola") {
		t.Error("Wrong answer reported as a match")
	}
	if !session.Submit("  hola  ") {
		t.Error("Correct answer with surrounding whitespace not matched")
	}
	if got := c.Type.Input(); got != "hola" {
		t.Errorf("Expected cleaned input 'hola', got %q", got)
	}
}

func TestSessionSubmitNormalizesInput(t *testing.T) {
	session, err := buildSession(&models.Deck{Name: "Spanish"},
		typedCards(typedNote("n1", "goodbye", "adiós")), nil, models.DefaultSettings(), time.Now())
	if err != nil {
		t.Fatalf("Failed to build session: %v", err)
	}

	// Decomposed accent, as macOS keyboards produce it
	if !session.Submit("adiós") {
		t.Error("Decomposed input should match the composed answer")
	}
}

func TestSessionComparison(t *testing.T) {
	session, err := buildSession(&models.Deck{Name: "Spanish"},
		typedCards(typedNote("n1", "hello", "hola")), nil, models.DefaultSettings(), time.Now())
	if err != nil {
		t.Fatalf("Failed to build session: %v", err)
	}

	session.Submit("ola")
	segments := session.Comparison()
	if len(segments) != 2 {
		t.Fatalf("Expected 2 segments, got %d: %v", len(segments), segments)
	}
	if segments[0].Op != diff.Missing || segments[0].Text != "h" {
		t.Errorf("Expected leading missing 'h', got %+v", segments[0])
	}
	if segments[1].Op != diff.Equal || segments[1].Text != "ola" {
		t.Errorf("Expected equal 'ola', got %+v", segments[1])
	}

	session.Submit("")
	segments = session.Comparison()
	if len(segments) != 1 || segments[0].Op != diff.Missing || segments[0].Text != "hola" {
		t.Errorf("Empty input should mark the whole answer missing, got %+v", segments)
	}
}

func TestSessionRatePersistsAndAdvances(t *testing.T) {
	cleanup := setupStudyProject(t)
	defer cleanup()

	now := time.Now()
	session, err := buildSession(&models.Deck{Name: "Spanish"},
		typedCards(typedNote("n1", "uno", "one"), typedNote("n2", "dos", "two")),
		nil, models.DefaultSettings(), now)
	if err != nil {
		t.Fatalf("Failed to build session: %v", err)
	}

	firstID := session.Current().Item.Card.ID()
	if err := session.Rate(scheduler.Good, now); err != nil {
		t.Fatalf("Failed to rate card: %v", err)
	}

	review, err := files.ReadReview(firstID)
	if err != nil {
		t.Fatalf("Rating did not persist a review for %s: %v", firstID, err)
	}
	if !review.Due.After(now) {
		t.Errorf("Persisted due time %v not after the rating time", review.Due)
	}

	if pos, total := session.Position(); pos != 2 || total != 2 {
		t.Errorf("Expected position 2 of 2, got %d of %d", pos, total)
	}
	if session.Answered() != 1 {
		t.Errorf("Expected 1 answer, got %d", session.Answered())
	}
	if session.Count(scheduler.Good) != 1 {
		t.Errorf("Expected 1 good rating, got %d", session.Count(scheduler.Good))
	}

	if err := session.Rate(scheduler.Good, now); err != nil {
		t.Fatalf("Failed to rate second card: %v", err)
	}
	if !session.Finished() {
		t.Error("Session not finished after rating every card")
	}
	if err := session.Rate(scheduler.Good, now); err == nil {
		t.Error("Expected an error when rating past the end of the queue")
	}
}

func TestSessionAgainRequeues(t *testing.T) {
	cleanup := setupStudyProject(t)
	defer cleanup()

	now := time.Now()
	session, err := buildSession(&models.Deck{Name: "Spanish"},
		typedCards(typedNote("n1", "hello", "hola")), nil, models.DefaultSettings(), now)
	if err != nil {
		t.Fatalf("Failed to build session: %v", err)
	}

	session.Submit("ola")
	if err := session.Rate(scheduler.Again, now); err != nil {
		t.Fatalf("Failed to rate card: %v", err)
	}

	if session.Finished() {
		t.Fatal("Card rated again should come back this session")
	}
	if session.Total() != 2 {
		t.Errorf("Expected queue to grow to 2, got %d", session.Total())
	}

	c := session.Current()
	if c.Item.Card.ID() != "n1#0" {
		t.Errorf("Expected the same card back, got %s", c.Item.Card.ID())
	}
	if c.Item.New {
		t.Error("Requeued card still marked new")
	}
	if got := c.Type.Input(); got != "" {
		t.Errorf("Requeued card should start with empty input, got %q", got)
	}
}

func TestNewStudySessionLoadsProject(t *testing.T) {
	cleanup := setupStudyProject(t)
	defer cleanup()
	createStudyFixtures(t)

	session, err := NewStudySession("Spanish", time.Now())
	if err != nil {
		t.Fatalf("Failed to start session: %v", err)
	}

	// Two typed notes plus one cloze note with two deletions
	if session.Total() != 4 {
		t.Errorf("Expected 4 cards, got %d", session.Total())
	}
	for i, c := range session.cards {
		if !c.Expecting() {
			t.Errorf("Card %d should expect a typed answer", i)
		}
	}
}

func TestNewStudySessionUnknownDeck(t *testing.T) {
	cleanup := setupStudyProject(t)
	defer cleanup()
	createStudyFixtures(t)

	_, err := NewStudySession("Nowhere", time.Now())
	if err == nil {
		t.Fatal("Expected an error for an unknown deck")
	}
	if !strings.Contains(err.Error(), "deck 'Nowhere' not found") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestSessionPromptLocale(t *testing.T) {
	settings := models.DefaultSettings()
	settings.UI.Locale = "de"

	session, err := buildSession(&models.Deck{Name: "Spanisch"}, nil, nil, settings, time.Now())
	if err != nil {
		t.Fatalf("Failed to build session: %v", err)
	}
	if got := session.Prompt(); got != "Antwort eingeben" {
		t.Errorf("Expected German prompt, got %q", got)
	}

	session, err = buildSession(&models.Deck{Name: "Spanish"}, nil, nil, models.DefaultSettings(), time.Now())
	if err != nil {
		t.Fatalf("Failed to build session: %v", err)
	}
	if got := session.Prompt(); got != "Type the answer" {
		t.Errorf("Expected English prompt, got %q", got)
	}
}

func TestSessionWarningCard(t *testing.T) {
	nt := &models.NoteType{
		Name: "Broken",
		Fields: []models.FieldDef{
			{Name: "Front"},
			{Name: "Back"},
		},
		Templates: []models.Template{
			{Name: "Card 1", Question: "{{Front}}\n\n{{type:Bogus}}", Answer: "{{Back}}"},
		},
	}
	note := &models.Note{
		ID:     "n1",
		Type:   "Broken",
		Deck:   "Spanish",
		Fields: map[string]string{"Front": "hello", "Back": "hola"},
	}

	session, err := buildSession(&models.Deck{Name: "Spanish"},
		models.Cards(note, nt), nil, models.DefaultSettings(), time.Now())
	if err != nil {
		t.Fatalf("Failed to build session: %v", err)
	}

	c := session.Current()
	if c.Expecting() {
		t.Error("Card with an unknown field should not expect an answer")
	}
	warning, ok := c.Type.Warning()
	if !ok {
		t.Fatal("Expected a warning on the card")
	}
	if !strings.Contains(warning, "Bogus") {
		t.Errorf("Warning should name the field: %q", warning)
	}
}

func TestSessionClozeCards(t *testing.T) {
	nt := clozeNoteType()
	note := &models.Note{
		ID:   "n-days",
		Type: nt.Name,
		Deck: "Spanish",
		Fields: map[string]string{
			"Text":       "La semana empieza el {{c1::lunes}} y termina el {{c2::viernes}}.",
			"Back Extra": "weekdays",
		},
	}

	session, err := buildSession(&models.Deck{Name: "Spanish"},
		models.Cards(note, nt), nil, models.DefaultSettings(), time.Now())
	if err != nil {
		t.Fatalf("Failed to build session: %v", err)
	}

	if session.Total() != 2 {
		t.Fatalf("Expected one card per deletion, got %d", session.Total())
	}

	first := session.Current()
	if correct, _ := first.Type.Correct(); correct != "lunes" {
		t.Errorf("First deletion should expect 'lunes', got %q", correct)
	}
	if !session.Submit("lunes") {
		t.Error("Correct cloze answer not matched")
	}

	if correct, _ := session.cards[1].Type.Correct(); correct != "viernes" {
		t.Errorf("Second deletion should expect 'viernes', got %q", correct)
	}
}
