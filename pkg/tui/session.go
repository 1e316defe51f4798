package tui

import (
	"fmt"
	"time"

	"github.com/ruoyu-qian/typedeck/pkg/diff"
	"github.com/ruoyu-qian/typedeck/pkg/files"
	"github.com/ruoyu-qian/typedeck/pkg/i18n"
	"github.com/ruoyu-qian/typedeck/pkg/models"
	"github.com/ruoyu-qian/typedeck/pkg/render"
	"github.com/ruoyu-qian/typedeck/pkg/scheduler"
	"github.com/ruoyu-qian/typedeck/pkg/typeans"
)

// SessionCard is one queue entry prepared for display: the rendered
// card sides plus the resolved typed-answer state.
type SessionCard struct {
	Item     scheduler.Item
	Question string // rendered question markup
	Answer   string // rendered answer markup
	Type     *typeans.State
}

// Expecting reports whether this card wants a typed answer.
func (c *SessionCard) Expecting() bool {
	return c.Type.Expecting()
}

// StudySession walks one deck's queue: due cards ordered by due time,
// then new cards up to the daily cap. It owns answer checking and
// rating; the study model on top of it only translates key presses.
type StudySession struct {
	Deck     string
	Settings *models.Settings

	cards    []*SessionCard
	pos      int
	answered int
	counts   map[scheduler.Rating]int

	sched    *scheduler.Scheduler
	engine   *diff.Engine
	resolver *typeans.Resolver
	msgs     *i18n.Catalog
}

// NewStudySession loads the project and builds the queue for one deck.
func NewStudySession(deck string, now time.Time) (*StudySession, error) {
	store, err := files.LoadStore()
	if err != nil {
		return nil, err
	}
	d, ok := store.Deck(deck)
	if !ok {
		return nil, fmt.Errorf("deck '%s' not found", deck)
	}
	cards, err := store.DeckCards(deck)
	if err != nil {
		return nil, err
	}
	reviews, err := files.ListReviews()
	if err != nil {
		return nil, err
	}
	settings, err := files.ReadSettings()
	if err != nil {
		return nil, err
	}
	return buildSession(d, cards, reviews, settings, now)
}

// buildSession assembles a session from already loaded content. The
// new-card cap comes from the deck when set, otherwise from the study
// settings.
func buildSession(deck *models.Deck, cards []*models.Card, reviews []*models.Review, settings *models.Settings, now time.Time) (*StudySession, error) {
	maxNew := settings.Study.MaxNewPerDay
	if deck.NewPerDay > 0 {
		maxNew = deck.NewPerDay
	}

	msgs := i18n.ForLocale(settings.UI.Locale)
	s := &StudySession{
		Deck:     deck.Name,
		Settings: settings,
		counts:   make(map[scheduler.Rating]int),
		sched:    scheduler.New(),
		engine:   diff.New(),
		resolver: typeans.NewResolver(msgs),
		msgs:     msgs,
	}

	for _, item := range scheduler.BuildQueue(cards, reviews, maxNew, now) {
		card, err := s.prepare(item)
		if err != nil {
			return nil, err
		}
		s.cards = append(s.cards, card)
	}
	return s, nil
}

// prepare renders an item's card sides and resolves its typed-answer
// state. Requeued cards pass through here again so their input starts
// empty.
func (s *StudySession) prepare(item scheduler.Item) (*SessionCard, error) {
	question, answer, err := render.Card(item.Card)
	if err != nil {
		return nil, err
	}
	return &SessionCard{
		Item:     item,
		Question: question,
		Answer:   answer,
		Type:     s.resolver.Resolve(question, item.Card.Ord, item.Card.Note, item.Card.Type.Fields),
	}, nil
}

// Current returns the card being studied, nil once the queue is done.
func (s *StudySession) Current() *SessionCard {
	if s.pos >= len(s.cards) {
		return nil
	}
	return s.cards[s.pos]
}

// Finished reports whether every queued card has been rated.
func (s *StudySession) Finished() bool {
	return s.pos >= len(s.cards)
}

// Total returns the queue length, including cards requeued after a
// failed answer.
func (s *StudySession) Total() int {
	return len(s.cards)
}

// Position returns the 1-based number of the current card and the
// queue length.
func (s *StudySession) Position() (int, int) {
	pos := s.pos + 1
	if pos > len(s.cards) {
		pos = len(s.cards)
	}
	return pos, len(s.cards)
}

// Remaining counts the cards still ahead, split into due and new.
func (s *StudySession) Remaining() (due, fresh int) {
	for _, c := range s.cards[s.pos:] {
		if c.Item.New {
			fresh++
		} else {
			due++
		}
	}
	return due, fresh
}

// Answered returns how many ratings were given this session, counting
// repeats of cards that came back.
func (s *StudySession) Answered() int {
	return s.answered
}

// Count returns how often the given rating was chosen this session.
func (s *StudySession) Count(rating scheduler.Rating) int {
	return s.counts[rating]
}

// Prompt returns the localized label for the typed-answer input.
func (s *StudySession) Prompt() string {
	return s.msgs.TypePrompt()
}

// Submit records the typed answer on the current card, cleaned the same
// way the one-shot check cleans it, and reports whether it matched the
// expected answer exactly.
func (s *StudySession) Submit(raw string) bool {
	c := s.Current()
	if c == nil || !c.Type.Expecting() {
		return false
	}
	c.Type.SetInput(typeans.CleanAnswer(raw))
	correct, _ := c.Type.Correct()
	return c.Type.Input() == correct
}

// Comparison returns the styled runs for the revealed answer of the
// current card. Cards that expect no typed answer have none.
func (s *StudySession) Comparison() []diff.Segment {
	c := s.Current()
	if c == nil {
		return nil
	}
	correct, ok := c.Type.Correct()
	if !ok {
		return nil
	}
	return s.engine.Compare(correct, c.Type.Input())
}

// Intervals previews the due time each rating would give the current
// card, for the rating bar.
func (s *StudySession) Intervals(now time.Time) map[scheduler.Rating]time.Time {
	c := s.Current()
	if c == nil {
		return nil
	}
	return s.sched.Preview(c.Item.Review, now)
}

// Rate applies the rating to the current card, persists the new state
// and advances the queue. Cards rated Again come back at the end of
// this session with a clean input state.
func (s *StudySession) Rate(rating scheduler.Rating, now time.Time) error {
	c := s.Current()
	if c == nil {
		return fmt.Errorf("no card left to rate")
	}
	next := s.sched.Rate(c.Item.Review, rating, now)
	if err := files.WriteReview(next); err != nil {
		return err
	}
	s.answered++
	s.counts[rating]++
	s.pos++

	if rating == scheduler.Again {
		again, err := s.prepare(scheduler.Item{Card: c.Item.Card, Review: next})
		if err != nil {
			return err
		}
		s.cards = append(s.cards, again)
	}
	return nil
}
