// Package scheduler decides when cards come back. Scheduling state lives
// in models.Review values; the FSRS algorithm supplies the intervals.
package scheduler

import (
	"sort"
	"time"

	fsrs "github.com/open-spaced-repetition/go-fsrs"

	"github.com/ruoyu-qian/typedeck/pkg/models"
)

// Re-exported so callers rate cards without importing the algorithm
// package.
const (
	Again = fsrs.Again
	Hard  = fsrs.Hard
	Good  = fsrs.Good
	Easy  = fsrs.Easy
)

// Rating is a study answer grade, Again through Easy.
type Rating = fsrs.Rating

// Scheduler computes review intervals.
type Scheduler struct {
	params fsrs.Parameters
}

// New returns a Scheduler with the default FSRS parameters.
func New() *Scheduler {
	return &Scheduler{params: fsrs.DefaultParam()}
}

// NewState returns the review state for a card that has never been
// studied.
func NewState(cardID string) *models.Review {
	return fromCard(cardID, fsrs.NewCard())
}

// Rate applies a rating at the given time and returns the updated state.
// The input review is not modified.
func (s *Scheduler) Rate(review *models.Review, rating Rating, now time.Time) *models.Review {
	info := s.params.Repeat(toCard(review), now)[rating]
	return fromCard(review.CardID, info.Card)
}

// Preview returns the due time each rating would produce, so the UI can
// show what a choice means before it is made.
func (s *Scheduler) Preview(review *models.Review, now time.Time) map[Rating]time.Time {
	out := make(map[Rating]time.Time, 4)
	for rating, info := range s.params.Repeat(toCard(review), now) {
		out[rating] = info.Card.Due
	}
	return out
}

// IsDue reports whether a previously studied card is ready for review.
func IsDue(review *models.Review, now time.Time) bool {
	return !review.Due.After(now)
}

// Item is one queue entry: the card plus its scheduling state. New is
// set for cards entering study for the first time; their Review holds
// the initial state.
type Item struct {
	Card   *models.Card
	Review *models.Review
	New    bool
}

// BuildQueue assembles a study session: every due card ordered by due
// time, followed by unseen cards capped at maxNew. A negative maxNew
// lifts the cap.
func BuildQueue(cards []*models.Card, reviews []*models.Review, maxNew int, now time.Time) []Item {
	byID := make(map[string]*models.Review, len(reviews))
	for _, r := range reviews {
		byID[r.CardID] = r
	}

	var due, fresh []Item
	for _, c := range cards {
		r, ok := byID[c.ID()]
		if !ok {
			fresh = append(fresh, Item{Card: c, Review: NewState(c.ID()), New: true})
			continue
		}
		if IsDue(r, now) {
			due = append(due, Item{Card: c, Review: r})
		}
	}

	sort.Slice(due, func(i, j int) bool {
		return due[i].Review.Due.Before(due[j].Review.Due)
	})
	if maxNew >= 0 && len(fresh) > maxNew {
		fresh = fresh[:maxNew]
	}
	return append(due, fresh...)
}

func toCard(r *models.Review) fsrs.Card {
	return fsrs.Card{
		Due:           r.Due,
		Stability:     r.Stability,
		Difficulty:    r.Difficulty,
		ElapsedDays:   r.ElapsedDays,
		ScheduledDays: r.ScheduledDays,
		Reps:          r.Reps,
		Lapses:        r.Lapses,
		State:         fsrs.State(r.State),
		LastReview:    r.LastReview,
	}
}

func fromCard(cardID string, c fsrs.Card) *models.Review {
	return &models.Review{
		CardID:        cardID,
		Due:           c.Due,
		Stability:     c.Stability,
		Difficulty:    c.Difficulty,
		ElapsedDays:   c.ElapsedDays,
		ScheduledDays: c.ScheduledDays,
		Reps:          c.Reps,
		Lapses:        c.Lapses,
		State:         int8(c.State),
		LastReview:    c.LastReview,
	}
}
