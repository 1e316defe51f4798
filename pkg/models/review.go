package models

import "time"

// Review is the persisted scheduling state of one card. The numeric
// fields mirror the FSRS card state so the scheduler can round-trip it.
type Review struct {
	CardID        string    `yaml:"card_id"`
	Due           time.Time `yaml:"due"`
	Stability     float64   `yaml:"stability"`
	Difficulty    float64   `yaml:"difficulty"`
	ElapsedDays   uint64    `yaml:"elapsed_days"`
	ScheduledDays uint64    `yaml:"scheduled_days"`
	Reps          uint64    `yaml:"reps"`
	Lapses        uint64    `yaml:"lapses"`
	State         int8      `yaml:"state"`
	LastReview    time.Time `yaml:"last_review,omitempty"`
}
