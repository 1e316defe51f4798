package files

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ruoyu-qian/typedeck/pkg/models"
	"gopkg.in/yaml.v3"
)

// reviewFileName maps a card ID ("<note-id>#<ord>") to its file under
// the reviews directory.
func reviewFileName(cardID string) string {
	return strings.ReplaceAll(cardID, "#", "-") + ".yaml"
}

// ReadReview loads the scheduling state for one card. A card that has
// never been reviewed has no file; callers detect that with
// errors.Is(err, os.ErrNotExist).
func ReadReview(cardID string) (*models.Review, error) {
	absPath := filepath.Join(TypedeckDir, ReviewsDir, reviewFileName(cardID))

	content, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read review for card %s: %w", cardID, err)
	}

	var review models.Review
	if err := yaml.Unmarshal(content, &review); err != nil {
		return nil, fmt.Errorf("failed to parse review YAML for card %s: %w", cardID, err)
	}

	return &review, nil
}

func WriteReview(review *models.Review) error {
	if review.CardID == "" {
		return fmt.Errorf("review has no card ID")
	}

	absPath := filepath.Join(TypedeckDir, ReviewsDir, reviewFileName(review.CardID))

	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory for review: %w", err)
	}

	content, err := yaml.Marshal(review)
	if err != nil {
		return fmt.Errorf("failed to marshal review to YAML: %w", err)
	}

	if err := os.WriteFile(absPath, content, 0644); err != nil {
		return fmt.Errorf("failed to write review for card %s: %w", review.CardID, err)
	}

	return nil
}

// ListReviews loads every persisted review state.
func ListReviews() ([]*models.Review, error) {
	names, err := listYAML(filepath.Join(TypedeckDir, ReviewsDir), "reviews")
	if err != nil {
		return nil, err
	}

	var reviews []*models.Review
	for _, name := range names {
		content, err := os.ReadFile(filepath.Join(TypedeckDir, ReviewsDir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read review %s: %w", name, err)
		}
		var review models.Review
		if err := yaml.Unmarshal(content, &review); err != nil {
			return nil, fmt.Errorf("failed to parse review YAML %s: %w", name, err)
		}
		reviews = append(reviews, &review)
	}

	return reviews, nil
}

// DeleteReview removes the scheduling state for one card, if any.
func DeleteReview(cardID string) error {
	absPath := filepath.Join(TypedeckDir, ReviewsDir, reviewFileName(cardID))
	if err := os.Remove(absPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete review for card %s: %w", cardID, err)
	}
	return nil
}
