package tags

import (
	"fmt"

	"github.com/ruoyu-qian/typedeck/pkg/files"
	"github.com/ruoyu-qian/typedeck/pkg/models"
)

// UsageStats represents usage statistics for a tag
type UsageStats struct {
	NoteCount     int
	ArchivedCount int
	TotalCount    int
}

// CountTagUsage counts how many notes carry a tag, active and archived
func CountTagUsage(tagName string) (*UsageStats, error) {
	stats := &UsageStats{}
	normalized := models.NormalizeTagName(tagName)

	noteFiles, err := files.ListNotes()
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	for _, noteFile := range noteFiles {
		note, err := files.ReadNote(noteFile)
		if err != nil {
			continue
		}

		for _, tag := range note.Tags {
			if models.NormalizeTagName(tag) == normalized {
				stats.NoteCount++
				stats.TotalCount++
				break
			}
		}
	}

	archived, err := files.ListArchivedNotes()
	if err == nil {
		for _, noteFile := range archived {
			note, err := files.ReadArchivedNote(noteFile)
			if err != nil {
				continue
			}

			for _, tag := range note.Tags {
				if models.NormalizeTagName(tag) == normalized {
					stats.ArchivedCount++
					stats.TotalCount++
					break
				}
			}
		}
	}

	return stats, nil
}

// GetAllTagUsage returns usage statistics for all tags in the registry,
// plus any tag found on a note that the registry doesn't know yet
func GetAllTagUsage() (map[string]*UsageStats, error) {
	usage := make(map[string]*UsageStats)

	registry, err := NewRegistry()
	if err != nil {
		return usage, err
	}

	for _, tag := range registry.ListTags() {
		usage[tag.Name] = &UsageStats{}
	}

	noteFiles, err := files.ListNotes()
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	for _, noteFile := range noteFiles {
		note, err := files.ReadNote(noteFile)
		if err != nil {
			continue
		}

		for _, tag := range note.Tags {
			normalized := models.NormalizeTagName(tag)
			if stats, exists := usage[normalized]; exists {
				stats.NoteCount++
				stats.TotalCount++
			} else {
				// Tag not in registry but still in use
				usage[normalized] = &UsageStats{
					NoteCount:  1,
					TotalCount: 1,
				}
			}
		}
	}

	archived, err := files.ListArchivedNotes()
	if err == nil {
		for _, noteFile := range archived {
			note, err := files.ReadArchivedNote(noteFile)
			if err != nil {
				continue
			}

			for _, tag := range note.Tags {
				normalized := models.NormalizeTagName(tag)
				if stats, exists := usage[normalized]; exists {
					stats.ArchivedCount++
					stats.TotalCount++
				} else {
					usage[normalized] = &UsageStats{
						ArchivedCount: 1,
						TotalCount:    1,
					}
				}
			}
		}
	}

	return usage, nil
}

// SyncFromNotes registers every tag that appears on an active note,
// keeping the registry complete after edits made outside the tag editor.
// Returns the names that were added.
func SyncFromNotes() ([]string, error) {
	registry, err := NewRegistry()
	if err != nil {
		return nil, err
	}

	known := make(map[string]bool)
	for _, tag := range registry.ListTags() {
		known[models.NormalizeTagName(tag.Name)] = true
	}

	noteFiles, err := files.ListNotes()
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	var added []string
	for _, noteFile := range noteFiles {
		note, err := files.ReadNote(noteFile)
		if err != nil {
			continue
		}

		for _, tag := range note.Tags {
			normalized := models.NormalizeTagName(tag)
			if normalized == "" || known[normalized] {
				continue
			}
			if err := registry.AddTag(models.Tag{
				Name:  normalized,
				Color: models.GetTagColor(normalized, ""),
			}); err != nil {
				continue // Skip names that fail validation
			}
			known[normalized] = true
			added = append(added, normalized)
		}
	}

	if len(added) > 0 {
		if err := registry.Save(); err != nil {
			return added, fmt.Errorf("failed to save tag registry: %w", err)
		}
	}

	return added, nil
}

// CleanupOrphanedTags removes tags from the registry that are no longer
// used by any note. Returns the list of tags that were removed.
func CleanupOrphanedTags(tagsToCheck []string) ([]string, error) {
	registry, err := NewRegistry()
	if err != nil {
		return nil, err
	}

	var removedTags []string

	for _, tagName := range tagsToCheck {
		normalized := models.NormalizeTagName(tagName)

		stats, err := CountTagUsage(normalized)
		if err != nil {
			// If we can't check usage, skip this tag to be safe
			continue
		}

		if stats.TotalCount == 0 {
			if err := registry.RemoveTag(normalized); err == nil {
				removedTags = append(removedTags, normalized)
			}
		}
	}

	if len(removedTags) > 0 {
		if err := registry.Save(); err != nil {
			return removedTags, fmt.Errorf("removed tags but failed to save registry: %w", err)
		}
	}

	return removedTags, nil
}
