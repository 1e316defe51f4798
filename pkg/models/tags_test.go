package models

import (
	"testing"
)

func TestNormalizeTagName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercase", "Verbs", "verbs"},
		{"trim spaces", "  verbs  ", "verbs"},
		{"replace spaces", "irregular verbs", "irregular-verbs"},
		{"remove invalid chars", "verbs@2!", "verbs2"},
		{"keep hyphens", "irregular-verbs", "irregular-verbs"},
		{"keep nesting", "language::spanish", "language::spanish"},
		{"mixed case nested", "Language::Spanish Verbs", "language::spanish-verbs"},
		{"numbers allowed", "chapter-2", "chapter-2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NormalizeTagName(tt.input)
			if result != tt.expected {
				t.Errorf("NormalizeTagName(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestValidateTagName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		errType error
	}{
		{"valid simple", "verbs", false, nil},
		{"valid with hyphen", "irregular-verbs", false, nil},
		{"valid nested", "language::spanish", false, nil},
		{"valid with numbers", "chapter-2", false, nil},
		{"empty string", "", true, ErrEmptyTagName},
		{"too long", "this-is-a-very-long-tag-name-that-exceeds-fifty-characters-limit", true, ErrTagNameTooLong},
		{"valid with spaces", "irregular verbs", false, nil}, // spaces are allowed, will be normalized
		{"invalid chars", "verbs@home", true, ErrInvalidTagCharacter},
		{"special chars", "verbs#2!", true, ErrInvalidTagCharacter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTagName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTagName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr && err != tt.errType {
				t.Errorf("ValidateTagName(%q) error = %v, want %v", tt.input, err, tt.errType)
			}
		})
	}
}

func TestGetTagColor(t *testing.T) {
	if got := GetTagColor("verbs", "#custom"); got != "#custom" {
		t.Errorf("GetTagColor with registry color = %q, want %q", got, "#custom")
	}

	color := GetTagColor("verbs", "")
	found := false
	for _, c := range DefaultColorPalette {
		if c == color {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("GetTagColor(%q, \"\") = %q, not in default palette", "verbs", color)
	}

	// Same tag must always get the same color
	if again := GetTagColor("verbs", ""); again != color {
		t.Errorf("GetTagColor not consistent: %q != %q", color, again)
	}
}

func TestNestedTags(t *testing.T) {
	tests := []struct {
		tagName string
		nested  bool
		parent  string
		leaf    string
	}{
		{"verbs", false, "", "verbs"},
		{"language::spanish", true, "language", "spanish"},
		{"language::spanish::verbs", true, "language::spanish", "verbs"},
		{"irregular-verbs", false, "", "irregular-verbs"},
	}

	for _, tt := range tests {
		t.Run(tt.tagName, func(t *testing.T) {
			if got := IsNestedTag(tt.tagName); got != tt.nested {
				t.Errorf("IsNestedTag(%q) = %v, want %v", tt.tagName, got, tt.nested)
			}
			if got := TagParent(tt.tagName); got != tt.parent {
				t.Errorf("TagParent(%q) = %q, want %q", tt.tagName, got, tt.parent)
			}
			if got := TagLeaf(tt.tagName); got != tt.leaf {
				t.Errorf("TagLeaf(%q) = %q, want %q", tt.tagName, got, tt.leaf)
			}
		})
	}
}
