package folders

import (
	"errors"

	"stacks/internal/models"
)

// ErrEmptyName rejects blank folder names before any store call.
var ErrEmptyName = errors.New("folder name cannot be empty")

// ErrDuplicateName rejects a name already used inside the category.
// Uniqueness keeps the legacy name lookup unambiguous.
var ErrDuplicateName = errors.New("folder name already exists in category")

// ValidateName checks a proposed folder name against the existing
// collection. selfID excludes the folder being renamed from the
// duplicate check; pass "" when creating.
func ValidateName(existing []models.Folder, c models.Category, name, selfID string) error {
	if normalizeName(name) == "" {
		return ErrEmptyName
	}

	key := legacyKey(c, name)
	for _, f := range existing {
		if f.ID == selfID {
			continue
		}
		if legacyKey(f.Category, f.Name) == key {
			return ErrDuplicateName
		}
	}

	return nil
}
