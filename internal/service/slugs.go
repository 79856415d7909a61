package service

import (
	"fmt"

	"github.com/comexweb/internal/slug"
	"gorm.io/gorm"
)

// uniqueSlug derives a slug from source and appends -2, -3, ... until no
// other row of model uses it.
func uniqueSlug(gdb *gorm.DB, model any, source string, excludeID uint) (string, error) {
	base := slug.Make(source)
	if base == "" {
		return "", invalid("slug", "no se pudo generar un slug a partir del nombre")
	}
	return slug.Unique(base, func(candidate string) (bool, error) {
		return slugTaken(gdb, model, candidate, excludeID)
	})
}

func slugTaken(gdb *gorm.DB, model any, candidate string, excludeID uint) (bool, error) {
	var count int64
	query := gdb.Model(model).Where("slug = ?", candidate)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("check slug: %w", err)
	}
	return count > 0, nil
}

// newSlug derives a free slug from explicit, or from name when explicit is
// blank.
func newSlug(gdb *gorm.DB, model any, explicit, name string) (string, error) {
	source := explicit
	if source == "" {
		source = name
	}
	return uniqueSlug(gdb, model, source, 0)
}

// claimSlug validates an operator supplied slug for record id. Unlike
// newSlug it never adds a suffix: a collision is a conflict.
func claimSlug(gdb *gorm.DB, model any, explicit string, id uint) (string, error) {
	wanted := slug.Make(explicit)
	if wanted == "" {
		return "", invalid("slug", "slug inválido")
	}
	taken, err := slugTaken(gdb, model, wanted, id)
	if err != nil {
		return "", err
	}
	if taken {
		return "", ErrSlugTaken
	}
	return wanted, nil
}
