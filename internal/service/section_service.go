package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/comexweb/internal/db"
	"github.com/comexweb/internal/section"
	"gorm.io/gorm"
)

// SectionService manages the typed content blocks of a page.
type SectionService struct {
	db *gorm.DB
}

// NewSectionService returns a SectionService.
func NewSectionService(gdb *gorm.DB) *SectionService {
	return &SectionService{db: gdb}
}

// SectionInput creates a section. Order defaults to after the last section
// of the page; Visible defaults to true.
type SectionInput struct {
	PageID  uint        `json:"pageId" validate:"required"`
	Type    string      `json:"type" validate:"required"`
	Content db.JSONText `json:"content"`
	Order   *int        `json:"order"`
	Visible *bool       `json:"visible"`
}

// SectionUpdate changes a section; nil fields are kept.
type SectionUpdate struct {
	Type    *string      `json:"type"`
	Content *db.JSONText `json:"content"`
	Order   *int         `json:"order"`
	Visible *bool        `json:"visible"`
}

// DuplicateGroup lists sections of one page sharing a type and order.
type DuplicateGroup struct {
	PageID     uint
	PageSlug   string
	Type       string
	Order      int
	SectionIDs []uint
}

// Get fetches a section by id.
func (s *SectionService) Get(ctx context.Context, id uint) (*db.Section, error) {
	var sec db.Section
	if err := s.db.WithContext(ctx).First(&sec, id).Error; err != nil {
		return nil, notFound(err, ErrSectionNotFound)
	}
	return &sec, nil
}

// ListByPage returns a page's sections in render order.
func (s *SectionService) ListByPage(ctx context.Context, pageID uint) ([]db.Section, error) {
	var sections []db.Section
	if err := s.db.WithContext(ctx).
		Where("page_id = ?", pageID).
		Order("sort_order asc").
		Order("id asc").
		Find(&sections).Error; err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	return sections, nil
}

// Create adds a section to an existing page.
func (s *SectionService) Create(ctx context.Context, in SectionInput) (*db.Section, error) {
	in.Type = strings.ToUpper(strings.TrimSpace(in.Type))
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if err := checkSectionPayload(in.Type, in.Content); err != nil {
		return nil, err
	}

	var created db.Section
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var page db.Page
		if err := tx.Select("id").First(&page, in.PageID).Error; err != nil {
			return notFound(err, ErrPageNotFound)
		}

		order := 0
		if in.Order != nil {
			order = *in.Order
		} else {
			next, err := nextSectionOrder(tx, in.PageID)
			if err != nil {
				return err
			}
			order = next
		}

		created = db.Section{
			PageID:  in.PageID,
			Type:    in.Type,
			Content: in.Content,
			Order:   order,
			Visible: in.Visible == nil || *in.Visible,
		}
		if created.Content == "" {
			created.Content = "{}"
		}
		if err := tx.Create(&created).Error; err != nil {
			return fmt.Errorf("create section: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Update modifies a section in place.
func (s *SectionService) Update(ctx context.Context, id uint, in SectionUpdate) (*db.Section, error) {
	sec, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	typ := sec.Type
	if in.Type != nil {
		typ = strings.ToUpper(strings.TrimSpace(*in.Type))
		updates["type"] = typ
	}
	content := sec.Content
	if in.Content != nil {
		content = *in.Content
		updates["content"] = string(content)
	}
	if err := checkSectionPayload(typ, content); err != nil {
		return nil, err
	}
	if in.Order != nil {
		updates["sort_order"] = *in.Order
	}
	if in.Visible != nil {
		updates["visible"] = *in.Visible
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(sec).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("update section: %w", err)
		}
	}
	return s.Get(ctx, id)
}

// Delete removes a section.
func (s *SectionService) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&db.Section{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete section: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrSectionNotFound
	}
	return nil
}

// Reorder assigns orders 0..n-1 following ids, which must name every section
// of the page exactly once.
func (s *SectionService) Reorder(ctx context.Context, pageID uint, ids []uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var page db.Page
		if err := tx.Select("id").First(&page, pageID).Error; err != nil {
			return notFound(err, ErrPageNotFound)
		}

		var existing []uint
		if err := tx.Model(&db.Section{}).Where("page_id = ?", pageID).Pluck("id", &existing).Error; err != nil {
			return fmt.Errorf("load sections: %w", err)
		}
		if len(existing) != len(ids) {
			return ErrSectionOrder
		}

		belongs := make(map[uint]bool, len(existing))
		for _, id := range existing {
			belongs[id] = true
		}
		seen := make(map[uint]bool, len(ids))
		for _, id := range ids {
			if !belongs[id] || seen[id] {
				return ErrSectionOrder
			}
			seen[id] = true
		}

		for idx, id := range ids {
			if err := tx.Model(&db.Section{}).Where("id = ?", id).Update("sort_order", idx).Error; err != nil {
				return fmt.Errorf("reorder section %d: %w", id, err)
			}
		}
		return nil
	})
}

// Duplicates reports sections sharing (type, order) within a page. pageID 0
// scans every page.
func (s *SectionService) Duplicates(ctx context.Context, pageID uint) ([]DuplicateGroup, error) {
	var rows []struct {
		ID     uint
		PageID uint
		Slug   string
		Type   string
		Order  int `gorm:"column:sort_order"`
	}
	query := s.db.WithContext(ctx).
		Table("sections").
		Select("sections.id, sections.page_id, pages.slug, sections.type, sections.sort_order").
		Joins("JOIN pages ON pages.id = sections.page_id").
		Order("sections.page_id asc").
		Order("sections.type asc").
		Order("sections.sort_order asc").
		Order("sections.id asc")
	if pageID != 0 {
		query = query.Where("sections.page_id = ?", pageID)
	}
	if err := query.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("scan sections: %w", err)
	}

	var groups []DuplicateGroup
	for i := 0; i < len(rows); {
		j := i + 1
		for j < len(rows) && rows[j].PageID == rows[i].PageID && rows[j].Type == rows[i].Type && rows[j].Order == rows[i].Order {
			j++
		}
		if j-i > 1 {
			group := DuplicateGroup{PageID: rows[i].PageID, PageSlug: rows[i].Slug, Type: rows[i].Type, Order: rows[i].Order}
			for _, row := range rows[i:j] {
				group.SectionIDs = append(group.SectionIDs, row.ID)
			}
			groups = append(groups, group)
		}
		i = j
	}
	return groups, nil
}

// RemoveDuplicates keeps the oldest section of every duplicate group and
// deletes the rest, returning how many were removed.
func (s *SectionService) RemoveDuplicates(ctx context.Context, pageID uint) (int, error) {
	groups, err := s.Duplicates(ctx, pageID)
	if err != nil {
		return 0, err
	}
	var doomed []uint
	for _, g := range groups {
		doomed = append(doomed, g.SectionIDs[1:]...)
	}
	if len(doomed) == 0 {
		return 0, nil
	}
	if err := s.db.WithContext(ctx).Delete(&db.Section{}, doomed).Error; err != nil {
		return 0, fmt.Errorf("remove duplicate sections: %w", err)
	}
	return len(doomed), nil
}

func checkSectionPayload(typ string, content db.JSONText) error {
	if !section.Type(typ).Valid() {
		return invalid("type", fmt.Sprintf("tipo de sección desconocido: %s", typ))
	}
	if !section.ValidateContent(string(content)) {
		return invalid("content", "el contenido debe ser un objeto JSON")
	}
	return nil
}

func nextSectionOrder(tx *gorm.DB, pageID uint) (int, error) {
	var maxOrder int
	if err := tx.Model(&db.Section{}).
		Where("page_id = ?", pageID).
		Select("COALESCE(MAX(sort_order), -1)").
		Scan(&maxOrder).Error; err != nil {
		return 0, fmt.Errorf("next section order: %w", err)
	}
	return maxOrder + 1, nil
}
