package service

import (
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/comexweb/internal/db"
	"github.com/comexweb/internal/markup"
	"gorm.io/gorm"
)

const (
	defaultPostLimit = 10
	maxPostLimit     = 100
)

// PostService wraps news post database operations.
type PostService struct {
	db  *gorm.DB
	now func() time.Time
}

// PostListResult is one page of published posts and the overall count.
type PostListResult struct {
	Posts []db.Post `json:"posts"`
	Total int64     `json:"total"`
}

// PostInput represents fields accepted when creating or updating a post.
type PostInput struct {
	Title         string     `json:"title" validate:"required"`
	Slug          string     `json:"slug"`
	Excerpt       string     `json:"excerpt"`
	Content       string     `json:"content"`
	CoverImageURL string     `json:"coverImageUrl"`
	Status        string     `json:"status"`
	PublishedAt   *time.Time `json:"publishedAt"`
}

// NewPostService creates a PostService instance.
func NewPostService(gdb *gorm.DB) *PostService {
	return &PostService{db: gdb, now: time.Now}
}

func (s *PostService) publicScope(tx *gorm.DB) *gorm.DB {
	return tx.Where("status = ? AND published_at IS NOT NULL AND published_at <= ?", db.PostStatusPublished, s.now().UTC())
}

// ListPublished returns published posts, newest first.
func (s *PostService) ListPublished(ctx context.Context, limit, offset int) (PostListResult, error) {
	var result PostListResult
	gdb := s.db.WithContext(ctx)

	if err := gdb.Model(&db.Post{}).Scopes(s.publicScope).Count(&result.Total).Error; err != nil {
		return result, fmt.Errorf("count posts: %w", err)
	}
	if err := gdb.Scopes(s.publicScope).
		Order("published_at desc").
		Order("id desc").
		Limit(clampLimit(limit, defaultPostLimit, maxPostLimit)).
		Offset(max(offset, 0)).
		Find(&result.Posts).Error; err != nil {
		return result, fmt.Errorf("list posts: %w", err)
	}
	return result, nil
}

// GetPublishedBySlug returns a post only if it is publicly visible.
func (s *PostService) GetPublishedBySlug(ctx context.Context, slug string) (*db.Post, error) {
	var post db.Post
	if err := s.db.WithContext(ctx).
		Scopes(s.publicScope).
		Where("slug = ?", strings.TrimSpace(slug)).
		First(&post).Error; err != nil {
		return nil, notFound(err, ErrPostNotFound)
	}
	return &post, nil
}

// ListAll returns posts for the back office, optionally by status.
func (s *PostService) ListAll(ctx context.Context, status string) ([]db.Post, error) {
	query := s.db.WithContext(ctx).Order("created_at desc").Order("id desc")
	if status = strings.ToUpper(strings.TrimSpace(status)); status != "" {
		query = query.Where("status = ?", status)
	}
	var posts []db.Post
	if err := query.Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// Get fetches a post regardless of status.
func (s *PostService) Get(ctx context.Context, id uint) (*db.Post, error) {
	var post db.Post
	if err := s.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, notFound(err, ErrPostNotFound)
	}
	return &post, nil
}

// Create inserts a post. Publishing without a date stamps the current time.
func (s *PostService) Create(ctx context.Context, in PostInput) (*db.Post, error) {
	status, err := s.checkInput(&in)
	if err != nil {
		return nil, err
	}

	gdb := s.db.WithContext(ctx)
	postSlug, err := newSlug(gdb, &db.Post{}, in.Slug, in.Title)
	if err != nil {
		return nil, err
	}

	post := db.Post{Slug: postSlug}
	s.apply(&post, in, status)
	if err := gdb.Create(&post).Error; err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return &post, nil
}

// Update replaces a post's editable fields. PublishedAt is kept once set
// unless a new date is given.
func (s *PostService) Update(ctx context.Context, id uint, in PostInput) (*db.Post, error) {
	status, err := s.checkInput(&in)
	if err != nil {
		return nil, err
	}

	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	gdb := s.db.WithContext(ctx)
	if in.Slug != "" && !strings.EqualFold(in.Slug, post.Slug) {
		claimed, err := claimSlug(gdb, &db.Post{}, in.Slug, id)
		if err != nil {
			return nil, err
		}
		post.Slug = claimed
	}

	s.apply(post, in, status)
	if err := gdb.Save(post).Error; err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return post, nil
}

// Delete removes a post.
func (s *PostService) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&db.Post{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete post: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrPostNotFound
	}
	return nil
}

// RenderContent converts the post's markdown body to sanitized HTML.
func (s *PostService) RenderContent(post *db.Post) (template.HTML, error) {
	if post == nil {
		return "", nil
	}
	return markup.Markdown(post.Content)
}

func (s *PostService) checkInput(in *PostInput) (string, error) {
	trimAll(&in.Title, &in.Slug, &in.Excerpt, &in.CoverImageURL)
	if err := validateStruct(*in); err != nil {
		return "", err
	}
	status := strings.ToUpper(strings.TrimSpace(in.Status))
	switch status {
	case "":
		status = db.PostStatusDraft
	case db.PostStatusDraft, db.PostStatusPublished:
	default:
		return "", invalid("status", "status debe ser DRAFT o PUBLISHED")
	}
	return status, nil
}

func (s *PostService) apply(post *db.Post, in PostInput, status string) {
	post.Title = in.Title
	post.Excerpt = in.Excerpt
	post.Content = in.Content
	post.CoverImageURL = in.CoverImageURL
	post.Status = status
	if in.PublishedAt != nil {
		at := in.PublishedAt.UTC()
		post.PublishedAt = &at
	}
	if status == db.PostStatusPublished && post.PublishedAt == nil {
		at := s.now().UTC()
		post.PublishedAt = &at
	}
}
