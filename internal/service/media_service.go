package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/comexweb/internal/db"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp"
	"gorm.io/gorm"
)

// DefaultMaxUploadBytes caps a single media upload.
const DefaultMaxUploadBytes int64 = 15 * 1024 * 1024

var allowedMedia = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// MediaService stores uploaded images on the local filesystem.
type MediaService struct {
	db        *gorm.DB
	dir       string
	urlPrefix string
	maxBytes  int64
	now       func() time.Time
}

// NewMediaService 构造 MediaService，dir 为磁盘目录，urlPrefix 为对外访问前缀。
func NewMediaService(gdb *gorm.DB, dir, urlPrefix string, maxBytes int64) *MediaService {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	return &MediaService{
		db:        gdb,
		dir:       dir,
		urlPrefix: strings.TrimRight(urlPrefix, "/"),
		maxBytes:  maxBytes,
		now:       time.Now,
	}
}

// MaxBytes is the largest accepted upload.
func (s *MediaService) MaxBytes() int64 {
	return s.maxBytes
}

// Save validates an image by its content, writes it under a unique name and
// records it. The declared file name is not trusted for the type.
func (s *MediaService) Save(ctx context.Context, r io.Reader, alt string) (*db.MediaFile, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return nil, invalid("file", fmt.Sprintf("El archivo es demasiado grande. El tamaño máximo es de %dMB.", s.maxBytes/(1024*1024)))
	}
	if len(data) == 0 {
		return nil, invalid("file", "el archivo está vacío")
	}

	mime := http.DetectContentType(data)
	ext, ok := allowedMedia[mime]
	if !ok {
		return nil, invalid("file", "Tipo de archivo no permitido. Usa JPEG, PNG, WEBP o GIF.")
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, invalid("file", "la imagen no se pudo leer")
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	name := fmt.Sprintf("%s-%s%s", s.now().Format("20060102"), uuid.NewString(), ext)
	full := filepath.Join(s.dir, name)
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return nil, fmt.Errorf("write upload: %w", err)
	}

	media := db.MediaFile{
		URL:    s.urlPrefix + "/" + name,
		Alt:    strings.TrimSpace(alt),
		Size:   int64(len(data)),
		MIME:   mime,
		Width:  cfg.Width,
		Height: cfg.Height,
	}
	if err := s.db.WithContext(ctx).Create(&media).Error; err != nil {
		_ = os.Remove(full)
		return nil, fmt.Errorf("record upload: %w", err)
	}
	return &media, nil
}

// List returns uploaded files, newest first.
func (s *MediaService) List(ctx context.Context) ([]db.MediaFile, error) {
	var files []db.MediaFile
	if err := s.db.WithContext(ctx).Order("created_at desc").Order("id desc").Find(&files).Error; err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}
	return files, nil
}

// Delete removes the record and its file.
func (s *MediaService) Delete(ctx context.Context, id uint) error {
	var media db.MediaFile
	if err := s.db.WithContext(ctx).First(&media, id).Error; err != nil {
		return notFound(err, ErrMediaNotFound)
	}
	if err := s.db.WithContext(ctx).Delete(&media).Error; err != nil {
		return fmt.Errorf("delete media: %w", err)
	}

	full := filepath.Join(s.dir, path.Base(media.URL))
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove media file: %w", err)
	}
	return nil
}
