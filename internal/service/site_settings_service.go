package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/comexweb/internal/db"
	"github.com/comexweb/internal/section"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultSiteName is shown until an administrator sets one.
const DefaultSiteName = "Customs & Comex Co"

// SiteSettings 描述后台可配置的站点信息。
type SiteSettings struct {
	SiteName       string            `json:"siteName"`
	LogoURL        string            `json:"logoUrl"`
	PrimaryColor   string            `json:"primaryColor"`
	WhatsAppNumber string            `json:"whatsappNumber"`
	Phone          string            `json:"phone"`
	Email          string            `json:"email"`
	Address        string            `json:"address"`
	SocialLinks    map[string]string `json:"socialLinks"`
}

// SiteSettingsInput 用于更新站点设置，nil 字段保持原值。
type SiteSettingsInput struct {
	SiteName       *string           `json:"siteName"`
	LogoURL        *string           `json:"logoUrl"`
	PrimaryColor   *string           `json:"primaryColor" validate:"omitnil,hexcolor"`
	WhatsAppNumber *string           `json:"whatsappNumber"`
	Phone          *string           `json:"phone"`
	Email          *string           `json:"email" validate:"omitnil,email"`
	Address        *string           `json:"address"`
	SocialLinks    map[string]string `json:"socialLinks"`
}

// SiteSettingsService reads and writes the key/value site settings.
type SiteSettingsService struct {
	db *gorm.DB
}

// NewSiteSettingsService 构造 SiteSettingsService。
func NewSiteSettingsService(gdb *gorm.DB) *SiteSettingsService {
	return &SiteSettingsService{db: gdb}
}

var siteSettingKeys = []string{
	db.SettingKeySiteName,
	db.SettingKeyLogoURL,
	db.SettingKeyPrimaryColor,
	db.SettingKeyWhatsAppNumber,
	db.SettingKeyPhone,
	db.SettingKeyEmail,
	db.SettingKeyAddress,
	db.SettingKeySocialLinks,
}

func defaultSiteSettings() SiteSettings {
	return SiteSettings{SiteName: DefaultSiteName, SocialLinks: map[string]string{}}
}

// Get 读取站点设置，如未设置将返回默认值。
func (s *SiteSettingsService) Get(ctx context.Context) (SiteSettings, error) {
	result := defaultSiteSettings()

	var records []db.SystemSetting
	if err := s.db.WithContext(ctx).Where("key IN ?", siteSettingKeys).Find(&records).Error; err != nil {
		return result, fmt.Errorf("load site settings: %w", err)
	}

	for _, record := range records {
		switch record.Key {
		case db.SettingKeySiteName:
			if strings.TrimSpace(record.Value) != "" {
				result.SiteName = record.Value
			}
		case db.SettingKeyLogoURL:
			result.LogoURL = record.Value
		case db.SettingKeyPrimaryColor:
			result.PrimaryColor = record.Value
		case db.SettingKeyWhatsAppNumber:
			result.WhatsAppNumber = record.Value
		case db.SettingKeyPhone:
			result.Phone = record.Value
		case db.SettingKeyEmail:
			result.Email = record.Value
		case db.SettingKeyAddress:
			result.Address = record.Value
		case db.SettingKeySocialLinks:
			links := map[string]string{}
			if err := json.Unmarshal([]byte(record.Value), &links); err == nil {
				result.SocialLinks = links
			}
		}
	}

	return result, nil
}

// Update 保存站点设置，未填写站点名称时回退默认值。
func (s *SiteSettingsService) Update(ctx context.Context, in SiteSettingsInput) (SiteSettings, error) {
	// 空字符串表示清空该项，只校验非空值
	checked := in
	checked.PrimaryColor = nonBlank(in.PrimaryColor)
	checked.Email = nonBlank(in.Email)
	if err := validateStruct(checked); err != nil {
		return SiteSettings{}, err
	}

	values := map[string]*string{
		db.SettingKeySiteName:       in.SiteName,
		db.SettingKeyLogoURL:        in.LogoURL,
		db.SettingKeyPrimaryColor:   in.PrimaryColor,
		db.SettingKeyWhatsAppNumber: in.WhatsAppNumber,
		db.SettingKeyPhone:          in.Phone,
		db.SettingKeyEmail:          in.Email,
		db.SettingKeyAddress:        in.Address,
	}
	if in.SocialLinks != nil {
		links := make(map[string]string, len(in.SocialLinks))
		for name, url := range in.SocialLinks {
			if name, url = strings.TrimSpace(name), strings.TrimSpace(url); name != "" && url != "" {
				links[name] = url
			}
		}
		raw, err := json.Marshal(links)
		if err != nil {
			return SiteSettings{}, fmt.Errorf("encode social links: %w", err)
		}
		encoded := string(raw)
		values[db.SettingKeySocialLinks] = &encoded
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, key := range siteSettingKeys {
			value := values[key]
			if value == nil {
				continue
			}
			if err := upsertSetting(tx, key, strings.TrimSpace(*value)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return SiteSettings{}, fmt.Errorf("update site settings: %w", err)
	}

	return s.Get(ctx)
}

// SiteInfo adapts the settings for sections that show contact data.
func (s *SiteSettingsService) SiteInfo(ctx context.Context) (section.SiteInfo, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return section.SiteInfo{}, err
	}
	return section.SiteInfo{
		SiteName:       settings.SiteName,
		WhatsAppNumber: settings.WhatsAppNumber,
		Phone:          settings.Phone,
		Email:          settings.Email,
		Address:        settings.Address,
	}, nil
}

func upsertSetting(tx *gorm.DB, key, value string) error {
	setting := db.SystemSetting{Key: key, Value: value}
	if err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      value,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&setting).Error; err != nil {
		return fmt.Errorf("upsert setting %s: %w", key, err)
	}
	return nil
}

func nonBlank(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
