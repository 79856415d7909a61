package db

import "time"

// SystemSetting 存储后台可配置的站点级键值对。
type SystemSetting struct {
	ID        uint   `gorm:"primaryKey"`
	Key       string `gorm:"size:100;uniqueIndex;not null"`
	Value     string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName 自定义表名以保持命名一致。
func (SystemSetting) TableName() string {
	return "system_settings"
}

const (
	SettingKeySiteName       = "site_name"
	SettingKeyLogoURL        = "logo_url"
	SettingKeyPrimaryColor   = "primary_color"
	SettingKeyWhatsAppNumber = "whatsapp_number"
	SettingKeyPhone          = "phone"
	SettingKeyEmail          = "email"
	SettingKeyAddress        = "address"
	// SettingKeySocialLinks holds a JSON object of network name to URL.
	SettingKeySocialLinks = "social_links"
)
