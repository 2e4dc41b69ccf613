package models

import "gorm.io/gorm"

type Resource struct {
	gorm.Model
	Title          string `gorm:"not null"`
	Description    string
	Category       string `gorm:"index"`
	FileURL        string
	FileSize       int64  // bytes
	FileType       string // MIME type
	IsPro          bool   `gorm:"default:false"`
	DownloadsCount int    `gorm:"default:0"`
}

// UserDownload is an append-only log entry. Exactly one of ResourceID or
// ProjectID is set; the parent entity's denormalized counter is incremented
// in the same transaction.
type UserDownload struct {
	gorm.Model
	UserID     uint `gorm:"not null;index"`
	ResourceID *uint
	ProjectID  *uint
}
