package models

import "gorm.io/gorm"

const (
	UploadPending   = "pending"
	UploadConfirmed = "confirmed"
	UploadDeleted   = "deleted"
)

// UploadedFile tracks the lifecycle of a client upload. FileID is the public
// handle and always starts with "file_".
type UploadedFile struct {
	gorm.Model
	FileID   string `gorm:"unique;not null"`
	FileName string // sanitized
	FileType string // MIME type
	FileSize int64  // bytes
	FileURL  string
	Status   string `gorm:"default:pending"` // pending, confirmed, deleted
}
