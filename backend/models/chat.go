package models

import "gorm.io/gorm"

const (
	ContextTutorial = "tutorial"
	ContextProject  = "project"
	ContextGeneral  = "general"
)

// ChatMessage stores one user query together with the AI tutor's response.
type ChatMessage struct {
	gorm.Model
	UserID      uint   `gorm:"not null;index"`
	Message     string `gorm:"not null"`
	Response    string
	ContextType string `gorm:"default:general"` // tutorial, project, general
	ContextID   *uint
}
