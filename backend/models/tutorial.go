package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"

	StatusPublished = "published"
	StatusHidden    = "hidden"
)

type Tutorial struct {
	gorm.Model
	Title         string         `gorm:"not null"`
	Slug          string         `gorm:"unique;not null"`
	Description   string
	Content       string
	TechStack     datatypes.JSON // array of strings
	Difficulty    string         // beginner, intermediate, advanced
	EstimatedTime int            // minutes
	ThumbnailURL  string
	IsPro         bool   `gorm:"default:false"`
	Status        string `gorm:"default:published"` // published, hidden
	LikesCount    int    `gorm:"default:0"`
	ViewsCount    int    `gorm:"default:0"`
}

// UserLike records a user's like of a tutorial. Toggled: the row is deleted
// when the user unlikes.
type UserLike struct {
	gorm.Model
	UserID     uint `gorm:"not null;uniqueIndex:idx_user_tutorial_like"`
	TutorialID uint `gorm:"not null;uniqueIndex:idx_user_tutorial_like"`
}
