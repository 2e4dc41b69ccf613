package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Project struct {
	gorm.Model
	Title          string `gorm:"not null"`
	Slug           string `gorm:"unique;not null"`
	Description    string
	Content        string
	TechStack      datatypes.JSON // array of strings
	Difficulty     string         // beginner, intermediate, advanced
	EstimatedTime  int            // minutes
	ThumbnailURL   string
	DemoURL        string
	GithubURL      string
	GuideURL       string
	IsPro          bool   `gorm:"default:false"`
	Status         string `gorm:"default:published"` // published, hidden
	LikesCount     int    `gorm:"default:0"`
	ViewsCount     int    `gorm:"default:0"`
	DownloadsCount int    `gorm:"default:0"`
}
