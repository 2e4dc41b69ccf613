package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Roadmap struct {
	gorm.Model
	Title       string `gorm:"not null"`
	Description string
	Category    string         `gorm:"index"`
	Nodes       datatypes.JSON // ordered array of RoadmapNode
}

// RoadmapNode is the JSON shape of a single roadmap step. Position is
// presentation-only data for the client canvas.
type RoadmapNode struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	TutorialID  *uint        `json:"tutorial_id,omitempty"`
	ProjectID   *uint        `json:"project_id,omitempty"`
	Position    NodePosition `json:"position"`
}

type NodePosition struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// UserProgress keeps at most one row per (user, tutorial) and per
// (user, roadmap) pair; updates are upserts.
type UserProgress struct {
	gorm.Model
	UserID             uint  `gorm:"not null;uniqueIndex:idx_progress_tutorial;uniqueIndex:idx_progress_roadmap"`
	TutorialID         *uint `gorm:"uniqueIndex:idx_progress_tutorial"`
	RoadmapID          *uint `gorm:"uniqueIndex:idx_progress_roadmap"`
	ProgressPercentage int
	CompletedNodes     datatypes.JSON // array of node ids
}
