package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ChallengeTypeTutorial = "tutorial"
	ChallengeTypeQuiz     = "quiz"
	ChallengeTypeProject  = "project"
)

// Leaderboard badge thresholds (total points earned)
const (
	BadgeHighAchiever = "high_achiever" // >= 1000
	BadgeAchiever     = "achiever"      // >= 500
	BadgeParticipant  = "participant"   // >= 100
)

type Challenge struct {
	gorm.Model
	Title        string `gorm:"not null"`
	Description  string
	Type         string // tutorial, quiz, project
	PointsReward int
	TutorialID   *uint
	ProjectID    *uint
	QuizData     datatypes.JSON // opaque quiz payload
	StartDate    time.Time
	EndDate      time.Time
	IsActive     bool `gorm:"default:true"`
}

// UserPoints records a single participation event. Points are captured at
// participation time; later reward changes do not affect earned rows.
type UserPoints struct {
	gorm.Model
	UserID       uint `gorm:"not null;uniqueIndex:idx_user_challenge_points"`
	ChallengeID  uint `gorm:"not null;uniqueIndex:idx_user_challenge_points"`
	PointsEarned int
}

type Certificate struct {
	gorm.Model
	UserID         uint   `gorm:"not null;uniqueIndex:idx_user_challenge_cert"`
	ChallengeID    uint   `gorm:"not null;uniqueIndex:idx_user_challenge_cert"`
	Title          string
	CertificateURL string
}

// LeaderboardEntry is a computed row, not a table.
type LeaderboardEntry struct {
	Rank         int      `json:"rank"`
	UserID       uint     `json:"user_id"`
	FullName     string   `json:"full_name"`
	TotalPoints  int      `json:"total_points"`
	WeeklyPoints int      `json:"weekly_points"`
	Badges       []string `json:"badges"`
}

// BadgesForTotal returns the badge list for a total-points value.
func BadgesForTotal(total int) []string {
	var badges []string
	switch {
	case total >= 1000:
		badges = append(badges, BadgeHighAchiever)
	case total >= 500:
		badges = append(badges, BadgeAchiever)
	case total >= 100:
		badges = append(badges, BadgeParticipant)
	}
	return badges
}
