package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	PlanFree = "free"
	PlanPro  = "pro"

	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Daily AI query ceilings per plan
const (
	FreeDailyAIQueries = 10
	ProDailyAIQueries  = 100
)

type User struct {
	gorm.Model
	Email                 string `gorm:"unique;not null"`
	PasswordHash          string `gorm:"not null"`
	FullName              string `gorm:"not null"`
	Role                  string `gorm:"default:user"` // user, admin
	SubscriptionPlan      string `gorm:"default:free"` // free, pro
	SubscriptionExpiresAt *time.Time
	AIQueriesUsedToday    int `gorm:"default:0"`
	LastAIQueryAt         *time.Time
}

// HasProAccess reports effective pro access at the given instant. An expired
// subscription keeps plan=pro with its past date; only the wall clock decides.
func (u *User) HasProAccess(now time.Time) bool {
	if u.SubscriptionPlan != PlanPro {
		return false
	}
	return u.SubscriptionExpiresAt == nil || u.SubscriptionExpiresAt.After(now)
}

// DailyAILimit returns the AI query ceiling for the user's effective plan.
func (u *User) DailyAILimit(now time.Time) int {
	if u.HasProAccess(now) {
		return ProDailyAIQueries
	}
	return FreeDailyAIQueries
}
