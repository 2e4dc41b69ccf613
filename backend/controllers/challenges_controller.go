package controllers

import (
	"errors"
	"strconv"
	"time"

	"thinkhub/backend/config"
	"thinkhub/backend/models"
	"thinkhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ChallengesController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewChallengesController(db *gorm.DB, cfg *config.Config) *ChallengesController {
	return &ChallengesController{DB: db, Cfg: cfg}
}

type CreateChallengeInput struct {
	Title        string         `json:"title" validate:"required,min=5"`
	Description  string         `json:"description"`
	Type         string         `json:"type" validate:"required,oneof=tutorial quiz project"`
	PointsReward int            `json:"points_reward" validate:"required,gt=0"`
	TutorialID   *uint          `json:"tutorial_id"`
	ProjectID    *uint          `json:"project_id"`
	QuizData     datatypes.JSON `json:"quiz_data"`
	StartDate    time.Time      `json:"start_date" validate:"required"`
	EndDate      time.Time      `json:"end_date" validate:"required"`
	IsActive     *bool          `json:"is_active"`
}

func (chc *ChallengesController) CreateChallenge(c *fiber.Ctx) error {
	var input CreateChallengeInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	if !input.EndDate.After(input.StartDate) {
		return utils.BadRequest(c, "end_date must be after start_date")
	}

	if input.TutorialID != nil {
		var tutorial models.Tutorial
		if err := chc.DB.First(&tutorial, *input.TutorialID).Error; err != nil {
			return utils.NotFound(c, "Tutorial not found")
		}
	}
	if input.ProjectID != nil {
		var project models.Project
		if err := chc.DB.First(&project, *input.ProjectID).Error; err != nil {
			return utils.NotFound(c, "Project not found")
		}
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	challenge := models.Challenge{
		Title:        input.Title,
		Description:  input.Description,
		Type:         input.Type,
		PointsReward: input.PointsReward,
		TutorialID:   input.TutorialID,
		ProjectID:    input.ProjectID,
		QuizData:     input.QuizData,
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
		IsActive:     isActive,
	}

	if err := chc.DB.Create(&challenge).Error; err != nil {
		return utils.InternalServerError(c, "Could not create challenge")
	}

	return utils.Created(c, challenge)
}

// GetActiveChallenges returns challenges that are flagged active and whose
// window contains the current time.
func (chc *ChallengesController) GetActiveChallenges(c *fiber.Ctx) error {
	now := time.Now()

	var challenges []models.Challenge
	if err := chc.DB.Where("is_active = ? AND start_date <= ? AND end_date >= ?", true, now, now).
		Order("end_date ASC").
		Find(&challenges).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return utils.Success(c, fiber.StatusOK, challenges)
}

// ParticipateInChallenge records a single participation event. Points are
// captured at the current reward value; a second call is a conflict.
func (chc *ChallengesController) ParticipateInChallenge(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, chc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	challengeID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid challenge ID")
	}

	var challenge models.Challenge
	if err := chc.DB.First(&challenge, challengeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Challenge not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	now := time.Now()
	if !challenge.IsActive || now.Before(challenge.StartDate) || now.After(challenge.EndDate) {
		return utils.Conflict(c, "Challenge is not currently active")
	}

	var existing models.UserPoints
	if err := chc.DB.Where("user_id = ? AND challenge_id = ?", userID, challenge.ID).
		First(&existing).Error; err == nil {
		return utils.Conflict(c, "Already participated in this challenge")
	}

	points := models.UserPoints{
		UserID:       userID,
		ChallengeID:  challenge.ID,
		PointsEarned: challenge.PointsReward,
	}

	// The unique (user, challenge) index closes the race between the check
	// above and this insert.
	if err := chc.DB.Create(&points).Error; err != nil {
		return utils.Conflict(c, "Already participated in this challenge")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"success":       true,
		"points_earned": points.PointsEarned,
	})
}

// GetLeaderboard aggregates UserPoints into ranked totals. Only users with
// points appear; badges are threshold-based on the total.
func (chc *ChallengesController) GetLeaderboard(c *fiber.Ctx) error {
	weekAgo := time.Now().AddDate(0, 0, -7)

	var rows []struct {
		UserID       uint
		FullName     string
		TotalPoints  int
		WeeklyPoints int
	}

	err := chc.DB.Raw(`
		SELECT u.id AS user_id, u.full_name AS full_name,
			SUM(up.points_earned) AS total_points,
			SUM(CASE WHEN up.created_at >= ? THEN up.points_earned ELSE 0 END) AS weekly_points
		FROM user_points up
		JOIN users u ON u.id = up.user_id
		GROUP BY u.id, u.full_name
		HAVING SUM(up.points_earned) > 0
		ORDER BY total_points DESC
	`, weekAgo).Scan(&rows).Error
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	entries := make([]models.LeaderboardEntry, 0, len(rows))
	for i, row := range rows {
		entries = append(entries, models.LeaderboardEntry{
			Rank:         i + 1,
			UserID:       row.UserID,
			FullName:     row.FullName,
			TotalPoints:  row.TotalPoints,
			WeeklyPoints: row.WeeklyPoints,
			Badges:       models.BadgesForTotal(row.TotalPoints),
		})
	}

	return utils.Success(c, fiber.StatusOK, entries)
}

// GetUserRank computes 1 + the number of users whose totals strictly exceed
// this user's total.
func (chc *ChallengesController) GetUserRank(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, chc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	rank, total, weekly, err := computeUserRank(chc.DB, userID)
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"rank":          rank,
		"total_points":  total,
		"weekly_points": weekly,
	})
}

func computeUserRank(db *gorm.DB, userID uint) (rank, total, weekly int, err error) {
	err = db.Model(&models.UserPoints{}).
		Select("COALESCE(SUM(points_earned), 0)").
		Where("user_id = ?", userID).
		Scan(&total).Error
	if err != nil {
		return 0, 0, 0, err
	}

	weekAgo := time.Now().AddDate(0, 0, -7)
	err = db.Model(&models.UserPoints{}).
		Select("COALESCE(SUM(points_earned), 0)").
		Where("user_id = ? AND created_at >= ?", userID, weekAgo).
		Scan(&weekly).Error
	if err != nil {
		return 0, 0, 0, err
	}

	var above int64
	err = db.Raw(`
		SELECT COUNT(*) FROM (
			SELECT user_id FROM user_points
			GROUP BY user_id
			HAVING SUM(points_earned) > ?
		) ranked
	`, total).Scan(&above).Error
	if err != nil {
		return 0, 0, 0, err
	}

	return int(above) + 1, total, weekly, nil
}

// IssueCertificate is idempotent: re-issuing for the same (user, challenge)
// returns the existing certificate unchanged.
func (chc *ChallengesController) IssueCertificate(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, chc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	challengeID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid challenge ID")
	}

	var challenge models.Challenge
	if err := chc.DB.First(&challenge, challengeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Challenge not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var participation models.UserPoints
	if err := chc.DB.Where("user_id = ? AND challenge_id = ?", userID, challenge.ID).
		First(&participation).Error; err != nil {
		return utils.Conflict(c, "User has not participated in this challenge")
	}

	var certificate models.Certificate
	err = chc.DB.Where("user_id = ? AND challenge_id = ?", userID, challenge.ID).
		First(&certificate).Error
	if err == nil {
		return utils.Success(c, fiber.StatusOK, certificate)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.InternalServerError(c, "Could not query database")
	}

	certificate = models.Certificate{
		UserID:         userID,
		ChallengeID:    challenge.ID,
		Title:          "Certificate of Completion - " + challenge.Title,
		CertificateURL: chc.Cfg.CertificateBaseURL + "/" + uuid.NewString(),
	}

	if err := chc.DB.Create(&certificate).Error; err != nil {
		// Lost an issuance race; the existing row wins
		if err := chc.DB.Where("user_id = ? AND challenge_id = ?", userID, challenge.ID).
			First(&certificate).Error; err != nil {
			return utils.InternalServerError(c, "Could not issue certificate")
		}
	}

	return utils.Success(c, fiber.StatusOK, certificate)
}
