package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mindloop/habitpack/models"
	"github.com/mindloop/habitpack/services"
	"github.com/mindloop/habitpack/utils"
)

// PackController exposes the habit pack catalog and the progression
// operations backed by the progress service.
type PackController struct {
	db  *gorm.DB
	svc *services.ProgressService
}

// NewPackController creates a new controller instance.
func NewPackController(db *gorm.DB, svc *services.ProgressService) *PackController {
	return &PackController{db: db, svc: svc}
}

// packSummary is the catalog view of a template. The task pool itself stays
// server-side so canonical answers are never exposed.
type packSummary struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	TasksPerDay int    `json:"tasks_per_day"`
	Duration    int    `json:"duration"`
	PoolSize    int    `json:"pool_size"`
}

// ListPacks returns the available pack catalog, redis-cached.
func (p *PackController) ListPacks(ctx *gin.Context) {
	const cacheKey = "cache:packs:catalog"
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(200, "application/json", b)
		return
	}

	var packs []models.HabitPack
	if err := p.db.Order("id ASC").Find(&packs).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50040, "failed to load packs")
		return
	}

	summaries := make([]packSummary, 0, len(packs))
	for _, pack := range packs {
		summaries = append(summaries, packSummary{
			ID:          pack.ID,
			Name:        pack.Name,
			Description: pack.Description,
			TasksPerDay: pack.TasksPerDay,
			Duration:    pack.Duration,
			PoolSize:    len(pack.TaskPool),
		})
	}

	body := utils.JSONResponse{Code: 0, Message: "success", Data: gin.H{"packs": summaries}}
	utils.CacheSetJSON(cacheKey, body, 10*time.Minute)
	utils.Success(ctx, gin.H{"packs": summaries})
}

// StartPack begins a pack run for the authenticated user, assigning day 1.
func (p *PackController) StartPack(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	packID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40040, "invalid pack id")
		return
	}

	instance, err := p.svc.StartPack(userID, uint(packID))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	invalidateUserCaches(userID)
	utils.Respond(ctx, http.StatusCreated, 0, "success", gin.H{"instance": instance})
}

// GetDailyTasks returns the current day record, creating the next day first
// when a calendar-day boundary has passed. Responds with null data when the
// user has no pack in progress.
func (p *PackController) GetDailyTasks(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	record, err := p.svc.TodayWork(userID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	if record == nil {
		utils.Success(ctx, nil)
		return
	}
	utils.Success(ctx, gin.H{"today": record})
}

// SubmitResponse records one task response for today. The payload is
// sanitized before it reaches the ledger.
func (p *PackController) SubmitResponse(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		TaskID   string `json:"task_id" binding:"required"`
		Response string `json:"response" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40041, "invalid request payload")
		return
	}

	record, err := p.svc.SubmitResponse(userID, req.TaskID, utils.Sanitize(req.Response))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	invalidateUserCaches(userID)
	utils.Success(ctx, gin.H{"today": record})
}

// GetActivePack returns a summary of the in-progress instance with per-day
// completion state, for dashboard rendering.
func (p *PackController) GetActivePack(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	instance, err := p.svc.ActiveInstance(userID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	if instance == nil {
		utils.Error(ctx, http.StatusNotFound, 40440, "no habit pack in progress")
		return
	}

	loc := p.svc.Location()
	type dayView struct {
		Day       int    `json:"day"`
		Date      string `json:"date"`
		Entries   int    `json:"entries"`
		Completed bool   `json:"completed"`
	}
	progress := make([]dayView, 0, len(instance.DayRecords))
	for _, rec := range instance.DayRecords {
		progress = append(progress, dayView{
			Day:       rec.Day,
			Date:      rec.CreatedAt.In(loc).Format("2006-01-02"),
			Entries:   len(rec.Entries),
			Completed: rec.Completed,
		})
	}

	utils.Success(ctx, gin.H{
		"id":             instance.ID,
		"name":           instance.HabitPack.Name,
		"status":         instance.Status,
		"current_day":    instance.CurrentDay,
		"current_streak": instance.CurrentStreak,
		"longest_streak": instance.LongestStreak,
		"progress":       progress,
	})
}

// invalidateUserCaches drops cached per-user aggregates after a write.
func invalidateUserCaches(userID uint) {
	utils.InvalidateByPrefix(fmt.Sprintf("cache:user:%d:", userID))
}

// respondServiceError maps domain errors onto HTTP statuses and business codes.
func respondServiceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrTaskAlreadyAnswered):
		utils.Error(ctx, http.StatusConflict, 40931, "task already answered today")
	case errors.Is(err, models.ErrConflict):
		utils.Error(ctx, http.StatusConflict, 40930, err.Error())
	case errors.Is(err, models.ErrNotFound):
		utils.Error(ctx, http.StatusNotFound, 40430, err.Error())
	case errors.Is(err, models.ErrInvalidConfiguration):
		utils.Error(ctx, http.StatusBadRequest, 40042, err.Error())
	default:
		if utils.Sugar != nil {
			utils.Sugar.Errorf("progress operation failed: %v", err)
		}
		utils.Error(ctx, http.StatusInternalServerError, 50041, "operation failed")
	}
}
