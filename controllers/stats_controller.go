package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mindloop/habitpack/services"
	"github.com/mindloop/habitpack/utils"
)

// StatsController serves read-only progression aggregates.
type StatsController struct {
	svc *services.ProgressService
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(svc *services.ProgressService) *StatsController {
	return &StatsController{svc: svc}
}

// GetRoutineStats returns streak and pack-count aggregates across all of the
// user's instances, completed ones included. Cached briefly per user and
// invalidated on every ledger write.
func (s *StatsController) GetRoutineStats(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	cacheKey := fmt.Sprintf("cache:user:%d:stats", userID)
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(200, "application/json", b)
		return
	}

	stats, err := s.svc.Stats(userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50050, "failed to load stats")
		return
	}

	body := utils.JSONResponse{Code: 0, Message: "success", Data: stats}
	utils.CacheSetJSON(cacheKey, body, 5*time.Minute)
	utils.Success(ctx, stats)
}
