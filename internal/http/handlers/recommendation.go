package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/stackadvisor-backend/internal/http/response"
	"github.com/yungbote/stackadvisor-backend/internal/platform/logger"
	"github.com/yungbote/stackadvisor-backend/internal/services"
)

type RecommendationHandler struct {
	log  *logger.Logger
	recs services.RecommendationService
}

func NewRecommendationHandler(log *logger.Logger, recs services.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{log: log.With("handler", "RecommendationHandler"), recs: recs}
}

// POST /api/projects/:id/recommendations
func (rh *RecommendationHandler) Generate(c *gin.Context) {
	projectID, ok := pathUUID(c, "id", msgProjectNotFound)
	if !ok {
		return
	}
	rec, err := rh.recs.Generate(c.Request.Context(), projectID)
	if err != nil {
		response.RespondErr(c, rh.log, err)
		return
	}
	response.RespondOK(c, gin.H{
		"message":          "Recommendations generated successfully",
		"recommendations":  rec.Snapshot.Data(),
		"recommendationId": rec.ID,
	})
}

// GET /api/projects/:id/recommendations[?history=true]
func (rh *RecommendationHandler) List(c *gin.Context) {
	projectID, ok := pathUUID(c, "id", msgProjectNotFound)
	if !ok {
		return
	}
	if history, _ := strconv.ParseBool(c.DefaultQuery("history", "false")); history {
		rows, err := rh.recs.History(c.Request.Context(), projectID)
		if err != nil {
			response.RespondErr(c, rh.log, err)
			return
		}
		response.RespondOK(c, gin.H{"recommendations": rows})
		return
	}
	rec, err := rh.recs.Latest(c.Request.Context(), projectID)
	if err != nil {
		response.RespondErr(c, rh.log, err)
		return
	}
	response.RespondOK(c, gin.H{"recommendation": rec})
}

// GET /api/projects/:id/recommendations/:recId
func (rh *RecommendationHandler) Get(c *gin.Context) {
	projectID, ok := pathUUID(c, "id", msgProjectNotFound)
	if !ok {
		return
	}
	recID, ok := pathUUID(c, "recId", "Recommendation not found")
	if !ok {
		return
	}
	rec, err := rh.recs.Get(c.Request.Context(), projectID, recID)
	if err != nil {
		response.RespondErr(c, rh.log, err)
		return
	}
	response.RespondOK(c, gin.H{"recommendation": rec})
}
