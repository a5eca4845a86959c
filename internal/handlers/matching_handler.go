package handlers

import (
	"net/http"

	"smartmatch_backend/internal/middleware"
	"smartmatch_backend/internal/models"
	"smartmatch_backend/internal/services"
	"smartmatch_backend/internal/services/dto"
	"smartmatch_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type MatchingHandler struct {
	*BaseHandler
	matchingService services.MatchingService
}

func NewMatchingHandler(base *BaseHandler, matchingService services.MatchingService) *MatchingHandler {
	return &MatchingHandler{
		BaseHandler:     base,
		matchingService: matchingService,
	}
}

func (h *MatchingHandler) RegisterRoutes(r *gin.RouterGroup) {
	matching := r.Group("/matching")
	matching.Use(middleware.AuthMiddleware())
	{
		matching.POST("/search", h.FindMatches)
		matching.POST("/freelancers/:freelancerId/score", h.CalculateMatchScore)
		matching.POST("/events/:eventId/outcome", h.UpdateMatchingOutcome)
		matching.GET("/skills/:skill/related", h.GetRelatedSkills)
		matching.GET("/market-rates", h.GetMarketRate)
	}
}

// FindMatches runs a full candidate search and returns the ranked page.
func (h *MatchingHandler) FindMatches(c *gin.Context) {
	clientID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.FindMatchesRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	response, err := h.matchingService.FindMatches(c.Request.Context(), clientID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// CalculateMatchScore scores one named freelancer against the criteria.
func (h *MatchingHandler) CalculateMatchScore(c *gin.Context) {
	clientID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	freelancerID := c.Param("freelancerId")

	var req dto.ScoreRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	match, err := h.matchingService.CalculateMatchScore(c.Request.Context(), clientID, freelancerID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, match)
}

// UpdateMatchingOutcome reports what happened after a match was shown.
func (h *MatchingHandler) UpdateMatchingOutcome(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}
	eventID := c.Param("eventId")

	var req dto.OutcomeRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.matchingService.UpdateMatchingOutcome(c.Request.Context(), eventID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Outcome recorded"})
}

// GetRelatedSkills lists substitution edges for one skill.
func (h *MatchingHandler) GetRelatedSkills(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}
	skill := c.Param("skill")

	related, err := h.matchingService.GetRelatedSkills(c.Request.Context(), skill)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"skill":   skill,
		"related": related,
		"total":   len(related),
	})
}

// GetMarketRate returns the freshest snapshot for a segment.
func (h *MatchingHandler) GetMarketRate(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	skillCategory := c.Query("skill_category")
	if skillCategory == "" {
		apperrors.HandleError(c, apperrors.NewBadRequestError("skill_category is required"))
		return
	}
	region := c.Query("region")
	level := models.ExperienceLevel(c.Query("experience_level"))

	rate, err := h.matchingService.GetMarketRate(c.Request.Context(), skillCategory, region, level)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, rate)
}
