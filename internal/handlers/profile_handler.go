package handlers

import (
	"net/http"

	"smartmatch_backend/internal/middleware"
	"smartmatch_backend/internal/services"
	"smartmatch_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	*BaseHandler
	profileService services.ProfileService
}

func NewProfileHandler(base *BaseHandler, profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler:    base,
		profileService: profileService,
	}
}

func (h *ProfileHandler) RegisterRoutes(r *gin.RouterGroup) {
	profiles := r.Group("/profiles")
	profiles.Use(middleware.AuthMiddleware())
	{
		profiles.GET("/:freelancerId", h.GetProfile)
		profiles.POST("/:freelancerId/endorsements", h.EndorseSkill)
		profiles.GET("/me/work-pattern", h.GetWorkPattern)
		profiles.PUT("/me/work-pattern", h.UpdateWorkPattern)
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}
	freelancerID := c.Param("freelancerId")

	profile, err := h.profileService.GetProfile(c.Request.Context(), freelancerID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) GetWorkPattern(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	pattern, err := h.profileService.GetWorkPattern(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, pattern)
}

func (h *ProfileHandler) UpdateWorkPattern(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateWorkPatternRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	pattern, err := h.profileService.UpdateWorkPattern(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, pattern)
}

func (h *ProfileHandler) EndorseSkill(c *gin.Context) {
	endorserID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	freelancerID := c.Param("freelancerId")

	var req dto.EndorseSkillRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.profileService.EndorseSkill(c.Request.Context(), endorserID, freelancerID, req.Skill); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Skill endorsed"})
}
