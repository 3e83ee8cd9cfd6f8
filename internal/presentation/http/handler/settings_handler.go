package handler

import (
	"github.com/ardiansn/cetakflow-api/internal/application/service"
	"github.com/ardiansn/cetakflow-api/internal/domain/entity"
	"github.com/ardiansn/cetakflow-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// SettingsHandler handles shop configuration and nota sequence requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GetShopConfig handles reading the shop configuration
func (h *SettingsHandler) GetShopConfig(c *gin.Context) {
	cfg, err := h.settingsService.GetShopConfig(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Shop configuration retrieved successfully", cfg)
}

// UpdateShopConfig handles updating the shop configuration
func (h *SettingsHandler) UpdateShopConfig(c *gin.Context) {
	var cfg entity.ShopConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.settingsService.UpdateShopConfig(c.Request.Context(), cfg)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Shop configuration updated successfully", updated)
}

// GetSequence handles reading the nota counter
func (h *SettingsHandler) GetSequence(c *gin.Context) {
	seq, err := h.settingsService.GetSequence(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Nota sequence retrieved successfully", seq)
}

// UpdateSequence handles updating the nota counter
func (h *SettingsHandler) UpdateSequence(c *gin.Context) {
	var req struct {
		Prefix    string `json:"prefix"`
		NextValue int64  `json:"next_value" binding:"required"`
		Padding   int    `json:"padding" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	seq, err := h.settingsService.UpdateSequence(c.Request.Context(), service.UpdateSequenceInput{
		Prefix:    req.Prefix,
		NextValue: req.NextValue,
		Padding:   req.Padding,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Nota sequence updated successfully", seq)
}
