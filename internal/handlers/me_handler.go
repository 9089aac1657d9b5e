package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/medassist/internal/dto"
	"github.com/BruksfildServices01/medassist/internal/middleware"
	"github.com/BruksfildServices01/medassist/internal/models"
	"github.com/BruksfildServices01/medassist/internal/validators"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

// --------- Requests ---------

type UpdateMeRequest struct {
	Name       *string `json:"name"`
	Phone      *string `json:"phone" binding:"omitempty,twphone"`
	IdentityID *string `json:"identity_id" binding:"omitempty,twid"`
}

// --------- Handlers ---------

func (h *MeHandler) GetMe(c *gin.Context) {
	user, ok := h.loadUser(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": dto.NewProfileDTO(*user)})
}

func (h *MeHandler) UpdateMe(c *gin.Context) {
	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	user, ok := h.loadUser(c)
	if !ok {
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name_required"})
			return
		}
		user.Name = name
	}

	if req.Phone != nil {
		user.Phone = validators.NormalizePhone(*req.Phone)
	}

	if req.IdentityID != nil {
		identityID := validators.NormalizeIdentityID(*req.IdentityID)

		var count int64
		h.db.Model(&models.User{}).
			Where("identity_id = ? AND id <> ?", identityID, user.ID).
			Count(&count)
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "identity_id_already_registered"})
			return
		}
		user.IdentityID = identityID
	}

	if err := h.db.Save(user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": dto.NewProfileDTO(*user)})
}

func (h *MeHandler) loadUser(c *gin.Context) (*models.User, bool) {
	userID := middleware.UserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user_not_in_context"})
		return nil, false
	}

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).First(&user, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "user_not_found"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return nil, false
	}
	return &user, true
}
