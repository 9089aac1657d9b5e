package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/medassist/internal/httperr"
	"github.com/BruksfildServices01/medassist/internal/middleware"
	"github.com/BruksfildServices01/medassist/internal/models"
)

const (
	defaultAuditPageSize = 50
	maxAuditPageSize     = 200
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

type AuditLogsQuery struct {
	Action string `form:"action"`
	Entity string `form:"entity"`
	From   string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To     string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1"`
}

func (q *AuditLogsQuery) normalize() {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.Limit == 0 {
		q.Limit = defaultAuditPageSize
	}
	if q.Limit > maxAuditPageSize {
		q.Limit = maxAuditPageSize
	}
}

type AuditLogsResponse struct {
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
	Total int64             `json:"total"`
	Logs  []models.AuditLog `json:"logs"`
}

// List pages through the caller's own audit trail, newest first.
func (h *AuditLogsHandler) List(c *gin.Context) {
	var query AuditLogsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.BadRequest(c, "invalid_query", "查詢條件不正確。")
		return
	}
	query.normalize()

	scoped := h.db.WithContext(c.Request.Context()).
		Model(&models.AuditLog{}).
		Where("owner = ?", middleware.Owner(c))

	if query.Action != "" {
		scoped = scoped.Where("action = ?", query.Action)
	}
	if query.Entity != "" {
		scoped = scoped.Where("entity = ?", query.Entity)
	}
	// Dates were validated by binding.
	if query.From != "" {
		from, _ := time.Parse("2006-01-02", query.From)
		scoped = scoped.Where("created_at >= ?", from)
	}
	if query.To != "" {
		to, _ := time.Parse("2006-01-02", query.To)
		scoped = scoped.Where("created_at < ?", to.AddDate(0, 0, 1))
	}

	resp := AuditLogsResponse{Page: query.Page, Limit: query.Limit, Logs: []models.AuditLog{}}

	if err := scoped.Count(&resp.Total).Error; err != nil {
		httperr.Internal(c, "audit_count_failed", "無法讀取操作紀錄。")
		return
	}

	if err := scoped.
		Order("created_at DESC, id DESC").
		Limit(query.Limit).
		Offset((query.Page - 1) * query.Limit).
		Find(&resp.Logs).Error; err != nil {
		httperr.Internal(c, "audit_list_failed", "無法讀取操作紀錄。")
		return
	}

	c.JSON(http.StatusOK, resp)
}
