package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/medassist/internal/domain/appointment"
	"github.com/BruksfildServices01/medassist/internal/dto"
	"github.com/BruksfildServices01/medassist/internal/httperr"
	"github.com/BruksfildServices01/medassist/internal/httpresp"
	"github.com/BruksfildServices01/medassist/internal/middleware"
	"github.com/BruksfildServices01/medassist/internal/models"
	ucAppointment "github.com/BruksfildServices01/medassist/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	db    *gorm.DB
	store *ucAppointment.Store
}

func NewAppointmentHandler(db *gorm.DB, store *ucAppointment.Store) *AppointmentHandler {
	return &AppointmentHandler{db: db, store: store}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	PatientID    string `json:"patient_id"`
	PatientName  string `json:"patient_name"`
	PatientPhone string `json:"patient_phone"`
	Department   string `json:"department" binding:"required"`
	DoctorName   string `json:"doctor_name" binding:"required"`
	Date         string `json:"appointment_date" binding:"required"`
	Time         string `json:"appointment_time" binding:"required"`
	Symptoms     string `json:"symptoms"`
}

type UpdateAppointmentRequest struct {
	PatientID    *string `json:"patient_id,omitempty"`
	PatientName  *string `json:"patient_name,omitempty"`
	PatientPhone *string `json:"patient_phone,omitempty"`
	Department   *string `json:"department,omitempty"`
	DoctorName   *string `json:"doctor_name,omitempty"`
	Date         *string `json:"appointment_date,omitempty"`
	Time         *string `json:"appointment_time,omitempty"`
	Symptoms     *string `json:"symptoms,omitempty"`
}

func (r UpdateAppointmentRequest) patch() domain.Patch {
	return domain.Patch{
		PatientID:    r.PatientID,
		PatientName:  r.PatientName,
		PatientPhone: r.PatientPhone,
		Department:   r.Department,
		DoctorName:   r.DoctorName,
		Date:         r.Date,
		Time:         r.Time,
		Symptoms:     r.Symptoms,
	}
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	owner := middleware.Owner(c)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "資料格式不正確。")
		return
	}

	// Patient name and phone default to the caller's own profile.
	if strings.TrimSpace(req.PatientName) == "" || strings.TrimSpace(req.PatientPhone) == "" {
		var user models.User
		if err := h.db.WithContext(c.Request.Context()).
			First(&user, middleware.UserID(c)).Error; err == nil {
			if strings.TrimSpace(req.PatientName) == "" {
				req.PatientName = user.Name
			}
			if strings.TrimSpace(req.PatientPhone) == "" {
				req.PatientPhone = user.Phone
			}
		}
	}

	ap, err := h.store.Create(c.Request.Context(), owner, domain.Fields{
		PatientID:    req.PatientID,
		PatientName:  req.PatientName,
		PatientPhone: req.PatientPhone,
		Department:   req.Department,
		DoctorName:   req.DoctorName,
		Date:         req.Date,
		Time:         req.Time,
		Symptoms:     req.Symptoms,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewAppointmentDTO(*ap))
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	owner := middleware.Owner(c)
	keyword := strings.TrimSpace(c.Query("keyword"))

	apps, err := h.store.List(c.Request.Context(), owner, keyword)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, dto.NewAppointmentDTOs(apps))
}

// ======================================================
// UPDATE
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	owner := middleware.Owner(c)

	id, ok := appointmentID(c)
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "資料格式不正確。")
		return
	}

	ap, err := h.store.Update(c.Request.Context(), owner, id, req.patch())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.NewAppointmentDTO(*ap))
}

// ======================================================
// CANCEL
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	owner := middleware.Owner(c)

	id, ok := appointmentID(c)
	if !ok {
		return
	}

	ap, err := h.store.Cancel(c.Request.Context(), owner, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.NewAppointmentDTO(*ap))
}

func appointmentID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "預約編號不正確。")
		return 0, false
	}
	return uint(id), true
}
