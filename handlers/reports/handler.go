package reports

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tau-lavender/graffity-report/models"
	reportsvc "github.com/tau-lavender/graffity-report/services/reports"
	"github.com/tau-lavender/graffity-report/utils"
)

type Handler struct {
	service *reportsvc.Service
}

func NewHandler(service *reportsvc.Service) *Handler {
	return &Handler{service: service}
}

// @Summary Submit a graffiti report
// @Description Submit a report with a raw or pre-normalized address; the report starts pending
// @Tags reports
// @Accept json
// @Produce json
// @Param report body models.ReportCreate true "Report payload"
// @Success 200 {object} map[string]interface{} "success: true, report_id: int"
// @Failure 400 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /api/apply [post]
func (h *Handler) Apply(c *gin.Context) {
	var req models.ReportCreate
	if !utils.ValidateRequestBody(c, &req) {
		utils.LogError(nil, "Invalid request body in Apply")
		return
	}

	reportID, err := h.service.Apply(c.Request.Context(), req)
	if err != nil {
		utils.LogError(err, "Error creating report in Apply")
		utils.SendServiceError(c, err)
		return
	}

	utils.LogSuccess("Report " + strconv.Itoa(reportID) + " created in Apply")
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"report_id": reportID,
	})
}

// @Summary List reports
// @Description List all reports newest first, optionally filtered by submitter
// @Tags reports
// @Produce json
// @Param telegram_user_id query int false "Filter by Telegram user id"
// @Success 200 {array} models.ReportView
// @Failure 400 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /api/applications [get]
func (h *Handler) List(c *gin.Context) {
	var userID *int64
	if raw := c.Query("telegram_user_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			utils.LogError(err, "Invalid telegram_user_id in List")
			utils.SendError(c, http.StatusBadRequest, "telegram_user_id must be an integer")
			return
		}
		userID = &id
	}

	views, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		utils.LogError(err, "Error listing reports in List")
		utils.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, views)
}

// @Summary Moderate a report
// @Description Set a report's status (pending, approved or declined), gated by the admin secret
// @Tags reports
// @Accept json
// @Produce json
// @Param moderation body models.ModerateRequest true "Moderation request"
// @Success 200 {object} map[string]interface{} "success: true"
// @Failure 400 {object} utils.Response
// @Failure 403 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /api/applications/moderate [post]
func (h *Handler) Moderate(c *gin.Context) {
	var req models.ModerateRequest
	if !utils.ValidateRequestBody(c, &req) {
		utils.LogError(nil, "Invalid request body in Moderate")
		return
	}

	if err := h.service.Moderate(c.Request.Context(), req); err != nil {
		utils.LogError(err, "Moderation rejected in Moderate")
		utils.SendServiceError(c, err)
		return
	}

	utils.LogSuccess("Report " + strconv.Itoa(req.ReportID) + " moderated to " + req.Status)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
