package photos

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	reportsvc "github.com/tau-lavender/graffity-report/services/reports"
	"github.com/tau-lavender/graffity-report/utils"
)

type Handler struct {
	service *reportsvc.Service
}

func NewHandler(service *reportsvc.Service) *Handler {
	return &Handler{service: service}
}

// @Summary Attach a photo to a report
// @Description Upload one photo (multipart) for an existing report; the blob is stored before any metadata
// @Tags photos
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Photo file"
// @Param report_id formData int true "Report id"
// @Success 200 {object} map[string]interface{} "success: true, s3_key: string"
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Failure 413 {object} utils.Response
// @Failure 503 {object} utils.Response
// @Router /api/upload/photo [post]
func (h *Handler) Upload(c *gin.Context) {
	reportID, err := strconv.Atoi(c.PostForm("report_id"))
	if err != nil || reportID <= 0 {
		utils.LogError(err, "Missing report_id in Upload")
		utils.SendError(c, http.StatusBadRequest, "report_id is required")
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		utils.LogError(err, "Missing file in Upload")
		utils.SendError(c, http.StatusBadRequest, "a photo file is required")
		return
	}

	src, err := file.Open()
	if err != nil {
		utils.LogError(err, "Cannot open the uploaded file in Upload")
		utils.SendError(c, http.StatusBadRequest, "cannot read the uploaded file")
		return
	}
	defer src.Close()

	key, err := h.service.UploadPhoto(
		c.Request.Context(),
		reportID,
		file.Filename,
		src,
		file.Size,
		file.Header.Get("Content-Type"),
	)
	if err != nil {
		utils.LogError(err, "Error uploading photo in Upload")
		utils.SendServiceError(c, err)
		return
	}

	utils.LogSuccess("Photo " + key + " uploaded for report " + strconv.Itoa(reportID))
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"s3_key":  key,
	})
}

// @Summary Get a photo URL
// @Description Return a time-limited presigned URL for one photo
// @Tags photos
// @Produce json
// @Param id path int true "Photo id"
// @Success 200 {object} models.PhotoView
// @Failure 404 {object} utils.Response
// @Router /api/photo/{id} [get]
func (h *Handler) GetURL(c *gin.Context) {
	photoID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.SendError(c, http.StatusBadRequest, "photo id must be an integer")
		return
	}

	view, err := h.service.PhotoURL(c.Request.Context(), photoID)
	if err != nil {
		utils.LogError(err, "Error resolving photo URL in GetURL")
		utils.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url":    view.URL,
		"s3_key": view.S3Key,
	})
}

// @Summary Download a photo
// @Description Stream the photo bytes with the inferred MIME type
// @Tags photos
// @Produce octet-stream
// @Param id path int true "Photo id"
// @Success 200 {file} binary
// @Failure 404 {object} utils.Response
// @Failure 503 {object} utils.Response
// @Router /api/photo/download/{id} [get]
func (h *Handler) Download(c *gin.Context) {
	photoID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.SendError(c, http.StatusBadRequest, "photo id must be an integer")
		return
	}

	data, contentType, err := h.service.DownloadPhoto(c.Request.Context(), photoID)
	if err != nil {
		utils.LogError(err, "Error downloading photo in Download")
		utils.SendServiceError(c, err)
		return
	}

	c.Data(http.StatusOK, contentType, data)
}

// @Summary List a report's photos
// @Description Return every photo of one report with retrievable URLs
// @Tags photos
// @Produce json
// @Param id path int true "Report id"
// @Success 200 {object} map[string][]models.PhotoView
// @Failure 400 {object} utils.Response
// @Router /api/report/{id}/photos [get]
func (h *Handler) ReportPhotos(c *gin.Context) {
	reportID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.SendError(c, http.StatusBadRequest, "report id must be an integer")
		return
	}

	views, err := h.service.ReportPhotos(c.Request.Context(), reportID)
	if err != nil {
		utils.LogError(err, "Error listing photos in ReportPhotos")
		utils.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"photos": views})
}
