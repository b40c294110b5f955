package handler

import (
	"net/http"
	"strings"

	"github.com/jobbuddy/api/internal/ctxkeys"
	"github.com/jobbuddy/api/internal/service"
	"github.com/jobbuddy/api/internal/validation"
)

type cvHandler struct {
	cvAnalysisService *service.CVAnalysisService
	maxUploadBytes    int64
}

func NewCVHandler(cvAnalysisService *service.CVAnalysisService, maxUploadMB int64) *cvHandler {
	return &cvHandler{
		cvAnalysisService: cvAnalysisService,
		maxUploadBytes:    maxUploadMB << 20,
	}
}

// Analyze takes a multipart form with a cv_file upload, a job_description
// field, and an optional application_id.
func (h *cvHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		Error(w, http.StatusRequestEntityTooLarge, CodeFileTooLarge, "uploaded file is too large")
		return
	}

	file, header, err := r.FormFile("cv_file")
	if err != nil {
		Error(w, http.StatusBadRequest, CodeBadRequest, "CV file is required in the \"cv_file\" field")
		return
	}
	defer func() { _ = file.Close() }()

	if err := validation.ValidateFile(header, validation.CVConstraints); err != nil {
		Error(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}

	jobDescription := r.FormValue("job_description")

	var applicationID *string
	if v := strings.TrimSpace(r.FormValue("application_id")); v != "" {
		applicationID = &v
	}

	analysis, err := h.cvAnalysisService.Analyze(user.ID, applicationID, header.Filename, file, jobDescription)
	if err != nil {
		ServiceError(w, err)
		return
	}

	JSON(w, http.StatusCreated, map[string]any{
		"message":  "CV analyzed successfully",
		"analysis": analysis,
	})
}

func (h *cvHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	page, perPage := pageParams(r)

	analyses, total, err := h.cvAnalysisService.List(user.ID, page, perPage)
	if err != nil {
		ServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, map[string]any{
		"analyses":   analyses,
		"pagination": NewPagination(page, perPage, total),
	})
}

func (h *cvHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	analysis, err := h.cvAnalysisService.ByID(user.ID, r.PathValue("id"))
	if err != nil {
		ServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, map[string]any{"analysis": analysis})
}

func (h *cvHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	if err := h.cvAnalysisService.Delete(user.ID, r.PathValue("id")); err != nil {
		ServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, map[string]any{
		"message": "Analysis deleted successfully",
	})
}
