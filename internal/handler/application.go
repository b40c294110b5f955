package handler

import (
	"net/http"

	"github.com/jobbuddy/api/internal/ctxkeys"
	"github.com/jobbuddy/api/internal/repository"
	"github.com/jobbuddy/api/internal/service"
)

type applicationHandler struct {
	applicationService *service.ApplicationService
	maxUploadBytes     int64
}

func NewApplicationHandler(applicationService *service.ApplicationService, maxUploadMB int64) *applicationHandler {
	return &applicationHandler{
		applicationService: applicationService,
		maxUploadBytes:     maxUploadMB << 20,
	}
}

func (h *applicationHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req service.ApplicationInput
	if err := Decode(r, &req); err != nil {
		Error(w, http.StatusBadRequest, CodeBadRequest, "invalid request body")
		return
	}

	app, err := h.applicationService.Create(user.ID, req)
	if err != nil {
		ServiceError(w, err)
		return
	}

	JSON(w, http.StatusCreated, map[string]any{
		"message":     "Application created successfully",
		"application": app,
	})
}

func (h *applicationHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	page, perPage := pageParams(r)
	q := r.URL.Query()

	apps, total, err := h.applicationService.List(user.ID, repository.ApplicationFilter{
		Status:    q.Get("status"),
		CompanyID: q.Get("company_id"),
		Search:    q.Get("search"),
		Page:      page,
		PerPage:   perPage,
	})
	if err != nil {
		ServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, map[string]any{
		"applications": apps,
		"pagination":   NewPagination(page, perPage, total),
	})
}

func (h *applicationHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	app, err := h.applicationService.ByID(user.ID, r.PathValue("id"))
	if err != nil {
		ServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, map[string]any{"application": app})
}

func (h *applicationHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req service.ApplicationUpdate
	if err := Decode(r, &req); err != nil {
		Error(w, http.StatusBadRequest, CodeBadRequest, "invalid request body")
		return
	}

	app, err := h.applicationService.Update(user.ID, r.PathValue("id"), req)
	if err != nil {
		ServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, map[string]any{
		"message":     "Application updated successfully",
		"application": app,
	})
}

func (h *applicationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	if err := h.applicationService.Delete(user.ID, r.PathValue("id")); err != nil {
		ServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, map[string]any{
		"message": "Application deleted successfully",
	})
}

// BulkImport accepts a CSV upload in the "file" form field and imports
// applications row by row.
func (h *applicationHandler) BulkImport(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		Error(w, http.StatusRequestEntityTooLarge, CodeFileTooLarge, "uploaded file is too large")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		Error(w, http.StatusBadRequest, CodeBadRequest, "CSV file is required in the \"file\" field")
		return
	}
	defer func() { _ = file.Close() }()

	result, err := h.applicationService.BulkImport(user.ID, file)
	if err != nil {
		ServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, map[string]any{
		"message": "Import completed",
		"result":  result,
	})
}
