package handler

import (
	"net/http"

	"github.com/jobbuddy/api/internal/ctxkeys"
	"github.com/jobbuddy/api/internal/service"
)

type contactHandler struct {
	contactService *service.ContactService
}

func NewContactHandler(contactService *service.ContactService) *contactHandler {
	return &contactHandler{contactService: contactService}
}

func (h *contactHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req service.ContactInput
	if err := Decode(r, &req); err != nil {
		Error(w, http.StatusBadRequest, CodeBadRequest, "invalid request body")
		return
	}

	contact, err := h.contactService.Create(user.ID, req)
	if err != nil {
		ServiceError(w, err)
		return
	}

	JSON(w, http.StatusCreated, map[string]any{
		"message": "Contact created successfully",
		"contact": contact,
	})
}

type discoverRequest struct {
	CompanyID     string `json:"company_id"`
	CompanyDomain string `json:"company_domain"`
}

// Discover finds contacts for a company via the discovery API. The
// domain can be given explicitly; otherwise it is derived from the
// company's website.
func (h *contactHandler) Discover(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req discoverRequest
	if err := Decode(r, &req); err != nil || req.CompanyID == "" {
		Error(w, http.StatusBadRequest, CodeBadRequest, "company_id is required")
		return
	}

	contacts, err := h.contactService.Discover(r.Context(), user.ID, req.CompanyID, req.CompanyDomain)
	if err != nil {
		ServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, map[string]any{
		"message":  "Contact discovery completed",
		"contacts": contacts,
	})
}

func (h *contactHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	page, perPage := pageParams(r)
	q := r.URL.Query()

	contacts, total, err := h.contactService.List(user.ID, q.Get("company_id"), q.Get("search"), page, perPage)
	if err != nil {
		ServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, map[string]any{
		"contacts":   contacts,
		"pagination": NewPagination(page, perPage, total),
	})
}

func (h *contactHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	contact, err := h.contactService.ByID(user.ID, r.PathValue("id"))
	if err != nil {
		ServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, map[string]any{"contact": contact})
}

func (h *contactHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req service.ContactInput
	if err := Decode(r, &req); err != nil {
		Error(w, http.StatusBadRequest, CodeBadRequest, "invalid request body")
		return
	}

	contact, err := h.contactService.Update(user.ID, r.PathValue("id"), req)
	if err != nil {
		ServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, map[string]any{
		"message": "Contact updated successfully",
		"contact": contact,
	})
}

func (h *contactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	if err := h.contactService.Delete(user.ID, r.PathValue("id")); err != nil {
		ServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, map[string]any{
		"message": "Contact deleted successfully",
	})
}
