package warningshandler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"hrportal/internal/domain/disciplinary"
	"hrportal/internal/transport/http/api"
	"hrportal/internal/transport/http/middleware"
	"hrportal/internal/transport/http/shared"
)

type Handler struct {
	Service *disciplinary.Service
}

func NewHandler(service *disciplinary.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/warnings", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleIssue)
		r.Get("/{warningID}", h.handleGet)
		r.Post("/{warningID}/acknowledge", h.handleAcknowledge)
		r.Post("/{warningID}/follow-up", h.handleFollowUp)
		r.Get("/{warningID}/letter.pdf", h.handleLetter)
	})
}

type issuePayload struct {
	EmployeeID  string   `json:"employeeId" validate:"required"`
	Type        string   `json:"type" validate:"required,max=60"`
	Title       string   `json:"title" validate:"required,max=200"`
	Description string   `json:"description" validate:"required,max=4000"`
	Severity    string   `json:"severity" validate:"required,oneof=minor moderate serious"`
	Attachments []string `json:"attachments" validate:"max=10,dive,max=255"`
}

type acknowledgePayload struct {
	Comments string `json:"comments" validate:"max=2000"`
}

type followUpPayload struct {
	Date     string `json:"date" validate:"required"`
	Comments string `json:"comments" validate:"max=2000"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	query := r.URL.Query()

	var (
		items []disciplinary.Warning
		err   error
	)
	switch {
	case query.Get("pendingAcknowledgement") == "true":
		items, err = h.Service.ListPendingAcknowledgement(r.Context(), user)
	case query.Get("active") == "true":
		items, err = h.Service.ListActive(r.Context(), user)
	case query.Get("employeeId") != "":
		items, err = h.Service.ListByEmployee(r.Context(), user, query.Get("employeeId"))
	case query.Get("severity") != "":
		severity, ok := disciplinary.ParseSeverity(query.Get("severity"))
		if !ok {
			shared.FailValidation(w, reqID, []shared.ValidationIssue{{Field: "severity", Reason: "must be one of minor, moderate, serious"}})
			return
		}
		items, err = h.Service.ListBySeverity(r.Context(), user, severity)
	case query.Get("type") != "":
		items, err = h.Service.ListByType(r.Context(), user, query.Get("type"))
	default:
		items, err = h.Service.ListForActor(r.Context(), user)
	}
	if err != nil {
		api.FromError(w, err, reqID)
		return
	}

	page := shared.ParsePagination(r, 100, 500)
	w.Header().Set("X-Total-Count", strconv.Itoa(len(items)))
	api.Success(w, shared.Page(items, page), reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	warning, err := h.Service.Get(r.Context(), user, chi.URLParam(r, "warningID"))
	if err != nil {
		api.FromError(w, err, reqID)
		return
	}
	api.Success(w, warning, reqID)
}

func (h *Handler) handleIssue(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload issuePayload
	if !shared.DecodeJSON(w, r, &payload, reqID) {
		return
	}
	v := shared.NewValidator()
	v.Struct(payload)
	if v.Reject(w, reqID) {
		return
	}

	warning, err := h.Service.Issue(r.Context(), user, disciplinary.IssueInput{
		EmployeeID:  payload.EmployeeID,
		Type:        payload.Type,
		Title:       payload.Title,
		Description: payload.Description,
		Severity:    disciplinary.Severity(payload.Severity),
		Attachments: payload.Attachments,
	})
	if err != nil {
		api.FromError(w, err, reqID)
		return
	}
	api.Done(w, http.StatusCreated, warning, "Warning issued to "+warning.EmployeeName, reqID)
}

func (h *Handler) handleAcknowledge(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload acknowledgePayload
	if !shared.DecodeJSON(w, r, &payload, reqID) {
		return
	}
	v := shared.NewValidator()
	v.Struct(payload)
	if v.Reject(w, reqID) {
		return
	}

	warning, err := h.Service.Acknowledge(r.Context(), user, chi.URLParam(r, "warningID"), payload.Comments)
	if err != nil {
		api.FromError(w, err, reqID)
		return
	}
	api.Done(w, http.StatusOK, warning, "Warning acknowledged", reqID)
}

func (h *Handler) handleFollowUp(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload followUpPayload
	if !shared.DecodeJSON(w, r, &payload, reqID) {
		return
	}
	v := shared.NewValidator()
	v.Struct(payload)
	date, _ := v.Date("date", payload.Date)
	if v.Reject(w, reqID) {
		return
	}

	warning, err := h.Service.AddFollowUp(r.Context(), user, chi.URLParam(r, "warningID"), date, payload.Comments)
	if err != nil {
		api.FromError(w, err, reqID)
		return
	}
	api.Done(w, http.StatusOK, warning, "Follow-up recorded", reqID)
}

func (h *Handler) handleLetter(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	id := chi.URLParam(r, "warningID")
	doc, err := h.Service.Letter(r.Context(), user, id)
	if err != nil {
		api.FromError(w, err, reqID)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=warning-%s.pdf", id))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc); err != nil {
		slog.Warn("write warning letter failed", "err", err)
	}
}
