package performancehandler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"hrportal/internal/domain/performance"
	"hrportal/internal/transport/http/api"
	"hrportal/internal/transport/http/middleware"
	"hrportal/internal/transport/http/shared"
)

type Handler struct {
	Service *performance.Service
}

func NewHandler(service *performance.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/performance", func(r chi.Router) {
		r.Get("/summary", h.handleSummary)
		r.Get("/reviews", h.handleListReviews)
		r.Post("/reviews", h.handleCreateReview)
		r.Get("/reviews/{reviewID}", h.handleGetReview)
		r.Put("/reviews/{reviewID}/categories", h.handleUpdateCategories)
		r.Post("/reviews/{reviewID}/acknowledge", h.handleAcknowledge)
		r.Get("/reviews/{reviewID}/report.pdf", h.handleReport)
	})
}

type categoryPayload struct {
	Name     string `json:"name" validate:"required,max=100"`
	Rating   int    `json:"rating" validate:"min=1,max=5"`
	Comments string `json:"comments" validate:"max=2000"`
}

type createReviewPayload struct {
	EmployeeID          string            `json:"employeeId" validate:"required"`
	ReviewPeriod        string            `json:"reviewPeriod" validate:"required,max=60"`
	Categories          []categoryPayload `json:"categories" validate:"required,min=1,dive"`
	Strengths           string            `json:"strengths" validate:"max=4000"`
	AreasForImprovement string            `json:"areasForImprovement" validate:"max=4000"`
	Goals               []string          `json:"goals" validate:"max=20,dive,max=500"`
}

type categoriesPayload struct {
	Categories []categoryPayload `json:"categories" validate:"required,min=1,dive"`
}

type acknowledgePayload struct {
	Comments string `json:"comments" validate:"max=4000"`
}

func toCategories(in []categoryPayload) []performance.Category {
	out := make([]performance.Category, 0, len(in))
	for _, c := range in {
		out = append(out, performance.Category(c))
	}
	return out
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	summary, err := h.Service.Summary(r.Context(), user)
	if err != nil {
		api.FromError(w, err, reqID)
		return
	}
	api.Success(w, summary, reqID)
}

func (h *Handler) handleListReviews(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	query := r.URL.Query()

	var (
		items []performance.PerformanceReview
		err   error
	)
	switch {
	case query.Get("pendingAcknowledgement") == "true":
		items, err = h.Service.ListPendingAcknowledgement(r.Context(), user)
	case query.Get("employeeId") != "":
		items, err = h.Service.ListByEmployee(r.Context(), user, query.Get("employeeId"))
	case query.Get("status") != "":
		status, ok := performance.ParseStatus(query.Get("status"))
		if !ok {
			shared.FailValidation(w, reqID, []shared.ValidationIssue{{Field: "status", Reason: "must be one of pending_employee, completed"}})
			return
		}
		items, err = h.Service.ListByStatus(r.Context(), user, status)
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

func (h *Handler) handleGetReview(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	review, err := h.Service.Get(r.Context(), user, chi.URLParam(r, "reviewID"))
	if err != nil {
		api.FromError(w, err, reqID)
		return
	}
	api.Success(w, review, reqID)
}

func (h *Handler) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload createReviewPayload
	if !shared.DecodeJSON(w, r, &payload, reqID) {
		return
	}
	v := shared.NewValidator()
	v.Struct(payload)
	if v.Reject(w, reqID) {
		return
	}

	review, err := h.Service.Create(r.Context(), user, performance.CreateInput{
		EmployeeID:          payload.EmployeeID,
		ReviewPeriod:        payload.ReviewPeriod,
		Categories:          toCategories(payload.Categories),
		Strengths:           payload.Strengths,
		AreasForImprovement: payload.AreasForImprovement,
		Goals:               payload.Goals,
	})
	if err != nil {
		api.FromError(w, err, reqID)
		return
	}
	api.Done(w, http.StatusCreated, review, "Performance review created", reqID)
}

func (h *Handler) handleUpdateCategories(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload categoriesPayload
	if !shared.DecodeJSON(w, r, &payload, reqID) {
		return
	}
	v := shared.NewValidator()
	v.Struct(payload)
	if v.Reject(w, reqID) {
		return
	}

	review, err := h.Service.UpdateCategories(r.Context(), user, chi.URLParam(r, "reviewID"), toCategories(payload.Categories))
	if err != nil {
		api.FromError(w, err, reqID)
		return
	}
	api.Done(w, http.StatusOK, review, "Review ratings updated", reqID)
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

	review, err := h.Service.Acknowledge(r.Context(), user, chi.URLParam(r, "reviewID"), payload.Comments)
	if err != nil {
		api.FromError(w, err, reqID)
		return
	}
	api.Done(w, http.StatusOK, review, "Review acknowledged", reqID)
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	id := chi.URLParam(r, "reviewID")
	doc, err := h.Service.Report(r.Context(), user, id)
	if err != nil {
		api.FromError(w, err, reqID)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=review-%s.pdf", id))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc); err != nil {
		slog.Warn("write review report failed", "err", err)
	}
}
