package leavehandler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"hrportal/internal/domain/leave"
	"hrportal/internal/transport/http/api"
	"hrportal/internal/transport/http/middleware"
	"hrportal/internal/transport/http/shared"
)

type Handler struct {
	Service *leave.Service
}

func NewHandler(service *leave.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/leave/requests", func(r chi.Router) {
		r.Get("/", h.handleListRequests)
		r.Post("/", h.handleCreateRequest)
		r.Get("/{requestID}", h.handleGetRequest)
		r.Post("/{requestID}/approve", h.handleApproveRequest)
		r.Post("/{requestID}/reject", h.handleRejectRequest)
		r.Post("/{requestID}/comments", h.handleAddComment)
	})
}

type createRequestPayload struct {
	EmployeeID string `json:"employeeId"`
	Type       string `json:"type" validate:"required,max=60"`
	StartDate  string `json:"startDate" validate:"required"`
	EndDate    string `json:"endDate" validate:"required"`
	Reason     string `json:"reason" validate:"required,max=2000"`
}

// decisionPayload takes "reason" as an alias of "comment".
type decisionPayload struct {
	Comment string `json:"comment" validate:"max=2000"`
	Reason  string `json:"reason" validate:"max=2000"`
}

func (p decisionPayload) text() string {
	if strings.TrimSpace(p.Comment) != "" {
		return p.Comment
	}
	return p.Reason
}

type commentPayload struct {
	Text string `json:"text" validate:"required,max=2000"`
}

func (h *Handler) handleListRequests(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	query := r.URL.Query()

	var (
		items []leave.LeaveRequest
		err   error
	)
	switch {
	case query.Get("pending") == "true":
		items, err = h.Service.ListPending(r.Context(), user)
	case query.Get("employeeId") != "":
		items, err = h.Service.ListByEmployee(r.Context(), user, query.Get("employeeId"))
	case query.Get("status") != "":
		status, ok := leave.ParseStatus(query.Get("status"))
		if !ok {
			shared.FailValidation(w, reqID, []shared.ValidationIssue{{Field: "status", Reason: "must be one of pending, approved, rejected"}})
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

func (h *Handler) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	req, err := h.Service.Get(r.Context(), user, chi.URLParam(r, "requestID"))
	if err != nil {
		api.FromError(w, err, reqID)
		return
	}
	api.Success(w, req, reqID)
}

func (h *Handler) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload createRequestPayload
	if !shared.DecodeJSON(w, r, &payload, reqID) {
		return
	}
	v := shared.NewValidator()
	v.Struct(payload)
	start, startOK := v.Date("startDate", payload.StartDate)
	end, endOK := v.Date("endDate", payload.EndDate)
	if startOK && endOK {
		v.DateOrder("startDate", start, "endDate", end)
	}
	if v.Reject(w, reqID) {
		return
	}

	created, err := h.Service.Submit(r.Context(), user, leave.SubmitInput{
		EmployeeID: payload.EmployeeID,
		Type:       payload.Type,
		StartDate:  start,
		EndDate:    end,
		Reason:     payload.Reason,
	})
	if err != nil {
		api.FromError(w, err, reqID)
		return
	}
	api.Done(w, http.StatusCreated, created, "Leave request submitted", reqID)
}

func (h *Handler) handleApproveRequest(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, true)
}

func (h *Handler) handleRejectRequest(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, false)
}

func (h *Handler) decide(w http.ResponseWriter, r *http.Request, approve bool) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload decisionPayload
	if !shared.DecodeJSON(w, r, &payload, reqID) {
		return
	}
	v := shared.NewValidator()
	v.Struct(payload)
	if v.Reject(w, reqID) {
		return
	}

	id := chi.URLParam(r, "requestID")
	var (
		updated leave.LeaveRequest
		err     error
		notice  string
	)
	if approve {
		updated, err = h.Service.Approve(r.Context(), user, id, payload.text())
		notice = "Leave request approved"
	} else {
		updated, err = h.Service.Reject(r.Context(), user, id, payload.text())
		notice = "Leave request rejected"
	}
	if err != nil {
		api.FromError(w, err, reqID)
		return
	}
	api.Done(w, http.StatusOK, updated, notice, reqID)
}

func (h *Handler) handleAddComment(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload commentPayload
	if !shared.DecodeJSON(w, r, &payload, reqID) {
		return
	}
	v := shared.NewValidator()
	v.Struct(payload)
	if v.Reject(w, reqID) {
		return
	}

	updated, err := h.Service.AddComment(r.Context(), user, chi.URLParam(r, "requestID"), payload.Text)
	if err != nil {
		api.FromError(w, err, reqID)
		return
	}
	api.Done(w, http.StatusCreated, updated, "Comment added", reqID)
}
