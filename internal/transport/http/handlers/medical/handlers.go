package medicalhandler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"hrportal/internal/domain/medical"
	"hrportal/internal/transport/http/api"
	"hrportal/internal/transport/http/middleware"
	"hrportal/internal/transport/http/shared"
)

type Handler struct {
	Service *medical.Service
}

func NewHandler(service *medical.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/medical/documents", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleUpload)
		r.Get("/{documentID}", h.handleGet)
		r.Post("/{documentID}/verify", h.handleVerify)
		r.Post("/{documentID}/reject", h.handleReject)
		r.Post("/{documentID}/comments", h.handleAddComment)
	})
}

type uploadPayload struct {
	EmployeeID     string `json:"employeeId"`
	Title          string `json:"title" validate:"required,max=200"`
	Description    string `json:"description" validate:"max=2000"`
	Filename       string `json:"filename" validate:"required,max=255"`
	LeaveRequestID string `json:"leaveRequestId"`
}

type verifyPayload struct {
	Comment string `json:"comment" validate:"max=2000"`
}

type rejectPayload struct {
	Reason string `json:"reason" validate:"max=2000"`
}

type commentPayload struct {
	Text string `json:"text" validate:"required,max=2000"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	query := r.URL.Query()

	var (
		items []medical.MedicalDocument
		err   error
	)
	switch {
	case query.Get("pending") == "true":
		items, err = h.Service.ListPending(r.Context(), user)
	case query.Get("leaveRequestId") != "":
		items, err = h.Service.ListByLeaveRequest(r.Context(), user, query.Get("leaveRequestId"))
	case query.Get("employeeId") != "":
		items, err = h.Service.ListByEmployee(r.Context(), user, query.Get("employeeId"))
	case query.Get("status") != "":
		status, ok := medical.ParseStatus(query.Get("status"))
		if !ok {
			shared.FailValidation(w, reqID, []shared.ValidationIssue{{Field: "status", Reason: "must be one of pending, verified, rejected"}})
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

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	doc, err := h.Service.Get(r.Context(), user, chi.URLParam(r, "documentID"))
	if err != nil {
		api.FromError(w, err, reqID)
		return
	}
	api.Success(w, doc, reqID)
}

func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload uploadPayload
	if !shared.DecodeJSON(w, r, &payload, reqID) {
		return
	}
	v := shared.NewValidator()
	v.Struct(payload)
	if v.Reject(w, reqID) {
		return
	}

	doc, err := h.Service.Upload(r.Context(), user, medical.UploadInput(payload))
	if err != nil {
		api.FromError(w, err, reqID)
		return
	}
	api.Done(w, http.StatusCreated, doc, "Medical document uploaded", reqID)
}

func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload verifyPayload
	if !shared.DecodeJSON(w, r, &payload, reqID) {
		return
	}
	v := shared.NewValidator()
	v.Struct(payload)
	if v.Reject(w, reqID) {
		return
	}

	doc, err := h.Service.Verify(r.Context(), user, chi.URLParam(r, "documentID"), payload.Comment)
	if err != nil {
		api.FromError(w, err, reqID)
		return
	}
	api.Done(w, http.StatusOK, doc, "Medical document verified", reqID)
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload rejectPayload
	if !shared.DecodeJSON(w, r, &payload, reqID) {
		return
	}
	v := shared.NewValidator()
	v.Struct(payload)
	if v.Reject(w, reqID) {
		return
	}

	doc, err := h.Service.Reject(r.Context(), user, chi.URLParam(r, "documentID"), payload.Reason)
	if err != nil {
		api.FromError(w, err, reqID)
		return
	}
	api.Done(w, http.StatusOK, doc, "Medical document rejected", reqID)
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

	doc, err := h.Service.AddComment(r.Context(), user, chi.URLParam(r, "documentID"), payload.Text)
	if err != nil {
		api.FromError(w, err, reqID)
		return
	}
	api.Done(w, http.StatusCreated, doc, "Comment added", reqID)
}
