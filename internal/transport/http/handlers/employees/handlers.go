package employeeshandler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"hrportal/internal/domain/employees"
	"hrportal/internal/domain/records"
	"hrportal/internal/transport/http/api"
	"hrportal/internal/transport/http/middleware"
	"hrportal/internal/transport/http/shared"
)

type Handler struct {
	Service *employees.Service
}

func NewHandler(service *employees.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/{employeeID}", h.handleGet)
		r.Put("/{employeeID}", h.handleUpdate)
		r.Put("/{employeeID}/contact", h.handleUpdateContact)
	})
}

type contactPayload struct {
	Phone            string `json:"phone" validate:"max=40"`
	Address          string `json:"address" validate:"max=200"`
	EmergencyContact string `json:"emergencyContact" validate:"max=200"`
}

type salaryPayload struct {
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency" validate:"omitempty,len=3"`
	LastReview string          `json:"lastReview" validate:"omitempty,datetime=2006-01-02"`
}

type employeePayload struct {
	ID             string         `json:"id"`
	Name           string         `json:"name" validate:"required,max=120"`
	Email          string         `json:"email" validate:"required,email"`
	Department     string         `json:"department" validate:"required"`
	Position       string         `json:"position"`
	EmployeeNumber string         `json:"employeeId" validate:"required"`
	JoinDate       string         `json:"joinDate" validate:"required,datetime=2006-01-02"`
	Status         string         `json:"status" validate:"omitempty,oneof=active inactive"`
	Manager        string         `json:"manager"`
	ContactInfo    contactPayload `json:"contactInfo"`
	Salary         salaryPayload  `json:"salary"`
}

func (p employeePayload) input(v *shared.Validator) employees.Input {
	in := employees.Input{
		ID:             p.ID,
		Name:           p.Name,
		Email:          p.Email,
		Department:     p.Department,
		Position:       p.Position,
		EmployeeNumber: p.EmployeeNumber,
		Status:         employees.Status(p.Status),
		Manager:        p.Manager,
		ContactInfo:    employees.ContactInfo(p.ContactInfo),
		Salary: employees.Salary{
			Amount:   p.Salary.Amount,
			Currency: p.Salary.Currency,
		},
	}
	if joined, err := records.ParseDate(p.JoinDate); err == nil {
		in.JoinDate = joined
	} else {
		v.Add("joinDate", "must be a valid date in YYYY-MM-DD format")
	}
	if p.Salary.LastReview != "" {
		if reviewed, err := records.ParseDate(p.Salary.LastReview); err == nil {
			in.Salary.LastReview = reviewed
		}
	}
	if p.Salary.Amount.IsNegative() {
		v.Add("salary.amount", "must not be negative")
	}
	return in
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var (
		items []employees.Employee
		err   error
	)
	switch {
	case r.URL.Query().Get("department") != "":
		items, err = h.Service.ListByDepartment(r.Context(), user, r.URL.Query().Get("department"))
	case r.URL.Query().Get("active") == "true":
		items, err = h.Service.ListActive(r.Context(), user)
	default:
		items, err = h.Service.List(r.Context(), user)
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

	emp, err := h.Service.Get(r.Context(), user, chi.URLParam(r, "employeeID"))
	if err != nil {
		api.FromError(w, err, reqID)
		return
	}
	api.Success(w, emp, reqID)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload employeePayload
	if !shared.DecodeJSON(w, r, &payload, reqID) {
		return
	}
	v := shared.NewValidator()
	v.Struct(payload)
	if v.Reject(w, reqID) {
		return
	}
	in := payload.input(v)
	if v.Reject(w, reqID) {
		return
	}

	emp, err := h.Service.Create(r.Context(), user, in)
	if err != nil {
		api.FromError(w, err, reqID)
		return
	}
	api.Done(w, http.StatusCreated, emp, "Employee "+emp.Name+" added", reqID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload employeePayload
	if !shared.DecodeJSON(w, r, &payload, reqID) {
		return
	}
	v := shared.NewValidator()
	v.Struct(payload)
	if v.Reject(w, reqID) {
		return
	}
	in := payload.input(v)
	if v.Reject(w, reqID) {
		return
	}

	emp, err := h.Service.Update(r.Context(), user, chi.URLParam(r, "employeeID"), in)
	if err != nil {
		api.FromError(w, err, reqID)
		return
	}
	api.Done(w, http.StatusOK, emp, "Employee record updated", reqID)
}

func (h *Handler) handleUpdateContact(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload contactPayload
	if !shared.DecodeJSON(w, r, &payload, reqID) {
		return
	}
	v := shared.NewValidator()
	v.Struct(payload)
	if v.Reject(w, reqID) {
		return
	}

	emp, err := h.Service.UpdateContact(r.Context(), user, chi.URLParam(r, "employeeID"), employees.ContactInfo(payload))
	if err != nil {
		api.FromError(w, err, reqID)
		return
	}
	api.Done(w, http.StatusOK, emp, "Contact details updated", reqID)
}
