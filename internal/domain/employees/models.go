package employees

import (
	"slices"

	"github.com/shopspring/decimal"

	"hrportal/internal/domain/records"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

type ContactInfo struct {
	Phone            string `json:"phone"`
	Address          string `json:"address"`
	EmergencyContact string `json:"emergencyContact"`
}

type Salary struct {
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
	LastReview records.Date    `json:"lastReview"`
}

type Document struct {
	ID         string       `json:"id"`
	Type       string       `json:"type"`
	Status     string       `json:"status"`
	UploadDate records.Date `json:"uploadDate"`
}

// Employee is the HR profile of a user; ID equals the user id.
type Employee struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Email          string       `json:"email"`
	Department     string       `json:"department"`
	Position       string       `json:"position"`
	EmployeeNumber string       `json:"employeeId"`
	JoinDate       records.Date `json:"joinDate"`
	Status         Status       `json:"status"`
	Manager        string       `json:"manager"`
	ContactInfo    ContactInfo  `json:"contactInfo"`
	Salary         Salary       `json:"salary,omitzero"`
	Documents      []Document   `json:"documents"`
}

type Input struct {
	ID             string
	Name           string
	Email          string
	Department     string
	Position       string
	EmployeeNumber string
	JoinDate       records.Date
	Status         Status
	Manager        string
	ContactInfo    ContactInfo
	Salary         Salary
}

func cloneEmployee(e Employee) Employee {
	e.Documents = slices.Clone(e.Documents)
	if e.Documents == nil {
		e.Documents = []Document{}
	}
	return e
}
