package dto

import (
	"time"

	"github.com/google/uuid"
)

type EmployeeResponse struct {
	ID               uuid.UUID  `json:"id"`
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	Name             string     `json:"name"`
	EmployeeID       string     `json:"employee_id"`
	Category         string     `json:"category"`
	HireDate         *time.Time `json:"hire_date,omitempty"`
	DepartmentNumber string     `json:"department_number"`
	Supervisor       string     `json:"supervisor"`
	State            string     `json:"state"`
	Grade            string     `json:"grade"`
	Email            string     `json:"email"`
}

type EmployeeWithSkillsResponse struct {
	ID               uuid.UUID      `json:"id"`
	Name             string         `json:"name"`
	EmployeeID       string         `json:"employee_id"`
	Category         string         `json:"category"`
	DepartmentNumber string         `json:"department_number"`
	Supervisor       string         `json:"supervisor"`
	State            string         `json:"state"`
	Grade            string         `json:"grade"`
	Email            string         `json:"email"`
	Skills           map[string]int `json:"skills"`
}
