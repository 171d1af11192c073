package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"skill-matrix/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

type EmployeeInput struct {
	FirstName        string
	LastName         string
	EmployeeID       string
	Category         string
	HireDate         *time.Time
	DepartmentNumber string
	Supervisor       string
	State            string
	Grade            string
	Email            string
}

type EmployeeItem struct {
	ID               uuid.UUID
	FirstName        string
	LastName         string
	Name             string
	EmployeeID       string
	Category         string
	HireDate         *time.Time
	DepartmentNumber string
	Supervisor       string
	State            string
	Grade            string
	Email            string
}

type EmployeeUsecase interface {
	GetEmployee(ctx context.Context, id uuid.UUID) (EmployeeItem, error)
	CreateEmployee(ctx context.Context, in EmployeeInput) (EmployeeItem, error)
	UpdateEmployee(ctx context.Context, id uuid.UUID, in EmployeeInput) (EmployeeItem, error)
	DeleteEmployee(ctx context.Context, id uuid.UUID) error
}

type EmployeeService struct {
	repo repository.EmployeeRepository
}

func NewEmployeeUsecase(repo repository.EmployeeRepository) *EmployeeService {
	return &EmployeeService{repo: repo}
}

func (u *EmployeeService) GetEmployee(ctx context.Context, id uuid.UUID) (EmployeeItem, error) {
	if id == uuid.Nil {
		return EmployeeItem{}, ErrInvalidInput
	}
	e, err := u.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEmployeeNotFound) {
			return EmployeeItem{}, ErrEmployeeNotFound
		}
		return EmployeeItem{}, ErrInternal
	}
	return toEmployeeItem(e), nil
}

func (u *EmployeeService) CreateEmployee(ctx context.Context, in EmployeeInput) (EmployeeItem, error) {
	if strings.TrimSpace(in.FirstName) == "" && strings.TrimSpace(in.LastName) == "" {
		return EmployeeItem{}, ErrInvalidInput
	}

	created, err := u.repo.Create(ctx, employeeFromInput(uuid.Nil, in))
	if err != nil {
		if isUniqueViolation(err) {
			return EmployeeItem{}, ErrInvalidInput
		}
		return EmployeeItem{}, ErrInternal
	}
	return toEmployeeItem(created), nil
}

func (u *EmployeeService) UpdateEmployee(ctx context.Context, id uuid.UUID, in EmployeeInput) (EmployeeItem, error) {
	if id == uuid.Nil {
		return EmployeeItem{}, ErrInvalidInput
	}

	updated, err := u.repo.Update(ctx, employeeFromInput(id, in))
	if err != nil {
		if errors.Is(err, repository.ErrEmployeeNotFound) {
			return EmployeeItem{}, ErrEmployeeNotFound
		}
		return EmployeeItem{}, ErrInternal
	}
	return toEmployeeItem(updated), nil
}

func (u *EmployeeService) DeleteEmployee(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrInvalidInput
	}
	if err := u.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrEmployeeNotFound) {
			return ErrEmployeeNotFound
		}
		return ErrInternal
	}
	return nil
}

func employeeFromInput(id uuid.UUID, in EmployeeInput) repository.Employee {
	return repository.Employee{
		ID:               id,
		FirstName:        strings.TrimSpace(in.FirstName),
		LastName:         strings.TrimSpace(in.LastName),
		EmployeeID:       strings.TrimSpace(in.EmployeeID),
		Category:         strings.TrimSpace(in.Category),
		HireDate:         in.HireDate,
		DepartmentNumber: strings.TrimSpace(in.DepartmentNumber),
		Supervisor:       strings.TrimSpace(in.Supervisor),
		State:            strings.TrimSpace(in.State),
		Grade:            strings.TrimSpace(in.Grade),
		Email:            strings.TrimSpace(in.Email),
	}
}

func toEmployeeItem(e repository.Employee) EmployeeItem {
	return EmployeeItem{
		ID:               e.ID,
		FirstName:        e.FirstName,
		LastName:         e.LastName,
		Name:             e.Name(),
		EmployeeID:       e.EmployeeID,
		Category:         e.Category,
		HireDate:         e.HireDate,
		DepartmentNumber: e.DepartmentNumber,
		Supervisor:       e.Supervisor,
		State:            e.State,
		Grade:            e.Grade,
		Email:            e.Email,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
