package handler

import (
	"errors"
	"strconv"
	"time"

	"skill-matrix/internal/delivery/http/dto"
	"skill-matrix/internal/delivery/http/middleware"
	"skill-matrix/internal/pkg/response"
	"skill-matrix/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type EmployeeHandler struct {
	uc   usecase.EmployeeUsecase
	sync usecase.MatrixSyncUsecase
}

type employeeRequest struct {
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	EmployeeID       string `json:"employee_id"`
	Category         string `json:"category"`
	HireDate         string `json:"hire_date" validate:"omitempty,datetime=2006-01-02"`
	DepartmentNumber string `json:"department_number"`
	Supervisor       string `json:"supervisor"`
	State            string `json:"state"`
	Grade            string `json:"grade"`
	Email            string `json:"email" validate:"omitempty,email"`
}

func NewEmployeeHandler(uc usecase.EmployeeUsecase, sync usecase.MatrixSyncUsecase) *EmployeeHandler {
	return &EmployeeHandler{uc: uc, sync: sync}
}

func (h *EmployeeHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/employees")
	grp.Get("/", h.List)
	grp.Get("/:id", h.Get)
	grp.Post("/", h.Create)
	grp.Put("/:id", h.Update)
	grp.Delete("/:id", h.Delete)
}

// List returns the paged employee roster with each employee's skill map
// attached, normalized table preferred, members_data as fallback.
func (h *EmployeeHandler) List(c fiber.Ctx) error {
	page := queryInt(c, "page", 1)
	pageSize := queryInt(c, "page_size", 50)
	search := c.Query("search")

	items := h.sync.FetchEmployees(c.Context(), page, pageSize, search)

	res := make([]dto.EmployeeWithSkillsResponse, 0, len(items))
	for _, it := range items {
		res = append(res, dto.EmployeeWithSkillsResponse{
			ID:               it.ID,
			Name:             it.Name,
			EmployeeID:       it.EmployeeCode,
			Category:         it.Category,
			DepartmentNumber: it.DepartmentNumber,
			Supervisor:       it.Supervisor,
			State:            it.State,
			Grade:            it.Grade,
			Email:            it.Email,
			Skills:           it.Skills,
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *EmployeeHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	item, err := h.uc.GetEmployee(c.Context(), id)
	if err != nil {
		return mapEmployeeUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, toEmployeeResponse(item))
}

func (h *EmployeeHandler) Create(c fiber.Ctx) error {
	in, appErr := h.bindEmployee(c)
	if appErr != nil {
		return appErr
	}

	created, err := h.uc.CreateEmployee(c.Context(), in)
	if err != nil {
		return mapEmployeeUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, toEmployeeResponse(created))
}

func (h *EmployeeHandler) Update(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	in, appErr := h.bindEmployee(c)
	if appErr != nil {
		return appErr
	}

	updated, err := h.uc.UpdateEmployee(c.Context(), id, in)
	if err != nil {
		return mapEmployeeUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, toEmployeeResponse(updated))
}

func (h *EmployeeHandler) Delete(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.DeleteEmployee(c.Context(), id); err != nil {
		return mapEmployeeUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *EmployeeHandler) bindEmployee(c fiber.Ctx) (usecase.EmployeeInput, *middleware.AppError) {
	var req employeeRequest
	if err := c.Bind().Body(&req); err != nil {
		return usecase.EmployeeInput{}, middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if err := validate.Struct(req); err != nil {
		return usecase.EmployeeInput{}, middleware.NewAppError(fiber.StatusBadRequest, "Invalid employee payload", nil, err)
	}

	var hireDate *time.Time
	if req.HireDate != "" {
		d, err := time.Parse("2006-01-02", req.HireDate)
		if err != nil {
			return usecase.EmployeeInput{}, middleware.NewAppError(fiber.StatusBadRequest, "Invalid hire date", nil, err)
		}
		hireDate = &d
	}

	return usecase.EmployeeInput{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		EmployeeID:       req.EmployeeID,
		Category:         req.Category,
		HireDate:         hireDate,
		DepartmentNumber: req.DepartmentNumber,
		Supervisor:       req.Supervisor,
		State:            req.State,
		Grade:            req.Grade,
		Email:            req.Email,
	}, nil
}

func toEmployeeResponse(it usecase.EmployeeItem) dto.EmployeeResponse {
	return dto.EmployeeResponse{
		ID:               it.ID,
		FirstName:        it.FirstName,
		LastName:         it.LastName,
		Name:             it.Name,
		EmployeeID:       it.EmployeeID,
		Category:         it.Category,
		HireDate:         it.HireDate,
		DepartmentNumber: it.DepartmentNumber,
		Supervisor:       it.Supervisor,
		State:            it.State,
		Grade:            it.Grade,
		Email:            it.Email,
	}
}

func mapEmployeeUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrEmployeeNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Employee not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

func queryInt(c fiber.Ctx, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
