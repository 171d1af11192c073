package handler

import (
	"skill-matrix/internal/delivery/http/middleware"
	"skill-matrix/internal/pkg/response"
	"skill-matrix/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type MatrixHandler struct {
	uc usecase.MatrixSyncUsecase
}

type updateLevelRequest struct {
	EmployeeID uuid.UUID `json:"employee_id" validate:"required"`
	SkillID    string    `json:"skill_id" validate:"required"`
	Level      int       `json:"level" validate:"min=0,max=4"`
}

func NewMatrixHandler(uc usecase.MatrixSyncUsecase) *MatrixHandler {
	return &MatrixHandler{uc: uc}
}

func (h *MatrixHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/matrix")
	grp.Put("/levels", h.UpdateLevel)
}

func (h *MatrixHandler) UpdateLevel(c fiber.Ctx) error {
	var req updateLevelRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if err := validate.Struct(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid level payload", nil, err)
	}
	if req.EmployeeID == uuid.Nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, nil)
	}

	ok := h.uc.UpdateEmployeeSkill(c.Context(), usecase.SkillAssignment{
		EmployeeID: req.EmployeeID,
		SkillID:    req.SkillID,
		Level:      req.Level,
	})
	if !ok {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, nil)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}
