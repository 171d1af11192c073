package handler

import (
	"skill-matrix/internal/delivery/http/dto"
	"skill-matrix/internal/delivery/http/middleware"
	"skill-matrix/internal/pkg/response"
	"skill-matrix/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type SkillHandler struct {
	uc usecase.SkillCatalogUsecase
}

type addSkillRequest struct {
	Name        string `json:"name" validate:"required"`
	CategoryID  string `json:"category_id" validate:"required"`
	TargetLevel int    `json:"target_level" validate:"min=0,max=4"`
}

type updateSkillRequest struct {
	Name        string `json:"name" validate:"required"`
	CategoryID  string `json:"category_id" validate:"required"`
	TargetLevel int    `json:"target_level" validate:"min=0,max=4"`
}

func NewSkillHandler(uc usecase.SkillCatalogUsecase) *SkillHandler {
	return &SkillHandler{uc: uc}
}

func (h *SkillHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/skills")
	grp.Get("/", h.List)
	grp.Get("/categories", h.ListCategories)
	grp.Post("/", h.Add)
	grp.Put("/:id", h.Update)
	grp.Delete("/:id", h.Delete)
}

func (h *SkillHandler) List(c fiber.Ctx) error {
	items := h.uc.FetchSkills(c.Context())

	res := make([]dto.SkillResponse, 0, len(items))
	for _, it := range items {
		res = append(res, dto.SkillResponse{
			ID:          it.ID,
			Name:        it.Name,
			CategoryID:  it.CategoryID,
			TargetLevel: it.TargetLevel,
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *SkillHandler) ListCategories(c fiber.Ctx) error {
	items := h.uc.FetchSkillCategories(c.Context())

	res := make([]dto.SkillCategoryResponse, 0, len(items))
	for _, it := range items {
		res = append(res, dto.SkillCategoryResponse{ID: it.ID, Name: it.Name})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *SkillHandler) Add(c fiber.Ctx) error {
	var req addSkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if err := validate.Struct(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid skill payload", nil, err)
	}

	if ok := h.uc.AddNewSkill(c.Context(), req.Name, req.CategoryID, req.TargetLevel); !ok {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, nil)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *SkillHandler) Update(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, nil)
	}

	var req updateSkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if err := validate.Struct(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid skill payload", nil, err)
	}

	if ok := h.uc.UpdateSkill(c.Context(), id, req.Name, req.CategoryID, req.TargetLevel); !ok {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, nil)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *SkillHandler) Delete(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, nil)
	}

	if ok := h.uc.DeleteSkill(c.Context(), id); !ok {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, nil)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}
