package handler

import (
	"errors"

	"skill-matrix/internal/delivery/http/dto"
	"skill-matrix/internal/delivery/http/middleware"
	"skill-matrix/internal/pkg/response"
	"skill-matrix/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type TeamHandler struct {
	uc usecase.TeamUsecase
}

type createTeamRequest struct {
	Name string `json:"name" validate:"required"`
}

type saveTeamMembersRequest struct {
	MemberIDs []string `json:"member_ids" validate:"required,dive,uuid"`
}

func NewTeamHandler(uc usecase.TeamUsecase) *TeamHandler {
	return &TeamHandler{uc: uc}
}

func (h *TeamHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/teams")
	grp.Get("/", h.List)
	grp.Post("/", h.Create)
	grp.Put("/:id/members", h.SaveMembers)
	grp.Delete("/:id", h.Delete)
}

func (h *TeamHandler) List(c fiber.Ctx) error {
	items, err := h.uc.ListTeams(c.Context())
	if err != nil {
		return mapTeamUsecaseError(err)
	}

	res := make([]dto.TeamResponse, 0, len(items))
	for _, it := range items {
		res = append(res, dto.TeamResponse{ID: it.ID, Name: it.Name, MemberIDs: it.MemberIDs})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *TeamHandler) Create(c fiber.Ctx) error {
	var req createTeamRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if err := validate.Struct(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid team payload", nil, err)
	}

	created, err := h.uc.CreateTeam(c.Context(), req.Name)
	if err != nil {
		return mapTeamUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.TeamResponse{
		ID:        created.ID,
		Name:      created.Name,
		MemberIDs: created.MemberIDs,
	})
}

func (h *TeamHandler) SaveMembers(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req saveTeamMembersRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if err := validate.Struct(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid member selection", nil, err)
	}

	updated, err := h.uc.SaveTeamMembers(c.Context(), id, req.MemberIDs)
	if err != nil {
		return mapTeamUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.TeamResponse{
		ID:        updated.ID,
		Name:      updated.Name,
		MemberIDs: updated.MemberIDs,
	})
}

func (h *TeamHandler) Delete(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.DeleteTeam(c.Context(), id); err != nil {
		return mapTeamUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func mapTeamUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrTeamNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Team not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
