package handler

import (
	"skill-matrix/internal/delivery/http/dto"
	"skill-matrix/internal/delivery/http/middleware"
	"skill-matrix/internal/pkg/response"
	"skill-matrix/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ProgressHandler struct {
	uc usecase.ProgressUsecase
}

func NewProgressHandler(uc usecase.ProgressUsecase) *ProgressHandler {
	return &ProgressHandler{uc: uc}
}

func (h *ProgressHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/progress", h.Progress)
	r.Post("/snapshots", h.TakeSnapshot)
}

func (h *ProgressHandler) Progress(c fiber.Ctx) error {
	points := h.uc.FetchProgress(c.Context())

	res := make([]dto.ProgressPointResponse, 0, len(points))
	for _, p := range points {
		res = append(res, dto.ProgressPointResponse{TakenAt: p.TakenAt, Percent: p.Percent})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *ProgressHandler) TakeSnapshot(c fiber.Ctx) error {
	if ok := h.uc.TakeSnapshot(c.Context()); !ok {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, nil)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}
