package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"partner-quadrant-service/internal/app/service"
	"partner-quadrant-service/internal/domain"
	"partner-quadrant-service/internal/transport/httpserver/dto"
	"partner-quadrant-service/internal/validator"
)

// PartnerHandler handles partner CRUD and score requests.
type PartnerHandler struct {
	service   *service.PartnerService
	validator *validator.Validator
	logger    *zap.Logger
}

// NewPartnerHandler creates a new PartnerHandler.
func NewPartnerHandler(svc *service.PartnerService, v *validator.Validator, logger *zap.Logger) *PartnerHandler {
	return &PartnerHandler{
		service:   svc,
		validator: v,
		logger:    logger,
	}
}

// List handles GET /api/v1/partners
func (h *PartnerHandler) List(c *fiber.Ctx) error {
	partners, err := h.service.List(c.UserContext())
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, CodeInternal, "failed to list partners", nil)
	}

	return c.JSON(dto.FromDomainPartners(partners))
}

// Get handles GET /api/v1/partners/:id
func (h *PartnerHandler) Get(c *fiber.Ctx) error {
	id, ok := partnerID(c)
	if !ok {
		return respondError(c, fiber.StatusBadRequest, CodeInvalidID, "id must be a UUID", nil)
	}

	partner, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return h.serviceError(c, err)
	}

	return c.JSON(dto.FromDomainPartner(partner))
}

// Create handles POST /api/v1/partners
func (h *PartnerHandler) Create(c *fiber.Ctx) error {
	req, ok, err := h.bind(c)
	if !ok {
		return err
	}

	partner := req.ToDomain()
	if err := h.service.Create(c.UserContext(), partner); err != nil {
		return h.serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.FromDomainPartner(partner))
}

// Update handles PUT /api/v1/partners/:id
func (h *PartnerHandler) Update(c *fiber.Ctx) error {
	id, ok := partnerID(c)
	if !ok {
		return respondError(c, fiber.StatusBadRequest, CodeInvalidID, "id must be a UUID", nil)
	}

	req, ok, err := h.bind(c)
	if !ok {
		return err
	}

	partner, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return h.serviceError(c, err)
	}

	req.Apply(partner)
	if err := h.service.Update(c.UserContext(), partner); err != nil {
		return h.serviceError(c, err)
	}

	return c.JSON(dto.FromDomainPartner(partner))
}

// Delete handles DELETE /api/v1/partners/:id
func (h *PartnerHandler) Delete(c *fiber.Ctx) error {
	id, ok := partnerID(c)
	if !ok {
		return respondError(c, fiber.StatusBadRequest, CodeInvalidID, "id must be a UUID", nil)
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return h.serviceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Score handles GET /api/v1/partners/:id/score
func (h *PartnerHandler) Score(c *fiber.Ctx) error {
	id, ok := partnerID(c)
	if !ok {
		return respondError(c, fiber.StatusBadRequest, CodeInvalidID, "id must be a UUID", nil)
	}

	partner, explanation, err := h.service.Explain(c.UserContext(), id)
	if err != nil {
		return h.serviceError(c, err)
	}

	return c.JSON(dto.FromScoreExplanation(partner, explanation))
}

// bind parses and validates the request body. When ok is false the error
// response has already been written and err is its result.
func (h *PartnerHandler) bind(c *fiber.Ctx) (req dto.PartnerRequest, ok bool, err error) {
	if err := c.BodyParser(&req); err != nil {
		return req, false, respondError(c, fiber.StatusBadRequest, CodeInvalidParams, "invalid request body", nil)
	}

	if err := h.validator.Validate(&req); err != nil {
		return req, false, respondError(c, fiber.StatusBadRequest, CodeValidation, "validation failed", err)
	}

	return req, true, nil
}

func (h *PartnerHandler) serviceError(c *fiber.Ctx, err error) error {
	var ve *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrPartnerNotFound):
		return respondError(c, fiber.StatusNotFound, CodeNotFound, "partner not found", nil)
	case errors.As(err, &ve):
		return respondError(c, fiber.StatusBadRequest, CodeValidation, ve.Error(), fiber.Map{
			"field":  ve.Field,
			"reason": ve.Reason,
		})
	default:
		h.logger.Error("partner request failed",
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return respondError(c, fiber.StatusInternalServerError, CodeInternal, "internal error", nil)
	}
}
