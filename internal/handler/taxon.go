package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Furiouss38/podv2/internal/middleware"
	"github.com/Furiouss38/podv2/internal/model"
	"github.com/Furiouss38/podv2/internal/service"
)

// TaxonHandler serves one classification collection: /api/types or
// /api/disciplines.
type TaxonHandler struct {
	svc  *service.TaxonService
	name string
}

func NewTaxonHandler(svc *service.TaxonService, name string) *TaxonHandler {
	return &TaxonHandler{svc: svc, name: name}
}

func (h *TaxonHandler) List(c fiber.Ctx) error {
	items, err := h.svc.List(c.Context())
	if err != nil {
		return writeError(c, err, h.name, "list "+h.svc.Kind()+"s")
	}
	return c.JSON(items)
}

func (h *TaxonHandler) Get(c fiber.Ctx) error {
	id, errMsg := pathID(c)
	if errMsg != "" {
		return badRequest(c, errMsg)
	}
	t, err := h.svc.Get(c.Context(), id)
	if err != nil {
		return writeError(c, err, h.name, "lookup "+h.svc.Kind())
	}
	return c.JSON(t)
}

func (h *TaxonHandler) Create(c fiber.Ctx) error {
	var t model.Taxon
	if err := c.Bind().JSON(&t); err != nil {
		return invalidBody(c)
	}
	if errMsg := validateTaxon(&t); errMsg != "" {
		return badRequest(c, errMsg)
	}
	t.ID = 0
	if err := h.svc.Save(c.Context(), &t); err != nil {
		return writeError(c, err, h.name, "create "+h.svc.Kind())
	}
	return c.Status(fiber.StatusCreated).JSON(t)
}

func (h *TaxonHandler) Update(c fiber.Ctx) error {
	id, errMsg := pathID(c)
	if errMsg != "" {
		return badRequest(c, errMsg)
	}
	var t model.Taxon
	if err := c.Bind().JSON(&t); err != nil {
		return invalidBody(c)
	}
	if errMsg := validateTaxon(&t); errMsg != "" {
		return badRequest(c, errMsg)
	}
	t.ID = id
	if err := h.svc.Save(c.Context(), &t); err != nil {
		return writeError(c, err, h.name, "update "+h.svc.Kind())
	}
	return c.JSON(t)
}

func (h *TaxonHandler) Delete(c fiber.Ctx) error {
	id, errMsg := pathID(c)
	if errMsg != "" {
		return badRequest(c, errMsg)
	}
	if err := h.svc.Delete(c.Context(), id); err != nil {
		return writeError(c, err, h.name, "delete "+h.svc.Kind())
	}
	return c.JSON(fiber.Map{"success": true})
}

func validateTaxon(t *model.Taxon) string {
	title, errMsg := middleware.ValidateTitle(t.Title, middleware.MaxTitleLen)
	if errMsg != "" {
		return errMsg
	}
	t.Title = title
	return middleware.ValidateOptional("icon", t.Icon, middleware.MaxPathLen)
}
