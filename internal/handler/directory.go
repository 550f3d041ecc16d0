package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Furiouss38/podv2/internal/middleware"
	"github.com/Furiouss38/podv2/internal/service"
)

type DirectoryHandler struct {
	svc *service.DirectoryService
}

func NewDirectoryHandler(svc *service.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{svc: svc}
}

// ListOwners handles GET /api/owners
func (h *DirectoryHandler) ListOwners(c fiber.Ctx) error {
	owners, err := h.svc.ListOwners(c.Context())
	if err != nil {
		return writeError(c, err, "Owner", "list owners")
	}
	return c.JSON(owners)
}

// GetOwner handles GET /api/owners/:id
func (h *DirectoryHandler) GetOwner(c fiber.Ctx) error {
	id, errMsg := pathID(c)
	if errMsg != "" {
		return badRequest(c, errMsg)
	}
	owner, err := h.svc.GetOwner(c.Context(), id)
	if err != nil {
		return writeError(c, err, "Owner", "lookup owner")
	}
	return c.JSON(owner)
}

// CreateOwner handles POST /api/owners
func (h *DirectoryHandler) CreateOwner(c fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
	}
	if err := c.Bind().JSON(&req); err != nil {
		return invalidBody(c)
	}
	username, errMsg := middleware.ValidateName("username", req.Username)
	if errMsg != "" {
		return badRequest(c, errMsg)
	}

	owner, err := h.svc.CreateOwner(c.Context(), username)
	if err != nil {
		return writeError(c, err, "Owner", "create owner")
	}
	return c.Status(fiber.StatusCreated).JSON(owner)
}

// ListGroups handles GET /api/groups
func (h *DirectoryHandler) ListGroups(c fiber.Ctx) error {
	groups, err := h.svc.ListGroups(c.Context())
	if err != nil {
		return writeError(c, err, "Group", "list groups")
	}
	return c.JSON(groups)
}

// CreateGroup handles POST /api/groups
func (h *DirectoryHandler) CreateGroup(c fiber.Ctx) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind().JSON(&req); err != nil {
		return invalidBody(c)
	}
	name, errMsg := middleware.ValidateName("name", req.Name)
	if errMsg != "" {
		return badRequest(c, errMsg)
	}

	group, err := h.svc.CreateGroup(c.Context(), name)
	if err != nil {
		return writeError(c, err, "Group", "create group")
	}
	return c.Status(fiber.StatusCreated).JSON(group)
}
