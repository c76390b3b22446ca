package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"certcraft/api-gateway/internal/store"
	"certcraft/api-gateway/middleware"
	"certcraft/api-gateway/models"
	"certcraft/api-gateway/utils"
)

// CreateTemplateRequest is the body for saving a template: a name plus the
// canvas layout and the spreadsheet snapshot captured at save time.
type CreateTemplateRequest struct {
	Name       string            `json:"name" validate:"required"`
	CanvasData models.CanvasData `json:"canvas_data"`
	ExcelData  models.ExcelData  `json:"excel_data"`
}

// CreateTemplate godoc
// @Summary Save a certificate template
// @Description Persists the canvas layout and spreadsheet snapshot under the calling user.
// @Tags templates
// @Accept json
// @Produce json
// @Param template body CreateTemplateRequest true "Template to save"
// @Success 201 {object} models.Template
// @Router /templates [post]
func (h *ApplicationHandler) CreateTemplate(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return utils.RespondWithError(c, fiber.StatusUnauthorized, "not authenticated")
	}

	req := new(CreateTemplateRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse template JSON: %v", err))
	}
	if err := h.Validate.Struct(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, strings.Join(utils.FormatValidationErrors(err), "; "))
	}

	tpl, err := h.Store.Create(c.Context(), user.ID, req.Name, req.CanvasData, req.ExcelData)
	if err != nil {
		h.Logger.WithField("error", err.Error()).Error("Failed to create template")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, fmt.Sprintf("Could not save template: %v", err))
	}

	h.Logger.WithFields(map[string]interface{}{"template_id": tpl.ID, "owner": user.ID}).Info("Template created")
	return utils.RespondWithJSON(c, fiber.StatusCreated, tpl)
}

// ListTemplates godoc
// @Summary List the calling user's templates
// @Produce json
// @Success 200 {array} models.Template
// @Router /templates [get]
func (h *ApplicationHandler) ListTemplates(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return utils.RespondWithError(c, fiber.StatusUnauthorized, "not authenticated")
	}

	templates, err := h.Store.List(c.Context(), user.ID)
	if err != nil {
		h.Logger.WithField("error", err.Error()).Error("Failed to list templates")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, fmt.Sprintf("Could not retrieve templates: %v", err))
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, templates)
}

// DeleteTemplate godoc
// @Summary Delete one of the calling user's templates
// @Produce json
// @Param id path string true "Template ID"
// @Success 200
// @Failure 404
// @Router /templates/{id} [delete]
func (h *ApplicationHandler) DeleteTemplate(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return utils.RespondWithError(c, fiber.StatusUnauthorized, "not authenticated")
	}
	templateID := c.Params("id")

	if err := h.Store.Delete(c.Context(), templateID, user.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return utils.RespondWithError(c, fiber.StatusNotFound, fmt.Sprintf("Template %s not found", templateID))
		}
		h.Logger.WithField("error", err.Error()).Error("Failed to delete template")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, fmt.Sprintf("Could not delete template: %v", err))
	}

	// Any open generation session on this template goes back to the
	// selection list.
	h.Sessions.DropTemplate(templateID)

	h.Logger.WithFields(map[string]interface{}{"template_id": templateID, "owner": user.ID}).Info("Template deleted")
	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{"id": templateID})
}
