package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"certcraft/api-gateway/internal/export"
	"certcraft/api-gateway/internal/fill"
	"certcraft/api-gateway/internal/generate"
	"certcraft/api-gateway/internal/render"
	"certcraft/api-gateway/middleware"
	"certcraft/api-gateway/utils"
)

// OpenSessionRequest selects a template to generate certificates from.
type OpenSessionRequest struct {
	TemplateID string `json:"template_id" validate:"required"`
}

// SearchRequest filters the session's spreadsheet rows.
type SearchRequest struct {
	Term string `json:"term"`
}

// SetFieldRequest is a manual edit of one element's display value.
type SetFieldRequest struct {
	ElementID string `json:"element_id" validate:"required"`
	Value     string `json:"value"`
}

// ExportRequest picks the download format.
type ExportRequest struct {
	Format string `json:"format" validate:"required,oneof=pdf png jpg"`
}

// OpenSession godoc
// @Summary Start a generation session for a template
// @Description Loads the template and seeds a fresh fill state from its element texts. Re-selecting a template always starts clean.
// @Tags generate
// @Accept json
// @Produce json
// @Success 201 {object} generate.View
// @Router /generate/sessions [post]
func (h *ApplicationHandler) OpenSession(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return utils.RespondWithError(c, fiber.StatusUnauthorized, "not authenticated")
	}

	req := new(OpenSessionRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse session JSON: %v", err))
	}
	if err := h.Validate.Struct(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, strings.Join(utils.FormatValidationErrors(err), "; "))
	}

	templates, err := h.Store.List(c.Context(), user.ID)
	if err != nil {
		h.Logger.WithField("error", err.Error()).Error("Failed to load templates for session")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, fmt.Sprintf("Could not load template: %v", err))
	}
	for _, tpl := range templates {
		if tpl.ID == req.TemplateID {
			session := h.Sessions.Open(user.ID, tpl)
			return utils.RespondWithJSON(c, fiber.StatusCreated, session.Snapshot())
		}
	}
	return utils.RespondWithError(c, fiber.StatusNotFound, fmt.Sprintf("Template %s not found", req.TemplateID))
}

// SearchSessionRows filters the session's spreadsheet rows by a substring
// term. A blank term clears the results instead of matching everything.
func (h *ApplicationHandler) SearchSessionRows(c *fiber.Ctx) error {
	session, ok := h.session(c)
	if !ok {
		return nil
	}

	req := new(SearchRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse search JSON: %v", err))
	}

	results, visible := session.Search(req.Term)
	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{
		"results":         results,
		"results_visible": visible,
	})
}

// SelectSessionRow applies a search result row to the fill state. Only
// elements whose mapped column has a non-empty cell in that row change.
func (h *ApplicationHandler) SelectSessionRow(c *fiber.Ctx) error {
	session, ok := h.session(c)
	if !ok {
		return nil
	}

	index, err := c.ParamsInt("index")
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "row index must be an integer")
	}
	fields, err := session.SelectRow(index)
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusNotFound, err.Error())
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{"field_values": fields})
}

// SetSessionField records a manual edit of one field.
func (h *ApplicationHandler) SetSessionField(c *fiber.Ctx) error {
	session, ok := h.session(c)
	if !ok {
		return nil
	}

	req := new(SetFieldRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse field JSON: %v", err))
	}
	if err := h.Validate.Struct(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, strings.Join(utils.FormatValidationErrors(err), "; "))
	}

	fields := session.SetField(req.ElementID, req.Value)
	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{"field_values": fields})
}

// PreviewSession returns the 0.6-scale canvas together with the current
// display value of every element, ready for on-screen editing.
func (h *ApplicationHandler) PreviewSession(c *fiber.Ctx) error {
	session, ok := h.session(c)
	if !ok {
		return nil
	}

	canvas := session.Template().CanvasData
	values := session.FieldValues()
	displays := make(map[string]string, len(canvas.Elements))
	for _, el := range canvas.Elements {
		displays[fill.Key(el.ID)] = fill.Display(el, values)
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{
		"canvas":       render.Preview(canvas),
		"field_values": displays,
	})
}

// ExportSession rasterizes the full-scale canvas with the current fill state
// and streams it back as an attachment named certificate.<ext>.
func (h *ApplicationHandler) ExportSession(c *fiber.Ctx) error {
	session, ok := h.session(c)
	if !ok {
		return nil
	}

	req := new(ExportRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse export JSON: %v", err))
	}
	if err := h.Validate.Struct(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, strings.Join(utils.FormatValidationErrors(err), "; "))
	}

	img, err := render.Rasterize(render.ExportSource(session.Template().CanvasData), session.FieldValues())
	if err != nil {
		h.Logger.WithField("error", err.Error()).Error("Failed to rasterize certificate")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, fmt.Sprintf("Could not generate certificate: %v", err))
	}
	data, err := export.Encode(img, req.Format)
	if err != nil {
		h.Logger.WithField("error", err.Error()).Error("Failed to encode certificate")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, fmt.Sprintf("Could not generate certificate: %v", err))
	}

	filename := export.Filename(req.Format)
	c.Set(fiber.HeaderContentType, export.ContentType(req.Format))
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Status(fiber.StatusOK).Send(data)
}

// CloseSession discards a generation session.
func (h *ApplicationHandler) CloseSession(c *fiber.Ctx) error {
	if _, ok := h.session(c); !ok {
		return nil
	}
	h.Sessions.Close(c.Params("id"))
	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{"id": c.Params("id")})
}

// session resolves the :id path parameter to the caller's session. On
// failure the error response has already been written and ok is false.
func (h *ApplicationHandler) session(c *fiber.Ctx) (*generate.Session, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		_ = utils.RespondWithError(c, fiber.StatusUnauthorized, "not authenticated")
		return nil, false
	}
	session, err := h.Sessions.Get(c.Params("id"), user.ID)
	if err != nil {
		if errors.Is(err, generate.ErrNoSession) {
			_ = utils.RespondWithError(c, fiber.StatusNotFound, err.Error())
		} else {
			_ = utils.RespondWithError(c, fiber.StatusInternalServerError, err.Error())
		}
		return nil, false
	}
	return session, true
}
