package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"certcraft/api-gateway/internal/importer"
	"certcraft/api-gateway/utils"
)

// ImportSpreadsheet godoc
// @Summary Parse an uploaded spreadsheet into sheets
// @Description Accepts a multipart "file" field, parses it as a workbook and returns the sheets. When the workbook has exactly one usable sheet it is pre-selected.
// @Tags spreadsheets
// @Accept mpfd
// @Produce json
// @Success 200
// @Failure 400
// @Router /spreadsheets/import [post]
func (h *ApplicationHandler) ImportSpreadsheet(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Error getting file: %v", err))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusInternalServerError, fmt.Sprintf("Error opening file: %v", err))
	}
	defer file.Close()

	sheets, err := importer.Parse(file)
	if err != nil {
		var parseErr *importer.ParseError
		if errors.As(err, &parseErr) {
			return utils.RespondWithError(c, fiber.StatusBadRequest, parseErr.Error())
		}
		h.Logger.WithField("error", err.Error()).Error("Failed to parse spreadsheet")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, fmt.Sprintf("Could not parse spreadsheet: %v", err))
	}

	h.Logger.WithFields(map[string]interface{}{
		"filename": fileHeader.Filename,
		"sheets":   len(sheets),
	}).Info("Spreadsheet imported")

	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{
		"sheets":         sheets,
		"selected_sheet": importer.AutoSelect(sheets),
	})
}
