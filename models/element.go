package models

// TextElement represents a positioned text field on a certificate canvas.
// Coordinates and sizes are absolute canvas units with the origin at the
// top-left corner. MappedColumn optionally binds the element to a spreadsheet
// column by header name; a mapping that does not resolve against the active
// sheet is inert and the literal Text is used instead.
type TextElement struct {
	ID           string  `json:"id"`
	Text         string  `json:"text"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	FontSize     float64 `json:"fontSize"`
	FontFamily   string  `json:"fontFamily"`
	Color        string  `json:"color"`
	IsBold       bool    `json:"isBold"`
	IsItalic     bool    `json:"isItalic"`
	MappedColumn string  `json:"mappedColumn,omitempty"`
}

// ElementUpdate carries a partial update for a TextElement. Nil fields are
// left untouched by CanvasData.UpdateElement.
type ElementUpdate struct {
	Text         *string  `json:"text,omitempty"`
	X            *float64 `json:"x,omitempty"`
	Y            *float64 `json:"y,omitempty"`
	Width        *float64 `json:"width,omitempty"`
	Height       *float64 `json:"height,omitempty"`
	FontSize     *float64 `json:"fontSize,omitempty"`
	FontFamily   *string  `json:"fontFamily,omitempty"`
	Color        *string  `json:"color,omitempty"`
	IsBold       *bool    `json:"isBold,omitempty"`
	IsItalic     *bool    `json:"isItalic,omitempty"`
	MappedColumn *string  `json:"mappedColumn,omitempty"`
}
