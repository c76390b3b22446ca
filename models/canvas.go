package models

import "github.com/google/uuid"

// Defaults applied by NewCanvasData and AddElement.
const (
	DefaultCanvasWidth  = 800
	DefaultCanvasHeight = 600
	DefaultBackground   = "#ffffff"
)

// CanvasData is the complete layout of a certificate: canvas dimensions,
// background, and the ordered element list. Element order is the z-order for
// rendering (later elements draw on top) and carries no other meaning.
type CanvasData struct {
	Width           float64       `json:"width"`
	Height          float64       `json:"height"`
	BackgroundColor string        `json:"backgroundColor"`
	BackgroundImage string        `json:"backgroundImage,omitempty"` // data URI
	Elements        []TextElement `json:"elements"`
}

// NewCanvasData returns an empty 800x600 canvas with a white background.
func NewCanvasData() CanvasData {
	return CanvasData{
		Width:           DefaultCanvasWidth,
		Height:          DefaultCanvasHeight,
		BackgroundColor: DefaultBackground,
		Elements:        []TextElement{},
	}
}

// AddElement appends a new text element with the stock defaults and returns it.
func (c *CanvasData) AddElement() TextElement {
	el := TextElement{
		ID:         uuid.NewString(),
		Text:       "Sample Text",
		X:          50,
		Y:          50,
		Width:      200,
		Height:     40,
		FontSize:   16,
		FontFamily: "Arial",
		Color:      "#000000",
	}
	c.Elements = append(c.Elements, el)
	return el
}

// UpdateElement merges the non-nil fields of upd into the element with the
// given id. An unknown id is a no-op.
func (c *CanvasData) UpdateElement(id string, upd ElementUpdate) {
	for i := range c.Elements {
		if c.Elements[i].ID != id {
			continue
		}
		el := &c.Elements[i]
		if upd.Text != nil {
			el.Text = *upd.Text
		}
		if upd.X != nil {
			el.X = *upd.X
		}
		if upd.Y != nil {
			el.Y = *upd.Y
		}
		if upd.Width != nil {
			el.Width = *upd.Width
		}
		if upd.Height != nil {
			el.Height = *upd.Height
		}
		if upd.FontSize != nil {
			el.FontSize = *upd.FontSize
		}
		if upd.FontFamily != nil {
			el.FontFamily = *upd.FontFamily
		}
		if upd.Color != nil {
			el.Color = *upd.Color
		}
		if upd.IsBold != nil {
			el.IsBold = *upd.IsBold
		}
		if upd.IsItalic != nil {
			el.IsItalic = *upd.IsItalic
		}
		if upd.MappedColumn != nil {
			el.MappedColumn = *upd.MappedColumn
		}
		return
	}
}

// RemoveElement deletes the element with the given id, preserving the order
// of the remaining elements. An unknown id is a no-op.
func (c *CanvasData) RemoveElement(id string) {
	for i := range c.Elements {
		if c.Elements[i].ID == id {
			c.Elements = append(c.Elements[:i], c.Elements[i+1:]...)
			return
		}
	}
}
