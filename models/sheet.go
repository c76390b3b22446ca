package models

// Sheet is one tab of an imported spreadsheet: a header row plus data rows.
// Headers are taken exactly as uploaded (no trimming, no dedup); duplicate
// header names are allowed and resolved positionally, first match wins. Rows
// are ragged: a row may have fewer cells than there are columns.
type Sheet struct {
	Name    string     `json:"name"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"data"`
}

// ExcelData is the spreadsheet snapshot captured into a template at save
// time: the columns and rows of the selected sheet plus its name. JSON field
// names match the persisted template schema.
type ExcelData struct {
	Columns       []string   `json:"columns"`
	Rows          [][]string `json:"data"`
	SelectedSheet string     `json:"selectedSheet"`
}
