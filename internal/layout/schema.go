package layout

// Layout is the declarative description of a receipt's visual structure.
// It is produced by the extraction service, a built-in template, or the
// hardcoded default, and consumed verbatim by the renderer.
type Layout struct {
	Page   Page    `json:"page"`
	Header Header  `json:"header"`
	Table  Table   `json:"table"`
	Totals Totals  `json:"totals"`
	Footer Footer  `json:"footer"`
	Colors *Colors `json:"colors,omitempty"`
	Fonts  *Fonts  `json:"fonts,omitempty"`
}

type Page struct {
	Width   float64 `json:"width"`
	Padding float64 `json:"padding"`
}

type Header struct {
	Alignment  string   `json:"alignment"`
	FontSize   float64  `json:"fontSize"`
	FontWeight string   `json:"fontWeight"`
	Fields     []string `json:"fields"`
	// LogoPosition is one of top, left, right when set.
	LogoPosition string `json:"logoPosition,omitempty"`
}

type Column struct {
	Label string  `json:"label"`
	Width float64 `json:"width"`
	// Alignment falls back to left when empty.
	Alignment string `json:"alignment,omitempty"`
}

type Table struct {
	// Columns carry author-supplied widths as percentages. They are not
	// validated to sum to 100 and are never normalized.
	Columns     []Column `json:"columns"`
	RowHeight   float64  `json:"rowHeight"`
	ShowBorders bool     `json:"showBorders"`
	HeaderBold  bool     `json:"headerBold"`
}

type Totals struct {
	Position string   `json:"position"`
	FontSize float64  `json:"fontSize"`
	Fields   []string `json:"fields"`
}

type Footer struct {
	Text      string  `json:"text"`
	FontSize  float64 `json:"fontSize,omitempty"`
	Alignment string  `json:"alignment,omitempty"`
}

type Colors struct {
	Primary   string `json:"primary,omitempty"`
	Secondary string `json:"secondary,omitempty"`
	Text      string `json:"text,omitempty"`
}

type Fonts struct {
	Primary   string `json:"primary,omitempty"`
	Secondary string `json:"secondary,omitempty"`
}

// Header field identifiers understood by the renderer.
const (
	FieldBusinessName    = "businessName"
	FieldBusinessAddress = "businessAddress"
	FieldBusinessPhone   = "businessPhone"
	FieldBusinessEmail   = "businessEmail"
)

// Valid returns false when a required top-level section is missing. Callers
// are expected to substitute Default() rather than surface an error.
func (l Layout) Valid() bool {
	return l.Page.Width > 0 && len(l.Header.Fields) > 0 && len(l.Table.Columns) > 0
}

// Default returns the fallback layout used whenever no usable layout is
// available: a 384px thermal-style receipt with a centered bold header.
func Default() Layout {
	return Layout{
		Page: Page{Width: 384, Padding: 20},
		Header: Header{
			Alignment:  "center",
			FontSize:   20,
			FontWeight: "bold",
			Fields:     []string{FieldBusinessName, FieldBusinessAddress, FieldBusinessPhone, FieldBusinessEmail},
		},
		Table: Table{
			Columns: []Column{
				{Label: "Item", Width: 50, Alignment: "left"},
				{Label: "Qty", Width: 15, Alignment: "center"},
				{Label: "Price", Width: 17, Alignment: "right"},
				{Label: "Total", Width: 18, Alignment: "right"},
			},
			RowHeight:   20,
			ShowBorders: false,
			HeaderBold:  true,
		},
		Totals: Totals{Position: "right", FontSize: 14, Fields: []string{"subtotal", "tax", "total"}},
		Footer: Footer{Text: "Thank you for your business!", FontSize: 12, Alignment: "center"},
		Colors: &Colors{Primary: "#000000", Secondary: "#666666", Text: "#000000"},
		Fonts:  &Fonts{Primary: "Inter", Secondary: "Inter"},
	}
}
