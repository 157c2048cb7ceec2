package layout

// Template is a hand-authored, named layout served by the template catalog.
type Template struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Layout      Layout `json:"layout"`
}

// Templates returns the built-in template catalog. The slice is rebuilt on
// every call so callers may mutate their copy freely.
func Templates() []Template {
	return []Template{
		{
			ID:          "classic",
			Name:        "Classic",
			Description: "Traditional centered receipt layout",
			Layout: Layout{
				Page: Page{Width: 384, Padding: 20},
				Header: Header{
					Alignment:  "center",
					FontSize:   22,
					FontWeight: "bold",
					Fields:     []string{FieldBusinessName, FieldBusinessAddress, FieldBusinessPhone, FieldBusinessEmail},
				},
				Table: Table{
					Columns: []Column{
						{Label: "Item", Width: 45, Alignment: "left"},
						{Label: "Qty", Width: 15, Alignment: "center"},
						{Label: "Price", Width: 20, Alignment: "right"},
						{Label: "Total", Width: 20, Alignment: "right"},
					},
					RowHeight:  22,
					HeaderBold: true,
				},
				Totals: Totals{Position: "right", FontSize: 14, Fields: []string{"subtotal", "tax", "total"}},
				Footer: Footer{Text: "Thank you for your business!", FontSize: 12, Alignment: "center"},
				Colors: &Colors{Primary: "#000000", Secondary: "#666666", Text: "#000000"},
				Fonts:  &Fonts{Primary: "Inter", Secondary: "Inter"},
			},
		},
		{
			ID:          "modern",
			Name:        "Modern",
			Description: "Clean and minimal with accent colors",
			Layout: Layout{
				Page: Page{Width: 384, Padding: 24},
				Header: Header{
					Alignment:  "left",
					FontSize:   24,
					FontWeight: "bold",
					Fields:     []string{FieldBusinessName, FieldBusinessAddress, FieldBusinessPhone},
				},
				Table: Table{
					Columns: []Column{
						{Label: "Description", Width: 50, Alignment: "left"},
						{Label: "Qty", Width: 12, Alignment: "center"},
						{Label: "Rate", Width: 18, Alignment: "right"},
						{Label: "Amount", Width: 20, Alignment: "right"},
					},
					RowHeight:   24,
					ShowBorders: true,
					HeaderBold:  true,
				},
				Totals: Totals{Position: "right", FontSize: 15, Fields: []string{"subtotal", "tax", "total"}},
				Footer: Footer{Text: "We appreciate your business!", FontSize: 11, Alignment: "center"},
				Colors: &Colors{Primary: "#2563eb", Secondary: "#64748b", Text: "#1e293b"},
				Fonts:  &Fonts{Primary: "Inter", Secondary: "Inter"},
			},
		},
		{
			ID:          "elegant",
			Name:        "Elegant",
			Description: "Sophisticated with refined typography",
			Layout: Layout{
				Page: Page{Width: 384, Padding: 28},
				Header: Header{
					Alignment:    "center",
					FontSize:     26,
					FontWeight:   "bold",
					Fields:       []string{FieldBusinessName, FieldBusinessAddress, FieldBusinessPhone, FieldBusinessEmail},
					LogoPosition: "top",
				},
				Table: Table{
					Columns: []Column{
						{Label: "Item", Width: 48, Alignment: "left"},
						{Label: "Qty", Width: 12, Alignment: "center"},
						{Label: "Price", Width: 20, Alignment: "right"},
						{Label: "Total", Width: 20, Alignment: "right"},
					},
					RowHeight:  26,
					HeaderBold: true,
				},
				Totals: Totals{Position: "right", FontSize: 14, Fields: []string{"subtotal", "tax", "total"}},
				Footer: Footer{Text: "Thank you for choosing us", FontSize: 13, Alignment: "center"},
				Colors: &Colors{Primary: "#1a1a2e", Secondary: "#4a4e69", Text: "#1a1a2e"},
				Fonts:  &Fonts{Primary: "Playfair Display", Secondary: "Inter"},
			},
		},
		{
			ID:          "compact",
			Name:        "Compact",
			Description: "Space-efficient for thermal printers",
			Layout: Layout{
				Page: Page{Width: 300, Padding: 12},
				Header: Header{
					Alignment:  "center",
					FontSize:   16,
					FontWeight: "bold",
					Fields:     []string{FieldBusinessName, FieldBusinessPhone},
				},
				Table: Table{
					Columns: []Column{
						{Label: "Item", Width: 50, Alignment: "left"},
						{Label: "Qty", Width: 15, Alignment: "center"},
						{Label: "Price", Width: 17, Alignment: "right"},
						{Label: "Total", Width: 18, Alignment: "right"},
					},
					RowHeight:  18,
					HeaderBold: true,
				},
				Totals: Totals{Position: "right", FontSize: 12, Fields: []string{"subtotal", "tax", "total"}},
				Footer: Footer{Text: "Thanks!", FontSize: 10, Alignment: "center"},
				Colors: &Colors{Primary: "#000000", Secondary: "#333333", Text: "#000000"},
				Fonts:  &Fonts{Primary: "Courier New", Secondary: "Courier New"},
			},
		},
		{
			ID:          "retail",
			Name:        "Retail",
			Description: "Perfect for stores and shops",
			Layout: Layout{
				Page: Page{Width: 384, Padding: 20},
				Header: Header{
					Alignment:    "center",
					FontSize:     20,
					FontWeight:   "bold",
					Fields:       []string{FieldBusinessName, FieldBusinessAddress, FieldBusinessPhone},
					LogoPosition: "top",
				},
				Table: Table{
					Columns: []Column{
						{Label: "Product", Width: 45, Alignment: "left"},
						{Label: "Qty", Width: 15, Alignment: "center"},
						{Label: "Unit $", Width: 20, Alignment: "right"},
						{Label: "Total", Width: 20, Alignment: "right"},
					},
					RowHeight:   22,
					ShowBorders: true,
					HeaderBold:  true,
				},
				Totals: Totals{Position: "right", FontSize: 14, Fields: []string{"subtotal", "tax", "total"}},
				Footer: Footer{Text: "Thank you for shopping with us!", FontSize: 11, Alignment: "center"},
				Colors: &Colors{Primary: "#16a34a", Secondary: "#4b5563", Text: "#111827"},
				Fonts:  &Fonts{Primary: "Inter", Secondary: "Inter"},
			},
		},
		{
			ID:          "restaurant",
			Name:        "Restaurant",
			Description: "Ideal for food service",
			Layout: Layout{
				Page: Page{Width: 384, Padding: 20},
				Header: Header{
					Alignment:  "center",
					FontSize:   22,
					FontWeight: "bold",
					Fields:     []string{FieldBusinessName, FieldBusinessAddress, FieldBusinessPhone},
				},
				Table: Table{
					Columns: []Column{
						{Label: "Item", Width: 55, Alignment: "left"},
						{Label: "Qty", Width: 10, Alignment: "center"},
						{Label: "Price", Width: 17, Alignment: "right"},
						{Label: "Total", Width: 18, Alignment: "right"},
					},
					RowHeight:  24,
					HeaderBold: true,
				},
				Totals: Totals{Position: "right", FontSize: 14, Fields: []string{"subtotal", "tax", "total"}},
				Footer: Footer{Text: "Thank you! Please come again!", FontSize: 12, Alignment: "center"},
				Colors: &Colors{Primary: "#dc2626", Secondary: "#78716c", Text: "#1c1917"},
				Fonts:  &Fonts{Primary: "Inter", Secondary: "Inter"},
			},
		},
		{
			ID:          "professional",
			Name:        "Professional",
			Description: "Corporate and business services",
			Layout: Layout{
				Page: Page{Width: 420, Padding: 30},
				Header: Header{
					Alignment:    "left",
					FontSize:     24,
					FontWeight:   "bold",
					Fields:       []string{FieldBusinessName, FieldBusinessAddress, FieldBusinessPhone, FieldBusinessEmail},
					LogoPosition: "left",
				},
				Table: Table{
					Columns: []Column{
						{Label: "Service", Width: 45, Alignment: "left"},
						{Label: "Hours", Width: 15, Alignment: "center"},
						{Label: "Rate", Width: 20, Alignment: "right"},
						{Label: "Amount", Width: 20, Alignment: "right"},
					},
					RowHeight:   26,
					ShowBorders: true,
					HeaderBold:  true,
				},
				Totals: Totals{Position: "right", FontSize: 15, Fields: []string{"subtotal", "tax", "total"}},
				Footer: Footer{Text: "Payment due within 30 days. Thank you!", FontSize: 11, Alignment: "center"},
				Colors: &Colors{Primary: "#0f172a", Secondary: "#475569", Text: "#0f172a"},
				Fonts:  &Fonts{Primary: "Inter", Secondary: "Inter"},
			},
		},
	}
}

// TemplateByID returns the catalog entry with the given id.
func TemplateByID(id string) (Template, bool) {
	for _, t := range Templates() {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}
