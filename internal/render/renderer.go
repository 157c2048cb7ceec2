package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/reciply/reciply/internal/layout"
)

// BusinessInfo is the merchant block printed in the receipt header.
type BusinessInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	LogoURL string `json:"logoUrl,omitempty"`
}

// Item is one receipt line. Total is caller-computed and rendered as-is.
type Item struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Total    float64 `json:"total"`
}

// Data carries the values populated into a layout.
type Data struct {
	BusinessInfo  BusinessInfo `json:"businessInfo"`
	Items         []Item       `json:"items"`
	Subtotal      float64      `json:"subtotal"`
	Tax           float64      `json:"tax"`
	Total         float64      `json:"total"`
	ReceiptNumber string       `json:"receiptNumber,omitempty"`
	Date          string       `json:"date,omitempty"`
	Notes         string       `json:"notes,omitempty"`
}

// Renderer maps a layout plus receipt data onto a self-contained document.
type Renderer interface {
	Render(l layout.Layout, d Data) (string, error)
}

type htmlRenderer struct {
	tpl *template.Template
}

// NewHTMLRenderer builds the HTML receipt renderer. Rendering is pure and
// deterministic: identical inputs produce byte-identical markup.
func NewHTMLRenderer() (Renderer, error) {
	tpl, err := template.New("receipt").Funcs(template.FuncMap{
		"money": func(v float64) string {
			return fmt.Sprintf("$%.2f", v)
		},
		"scale": func(v, factor float64) float64 {
			return v * factor
		},
		"addf": func(a, b float64) float64 {
			return a + b
		},
		"inc": func(i int) int {
			return i + 1
		},
		"css": func(s string) template.CSS {
			return template.CSS(s)
		},
	}).Parse(receiptHTMLTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse receipt template: %w", err)
	}
	return &htmlRenderer{tpl: tpl}, nil
}

type viewModel struct {
	Layout layout.Layout
	Data   Data

	PrimaryColor   string
	SecondaryColor string
	TextColor      string
	PrimaryFont    string

	FooterText      string
	FooterFontSize  float64
	FooterAlignment string

	ReceiptNumber string
}

func (r *htmlRenderer) Render(l layout.Layout, d Data) (string, error) {
	vm := viewModel{
		Layout:          l,
		Data:            d,
		PrimaryColor:    "#000000",
		SecondaryColor:  "#666666",
		TextColor:       "#000000",
		PrimaryFont:     "Inter",
		FooterText:      l.Footer.Text,
		FooterFontSize:  12,
		FooterAlignment: "center",
		ReceiptNumber:   d.ReceiptNumber,
	}
	if l.Colors != nil {
		if l.Colors.Primary != "" {
			vm.PrimaryColor = l.Colors.Primary
		}
		if l.Colors.Secondary != "" {
			vm.SecondaryColor = l.Colors.Secondary
		}
		if l.Colors.Text != "" {
			vm.TextColor = l.Colors.Text
		}
	}
	if l.Fonts != nil && l.Fonts.Primary != "" {
		vm.PrimaryFont = l.Fonts.Primary
	}
	if l.Footer.FontSize > 0 {
		vm.FooterFontSize = l.Footer.FontSize
	}
	if l.Footer.Alignment != "" {
		vm.FooterAlignment = l.Footer.Alignment
	}
	if vm.FooterText == "" {
		vm.FooterText = "Thank you for your business!"
	}
	if vm.ReceiptNumber == "" {
		vm.ReceiptNumber = "N/A"
	}

	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, vm); err != nil {
		return "", fmt.Errorf("render receipt: %w", err)
	}
	return buf.String(), nil
}

const receiptHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <style>
    * {
      margin: 0;
      padding: 0;
      box-sizing: border-box;
    }

    body {
      font-family: '{{css .PrimaryFont}}', sans-serif;
      color: {{css .TextColor}};
      width: {{.Layout.Page.Width}}px;
      padding: {{.Layout.Page.Padding}}px;
      background: white;
    }

    .header {
      text-align: {{css .Layout.Header.Alignment}};
      margin-bottom: 20px;
    }

    .logo {
      max-width: 120px;
      max-height: 80px;
      margin-bottom: 10px;
    }

    .business-name {
      font-size: {{.Layout.Header.FontSize}}px;
      font-weight: {{css .Layout.Header.FontWeight}};
      margin-bottom: 8px;
      color: {{css .PrimaryColor}};
    }

    .header-field {
      font-size: {{scale .Layout.Header.FontSize 0.6}}px;
      margin-bottom: 4px;
      color: {{css .SecondaryColor}};
    }

    .receipt-info {
      margin: 20px 0;
      font-size: 12px;
      border-top: 1px dashed #ccc;
      border-bottom: 1px dashed #ccc;
      padding: 10px 0;
    }

    .receipt-info-row {
      display: flex;
      justify-content: space-between;
      margin-bottom: 4px;
    }

    .items-table {
      width: 100%;
      margin: 20px 0;
      border-collapse: collapse;
    }

    .items-table th {
      font-weight: {{if .Layout.Table.HeaderBold}}bold{{else}}normal{{end}};
      padding: 8px 4px;
      border-bottom: {{if .Layout.Table.ShowBorders}}1px solid #ccc{{else}}1px dashed #ccc{{end}};
      font-size: 12px;
    }

    .items-table td {
      padding: {{scale .Layout.Table.RowHeight 0.333333}}px 4px;
      {{if .Layout.Table.ShowBorders}}border-bottom: 1px solid #eee;{{end}}
      font-size: 11px;
    }

    {{range $idx, $col := .Layout.Table.Columns}}
    .items-table th:nth-child({{inc $idx}}),
    .items-table td:nth-child({{inc $idx}}) {
      text-align: {{if $col.Alignment}}{{css $col.Alignment}}{{else}}left{{end}};
      width: {{$col.Width}}%;
    }
    {{end}}

    .totals {
      margin-top: 20px;
      {{if eq .Layout.Totals.Position "right"}}margin-left: auto;{{end}}
      width: 200px;
    }

    .total-row {
      display: flex;
      justify-content: space-between;
      padding: 6px 0;
      font-size: {{.Layout.Totals.FontSize}}px;
    }

    .total-row.grand-total {
      font-weight: bold;
      border-top: 2px solid {{css .PrimaryColor}};
      padding-top: 8px;
      margin-top: 4px;
      font-size: {{addf .Layout.Totals.FontSize 2}}px;
    }

    .footer {
      margin-top: 30px;
      text-align: {{css .FooterAlignment}};
      font-size: {{.FooterFontSize}}px;
      color: {{css .SecondaryColor}};
      border-top: 1px dashed #ccc;
      padding-top: 15px;
    }

    .notes {
      margin-top: 15px;
      font-size: 10px;
      color: {{css .SecondaryColor}};
    }
  </style>
</head>
<body>
  <div class="header">
    {{if .Data.BusinessInfo.LogoURL}}<img src="{{.Data.BusinessInfo.LogoURL}}" class="logo" alt="Logo" />{{end}}
    {{range .Layout.Header.Fields}}{{if eq . "businessName"}}<div class="business-name">{{$.Data.BusinessInfo.Name}}</div>
    {{else if eq . "businessAddress"}}<div class="header-field">{{$.Data.BusinessInfo.Address}}</div>
    {{else if eq . "businessPhone"}}<div class="header-field">{{$.Data.BusinessInfo.Phone}}</div>
    {{else if eq . "businessEmail"}}<div class="header-field">{{$.Data.BusinessInfo.Email}}</div>
    {{else}}<div class="header-field"></div>
    {{end}}{{end}}
  </div>

  <div class="receipt-info">
    <div class="receipt-info-row">
      <span>Receipt #:</span>
      <span>{{.ReceiptNumber}}</span>
    </div>
    <div class="receipt-info-row">
      <span>Date:</span>
      <span>{{.Data.Date}}</span>
    </div>
  </div>

  <table class="items-table">
    <thead>
      <tr>
        {{range .Layout.Table.Columns}}<th>{{.Label}}</th>
        {{end}}
      </tr>
    </thead>
    <tbody>
      {{range .Data.Items}}
      <tr>
        <td>{{.Name}}</td>
        <td>{{.Quantity}}</td>
        <td>{{money .Price}}</td>
        <td>{{money .Total}}</td>
      </tr>
      {{end}}
    </tbody>
  </table>

  <div class="totals">
    <div class="total-row">
      <span>Subtotal:</span>
      <span>{{money .Data.Subtotal}}</span>
    </div>
    <div class="total-row">
      <span>Tax:</span>
      <span>{{money .Data.Tax}}</span>
    </div>
    <div class="total-row grand-total">
      <span>Total:</span>
      <span>{{money .Data.Total}}</span>
    </div>
  </div>

  {{if .Data.Notes}}<div class="notes">{{.Data.Notes}}</div>{{end}}

  <div class="footer">
    {{.FooterText}}
  </div>
</body>
</html>
`
