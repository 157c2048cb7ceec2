package render

import (
	"strings"
	"testing"

	"github.com/reciply/reciply/internal/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testData() Data {
	return Data{
		BusinessInfo: BusinessInfo{
			Name:    "Acme",
			Address: "1 Main St",
			Phone:   "555-0100",
			Email:   "billing@acme.test",
		},
		Items: []Item{
			{Name: "Widget", Quantity: 2, Price: 10.00, Total: 20.00},
		},
		Subtotal: 20.00,
		Tax:      1.60,
		Total:    21.60,
		Date:     "01/15/2026",
	}
}

func TestRenderDefaultLayout(t *testing.T) {
	r, err := NewHTMLRenderer()
	require.NoError(t, err)

	html, err := r.Render(layout.Default(), testData())
	require.NoError(t, err)

	assert.Contains(t, html, `<div class="business-name">Acme</div>`)
	assert.Contains(t, html, "<td>2</td>")
	assert.Contains(t, html, "$10.00")
	assert.Contains(t, html, "$20.00")
	assert.Contains(t, html, "$21.60")
	assert.Contains(t, html, "01/15/2026")

	// Header fields render at 60% of the header font size.
	assert.Contains(t, html, "font-size: 12px")
	assert.Contains(t, html, "1 Main St")

	// Grand total steps up two points from the totals font size.
	assert.Contains(t, html, "font-size: 16px")
	assert.Contains(t, html, "border-top: 2px solid #000000")
}

func TestRenderRoundsHalfCentsUp(t *testing.T) {
	r, err := NewHTMLRenderer()
	require.NoError(t, err)

	d := testData()
	d.Items = []Item{{Name: "Widget", Quantity: 1, Price: 10.005, Total: 10.005}}
	d.Subtotal = 10.005
	d.Tax = 0
	d.Total = 10.005

	html, err := r.Render(layout.Default(), d)
	require.NoError(t, err)

	assert.Contains(t, html, "$10.01")
	assert.NotContains(t, html, "$10.00")
}

func TestRenderIsDeterministic(t *testing.T) {
	r, err := NewHTMLRenderer()
	require.NoError(t, err)

	first, err := r.Render(layout.Default(), testData())
	require.NoError(t, err)
	second, err := r.Render(layout.Default(), testData())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRenderFallbackValues(t *testing.T) {
	r, err := NewHTMLRenderer()
	require.NoError(t, err)

	l := layout.Default()
	l.Footer.Text = ""
	l.Colors = nil
	l.Fonts = nil

	html, err := r.Render(l, testData())
	require.NoError(t, err)

	assert.Contains(t, html, "N/A")
	assert.Contains(t, html, "Thank you for your business!")
	assert.Contains(t, html, "'Inter', sans-serif")
	assert.Contains(t, html, "color: #000000")
}

func TestRenderCustomReceiptNumberAndNotes(t *testing.T) {
	r, err := NewHTMLRenderer()
	require.NoError(t, err)

	d := testData()
	d.ReceiptNumber = "R-0042"
	d.Notes = "No refunds after 30 days."

	html, err := r.Render(layout.Default(), d)
	require.NoError(t, err)

	assert.Contains(t, html, "R-0042")
	assert.NotContains(t, html, "N/A")
	assert.Contains(t, html, "No refunds after 30 days.")
}

func TestRenderColumnGeometry(t *testing.T) {
	r, err := NewHTMLRenderer()
	require.NoError(t, err)

	html, err := r.Render(layout.Default(), testData())
	require.NoError(t, err)

	// Four columns, one nth-child rule each, widths pass through unscaled.
	assert.Equal(t, 4, strings.Count(html, "th:nth-child"))
	assert.Contains(t, html, "width: 50%")
	assert.Contains(t, html, "width: 15%")
	assert.Contains(t, html, "width: 17%")
	assert.Contains(t, html, "width: 18%")
}

func TestRenderEscapesUntrustedInput(t *testing.T) {
	r, err := NewHTMLRenderer()
	require.NoError(t, err)

	d := testData()
	d.BusinessInfo.Name = `<script>alert("x")</script>`

	html, err := r.Render(layout.Default(), d)
	require.NoError(t, err)

	assert.NotContains(t, html, `<script>alert`)
}
