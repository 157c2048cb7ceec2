package layout

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValid(t *testing.T) {
	assert.True(t, Default().Valid())

	var empty Layout
	assert.False(t, empty.Valid())

	noColumns := Default()
	noColumns.Table.Columns = nil
	assert.False(t, noColumns.Valid())

	noWidth := Default()
	noWidth.Page.Width = 0
	assert.False(t, noWidth.Valid())

	noFields := Default()
	noFields.Header.Fields = nil
	assert.False(t, noFields.Valid())
}

func TestDefaultLayout(t *testing.T) {
	l := Default()

	assert.Equal(t, 384.0, l.Page.Width)
	assert.Equal(t, 20.0, l.Page.Padding)
	assert.Equal(t, "center", l.Header.Alignment)
	assert.Equal(t, "bold", l.Header.FontWeight)
	assert.Len(t, l.Table.Columns, 4)
	assert.Equal(t, "Thank you for your business!", l.Footer.Text)
}

func TestLayoutJSONTags(t *testing.T) {
	b, err := json.Marshal(Default())
	require.NoError(t, err)

	assert.Contains(t, string(b), `"fontSize"`)
	assert.Contains(t, string(b), `"showBorders"`)
	assert.Contains(t, string(b), `"headerBold"`)
	assert.NotContains(t, string(b), `"FontSize"`)

	var back Layout
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, Default(), back)
}

func TestTemplateCatalog(t *testing.T) {
	templates := Templates()
	require.NotEmpty(t, templates)

	seen := map[string]bool{}
	for _, tpl := range templates {
		assert.NotEmpty(t, tpl.ID)
		assert.NotEmpty(t, tpl.Name)
		assert.True(t, tpl.Layout.Valid(), "template %s has an unusable layout", tpl.ID)
		assert.False(t, seen[tpl.ID], "duplicate template id %s", tpl.ID)
		seen[tpl.ID] = true
	}

	for _, id := range []string{"classic", "modern", "elegant", "compact", "retail", "restaurant", "professional"} {
		assert.True(t, seen[id], "missing template %s", id)
	}
}

func TestTemplateByID(t *testing.T) {
	tpl, ok := TemplateByID("classic")
	require.True(t, ok)
	assert.Equal(t, "Classic", tpl.Name)

	_, ok = TemplateByID("missing")
	assert.False(t, ok)
}
