// internal/nlp/ruler_test.go
package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func annotate(t *testing.T, r *Ruler, text string) *Doc {
	t.Helper()
	doc, err := NewSpanishTokenizer().Process(text)
	require.NoError(t, err)
	r.Annotate(doc)
	return doc
}

func TestRulerLongestMatchWins(t *testing.T) {
	r := NewRuler()
	doc := annotate(t, r, "productos de 100 a 500")

	require.Len(t, doc.Ents, 1)
	ent := doc.Ents[0]
	assert.Equal(t, EntityPrice, ent.Label)
	// the 4-token range rule beats the 2-token "de <n>" rule
	assert.Equal(t, "de 100 a 500", ent.Text)
}

func TestRulerDateAndPriceCoexist(t *testing.T) {
	r := NewRuler()
	doc := annotate(t, r, "ventas de ayer hasta 300")

	require.Len(t, doc.Ents, 2)
	assert.Equal(t, EntityRelativeDate, doc.Ents[0].Label)
	assert.Equal(t, PeriodYesterday, doc.Ents[0].ID)
	assert.Equal(t, EntityPrice, doc.Ents[1].Label)
	assert.Equal(t, "hasta 300", doc.Ents[1].Text)
}

func TestRulerMonthNames(t *testing.T) {
	r := NewRuler()
	doc := annotate(t, r, "ventas de julio")

	require.Len(t, doc.Ents, 1)
	assert.Equal(t, EntityRelativeDate, doc.Ents[0].Label)
	assert.Equal(t, "JULIO", doc.Ents[0].ID)
}

func TestRulerUnaccentedVariants(t *testing.T) {
	r := NewRuler()

	doc := annotate(t, r, "ventas de la ultima semana")
	require.Len(t, doc.Ents, 1)
	assert.Equal(t, PeriodLastWeek, doc.Ents[0].ID)

	doc = annotate(t, r, "productos mas de 300")
	require.Len(t, doc.Ents, 1)
	assert.Equal(t, EntityPrice, doc.Ents[0].Label)
}

func TestFixedRulesRegisterMonthsInCalendarOrder(t *testing.T) {
	var got []string
	for _, rule := range fixedRules() {
		if _, ok := monthNumbers[rule.id]; ok {
			got = append(got, rule.id)
		}
	}
	assert.Equal(t, []string{
		"ENERO", "FEBRERO", "MARZO", "ABRIL", "MAYO", "JUNIO",
		"JULIO", "AGOSTO", "SEPTIEMBRE", "OCTUBRE", "NOVIEMBRE", "DICIEMBRE",
	}, got)
}

func TestRulerCategoryRules(t *testing.T) {
	r := NewRuler()
	r.SetCategoryRules([]CategoryRule{
		{Name: "Teclados", ID: "1"},
		{Name: "Tarjetas Gráficas", ID: "7"},
	})

	doc := annotate(t, r, "mostrar tarjetas gráficas")
	require.Len(t, doc.Ents, 1)
	assert.Equal(t, EntityCategory, doc.Ents[0].Label)
	assert.Equal(t, "7", doc.Ents[0].ID)
	assert.Equal(t, 1, doc.Ents[0].Start)
	assert.Equal(t, 3, doc.Ents[0].End)
}

func TestRulerCategorySwapDropsOldRules(t *testing.T) {
	r := NewRuler()
	r.SetCategoryRules([]CategoryRule{{Name: "Teclados", ID: "1"}})
	r.SetCategoryRules([]CategoryRule{{Name: "Monitores", ID: "9"}})

	doc := annotate(t, r, "mostrar teclados")
	assert.Empty(t, doc.Ents)

	doc = annotate(t, r, "mostrar monitores")
	require.Len(t, doc.Ents, 1)
	assert.Equal(t, "9", doc.Ents[0].ID)
}

func TestRulerEmptyCategoryListKeepsFixedRules(t *testing.T) {
	r := NewRuler()
	r.SetCategoryRules(nil)

	doc := annotate(t, r, "ventas de hoy")
	require.Len(t, doc.Ents, 1)
	assert.Equal(t, PeriodToday, doc.Ents[0].ID)
}

func TestRulerNonOverlappingSpans(t *testing.T) {
	r := NewRuler()
	doc := annotate(t, r, "entre 100 y 200 entre 300 y 400")

	require.Len(t, doc.Ents, 2)
	assert.Equal(t, "entre 100 y 200", doc.Ents[0].Text)
	assert.Equal(t, "entre 300 y 400", doc.Ents[1].Text)
}
