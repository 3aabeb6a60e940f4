// internal/nlp/matcher_test.go
package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func matchText(t *testing.T, text string, categories ...CategoryRule) (Match, bool) {
	t.Helper()
	doc, err := NewSpanishTokenizer().Process(text)
	require.NoError(t, err)
	r := NewRuler()
	if len(categories) > 0 {
		r.SetCategoryRules(categories)
	}
	r.Annotate(doc)
	return NewMatcher().Match(doc)
}

func TestMatcherReportIntents(t *testing.T) {
	tests := []struct {
		text   string
		intent Intent
	}{
		{"reporte de ventas", IntentReportePDFVentas},
		{"reporte ventas", IntentReportePDFVentas},
		{"listado de clientes", IntentReportePDFClientes},
		{"descargar listado de ventas", IntentReportePDFVentas},
		{"dashboard de clientes", IntentReporteDashClientes},
		{"dashboard ventas", IntentReporteDashVentas},
		{"producto más vendido", IntentReporteMasVendido},
		{"productos mas vendidos", IntentReporteMasVendido},
		{"top productos", IntentReporteMasVendido},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			m, ok := matchText(t, tt.text)
			require.True(t, ok)
			assert.Equal(t, tt.intent, m.Intent)
		})
	}
}

func TestMatcherCategoryIntent(t *testing.T) {
	teclados := CategoryRule{Name: "Teclados", ID: "1"}

	m, ok := matchText(t, "mostrar categoría teclados", teclados)
	require.True(t, ok)
	assert.Equal(t, IntentBuscarCategoria, m.Intent)
	assert.Equal(t, 0, m.Start)
	assert.Equal(t, 3, m.End)

	m, ok = matchText(t, "ver teclados", teclados)
	require.True(t, ok)
	assert.Equal(t, IntentBuscarCategoria, m.Intent)
}

func TestMatcherPriceIntent(t *testing.T) {
	m, ok := matchText(t, "ver productos entre 100 y 500")
	require.True(t, ok)
	assert.Equal(t, IntentBuscarPrecio, m.Intent)
}

func TestMatcherFreeTextIsGreedy(t *testing.T) {
	m, ok := matchText(t, "buscar audífonos bluetooth inalámbricos")
	require.True(t, ok)
	assert.Equal(t, IntentBuscarTexto, m.Intent)
	assert.Equal(t, 0, m.Start)
	assert.Equal(t, 4, m.End)
}

func TestMatcherLongestSpanWins(t *testing.T) {
	// the free-text pattern covers the whole utterance and outranks the
	// shorter price pattern; entity resolution still handles the price
	m, ok := matchText(t, "buscar productos entre 100 y 500")
	require.True(t, ok)
	assert.Equal(t, IntentBuscarTexto, m.Intent)
	assert.Equal(t, 6, m.End-m.Start)
}

func TestMatcherEqualLengthPrefersEarlierPattern(t *testing.T) {
	// registration order decides equal-length ties
	m, ok := matchText(t, "reporte de ventas")
	require.True(t, ok)
	assert.Equal(t, IntentReportePDFVentas, m.Intent)
}

func TestMatcherNoMatch(t *testing.T) {
	_, ok := matchText(t, "hola que tal")
	assert.False(t, ok)
}

func TestMatcherMidSentenceMatch(t *testing.T) {
	m, ok := matchText(t, "quiero un reporte de ventas por favor")
	require.True(t, ok)
	assert.Equal(t, IntentReportePDFVentas, m.Intent)
	assert.Equal(t, 2, m.Start)
	assert.Equal(t, 5, m.End)
}
