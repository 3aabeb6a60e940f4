// internal/nlp/matcher.go
package nlp

import "strings"

// Intent names the command family a pattern recognizes.
type Intent string

const (
	IntentReportePDFVentas   Intent = "REPORTE_PDF_VENTAS"
	IntentReportePDFClientes Intent = "REPORTE_PDF_CLIENTES"
	IntentReporteDashClientes Intent = "REPORTE_DASH_CLIENTES"
	IntentReporteDashVentas  Intent = "REPORTE_DASH_VENTAS"
	IntentBuscarCategoria    Intent = "BUSCAR_CATEGORIA"
	IntentBuscarPrecio       Intent = "BUSCAR_PRECIO"
	IntentBuscarTexto        Intent = "BUSCAR_TEXTO"
	IntentReporteMasVendido  Intent = "REPORTE_MAS_VENDIDO"
)

// IsReportIntent reports whether the intent resolves to a fixed report
// action rather than a catalog search.
func IsReportIntent(i Intent) bool {
	return strings.HasPrefix(string(i), "REPORTE_")
}

// patternToken is one slot of an intent pattern. Constraints are
// conjunctive; a token with none matches any word.
type patternToken struct {
	lowerIn   []string
	lemma     string
	entType   EntityLabel
	optional  bool
	oneOrMore bool // greedy run of matching tokens, at least one
}

type intentPattern struct {
	intent Intent
	tokens []patternToken
}

// Match is a recognized intent over a token span.
type Match struct {
	Intent Intent
	Start  int
	End    int
}

// Matcher recognizes command intents over an annotated Doc. Patterns are
// fixed at construction; the matcher is safe for concurrent use.
type Matcher struct {
	patterns []intentPattern
}

func NewMatcher() *Matcher {
	any := func(ws ...string) patternToken { return patternToken{lowerIn: ws} }
	opt := func(ws ...string) patternToken { return patternToken{lowerIn: ws, optional: true} }

	return &Matcher{patterns: []intentPattern{
		{IntentReportePDFVentas, []patternToken{any("reporte", "listado", "descargar"), opt("de"), any("ventas")}},
		{IntentReportePDFClientes, []patternToken{any("reporte", "listado", "descargar"), opt("de"), any("clientes")}},
		{IntentReporteDashClientes, []patternToken{any("dashboard"), opt("de"), any("clientes")}},
		{IntentReporteDashVentas, []patternToken{any("dashboard"), opt("de"), any("ventas")}},
		{IntentBuscarCategoria, []patternToken{
			any("mostrar", "ver", "muéstrame", "muestrame"),
			{lemma: "categoría", optional: true},
			{entType: EntityCategory},
		}},
		{IntentBuscarPrecio, []patternToken{
			any("buscar", "ver", "mostrar"),
			any("productos", "cosas"),
			{entType: EntityPrice},
		}},
		{IntentBuscarTexto, []patternToken{
			any("buscar", "encontrar"),
			{oneOrMore: true},
		}},
		{IntentReporteMasVendido, []patternToken{any("producto"), any("más", "mas"), any("vendido")}},
		{IntentReporteMasVendido, []patternToken{any("productos"), any("más", "mas"), any("vendidos")}},
		{IntentReporteMasVendido, []patternToken{any("top"), any("productos")}},
	}}
}

// Match returns the winning intent for the doc: the longest span wins, and
// equal-length spans go to the earlier registered pattern at the earlier
// position. ok is false when nothing matched.
func (m *Matcher) Match(doc *Doc) (Match, bool) {
	var best Match
	found := false
	for _, p := range m.patterns {
		for start := 0; start < len(doc.Tokens); start++ {
			end, ok := matchPatternFrom(doc, p.tokens, 0, start)
			if !ok || end == start {
				continue
			}
			if !found || end-start > best.End-best.Start {
				best = Match{Intent: p.intent, Start: start, End: end}
				found = true
			}
		}
	}
	return best, found
}

func matchPatternFrom(doc *Doc, pts []patternToken, pi, pos int) (int, bool) {
	if pi == len(pts) {
		return pos, true
	}
	pt := pts[pi]
	if pt.oneOrMore {
		limit := pos
		for limit < len(doc.Tokens) && tokenMatches(doc, limit, pt) {
			limit++
		}
		for end := limit; end > pos; end-- {
			if r, ok := matchPatternFrom(doc, pts, pi+1, end); ok {
				return r, true
			}
		}
		if pt.optional {
			return matchPatternFrom(doc, pts, pi+1, pos)
		}
		return 0, false
	}
	if pos < len(doc.Tokens) && tokenMatches(doc, pos, pt) {
		if r, ok := matchPatternFrom(doc, pts, pi+1, pos+1); ok {
			return r, true
		}
	}
	if pt.optional {
		return matchPatternFrom(doc, pts, pi+1, pos)
	}
	return 0, false
}

func tokenMatches(doc *Doc, i int, pt patternToken) bool {
	tok := doc.Tokens[i]
	if len(pt.lowerIn) > 0 && !containsString(pt.lowerIn, tok.Text) {
		return false
	}
	if pt.lemma != "" && tok.Lemma != pt.lemma {
		return false
	}
	if pt.entType != "" && doc.entLabelAt(i) != pt.entType {
		return false
	}
	return true
}
