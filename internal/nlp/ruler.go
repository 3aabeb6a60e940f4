// internal/nlp/ruler.go
package nlp

import (
	"strings"
	"sync/atomic"
)

// EntityLabel tags a token span with the kind of value it carries.
type EntityLabel string

const (
	EntityRelativeDate EntityLabel = "FECHA_RELATIVA"
	EntityPrice        EntityLabel = "PRECIO"
	EntityCategory     EntityLabel = "CATEGORIA"
)

// ruleToken is one slot of an entity rule. Constraints are conjunctive.
type ruleToken struct {
	lowerIn []string // token text must be one of these, if set
	isDigit bool     // token must be all digits
}

type entityRule struct {
	label   EntityLabel
	id      string
	pattern []ruleToken
}

// CategoryRule binds a catalog category name to its identifier.
type CategoryRule struct {
	Name string
	ID   string
}

// Ruler scans a Doc left to right and annotates non-overlapping entity
// spans. At each position the longest matching rule wins; ties go to the
// earlier registered rule. The rule set is replaced wholesale on category
// reloads, so concurrent Annotate calls always see a consistent snapshot.
type Ruler struct {
	rules atomic.Pointer[[]entityRule]
}

func NewRuler() *Ruler {
	r := &Ruler{}
	fixed := fixedRules()
	r.rules.Store(&fixed)
	return r
}

// SetCategoryRules rebuilds the rule set as fixed rules plus one rule per
// category and swaps it in atomically. An empty slice clears category rules
// without touching the fixed ones.
func (r *Ruler) SetCategoryRules(categories []CategoryRule) {
	rules := fixedRules()
	for _, c := range categories {
		words := splitWords(strings.ToLower(c.Name))
		if len(words) == 0 {
			continue
		}
		pattern := make([]ruleToken, 0, len(words))
		for _, w := range words {
			pattern = append(pattern, ruleToken{lowerIn: []string{w}})
		}
		rules = append(rules, entityRule{
			label:   EntityCategory,
			id:      c.ID,
			pattern: pattern,
		})
	}
	r.rules.Store(&rules)
}

// Annotate fills doc.Ents and the per-token labels in place.
func (r *Ruler) Annotate(doc *Doc) {
	rules := *r.rules.Load()
	pos := 0
	for pos < len(doc.Tokens) {
		bestLen := 0
		bestIdx := -1
		for i, rule := range rules {
			if l := matchRuleAt(doc.Tokens, pos, rule.pattern); l > bestLen {
				bestLen = l
				bestIdx = i
			}
		}
		if bestIdx < 0 {
			pos++
			continue
		}
		rule := rules[bestIdx]
		span := EntitySpan{
			Label: rule.label,
			ID:    rule.id,
			Start: pos,
			End:   pos + bestLen,
			Text:  doc.Span(pos, pos+bestLen),
		}
		doc.Ents = append(doc.Ents, span)
		for i := span.Start; i < span.End; i++ {
			doc.entAt[i] = rule.label
		}
		pos = span.End
	}
}

func matchRuleAt(tokens []Token, pos int, pattern []ruleToken) int {
	if pos+len(pattern) > len(tokens) {
		return 0
	}
	for i, rt := range pattern {
		tok := tokens[pos+i]
		if rt.isDigit && !tok.IsDigit {
			return 0
		}
		if len(rt.lowerIn) > 0 && !containsString(rt.lowerIn, tok.Text) {
			return 0
		}
	}
	return len(pattern)
}

func containsString(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

// fixedRules returns a fresh copy of the built-in date and price rules.
// Registration order decides equal-length ties, so keep dates before prices
// and longer price phrasings before shorter ones.
func fixedRules() []entityRule {
	words := func(ws ...string) []ruleToken {
		pattern := make([]ruleToken, 0, len(ws))
		for _, w := range ws {
			pattern = append(pattern, ruleToken{lowerIn: strings.Split(w, "|")})
		}
		return pattern
	}
	digit := ruleToken{isDigit: true}

	rules := []entityRule{
		{EntityRelativeDate, PeriodToday, words("hoy")},
		{EntityRelativeDate, PeriodYesterday, words("ayer")},
		{EntityRelativeDate, PeriodLastWeek, words("última|ultima", "semana")},
		{EntityRelativeDate, PeriodLastMonth, words("último|ultimo", "mes")},
	}
	for _, name := range monthNames {
		rules = append(rules, entityRule{EntityRelativeDate, monthPeriods[name], words(name)})
	}

	price := func(pattern ...ruleToken) entityRule {
		return entityRule{label: EntityPrice, pattern: pattern}
	}
	rules = append(rules,
		price(ruleToken{lowerIn: []string{"entre", "de"}}, digit, ruleToken{lowerIn: []string{"y", "a"}}, digit),
		price(ruleToken{lowerIn: []string{"menos"}}, ruleToken{lowerIn: []string{"de"}}, digit),
		price(ruleToken{lowerIn: []string{"hasta"}}, digit),
		price(ruleToken{lowerIn: []string{"más", "mas"}}, ruleToken{lowerIn: []string{"de"}}, digit),
		price(ruleToken{lowerIn: []string{"desde"}}, digit),
		price(ruleToken{lowerIn: []string{"de"}}, digit),
		price(ruleToken{lowerIn: []string{"precio"}}, ruleToken{lowerIn: []string{"de"}}, digit),
		price(digit),
	)
	return rules
}
