// internal/nlp/interpreter.go
package nlp

import (
	"context"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/oogway7h/ShopIA-web/internal/common/errors"
	"github.com/oogway7h/ShopIA-web/internal/common/logger"
	"github.com/oogway7h/ShopIA-web/internal/common/metrics"
	"github.com/oogway7h/ShopIA-web/internal/models"
)

// Messages returned to the frontend verbatim.
const (
	MsgNotInitialized = "Servicio NLP no inicializado."
	MsgNotRecognized  = "Comando no reconocido. Intente 'reporte de ventas' o 'mostrar teclados'."
)

// CategoryCatalog supplies the category names the interpreter turns into
// entity rules.
type CategoryCatalog interface {
	ListCategories(ctx context.Context) ([]models.Categoria, error)
}

// Interpreter turns a raw Spanish storefront command into a frontend
// Action. Interpret is stateless per call and safe for concurrent use;
// category reloads swap the rule set atomically underneath it.
type Interpreter struct {
	pipeline Pipeline
	ruler    *Ruler
	matcher  *Matcher
	catalog  CategoryCatalog
	log      logger.Logger

	ready atomic.Bool
}

func NewInterpreter(pipeline Pipeline, catalog CategoryCatalog, log logger.Logger) *Interpreter {
	return &Interpreter{
		pipeline: pipeline,
		ruler:    NewRuler(),
		matcher:  NewMatcher(),
		catalog:  catalog,
		log:      log,
	}
}

// Initialize marks the interpreter ready and loads category rules. A
// catalog failure is returned but leaves the interpreter usable with the
// fixed rules only; the caller decides whether that is fatal.
func (i *Interpreter) Initialize(ctx context.Context) error {
	if i.pipeline == nil {
		return errors.NewInterpreterNotInitializedError()
	}
	i.ready.Store(true)
	_, err := i.ReloadCategories(ctx)
	return err
}

// IsReady reports whether Interpret can produce non-error actions.
func (i *Interpreter) IsReady() bool {
	return i.ready.Load()
}

// ReloadCategories refetches category names and rebuilds the dynamic entity
// rules. Returns the number of category rules installed. In-flight
// Interpret calls keep the previous rule set until the swap.
func (i *Interpreter) ReloadCategories(ctx context.Context) (int, error) {
	cats, err := i.catalog.ListCategories(ctx)
	if err != nil {
		return 0, errors.NewCategoryCatalogFailedError(err)
	}
	rules := make([]CategoryRule, 0, len(cats))
	for _, c := range cats {
		if strings.TrimSpace(c.Nombre) == "" {
			continue
		}
		rules = append(rules, CategoryRule{
			Name: c.Nombre,
			ID:   strconv.FormatInt(c.ID, 10),
		})
	}
	i.ruler.SetCategoryRules(rules)
	metrics.CategoryRulesLoaded.Set(float64(len(rules)))
	if len(rules) == 0 {
		i.log.Warn("no category rules loaded, category commands disabled", nil)
	} else {
		i.log.Info("category rules reloaded", map[string]interface{}{"count": len(rules)})
	}
	return len(rules), nil
}

// Interpret resolves one utterance. Resolution order: fixed report intents
// first, then entity-driven catalog navigation, then free-text search, and
// finally the not-recognized error. now anchors relative date resolution.
func (i *Interpreter) Interpret(text string, now time.Time) Action {
	if !i.ready.Load() || i.pipeline == nil {
		return errorAction(MsgNotInitialized)
	}

	doc, err := i.pipeline.Process(text)
	if err != nil {
		i.log.Warn("pipeline failed, treating command as unrecognized", map[string]interface{}{"error": err.Error()})
		return errorAction(MsgNotRecognized)
	}
	i.ruler.Annotate(doc)

	params := Params{}
	var dateIDs []string
	var categoryID string
	var priceSpan string
	for _, ent := range doc.Ents {
		switch ent.Label {
		case EntityRelativeDate:
			dateIDs = append(dateIDs, ent.ID)
		case EntityCategory:
			if categoryID == "" {
				categoryID = ent.ID
			}
		case EntityPrice:
			if priceSpan == "" {
				priceSpan = ent.Text
			}
		}
	}

	if len(dateIDs) > 0 {
		first, okFirst := ResolvePeriod(dateIDs[0], now)
		if okFirst {
			period := first
			if len(dateIDs) > 1 {
				if last, ok := ResolvePeriod(dateIDs[len(dateIDs)-1], now); ok {
					period = CombinePeriods(first, last)
				}
			}
			params["fecha_inicio"] = period.FechaInicio
			params["fecha_fin"] = period.FechaFin
		}
	}
	if categoryID != "" {
		params["categoria"] = categoryID
	}
	hasPrice := false
	if priceSpan != "" {
		bounds := ExtractPriceBounds(priceSpan)
		if bounds.Gte != nil {
			params["precio__gte"] = *bounds.Gte
			hasPrice = true
		}
		if bounds.Lte != nil {
			params["precio__lte"] = *bounds.Lte
			hasPrice = true
		}
	}

	match, matched := i.matcher.Match(doc)
	var intent Intent
	if matched {
		intent = match.Intent
	}

	if matched && IsReportIntent(match.Intent) {
		if route, ok := reportRoutes[match.Intent]; ok {
			return Action{
				Kind:      route.kind,
				Intent:    intent,
				ReporteID: route.reporteID,
				URL:       route.url,
				FileName:  route.fileName,
				Params:    params,
			}
		}
	}

	if categoryID != "" && !hasPrice {
		return Action{Kind: ActionNavigate, Intent: intent, URL: "/categoria/" + categoryID, Params: Params{}}
	}
	if categoryID != "" || hasPrice {
		return Action{Kind: ActionNavigate, Intent: intent, URL: "/catalogo/buscar", Params: params}
	}

	if matched && match.Intent == IntentBuscarTexto {
		search := strings.TrimSpace(doc.Span(match.Start+1, match.End))
		if search != "" && !strings.Contains(search, "precio") && !strings.Contains(search, " de ") {
			params["search"] = search
			return Action{Kind: ActionNavigate, Intent: intent, URL: "/catalogo/buscar", Params: params}
		}
	}

	return errorAction(MsgNotRecognized)
}
