// internal/nlp/action.go
package nlp

// ActionKind tells the frontend what to do with a resolved command.
type ActionKind string

const (
	ActionDownload ActionKind = "descargar"
	ActionNavigate ActionKind = "navegar"
	ActionError    ActionKind = "error"
)

// Params are the query parameters attached to a navigation or download.
type Params map[string]interface{}

// Action is the interpreter's verdict for one utterance.
type Action struct {
	Kind      ActionKind
	Intent    Intent // matcher verdict, empty when no pattern fired
	ReporteID string
	URL       string
	FileName  string
	Params    Params
	Message   string // set only for ActionError
}

// Payload renders the wire shape the frontend consumes. Error actions carry
// only the error text; download and navigation actions always include
// params, even when empty.
func (a Action) Payload() map[string]interface{} {
	if a.Kind == ActionError {
		return map[string]interface{}{"error": a.Message}
	}
	params := a.Params
	if params == nil {
		params = Params{}
	}
	out := map[string]interface{}{
		"accion": string(a.Kind),
		"url":    a.URL,
		"params": params,
	}
	if a.Kind == ActionDownload {
		out["reporte_id"] = a.ReporteID
		out["fileName"] = a.FileName
	}
	return out
}

func errorAction(msg string) Action {
	return Action{Kind: ActionError, Message: msg}
}

type reportRoute struct {
	kind      ActionKind
	reporteID string
	url       string
	fileName  string
}

// reportRoutes binds report intents to their fixed frontend destinations.
var reportRoutes = map[Intent]reportRoute{
	IntentReportePDFVentas: {
		kind: ActionDownload, reporteID: "ventas",
		url: "/api/reportes/ventas/pdf/", fileName: "listado_ventas.pdf",
	},
	IntentReportePDFClientes: {
		kind: ActionDownload, reporteID: "clientes",
		url: "/api/reportes/clientes/pdf/", fileName: "listado_clientes.pdf",
	},
	IntentReporteDashClientes: {
		kind: ActionNavigate, url: "/dashboard/reportes/dash/clientes",
	},
	IntentReporteDashVentas: {
		kind: ActionNavigate, url: "/dashboard/reportes/dash/ventas",
	},
	IntentReporteMasVendido: {
		kind: ActionDownload, reporteID: "mas_vendidos",
		url: "/api/reportes/mas_vendidos/pdf/", fileName: "reporte_mas_vendidos.pdf",
	},
}
