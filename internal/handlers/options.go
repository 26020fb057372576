package handlers

import (
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/optionedge/analyzer/internal/analysis"
	"github.com/optionedge/analyzer/internal/config"
	"github.com/optionedge/analyzer/internal/logger"
	"github.com/optionedge/analyzer/internal/models"
)

// OptionsHandler serves the evaluation form and the JSON API - dumb HTTP
// layer only, all pricing logic lives behind the evaluator.
type OptionsHandler struct {
	config    *config.Config
	evaluator *analysis.Evaluator
	templates string // template directory, swappable in tests
}

// NewOptionsHandler creates a new options handler - just HTTP routing
func NewOptionsHandler(cfg *config.Config, evaluator *analysis.Evaluator) *OptionsHandler {
	return &OptionsHandler{
		config:    cfg,
		evaluator: evaluator,
		templates: "web/templates",
	}
}

// HomeHandler serves the evaluation form. GET renders the empty form;
// POST evaluates the submitted fields and re-renders with the result
// block or the error message, round-tripping like the original form app.
func (h *OptionsHandler) HomeHandler(w http.ResponseWriter, r *http.Request) {
	data := &models.TemplateData{}

	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			logger.Error.Printf("Form parse error: %v", err)
			http.Error(w, "Bad form data", http.StatusBadRequest)
			return
		}

		result, err := h.evaluator.Evaluate(formFields(r))
		if err != nil {
			logger.Warn.Printf("Evaluation rejected: %v", err)
			data.Error = analysis.UserMessage(err)
		} else {
			logger.Info.Printf("Evaluated %s %s: theoretical=%.2f edge=%.2f -> %s",
				result.Symbol, result.OptionType, result.TheoreticalPrice, result.Edge, result.Recommendation)
			data.Result = result
		}
	}

	h.render(w, data)
}

// EvaluateHandler handles JSON evaluation requests on /api/evaluate.
// The body is a flat map of the same field names the form submits, so
// missing-field semantics match the form path exactly.
func (h *OptionsHandler) EvaluateHandler(w http.ResponseWriter, r *http.Request) {
	// CORS headers for browser compatibility
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Content-Type", "application/json")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var fields map[string]string
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(models.EvaluationResponse{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	result, err := h.evaluator.Evaluate(fields)
	if err != nil {
		logger.Warn.Printf("API evaluation rejected: %v", err)
		w.WriteHeader(statusFor(err))
		json.NewEncoder(w).Encode(models.EvaluationResponse{
			Success: false,
			Error:   analysis.UserMessage(err),
		})
		return
	}

	logger.Info.Printf("API evaluated %s %s: theoretical=%.2f edge=%.2f -> %s",
		result.Symbol, result.OptionType, result.TheoreticalPrice, result.Edge, result.Recommendation)

	json.NewEncoder(w).Encode(models.EvaluationResponse{
		Success: true,
		Result:  result,
	})
}

// statusFor maps evaluation errors to HTTP status codes. Every taxonomy
// member is a client error except the internal catch-all.
func statusFor(err error) int {
	if _, ok := err.(*analysis.InternalError); ok {
		return http.StatusInternalServerError
	}
	return http.StatusBadRequest
}

// formFields copies only the keys actually submitted, so an absent form
// field surfaces as MissingField rather than an empty-string parse error.
func formFields(r *http.Request) map[string]string {
	fields := make(map[string]string, len(r.PostForm))
	for key, values := range r.PostForm {
		if len(values) > 0 {
			fields[key] = values[0]
		}
	}
	return fields
}

// render parses the home template fresh on every request (no rebuild
// needed for web changes, as with the rest of the UI assets).
func (h *OptionsHandler) render(w http.ResponseWriter, data *models.TemplateData) {
	funcMap := template.FuncMap{
		"appTitle": func() string {
			return "Option Edge Analyzer"
		},
		"appDescription": func() string {
			return "Black-Scholes Fair Value & Trading Signal"
		},
		"defaultRiskFreeRate": func() float64 {
			return h.config.Defaults.RiskFreeRate
		},
		"defaultVolatility": func() float64 {
			return h.config.Defaults.Volatility
		},
		"defaultDaysToExpiry": func() int {
			return h.config.Defaults.DaysToExpiry
		},
		"defaultExpirationDate": func() string {
			return config.NextMonthlyExpiration()
		},
	}

	tmpl, err := template.New("home.html").Funcs(funcMap).ParseFiles(h.templates + "/home.html")
	if err != nil {
		logger.Error.Printf("Template error: %v", err)
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if err := tmpl.Execute(w, data); err != nil {
		logger.Error.Printf("Template execution error: %v", err)
	}
}
