package models

import "github.com/optionedge/analyzer/internal/analysis"

// EvaluationResponse is the JSON envelope returned by /api/evaluate.
type EvaluationResponse struct {
	Success bool             `json:"success"`
	Result  *analysis.Result `json:"result,omitempty"`
	Error   string           `json:"error,omitempty"`
}

// TemplateData is passed to the home page template on each render.
// Result and Error are both nil/empty on a plain GET.
type TemplateData struct {
	Result *analysis.Result
	Error  string
}
