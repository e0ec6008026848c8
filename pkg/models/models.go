// Package models defines the wire types shared by the CLI JSON output and
// the HTTP server. Every integer is carried as a decimal string so that
// values beyond 64 bits survive JSON clients that parse numbers as floats.
package models

// RootView is one selected root as reported to the user.
type RootView struct {
	// Label is the document label the root was decoded from.
	Label string `json:"label"`
	// Base is the radix of Numeral.
	Base int `json:"base"`
	// Numeral is the encoded digit string as it appeared in the input.
	Numeral string `json:"numeral"`
	// Value is the decoded root in decimal.
	Value string `json:"value"`
}

// Report is the result of one solve run.
type Report struct {
	// Algorithm is the assembly strategy that produced the polynomial.
	Algorithm string `json:"algorithm"`
	// K is the number of selected roots, equal to the degree.
	K int `json:"k"`
	// Roots are the selected roots in label order.
	Roots []RootView `json:"roots"`
	// Coefficients are in ascending order of power (constant term first).
	Coefficients []string `json:"coefficients"`
	// Descending lists the same coefficients from the leading term down.
	Descending []string `json:"descending"`
	// Polynomial is the rendered expression, e.g. "1*x^2 - 3*x + 2".
	Polynomial string `json:"polynomial"`
	// Degree of the polynomial.
	Degree int `json:"degree"`
	// MaxBitLen is the bit length of the largest coefficient magnitude.
	MaxBitLen int `json:"max_bit_len"`
	// Verified is true once every selected root evaluated to zero.
	Verified bool `json:"verified"`
	// DurationMS is the assembly time in milliseconds.
	DurationMS float64 `json:"duration_ms"`
	// Warnings lists non-fatal input inconsistencies.
	Warnings []string `json:"warnings,omitempty"`
}

// EvaluateRequest asks for p(x) given ascending coefficients.
type EvaluateRequest struct {
	Coefficients []string `json:"coefficients"`
	X            string   `json:"x"`
}

// EvaluateResponse carries p(x).
type EvaluateResponse struct {
	X     string `json:"x"`
	Value string `json:"value"`
	// IsRoot is true when Value is zero.
	IsRoot bool `json:"is_root"`
}

// DecodeResponse is the result of decoding a single numeral.
type DecodeResponse struct {
	Numeral string `json:"numeral"`
	Base    int    `json:"base"`
	Value   string `json:"value"`
}

// AlgorithmsResponse lists the registered assembly strategies.
type AlgorithmsResponse struct {
	Algorithms []string `json:"algorithms"`
	Default    string   `json:"default"`
}

// ErrorResponse is the body of every non-2xx server response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
