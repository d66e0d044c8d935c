// Package privlaw is an interactive dashboard over the Private Laws enacted
// by the U.S. Congress.
//
// Usage:
//
//	import "github.com/spektr-org/privlaw/engine"
//
//	tbl, err := helpers.LoadFile("Private_Laws_Data.csv")
//	vm := engine.Render(tbl, engine.DefaultViewState().ToggleSubject("Health"))
//
// The engine takes an immutable Table and a ViewState (year range, subject
// and relief filters, search text, pagination) and returns render-ready
// output: a timeline histogram, category breakdowns with chart configs, a
// page of matching records and the detail for the selected law.
//
// Request input is parsed by the translator package; the server package
// exposes the dashboard over HTTP with independent per-user sessions.
package privlaw
