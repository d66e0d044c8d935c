package translator

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/kaptinlin/jsonschema"
)

// ============================================================================
// TRANSLATOR — Request boundary for URL queries and JSON bodies → ViewState
// ============================================================================
// The translator is the ONLY component that reads untrusted request input.
// JSON bodies are validated against embedded schemas before decoding; the
// engine only ever sees a typed engine.ViewState.
// ============================================================================

// Request is the JSON body form of a view state. Absent fields keep the
// caller's defaults.
type Request struct {
	From     *int    `json:"from,omitempty"`
	To       *int    `json:"to,omitempty"`
	Subject  *string `json:"subject,omitempty"`
	Relief   *string `json:"relief,omitempty"`
	Query    *string `json:"q,omitempty"`
	Timeline *string `json:"timeline,omitempty"`
	Page     *int    `json:"page,omitempty"`
	PageSize *int    `json:"page_size,omitempty"`
	Selected *int    `json:"selected,omitempty"`
}

// Action is one interactive step applied to a session's view state.
type Action struct {
	Action string          `json:"action"`
	Value  json.RawMessage `json:"value,omitempty"`
}

// Action names.
const (
	ActionToggleSubject = "toggle_subject"
	ActionToggleRelief  = "toggle_relief"
	ActionResetSubject  = "reset_subject"
	ActionResetRelief   = "reset_relief"
	ActionSetRange      = "set_range"
	ActionSetQuery      = "set_query"
	ActionResetQuery    = "reset_query"
	ActionSetTimeline   = "set_timeline"
	ActionSetPage       = "set_page"
	ActionSetPageSize   = "set_page_size"
	ActionSelect        = "select"
)

// ============================================================================
// EMBEDDED SCHEMAS
// ============================================================================

//go:embed schemas/view_state.schema.json
var viewStateSchemaJSON []byte

//go:embed schemas/action.schema.json
var actionSchemaJSON []byte

var (
	viewStateSchema = sync.OnceValues(func() (*jsonschema.Schema, error) { return compileSchema(viewStateSchemaJSON) })
	actionSchema    = sync.OnceValues(func() (*jsonschema.Schema, error) { return compileSchema(actionSchemaJSON) })
)

func compileSchema(data []byte) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	schema, err := compiler.Compile(data)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
}
