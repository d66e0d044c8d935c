package translator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/kaptinlin/jsonschema"

	"github.com/spektr-org/privlaw/engine"
	"github.com/spektr-org/privlaw/errs"
)

// ============================================================================
// REQUEST PARSER — Extracts ViewState from query strings and JSON bodies
// ============================================================================

// FromQuery overlays URL query parameters onto defaults.
// Recognized keys: from, to, subject, relief, q, timeline, page, page_size,
// selected. Unknown keys are ignored; non-integer numbers are rejected.
func FromQuery(values url.Values, defaults engine.ViewState) (engine.ViewState, error) {
	s := defaults

	ints := []struct {
		key string
		dst *int
	}{
		{"from", &s.YearStart},
		{"to", &s.YearEnd},
		{"page", &s.Page},
		{"page_size", &s.PageSize},
		{"selected", &s.SelectedID},
	}
	for _, f := range ints {
		if !values.Has(f.key) {
			continue
		}
		raw := strings.TrimSpace(values.Get(f.key))
		n, err := strconv.Atoi(raw)
		if err != nil {
			return defaults, invalid(fmt.Errorf("parameter %s: %q is not an integer", f.key, raw), "bad_parameter")
		}
		*f.dst = n
	}

	if values.Has("subject") {
		s.Subject = values.Get("subject")
	}
	if values.Has("relief") {
		s.Relief = values.Get("relief")
	}
	if values.Has("q") {
		s.Query = values.Get("q")
	}
	if values.Has("timeline") {
		s.Timeline = values.Get("timeline")
	}
	return engine.NormalizeViewState(s), nil
}

// FromJSON validates a JSON body and overlays it onto defaults.
func FromJSON(data []byte, defaults engine.ViewState) (engine.ViewState, error) {
	schema, err := viewStateSchema()
	if err != nil {
		return defaults, errs.Wrap(err, errs.CategoryInternalFailure, "schema_unavailable", "")
	}
	if err := validate(schema, data); err != nil {
		return defaults, err
	}

	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return defaults, invalid(fmt.Errorf("decode view state: %w", err), "bad_json")
	}
	return req.Apply(defaults), nil
}

// Apply overlays the fields present in the request onto s.
func (r Request) Apply(s engine.ViewState) engine.ViewState {
	setInt(&s.YearStart, r.From)
	setInt(&s.YearEnd, r.To)
	setInt(&s.Page, r.Page)
	setInt(&s.PageSize, r.PageSize)
	setInt(&s.SelectedID, r.Selected)
	setString(&s.Subject, r.Subject)
	setString(&s.Relief, r.Relief)
	setString(&s.Query, r.Query)
	setString(&s.Timeline, r.Timeline)
	return engine.NormalizeViewState(s)
}

// ============================================================================
// ACTIONS
// ============================================================================

// ParseAction validates and decodes a session action body.
func ParseAction(data []byte) (Action, error) {
	schema, err := actionSchema()
	if err != nil {
		return Action{}, errs.Wrap(err, errs.CategoryInternalFailure, "schema_unavailable", "")
	}
	if err := validate(schema, data); err != nil {
		return Action{}, err
	}
	var a Action
	if err := json.Unmarshal(data, &a); err != nil {
		return Action{}, invalid(fmt.Errorf("decode action: %w", err), "bad_json")
	}
	return a, nil
}

// Apply runs the action against s and returns the resulting state.
func (a Action) Apply(s engine.ViewState) (engine.ViewState, error) {
	switch a.Action {
	case ActionToggleSubject:
		label, err := a.stringValue()
		if err != nil {
			return s, err
		}
		return s.ToggleSubject(label), nil
	case ActionToggleRelief:
		label, err := a.stringValue()
		if err != nil {
			return s, err
		}
		return s.ToggleRelief(label), nil
	case ActionResetSubject:
		return s.ResetSubject(), nil
	case ActionResetRelief:
		return s.ResetRelief(), nil
	case ActionSetRange:
		var bounds []int
		if err := a.decode(&bounds); err != nil {
			return s, err
		}
		if len(bounds) != 2 {
			return s, invalid(fmt.Errorf("action %s needs [from, to], got %d values", a.Action, len(bounds)), "bad_value")
		}
		return s.SetRange(bounds[0], bounds[1]), nil
	case ActionSetQuery:
		q, err := a.stringValue()
		if err != nil {
			return s, err
		}
		return s.SetQuery(q), nil
	case ActionResetQuery:
		return s.ResetQuery(), nil
	case ActionSetTimeline:
		mode, err := a.stringValue()
		if err != nil {
			return s, err
		}
		return s.SetTimeline(mode), nil
	case ActionSetPage:
		n, err := a.intValue()
		if err != nil {
			return s, err
		}
		return s.SetPage(n), nil
	case ActionSetPageSize:
		n, err := a.intValue()
		if err != nil {
			return s, err
		}
		return s.SetPageSize(n), nil
	case ActionSelect:
		n, err := a.intValue()
		if err != nil {
			return s, err
		}
		return s.Select(n), nil
	default:
		return s, invalid(fmt.Errorf("unknown action %q", a.Action), "unknown_action")
	}
}

func (a Action) decode(dst any) error {
	if len(a.Value) == 0 || bytes.Equal(bytes.TrimSpace(a.Value), []byte("null")) {
		return invalid(fmt.Errorf("action %s needs a value", a.Action), "missing_value")
	}
	if err := json.Unmarshal(a.Value, dst); err != nil {
		return invalid(fmt.Errorf("action %s: %w", a.Action, err), "bad_value")
	}
	return nil
}

func (a Action) stringValue() (string, error) {
	var v string
	err := a.decode(&v)
	return v, err
}

func (a Action) intValue() (int, error) {
	var v int
	err := a.decode(&v)
	return v, err
}

// ============================================================================
// HELPERS
// ============================================================================

func validate(schema *jsonschema.Schema, data []byte) error {
	if !json.Valid(data) {
		return invalid(fmt.Errorf("body is not valid JSON"), "bad_json")
	}
	result := schema.ValidateJSON(data)
	if result.IsValid() {
		return nil
	}
	return invalid(fmt.Errorf("schema validation failed: %v", result.Errors), "schema_violation")
}

func invalid(err error, code string) error {
	return errs.Wrap(err, errs.CategoryInvalidInput, code, "")
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
