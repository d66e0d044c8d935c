package translator

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/privlaw/engine"
	"github.com/spektr-org/privlaw/errs"
)

func TestFromQuery(t *testing.T) {
	values := url.Values{
		"from":      {"1850"},
		"to":        {"1900"},
		"subject":   {"Health"},
		"q":         {"smith"},
		"timeline":  {"session"},
		"page":      {"2"},
		"page_size": {"50"},
		"selected":  {"12"},
		"ignored":   {"x"},
	}
	got, err := FromQuery(values, engine.DefaultViewState())
	require.NoError(t, err)

	want := engine.ViewState{
		YearStart: 1850, YearEnd: 1900,
		Subject: "Health", Query: "smith",
		Timeline: engine.TimelineSession,
		Page:     2, PageSize: 50, SelectedID: 12,
	}
	assert.Equal(t, want, got)
}

func TestFromQuery_Defaults(t *testing.T) {
	got, err := FromQuery(url.Values{}, engine.DefaultViewState())
	require.NoError(t, err)
	assert.Equal(t, engine.DefaultViewState(), got)
}

func TestFromQuery_Normalizes(t *testing.T) {
	got, err := FromQuery(url.Values{"timeline": {"decade"}, "page_size": {"33"}, "page": {"-4"}}, engine.DefaultViewState())
	require.NoError(t, err)
	assert.Equal(t, engine.TimelineYear, got.Timeline)
	assert.Equal(t, engine.DefaultPageSize, got.PageSize)
	assert.Zero(t, got.Page)
}

func TestFromQuery_KeepsInvertedRange(t *testing.T) {
	got, err := FromQuery(url.Values{"from": {"1900"}, "to": {"1800"}}, engine.DefaultViewState())
	require.NoError(t, err)
	assert.Equal(t, 1900, got.YearStart)
	assert.Equal(t, 1800, got.YearEnd)
}

func TestFromQuery_BadInteger(t *testing.T) {
	_, err := FromQuery(url.Values{"from": {"eighteen"}}, engine.DefaultViewState())
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrInvalidInput)
	assert.Equal(t, "bad_parameter", errs.CodeOf(err))
}

func TestFromJSON(t *testing.T) {
	got, err := FromJSON([]byte(`{"from":1900,"to":1950,"relief":"Real Property","page_size":100}`), engine.DefaultViewState())
	require.NoError(t, err)

	assert.Equal(t, 1900, got.YearStart)
	assert.Equal(t, 1950, got.YearEnd)
	assert.Equal(t, "Real Property", got.Relief)
	assert.Equal(t, 100, got.PageSize)
	assert.Equal(t, engine.TimelineYear, got.Timeline)
}

func TestFromJSON_Rejects(t *testing.T) {
	bodies := map[string]string{
		"unknown field":   `{"from":1900,"colour":"red"}`,
		"wrong type":      `{"from":"1900"}`,
		"bad page size":   `{"page_size":7}`,
		"bad timeline":    `{"timeline":"decade"}`,
		"negative page":   `{"page":-1}`,
		"not an object":   `[1,2]`,
		"fractional year": `{"to":1900.5}`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			_, err := FromJSON([]byte(body), engine.DefaultViewState())
			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrInvalidInput)
		})
	}
}

func TestParseAction(t *testing.T) {
	a, err := ParseAction([]byte(`{"action":"toggle_subject","value":"Health"}`))
	require.NoError(t, err)

	s, err := a.Apply(engine.DefaultViewState())
	require.NoError(t, err)
	assert.Equal(t, "Health", s.Subject)

	s, err = a.Apply(s)
	require.NoError(t, err)
	assert.Empty(t, s.Subject)
}

func TestParseAction_Rejects(t *testing.T) {
	for _, body := range []string{
		`{"action":"explode"}`,
		`{"value":1}`,
		`{"action":"select","extra":true}`,
		`{"action":"set_range","value":[1850]}`,
		`{"action":"set_range","value":[1850,1900,1950]}`,
		`{"action":"set_range","value":"1800-1850"}`,
		`{"action":"set_range","value":[1850.5,1900]}`,
		`{"action":"toggle_subject","value":null}`,
		`{"action":"toggle_subject"}`,
		`{"action":"toggle_relief","value":3}`,
		`{"action":"set_query","value":["smith"]}`,
		`{"action":"set_timeline"}`,
		`{"action":"set_page","value":"two"}`,
		`{"action":"set_page_size","value":null}`,
		`{"action":"select","value":-1}`,
	} {
		_, err := ParseAction([]byte(body))
		assert.ErrorIs(t, err, errs.ErrInvalidInput, body)
	}
}

func TestActionApply(t *testing.T) {
	base := engine.DefaultViewState().SetPage(3)

	tests := []struct {
		body  string
		check func(t *testing.T, s engine.ViewState)
	}{
		{`{"action":"set_range","value":[1800,1850]}`, func(t *testing.T, s engine.ViewState) {
			assert.Equal(t, 1800, s.YearStart)
			assert.Equal(t, 1850, s.YearEnd)
			assert.Zero(t, s.Page)
		}},
		{`{"action":"set_query","value":"jones"}`, func(t *testing.T, s engine.ViewState) {
			assert.Equal(t, "jones", s.Query)
		}},
		{`{"action":"reset_query"}`, func(t *testing.T, s engine.ViewState) {
			assert.Empty(t, s.Query)
		}},
		{`{"action":"set_timeline","value":"session"}`, func(t *testing.T, s engine.ViewState) {
			assert.Equal(t, engine.TimelineSession, s.Timeline)
			assert.Equal(t, 3, s.Page)
		}},
		{`{"action":"set_page","value":5}`, func(t *testing.T, s engine.ViewState) {
			assert.Equal(t, 5, s.Page)
		}},
		{`{"action":"set_page_size","value":50}`, func(t *testing.T, s engine.ViewState) {
			assert.Equal(t, 50, s.PageSize)
			assert.Zero(t, s.Page)
		}},
		{`{"action":"select","value":42}`, func(t *testing.T, s engine.ViewState) {
			assert.Equal(t, 42, s.SelectedID)
		}},
		{`{"action":"toggle_relief","value":"Real Property"}`, func(t *testing.T, s engine.ViewState) {
			assert.Equal(t, "Real Property", s.Relief)
		}},
		{`{"action":"reset_relief"}`, func(t *testing.T, s engine.ViewState) {
			assert.Empty(t, s.Relief)
		}},
		{`{"action":"reset_subject"}`, func(t *testing.T, s engine.ViewState) {
			assert.Empty(t, s.Subject)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			a, err := ParseAction([]byte(tt.body))
			require.NoError(t, err)
			s, err := a.Apply(base)
			require.NoError(t, err)
			tt.check(t, s)
		})
	}
}

func TestActionApply_BadValue(t *testing.T) {
	base := engine.DefaultViewState().ToggleSubject("Health")
	for _, a := range []Action{
		{Action: ActionSetPage, Value: json.RawMessage(`"two"`)},
		{Action: ActionSetRange, Value: json.RawMessage(`[1850]`)},
		{Action: ActionSetRange, Value: json.RawMessage(`[1850,1900,1950]`)},
		{Action: ActionSetRange, Value: json.RawMessage(`"1800-1850"`)},
		{Action: ActionToggleSubject, Value: json.RawMessage(`null`)},
		{Action: ActionToggleSubject},
		{Action: "explode"},
	} {
		s, err := a.Apply(base)
		assert.ErrorIs(t, err, errs.ErrInvalidInput, string(a.Value))
		assert.Equal(t, base, s)
	}
}
