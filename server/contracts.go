package server

import (
	"time"

	"github.com/spektr-org/privlaw/engine"
	"github.com/spektr-org/privlaw/schema"
)

// Options configures the HTTP handler.
type Options struct {
	// Schema supplies the vocabularies used for rendering and /api/meta.
	// The zero value means schema.Default().
	Schema       schema.Config
	SessionTTL   time.Duration
	MaxSessions  int
	// MaxBodyBytes bounds JSON request bodies.
	MaxBodyBytes int64
}

type HealthResponse struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`
}

type MetaResponse struct {
	OK            bool              `json:"ok"`
	Subjects      []string          `json:"subjects"`
	Reliefs       []string          `json:"reliefs"`
	YearMin       int               `json:"yearMin"`
	YearMax       int               `json:"yearMax"`
	RangeMin      int               `json:"rangeMin"`
	RangeMax      int               `json:"rangeMax"`
	PageSizes     []int             `json:"pageSizes"`
	Records       int               `json:"records"`
	HasReliefData bool              `json:"hasReliefData"`
	Report        engine.LoadReport `json:"report"`
}

type ViewResponse struct {
	OK   bool              `json:"ok"`
	View *engine.ViewModel `json:"view"`
}

type DetailResponse struct {
	OK     bool           `json:"ok"`
	Detail *engine.Detail `json:"detail"`
}

type SessionResponse struct {
	OK   bool              `json:"ok"`
	ID   string            `json:"id"`
	View *engine.ViewModel `json:"view,omitempty"`
}
