package server

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/gowebpki/jcs"

	"github.com/spektr-org/privlaw/engine"
	"github.com/spektr-org/privlaw/errs"
)

type viewKey struct {
	Table string           `json:"table"`
	State engine.ViewState `json:"state"`
}

// viewETag digests the RFC 8785 canonical form of the table fingerprint and
// normalized state. Equal inputs always render equal views.
func viewETag(fingerprint string, state engine.ViewState) (string, error) {
	raw, err := json.Marshal(viewKey{Table: fingerprint, State: engine.NormalizeViewState(state)})
	if err != nil {
		return "", errs.Wrap(err, errs.CategoryInternalFailure, "etag_encode", "")
	}
	canonical, err := jcs.Transform(raw)
	if err != nil {
		return "", errs.Wrap(err, errs.CategoryInternalFailure, "etag_canonicalize", "")
	}
	sum := sha256.Sum256(canonical)
	return `"` + hex.EncodeToString(sum[:]) + `"`, nil
}

func etagMatches(header, tag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		candidate = strings.TrimPrefix(candidate, "W/")
		if candidate == "*" || candidate == tag {
			return true
		}
	}
	return false
}
