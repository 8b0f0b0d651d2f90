package validators

import (
	"net/http"
	"strings"

	pkgerrors "github.com/dcastellanos/mobilecart/pkg/errors"
)

// RequireQuery returns the trimmed query parameter or a validation
// error when it is absent or blank.
func RequireQuery(r *http.Request, key string) (string, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "query parameter is required").WithDetails(map[string]any{"field": key})
	}
	return raw, nil
}
