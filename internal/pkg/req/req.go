/*
Package req provides helpers for HTTP request parsing and data binding.

It encapsulates strict JSON decoding with error translation into the
application's coded error type.
*/
package req

import (
	"encoding/json"
	"net/http"
	"strings"

	"plaza/internal/pkg/errs"
)

// MaxBodySize limits the request body for room API calls. Position reports
// and chat messages are tiny; anything larger is hostile or broken.
const MaxBodySize int64 = 16 << 10 // 16 KB

// BindJSON binds the JSON request body to the destination struct dst.
// Unknown fields and trailing content are rejected.
func BindJSON(w http.ResponseWriter, r *http.Request, dst any) *errs.CustomError {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "application/json") {
		return errs.NewError(errs.ErrUnsupportedMediaType)
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return errs.NewError(errs.ErrInvalidJSONFormat)
	}

	if decoder.More() {
		return errs.NewError(errs.ErrExtraContentInBody)
	}

	return nil
}
