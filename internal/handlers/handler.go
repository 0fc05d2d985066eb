package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	mw "github.com/ruralpay/wallet/internal/middleware"
	"github.com/ruralpay/wallet/internal/services"
)

const maxBodyBytes = 1_048_576

var errInvalidQuery = errors.New("invalid query parameter")

// decodeBody reads a single JSON object into dst and validates it.
// It writes the error response itself and reports whether the caller may continue.
func decodeBody(w http.ResponseWriter, r *http.Request, v *services.ValidationHelper, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		services.SendErrorResponse(w, "Invalid request body", http.StatusBadRequest, nil)
		return false
	}

	if err := dec.Decode(&struct{}{}); err != io.EOF {
		services.SendErrorResponse(w, "Request body must only contain a single JSON object", http.StatusBadRequest, nil)
		return false
	}

	if err := v.ValidateStruct(dst); err != nil {
		services.SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return false
	}
	return true
}

func currentUser(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := mw.IdentityFromContext(r.Context())
	if !ok {
		services.SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return 0, false
	}
	return id.UserID, true
}

// queryInt parses an optional integer query parameter; absent yields 0.
func queryInt(r *http.Request, name string) (int64, bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, false, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, errInvalidQuery
	}
	return n, true, nil
}

type pageQuery struct {
	Page int `json:"page" validate:"required,gte=1,lte=10000"`
	Size int `json:"size" validate:"required,gte=1,lte=100"`
}

func parsePage(r *http.Request) (pageQuery, error) {
	page, _, err := queryInt(r, "page")
	if err != nil {
		return pageQuery{}, err
	}
	size, _, err := queryInt(r, "size")
	if err != nil {
		return pageQuery{}, err
	}
	return pageQuery{Page: int(page), Size: int(size)}, nil
}
