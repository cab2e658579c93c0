package utils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/go-playground/validator/v10"
	internal_errors "github.com/itchan-dev/shopkeeper/shared/errors"
	"github.com/itchan-dev/shopkeeper/shared/logger"
)

var (
	validate      = newValidator()
	exposeDetails atomic.Bool
)

func init() {
	exposeDetails.Store(true)
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report json names, clients never see Go field names
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// ExposeErrorDetails controls whether 500 responses carry the underlying
// error. Disabled in production.
func ExposeErrorDetails(enabled bool) {
	exposeDetails.Store(enabled)
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		logger.Log.Error("failed to encode response", "error", err)
		WriteErrorAndStatusCode(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}

func WriteErrorAndStatusCode(w http.ResponseWriter, err error) {
	var e *internal_errors.ErrorWithStatusCode
	if errors.As(err, &e) {
		writeError(w, e.StatusCode, ErrorResponse{Message: e.Message})
		return
	}
	// default error is 500
	logger.Log.Error("internal error", "error", err)
	resp := ErrorResponse{Message: "Internal server error"}
	if exposeDetails.Load() {
		resp.Detail = err.Error()
	}
	writeError(w, http.StatusInternalServerError, resp)
}

func writeError(w http.ResponseWriter, status int, resp ErrorResponse) {
	body, _ := json.Marshal(resp)
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}

func DecodeValidate(r io.ReadCloser, body any) error {
	if err := Decode(r, body); err != nil {
		return err
	}
	return Validate(body)
}

func Validate(body any) error {
	err := validate.Struct(body)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return internal_errors.Validation("Invalid request body")
	}
	var missing, invalid []string
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
		} else {
			invalid = append(invalid, fe.Field())
		}
	}
	sort.Strings(missing)
	sort.Strings(invalid)
	if len(missing) > 0 {
		return internal_errors.Validation("Required fields missing: " + strings.Join(missing, ", "))
	}
	return internal_errors.Validation("Invalid fields: " + strings.Join(invalid, ", "))
}

func Decode(r io.ReadCloser, body any) error {
	if err := json.NewDecoder(r).Decode(body); err != nil {
		logger.Log.Debug("failed to decode body", "error", err)
		return internal_errors.Validation("Body is invalid json")
	}
	return nil
}
