package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/Dan9191/openbanqr/internal/apperr"
	"github.com/Dan9191/openbanqr/internal/middleware"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

var (
	validate   *validator.Validate
	translator ut.Translator
)

func init() {
	validate = validator.New()

	english := en.New()
	translator, _ = ut.New(english, english).GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Report fields by their JSON names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Errorf("Failed to encode response: %v", err)
	}
}

func statusFor(err error) int {
	switch apperr.Kind(err) {
	case apperr.ErrNotFound:
		return http.StatusNotFound
	case apperr.ErrInsufficientFunds, apperr.ErrInsufficientShares, apperr.ErrInvalidArgument:
		return http.StatusBadRequest
	case apperr.ErrConflict:
		return http.StatusConflict
	case apperr.ErrForbidden:
		return http.StatusForbidden
	case apperr.ErrUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps domain errors onto status codes; anything unclassified is
// logged and hidden behind a 500.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		h.log.Errorf("%s %s failed: %v", r.Method, r.URL.Path, err)
		msg = http.StatusText(status)
	}
	h.writeJSON(w, status, map[string]string{"error": msg})
}

// decode reads a JSON body into dst and validates it, answering 400 on failure
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body: " + err.Error()})
		return false
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make(map[string]string, len(verrs))
			for _, fe := range verrs {
				fields[fe.Field()] = fe.Translate(translator)
			}
			h.writeJSON(w, http.StatusBadRequest, map[string]any{"error": "validation failed", "fields": fields})
			return false
		}
		h.writeError(w, r, err)
		return false
	}
	return true
}

// currentUser is the id Auth stored on the request
func currentUser(r *http.Request) int64 {
	id, _ := middleware.UserID(r.Context())
	return id
}

func pathID(r *http.Request) int64 {
	// the route pattern only admits digits
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id
}

// query reads typed query parameters, keeping the first parse error
type query struct {
	values url.Values
	err    error
}

func newQuery(r *http.Request) *query {
	return &query{values: r.URL.Query()}
}

func (q *query) fail(format string, args ...any) {
	if q.err == nil {
		q.err = apperr.InvalidArgument(format, args...)
	}
}

func (q *query) str(key, def string) string {
	if v := q.values.Get(key); v != "" {
		return v
	}
	return def
}

func (q *query) dec(key string, def decimal.Decimal) decimal.Decimal {
	if v := q.optDec(key); v != nil {
		return *v
	}
	return def
}

func (q *query) optDec(key string) *decimal.Decimal {
	raw := q.values.Get(key)
	if raw == "" {
		return nil
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		q.fail("%s must be a number", key)
		return nil
	}
	return &v
}

func (q *query) integer(key string, def int) int {
	raw := q.values.Get(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		q.fail("%s must be an integer", key)
		return def
	}
	return v
}

func (q *query) required(keys ...string) {
	for _, key := range keys {
		if q.values.Get(key) == "" {
			q.fail("%s is required", key)
		}
	}
}
