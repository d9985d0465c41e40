package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/wonny/fundwise/internal/apperrors"
	"github.com/wonny/fundwise/pkg/logger"
)

// UserIDHeader identifies the caller; absent = anonymous
const UserIDHeader = "X-User-ID"

// validate is safe for concurrent use and caches struct metadata
var validate = validator.New(validator.WithRequiredStructEnabled())

// userID returns the trimmed X-User-ID header ("" when anonymous)
func userID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(UserIDHeader))
}

// decodeAndValidate reads a JSON body into dest and runs struct validation
func decodeAndValidate(r *http.Request, dest interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid request body")
	}

	if err := validate.Struct(dest); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return apperrors.WithMessage(apperrors.ErrInvalidInput,
				"Field '"+fe.Field()+"' failed '"+fe.Tag()+"' validation")
		}
		return apperrors.Wrap(apperrors.ErrInvalidInput, err)
	}
	return nil
}

// queryInt parses an optional positive integer query parameter
func queryInt(r *http.Request, key string, def int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid '"+key+"' parameter")
	}
	return v, nil
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// respondError renders err as {"code","message"}; internal causes are logged only
func respondError(w http.ResponseWriter, r *http.Request, log *logger.Logger, err error) {
	appErr := apperrors.As(err)

	if appErr.Internal != nil {
		log.WithFields(map[string]interface{}{
			"code":   appErr.Code,
			"path":   r.URL.Path,
			"method": r.Method,
		}).WithError(appErr.Internal).Error("request failed")
	}

	respondJSON(w, appErr.StatusCode, map[string]string{
		"code":    appErr.Code,
		"message": appErr.Message,
	})
}
