package httpx

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/target/jokeboard/internal/domain/model"
	apperrors "github.com/target/jokeboard/internal/errors"
)

// WriteJSON writes a JSON response with the given status code and data.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	// Client disconnects can't be recovered from here.
	_, _ = buf.WriteTo(w)
}

// ErrorParams groups parameters for WriteError.
type ErrorParams struct {
	Code    int
	ErrCode string
	Message string
	Fields  map[string]string
}

type errorBody struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// WriteError writes a JSON error response.
func WriteError(w http.ResponseWriter, p ErrorParams) {
	WriteJSON(w, p.Code, errorBody{Error: p.ErrCode, Message: p.Message, Fields: p.Fields})
}

// StatusForError maps an error to the HTTP status it should produce.
func StatusForError(err error) int {
	var fe model.FieldErrors
	if errors.As(err, &fe) {
		return http.StatusBadRequest
	}
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeForbidden:
		return http.StatusForbidden
	case apperrors.ErrCodeConflict:
		return http.StatusConflict
	case apperrors.ErrCodeValidation, apperrors.ErrCodeForeignKey:
		return http.StatusBadRequest
	case apperrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case apperrors.ErrCodeCanceled:
		// nginx's "client closed request"; nobody is listening anyway.
		return 499
	default:
		return http.StatusInternalServerError
	}
}

// WriteAppError writes err as a JSON error. Internal details never reach the client.
func WriteAppError(w http.ResponseWriter, err error) {
	status := StatusForError(err)
	p := ErrorParams{Code: status, Message: apperrors.PublicMessage(err)}

	if fe, ok := model.AsFieldErrors(err); ok {
		p.ErrCode = string(apperrors.ErrCodeValidation)
		p.Message = "Invalid input"
		p.Fields = fe
	} else if code := apperrors.GetCode(err); code != "" {
		p.ErrCode = string(code)
		if field := apperrors.GetField(err); field != "" {
			p.Fields = map[string]string{field: p.Message}
		}
	} else {
		p.ErrCode = string(apperrors.ErrCodeInternal)
	}
	WriteError(w, p)
}
