package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-sync-keeper/models"
)

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := errorMessage(resp.Body())

	switch resp.StatusCode() {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, body)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, body)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, body)
	case http.StatusConflict:
		return mapConflict(resp.Body(), body)
	case http.StatusServiceUnavailable:
		return fmt.Errorf("%w: %s", ErrServiceUnavailable, body)
	case http.StatusInternalServerError:
		return fmt.Errorf("%w: %s", ErrInternalServerError, body)
	default:
		if body == "" {
			body = http.StatusText(resp.StatusCode())
		}
		if resp.StatusCode() >= http.StatusInternalServerError {
			return fmt.Errorf("%w: http %d: %s", ErrInternalServerError, resp.StatusCode(), body)
		}
		return fmt.Errorf("http %d: %s", resp.StatusCode(), body)
	}
}

func mapConflict(raw []byte, message string) error {
	var conflict models.ConflictResponse
	if err := json.Unmarshal(raw, &conflict); err != nil || !conflict.Conflict {
		return fmt.Errorf("%w: %s", ErrConflict, message)
	}

	return &ConflictError{
		CloudData:      conflict.CloudData,
		CloudTimestamp: conflict.CloudTimestamp,
	}
}

// errorMessage extracts the "error" field of a JSON error body, falling back
// to the trimmed raw body.
func errorMessage(raw []byte) string {
	var body models.ErrorResponse
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		return body.Error
	}
	return strings.TrimSpace(string(raw))
}
