package utils

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-sync-keeper/models"
)

const msgEncodeFailed = "error writing data to JSON"

// WriteJSON writes data as a JSON body with the given status. When data
// cannot be encoded the response becomes a 500 in the error shape and the
// encoding error is returned.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	body, err := json.Marshal(data)
	if err != nil {
		writeRaw(w, []byte(`{"error":"`+msgEncodeFailed+`"}`), http.StatusInternalServerError)
		return 0, fmt.Errorf("%s: %w", msgEncodeFailed, err)
	}

	return writeRaw(w, body, statusCode)
}

// WriteJSONError writes a {"error": message} body with the given status.
// Every failure of the sync API is reported in this shape.
func WriteJSONError(w http.ResponseWriter, message string, statusCode int) (int, error) {
	return WriteJSON(w, models.ErrorResponse{Error: message}, statusCode)
}

func writeRaw(w http.ResponseWriter, body []byte, statusCode int) (int, error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return w.Write(body)
}
