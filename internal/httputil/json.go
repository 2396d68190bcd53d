package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
)

type (
	// ErrorBody is the wire shape of every client-facing failure. Code is a
	// stable machine-readable identifier, Error a short human message.
	ErrorBody struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
)

func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "unable to encode response, server is mis-behaving", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(buf)))
	w.WriteHeader(status)
	w.Write(buf)
}

func WriteError(w http.ResponseWriter, status int, code string, msg string) {
	WriteJSON(w, status, ErrorBody{Error: msg, Code: code})
}

func DecodeJSON(r *http.Request, dest interface{}) error {
	if r.Body == nil {
		return errors.New("request body is required")
	}
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dest)
}
