package util

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
)

type errorBody struct {
	Err string `json:"error"`
}

type statusBody struct {
	Status string `json:"status"`
}

func writeBody(w http.ResponseWriter, statusCode int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Println(err)
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, http.StatusText(http.StatusInternalServerError))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(data)
}

// WriteError writes {"error": message} with the given status code.
func WriteError(w http.ResponseWriter, statusCode int, errorMessage string) {
	writeBody(w, statusCode, &errorBody{Err: errorMessage})
}

// WriteStatusMessage writes {"status": message} with the given status code.
func WriteStatusMessage(w http.ResponseWriter, statusCode int, message string) {
	writeBody(w, statusCode, &statusBody{Status: message})
}

func WriteJson(w http.ResponseWriter, res interface{}) {
	writeBody(w, http.StatusOK, res)
}

func WriteJsonStatus(w http.ResponseWriter, statusCode int, res interface{}) {
	writeBody(w, statusCode, res)
}

func WriteStatus(w http.ResponseWriter, statusCode int) {
	WriteError(w, statusCode, http.StatusText(statusCode))
}

func WriteUnauthorized(w http.ResponseWriter) {
	WriteStatus(w, http.StatusUnauthorized)
}

func WriteInternalServerError(w http.ResponseWriter) {
	WriteStatus(w, http.StatusInternalServerError)
}

func GetUrlQueryParam(r *http.Request, key string) string {
	keys, ok := r.URL.Query()[key]

	if !ok || len(keys[0]) < 1 {
		return ""
	}

	return keys[0]
}
