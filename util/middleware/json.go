package middleware

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/geuresti/Hack-The-Woodz-Backend/util"
)

// JsonBodyMiddleware decodes the request body and puts the raw value in
// the request context under "json". Handlers do their own field checks.
func JsonBodyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			log.Println(err)
			util.WriteError(w, http.StatusBadRequest, "bad json")
			return
		}
		ctx := context.WithValue(r.Context(), "json", body)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
