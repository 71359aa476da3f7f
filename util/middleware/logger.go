package middleware

import (
	"net/http"
	"os"

	"github.com/gorilla/handlers"
)

func LoggerMiddleware(next http.Handler) http.Handler {
	return handlers.LoggingHandler(os.Stdout, next)
}
