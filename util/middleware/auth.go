package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/geuresti/Hack-The-Woodz-Backend/domain"
	"github.com/geuresti/Hack-The-Woodz-Backend/util"
	"github.com/go-redis/redis/v8"
)

type AuthUserValue struct {
	ID       int
	Username string
	Token    string
}

// TokenAuthMiddleware resolves an "Authorization: Token <value>" header
// through the token cache and puts the caller identity in the request
// context. Requests without a resolvable token never reach the handler.
func TokenAuthMiddleware(tokens domain.TokenCache, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		parts := strings.Split(header, " ")

		if len(parts) < 2 || strings.ToLower(parts[0]) != "token" {
			log.Println("bad Authorization header")
			util.WriteUnauthorized(w)
			return
		}

		ctx, cancel := util.GetContextWithTimeout(context.Background())
		defer cancel()
		token := parts[1]
		id, username, err := tokens.GetAccountByToken(ctx, token)

		if err != nil {
			log.Println(err)
			if err == redis.Nil {
				util.WriteUnauthorized(w)
			} else {
				util.WriteInternalServerError(w)
			}
			return
		}

		ctx = context.WithValue(r.Context(), "user", AuthUserValue{
			ID:       id,
			Username: username,
			Token:    token,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
