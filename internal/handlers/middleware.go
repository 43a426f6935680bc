package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/erhancapar/kuzgun-backend/internal/jwt"
	"github.com/erhancapar/kuzgun-backend/internal/keyValue"
)

type UserIDKeyType struct{}

// UserVerifier gates protected routes. It expects "Authorization: Bearer
// <token>", verifies the signature and expiry, and confirms the token's user
// still exists so tokens outliving a deleted account stop working.
func UserVerifier(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			respondMsg(w, http.StatusUnauthorized, "token_missing")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			respondMsg(w, http.StatusUnauthorized, "token_malformed")
			return
		}

		userToken, err := jwt.VerifyToken(parts[1])
		if err != nil {
			sugar.Debug(err)
			respondMsg(w, http.StatusUnauthorized, "token_invalid")
			return
		}

		// check if user exists
		key := fmt.Sprintf("user_exists:%d", userToken.UserID)

		userFound := false

		value, err := keyValue.Get(key)
		if err != nil {
			sugar.Error(err)
			respondInternalError(w)
			return
		}

		if value == "" { // user isn't cached
			userFound, err = users.Exists(r.Context(), userToken.UserID)
			if err != nil {
				sugar.Error(err)
				respondInternalError(w)
				return
			}
			if userFound {
				err = keyValue.Set(key, "y", 15*time.Minute)
				if err != nil {
					sugar.Error(err)
					respondInternalError(w)
					return
				}
			}
		} else {
			userFound = true
		}

		if !userFound {
			respondMsg(w, http.StatusUnauthorized, "token_invalid")
			return
		}

		// this passes the authenticated user's ID to next handler
		ctx := context.WithValue(r.Context(), UserIDKeyType{}, userToken.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
