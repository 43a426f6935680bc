package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/erhancapar/kuzgun-backend/internal/jwt"
	"github.com/erhancapar/kuzgun-backend/internal/models"
	"github.com/erhancapar/kuzgun-backend/internal/snowflake"
	"github.com/erhancapar/kuzgun-backend/internal/store"
)

func Register(w http.ResponseWriter, r *http.Request) {
	type Registration struct {
		Email    string `json:"email"`
		Username string `json:"username"`
		Password string `json:"password"`
	}

	var registration Registration
	err := json.NewDecoder(r.Body).Decode(&registration)
	if err != nil {
		sugar.Debug(err)
		respondMsg(w, http.StatusBadRequest, "invalid_data")
		return
	}

	if err := policy.Email(registration.Email); err != nil {
		respondMsg(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := policy.Username(registration.Username); err != nil {
		respondMsg(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := policy.Password(registration.Password); err != nil {
		respondMsg(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()

	_, err = users.FindByEmail(ctx, registration.Email)
	if err == nil {
		respondMsg(w, http.StatusBadRequest, "email_taken")
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		sugar.Error(err)
		respondInternalError(w)
		return
	}

	username := strings.ToLower(registration.Username)

	_, err = users.FindByUsername(ctx, username)
	if err == nil {
		respondMsg(w, http.StatusBadRequest, "username_taken")
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		sugar.Error(err)
		respondInternalError(w)
		return
	}

	passwordBytes, err := bcrypt.GenerateFromPassword([]byte(registration.Password), bcryptCost)
	if err != nil {
		sugar.Error(err)
		respondInternalError(w)
		return
	}

	userID, err := snowflake.Generate()
	if err != nil {
		sugar.Error(err)
		respondInternalError(w)
		return
	}

	user := models.User{
		ID:       userID,
		Email:    registration.Email,
		Username: username,
		Password: passwordBytes,
	}

	// the lookups above race with concurrent registrations, so the unique
	// constraint has the final word
	err = users.Create(ctx, &user)
	if errors.Is(err, store.ErrDuplicateEmail) {
		respondMsg(w, http.StatusBadRequest, "email_taken")
		return
	} else if errors.Is(err, store.ErrDuplicateUsername) {
		respondMsg(w, http.StatusBadRequest, "username_taken")
		return
	} else if err != nil {
		sugar.Error(err)
		respondInternalError(w)
		return
	}

	token, err := jwt.CreateToken(user.ID)
	if err != nil {
		sugar.Error(err)
		respondInternalError(w)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"msg":   "success",
		"token": token,
		"user":  user,
	})
}

func Login(w http.ResponseWriter, r *http.Request) {
	type Credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var credentials Credentials
	err := json.NewDecoder(r.Body).Decode(&credentials)
	if err != nil {
		sugar.Debug(err)
		respondMsg(w, http.StatusBadRequest, "invalid_data")
		return
	}

	// unknown email and wrong password answer identically so accounts can't
	// be enumerated
	user, err := users.FindByEmail(r.Context(), credentials.Email)
	if errors.Is(err, store.ErrNotFound) {
		respondMsg(w, http.StatusBadRequest, "credentials_wrong")
		return
	} else if err != nil {
		sugar.Error(err)
		respondInternalError(w)
		return
	}

	err = bcrypt.CompareHashAndPassword(user.Password, []byte(credentials.Password))
	if err != nil {
		sugar.Debug("password mismatch for user ID ", user.ID)
		respondMsg(w, http.StatusBadRequest, "credentials_wrong")
		return
	}

	token, err := jwt.CreateToken(user.ID)
	if err != nil {
		sugar.Error(err)
		respondInternalError(w)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  user,
	})
}
