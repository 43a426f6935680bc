package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/erhancapar/kuzgun-backend/internal/keyValue"
	"github.com/erhancapar/kuzgun-backend/internal/store"
)

func GetUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := ctx.Value(UserIDKeyType{}).(int64)

	paramUserID := chi.URLParam(r, "userID")

	var requestedUserID int64
	if paramUserID == "self" {
		requestedUserID = userID
	} else {
		var err error
		requestedUserID, err = strconv.ParseInt(paramUserID, 10, 64)
		if err != nil {
			respondMsg(w, http.StatusBadRequest, "invalid_data")
			return
		}
	}

	user, err := users.FindByID(ctx, requestedUserID)
	if errors.Is(err, store.ErrNotFound) {
		respondMsg(w, http.StatusNotFound, "user_not_found")
		return
	} else if err != nil {
		sugar.Error(err)
		respondInternalError(w)
		return
	}

	// the email only belongs to its owner
	if requestedUserID != userID {
		user.Email = ""
	}

	respondJSON(w, http.StatusOK, map[string]any{"user": user})
}

func EditUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := ctx.Value(UserIDKeyType{}).(int64)

	type EditRequest struct {
		DisplayName        *string `json:"display_name"`
		AboutMe            *string `json:"about_me"`
		AvatarURL          *string `json:"avatar_url"`
		BannerURL          *string `json:"banner_url"`
		BannerHex          *string `json:"banner_hex"`
		OnlineStatus       *int    `json:"online_status"`
		StatusEmoji        *string `json:"status_emoji"`
		StatusText         *string `json:"status_text"`
		StatusTimeout      *int64  `json:"status_timeout"`
		Is2faEnabled       *bool   `json:"is_2fa_enabled"`
		AcceptMessagesFrom *int    `json:"accept_messages_from"`
	}

	var edit EditRequest
	err := json.NewDecoder(r.Body).Decode(&edit)
	if err != nil {
		sugar.Debug(err)
		respondMsg(w, http.StatusBadRequest, "invalid_data")
		return
	}

	if edit.DisplayName != nil {
		if err := policy.DisplayName(*edit.DisplayName); err != nil {
			respondMsg(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if edit.AboutMe != nil {
		if err := policy.AboutMe(*edit.AboutMe); err != nil {
			respondMsg(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if edit.BannerHex != nil {
		if err := policy.BannerHex(*edit.BannerHex); err != nil {
			respondMsg(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if edit.OnlineStatus != nil {
		if err := policy.StatusSetting(*edit.OnlineStatus); err != nil {
			respondMsg(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if edit.StatusEmoji != nil {
		if err := policy.StatusEmoji(*edit.StatusEmoji); err != nil {
			respondMsg(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if edit.StatusText != nil {
		if err := policy.StatusText(*edit.StatusText); err != nil {
			respondMsg(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if edit.AcceptMessagesFrom != nil {
		if err := policy.StatusSetting(*edit.AcceptMessagesFrom); err != nil {
			respondMsg(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	patch := store.UserPatch{
		DisplayName:        edit.DisplayName,
		AboutMe:            edit.AboutMe,
		AvatarURL:          edit.AvatarURL,
		BannerURL:          edit.BannerURL,
		BannerHex:          edit.BannerHex,
		OnlineStatus:       edit.OnlineStatus,
		StatusEmoji:        edit.StatusEmoji,
		StatusText:         edit.StatusText,
		StatusTimeout:      edit.StatusTimeout,
		Is2faEnabled:       edit.Is2faEnabled,
		AcceptMessagesFrom: edit.AcceptMessagesFrom,
	}

	if patch.IsEmpty() {
		respondMsg(w, http.StatusBadRequest, "no_fields_to_update")
		return
	}

	user, err := users.UpdateByID(ctx, userID, patch)
	if err != nil {
		sugar.Error(err)
		respondInternalError(w)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"msg":  "success",
		"user": user,
	})
}

func RemoveUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := ctx.Value(UserIDKeyType{}).(int64)

	err := users.DeleteByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		respondMsg(w, http.StatusNotFound, "user_not_found")
		return
	} else if err != nil {
		sugar.Error(err)
		respondInternalError(w)
		return
	}

	// the auth middleware must stop trusting tokens for this account
	err = keyValue.Del(fmt.Sprintf("user_exists:%d", userID))
	if err != nil {
		sugar.Error(err)
		respondInternalError(w)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"msg":     "success",
		"user_id": strconv.FormatInt(userID, 10),
	})
}
