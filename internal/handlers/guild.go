package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/erhancapar/kuzgun-backend/internal/models"
	"github.com/erhancapar/kuzgun-backend/internal/snowflake"
	"github.com/erhancapar/kuzgun-backend/internal/store"
)

// The guild handlers are parameterized over the resource's public name so the
// same logic serves /api/guilds and /api/servers with matching response keys
// and error codes.

func CreateGuild(key string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		userID := ctx.Value(UserIDKeyType{}).(int64)

		type CreateRequest struct {
			Name string `json:"name"`
		}

		var create CreateRequest
		err := json.NewDecoder(r.Body).Decode(&create)
		if err != nil {
			sugar.Debug(err)
			respondMsg(w, http.StatusBadRequest, "invalid_data")
			return
		}

		if err := policy.GuildName(create.Name); err != nil {
			respondMsg(w, http.StatusBadRequest, "invalid_"+key+"_name")
			return
		}

		guildID, err := snowflake.Generate()
		if err != nil {
			sugar.Error(err)
			respondInternalError(w)
			return
		}

		guild := models.Guild{
			ID:      guildID,
			OwnerID: userID,
			Name:    create.Name,
		}

		err = guilds.Create(ctx, &guild)
		if err != nil {
			sugar.Error(err)
			respondInternalError(w)
			return
		}

		respondJSON(w, http.StatusCreated, map[string]any{
			"msg": "success",
			key:   guild,
		})
	}
}

func GetGuildsByOwner(key string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		userID := ctx.Value(UserIDKeyType{}).(int64)

		owned, err := guilds.FindByOwner(ctx, userID)
		if err != nil {
			sugar.Error(err)
			respondInternalError(w)
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{key + "s": owned})
	}
}

func GetGuild(key string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		guildID, err := strconv.ParseInt(chi.URLParam(r, "guildID"), 10, 64)
		if err != nil {
			respondMsg(w, http.StatusBadRequest, "invalid_data")
			return
		}

		guild, err := guilds.FindByID(r.Context(), guildID)
		if errors.Is(err, store.ErrNotFound) {
			respondMsg(w, http.StatusNotFound, key+"_not_found")
			return
		} else if err != nil {
			sugar.Error(err)
			respondInternalError(w)
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{key: guild})
	}
}

func EditGuild(key string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		userID := ctx.Value(UserIDKeyType{}).(int64)

		guildID, err := strconv.ParseInt(chi.URLParam(r, "guildID"), 10, 64)
		if err != nil {
			respondMsg(w, http.StatusBadRequest, "invalid_data")
			return
		}

		type EditRequest struct {
			Name                               *string `json:"name"`
			Description                        *string `json:"description"`
			IconURL                            *string `json:"icon_url"`
			BannerURL                          *string `json:"banner_url"`
			SplashURL                          *string `json:"splash_url"`
			AfkChannelID                       *int64  `json:"afk_channel_id,string"`
			AfkTimeout                         *int    `json:"afk_timeout"`
			SystemChannelID                    *int64  `json:"system_channel_id,string"`
			IsSystemWelcomeNotificationEnabled *bool   `json:"is_system_welcome_notification_enabled"`
			IsSystemBoostNotificationEnabled   *bool   `json:"is_system_boost_notification_enabled"`
			BoostLevel                         *int    `json:"boost_level"`
		}

		var edit EditRequest
		err = json.NewDecoder(r.Body).Decode(&edit)
		if err != nil {
			sugar.Debug(err)
			respondMsg(w, http.StatusBadRequest, "invalid_data")
			return
		}

		guild, err := guilds.FindByID(ctx, guildID)
		if errors.Is(err, store.ErrNotFound) {
			respondMsg(w, http.StatusNotFound, key+"_not_found")
			return
		} else if err != nil {
			sugar.Error(err)
			respondInternalError(w)
			return
		}

		if guild.OwnerID != userID {
			sugar.Debugf("User ID [%d] tried to edit %s ID [%d] they don't own", userID, key, guildID)
			respondMsg(w, http.StatusForbidden, "not_authorized")
			return
		}

		// existence and ownership settle before field rules
		if edit.Name != nil {
			if err := policy.GuildName(*edit.Name); err != nil {
				respondMsg(w, http.StatusBadRequest, "invalid_"+key+"_name")
				return
			}
		}
		if edit.Description != nil {
			if err := policy.Description(*edit.Description); err != nil {
				respondMsg(w, http.StatusBadRequest, err.Error())
				return
			}
		}
		if edit.AfkTimeout != nil {
			if err := policy.AfkTimeout(*edit.AfkTimeout); err != nil {
				respondMsg(w, http.StatusBadRequest, err.Error())
				return
			}
		}
		if edit.BoostLevel != nil {
			if err := policy.BoostLevel(*edit.BoostLevel); err != nil {
				respondMsg(w, http.StatusBadRequest, err.Error())
				return
			}
		}

		patch := store.GuildPatch{
			Name:                               edit.Name,
			Description:                        edit.Description,
			IconURL:                            edit.IconURL,
			BannerURL:                          edit.BannerURL,
			SplashURL:                          edit.SplashURL,
			AfkChannelID:                       edit.AfkChannelID,
			AfkTimeout:                         edit.AfkTimeout,
			SystemChannelID:                    edit.SystemChannelID,
			IsSystemWelcomeNotificationEnabled: edit.IsSystemWelcomeNotificationEnabled,
			IsSystemBoostNotificationEnabled:   edit.IsSystemBoostNotificationEnabled,
			BoostLevel:                         edit.BoostLevel,
		}

		if patch.IsEmpty() {
			respondMsg(w, http.StatusBadRequest, "no_fields_to_update")
			return
		}

		updated, err := guilds.UpdateByID(ctx, guildID, patch)
		if err != nil {
			sugar.Error(err)
			respondInternalError(w)
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{
			"msg": "success",
			key:   updated,
		})
	}
}

func DeleteGuild(key string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		userID := ctx.Value(UserIDKeyType{}).(int64)

		guildID, err := strconv.ParseInt(chi.URLParam(r, "guildID"), 10, 64)
		if err != nil {
			respondMsg(w, http.StatusBadRequest, "invalid_data")
			return
		}

		guild, err := guilds.FindByID(ctx, guildID)
		if errors.Is(err, store.ErrNotFound) {
			respondMsg(w, http.StatusNotFound, key+"_not_found")
			return
		} else if err != nil {
			sugar.Error(err)
			respondInternalError(w)
			return
		}

		if guild.OwnerID != userID {
			sugar.Debugf("User ID [%d] tried to delete %s ID [%d] they don't own", userID, key, guildID)
			respondMsg(w, http.StatusForbidden, "not_authorized")
			return
		}

		err = guilds.DeleteByID(ctx, guildID)
		if errors.Is(err, store.ErrNotFound) {
			respondMsg(w, http.StatusNotFound, key+"_not_found")
			return
		} else if err != nil {
			sugar.Error(err)
			respondInternalError(w)
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{
			"msg":       "success",
			key + "_id": strconv.FormatInt(guildID, 10),
		})
	}
}
