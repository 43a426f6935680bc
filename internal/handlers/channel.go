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

func CreateChannel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	type CreateRequest struct {
		Name    string `json:"name" validate:"required"`
		GuildID int64  `json:"guild_id,string" validate:"required"`
	}

	var create CreateRequest
	err := json.NewDecoder(r.Body).Decode(&create)
	if err != nil {
		sugar.Debug(err)
		respondMsg(w, http.StatusBadRequest, "invalid_data")
		return
	}

	err = validate.Struct(create)
	if err != nil {
		sugar.Debug(err)
		respondMsg(w, http.StatusBadRequest, "invalid_data")
		return
	}

	if err := policy.ChannelName(create.Name); err != nil {
		respondMsg(w, http.StatusBadRequest, err.Error())
		return
	}

	// refuse to create a channel under a guild that doesn't exist; relying on
	// the foreign key here would surface a 500 instead of a client error
	_, err = guilds.FindByID(ctx, create.GuildID)
	if errors.Is(err, store.ErrNotFound) {
		respondMsg(w, http.StatusBadRequest, "guild_not_found")
		return
	} else if err != nil {
		sugar.Error(err)
		respondInternalError(w)
		return
	}

	channelID, err := snowflake.Generate()
	if err != nil {
		sugar.Error(err)
		respondInternalError(w)
		return
	}

	channel := models.Channel{
		ID:      channelID,
		GuildID: create.GuildID,
		Name:    create.Name,
	}

	err = channels.Create(ctx, &channel)
	if err != nil {
		sugar.Error(err)
		respondInternalError(w)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"msg":     "success",
		"channel": channel,
	})
}

func GetChannelsByGuild(w http.ResponseWriter, r *http.Request) {
	guildID, err := strconv.ParseInt(chi.URLParam(r, "guildID"), 10, 64)
	if err != nil {
		respondMsg(w, http.StatusBadRequest, "invalid_data")
		return
	}

	list, err := channels.FindByGuild(r.Context(), guildID)
	if err != nil {
		sugar.Error(err)
		respondInternalError(w)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"channels": list})
}

func GetChannel(w http.ResponseWriter, r *http.Request) {
	channelID, err := strconv.ParseInt(chi.URLParam(r, "channelID"), 10, 64)
	if err != nil {
		respondMsg(w, http.StatusBadRequest, "invalid_data")
		return
	}

	channel, err := channels.FindByID(r.Context(), channelID)
	if errors.Is(err, store.ErrNotFound) {
		respondMsg(w, http.StatusNotFound, "channel_not_found")
		return
	} else if err != nil {
		sugar.Error(err)
		respondInternalError(w)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"channel": channel})
}
