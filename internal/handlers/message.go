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

func CreateMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := ctx.Value(UserIDKeyType{}).(int64)

	type CreateRequest struct {
		Content   string `json:"content" validate:"required"`
		ChannelID int64  `json:"channel_id,string" validate:"required"`
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

	_, err = channels.FindByID(ctx, create.ChannelID)
	if errors.Is(err, store.ErrNotFound) {
		respondMsg(w, http.StatusBadRequest, "channel_not_found")
		return
	} else if err != nil {
		sugar.Error(err)
		respondInternalError(w)
		return
	}

	messageID, err := snowflake.Generate()
	if err != nil {
		sugar.Error(err)
		respondInternalError(w)
		return
	}

	message := models.Message{
		ID:        messageID,
		ChannelID: create.ChannelID,
		AuthorID:  userID,
		Content:   create.Content,
	}

	err = messages.Create(ctx, &message)
	if err != nil {
		sugar.Error(err)
		respondInternalError(w)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"msg":     "success",
		"message": message,
	})
}

func GetMessagesByChannel(w http.ResponseWriter, r *http.Request) {
	channelID, err := strconv.ParseInt(chi.URLParam(r, "channelID"), 10, 64)
	if err != nil {
		respondMsg(w, http.StatusBadRequest, "invalid_data")
		return
	}

	list, err := messages.FindByChannel(r.Context(), channelID)
	if err != nil {
		sugar.Error(err)
		respondInternalError(w)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"messages": list})
}

func UpdateMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := ctx.Value(UserIDKeyType{}).(int64)

	messageID, err := strconv.ParseInt(chi.URLParam(r, "messageID"), 10, 64)
	if err != nil {
		respondMsg(w, http.StatusBadRequest, "invalid_data")
		return
	}

	type UpdateRequest struct {
		Content string `json:"content"`
	}

	var update UpdateRequest
	err = json.NewDecoder(r.Body).Decode(&update)
	if err != nil {
		sugar.Debug(err)
		respondMsg(w, http.StatusBadRequest, "invalid_data")
		return
	}

	message, err := messages.FindByID(ctx, messageID)
	if errors.Is(err, store.ErrNotFound) {
		respondMsg(w, http.StatusNotFound, "message_not_found")
		return
	} else if err != nil {
		sugar.Error(err)
		respondInternalError(w)
		return
	}

	if message.AuthorID != userID {
		sugar.Debugf("User ID [%d] tried to edit message ID [%d] they didn't author", userID, messageID)
		respondMsg(w, http.StatusForbidden, "forbidden")
		return
	}

	// existence and authorship settle before field rules
	if err := policy.MessageContent(update.Content); err != nil {
		respondMsg(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := messages.UpdateContent(ctx, messageID, update.Content)
	if err != nil {
		sugar.Error(err)
		respondInternalError(w)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"msg":     "success",
		"message": updated,
	})
}

func DeleteMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := ctx.Value(UserIDKeyType{}).(int64)

	messageID, err := strconv.ParseInt(chi.URLParam(r, "messageID"), 10, 64)
	if err != nil {
		respondMsg(w, http.StatusBadRequest, "invalid_data")
		return
	}

	message, err := messages.FindByID(ctx, messageID)
	if errors.Is(err, store.ErrNotFound) {
		respondMsg(w, http.StatusNotFound, "message_not_found")
		return
	} else if err != nil {
		sugar.Error(err)
		respondInternalError(w)
		return
	}

	if message.AuthorID != userID {
		sugar.Debugf("User ID [%d] tried to delete message ID [%d] they didn't author", userID, messageID)
		respondMsg(w, http.StatusForbidden, "forbidden")
		return
	}

	err = messages.DeleteByID(ctx, messageID)
	if errors.Is(err, store.ErrNotFound) {
		respondMsg(w, http.StatusNotFound, "message_not_found")
		return
	} else if err != nil {
		sugar.Error(err)
		respondInternalError(w)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"msg":        "success",
		"message_id": strconv.FormatInt(messageID, 10),
	})
}
