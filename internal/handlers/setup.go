package handlers

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/erhancapar/kuzgun-backend/internal/models"
	"github.com/erhancapar/kuzgun-backend/internal/store"
	rules "github.com/erhancapar/kuzgun-backend/internal/validator"
)

var sugar *zap.SugaredLogger
var users *store.Users
var guilds *store.Guilds
var channels *store.Channels
var messages *store.Messages
var policy rules.Policy
var validate = validator.New()
var bcryptCost int

// Router wires the stores and handlers onto a chi mux. Exposed separately
// from Setup so tests can serve it through httptest.
func Router(cfg *models.ConfigFile, _sugar *zap.SugaredLogger, db *sql.DB) *chi.Mux {
	sugar = _sugar
	users = store.NewUsers(db)
	guilds = store.NewGuilds(db)
	channels = store.NewChannels(db)
	messages = store.NewMessages(db)
	policy = rules.Default()

	bcryptCost = cfg.BcryptCost
	if bcryptCost == 0 {
		bcryptCost = 12
	}

	r := chi.NewRouter()
	if cfg.PrintHttpRequests {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/api", func(api chi.Router) {
		api.Route("/users", func(r chi.Router) {
			r.Post("/register", Register)
			r.Post("/login", Login)
			r.With(UserVerifier).Post("/edit", EditUser)
			r.With(UserVerifier).Post("/remove", RemoveUser)
			r.With(UserVerifier).Get("/{userID}", GetUser)
		})

		// guilds and servers are two historical names for the same resource
		api.Route("/guilds", guildRoutes("guild"))
		api.Route("/servers", guildRoutes("server"))

		api.Route("/channels", func(r chi.Router) {
			r.Use(UserVerifier)
			r.Post("/", CreateChannel)
			r.Get("/guild/{guildID}", GetChannelsByGuild)
			r.Get("/{channelID}", GetChannel)
		})

		api.Route("/messages", func(r chi.Router) {
			r.Use(UserVerifier)
			r.Post("/", CreateMessage)
			r.Get("/channel/{channelID}", GetMessagesByChannel)
			r.Put("/{messageID}", UpdateMessage)
			r.Delete("/{messageID}", DeleteMessage)
		})
	})

	return r
}

// guildRoutes registers the guild resource under one of its two names. The
// key decides the wrapper field in responses (guild/guilds/guild_id vs
// server/servers/server_id).
func guildRoutes(key string) func(chi.Router) {
	return func(r chi.Router) {
		r.Use(UserVerifier)
		r.Post("/", CreateGuild(key))
		r.Get("/", GetGuildsByOwner(key))
		r.Get("/{guildID}", GetGuild(key))
		r.Put("/{guildID}", EditGuild(key))
		r.Delete("/{guildID}", DeleteGuild(key))
	}
}

func Setup(cfg *models.ConfigFile, _sugar *zap.SugaredLogger, db *sql.DB) error {
	r := Router(cfg, _sugar, db)

	address := fmt.Sprintf("%s:%s", cfg.Address, cfg.Port)

	if cfg.TlsCert != "" && cfg.TlsKey != "" {
		return http.ListenAndServeTLS(address, cfg.TlsCert, cfg.TlsKey, r)
	}
	return http.ListenAndServe(address, r)
}
