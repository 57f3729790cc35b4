package main

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/yukikurage/task-report-api/internal/auth"
	"github.com/yukikurage/task-report-api/internal/config"
	"github.com/yukikurage/task-report-api/internal/constants"
	"github.com/yukikurage/task-report-api/internal/database"
	"github.com/yukikurage/task-report-api/internal/handlers"
	"github.com/yukikurage/task-report-api/internal/middleware"
	"github.com/yukikurage/task-report-api/internal/repository"
	"github.com/yukikurage/task-report-api/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run migrations and start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := bootstrap()
		if err != nil {
			return err
		}

		gin.SetMode(cfg.GinMode)

		if err := database.Migrate(database.GetDB()); err != nil {
			return err
		}

		r := gin.New()
		r.Use(gin.Recovery(), middleware.RequestLogger())

		store, err := newSessionStore(cfg)
		if err != nil {
			return err
		}
		r.Use(sessions.Sessions(constants.SessionCookieName, store))

		db := database.GetDB()
		userRepo := repository.NewUserRepository(db)
		taskRepo := repository.NewTaskRepository(db)
		tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTIssuer, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

		if err := handlers.RegisterRoutes(r, handlers.Services{
			Auth:    services.NewAuthService(userRepo, tokens),
			Users:   services.NewUserService(userRepo),
			Tasks:   services.NewTaskService(taskRepo, userRepo),
			Reports: services.NewReportService(taskRepo),
		}); err != nil {
			return fmt.Errorf("failed to register routes: %w", err)
		}

		addr := fmt.Sprintf(":%d", cfg.ServerPort)
		log.Info().Str("addr", addr).Msg("server starting")
		return r.Run(addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// newSessionStore uses redis when REDIS_HOST is set and signed cookies
// otherwise.
func newSessionStore(cfg *config.Config) (sessions.Store, error) {
	var store sessions.Store
	if cfg.RedisHost != "" {
		redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
		rs, err := redisStore.NewStore(
			10,        // Redis pool size
			"tcp",     // network type
			redisAddr, // Redis address from config
			"",        // username (empty for default user)
			"",        // password (empty = no password)
			[]byte(cfg.SessionSecret),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create Redis store: %w", err)
		}
		store = rs
		log.Info().Str("addr", redisAddr).Msg("using redis session store")
	} else {
		store = cookie.NewStore([]byte(cfg.SessionSecret))
		log.Warn().Msg("REDIS_HOST not set, using cookie session store")
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}
