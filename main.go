package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"langswitch/internal/config"
	"langswitch/internal/database"
	"langswitch/internal/handlers"
	"langswitch/internal/i18n"
	authmw "langswitch/internal/middleware"
	"langswitch/internal/repository"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	i18n.Load(cfg.DefaultLang)

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	userRepo := repository.NewUserRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	localeRepo := repository.NewUserLocaleRepository(db)

	langHandler := handlers.NewLangHandler(settingsRepo, localeRepo, cfg.DefaultLang, cfg.SiteLangs)
	settingsHandler := handlers.NewSettingsHandler(settingsRepo, langHandler)
	authHandler := handlers.NewAuthHandler(userRepo, localeRepo, cfg.JWTSecret)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(i18n.Middleware(cfg.DefaultLang, langHandler.Offered))

	// Static files (public)
	fileServer := http.FileServer(http.Dir("static"))
	r.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	// Public routes (no auth)
	r.Get("/", langHandler.Picker)
	r.Get("/lang", langHandler.SetLang)
	r.Get("/api/languages", langHandler.Options)
	r.Get("/api/language/detect", langHandler.Detect)
	r.Get("/login", authHandler.LoginPage)
	r.Post("/login", authHandler.Login)
	r.Get("/setup", authHandler.SetupPage)
	r.Post("/setup", authHandler.Setup)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(authmw.RequireAuth(cfg.JWTSecret))

		r.Post("/logout", authHandler.Logout)

		r.Get("/admin/settings", settingsHandler.Page)
		r.Put("/api/settings/languages", settingsHandler.SaveLanguages)
		r.Put("/api/settings/default-language", settingsHandler.SaveDefault)
		r.Put("/api/profile/locale", langHandler.SaveLocale)
	})

	addr := fmt.Sprintf(":%s", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		<-ctx.Done()
		log.Println("Shutting down server...")
		srv.Shutdown(context.Background())
	}()

	log.Printf("Server starting on http://localhost%s", addr)
	log.Printf("Offered languages: %v (default %s)", cfg.SiteLangs, cfg.DefaultLang)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server failed: %v", err)
	}
}
