// Command payvment-demo is a minimal merchant application showing the SDK
// end to end: /login starts the OAuth dance against the platform and
// /oauth/callback completes it, then lists the merchant's stores.
//
// Configuration comes from PAYVMENT_* environment variables (optionally
// via a .env file).
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/jrsteele09/go-payvment/environment"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running demo: %s\n", err)
		os.Exit(1)
	}
	fmt.Println("Demo stopped")
}

func run() error {
	_ = godotenv.Load()

	displayAppname("Payvment Demo")

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	port := environment.GetEnv("PORT", "3000")
	baseURL := environment.GetEnv("DEMO_BASE_URL", "http://localhost:"+port)

	app := newApp(environment.FromEnv(), baseURL, log)

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Get("/", app.handleIndex)
	router.Get("/login", app.handleLogin)
	router.Get("/oauth/callback", app.handleCallback)
	router.Get("/stores", app.handleStores)

	server := &http.Server{Addr: ":" + port, Handler: router}
	go func() {
		log.Info().Str("addr", server.Addr).Msg("demo listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server.ListenAndServe")
		}
	}()

	waitForStopSignal()
	return shutdown(server)
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
