package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/go-admin-frontend/internal/config"
	"github.com/jrsteele09/go-admin-frontend/server"
	"github.com/jrsteele09/go-admin-frontend/server/loginsession"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const sessionSweepInterval = 5 * time.Minute

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:           "admin-frontend",
		Short:         "Admin console front-end for the account service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := config.Load(config.WithConfigFile(configFile), config.WithFlags(cmd.Flags()))
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return err
			}
			setupLogging(c)

			for {
				if err := run(c); err != nil {
					log.Error().Err(err).Msg("Error running server")
					time.Sleep(1 * time.Second)
				} else {
					break
				}
			}
			log.Info().Msg("Server stopped")
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configFile, "config", "", "path to a YAML config file")
	flags.String("port", "8080", "port to listen on")
	flags.String("env", "DEV", "environment (DEV, PROD)")
	flags.String("log_level", "info", "log level")
	flags.String("upstream.base_url", "http://localhost:4550", "account service base URL")
	flags.Duration("upstream.timeout", 10*time.Second, "timeout for each account service call")
	flags.String("session.store", config.SessionStoreMemory, "session store (memory, redis)")
	flags.String("session.redis_addr", "localhost:6379", "redis address for the redis session store")
	return cmd
}

func setupLogging(c config.Config) {
	level, err := zerolog.ParseLevel(c.GetLogLevel())
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if c.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	}
}

func run(c config.Config) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("Recovered from panic")
			returnError = errors.New("panic recovered")
		}
	}()

	displayAppname(c.GetAppName())

	sessions, closeSessions, err := newSessionRepo(c)
	if err != nil {
		return err
	}
	defer closeSessions()

	handler, err := server.New(c, sessions)
	if err != nil {
		return err
	}
	defer handler.Close()

	httpServer := &http.Server{
		Addr:              c.GetPort(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- listenAndServe(httpServer)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-waitForStopSignal():
	}
	return shutdown(httpServer)
}

// newSessionRepo builds the configured session store and returns a func releasing it.
func newSessionRepo(c config.Config) (loginsession.Repo, func(), error) {
	switch c.GetSessionStore() {
	case config.SessionStoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     c.GetRedisAddr(),
			Password: c.GetRedisPassword(),
			DB:       c.GetRedisDB(),
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("connecting to redis at %s: %w", c.GetRedisAddr(), err)
		}
		log.Info().Str("addr", c.GetRedisAddr()).Msg("Using redis session store")
		return loginsession.NewRedisRepo(client), func() { _ = client.Close() }, nil

	case config.SessionStoreMemory, "":
		repo := loginsession.NewInMemoryRepo()
		stop := make(chan struct{})
		go sweepSessions(repo, stop)
		return repo, func() { close(stop) }, nil

	default:
		return nil, nil, fmt.Errorf("unknown session store %q", c.GetSessionStore())
	}
}

func sweepSessions(repo *loginsession.InMemoryRepo, stop <-chan struct{}) {
	ticker := time.NewTicker(sessionSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if n := repo.DeleteExpired(); n > 0 {
				log.Debug().Int("removed", n).Msg("Expired sessions removed")
			}
		case <-stop:
			return
		}
	}
}

func listenAndServe(server *http.Server) error {
	log.Info().Msgf("Server listening on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() <-chan os.Signal {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	return stop
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
