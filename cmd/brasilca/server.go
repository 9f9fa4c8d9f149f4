package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/Zoomchatlandingpage/brasil-cultural-agency/internal/api"
	"github.com/Zoomchatlandingpage/brasil-cultural-agency/internal/config"
	"github.com/Zoomchatlandingpage/brasil-cultural-agency/internal/conversation"
	"github.com/Zoomchatlandingpage/brasil-cultural-agency/internal/engine"
	"github.com/Zoomchatlandingpage/brasil-cultural-agency/internal/pricing"
	"github.com/Zoomchatlandingpage/brasil-cultural-agency/internal/profile"
	"github.com/Zoomchatlandingpage/brasil-cultural-agency/internal/storage"
	"github.com/Zoomchatlandingpage/brasil-cultural-agency/internal/travel"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the brasilca server (foreground)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running brasilca server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return stopServer()
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show brasilca system status",
	RunE: func(cmd *cobra.Command, args []string) error {
		return showStatus()
	},
}

func pidFilePath(dataDir string) string {
	return filepath.Join(dataDir, "brasilca.pid")
}

func writePIDFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0o644)
}

func readPIDFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(data)))
}

func removePIDFile(path string) {
	os.Remove(path)
}

// sqliteCatalog adapts the sqlite destination table to the pricing
// estimator's catalog interface.
type sqliteCatalog struct {
	store *storage.Store
}

func (c sqliteCatalog) ListActiveDestinations(ctx context.Context) ([]pricing.Destination, error) {
	rows, err := c.store.ListActiveDestinations(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]pricing.Destination, 0, len(rows))
	for _, d := range rows {
		out = append(out, pricing.Destination{
			Name:          d.Name,
			AirportCode:   strings.Split(d.AirportCodes, ",")[0],
			IdealProfiles: d.IdealProfiles,
		})
	}
	return out, nil
}

func newConversationStore(cfg config.ConversationConfig) (conversation.Store, error) {
	switch cfg.Store {
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			return nil, fmt.Errorf("connecting to redis at %s: %w", cfg.RedisAddr, err)
		}
		return conversation.NewRedisStore(client, cfg.TTL), nil
	default:
		return conversation.NewMemoryStore(cfg.MaxEntries, cfg.TTL), nil
	}
}

func runServer() error {
	fmt.Fprintf(os.Stderr, "brasilca version %s\n", version)

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logLevel := slog.LevelInfo
	if strings.EqualFold(cfg.Log.Level, "debug") {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	// Refuse to start twice. The health probe catches a live server even
	// when the PID file is stale.
	pidPath := pidFilePath(cfg.Storage.DataDir)
	healthURL := fmt.Sprintf("http://127.0.0.1:%d/health", cfg.Server.Port)
	healthClient := &http.Client{Timeout: 2 * time.Second}
	if resp, err := healthClient.Get(healthURL); err == nil {
		resp.Body.Close()
		if pid, pidErr := readPIDFile(pidPath); pidErr == nil {
			printWarning("brasilca is already running (PID %d)", pid)
			return fmt.Errorf("server already running (PID %d)", pid)
		}
		printWarning("brasilca is already running on port %d", cfg.Server.Port)
		return fmt.Errorf("server already running on port %d", cfg.Server.Port)
	}
	if err := writePIDFile(pidPath); err != nil {
		return fmt.Errorf("writing PID file: %w", err)
	}
	defer removePIDFile(pidPath)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(cfg.Storage.DataDir)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: closing storage: %v\n", err)
		}
	}()
	if err := store.SeedDestinations(ctx); err != nil {
		return fmt.Errorf("seeding destinations: %w", err)
	}

	convStore, err := newConversationStore(cfg.Conversation)
	if err != nil {
		return err
	}
	defer func() {
		if err := convStore.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: closing conversation store: %v\n", err)
		}
	}()
	slog.Info("conversation store ready", "backend", cfg.Conversation.Store, "ttl", cfg.Conversation.TTL)

	// Providers with empty API keys report ErrNotConfigured and the
	// cascade falls through to the local calculators.
	flights := travel.NewFlightService(
		travel.NewAmadeusClient(cfg.Providers.AmadeusAPIKey),
		travel.NewSkyscannerClient(cfg.Providers.SkyscannerAPIKey),
	)
	hotels := travel.NewHotelService(travel.NewBookingClient(cfg.Providers.BookingAPIKey))

	estimator := pricing.NewEstimator(flights, hotels, sqliteCatalog{store}, cfg.Providers.Timeout)
	eng := engine.New(convStore, profile.NewClassifier(), estimator, store)

	handler := api.NewHandler(api.Deps{
		Engine:  eng,
		Store:   store,
		Flights: flights,
		Hotels:  hotels,
		Token:   cfg.Admin.APIToken,
	})

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() {
		fmt.Fprintf(os.Stderr, "brasilca listening on %s\n", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		fmt.Fprintln(os.Stderr, "shutting down...")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func stopServer() error {
	cfg, err := config.Load()
	if err != nil {
		printError("could not load config: %v", err)
		return err
	}

	pidPath := pidFilePath(cfg.Storage.DataDir)
	pid, err := readPIDFile(pidPath)
	if err != nil {
		printError("brasilca is not running (no PID file)")
		return fmt.Errorf("not running: %w", err)
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		printError("could not find process %d", pid)
		return err
	}

	if err := process.Signal(syscall.SIGTERM); err != nil {
		printError("could not stop brasilca (PID %d): %v", pid, err)
		removePIDFile(pidPath)
		return err
	}

	printSuccess("Sent stop signal to brasilca (PID %d)", pid)
	return nil
}

func showStatus() error {
	cfg, err := config.Load()
	if err != nil {
		printError("config error: %v", err)
		return nil
	}

	serverURL := fmt.Sprintf("http://127.0.0.1:%d", cfg.Server.Port)
	client := &http.Client{Timeout: 2 * time.Second}

	running := false
	resp, err := client.Get(serverURL + "/health")
	if err != nil {
		printStatus("Server", "stopped")
	} else {
		resp.Body.Close()
		if resp.StatusCode == http.StatusOK {
			running = true
			printStatus("Server", "running on port %d", cfg.Server.Port)
		} else {
			printStatus("Server", "error (HTTP %d)", resp.StatusCode)
		}
	}

	printStatus("Conversation store", "%s", cfg.Conversation.Store)
	if cfg.Conversation.Store == "redis" {
		printStatus("Redis", "%s", cfg.Conversation.RedisAddr)
	}

	providers := []string{}
	if cfg.Providers.AmadeusAPIKey != "" {
		providers = append(providers, "amadeus")
	}
	if cfg.Providers.SkyscannerAPIKey != "" {
		providers = append(providers, "skyscanner")
	}
	if cfg.Providers.BookingAPIKey != "" {
		providers = append(providers, "booking.com")
	}
	if len(providers) == 0 {
		printStatus("Live pricing", "disabled (calculated rates only)")
	} else {
		printStatus("Live pricing", "%s", strings.Join(providers, ", "))
	}

	if running {
		c := newAPIClient(cfg)
		var counts storage.DashboardCounts
		if err := c.getJSON(context.Background(), "/api/analytics/dashboard", &counts); err == nil {
			printStatus("Destinations", "%d", counts.Destinations)
			printStatus("Leads", "%d", counts.Leads)
			printStatus("Bookings", "%d", counts.Bookings)
			printStatus("Users", "%d", counts.Users)
		}
	}

	printStatus("Data dir", "%s", cfg.Storage.DataDir)
	return nil
}
