package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/farewatch/farewatch-cli/internal/advise"
	"github.com/farewatch/farewatch-cli/internal/analyze"
	"github.com/farewatch/farewatch-cli/internal/config"
	"github.com/farewatch/farewatch-cli/internal/history"
	"github.com/farewatch/farewatch-cli/internal/model"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve recorded history and advice over read-only HTTP",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		tasks, err := loadRoutes()
		if err != nil {
			return err
		}

		st, err := initStore()
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		mux := serveMux(st, tasks, cfg.Track)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: mux,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func serveMux(st history.Store, tasks []model.RouteTask, trackCfg config.TrackConfig) *http.ServeMux {
	analyzer := analyze.New(st, trackCfg.WindowDays, trackCfg.VolatilityThreshold)
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("GET /routes", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, tasks)
	})

	mux.HandleFunc("GET /routes/{id}/history", func(w http.ResponseWriter, r *http.Request) {
		task, ok := findTask(tasks, r.PathValue("id"))
		if !ok {
			http.Error(w, `{"error":"unknown route"}`, http.StatusNotFound)
			return
		}
		series, err := st.History(r.Context(), task.ID)
		if err != nil {
			zap.L().Error("history read failed", zap.String("route", task.ID), zap.Error(err))
			http.Error(w, `{"error":"history unavailable"}`, http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, series)
	})

	mux.HandleFunc("GET /routes/{id}/advice", func(w http.ResponseWriter, r *http.Request) {
		task, ok := findTask(tasks, r.PathValue("id"))
		if !ok {
			http.Error(w, `{"error":"unknown route"}`, http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, routeAdvice(r.Context(), st, analyzer, task))
	})

	return mux
}

// routeAdvice derives a fresh recommendation from the stored state. Storage
// trouble degrades to the zero-price verdict rather than an error page.
func routeAdvice(ctx context.Context, st history.Store, analyzer *analyze.Analyzer, task model.RouteTask) map[string]any {
	currentPrice := 0
	carrier := "N/A"
	if latest, err := st.Latest(ctx, task.ID); err != nil {
		zap.L().Warn("latest read failed", zap.String("route", task.ID), zap.Error(err))
	} else if latest != nil {
		currentPrice = latest.Price
		carrier = latest.Carrier
	}

	stats, err := analyzer.Compute(ctx, task.ID)
	if err != nil {
		zap.L().Warn("stats unavailable", zap.String("route", task.ID), zap.Error(err))
		stats = analyze.Stats{Volatility: model.VolatilityStable}
	}

	verdict := advise.Advise(task.Label(), currentPrice, task.PriceTrigger, stats.Average, stats.Volatility)
	return map[string]any{
		"route_id":   task.ID,
		"route_name": task.Label(),
		"price":      currentPrice,
		"carrier":    carrier,
		"average":    stats.Average,
		"volatility": stats.Volatility,
		"verdict":    verdict,
	}
}

func findTask(tasks []model.RouteTask, id string) (model.RouteTask, bool) {
	for _, t := range tasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.RouteTask{}, false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
