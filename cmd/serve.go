package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tripdeck/travelsearch/internal/engine"
	"github.com/tripdeck/travelsearch/internal/flights"
	"github.com/tripdeck/travelsearch/internal/hotels"
	"github.com/tripdeck/travelsearch/internal/model"
)

var (
	servePort    int
	serveDemo    bool
	serveProfile string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP search API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initEnv(ctx, serveDemo, serveProfile)
		if err != nil {
			return err
		}
		defer env.Close()

		r := chi.NewRouter()
		r.Use(middleware.RequestID)
		r.Use(middleware.Recoverer)
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
		}))

		r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		r.Post("/v1/flights/search", func(w http.ResponseWriter, req *http.Request) {
			var sr flights.SearchRequest
			if err := json.NewDecoder(req.Body).Decode(&sr); err != nil {
				http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
				return
			}
			if sr.Origin == "" || sr.Destination == "" || sr.DepartureDate == "" {
				http.Error(w, `{"error":"origin, destination and departure_date are required"}`, http.StatusBadRequest)
				return
			}

			if wantsStream(req) {
				stream := newSnapshotStream(w)
				env.Flights.Search(req.Context(), sr, func(snap engine.Snapshot[flights.Option]) {
					stream.write(snap.Status, snap.Items)
				})
				stream.finish()
				return
			}

			results := env.Flights.Search(req.Context(), sr, nil)
			writeJSON(w, http.StatusOK, engine.Snapshot[flights.Option]{
				Status: model.StatusFinal,
				Items:  results,
			})
		})

		r.Post("/v1/hotels/search", func(w http.ResponseWriter, req *http.Request) {
			var sr hotels.SearchRequest
			if err := json.NewDecoder(req.Body).Decode(&sr); err != nil {
				http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
				return
			}
			if sr.Destination == "" && (sr.Lat == nil || sr.Lon == nil) {
				http.Error(w, `{"error":"destination or lat/lon is required"}`, http.StatusBadRequest)
				return
			}

			if wantsStream(req) {
				stream := newSnapshotStream(w)
				env.Hotels.Search(req.Context(), sr, func(snap engine.Snapshot[hotels.Option]) {
					stream.write(snap.Status, snap.Items)
				})
				stream.finish()
				return
			}

			results := env.Hotels.Search(req.Context(), sr, nil)
			writeJSON(w, http.StatusOK, engine.Snapshot[hotels.Option]{
				Status: model.StatusFinal,
				Items:  results,
			})
		})

		r.Get("/v1/history", func(w http.ResponseWriter, req *http.Request) {
			if env.Log == nil {
				http.Error(w, `{"error":"search history is disabled"}`, http.StatusNotFound)
				return
			}
			limit := 20
			if s := req.URL.Query().Get("limit"); s != "" {
				if n, err := strconv.Atoi(s); err == nil && n > 0 {
					limit = n
				}
			}
			rounds, err := env.Log.ListRounds(req.Context(), req.URL.Query().Get("domain"), limit)
			if err != nil {
				zap.L().Error("list rounds", zap.Error(err))
				http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
				return
			}
			writeJSON(w, http.StatusOK, rounds)
		})

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: r,
		}

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

func wantsStream(req *http.Request) bool {
	return req.URL.Query().Get("stream") == "1" || req.Header.Get("Accept") == "application/x-ndjson"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// snapshotStream writes tentative and final snapshots as NDJSON lines,
// flushing after each so clients see tentative results immediately.
type snapshotStream struct {
	w     http.ResponseWriter
	wrote bool
}

func newSnapshotStream(w http.ResponseWriter) *snapshotStream {
	w.Header().Set("Content-Type", "application/x-ndjson")
	return &snapshotStream{w: w}
}

func (s *snapshotStream) write(status model.ResultStatus, items any) {
	s.wrote = true
	json.NewEncoder(s.w).Encode(map[string]any{
		"status": status,
		"items":  items,
	})
	if f, ok := s.w.(http.Flusher); ok {
		f.Flush()
	}
}

// finish emits an empty final line when no snapshot was produced, so the
// stream always terminates with a final status.
func (s *snapshotStream) finish() {
	if !s.wrote {
		s.write(model.StatusFinal, []any{})
	}
}
