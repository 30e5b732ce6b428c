package commands

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	httpadapter "svw.info/pips/internal/adapters/http"
	"svw.info/pips/internal/fetch"
	"svw.info/pips/internal/generator"
	"svw.info/pips/internal/hint"
	"svw.info/pips/internal/infrastructure/storage"
	"svw.info/pips/internal/loader"
	"svw.info/pips/internal/usecase"
	"svw.info/pips/internal/validator"
)

// statusWriter captures HTTP status and bytes written.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// requestLogger logs method, path, status, bytes, and duration per request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", sw.status).
			Int("bytes", sw.bytes).
			Dur("dur", time.Since(start)).
			Msg("http")
	})
}

func newServeCommand() *cobra.Command {
	var (
		addr     string
		dataDir  string
		parallel bool
		workers  int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the JSON HTTP API",
		Long: `Serve exposes solving, counting, validation, hints, generation, and the
puzzle store over a JSON API under /api/.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(dataDir, 0o755); err != nil {
				return err
			}

			s := buildSolver(parallel, workers, false)
			c := fetch.NewClient()
			c.Log = log.Logger
			uc := &usecase.Service{
				Solver:    s,
				Loader:    loader.New(),
				Fetcher:   c,
				Generator: generator.NewRandomGenerator(s),
				Validator: validator.New(),
				Hinter:    hint.NewForced(),
				Storage:   storage.NewFS(dataDir),
			}

			mux := http.NewServeMux()
			httpadapter.New(uc).Register(mux)

			srv := &http.Server{
				Addr:              addr,
				Handler:           requestLogger(mux),
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() { errCh <- srv.ListenAndServe() }()
			log.Info().Str("addr", addr).Str("data", dataDir).Msg("listening")

			select {
			case err := <-errCh:
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-cmd.Context().Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&dataDir, "data", "./data", "puzzle store directory")
	cmd.Flags().BoolVar(&parallel, "parallel", false, "split the first anchor across workers")
	cmd.Flags().IntVar(&workers, "workers", 0, "worker count for --parallel (default: CPU count)")

	return cmd
}
