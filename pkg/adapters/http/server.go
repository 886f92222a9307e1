package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aretw0/typeb"
	"github.com/aretw0/typeb/api"
	"github.com/aretw0/typeb/pkg/domain"
	"github.com/aretw0/typeb/pkg/keysheet"
	"github.com/aretw0/typeb/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const maxBodyBytes = 1 << 20

// CipherRequest is the body of POST /encrypt and POST /decrypt.
// Exactly one of Key (a stored sheet name) or Sheet (inline settings) selects the key.
type CipherRequest struct {
	Text  string          `json:"text"`
	Key   string          `json:"key,omitempty"`
	Sheet *keysheet.Sheet `json:"sheet,omitempty"`
}

// CipherResponse carries the transformed text and where the switches ended up.
type CipherResponse struct {
	Text     string           `json:"text"`
	Key      string           `json:"key,omitempty"`
	Switches string           `json:"switches"`
	Final    domain.Positions `json:"final"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Server exposes the machine and a key store over HTTP.
// Every cipher request builds a fresh machine, so requests never share switch state.
type Server struct {
	Store    ports.KeyStore
	Hooks    domain.LifecycleHooks
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLifecycleHooks attaches hooks to every machine the server builds.
func WithLifecycleHooks(h domain.LifecycleHooks) Option {
	return func(s *Server) {
		s.Hooks = h
	}
}

// WithGatherer exposes the given registry on GET /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.Gatherer = g
	}
}

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = l
	}
}

// NewHandler creates the HTTP handler.
func NewHandler(store ports.KeyStore, opts ...Option) http.Handler {
	s := &Server{
		Store:  store,
		Logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)
	r.Use(s.validateRequest)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(api.Spec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Post("/encrypt", s.cipher(domain.Encipher))
	r.Post("/decrypt", s.cipher(domain.Decipher))

	r.Route("/keys", func(r chi.Router) {
		r.Get("/", s.ListKeys)
		r.Get("/{name}", s.GetKey)
		r.Put("/{name}", s.PutKey)
		r.Delete("/{name}", s.DeleteKey)
	})

	if s.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>typeb API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// cipher handles POST /encrypt and POST /decrypt.
func (s *Server) cipher(dir domain.Direction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body CipherRequest
		if err := decode(w, r, &body); err != nil {
			s.fail(w, fmt.Errorf("%w: %w", errBadRequest, err))
			return
		}

		sheet, err := s.resolve(r, body)
		if err != nil {
			s.fail(w, err)
			return
		}

		m, err := typeb.New(typeb.WithKeySheet(sheet), typeb.WithLifecycleHooks(s.Hooks))
		if err != nil {
			s.fail(w, err)
			return
		}

		var out string
		if dir == domain.Encipher {
			out, err = m.EncryptContext(r.Context(), body.Text)
		} else {
			out, err = m.DecryptContext(r.Context(), body.Text)
		}
		if err != nil {
			s.fail(w, err)
			return
		}

		settings := m.Settings()
		writeJSON(w, http.StatusOK, CipherResponse{
			Text:     out,
			Key:      body.Key,
			Switches: keysheet.Format(settings.Positions, settings.Speeds),
			Final:    m.Positions(),
		})
	}
}

var errBadRequest = errors.New("bad request")

func (s *Server) resolve(r *http.Request, body CipherRequest) (keysheet.Sheet, error) {
	switch {
	case body.Key != "" && body.Sheet != nil:
		return keysheet.Sheet{}, fmt.Errorf("%w: set either key or sheet, not both", errBadRequest)
	case body.Key != "":
		return s.Store.Load(r.Context(), body.Key)
	case body.Sheet != nil:
		return *body.Sheet, nil
	default:
		return keysheet.Sheet{}, fmt.Errorf("%w: key or sheet is required", errBadRequest)
	}
}

// ListKeys handles GET /keys.
func (s *Server) ListKeys(w http.ResponseWriter, r *http.Request) {
	names, err := s.Store.List(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"keys": names})
}

// GetKey handles GET /keys/{name}.
func (s *Server) GetKey(w http.ResponseWriter, r *http.Request) {
	sheet, err := s.Store.Load(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sheet)
}

// PutKey handles PUT /keys/{name}. The sheet is validated before it is stored.
func (s *Server) PutKey(w http.ResponseWriter, r *http.Request) {
	var sheet keysheet.Sheet
	if err := decode(w, r, &sheet); err != nil {
		s.fail(w, fmt.Errorf("%w: %w", errBadRequest, err))
		return
	}
	sheet.Name = chi.URLParam(r, "name")

	if _, err := sheet.Settings(); err != nil {
		s.fail(w, err)
		return
	}
	if err := s.Store.Save(r.Context(), sheet); err != nil {
		s.fail(w, err)
		return
	}
	s.Logger.Info("key sheet saved", "name", sheet.Name)
	writeJSON(w, http.StatusOK, sheet)
}

// DeleteKey handles DELETE /keys/{name}.
func (s *Server) DeleteKey(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := s.Store.Delete(r.Context(), name); err != nil {
		s.fail(w, err)
		return
	}
	s.Logger.Info("key sheet deleted", "name", name)
	w.WriteHeader(http.StatusNoContent)
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":     "typeb-http",
		"version": typeb.Version,
	})
}

// fail maps domain errors to status codes. Messages never echo the request text.
func (s *Server) fail(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrKeyNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errBadRequest),
		errors.Is(err, domain.ErrInvalidKeySheet),
		errors.Is(err, domain.ErrInvalidPlugboard),
		errors.Is(err, domain.ErrInvalidPosition),
		errors.Is(err, domain.ErrInvalidSpeedAssignment):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrCharacterClass):
		status = http.StatusUnprocessableEntity
	}

	if status == http.StatusInternalServerError {
		s.Logger.Error("request failed", "error", err)
	} else {
		s.Logger.Warn("request rejected", "status", status, "error", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}
