// Package api serves layouts, scenes, tours and the role catalog as
// read-only JSON.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/voxarel/showcase/internal/layout"
	"github.com/voxarel/showcase/internal/showcase"
	"github.com/voxarel/showcase/internal/tour"
)

// Server holds the shared, read-only state behind the handlers.
type Server struct {
	Cache   *layout.Cache
	Catalog *showcase.Catalog
	Logger  *log.Logger
}

func New(cache *layout.Cache, catalog *showcase.Catalog, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{Cache: cache, Catalog: catalog, Logger: logger}
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/layouts/compare", s.compare)
		r.Get("/layouts/{policy}", s.layout)
		r.Get("/scenes/{kind}", s.scene)
		r.Get("/tours", s.tours)
		r.Get("/tours/{name}", s.tour)
		r.Get("/tours/{name}/frame", s.frame)
		r.Get("/roles", s.roles)
		r.Get("/roles/{id}/tour", s.roleTour)
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.Logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.Logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.Logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"took", time.Since(start).Round(time.Microsecond),
			"id", middleware.GetReqID(r.Context()),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) layout(w http.ResponseWriter, r *http.Request) {
	p, err := layout.ParsePolicy(chi.URLParam(r, "policy"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	l, err := s.Cache.Get(p)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, layout.ToDocument(l))
}

func (s *Server) compare(w http.ResponseWriter, r *http.Request) {
	c, err := layout.CompareCached(s.Cache)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) scene(w http.ResponseWriter, r *http.Request) {
	kind, err := layout.ParseVisualizationType(chi.URLParam(r, "kind"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	accent := r.URL.Query().Get("accent")
	if !strings.HasPrefix(accent, "#") && s.Catalog != nil {
		// a catalog color name such as "cyan"
		accent = s.Catalog.Accent(accent)
	}
	writeJSON(w, http.StatusOK, layout.ToDocument(layout.FeatureScene(kind, accent)))
}

func (s *Server) tours(w http.ResponseWriter, _ *http.Request) {
	names := tour.Presets()
	for _, p := range layout.Policies {
		names = append(names, p.String()+"-tour")
	}
	writeJSON(w, http.StatusOK, names)
}

// lookupTour resolves an embedded preset or a tour planned over a layout
// ("<policy>-tour").
func (s *Server) lookupTour(name string) (*tour.Tour, error) {
	t, err := tour.Preset(name)
	if err == nil || !errors.Is(err, tour.ErrUnknownPreset) {
		return t, err
	}
	policy, ok := strings.CutSuffix(name, "-tour")
	if !ok {
		return nil, err
	}
	p, perr := layout.ParsePolicy(policy)
	if perr != nil || p.String() != policy {
		return nil, err
	}
	l, lerr := s.Cache.Get(p)
	if lerr != nil {
		return nil, lerr
	}
	return tour.NewDirector().Plan(l)
}

func (s *Server) tour(w http.ResponseWriter, r *http.Request) {
	t, err := s.lookupTour(chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, tour.ToFile(t))
}

// FrameDoc is the wire form of a tour.Frame.
type FrameDoc struct {
	Elapsed    float64              `json:"elapsed"`
	Stop       int                  `json:"stop"`
	Next       int                  `json:"next"`
	Phase      tour.Phase           `json:"phase"`
	Progress   float64              `json:"progress"`
	Eased      float64              `json:"eased"`
	Camera     [3]float32           `json:"camera"`
	LookAt     [3]float32           `json:"lookAt"`
	Annotation *tour.AnnotationFile `json:"annotation,omitempty"`
}

func toFrameDoc(f tour.Frame) FrameDoc {
	d := FrameDoc{
		Elapsed:  f.State.Elapsed,
		Stop:     f.State.Stop,
		Next:     f.State.Next,
		Phase:    f.State.Phase,
		Progress: f.State.Progress,
		Eased:    f.State.Eased,
		Camera:   [3]float32{f.Pose.Camera.X, f.Pose.Camera.Y, f.Pose.Camera.Z},
		LookAt:   [3]float32{f.Pose.LookAt.X, f.Pose.LookAt.Y, f.Pose.LookAt.Z},
	}
	if a := f.Annotation; a != nil {
		d.Annotation = &tour.AnnotationFile{
			Anchor:   [3]float32{a.Anchor.X, a.Anchor.Y, a.Anchor.Z},
			Title:    a.Title,
			Subtitle: a.Subtitle,
		}
	}
	return d
}

func (s *Server) frame(w http.ResponseWriter, r *http.Request) {
	t, err := s.lookupTour(chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	at := 0.0
	if q := r.URL.Query().Get("t"); q != "" {
		at, err = strconv.ParseFloat(q, 64)
		if err != nil || at < 0 || !finite(at) {
			writeError(w, http.StatusBadRequest, errors.New("t must be a non-negative number of seconds"))
			return
		}
	}
	writeJSON(w, http.StatusOK, toFrameDoc(t.FrameAt(at)))
}

func finite(f float64) bool { return f-f == 0 }

func (s *Server) roles(w http.ResponseWriter, _ *http.Request) {
	if s.Catalog == nil {
		writeError(w, http.StatusNotFound, showcase.ErrUnknownRole)
		return
	}
	writeJSON(w, http.StatusOK, s.Catalog)
}

func (s *Server) roleTour(w http.ResponseWriter, r *http.Request) {
	if s.Catalog == nil {
		writeError(w, http.StatusNotFound, showcase.ErrUnknownRole)
		return
	}
	role, err := s.Catalog.Role(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	t, err := showcase.FeatureTour(role, showcase.DefaultHold, showcase.DefaultTransition)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, tour.ToFile(t))
}
