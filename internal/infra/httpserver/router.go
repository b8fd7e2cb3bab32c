package httpserver

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	apppred "github.com/yogapw/asclepius/internal/application/predictions"
	domain "github.com/yogapw/asclepius/internal/domain/predictions"
	"github.com/yogapw/asclepius/internal/middleware"
)

const imageField = "image"

// Options configures the request pipeline around the prediction handlers.
type Options struct {
	MaxUploadBytes   int64
	RateCapacity     int
	RateRefillPerSec int
	Checkers         map[string]middleware.HealthChecker
}

type Router struct {
	svc            *apppred.Service
	maxUploadBytes int64
}

func NewRouter(svc *apppred.Service, opts Options) http.Handler {
	r := &Router{svc: svc, maxUploadBytes: opts.MaxUploadBytes}
	mux := chi.NewRouter()

	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)
	if opts.RateCapacity > 0 && opts.RateRefillPerSec > 0 {
		mux.Use(middleware.RateLimitMiddleware(opts.RateCapacity, opts.RateRefillPerSec))
	}

	mux.Get("/health", middleware.HealthHandler(opts.Checkers))
	mux.Get("/live", middleware.LivenessHandler)
	mux.Get("/metrics", middleware.MetricsHandler)

	mux.Post("/predict", r.wrap(r.handlePredict))
	mux.Get("/predict/histories", r.wrap(r.handleHistories))

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// statusFor is the error-kind-to-status table: handlers return domain errors
// and dispatch stays declarative.
func (rt *Router) statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrPayloadTooLarge):
		return http.StatusRequestEntityTooLarge,
			fmt.Sprintf("Payload content length greater than maximum allowed: %d", rt.maxUploadBytes)
	case errors.Is(err, domain.ErrDecode), errors.Is(err, domain.ErrInference):
		return http.StatusBadRequest, "Terjadi kesalahan dalam melakukan prediksi"
	case errors.Is(err, domain.ErrPersistence):
		return http.StatusInternalServerError, "Terjadi kesalahan dalam menyimpan hasil prediksi"
	default:
		return http.StatusInternalServerError, "Terjadi kesalahan pada server"
	}
}

func (rt *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			code, msg := rt.statusFor(err)
			// internal detail stays in the log, never in the body
			log.Printf("request failed: method=%s path=%s err=%v", req.Method, req.URL.Path, err)
			_ = writeJSON(w, code, failEnvelope{Status: "fail", Message: msg})
		}
	}
}

// POST /predict — multipart upload, field "image"
func (rt *Router) handlePredict(w http.ResponseWriter, req *http.Request) error {
	if err := req.ParseMultipartForm(rt.maxUploadBytes); err != nil {
		return fmt.Errorf("%w: parse multipart form: %v", domain.ErrDecode, err)
	}

	file, header, err := req.FormFile(imageField)
	if err != nil {
		return fmt.Errorf("%w: missing %q field: %v", domain.ErrDecode, imageField, err)
	}
	defer file.Close()

	// size check first, before any processing
	if err := middleware.ValidateUploadSize(header.Size, rt.maxUploadBytes); err != nil {
		middleware.IncrementPredictionsFailed()
		return fmt.Errorf("%w: %v", domain.ErrPayloadTooLarge, err)
	}

	raw, err := io.ReadAll(file)
	if err != nil {
		middleware.IncrementPredictionsFailed()
		return fmt.Errorf("%w: read upload: %v", domain.ErrDecode, err)
	}

	p, err := rt.svc.Predict(req.Context(), apppred.PredictCommand{
		Image:       raw,
		ContentType: header.Header.Get("Content-Type"),
	})
	if err != nil {
		middleware.IncrementPredictionsFailed()
		return err
	}

	middleware.IncrementPredictions()
	if p.Result == domain.LabelCancer {
		middleware.IncrementPredictionsCancer()
	}

	return writeJSON(w, http.StatusCreated, predictEnvelope{
		Status:  "success",
		Message: "Model is predicted successfully",
		Data:    p,
	})
}

// GET /predict/histories
func (rt *Router) handleHistories(w http.ResponseWriter, req *http.Request) error {
	list, err := rt.svc.Histories(req.Context())
	if err != nil {
		return err
	}

	return writeJSON(w, http.StatusOK, historiesEnvelope{
		Status: "success",
		Data:   list,
	})
}
