package http

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"loanscreen/loan"
)

type handlers struct {
	service  *loan.Service
	renderer *Renderer
	log      *zap.Logger
}

type resultPage struct {
	Result loan.Label
}

func RegisterHandlers(mux *http.ServeMux, service *loan.Service, renderer *Renderer, log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	h := &handlers{service: service, renderer: renderer, log: log}

	mux.HandleFunc("GET /{$}", h.handleIndex)
	mux.HandleFunc("POST /predict", h.handlePredict)
	mux.HandleFunc("GET /api/health", handleHealth)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (h *handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.Render(w, indexTemplate, nil); err != nil {
		h.log.Error("render index", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *handlers) handlePredict(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := GetRequestID(ctx)

	form, err := parseForm(r)
	if err != nil {
		h.fail(w, requestID, err)
		return
	}
	h.log.Debug("form received", zap.String("request_id", requestID), zap.Any("form", form))

	decision, err := h.service.Evaluate(ctx, loan.FormValues(form))
	if err != nil {
		h.fail(w, requestID, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.Render(w, resultTemplate, resultPage{Result: decision.Label}); err != nil {
		w.Header().Del("Content-Type")
		h.fail(w, requestID, err)
		return
	}
	h.log.Debug("application decided",
		zap.String("request_id", requestID),
		zap.Int("prediction", decision.Prediction),
		zap.Duration("elapsed", time.Since(GetStartTime(ctx))))
}

// fail writes the plain-text error body every rejected submission gets.
func (h *handlers) fail(w http.ResponseWriter, requestID string, err error) {
	kind := loan.KindOf(err)
	fields := []zap.Field{
		zap.String("request_id", requestID),
		zap.Stringer("kind", kind),
		zap.Error(err),
	}
	if kind == loan.KindUnexpectedFailure {
		h.log.Warn("submission failed", fields...)
	} else {
		h.log.Debug("submission rejected", fields...)
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusBadRequest)
	io.WriteString(w, "Error: "+err.Error())
}
