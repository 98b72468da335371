// Package gateway is the HTTP-facing layer of the mock server. It
// authenticates requests, validates bodies, dispatches to the synthesizers
// and maps outcomes to wire-format JSON and status codes. Handlers share no
// per-request state; everything they read is fixed at startup.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vnmchuo/llm-mock/internal/catalog"
	"github.com/vnmchuo/llm-mock/internal/completion"
	"github.com/vnmchuo/llm-mock/internal/embedding"
	"github.com/vnmchuo/llm-mock/internal/latency"
	"github.com/vnmchuo/llm-mock/internal/metrics"
	"github.com/vnmchuo/llm-mock/pkg/tokens"
)

// Version is reported by the health and root endpoints.
const Version = "1.0.0"

type Handler struct {
	catalog     *catalog.Catalog
	completions *completion.Synthesizer
	embeddings  *embedding.Synthesizer
	latency     *latency.Simulator
	recorder    metrics.Recorder
	tracer      trace.Tracer
	apiKey      string
}

func NewHandler(
	cat *catalog.Catalog,
	completions *completion.Synthesizer,
	embeddings *embedding.Synthesizer,
	lat *latency.Simulator,
	recorder metrics.Recorder,
	tracer trace.Tracer,
	apiKey string,
) *Handler {
	return &Handler{
		catalog:     cat,
		completions: completions,
		embeddings:  embeddings,
		latency:     lat,
		recorder:    recorder,
		tracer:      tracer,
		apiKey:      apiKey,
	}
}

// RouterOptions configures the middleware stack around the handlers. Both
// fields may be nil; tests usually run without logging or metrics.
type RouterOptions struct {
	Logger   func(http.Handler) http.Handler
	Recorder metrics.Recorder
}

// NewRouter wires the chi router: public health/root/metrics endpoints, the
// authenticated /v1 surface, and envelope-shaped 404/405 fallbacks.
func (h *Handler) NewRouter(opts RouterOptions) chi.Router {
	r := chi.NewRouter()
	r.Use(Recover)
	if opts.Logger != nil {
		r.Use(opts.Logger)
	}
	if opts.Recorder != nil {
		r.Use(Metrics(opts.Recorder))
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, errTypeNotFound, "Endpoint not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, errTypeMethodNotAllowed, "Method not allowed")
	})

	r.Get("/", h.Root)
	r.Get("/health", h.Health)
	r.Get("/metrics", h.MetricsSnapshot)

	r.Group(func(r chi.Router) {
		r.Use(Auth(h.apiKey))
		r.Get("/v1/models", h.ListModels)
		r.Get("/v1/models/{id}", h.GetModel)
		r.Post("/v1/chat/completions", h.ChatCompletions)
		r.Post("/v1/embeddings", h.Embeddings)
	})

	return r
}

func (h *Handler) Root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, rootResponse{
		Message: "Mock OpenAI API Server",
		Version: Version,
		Endpoints: map[string]string{
			"models":           "/v1/models",
			"chat_completions": "/v1/chat/completions",
			"embeddings":       "/v1/embeddings",
			"health":           "/health",
		},
		APIKey:        h.apiKey,
		Documentation: "https://platform.openai.com/docs/api-reference",
	})
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   Version,
	})
}

func (h *Handler) MetricsSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := h.recorder.Snapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, errTypeInternal, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *Handler) ListModels(w http.ResponseWriter, r *http.Request) {
	if !h.simulate(r.Context(), "", latency.KindListing) {
		return
	}
	writeJSON(w, http.StatusOK, modelList{Object: "list", Data: h.catalog.List()})
}

func (h *Handler) GetModel(w http.ResponseWriter, r *http.Request) {
	if !h.simulate(r.Context(), "", latency.KindListing) {
		return
	}
	id := chi.URLParam(r, "id")
	model, ok := h.catalog.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, errTypeNotFound, "Model not found")
		return
	}
	writeJSON(w, http.StatusOK, model)
}

func (h *Handler) ChatCompletions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req chatRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, errTypeInvalidRequest, err.Error())
		return
	}
	if len(req.Messages) == 0 {
		writeError(w, http.StatusBadRequest, errTypeInvalidRequest, "messages is required")
		return
	}
	if req.Model == "" {
		req.Model = catalog.DefaultChatModel
	}

	ctx, span := h.tracer.Start(ctx, "gateway.chat_completion")
	defer span.End()
	span.SetAttributes(
		attribute.String("model", req.Model),
		attribute.Bool("stream", req.Stream),
	)

	if !h.simulate(ctx, req.Model, latency.KindChat) {
		return
	}

	if req.Stream {
		h.streamCompletion(ctx, w, &req)
		return
	}

	resp, err := h.completions.Complete(req.Messages, req.Model)
	if err != nil {
		writeError(w, http.StatusInternalServerError, errTypeInternal, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// streamCompletion writes the chunk sequence as server-sent events. If the
// client disconnects mid-stream, ctx cancellation stops chunk production and
// the writes simply stop; nothing already sent is retracted.
func (h *Handler) streamCompletion(ctx context.Context, w http.ResponseWriter, req *chatRequest) {
	ch, err := h.completions.Stream(ctx, req.Messages, req.Model)
	if err != nil {
		writeError(w, http.StatusInternalServerError, errTypeInternal, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	// Without flush support there is no incremental delivery; the chunks
	// still go out in one buffered write.
	flusher, _ := w.(http.Flusher)

	for chunk := range ch {
		payload, err := json.Marshal(chunk)
		if err != nil {
			return
		}
		if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
	}

	fmt.Fprint(w, "data: [DONE]\n\n")
	if flusher != nil {
		flusher.Flush()
	}
}

func (h *Handler) Embeddings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req embeddingsRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, errTypeInvalidRequest, err.Error())
		return
	}
	texts, err := parseEmbeddingInput(req.Input)
	if err != nil {
		writeError(w, http.StatusBadRequest, errTypeInvalidRequest, err.Error())
		return
	}
	if req.Model == "" {
		req.Model = catalog.DefaultEmbeddingModel
	}

	ctx, span := h.tracer.Start(ctx, "gateway.embeddings")
	defer span.End()
	span.SetAttributes(
		attribute.String("model", req.Model),
		attribute.Int("batch_size", len(texts)),
	)

	if !h.simulate(ctx, req.Model, latency.KindEmbedding) {
		return
	}

	dims := h.catalog.EmbeddingDimensions(req.Model)
	vectors := h.embeddings.Batch(texts, dims)
	promptTokens := tokens.CountAll(texts...)

	writeJSON(w, http.StatusOK, embeddingsResponse{
		Object: "list",
		Data:   vectors,
		Model:  req.Model,
		Usage: embeddingsUsage{
			PromptTokens: promptTokens,
			TotalTokens:  promptTokens,
		},
	})
}

// simulate sleeps for the configured artificial delay. Returns false when
// the request context was cancelled while waiting.
func (h *Handler) simulate(ctx context.Context, model string, kind latency.Kind) bool {
	d := h.latency.Delay(model, kind)
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}

// decodeBody decodes a JSON request body, distinguishing a missing body from
// a malformed one only in the message.
func decodeBody(r *http.Request, v any) error {
	if r.Body == nil {
		return errors.New("Request body is required")
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return errors.New("Request body is required")
	}
	if err != nil {
		return errors.New("Request body must be valid JSON")
	}
	return nil
}

// parseEmbeddingInput accepts a single string or a list of strings.
func parseEmbeddingInput(input any) ([]string, error) {
	switch v := input.(type) {
	case nil:
		return nil, errors.New("input is required")
	case string:
		if v == "" {
			return nil, errors.New("input is required")
		}
		return []string{v}, nil
	case []any:
		if len(v) == 0 {
			return nil, errors.New("input is required")
		}
		texts := make([]string, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, errors.New("input must be string or array of strings")
			}
			texts[i] = s
		}
		return texts, nil
	default:
		return nil, errors.New("input must be string or array of strings")
	}
}
