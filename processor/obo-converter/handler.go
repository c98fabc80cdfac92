package oboconverter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/c360studio/oboowl/convert"
	"github.com/c360studio/oboowl/export"
	"github.com/c360studio/oboowl/obo"
	"github.com/c360studio/oboowl/pipeline"
	"github.com/google/uuid"
)

// Request is the JSON form of a conversion request. A request body that is
// not a JSON object is taken to be the OBO document itself.
type Request struct {
	RequestID string `json:"request_id,omitempty"`
	Name      string `json:"name,omitempty"`
	Document  string `json:"document"`
	Format    string `json:"format,omitempty"`
}

// Response is the reply to a conversion request.
type Response struct {
	RequestID string          `json:"request_id"`
	Success   bool            `json:"success"`
	Format    export.Format   `json:"format,omitempty"`
	Output    string          `json:"output,omitempty"`
	StoredID  string          `json:"stored_id,omitempty"`
	Report    *convert.Report `json:"report,omitempty"`
	Error     string          `json:"error,omitempty"`
	Timestamp int64           `json:"timestamp"`
}

// Handler turns request payloads into responses. Pipelines are looked up by
// output format.
type Handler struct {
	pipelines map[export.Format]*pipeline.Pipeline
	fallback  export.Format
	timeout   time.Duration
	logger    *slog.Logger
}

// NewHandler returns a handler. The first pipeline serves requests that do
// not name a format.
func NewHandler(timeout time.Duration, logger *slog.Logger, pipelines ...*pipeline.Pipeline) (*Handler, error) {
	if len(pipelines) == 0 {
		return nil, errors.New("no pipelines configured")
	}
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{
		pipelines: make(map[export.Format]*pipeline.Pipeline, len(pipelines)),
		fallback:  pipelines[0].Format(),
		timeout:   timeout,
		logger:    logger,
	}
	for _, p := range pipelines {
		h.pipelines[p.Format()] = p
	}
	return h, nil
}

// Handle runs one request.
func (h *Handler) Handle(ctx context.Context, data []byte) Response {
	req := decodeRequest(data)
	if req.RequestID == "" {
		req.RequestID = uuid.New().String()
	}
	resp := Response{RequestID: req.RequestID, Timestamp: time.Now().UnixNano()}

	format := h.fallback
	if req.Format != "" {
		f, ok := export.ParseFormat(req.Format)
		if !ok {
			resp.Error = fmt.Sprintf("%v: %s", export.ErrUnsupportedFormat, req.Format)
			return resp
		}
		format = f
	}
	p, ok := h.pipelines[format]
	if !ok {
		resp.Error = fmt.Sprintf("%v: %s", export.ErrUnsupportedFormat, format)
		return resp
	}
	resp.Format = format

	doc, err := obo.ParseString(req.Document)
	if err != nil {
		resp.Error = fmt.Sprintf("parse document: %v", err)
		return resp
	}

	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	name := req.Name
	if name == "" {
		name = pipeline.OntologyName(doc, req.RequestID)
	}
	res, err := p.Run(ctx, name, doc)
	if res != nil {
		resp.Report = res.Report
	}
	if err != nil {
		resp.Error = err.Error()
		return resp
	}
	resp.Success = true
	resp.Output = res.Output
	resp.StoredID = res.StoredID
	return resp
}

func decodeRequest(data []byte) Request {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var req Request
		if err := json.Unmarshal(trimmed, &req); err == nil {
			return req
		}
	}
	return Request{Document: string(data)}
}
