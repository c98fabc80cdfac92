// Package oboconverter provides a request/reply processor that converts
// OBO documents to OWL over NATS.
package oboconverter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/c360studio/oboowl/convert"
	"github.com/c360studio/oboowl/export"
	"github.com/c360studio/oboowl/pipeline"
	"github.com/c360studio/oboowl/storage"
	"github.com/c360studio/semstreams/component"
	"github.com/c360studio/semstreams/natsclient"
	"github.com/nats-io/nats.go"
)

const componentName = "obo-converter"

// Component implements the obo-converter processor.
type Component struct {
	name       string
	config     Config
	natsClient *natsclient.Client
	logger     *slog.Logger
	converter  *convert.Converter

	handler *Handler
	store   *storage.Store

	// Lifecycle
	running      bool
	startTime    time.Time
	mu           sync.RWMutex
	cancel       context.CancelFunc
	subscription *nats.Subscription

	// Metrics
	requestsHandled atomic.Int64
	requestsFailed  atomic.Int64
	lastActivityMu  sync.RWMutex
	lastActivity    time.Time
}

// NewComponent creates a new obo-converter processor.
func NewComponent(rawConfig json.RawMessage, deps component.Dependencies) (component.Discoverable, error) {
	config := DefaultConfig()
	if len(rawConfig) > 0 {
		if err := json.Unmarshal(rawConfig, &config); err != nil {
			return nil, fmt.Errorf("unmarshal config: %w", err)
		}
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger := deps.GetLoggerWithComponent(componentName)

	var metrics *convert.Metrics
	if deps.MetricsRegistry != nil {
		m, err := convert.NewMetrics(componentName, deps.MetricsRegistry.PrometheusRegistry())
		if err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
		metrics = m
	}

	opts := []convert.Option{
		convert.WithLogger(logger),
		convert.WithMetrics(metrics),
		convert.WithDefaultOntology(config.DefaultOntology),
		convert.WithEquivalentXrefPrefixes(config.EquivalentXrefPrefixes...),
	}
	for ns, prefix := range config.IDSpaces {
		opts = append(opts, convert.WithIDSpace(ns, prefix))
	}

	return &Component{
		name:       componentName,
		config:     config,
		natsClient: deps.NATSClient,
		logger:     logger,
		converter:  convert.New(opts...),
	}, nil
}

// Initialize prepares the component.
func (c *Component) Initialize() error {
	c.logger.Debug("Initialized obo-converter",
		"subject", c.config.RequestSubject(),
		"queue_group", c.config.QueueGroup,
		"format", c.config.Format)
	return nil
}

// Start opens the store, if any, and subscribes to conversion requests.
func (c *Component) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return fmt.Errorf("component already running")
	}
	if c.natsClient == nil {
		return fmt.Errorf("NATS client required")
	}
	nc := c.natsClient.GetConnection()
	if nc == nil {
		return fmt.Errorf("NATS connection not available")
	}

	if err := c.buildHandler(); err != nil {
		return err
	}

	subCtx, cancel := context.WithCancel(ctx)
	subject := c.config.RequestSubject()
	sub, err := nc.QueueSubscribe(subject, c.config.QueueGroup, func(msg *nats.Msg) {
		c.handleMessage(subCtx, msg)
	})
	if err != nil {
		cancel()
		c.closeStore()
		return fmt.Errorf("subscribe to %s: %w", subject, err)
	}

	c.subscription = sub
	c.cancel = cancel
	c.running = true
	c.startTime = time.Now()

	c.logger.Info("obo-converter started",
		"subject", subject,
		"queue_group", c.config.QueueGroup)
	return nil
}

// buildHandler opens the store and creates one pipeline per export format,
// the configured format first.
func (c *Component) buildHandler() error {
	preferred, _ := export.ParseFormat(c.config.Format)

	opts := []pipeline.Option{pipeline.WithLogger(c.logger)}
	if c.config.SQLitePath != "" {
		store, err := storage.Open(c.config.SQLitePath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		c.store = store
		opts = append(opts, pipeline.WithStore(store))
	}

	formats := []export.Format{preferred}
	for _, name := range export.Formats() {
		if f, _ := export.ParseFormat(name); f != preferred {
			formats = append(formats, f)
		}
	}

	pipelines := make([]*pipeline.Pipeline, 0, len(formats))
	for _, f := range formats {
		p, err := pipeline.New(c.converter, f, opts...)
		if err != nil {
			c.closeStore()
			return err
		}
		pipelines = append(pipelines, p)
	}

	handler, err := NewHandler(c.config.GetTimeout(), c.logger, pipelines...)
	if err != nil {
		c.closeStore()
		return err
	}
	c.handler = handler
	return nil
}

func (c *Component) handleMessage(ctx context.Context, msg *nats.Msg) {
	c.updateLastActivity()

	resp := c.handler.Handle(ctx, msg.Data)
	c.requestsHandled.Add(1)
	if !resp.Success {
		c.requestsFailed.Add(1)
		c.logger.Warn("Conversion request failed",
			"request_id", resp.RequestID,
			"error", resp.Error)
	}

	if msg.Reply == "" {
		c.logger.Debug("Dropping response to request without reply subject", "request_id", resp.RequestID)
		return
	}

	data, err := json.Marshal(resp)
	if err != nil {
		c.logger.Error("Failed to marshal response", "request_id", resp.RequestID, "error", err)
		errResp := Response{
			RequestID: resp.RequestID,
			Error:     fmt.Sprintf("internal error: failed to marshal response: %v", err),
			Timestamp: time.Now().UnixNano(),
		}
		if errData, err := json.Marshal(errResp); err == nil {
			_ = msg.Respond(errData)
		}
		return
	}
	if err := msg.Respond(data); err != nil {
		c.logger.Error("Failed to send response",
			"error", err,
			"subject", msg.Subject)
	}
}

// Stop drains the subscription so in-flight requests are answered, then
// closes the store.
func (c *Component) Stop(timeout time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return nil
	}

	if c.subscription != nil {
		if err := c.subscription.Drain(); err != nil {
			c.logger.Warn("Failed to drain subscription", "error", err)
		}
		deadline := time.Now().Add(timeout)
		for c.subscription.IsValid() && time.Now().Before(deadline) {
			time.Sleep(10 * time.Millisecond)
		}
		c.subscription = nil
	}
	if c.cancel != nil {
		c.cancel()
	}
	c.closeStore()

	c.running = false
	c.logger.Info("obo-converter stopped",
		"requests_handled", c.requestsHandled.Load(),
		"requests_failed", c.requestsFailed.Load())
	return nil
}

func (c *Component) closeStore() {
	if c.store == nil {
		return
	}
	if err := c.store.Close(); err != nil {
		c.logger.Warn("Failed to close store", "error", err)
	}
	c.store = nil
}

// Stats returns the number of handled and failed requests.
func (c *Component) Stats() (handled, failed int64) {
	return c.requestsHandled.Load(), c.requestsFailed.Load()
}

// Meta returns component metadata.
func (c *Component) Meta() component.Metadata {
	return component.Metadata{
		Name:        componentName,
		Type:        "processor",
		Description: "Request/reply service converting OBO documents to OWL",
		Version:     "0.1.0",
	}
}

// InputPorts returns configured input port definitions.
func (c *Component) InputPorts() []component.Port {
	if c.config.Ports == nil {
		return []component.Port{}
	}
	return buildPorts(c.config.Ports.Inputs, component.DirectionInput)
}

// OutputPorts returns configured output port definitions.
func (c *Component) OutputPorts() []component.Port {
	if c.config.Ports == nil {
		return []component.Port{}
	}
	return buildPorts(c.config.Ports.Outputs, component.DirectionOutput)
}

func buildPorts(defs []component.PortDefinition, direction component.Direction) []component.Port {
	ports := make([]component.Port, len(defs))
	for i, portDef := range defs {
		ports[i] = component.Port{
			Name:        portDef.Name,
			Direction:   direction,
			Required:    portDef.Required,
			Description: portDef.Description,
			Config: component.NATSPort{
				Subject: portDef.Subject,
			},
		}
	}
	return ports
}

// ConfigSchema returns the configuration schema.
func (c *Component) ConfigSchema() component.ConfigSchema {
	return oboConverterSchema
}

// Health returns the current health status.
func (c *Component) Health() component.HealthStatus {
	c.mu.RLock()
	running := c.running
	startTime := c.startTime
	c.mu.RUnlock()

	status := "stopped"
	if running {
		status = "running"
	}

	return component.HealthStatus{
		Healthy:    running,
		LastCheck:  time.Now(),
		ErrorCount: int(c.requestsFailed.Load()),
		Uptime:     time.Since(startTime),
		Status:     status,
	}
}

// DataFlow returns current data flow metrics.
func (c *Component) DataFlow() component.FlowMetrics {
	return component.FlowMetrics{
		LastActivity: c.getLastActivity(),
	}
}

func (c *Component) updateLastActivity() {
	c.lastActivityMu.Lock()
	c.lastActivity = time.Now()
	c.lastActivityMu.Unlock()
}

func (c *Component) getLastActivity() time.Time {
	c.lastActivityMu.RLock()
	defer c.lastActivityMu.RUnlock()
	return c.lastActivity
}
