package execution

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"prompt-nodes/node"
)

var ErrNotFound = errors.New("execution not found")
var ErrUnknownNode = errors.New("unknown node class")

const cleanupInterval = 10 * time.Minute

// Manager runs nodes one at a time and keeps a history of the results.
type Manager struct {
	runMu    sync.Mutex
	registry *node.Registry
	history  *cache.Cache
	hub      *Hub
	logger   *zap.Logger
}

// NewManager keeps executions for ttl; ttl <= 0 keeps them until deleted.
// A nil hub disables event publishing.
func NewManager(registry *node.Registry, hub *Hub, ttl time.Duration, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	return &Manager{
		registry: registry,
		history:  cache.New(ttl, cleanupInterval),
		hub:      hub,
		logger:   logger,
	}
}

// Run invokes the node registered as class. The host contract is one call at
// a time, so concurrent Runs queue behind each other. When the node fails
// the returned Execution carries the error too and is kept in history.
func (m *Manager) Run(ctx context.Context, class string, in node.Inputs) (*Execution, error) {
	n, ok := m.registry.Get(class)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNode, class)
	}

	m.runMu.Lock()
	defer m.runMu.Unlock()

	uniqueID, _ := in["unique_id"].(string)
	e := &Execution{
		ID:        uuid.New().String(),
		Class:     class,
		UniqueID:  uniqueID,
		CreatedAt: time.Now(),
	}
	log := m.logger.With(zap.String("execution", e.ID), zap.String("class", class))
	log.Debug("executing node")
	m.publish(EventExecuting, e, nil)

	info := n.Info()
	values, err := n.Execute(ctx, in)
	e.FinishedAt = time.Now()
	if err != nil {
		e.Status = StatusError
		e.Error = err.Error()
		log.Error("node execution failed", zap.Error(err))
		m.publish(EventError, e, map[string]any{"error": e.Error})
		m.history.Set(e.ID, e, cache.DefaultExpiration)
		return e, err
	}

	e.Status = StatusSuccess
	e.Outputs = make(map[string]any, len(values))
	texts := make(map[string]any)
	for i, v := range values {
		name := fmt.Sprintf("output_%d", i)
		if i < len(info.Outputs) {
			name = info.Outputs[i].Name
			if info.Outputs[i].Type == node.TypeString {
				texts[name] = v
			}
		}
		e.Outputs[name] = v
	}
	log.Info("node executed", zap.Duration("took", e.FinishedAt.Sub(e.CreatedAt)))
	m.publish(EventExecuted, e, texts)
	m.history.Set(e.ID, e, cache.DefaultExpiration)
	return e, nil
}

func (m *Manager) publish(typ string, e *Execution, data map[string]any) {
	if m.hub == nil {
		return
	}
	m.hub.Publish(Event{
		Type:        typ,
		ExecutionID: e.ID,
		Class:       e.Class,
		Data:        data,
		Time:        time.Now(),
	})
}

// List returns unexpired executions, newest first.
func (m *Manager) List() []*Execution {
	items := m.history.Items()
	list := make([]*Execution, 0, len(items))
	for _, item := range items {
		if e, ok := item.Object.(*Execution); ok {
			list = append(list, e)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID < list[j].ID
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list
}

func (m *Manager) Get(id string) (*Execution, bool) {
	v, ok := m.history.Get(id)
	if !ok {
		return nil, false
	}
	e, ok := v.(*Execution)
	return e, ok
}

func (m *Manager) Delete(id string) error {
	if _, ok := m.history.Get(id); !ok {
		return ErrNotFound
	}
	m.history.Delete(id)
	return nil
}

// Registry returns the node registry the manager runs from.
func (m *Manager) Registry() *node.Registry {
	return m.registry
}
