package frame

import (
	"sync"

	"framegrip/internal/domain"
)

// Resolver maps rendered nodes to their models and back
type Resolver interface {
	ResolveModel(n Node) *domain.Component
	NodeOf(c *domain.Component) Node
}

// Registry is a bidirectional node/model map maintained by the rendering layer
type Registry struct {
	mu      sync.RWMutex
	byNode  map[Node]*domain.Component
	byModel map[*domain.Component]Node
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		byNode:  make(map[Node]*domain.Component),
		byModel: make(map[*domain.Component]Node),
	}
}

// Bind associates n with c, replacing earlier associations of either side
func (r *Registry) Bind(n Node, c *domain.Component) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.byNode[n]; ok {
		delete(r.byModel, old)
	}
	if old, ok := r.byModel[c]; ok {
		delete(r.byNode, old)
	}
	r.byNode[n] = c
	r.byModel[c] = n
}

// Unbind drops the association of c
func (r *Registry) Unbind(c *domain.Component) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n, ok := r.byModel[c]; ok {
		delete(r.byNode, n)
		delete(r.byModel, c)
	}
}

// ResolveModel returns the model owning n, or nil
func (r *Registry) ResolveModel(n Node) *domain.Component {
	if n == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byNode[n]
}

// NodeOf returns the node rendering c, or nil
func (r *Registry) NodeOf(c *domain.Component) Node {
	if c == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byModel[c]
}

// Len returns the number of bound nodes
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byNode)
}
