package tui

import "sync"

// View is anything that can reload its own data from the ledger.
// Tabs implement it so a mutation in one tab can refresh all of them.
type View interface {
	Refresh()
}

// Registry tracks the live views of the dashboard. After any data
// mutation the app broadcasts a refresh so every registered view
// re-reads its slice of the ledger.
type Registry struct {
	mu    sync.Mutex
	views map[string]View
}

func NewRegistry() *Registry {
	return &Registry{views: make(map[string]View)}
}

// Register adds or replaces the view stored under id.
func (r *Registry) Register(id string, v View) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views[id] = v
}

// Unregister removes the view stored under id, if any.
func (r *Registry) Unregister(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.views, id)
}

// GetOrCreate returns the view registered under id, building and
// registering it with factory on first use. Repeat calls reuse the
// existing view so a tab is never constructed twice.
func (r *Registry) GetOrCreate(id string, factory func() View) View {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.views[id]; ok {
		return v
	}
	v := factory()
	r.views[id] = v
	return v
}

// BroadcastRefresh calls Refresh on every registered view.
func (r *Registry) BroadcastRefresh() {
	r.mu.Lock()
	views := make([]View, 0, len(r.views))
	for _, v := range r.views {
		views = append(views, v)
	}
	r.mu.Unlock()

	for _, v := range views {
		v.Refresh()
	}
}
