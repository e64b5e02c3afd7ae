package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"lumeaBack/internal/discovery"
	"lumeaBack/internal/models"
	"lumeaBack/internal/services"
)

// SessionTTL is how long an idle search session keeps its pagination state.
const SessionTTL = 30 * time.Minute

// sessionEntry guards one engine session. The engine itself is single-caller
// by contract, so every Search/LoadMore against it goes through mu: two
// requests carrying the same token serialize instead of racing over the pool.
type sessionEntry struct {
	mu       sync.Mutex
	session  *discovery.Session
	lastSeen time.Time
}

// DiscoveryHandler serves location search over plain HTTP. Pagination state
// lives server-side, keyed by an opaque session token the client echoes back
// on load-more calls.
type DiscoveryHandler struct {
	Service *services.DiscoveryService

	mu       sync.Mutex
	sessions map[string]*sessionEntry
}

func NewDiscoveryHandler(service *services.DiscoveryService) *DiscoveryHandler {
	return &DiscoveryHandler{
		Service:  service,
		sessions: make(map[string]*sessionEntry),
	}
}

func (h *DiscoveryHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("location")
	sort := discovery.ParseSortKey(r.URL.Query().Get("sort"))

	token := r.URL.Query().Get("session")
	entry := h.lookup(token)
	if entry == nil {
		token = uuid.NewString()
		entry = h.store(token, h.Service.NewSession())
	}

	entry.mu.Lock()
	resp, err := entry.session.Search(r.Context(), query, sort)
	entry.mu.Unlock()
	if err != nil {
		h.writeError(w, err)
		return
	}
	resp.Session = token
	_ = json.NewEncoder(w).Encode(resp)
}

func (h *DiscoveryHandler) LoadMore(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("session")
	entry := h.lookup(token)
	if entry == nil {
		http.Error(w, "unknown or expired search session", http.StatusNotFound)
		return
	}

	entry.mu.Lock()
	resp, err := entry.session.LoadMore(r.Context())
	entry.mu.Unlock()
	if err != nil {
		h.writeError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// EvictStale drops sessions idle longer than the TTL. Called periodically by
// the background cleaner.
func (h *DiscoveryHandler) EvictStale(now time.Time) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	evicted := 0
	for token, entry := range h.sessions {
		if now.Sub(entry.lastSeen) > SessionTTL {
			delete(h.sessions, token)
			evicted++
		}
	}
	return evicted
}

func (h *DiscoveryHandler) lookup(token string) *sessionEntry {
	if token == "" {
		return nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	entry, ok := h.sessions[token]
	if !ok {
		return nil
	}
	entry.lastSeen = time.Now()
	return entry
}

func (h *DiscoveryHandler) store(token string, session *discovery.Session) *sessionEntry {
	h.mu.Lock()
	defer h.mu.Unlock()
	entry := &sessionEntry{session: session, lastSeen: time.Now()}
	h.sessions[token] = entry
	return entry
}

func (h *DiscoveryHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrStoreUnavailable):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	case errors.Is(err, discovery.ErrNoSearch):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
