package history

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/farewatch/farewatch-cli/internal/model"
)

// JSONStore keeps the whole history in memory and persists it as a single
// JSON file mapping route ID to {latest, history}. A missing or corrupt
// file degrades to an empty store; corruption is never fatal.
type JSONStore struct {
	path   string
	routes map[string]*model.RouteHistory
	now    func() time.Time
}

// NewJSON creates a JSONStore backed by the given file and loads whatever
// state exists there.
func NewJSON(path string) *JSONStore {
	s := &JSONStore{
		path:   path,
		routes: make(map[string]*model.RouteHistory),
		now:    time.Now,
	}
	s.load()
	return s
}

func (s *JSONStore) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			zap.L().Warn("history: unreadable store file, starting empty",
				zap.String("path", s.path),
				zap.Error(err),
			)
		}
		return
	}

	routes := make(map[string]*model.RouteHistory)
	if err := json.Unmarshal(data, &routes); err != nil {
		zap.L().Warn("history: corrupt store file, starting empty",
			zap.String("path", s.path),
			zap.Error(err),
		)
		return
	}
	s.routes = routes
}

// Migrate re-reads persisted state. Idempotent; parse failures degrade to
// an empty store exactly like the initial load.
func (s *JSONStore) Migrate(_ context.Context) error {
	s.load()
	return nil
}

func (s *JSONStore) RecordSnapshot(_ context.Context, routeID string, snap model.DailySnapshot) error {
	if routeID == "" {
		return eris.New("history: empty route id")
	}

	rh, ok := s.routes[routeID]
	if !ok {
		rh = &model.RouteHistory{}
		s.routes[routeID] = rh
	}

	// Same-day re-run replaces that day's entry.
	replaced := false
	for i := len(rh.History) - 1; i >= 0; i-- {
		if rh.History[i].Date == snap.Date {
			rh.History[i] = snap
			replaced = true
			break
		}
	}
	if !replaced {
		rh.History = append(rh.History, snap)
	}
	rh.Latest = snap
	return nil
}

func (s *JSONStore) Latest(_ context.Context, routeID string) (*model.DailySnapshot, error) {
	rh, ok := s.routes[routeID]
	if !ok || len(rh.History) == 0 {
		return nil, nil
	}
	latest := rh.Latest
	return &latest, nil
}

func (s *JSONStore) History(_ context.Context, routeID string) ([]model.DailySnapshot, error) {
	rh, ok := s.routes[routeID]
	if !ok {
		return nil, nil
	}
	out := make([]model.DailySnapshot, len(rh.History))
	copy(out, rh.History)
	return out, nil
}

func (s *JSONStore) Window(ctx context.Context, routeID string, days int) ([]model.DailySnapshot, error) {
	series, err := s.History(ctx, routeID)
	if err != nil {
		return nil, err
	}
	return windowSnapshots(series, days, s.now()), nil
}

func (s *JSONStore) RouteIDs(_ context.Context) ([]string, error) {
	ids := make([]string, 0, len(s.routes))
	for id := range s.routes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Save durably persists the full store, overwriting prior contents. The
// write goes through a temp file and rename so a crash mid-write leaves
// the previous state intact.
func (s *JSONStore) Save(_ context.Context) error {
	data, err := json.MarshalIndent(s.routes, "", "    ")
	if err != nil {
		return eris.Wrap(err, "history: marshal store")
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".history-*.json")
	if err != nil {
		return eris.Wrap(err, "history: create temp file")
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return eris.Wrap(err, "history: write temp file")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return eris.Wrap(err, "history: close temp file")
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return eris.Wrap(err, "history: replace store file")
	}
	return nil
}

func (s *JSONStore) Close() error { return nil }
