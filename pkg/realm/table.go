package realm

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"sync"

	"github.com/doodlesbykumbi/relaydb/pkg/model"
)

// Options are the capacity settings of a realm.
type Options struct {
	MaxBPS     uint64 `json:"max_bps"`
	TotalQuota int    `json:"total_quota"`
	UserQuota  int    `json:"user_quota"`
}

// Realm is the live instance of one realm. Its options are guarded by the
// owning table.
type Realm struct {
	Name string

	table   *Table
	options Options
}

// Options returns a copy of the realm's current settings.
func (r *Realm) Options() Options {
	r.table.mu.RLock()
	defer r.table.mu.RUnlock()
	return r.options
}

// Table is the process-wide set of live realms.
type Table struct {
	mu       sync.RWMutex
	realms   map[string]*Realm
	defaults Options

	originsMu sync.RWMutex
	origins   map[string]string
}

// NewTable returns an empty table whose new realms start with defaults.
func NewTable(defaults Options) *Table {
	return &Table{
		realms:   make(map[string]*Realm),
		defaults: defaults,
		origins:  map[string]string{},
	}
}

// Get returns the realm called name, creating it with the current defaults
// if it does not exist.
func (t *Table) Get(name string) *Realm {
	t.mu.RLock()
	r, ok := t.realms[name]
	t.mu.RUnlock()
	if ok {
		return r
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if r, ok := t.realms[name]; ok {
		return r
	}
	r = &Realm{Name: name, table: t, options: t.defaults}
	t.realms[name] = r
	return r
}

// Lookup returns the realm called name without creating it.
func (t *Table) Lookup(name string) (*Realm, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	r, ok := t.realms[name]
	return r, ok
}

// Names returns the names of all live realms in ascending order.
func (t *Table) Names() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Sorted(maps.Keys(t.realms))
}

func (t *Table) Defaults() Options {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.defaults
}

// SetDefaults changes the settings given to realms created from now on and
// by the next ResetToDefaults.
func (t *Table) SetDefaults(o Options) {
	t.mu.Lock()
	t.defaults = o
	t.mu.Unlock()
}

// ResetToDefaults puts every live realm back on the default settings.
func (t *Table) ResetToDefaults() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, r := range t.realms {
		r.options = t.defaults
	}
}

// Apply parses value and stores it as option opt of realm name.
func (t *Table) Apply(name string, opt model.RealmOptionName, value string) error {
	r := t.Get(name)

	switch opt {
	case model.OptionMaxBps:
		v, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return fmt.Errorf("realm %s: %s=%q: %w", name, opt, value, err)
		}
		t.mu.Lock()
		r.options.MaxBPS = v
		t.mu.Unlock()
	case model.OptionTotalQuota, model.OptionUserQuota:
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("realm %s: %s=%q: %w", name, opt, value, err)
		}
		t.mu.Lock()
		if opt == model.OptionTotalQuota {
			r.options.TotalQuota = v
		} else {
			r.options.UserQuota = v
		}
		t.mu.Unlock()
	default:
		return fmt.Errorf("realm %s: unknown option %s", name, opt)
	}
	return nil
}

// PublishOrigins replaces the origin map. The table keeps origins; callers
// must not modify it afterwards.
func (t *Table) PublishOrigins(origins map[string]string) {
	if origins == nil {
		origins = map[string]string{}
	}
	t.originsMu.Lock()
	t.origins = origins
	t.originsMu.Unlock()
}

// RealmForOrigin resolves the realm governing origin.
func (t *Table) RealmForOrigin(origin string) (string, bool) {
	t.originsMu.RLock()
	m := t.origins
	t.originsMu.RUnlock()
	r, ok := m[origin]
	return r, ok
}

// Snapshot is a copy of the live state.
type Snapshot struct {
	Realms  map[string]Options `json:"realms"`
	Origins map[string]string  `json:"origins"`
}

func (t *Table) Snapshot() Snapshot {
	t.mu.RLock()
	realms := make(map[string]Options, len(t.realms))
	for name, r := range t.realms {
		realms[name] = r.options
	}
	t.mu.RUnlock()

	t.originsMu.RLock()
	origins := maps.Clone(t.origins)
	t.originsMu.RUnlock()

	return Snapshot{Realms: realms, Origins: origins}
}
