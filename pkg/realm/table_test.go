package realm

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/relaydb/pkg/model"
)

var defaults = Options{MaxBPS: 64000, TotalQuota: 100, UserQuota: 10}

func TestTable_GetCreatesOnce(t *testing.T) {
	table := NewTable(defaults)

	var wg sync.WaitGroup
	got := make([]*Realm, 16)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = table.Get("north.gov")
		}(i)
	}
	wg.Wait()

	for _, r := range got {
		assert.Same(t, got[0], r)
	}
	assert.Equal(t, defaults, got[0].Options())
	assert.Equal(t, []string{"north.gov"}, table.Names())
}

func TestTable_Lookup(t *testing.T) {
	table := NewTable(defaults)
	_, ok := table.Lookup("north.gov")
	assert.False(t, ok)

	table.Get("north.gov")
	r, ok := table.Lookup("north.gov")
	require.True(t, ok)
	assert.Equal(t, "north.gov", r.Name)
}

func TestTable_Apply(t *testing.T) {
	table := NewTable(defaults)

	require.NoError(t, table.Apply("north.gov", model.OptionMaxBps, "1000"))
	require.NoError(t, table.Apply("north.gov", model.OptionTotalQuota, "7"))
	require.NoError(t, table.Apply("north.gov", model.OptionUserQuota, "3"))
	assert.Equal(t, Options{MaxBPS: 1000, TotalQuota: 7, UserQuota: 3}, table.Get("north.gov").Options())

	assert.Error(t, table.Apply("north.gov", model.OptionMaxBps, "lots"))
	assert.Error(t, table.Apply("north.gov", model.RealmOptionName(42), "1"))
	assert.Equal(t, uint64(1000), table.Get("north.gov").Options().MaxBPS)
}

func TestTable_ResetToDefaults(t *testing.T) {
	table := NewTable(defaults)
	require.NoError(t, table.Apply("north.gov", model.OptionMaxBps, "1"))

	changed := Options{MaxBPS: 5, TotalQuota: 6, UserQuota: 7}
	table.SetDefaults(changed)
	assert.Equal(t, uint64(1), table.Get("north.gov").Options().MaxBPS)

	table.ResetToDefaults()
	assert.Equal(t, changed, table.Get("north.gov").Options())
	assert.Equal(t, changed, table.Get("south.gov").Options())
	assert.Equal(t, changed, table.Defaults())
}

func TestTable_PublishOrigins(t *testing.T) {
	table := NewTable(defaults)
	_, ok := table.RealmForOrigin("https://a.example")
	assert.False(t, ok)

	table.PublishOrigins(map[string]string{"https://a.example": "north.gov"})
	r, ok := table.RealmForOrigin("https://a.example")
	require.True(t, ok)
	assert.Equal(t, "north.gov", r)

	table.PublishOrigins(nil)
	_, ok = table.RealmForOrigin("https://a.example")
	assert.False(t, ok)
}

func TestTable_Snapshot(t *testing.T) {
	table := NewTable(defaults)
	table.Get("north.gov")
	table.PublishOrigins(map[string]string{"o": "north.gov"})

	snap := table.Snapshot()
	assert.Equal(t, map[string]Options{"north.gov": defaults}, snap.Realms)
	assert.Equal(t, map[string]string{"o": "north.gov"}, snap.Origins)

	snap.Origins["o"] = "changed"
	r, _ := table.RealmForOrigin("o")
	assert.Equal(t, "north.gov", r)
}
