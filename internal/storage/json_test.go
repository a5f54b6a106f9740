package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestJSONProvider_MissingFileIsCreated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "data.json")
	p := NewJSONProvider(path, zaptest.NewLogger(t))

	require.NoError(t, p.Init(context.Background()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))
}

func TestJSONProvider_ReloadReproducesRecords(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data.json")

	first := NewJSONProvider(path, zaptest.NewLogger(t))
	require.NoError(t, first.Init(ctx))

	var created []Record
	for i := range 5 {
		r, err := first.Create(ctx, "memberships", Record{
			"uuid":           "uuid-" + string(rune('a'+i)),
			"recurringPrice": 10.5 * float64(i),
			"tags":           []string{"x", "y"},
			"nested":         map[string]any{"ok": true},
		})
		require.NoError(t, err)
		created = append(created, r)
	}
	_, err := first.Create(ctx, "membershipPeriods", Record{"membership": 1})
	require.NoError(t, err)

	second := NewJSONProvider(path, zaptest.NewLogger(t))
	require.NoError(t, second.Init(ctx))

	reloaded, err := second.FindAll(ctx, "memberships")
	require.NoError(t, err)
	assert.ElementsMatch(t, created, reloaded)

	periods, err := second.FindAll(ctx, "membershipPeriods")
	require.NoError(t, err)
	assert.Len(t, periods, 1)

	next, err := second.Create(ctx, "memberships", Record{"uuid": "after-reload"})
	require.NoError(t, err)
	assert.Equal(t, "6", NormalizeID(next.ID()))
}

func TestJSONProvider_DocumentFormat(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data.json")

	p := NewJSONProvider(path, zaptest.NewLogger(t))
	_, err := p.Create(ctx, "roles", Record{"uuid": "r-1", "name": "admin"})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(data), "{\n  \"roles\": ["), "document is indented with two spaces")

	var doc map[string][]map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Len(t, doc["roles"], 1)
	assert.Equal(t, map[string]any{"id": float64(1), "uuid": "r-1", "name": "admin"}, doc["roles"][0])
}

func TestJSONProvider_CorruptFileFallsBackToEmpty(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	p := NewJSONProvider(path, zaptest.NewLogger(t))
	require.NoError(t, p.Init(ctx))

	records, err := p.FindAll(ctx, "memberships")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestJSONProvider_PersistErrorPropagates(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data.json")

	p := NewJSONProvider(path, zaptest.NewLogger(t))
	require.NoError(t, p.Init(ctx))

	// a directory in place of the document makes every rewrite fail
	require.NoError(t, os.Remove(path))
	require.NoError(t, os.Mkdir(path, 0o755))

	_, err := p.Create(ctx, "users", Record{"name": "lost"})
	require.Error(t, err)

	records, err := p.FindAll(ctx, "users")
	require.NoError(t, err)
	assert.Len(t, records, 1, "in-memory state keeps the mutation")
}

func TestJSONProvider_ConcurrentCreates(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data.json")

	p := NewJSONProvider(path, zaptest.NewLogger(t))
	require.NoError(t, p.Init(ctx))

	const n = 20
	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := p.Create(ctx, "users", Record{"name": "u"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	reloaded := NewJSONProvider(path, zaptest.NewLogger(t))
	records, err := reloaded.FindAll(ctx, "users")
	require.NoError(t, err)
	require.Len(t, records, n)

	ids := make(map[string]struct{}, n)
	for _, r := range records {
		ids[NormalizeID(r.ID())] = struct{}{}
	}
	assert.Len(t, ids, n)
}
