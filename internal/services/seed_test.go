package services

import (
	"context"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newSeedServiceForTest(t *testing.T, repo *fakeSampleRepo, cache Cache) *seedService {
	t.Helper()
	svc := NewSeedService(nil, testLogger(t), repo, cache).(*seedService)
	svc.now = fixedNow
	svc.rng = rand.New(rand.NewSource(42))
	return svc
}

func TestEnsureSeedDataSkipsPopulatedTable(t *testing.T) {
	repo := &fakeSampleRepo{count: 30}
	svc := newSeedServiceForTest(t, repo, NewMemoryCache())

	inserted, err := svc.EnsureSeedData(context.Background())
	require.NoError(t, err)
	require.Zero(t, inserted)
	require.Empty(t, repo.created)
}

func TestEnsureSeedDataInsertsTenRows(t *testing.T) {
	repo := &fakeSampleRepo{count: 0}
	svc := newSeedServiceForTest(t, repo, NewMemoryCache())

	inserted, err := svc.EnsureSeedData(context.Background())
	require.NoError(t, err)
	require.Equal(t, 10, inserted)
	require.Len(t, repo.created, 1)
	require.Len(t, repo.created[0], 10)

	now := fixedNow().UTC()
	oldest := now.Add(-30 * 24 * time.Hour).Add(-time.Second)
	newest := now.Add(-2 * 24 * time.Hour).Add(time.Second)

	for _, sample := range repo.created[0] {
		require.Len(t, sample.Name, 5)
		for _, r := range sample.Name {
			require.Contains(t, alphanumeric, string(r))
		}
		for _, measure := range []int64{sample.UV, sample.PV, sample.Amt} {
			require.GreaterOrEqual(t, measure, int64(1000))
			require.LessOrEqual(t, measure, int64(5000))
		}
		require.True(t, sample.Date.After(oldest), "date %v older than 30 days", sample.Date)
		require.True(t, sample.Date.Before(newest), "date %v newer than 2 days", sample.Date)
	}
}

func TestEnsureSeedDataIdempotentOncePopulated(t *testing.T) {
	repo := &fakeSampleRepo{count: 35}
	svc := newSeedServiceForTest(t, repo, NewMemoryCache())

	for i := 0; i < 2; i++ {
		inserted, err := svc.EnsureSeedData(context.Background())
		require.NoError(t, err)
		require.Zero(t, inserted)
	}
	require.Empty(t, repo.created)
	// The second call was served from the cached count.
	require.Equal(t, 1, repo.countCalls)
}

func TestEnsureSeedDataNamesVary(t *testing.T) {
	repo := &fakeSampleRepo{count: 0}
	svc := newSeedServiceForTest(t, repo, NewMemoryCache())

	_, err := svc.EnsureSeedData(context.Background())
	require.NoError(t, err)

	names := map[string]bool{}
	for _, sample := range repo.created[0] {
		names[sample.Name] = true
	}
	require.Greater(t, len(names), 1, "names should not all collide: %s", strings.Join(keys(names), ","))
}

func keys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
