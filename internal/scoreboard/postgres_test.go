package scoreboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

func TestPostgresStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	ctr, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("judgment"),
		postgres.WithUsername("judgment"),
		postgres.WithPassword("judgment"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	url, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	store, err := OpenPostgres(ctx, url)
	require.NoError(t, err)
	defer store.Close()

	exerciseStore(t, store)

	// A second process sharing the database sees the same history.
	other, err := OpenPostgres(ctx, url)
	require.NoError(t, err)
	defer other.Close()

	entries, err := other.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
}
