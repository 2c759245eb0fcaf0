package database

import (
	"context"
	"os"
	"testing"

	"venue-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMongoSupportsTransactions(t *testing.T) {
	uri := os.Getenv("MONGODB_TEST_URI")
	if uri == "" {
		t.Skip("MONGODB_TEST_URI not set")
	}

	ctx := context.Background()
	client, err := InitMongo(ctx, utils.MongoConfig{URI: uri})
	require.NoError(t, err)
	defer client.Disconnect(ctx)

	supported, err := MongoSupportsTransactions(ctx, client)
	require.NoError(t, err)

	// MONGODB_TEST_REPLICA_SET tells the test which topology the URI points at.
	if want := os.Getenv("MONGODB_TEST_REPLICA_SET"); want != "" {
		assert.Equal(t, want == "true", supported)
	}
}
