package database_test

import (
	"context"
	"testing"

	"productstore/internal/database"
	"productstore/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMongoDatabaseName(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		explicit string
		want     string
	}{
		{"explicit wins", "mongodb://localhost:27017/fromuri", "shop", "shop"},
		{"from uri path", "mongodb://localhost:27017/fromuri?retryWrites=true", "", "fromuri"},
		{"no path", "mongodb://localhost:27017", "", database.DefaultMongoDatabase},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := database.MongoDatabaseName(tt.uri, tt.explicit)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := database.MongoDatabaseName("postgres://nope", "")
	assert.Error(t, err)
}

func TestOpenGORM_SQLite(t *testing.T) {
	db, err := database.OpenGORM("sqlite", "file::memory:", logging.Nop())
	require.NoError(t, err)
	assert.NoError(t, database.CloseGORM(db))
}

func TestOpenGORM_UnknownDriver(t *testing.T) {
	_, err := database.OpenGORM("oracle", "dsn", logging.Nop())
	assert.Error(t, err)
}

func TestConnectMongo_DoesNotDial(t *testing.T) {
	// Nothing listens on this port; construction must still succeed.
	client, err := database.ConnectMongo("mongodb://127.0.0.1:1")
	require.NoError(t, err)
	assert.NoError(t, client.Disconnect(context.Background()))
}
