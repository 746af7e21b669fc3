package repositories_test

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"productstore/internal/models"
	"productstore/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newSQLiteRepository(t *testing.T) *repositories.GORMProductRepository {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	repo := repositories.NewGORMProductRepository(db)
	require.NoError(t, repo.Migrate())
	return repo
}

// newMongoRepository connects to MONGO_TEST_URI and uses a throwaway database.
func newMongoRepository(t *testing.T) *repositories.MongoProductRepository {
	t.Helper()

	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	if err := client.Ping(ctx, nil); err != nil {
		t.Skipf("MongoDB not available at %s: %v", uri, err)
	}

	db := client.Database("productstore_test_" + primitive.NewObjectID().Hex())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})
	return repositories.NewMongoProductRepository(db)
}

func TestMockProductRepository(t *testing.T) {
	exerciseRepository(t, repositories.NewMockProductRepository())
}

func TestGORMProductRepository(t *testing.T) {
	exerciseRepository(t, newSQLiteRepository(t))
}

func TestMongoProductRepository(t *testing.T) {
	exerciseRepository(t, newMongoRepository(t))
}

func exerciseRepository(t *testing.T, repo repositories.ProductRepository) {
	ctx := context.Background()

	require.NoError(t, repo.Ping(ctx))

	products, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)

	pen := &models.Product{Name: "Pen", Price: 1.5, Image: "http://x/p.png"}
	require.NoError(t, repo.Create(ctx, pen))
	assert.True(t, primitive.IsValidObjectID(pen.ID), "id %q is not an ObjectID", pen.ID)
	assert.False(t, pen.CreatedAt.IsZero())
	assert.False(t, pen.UpdatedAt.IsZero())

	cup := &models.Product{Name: "Cup", Price: 4, Image: "http://x/c.png"}
	require.NoError(t, repo.Create(ctx, cup))
	assert.NotEqual(t, pen.ID, cup.ID)

	products, err = repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 2)

	t.Run("UpdateOnlyPresentFields", func(t *testing.T) {
		price := 42.0
		updated, err := repo.Update(ctx, pen.ID, models.ProductUpdate{Price: &price})
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, pen.ID, updated.ID)
		assert.Equal(t, 42.0, updated.Price)
		assert.Equal(t, "Pen", updated.Name)
		assert.Equal(t, "http://x/p.png", updated.Image)
		assert.False(t, updated.UpdatedAt.Before(pen.UpdatedAt))
	})

	t.Run("UpdateMissingReturnsNil", func(t *testing.T) {
		name := "Ghost"
		updated, err := repo.Update(ctx, primitive.NewObjectID().Hex(), models.ProductUpdate{Name: &name})
		assert.NoError(t, err)
		assert.Nil(t, updated)
	})

	t.Run("MalformedID", func(t *testing.T) {
		_, err := repo.Update(ctx, "not-an-id", models.ProductUpdate{})
		assert.ErrorIs(t, err, repositories.ErrInvalidID)
		assert.ErrorIs(t, repo.Delete(ctx, "not-an-id"), repositories.ErrInvalidID)
	})

	t.Run("DeleteIsIdempotent", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, cup.ID))
		require.NoError(t, repo.Delete(ctx, cup.ID))

		products, err := repo.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, pen.ID, products[0].ID)
	})
}
