package repositories

import (
	"context"
	"errors"
	"fmt"

	"productstore/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrInvalidID is returned when an identifier is not a 24 character hex ObjectID.
var ErrInvalidID = errors.New("invalid product id")

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	// GetAll returns every product. The slice is empty, not nil, when there are none.
	GetAll(ctx context.Context) ([]models.Product, error)
	// Create assigns the ID and timestamps and stores the product.
	Create(ctx context.Context, product *models.Product) error
	// Update applies the present fields and returns the stored result,
	// or nil without error when no product has that ID.
	Update(ctx context.Context, id string, update models.ProductUpdate) (*models.Product, error)
	// Delete removes the product. Deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error
	// Ping checks that the backing store is reachable.
	Ping(ctx context.Context) error
}

// newProductID generates an identifier in the same format Mongo uses.
func newProductID() string {
	return primitive.NewObjectID().Hex()
}

func checkID(id string) error {
	if !primitive.IsValidObjectID(id) {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}
