package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"productstore/internal/apperror"
	"productstore/internal/models"
	"productstore/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrMissingFields is returned when a create request lacks name, price or image.
var ErrMissingFields = errors.New("please provide all fields")

// EventPublisher sends product events to interested consumers.
type EventPublisher interface {
	Publish(eventType string, payload interface{}) error
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher
	validate  *validator.Validate
	log       *zerolog.Logger
}

// NewProductService creates a new ProductService. publisher may be nil, in
// which case no events are sent.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher, log *zerolog.Logger) *ProductService {
	return &ProductService{
		repo:      repo,
		publisher: publisher,
		validate:  validator.New(),
		log:       log,
	}
}

// ListProducts retrieves all products.
func (s *ProductService) ListProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, apperror.E(apperror.Backend, "list products", err)
	}
	return products, nil
}

// CreateProduct checks that every field is present and stores a new product.
func (s *ProductService) CreateProduct(ctx context.Context, input models.ProductInput) (*models.Product, error) {
	const op = "create product"

	if err := s.validate.Struct(input); err != nil {
		return nil, apperror.E(apperror.InvalidInput, op, fmt.Errorf("%w: %v", ErrMissingFields, err))
	}

	product := &models.Product{
		Name:  input.Name,
		Price: input.Price,
		Image: input.Image,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, apperror.E(apperror.Backend, op, err)
	}

	s.publish(models.EventProductCreated, product.ID, product)
	return product, nil
}

// UpdateProduct applies the present fields to the product with the given ID.
// A nil product with a nil error means no product matched.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, update models.ProductUpdate) (*models.Product, error) {
	const op = "update product"

	if err := ValidateProductID(id); err != nil {
		return nil, apperror.E(apperror.InvalidID, op, err)
	}

	product, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return nil, apperror.E(classify(err), op, err)
	}

	if product != nil {
		s.publish(models.EventProductUpdated, product.ID, product)
	}
	return product, nil
}

// DeleteProduct removes the product with the given ID. The ID format is left
// to the store to reject.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperror.E(classify(err), "delete product", err)
	}

	s.publish(models.EventProductDeleted, id, nil)
	return nil
}

// ValidateProductID reports whether id is an identifier the store can address.
// It never touches the store.
func ValidateProductID(id string) error {
	if !primitive.IsValidObjectID(id) {
		return apperror.E(apperror.InvalidID, "validate product id", fmt.Errorf("%w: %q", repositories.ErrInvalidID, id))
	}
	return nil
}

// Ping reports whether the product store is reachable.
func (s *ProductService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

func classify(err error) apperror.Kind {
	if errors.Is(err, repositories.ErrInvalidID) {
		return apperror.InvalidID
	}
	return apperror.Backend
}

// publish sends an event without failing the caller.
func (s *ProductService) publish(eventType, productID string, product *models.Product) {
	if s.publisher == nil {
		return
	}

	event := models.ProductEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		ProductID:  productID,
		Product:    product,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.publisher.Publish(eventType, event); err != nil {
		s.log.Warn().Err(err).Str("type", eventType).Str("product_id", productID).Msg("failed to publish product event")
	}
}
