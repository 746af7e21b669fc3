package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"productstore/internal/models"

	"gorm.io/gorm"
)

// productRecord is the row shape of a product in SQL stores.
type productRecord struct {
	ID        string `gorm:"primaryKey;type:varchar(24)"`
	Name      string `gorm:"not null"`
	Price     float64
	Image     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (productRecord) TableName() string {
	return "products"
}

func (p productRecord) toModel() models.Product {
	return models.Product{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Image:     p.Image,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// Migrate creates or updates the products table.
func (r *GORMProductRepository) Migrate() error {
	if err := r.db.AutoMigrate(&productRecord{}); err != nil {
		return fmt.Errorf("failed to migrate products table: %w", err)
	}
	return nil
}

// GetAll retrieves all products from the database.
func (r *GORMProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	var records []productRecord
	if err := r.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}

	products := make([]models.Product, 0, len(records))
	for _, rec := range records {
		products = append(products, rec.toModel())
	}
	return products, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	now := time.Now().UTC()
	rec := productRecord{
		ID:        newProductID(),
		Name:      product.Name,
		Price:     product.Price,
		Image:     product.Image,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	*product = rec.toModel()
	return nil
}

// Update applies the present fields to an existing product.
func (r *GORMProductRepository) Update(ctx context.Context, id string, update models.ProductUpdate) (*models.Product, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}

	changes := map[string]interface{}{"updated_at": time.Now().UTC()}
	if update.Name != nil {
		changes["name"] = *update.Name
	}
	if update.Price != nil {
		changes["price"] = *update.Price
	}
	if update.Image != nil {
		changes["image"] = *update.Image
	}

	res := r.db.WithContext(ctx).Model(&productRecord{}).Where("id = ?", id).Updates(changes)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update product %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}

	var rec productRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Removed between the update and the read.
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read updated product %s: %w", id, err)
	}
	product := rec.toModel()
	return &product, nil
}

// Delete deletes a product by its ID from the database.
func (r *GORMProductRepository) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Delete(&productRecord{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, err)
	}
	return nil
}

// Ping checks the underlying SQL connection.
func (r *GORMProductRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql handle: %w", err)
	}
	return sqlDB.PingContext(ctx)
}
