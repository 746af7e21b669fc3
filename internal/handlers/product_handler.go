package handlers

import (
	"encoding/json"
	"errors"

	"productstore/internal/apperror"
	"productstore/internal/models"
	"productstore/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// Response messages.
const (
	msgServerError     = "Server Error"
	msgMissingFields   = "Please provide all fields."
	msgInvalidBody     = "Invalid request body"
	msgInvalidID       = "Invalid Product Id"
	msgProductDeleted  = "Product Deleted"
	msgProductNotFound = "Product Not Found"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
	log     *zerolog.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, log *zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		log:     log,
	}
}

// RegisterRoutes registers the product routes on router.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleGetProducts lists every product.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.ListProducts(c.UserContext())
	if err != nil {
		h.log.Error().Err(err).Msg("Error in fetching products")
		return fail(c, fiber.StatusInternalServerError, msgServerError)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    products,
	})
}

// HandleCreateProduct creates a product from a {name, price, image} body.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var input models.ProductInput
	if err := parseBody(c, &input); err != nil {
		if apperror.KindOf(err) == apperror.InvalidInput {
			h.log.Debug().Err(err).Msg("Error parsing create product body")
			return fail(c, fiber.StatusBadRequest, msgInvalidBody)
		}
		h.log.Error().Err(err).Msg("Error in creating product")
		return fail(c, fiber.StatusInternalServerError, msgServerError)
	}

	product, err := h.service.CreateProduct(c.UserContext(), input)
	if err != nil {
		if apperror.KindOf(err) == apperror.InvalidInput {
			return fail(c, fiber.StatusBadRequest, msgMissingFields)
		}
		h.log.Error().Err(err).Msg("Error in creating product")
		return fail(c, fiber.StatusInternalServerError, msgServerError)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    product,
	})
}

// HandleUpdateProduct applies a partial update. A malformed id, a field of the
// wrong type and a store failure all answer 404; a missing product answers 200
// with null data.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id := c.Params("id")

	// The id is checked before the body is read.
	if err := services.ValidateProductID(id); err != nil {
		return fail(c, fiber.StatusNotFound, msgInvalidID)
	}

	var update models.ProductUpdate
	if err := parseBody(c, &update); err != nil {
		if apperror.KindOf(err) == apperror.InvalidInput {
			h.log.Debug().Err(err).Str("product_id", id).Msg("Error parsing update product body")
			return fail(c, fiber.StatusBadRequest, msgInvalidBody)
		}
		h.log.Error().Err(err).Str("product_id", id).Msg("Error in updating product")
		return fail(c, fiber.StatusNotFound, msgServerError)
	}

	product, err := h.service.UpdateProduct(c.UserContext(), id, update)
	if err != nil {
		if apperror.KindOf(err) == apperror.InvalidID {
			return fail(c, fiber.StatusNotFound, msgInvalidID)
		}
		h.log.Error().Err(err).Str("product_id", id).Msg("Error in updating product")
		return fail(c, fiber.StatusNotFound, msgServerError)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    product,
	})
}

// HandleDeleteProduct removes a product. Every failure answers 404.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := h.service.DeleteProduct(c.UserContext(), id); err != nil {
		h.log.Error().Err(err).Str("product_id", id).Msg("Error in deleting product")
		return fail(c, fiber.StatusNotFound, msgProductNotFound)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": msgProductDeleted,
	})
}

// parseBody decodes a JSON body into out with the app's JSON decoder. A body
// that is empty or not sent as JSON leaves out untouched. Malformed JSON is
// InvalidInput; a field of the wrong type is Backend, like a store cast failure.
func parseBody(c *fiber.Ctx, out interface{}) error {
	const op = "decode body"

	if len(c.Body()) == 0 || !c.Is("json") {
		return nil
	}
	if err := c.App().Config().JSONDecoder(c.Body(), out); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return apperror.E(apperror.Backend, op, err)
		}
		return apperror.E(apperror.InvalidInput, op, err)
	}
	return nil
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}
