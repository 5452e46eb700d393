package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"artisanmart/internal/apiclient"
	"artisanmart/internal/forms"
	"artisanmart/internal/models"
)

// EventProductSubmitted is published after a product was created.
const EventProductSubmitted = "product.submitted"

var (
	// ErrSubmissionInFlight is returned when the form is already being submitted.
	ErrSubmissionInFlight = errors.New("submission already in progress")
	// ErrFormDisposed is returned when the form was closed before the
	// submission finished; the result was discarded.
	ErrFormDisposed = errors.New("form was closed")
)

// SubmitStage names the step of a submission that failed.
type SubmitStage string

const (
	StageValidate SubmitStage = "validate"
	StageImages   SubmitStage = "images"
	StageVideos   SubmitStage = "videos"
	StageCreate   SubmitStage = "create"
)

// SubmitError reports a failed submission. Reason is the message to show the
// user; Err is the underlying cause.
type SubmitError struct {
	Stage  SubmitStage
	Reason string
	Err    error
}

func (e *SubmitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Stage, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %v", e.Stage, e.Reason, e.Err)
}

func (e *SubmitError) Unwrap() error { return e.Err }

// Publisher sends domain events; it may be nil.
type Publisher interface {
	Publish(routingKey string, body []byte) error
}

// ProductService handles the artisan's products: submitting the product
// form, listing, deleting and browsing the public catalog.
type ProductService struct {
	api       ProductAPI
	publisher Publisher
}

// NewProductService creates a new ProductService. publisher may be nil.
func NewProductService(api ProductAPI, publisher Publisher) *ProductService {
	return &ProductService{
		api:       api,
		publisher: publisher,
	}
}

// Submit validates the form, uploads staged images then staged videos, and
// creates the product. On success the form is reset. On failure the form is
// left as it was and can be submitted again.
func (s *ProductService) Submit(ctx context.Context, form *forms.ProductForm) (*models.Product, error) {
	if !form.BeginSubmit() {
		if form.Disposed() {
			return nil, ErrFormDisposed
		}
		return nil, ErrSubmissionInFlight
	}
	defer form.EndSubmit()

	input, err := form.Validate()
	if err != nil {
		return nil, &SubmitError{Stage: StageValidate, Reason: "Please fix the highlighted fields.", Err: err}
	}

	pictures, err := s.api.Upload(ctx, apiclient.UploadProductPhoto, uploadFiles(form.Images().Files()))
	if err != nil {
		log.Printf("Error uploading product images: %v", err)
		return nil, &SubmitError{Stage: StageImages, Reason: "Failed to upload images", Err: err}
	}
	if form.Disposed() {
		return nil, ErrFormDisposed
	}

	videos, err := s.api.Upload(ctx, apiclient.UploadProductVideo, uploadFiles(form.Videos().Files()))
	if err != nil {
		log.Printf("Error uploading product videos: %v", err)
		return nil, &SubmitError{Stage: StageVideos, Reason: "Failed to upload videos", Err: err}
	}
	if form.Disposed() {
		return nil, ErrFormDisposed
	}

	product, err := s.api.CreateProduct(ctx, input.Create(pictures, videos))
	if err != nil {
		log.Printf("Error creating product %q: %v", input.Name, err)
		return nil, &SubmitError{
			Stage:  StageCreate,
			Reason: apiclient.MessageOr(err, "Failed to create product"),
			Err:    err,
		}
	}
	if form.Disposed() {
		return nil, ErrFormDisposed
	}

	form.Reset()
	s.publishSubmitted(product)
	return product, nil
}

// ListMine returns the signed-in artisan's products.
func (s *ProductService) ListMine(ctx context.Context) ([]models.Product, error) {
	products, err := s.api.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	return products, nil
}

// Catalog returns every listed product.
func (s *ProductService) Catalog(ctx context.Context) ([]models.Product, error) {
	products, err := s.api.ListAllProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return products, nil
}

// Delete removes one of the artisan's products.
func (s *ProductService) Delete(ctx context.Context, id uint) error {
	if err := s.api.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}
	return nil
}

func (s *ProductService) publishSubmitted(p *models.Product) {
	if s.publisher == nil || p == nil {
		return
	}
	body, err := json.Marshal(map[string]interface{}{
		"event":        EventProductSubmitted,
		"product_id":   p.ID,
		"product_name": p.Name,
		"at":           time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", EventProductSubmitted, err)
		return
	}
	if err := s.publisher.Publish(EventProductSubmitted, body); err != nil {
		log.Printf("Warning: Failed to publish %s event: %v", EventProductSubmitted, err)
	}
}
