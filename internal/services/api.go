package services

import (
	"context"

	"artisanmart/internal/apiclient"
	"artisanmart/internal/forms"
	"artisanmart/internal/models"
)

// AuthAPI is the part of the marketplace API used by AuthService.
type AuthAPI interface {
	Register(ctx context.Context, reg models.Registration) (string, error)
	VerifyEmail(ctx context.Context, token string) (string, error)
	Login(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, newPassword string) (string, error)
}

// ProfileAPI is the part of the marketplace API used by ProfileService.
type ProfileAPI interface {
	GetProfile(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, update models.ProfileUpdate) (*models.User, error)
	BecomeArtisan(ctx context.Context) error
}

// Uploader sends a batch of files to the upload endpoint.
type Uploader interface {
	Upload(ctx context.Context, uploadType string, files []apiclient.File) ([]string, error)
}

// BrandAPI is the part of the marketplace API used by BrandService.
type BrandAPI interface {
	Uploader
	GetMyBrand(ctx context.Context) (*models.Brand, error)
	CreateBrand(ctx context.Context, input models.BrandInput) (*models.Brand, error)
	UpdateBrand(ctx context.Context, input models.BrandInput) (*models.Brand, error)
}

// ProductAPI is the part of the marketplace API used by ProductService.
type ProductAPI interface {
	Uploader
	ListProducts(ctx context.Context) ([]models.Product, error)
	ListAllProducts(ctx context.Context) ([]models.Product, error)
	CreateProduct(ctx context.Context, input models.ProductCreate) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uint) error
}

// Session is the session authority the services report to.
type Session interface {
	Authenticate(exchange func() (string, models.User, error)) error
	Logout()
	UpdateUser(mutate func(*models.User)) error
}

var _ AuthAPI = (*apiclient.Client)(nil)
var _ ProfileAPI = (*apiclient.Client)(nil)
var _ BrandAPI = (*apiclient.Client)(nil)
var _ ProductAPI = (*apiclient.Client)(nil)

func uploadFiles(files []forms.File) []apiclient.File {
	out := make([]apiclient.File, len(files))
	for i, f := range files {
		out[i] = f
	}
	return out
}
