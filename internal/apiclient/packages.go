package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/crucial707/pfconsole/internal/models"
)

// GetSettings fetches the backend defaults (GET /api/config). The response is
// the bare config object.
func (c *Client) GetSettings(ctx context.Context) (models.Settings, error) {
	var s models.Settings
	if err := c.do(ctx, "config.get", http.MethodGet, "/api/config", nil, &s); err != nil {
		return models.Settings{}, err
	}
	return s, nil
}

// SaveSettings stores new defaults (POST /api/config).
func (c *Client) SaveSettings(ctx context.Context, s models.Settings) error {
	var out envelope
	return c.do(ctx, "config.save", http.MethodPost, "/api/config", s, &out)
}

// CreatePackage asks the backend to build a package. A result with
// Success false is returned alongside an *AppError.
func (c *Client) CreatePackage(ctx context.Context, req models.CreatePackageRequest) (models.CreatePackageResult, error) {
	var res models.CreatePackageResult
	if err := c.do(ctx, "packages.create", http.MethodPost, "/api/create-package", req, &res); err != nil {
		return res, err
	}
	if !res.Success {
		return res, &AppError{Endpoint: "packages.create", Message: res.Error}
	}
	return res, nil
}

// ListPackages returns previously built packages (GET /api/packages).
func (c *Client) ListPackages(ctx context.Context) ([]models.PackageSummary, error) {
	var out []models.PackageSummary
	if err := c.do(ctx, "packages.list", http.MethodGet, "/api/packages", nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.PackageSummary{}
	}
	return out, nil
}

type packageDetailResponse struct {
	envelope
	Package models.PackageDetail `json:"package"`
}

// GetPackageDetails fetches one package (GET /api/packages/{name}/details).
func (c *Client) GetPackageDetails(ctx context.Context, name string) (models.PackageDetail, error) {
	var out packageDetailResponse
	if err := c.do(ctx, "packages.details", http.MethodGet, "/api/packages/"+url.PathEscape(name)+"/details", nil, &out); err != nil {
		return models.PackageDetail{}, err
	}
	return out.Package, nil
}

// DeletePackage removes a package (DELETE /api/packages/{name}).
func (c *Client) DeletePackage(ctx context.Context, name string) error {
	var out envelope
	return c.do(ctx, "packages.delete", http.MethodDelete, "/api/packages/"+url.PathEscape(name), nil, &out)
}
