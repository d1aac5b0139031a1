package ports

import (
	"context"
	"io"

	"github.com/csg33k/employee-directory/internal/domain"
)

// LocalStorage is the client-local key/value store (credentials, preferences).
// Get returns "" and no error for a missing key.
type LocalStorage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// TokenStore yields the bearer token attached to outgoing API requests.
type TokenStore interface {
	Token(ctx context.Context) (string, error)
}

// APIClient issues requests against the configured employees API.
type APIClient interface {
	// Get decodes the JSON body of a successful GET into out.
	// Failures are returned as *domain.APIError.
	Get(ctx context.Context, path string, out any) error
}

// EmployeeSource resolves the employee directory. It never fails.
type EmployeeSource interface {
	Fetch(ctx context.Context) domain.EmployeeList
}

// DirectoryExporter renders the directory into a downloadable document.
type DirectoryExporter interface {
	Export(ctx context.Context, list domain.EmployeeList, w io.Writer) error
	ContentType() string
	Extension() string
}
