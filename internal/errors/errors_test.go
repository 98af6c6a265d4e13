package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVendorError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *VendorError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(CategoryConfig, SeverityFatal, "configuration invalid"),
			expected: "config (fatal): configuration invalid",
		},
		{
			name:     "error with cause",
			err:      Wrap(fmt.Errorf("permission denied"), CategoryFileSystem, SeverityFatal, "write failed"),
			expected: "filesystem (fatal): write failed: permission denied",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, test.err.Error())
		})
	}
}

func TestVendorError_WithContext(t *testing.T) {
	err := FileSystem("write document", "/docs/a.md", fmt.Errorf("read-only"))

	require.NotNil(t, err.Context)
	assert.Equal(t, "write document", err.Context["operation"])
	assert.Equal(t, "/docs/a.md", err.Context["path"])
}

func TestIsCategory_WalksWrappedChain(t *testing.T) {
	inner := FetchFailed("https://x.test/a.png", fmt.Errorf("timeout"))
	wrapped := fmt.Errorf("processing a.md: %w", inner)

	assert.True(t, IsCategory(wrapped, CategoryNetwork))
	assert.False(t, IsCategory(wrapped, CategoryFileSystem))
	assert.False(t, IsCategory(fmt.Errorf("plain"), CategoryNetwork))
}

func TestGetCategory(t *testing.T) {
	assert.Equal(t, CategoryConfig, GetCategory(ConfigNotFound("x.yaml")))
	assert.Equal(t, CategoryInternal, GetCategory(fmt.Errorf("plain")))
}

func TestStatusCode(t *testing.T) {
	err := FetchFailed("https://x.test/a.png", &HTTPStatusError{StatusCode: 404, Status: "404 Not Found"})

	assert.Equal(t, 404, StatusCode(err))
	assert.Equal(t, 0, StatusCode(fmt.Errorf("dial tcp: refused")))
	assert.Contains(t, err.Error(), "HTTP 404 Not Found")
}

func TestUnwrap(t *testing.T) {
	cause := stdErrors.New("disk full")
	err := FileSystem("write image", "images/a.png", cause)

	assert.ErrorIs(t, err, cause)
}

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	a := NewCLIErrorAdapter(false, nil)

	assert.Equal(t, 0, a.ExitCodeFor(nil))
	assert.Equal(t, 1, a.ExitCodeFor(fmt.Errorf("plain")))
	assert.Equal(t, 2, a.ExitCodeFor(ValidationFailed("timeout", "must be positive")))
	assert.Equal(t, 7, a.ExitCodeFor(ConfigNotFound("x.yaml")))
	assert.Equal(t, 11, a.ExitCodeFor(fmt.Errorf("wrapped: %w", FileSystem("write", "a.md", fmt.Errorf("x")))))
}
