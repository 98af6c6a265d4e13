package errors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *VendorError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigInvalid(path string, cause error) *VendorError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "configuration file invalid").
		WithContext("path", path)
}

func ValidationFailed(field, reason string) *VendorError {
	return New(CategoryValidation, SeverityFatal, "validation failed: "+field+": "+reason).
		WithContext("field", field).
		WithContext("reason", reason)
}

// Filesystem errors

func FileSystem(operation, path string, cause error) *VendorError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, operation+" failed").
		WithContext("operation", operation).
		WithContext("path", path)
}

// Network errors

// FetchFailed marks a download that was skipped; the run continues.
func FetchFailed(url string, cause error) *VendorError {
	return Wrap(cause, CategoryNetwork, SeverityWarning, "download failed").
		WithContext("url", url)
}

// Internal errors

func InternalError(message string, cause error) *VendorError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
