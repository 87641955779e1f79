package errors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *ConvertError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ValidationFailed(field, reason string) *ConvertError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Pipeline errors

// UnsupportedNode marks a block node the renderer has no handler for.
// The node is skipped and the conversion continues.
func UnsupportedNode(kind string) *ConvertError {
	return New(CategoryUnsupportedNode, SeverityWarning, "no renderer registered for node").
		WithContext("node_kind", kind)
}

// DiagramFailed marks a diagram source block the external renderer could not
// turn into an image. The block falls back to plain code rendering.
func DiagramFailed(cause error) *ConvertError {
	return Wrap(cause, CategoryDiagram, SeverityWarning, "diagram rendering failed")
}

func ParseFailed(file string, cause error) *ConvertError {
	return Wrap(cause, CategoryParse, SeverityFatal, "markdown parse failed").
		WithContext("file", file)
}

// WriteFailed marks the output artifact as unwritable. Fatal for the file,
// never for sibling files in the same invocation.
func WriteFailed(path string, cause error) *ConvertError {
	return Wrap(cause, CategoryWrite, SeverityFatal, "output write failed").
		WithContext("path", path)
}

// Source errors

func SourceCloneFailed(repo string, cause error) *ConvertError {
	return Wrap(cause, CategorySource, SeverityFatal, "repository clone failed").
		WithContext("repository", repo)
}
