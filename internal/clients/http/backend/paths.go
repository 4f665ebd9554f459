package backend

import (
	"fmt"

	"github.com/oapi-codegen/runtime"
)

// pathParam renders a path segment using OpenAPI simple style, escaping as the
// generated clients do.
func pathParam(name string, value any) (string, error) {
	segment, err := runtime.StyleParamWithLocation("simple", false, name, runtime.ParamLocationPath, value)
	if err != nil {
		return "", fmt.Errorf("encode path parameter %s: %w", name, err)
	}
	return segment, nil
}

func resourcePath(prefix, name string, value any, suffix string) (string, error) {
	segment, err := pathParam(name, value)
	if err != nil {
		return "", err
	}
	return prefix + "/" + segment + suffix, nil
}
