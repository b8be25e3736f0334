//go:build !swag

package swaggerkit

import (
	"encoding/json"

	"autofax/internal/core/version"
)

// docReader (no-swag build) returns an empty skeleton so the UI can still load
var docReader = func() string {
	info := version.Info()
	raw, _ := json.Marshal(map[string]any{
		"openapi": "3.0.3",
		"info":    map[string]any{"title": info.Service, "version": info.Version},
		"paths":   map[string]any{},
	})
	return string(raw)
}
