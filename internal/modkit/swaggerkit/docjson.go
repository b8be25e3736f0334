//go:build swag

package swaggerkit

import (
	docs "autofax/internal/services/api/docs"
)

// docReader is a seam so tests can inject a doc without regenerating
var docReader = func() string { return docs.SwaggerInfo.ReadDoc() }
