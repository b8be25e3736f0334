// Package docs holds the OpenAPI document swag generates from the handler annotations
// build with -tags swag once generated, swaggerkit reads SwaggerInfo from here
package docs

//go:generate swag init --v3.1 -d ../../../../ -g cmd/autofax-api/main.go -o . --outputTypes go --parseInternal
