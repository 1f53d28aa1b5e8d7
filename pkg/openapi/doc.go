// Package openapi exposes the loader and parser contracts used to turn OpenAPI
// documents into field descriptions. Implementations live under
// internal/openapi so kin-openapi types never leak to callers; constructors
// are exported from the module root.
package openapi
