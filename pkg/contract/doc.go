// Package contract exposes the public contracts for loading, parsing and
// validating the backend's OpenAPI description. The message client resolves
// its endpoints through these types and the fake backend used in tests
// enforces them. Implementations live under internal/contract so kin-openapi
// stays hidden from consumers.
package contract
