//go:build tools

package tools

// Mocks under pkg/*/mocks are generated by mockery v3 from .mockery.yml.
// mockery is used as an installed binary, so no import is needed.
// Run: mockery (from the repository root).
