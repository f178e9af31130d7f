// Package mock provides an in-memory identity provider and protected-resource
// helpers for exercising the authenticated dispatcher in tests without real
// network dependencies.
package mock
