package catalog

import "errors"

// Every failed store or relationship operation surfaces exactly one of these
// kinds, wrapped with entity context via fmt.Errorf("%w: ...").
var (
	// ErrNotFound is returned when a lookup, update, patch or delete
	// addresses an external id that is not in the store.
	ErrNotFound = errors.New("catalog: not found")

	// ErrConflict is returned when a create would duplicate an external id.
	ErrConflict = errors.New("catalog: already exists")

	// ErrBadReference is returned when a declared parent id (department of
	// an aisle, aisle of a product, either end of a section edge) does not
	// resolve to an existing entity.
	ErrBadReference = errors.New("catalog: referenced entity not found")

	// ErrValidation is returned for value-level invariant violations, such
	// as a section edge with parent == child or an entity missing from its
	// order list.
	ErrValidation = errors.New("catalog: validation failed")
)

// StatusFor maps an error kind to the transport status code an API layer
// should report: 404, 409, 422, or 500 for anything outside the taxonomy.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return 200
	case errors.Is(err, ErrNotFound):
		return 404
	case errors.Is(err, ErrConflict):
		return 409
	case errors.Is(err, ErrBadReference), errors.Is(err, ErrValidation):
		return 422
	default:
		return 500
	}
}
