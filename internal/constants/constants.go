package constants

// Context keys shared between middleware and handlers.
const (
	ContextKeyPersonID = "person_id"
	ContextKeyActor    = "actor"
)

const (
	MinPasswordLength = 8

	// PeopleSearchLimit caps directory search results.
	PeopleSearchLimit = 50

	// DefaultPageSize and MaxPageSize bound list pagination.
	DefaultPageSize = 20
	MaxPageSize     = 100
)
