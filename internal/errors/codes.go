package errors

// Code represents an error code
type Code string

// Error codes
const (
	CodeOK                 Code = "OK"
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeNotFound           Code = "NOT_FOUND"
	CodeAlreadyExists      Code = "ALREADY_EXISTS"
	CodePermissionDenied   Code = "PERMISSION_DENIED"
	CodeFailedPrecondition Code = "FAILED_PRECONDITION"
	CodeInternal           Code = "INTERNAL"
	CodeUnavailable        Code = "UNAVAILABLE"
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

// Category groups codes into the three kinds of failure a game action can
// produce.
type Category int

// Categories
const (
	CategoryNone Category = iota
	// CategoryValidation covers rejected actions: bad input, acting out of
	// turn, wrong battle phase. Nothing was changed.
	CategoryValidation
	// CategoryNotFound covers references to games, players, characters,
	// hexes, cards or battles that do not exist.
	CategoryNotFound
	// CategoryInfrastructure covers storage and transport failures. These
	// are logged and surfaced without detail.
	CategoryInfrastructure
)

// Category returns the failure category for the code
func (c Code) Category() Category {
	switch c {
	case CodeOK:
		return CategoryNone
	case CodeInvalidArgument, CodeFailedPrecondition, CodePermissionDenied, CodeAlreadyExists:
		return CategoryValidation
	case CodeNotFound:
		return CategoryNotFound
	default:
		return CategoryInfrastructure
	}
}

func (c Category) String() string {
	switch c {
	case CategoryNone:
		return "none"
	case CategoryValidation:
		return "validation"
	case CategoryNotFound:
		return "not_found"
	case CategoryInfrastructure:
		return "infrastructure"
	default:
		return "unknown"
	}
}
