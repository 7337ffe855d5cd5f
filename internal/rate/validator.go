package rate

import (
	"errors"
	"slices"

	"github.com/go-playground/validator/v10"
)

const (
	SortAsc  = "asc"
	SortDesc = "desc"

	DefaultSortField = "name"
	MaxFilterLength  = 128
)

var (
	ErrInvalidPage      = errors.New("page must be a positive number")
	ErrInvalidPerPage   = errors.New("per_page is not one of the allowed page sizes")
	ErrInvalidSortField = errors.New("sort must be one of: name, type, unit, value")
	ErrInvalidSortOrder = errors.New("order must be asc or desc")
	ErrFilterTooLong    = errors.New("filter is too long")
	ErrInvalidFrom      = errors.New("from must not be negative")
)

// Query describes one table view request.
type Query struct {
	Filter    string `validate:"max=128"`
	Page      int    `validate:"gte=1"`
	PerPage   int    `validate:"per_page"`
	SortField string `validate:"sort_field"`
	SortOrder string `validate:"oneof=asc desc"`
	// From is the 0-based index of a row that must stay on screen.
	// When set it replaces Page, so a page-size change keeps the first visible row.
	From int `validate:"gte=0"`
}

func (q Query) Descending() bool { return q.SortOrder == SortDesc }

// ResolvePage returns the page to show, honoring From.
func (q Query) ResolvePage() int {
	if q.From > 0 {
		return PageForRow(q.From, q.PerPage)
	}
	return q.Page
}

type QueryValidator struct {
	validate       *validator.Validate
	perPageOptions []int // read only copy, sorted
	defaultPerPage int
}

func (v *QueryValidator) Validate(q Query) error {
	err := v.validate.Struct(q)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	switch fieldErrs[0].Field() {
	case "Filter":
		return ErrFilterTooLong
	case "Page":
		return ErrInvalidPage
	case "PerPage":
		return ErrInvalidPerPage
	case "SortField":
		return ErrInvalidSortField
	case "SortOrder":
		return ErrInvalidSortOrder
	case "From":
		return ErrInvalidFrom
	}
	return err
}

// PerPageOptions lists the selectable page sizes, without the "all" option.
func (v *QueryValidator) PerPageOptions() []int {
	return slices.Clone(v.perPageOptions)
}

// Defaults is the query for a first visit: page 1, default size, sorted by name.
func (v *QueryValidator) Defaults() Query {
	return Query{
		Page:      1,
		PerPage:   v.defaultPerPage,
		SortField: DefaultSortField,
		SortOrder: SortAsc,
	}
}

func NewQueryValidator(perPageOptions []int, defaultPerPage int) *QueryValidator {
	opts := slices.Clone(perPageOptions)
	slices.Sort(opts)
	opts = slices.Compact(opts)

	if defaultPerPage != PerPageAll && !slices.Contains(opts, defaultPerPage) && len(opts) > 0 {
		defaultPerPage = opts[0]
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	_ = validate.RegisterValidation("per_page", func(fl validator.FieldLevel) bool {
		n := int(fl.Field().Int())
		return n == PerPageAll || slices.Contains(opts, n)
	})
	_ = validate.RegisterValidation("sort_field", func(fl validator.FieldLevel) bool {
		_, ok := comparators[fl.Field().String()]
		return ok
	})

	return &QueryValidator{
		validate:       validate,
		perPageOptions: opts,
		defaultPerPage: defaultPerPage,
	}
}
