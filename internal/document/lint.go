package document

import (
	"fmt"

	"github.com/KirkDiggler/build-api/internal/engine/expr"
	"github.com/KirkDiggler/build-api/internal/entities/build"
	"github.com/KirkDiggler/build-api/internal/errors"
)

// Lint reports authoring problems the engine would otherwise absorb silently:
// unresolved references, malformed prerequisites, duplicate or missing IDs and
// invalid repeat caps. A nil result means the document is clean.
func Lint(doc *build.Document) error {
	if doc == nil {
		return errors.InvalidArgument("document is required")
	}

	vb := errors.NewValidationBuilder()

	known := make(map[string]bool)
	for ci, category := range doc.Categories {
		if category == nil {
			continue
		}
		for oi, option := range category.Options {
			if option == nil || option.ID == "" {
				continue
			}
			if known[option.ID] {
				vb.Fieldf(optionField(ci, oi, "id"), "duplicates option id %q", option.ID)
			}
			known[option.ID] = true
		}
	}

	for ci, category := range doc.Categories {
		if category == nil {
			vb.Field(fmt.Sprintf("categories[%d]", ci), "is null")
			continue
		}
		errors.ValidateRequired(fmt.Sprintf("categories[%d].name", ci), category.Name, vb)

		for ri, id := range category.RequiresOption {
			if !known[id] {
				vb.Fieldf(fmt.Sprintf("categories[%d].requiresOption[%d]", ci, ri), "references unknown option %q", id)
			}
		}

		for oi, option := range category.Options {
			if option == nil {
				vb.Field(fmt.Sprintf("categories[%d].options[%d]", ci, oi), "is null")
				continue
			}
			lintOption(vb, ci, oi, option, known)
		}
	}

	return vb.Build()
}

func lintOption(vb *errors.ValidationBuilder, ci, oi int, option *build.Option, known map[string]bool) {
	errors.ValidateRequired(optionField(ci, oi, "id"), option.ID, vb)

	if option.MaxSelections != nil && *option.MaxSelections < 1 {
		vb.Fieldf(optionField(ci, oi, "maxSelections"), "must be positive, got %d", *option.MaxSelections)
	}

	for pi, prerequisite := range option.Prerequisites {
		field := optionField(ci, oi, fmt.Sprintf("prerequisites[%d]", pi))
		if known[prerequisite] {
			continue
		}
		parsed, err := expr.Parse(prerequisite)
		if err != nil {
			vb.Fieldf(field, "is not an option id or valid expression: %s", errors.GetMessage(err))
			continue
		}
		for _, id := range parsed.Identifiers() {
			if !known[id] {
				vb.Fieldf(field, "references unknown option %q", id)
			}
		}
	}

	for ki, id := range option.ConflictsWith {
		if !known[id] {
			vb.Fieldf(optionField(ci, oi, fmt.Sprintf("conflictsWith[%d]", ki)), "references unknown option %q", id)
		}
		if id == option.ID {
			vb.Field(optionField(ci, oi, fmt.Sprintf("conflictsWith[%d]", ki)), "conflicts with itself")
		}
	}
}

func optionField(ci, oi int, name string) string {
	return fmt.Sprintf("categories[%d].options[%d].%s", ci, oi, name)
}
