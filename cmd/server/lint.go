package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/build-api/internal/document"
	"github.com/KirkDiggler/build-api/internal/errors"
)

var lintCmd = &cobra.Command{
	Use:   "lint <file>...",
	Short: "Check documents for authoring problems",
	Long: `Decode each document and report duplicate IDs, unresolved references,
malformed prerequisite expressions and invalid repeat caps.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		failed := 0
		for _, path := range args {
			problems, err := lintFile(path)
			if err != nil {
				return err
			}
			if len(problems) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
				continue
			}
			failed++
			for _, problem := range problems {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", path, problem)
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d documents have problems", failed, len(args))
		}
		return nil
	},
}

// lintFile returns one line per problem found in a document
func lintFile(path string) ([]string, error) {
	data, err := os.ReadFile(path) // nolint:gosec // path is a command argument
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	doc, err := document.Decode(data, document.FormatFromPath(path))
	if err != nil {
		return []string{err.Error()}, nil
	}

	// Lint also reports the ID problems NewCatalog rejects
	lintErr := document.Lint(doc)
	if lintErr == nil {
		return nil, nil
	}

	fields, ok := errors.GetMeta(lintErr)["validation_errors"].(map[string][]string)
	if !ok {
		return []string{lintErr.Error()}, nil
	}

	verr := &errors.ValidationError{Fields: fields}
	problems := make([]string, 0, len(fields))
	for _, field := range verr.FieldNames() {
		problems = append(problems, fmt.Sprintf("%s: %s", field, strings.Join(fields[field], ", ")))
	}
	return problems, nil
}
