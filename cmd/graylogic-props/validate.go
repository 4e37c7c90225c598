package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/nerrad567/gray-logic-props/internal/property"
)

// errDocumentRejected marks a document that parsed but failed per-key checks.
var errDocumentRejected = errors.New("document rejected")

func newValidateCmd(opts *globalOptions) *cobra.Command {
	var patch bool

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a JSON property document against the schema",
		Long: `Check a JSON property document against the schema without touching
any stored state. Every failing property is reported with its reason.

By default the document must carry every property, as a snapshot does.
With --patch it is checked as a partial update: absent properties are
fine, unknown ones are not.

Examples:
  graylogic-props validate snapshot.json
  graylogic-props validate --patch - <<< '{"setpoint": 21.5}'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			reg, err := loadRegistry(cfg)
			if err != nil {
				return err
			}
			doc, err := readDocument(cmd, args[0])
			if err != nil {
				return err
			}
			return validateDocument(cmd.OutOrStdout(), reg, doc, patch)
		},
	}

	cmd.Flags().BoolVar(&patch, "patch", false, "validate as a partial update")
	return cmd
}

// readDocument reads path, or stdin when path is "-".
func readDocument(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path) //nolint:gosec // operator-supplied path
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	return data, nil
}

// validateDocument applies doc to reg and reports the outcome to w.
func validateDocument(w io.Writer, reg *property.Registry, doc []byte, patch bool) error {
	var err error
	if patch {
		err = reg.Patch(doc)
	} else {
		err = reg.Deserialize(doc)
	}
	if err == nil {
		fmt.Fprintf(w, "ok: document valid for %d properties\n", reg.Size())
		return nil
	}

	var applyErr *property.ApplyError
	if !errors.As(err, &applyErr) {
		return err
	}
	for _, f := range applyErr.Failures {
		fmt.Fprintf(w, "%s: %v\n", f.Key, f.Err)
	}
	return fmt.Errorf("%w: %d of %d properties failed", errDocumentRejected, len(applyErr.Failures), reg.Size())
}
