package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/nerrad567/gray-logic-props/internal/property"
)

func newSchemaCmd(opts *globalOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print every property with its type, default and bounds",
		Long: `Print the properties declared by the schema in index order.

--output yaml prints the effective schema with every bound filled in,
suitable as a schema file itself.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			reg, err := loadRegistry(cfg)
			if err != nil {
				return err
			}

			switch output {
			case "table":
				return writeSchemaTable(cmd.OutOrStdout(), reg)
			case "yaml":
				return writeSchemaYAML(cmd.OutOrStdout(), reg)
			default:
				return fmt.Errorf("unknown output format %q (want table or yaml)", output)
			}
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format: table or yaml")
	return cmd
}

func writeSchemaTable(w io.Writer, reg *property.Registry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "INDEX\tKEY\tTYPE\tDEFAULT\tMIN\tMAX\tVALUE")
	for _, p := range reg.Properties() {
		minV, maxV := "-", "-"
		if p.Type.IsNumeric() {
			minV, maxV = p.Min.String(), p.Max.String()
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			p.Index, p.Key, p.Type, p.Default, minV, maxV, p.Value)
	}
	return tw.Flush()
}

func writeSchemaYAML(w io.Writer, reg *property.Registry) error {
	schema := property.Schema{}
	for _, p := range reg.Properties() {
		def := property.Definition{
			Key:     p.Key,
			Type:    p.Type.String(),
			Default: nativeValue(p.Default),
		}
		if p.Type.IsNumeric() {
			def.Min = nativeValue(p.Min)
			def.Max = nativeValue(p.Max)
		}
		schema.Properties = append(schema.Properties, def)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(schema); err != nil {
		return fmt.Errorf("encoding schema: %w", err)
	}
	return enc.Close()
}

// nativeValue unwraps a Value into the Go scalar the schema loader accepts.
func nativeValue(v property.Value) any {
	switch v.Type() {
	case property.TypeInt:
		return int64(v.Int())
	case property.TypeLong:
		return v.Long()
	case property.TypeFloat:
		return float64(v.Float())
	case property.TypeDouble:
		return v.Double()
	case property.TypeBool:
		return v.Bool()
	default:
		return v.Str()
	}
}
