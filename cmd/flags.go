package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/vova-ivanov/cmakegen/internal/generator"
)

// addOutputFlag registers the shared --output flag with validation.
func addOutputFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, "output", "o", generator.DefaultOutputName, "output file name")
	addFlagValidation(cmd, "output", func(v string) error {
		if v == "" {
			return fmt.Errorf("output name cannot be empty")
		}
		return nil
	})
}

// addFlagValidation wraps a flag's value so assignments are validated.
func addFlagValidation(cmd *cobra.Command, flagName string, validator func(string) error) {
	flag := cmd.Flags().Lookup(flagName)
	if flag == nil {
		return
	}

	flag.Value = &validatingValue{
		Value:     flag.Value,
		validator: validator,
	}
}

type validatingValue struct {
	pflag.Value
	validator func(string) error
}

func (v *validatingValue) Set(val string) error {
	if v.validator != nil {
		if err := v.validator(val); err != nil {
			return err
		}
	}
	return v.Value.Set(val)
}
