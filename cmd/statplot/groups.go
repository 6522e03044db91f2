package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ukaji3/statplot-go/pkg/statplot"
	"github.com/ukaji3/statplot-go/pkg/statplot/localize"
	"github.com/ukaji3/statplot-go/pkg/statplot/output"
)

var exclude string

func newGroupsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "groups",
		Short: "List the grouping options of a variable",
		Long: `groups prints the localized grouping options offered for a variable.
With --exclude the options for the second grouping are listed.`,
		Args: cobra.NoArgs,
		RunE: runGroups,
	}

	addSelectionFlags(cmd)
	cmd.Flags().StringVar(&exclude, "exclude", "", "Grouping already chosen first")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")

	return cmd
}

func runGroups(cmd *cobra.Command, args []string) error {
	sel, err := resolveSelection()
	if err != nil {
		return err
	}
	if sel.Variable == "" {
		return fmt.Errorf("no variable given")
	}
	s, err := openStore()
	if err != nil {
		return err
	}
	meta, err := s.GroupMetadataFor(sel.Type, sel.Variable)
	if err != nil {
		return fmt.Errorf("failed to load group metadata: %w", err)
	}
	translations, err := cfg.Translations()
	if err != nil {
		return fmt.Errorf("failed to load translations: %w", err)
	}

	options := localize.GroupingOptions(meta, translations, localize.ResolveLanguage(sel.Language), "")
	if exclude != "" {
		options = statplot.SecondGroupOptions(options, exclude)
	}

	data, err := output.OptionsToJSON(options, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
