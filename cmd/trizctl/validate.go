package main

import (
	"fmt"
	"triz_edu_backend/internal/repository"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [catalog.yaml]",
	Short: "Check a module catalog against the schema and its invariants",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := catalogPath(cmd, args)
		if err != nil {
			return err
		}
		catalog, err := repository.LoadCatalog(path)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok, %d modules\n", path, len(catalog.Modules()))
		return nil
	},
}

var modulesCmd = &cobra.Command{
	Use:   "modules [catalog.yaml]",
	Short: "List catalog modules",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := catalogPath(cmd, args)
		if err != nil {
			return err
		}
		catalog, err := repository.LoadCatalog(path)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for i, m := range catalog.Modules() {
			if m.ComingSoon {
				fmt.Fprintf(out, "%d. %-12s %s (coming soon)\n", i+1, m.ID, m.Title)
				continue
			}
			fmt.Fprintf(out, "%d. %-12s %s: %d practice, %d test, pass %d/%d\n",
				i+1, m.ID, m.Title,
				len(m.PracticeQuestions()), len(m.TestQuestions()),
				m.PassCriteria.Threshold, m.PassCriteria.TotalQuestions)
		}
		return nil
	},
}
