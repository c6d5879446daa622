package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/njchilds90/polygrade/internal/grader"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Grade an answer against the expected one",
	Example: `  polygrade check --expected "(x+1)(x-1)" --answer "x^2-1" --mode factored
  polygrade check --expected "x^2-1" --answer "x^2 + x - x - 1"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		expected, _ := cmd.Flags().GetString("expected")
		answer, _ := cmd.Flags().GetString("answer")
		mode, _ := cmd.Flags().GetString("mode")
		asJSON, _ := cmd.Flags().GetBool("json")

		svc, _, closeCache := a.service()
		defer closeCache()

		res, err := svc.Grade(cmd.Context(), grader.Request{Expected: expected, Answer: answer, Mode: mode})
		if err != nil {
			return err
		}
		if asJSON {
			return printJSON(cmd.OutOrStdout(), res)
		}

		style := "notty"
		if f, ok := cmd.OutOrStdout().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			style = ""
		}
		return renderResult(cmd.OutOrStdout(), res, style)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().String("expected", "", "Expected answer")
	checkCmd.Flags().String("answer", "", "Student answer")
	checkCmd.Flags().String("mode", "simplified", "Grading mode: simplified or factored")
	checkCmd.Flags().Bool("json", false, "Print the result as JSON")
	_ = checkCmd.MarkFlagRequired("expected")
	_ = checkCmd.MarkFlagRequired("answer")
}
