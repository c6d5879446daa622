package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/njchilds90/polygrade"
)

var parseCmd = &cobra.Command{
	Use:   "parse <polynomial>",
	Short: "Parse a polynomial and combine like terms",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		p := polygrade.ParsePolynomial(strings.Join(args, " "))
		if asJSON {
			return printJSON(cmd.OutOrStdout(), p)
		}
		printPolynomial(cmd.OutOrStdout(), p)
		return nil
	},
}

var factorCmd = &cobra.Command{
	Use:   "factor <product>",
	Short: "Split a factored expression into its factors",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		f, err := polygrade.ParseFactored(strings.Join(args, " "))
		if err != nil {
			return fmt.Errorf("could not parse answer: %w", err)
		}
		if asJSON {
			return printJSON(cmd.OutOrStdout(), struct {
				polygrade.Factored
				FactorMap map[string]int `json:"factor_map"`
			}{f, polygrade.FactorMap(f)})
		}
		printFactored(cmd.OutOrStdout(), f)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(factorCmd)
	parseCmd.Flags().Bool("json", false, "Print the parsed polynomial as JSON")
	factorCmd.Flags().Bool("json", false, "Print the factors as JSON")
}

func printJSON(w io.Writer, v interface{}) error {
	out, err := polygrade.ToJSON(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}

func printPolynomial(w io.Writer, p polygrade.Polynomial) {
	fmt.Fprintf(w, "latex:      %s\n", p.LaTeX())
	fmt.Fprintf(w, "canonical:  %s\n", p.String())
	fmt.Fprintf(w, "variable:   %s\n", p.Variable)
	fmt.Fprintf(w, "degree:     %d\n", p.Degree())
	fmt.Fprintf(w, "simplified: %t\n", p.IsSimplified)
	fmt.Fprintf(w, "signature:  %s\n", polygrade.Signature(p))
}

func printFactored(w io.Writer, f polygrade.Factored) {
	fmt.Fprintf(w, "latex: %s\n", f.LaTeX())
	for i, factor := range f.Factors {
		fmt.Fprintf(w, "  [%d] (%s)^%d\n", i, factor.Base.LaTeX(), factor.Power)
	}
	fmt.Fprintln(w, "factor map:")
	m := polygrade.FactorMap(f)
	for _, sig := range sortedKeys(m) {
		fmt.Fprintf(w, "  %s -> %d\n", sig, m[sig])
	}
}
