package main

import (
	"fmt"
	"strings"

	"github.com/fadilmartias/pitch-evaluator/internal/model"
	"github.com/fadilmartias/pitch-evaluator/internal/scoring"
	"github.com/spf13/cobra"
)

func newRubricCommand() *cobra.Command {
	var format string
	var section string

	cmd := &cobra.Command{
		Use:   "rubric",
		Short: "Show the scoring rubric and weights",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := parseFormat(format)
			if err != nil {
				return err
			}
			if section == "" {
				return showRubric(cmd, f, scoring.FullRubric())
			}
			c, err := model.ParseCriterion(section)
			if err != nil {
				return err
			}
			return showCriterion(cmd, f, scoring.RubricFor(c))
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(formatTable), "Output format: table, json or yaml")
	cmd.Flags().StringVar(&section, "section", "", "Show the grading levels of one criterion")

	return cmd
}

func showRubric(cmd *cobra.Command, format outputFormat, r scoring.Rubric) error {
	if ok, err := writeStructured(cmd, format, r); ok {
		return err
	}

	rows := make([][]string, 0, len(r.Criteria))
	for _, c := range r.Criteria {
		rows = append(rows, []string{string(c.Criterion), c.Label, c.WeightLabel, c.KeyElements})
	}
	w := cmd.OutOrStdout()
	fmt.Fprintln(w, renderTable(
		[]string{"Key", "Section", "Weight", "Key Elements"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
	))

	fmt.Fprintln(w)
	fmt.Fprintln(w, r.Guidelines.Intro)
	for i, slide := range r.Guidelines.Slides {
		fmt.Fprintf(w, "%d. %s\n", i+1, slide)
	}
	fmt.Fprintln(w, r.Guidelines.Reminder)
	return nil
}

func showCriterion(cmd *cobra.Command, format outputFormat, c scoring.CriterionRubric) error {
	if ok, err := writeStructured(cmd, format, c); ok {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s (%s)\n", c.Label, c.WeightLabel)
	rows := make([][]string, 0, len(c.Levels))
	for _, l := range c.Levels {
		rows = append(rows, []string{l.Name, l.Range, l.Description})
	}
	fmt.Fprintln(w, renderTable([]string{"Level", "Range", "Description"}, rows, nil))

	checks := make([]string, 0, len(c.Checklist))
	for _, item := range c.Checklist {
		checks = append(checks, "  - "+item.Text)
	}
	fmt.Fprintf(w, "Key elements: %s\nChecklist:\n%s\n", c.KeyElements, strings.Join(checks, "\n"))
	return nil
}
