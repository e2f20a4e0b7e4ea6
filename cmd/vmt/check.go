package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/woozymasta/vmt"
)

var checkCmd = &cobra.Command{
	Use:   "check [files or globs...]",
	Short: "Check material documents for structural problems",
	Long: `Parse material documents and report structural issues: missing
shader names, patches without include paths, suspicious parameter keys,
and malformed vector values.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Bool("yaml", false, "Emit issues as YAML")
	checkCmd.Flags().Bool("no-warnings", false, "Report errors only")
}

type fileIssues struct {
	File   string      `yaml:"file"`
	Issues []vmt.Issue `yaml:"issues"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	asYAML, _ := cmd.Flags().GetBool("yaml")
	noWarn, _ := cmd.Flags().GetBool("no-warnings")

	paths, err := expandGlobs(args)
	if err != nil {
		return err
	}

	var report []fileIssues
	var errs int
	for _, path := range paths {
		doc, err := vmt.ReadDocument(path, nil)
		if err != nil {
			log.WithField("path", path).Errorf("parse failed: %v", err)
			errs++
			continue
		}

		issues := vmt.Validate(doc, nil)
		if noWarn {
			issues = errorsOnly(issues)
		}
		if len(issues) == 0 {
			continue
		}

		report = append(report, fileIssues{File: path, Issues: issues})
		for _, is := range issues {
			if is.Level == vmt.IssueError {
				errs++
			}
		}
	}

	if asYAML {
		if len(report) > 0 {
			out, err := yaml.Marshal(report)
			if err != nil {
				return err
			}
			fmt.Print(string(out))
		}
	} else {
		for _, fi := range report {
			for _, is := range fi.Issues {
				if is.Path != "" {
					fmt.Printf("%s: %s: %s (%s)\n", fi.File, is.Level, is.Message, is.Path)
				} else {
					fmt.Printf("%s: %s: %s\n", fi.File, is.Level, is.Message)
				}
			}
		}
	}

	if errs > 0 {
		return fmt.Errorf("%d errors in %d files", errs, len(paths))
	}

	return nil
}

func errorsOnly(issues []vmt.Issue) []vmt.Issue {
	var out []vmt.Issue
	for _, is := range issues {
		if is.Level == vmt.IssueError {
			out = append(out, is)
		}
	}

	return out
}
