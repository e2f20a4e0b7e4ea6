package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/woozymasta/vmt"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [files or globs...]",
	Short: "Reformat material documents",
	Long: `Parse material documents and rewrite them in canonical form.
Parameter order, key spelling, and comments-free content survive
unchanged; only whitespace and quoting are normalized.

Glob patterns are expanded, '**' matches across directories:

  vmt fmt 'materials/**/*.vmt'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFmt,
}

func init() {
	fmtCmd.Flags().String("indent", "", "Indent string for output (default tab)")
	fmtCmd.Flags().Bool("diff", false, "Report files that would change without rewriting them")
}

func runFmt(cmd *cobra.Command, args []string) error {
	indent, _ := cmd.Flags().GetString("indent")
	diff, _ := cmd.Flags().GetBool("diff")

	var format *vmt.FormatOptions
	if indent != "" {
		format = &vmt.FormatOptions{Indent: indent}
	}

	paths, err := expandGlobs(args)
	if err != nil {
		return err
	}

	var failed, changed int
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			log.WithField("path", path).Errorf("read failed: %v", err)
			failed++
			continue
		}

		doc, err := vmt.Parse(data, nil)
		if err != nil {
			log.WithField("path", path).Errorf("parse failed: %v", err)
			failed++
			continue
		}

		out, err := vmt.Format(doc, format)
		if err != nil {
			log.WithField("path", path).Errorf("format failed: %v", err)
			failed++
			continue
		}
		if string(out) == string(data) {
			continue
		}
		changed++

		if diff {
			fmt.Println(path)
			continue
		}
		if err := vmt.WriteDocument(path, doc, format); err != nil {
			log.WithField("path", path).Errorf("write failed: %v", err)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(paths))
	}
	if diff && changed > 0 {
		return fmt.Errorf("%d files need formatting", changed)
	}

	return nil
}

// expandGlobs resolves arguments to file paths. Plain paths pass through,
// glob patterns expand against the working directory.
func expandGlobs(args []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		if !strings.ContainsAny(arg, "*?[{") {
			out = append(out, arg)
			continue
		}
		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", arg, err)
		}
		out = append(out, matches...)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no files matched")
	}

	return out, nil
}
