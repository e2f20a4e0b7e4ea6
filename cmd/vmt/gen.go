package main

import (
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/woozymasta/vmt"
)

var genCmd = &cobra.Command{
	Use:   "gen [textures...]",
	Short: "Generate material documents for textures",
	Long: `Generate a shared base document plus one patch document per texture.

Existing documents at the destination are merged, not overwritten:
generated parameters are refreshed while hand-edited parameters and
their order are preserved. A texture named "eye" produces the eye
material family (eye_base.vmt with eye_r.vmt and eye_l.vmt patches)
instead of a regular patch.

Examples:
  # Generate materials for two textures
  vmt gen --out ./materials/models/crate body lid

  # Gradient alpha and emissive companion textures
  vmt gen --out ./materials/models/ghost --alpha gradient --emissive body

  # Extra derived keys from a YAML list
  vmt gen --out ./materials/models/crate --keys derived.yaml body`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGen,
}

func init() {
	genCmd.Flags().StringP("out", "o", ".", "Output material directory")
	genCmd.Flags().StringP("materials-path", "p", "", "Material path relative to materials/ (default: derived from --out)")
	genCmd.Flags().String("alpha", "none", "Alpha handling: none, binary, gradient")
	genCmd.Flags().Bool("emissive", false, "Add emissive blend parameters")
	genCmd.Flags().String("lightwarp", "", "Lightwarp texture path override")
	genCmd.Flags().IntP("workers", "w", 0, "Concurrent documents (default 4)")
	genCmd.Flags().String("indent", "", "Indent string for output (default tab)")
	genCmd.Flags().StringSlice("blocklist", nil, "Skip textures whose name contains one of these words")
	genCmd.Flags().StringSlice("exclude", nil, "Skip destination paths matching these glob patterns")
	genCmd.Flags().String("keys", "", "YAML file with additional derived parameter keys")

	for _, name := range []string{"workers", "indent", "blocklist", "exclude", "alpha", "emissive", "lightwarp"} {
		_ = viper.BindPFlag(name, genCmd.Flags().Lookup(name))
	}
}

func runGen(cmd *cobra.Command, args []string) error {
	out, _ := cmd.Flags().GetString("out")
	materialsPath, _ := cmd.Flags().GetString("materials-path")
	keysFile, _ := cmd.Flags().GetString("keys")

	if materialsPath == "" {
		abs, err := filepath.Abs(out)
		if err != nil {
			return err
		}
		mp, ok := vmt.MaterialsPath(abs)
		if !ok {
			return fmt.Errorf("cannot derive material path from %q, pass --materials-path", out)
		}
		materialsPath = mp
	}
	materialsPath = vmt.TrimMaterialsPrefix(materialsPath)

	alpha := vmt.AlphaType(viper.GetString("alpha"))
	switch alpha {
	case vmt.NoAlpha, vmt.BinaryAlpha, vmt.GradientAlpha:
	default:
		return fmt.Errorf("unknown alpha type %q", alpha)
	}

	topt := vmt.TemplateOptions{
		MaterialsPath: materialsPath,
		LightwarpPath: viper.GetString("lightwarp"),
		Alpha:         alpha,
		Emissive:      viper.GetBool("emissive"),
	}

	keys, err := derivedKeys(keysFile)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Join(out, "shader"), 0o750); err != nil {
		return err
	}

	jobs := buildJobs(out, args, topt, keys)

	var format *vmt.FormatOptions
	if indent := viper.GetString("indent"); indent != "" {
		format = &vmt.FormatOptions{Indent: indent}
	}

	results := vmt.RunBatch(jobs, &vmt.BatchOptions{
		Workers:   viper.GetInt("workers"),
		Blocklist: viper.GetStringSlice("blocklist"),
		Exclude:   viper.GetStringSlice("exclude"),
		Format:    format,
	})

	var failed int
	for _, res := range results {
		switch {
		case res.Err != nil:
			failed++
		case res.Skipped:
			log.WithField("path", res.Path).Debug("skipped")
		case res.Fresh:
			log.WithField("path", res.Path).Info("generated")
		default:
			log.WithField("path", res.Path).Info("merged")
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(results))
	}

	return nil
}

// buildJobs assembles the batch: shared base documents under shader/ and
// one patch document per texture.
func buildJobs(out string, names []string, topt vmt.TemplateOptions, keys vmt.KeySet) []vmt.Job {
	var jobs []vmt.Job
	ctx := func(base string) vmt.ClassificationContext {
		return vmt.ClassificationContext{BaseName: base, DerivedKeys: keys}
	}

	jobs = append(jobs, vmt.Job{
		OutputPath: filepath.Join(out, "shader", "vmt-base.vmt"),
		Generated:  vmt.NewBaseDocument(topt),
		Context:    ctx("vmt-base"),
	})

	var eyes bool
	for _, name := range names {
		if vmt.IsEyeMaterial(name) {
			eyes = true
			continue
		}
		jobs = append(jobs, vmt.Job{
			OutputPath: filepath.Join(out, name+".vmt"),
			Generated:  vmt.NewPatchDocument(name, topt),
			Context:    ctx(name),
		})
	}

	if eyes {
		jobs = append(jobs, vmt.Job{
			OutputPath: filepath.Join(out, "shader", "eye_base.vmt"),
			Generated:  vmt.NewEyeBaseDocument(topt),
			Context:    ctx("eye"),
		})
		for _, side := range []string{"eye_r", "eye_l"} {
			jobs = append(jobs, vmt.Job{
				OutputPath: filepath.Join(out, side+".vmt"),
				Generated:  vmt.NewEyePatchDocument(side, topt),
				Context:    ctx(side),
			})
		}
	}

	return jobs
}

// derivedKeys combines the default derived key set with extra keys from
// the config file and an optional YAML list file.
func derivedKeys(keysFile string) (vmt.KeySet, error) {
	keys := vmt.DefaultDerivedKeys()
	for _, k := range viper.GetStringSlice("derived_keys") {
		keys.Add(k)
	}

	if keysFile == "" {
		return keys, nil
	}

	data, err := os.ReadFile(keysFile)
	if err != nil {
		return nil, fmt.Errorf("read keys file: %w", err)
	}
	var extra []string
	if err := yaml.Unmarshal(data, &extra); err != nil {
		return nil, fmt.Errorf("parse keys file %s: %w", keysFile, err)
	}
	for _, k := range extra {
		keys.Add(k)
	}

	return keys, nil
}
