package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/lss-foundry/internal/entities/dnd5e"
	"github.com/KirkDiggler/lss-foundry/internal/errors"
	"github.com/KirkDiggler/lss-foundry/internal/orchestrators/conversion"
	"github.com/KirkDiggler/lss-foundry/internal/pkg/artifact"
	"github.com/KirkDiggler/lss-foundry/internal/prompts"
	"github.com/KirkDiggler/lss-foundry/internal/services/extraction"
	"github.com/KirkDiggler/lss-foundry/internal/services/vision"
)

const banner = "LSS -> Foundry VTT D&D 5e Character Converter"

// convertOptions carries the convert flags
type convertOptions struct {
	OutputDir      string
	Name           string
	Race           string
	DevilsSight    bool
	BlindFighting  bool
	NightVision    bool
	Vision         string
	VisionRange    int
	HasVisionRange bool
	Portrait       string
	Token          string
	NonInteractive bool
}

var convertOpts convertOptions

var convertCmd = &cobra.Command{
	Use:   "convert [input.json]",
	Short: "Convert a Long Story Short export to a Foundry actor file",
	Long: `Convert reads a Long Story Short character export and writes
<output-dir>/<name>_foundry.json. Questions not answered by flags are asked
interactively unless --non-interactive is set.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := convertOpts
		opts.HasVisionRange = cmd.Flags().Changed("vision-range")

		input := ""
		if len(args) > 0 {
			input = args[0]
		}

		var p *prompts.Prompter
		if !opts.NonInteractive {
			var err error
			if prompts.IsInteractiveTerminal() {
				p, err = prompts.NewTerminal()
				if err != nil {
					return err
				}
			} else {
				p = prompts.New(cmd.InOrStdin(), cmd.OutOrStdout())
			}
			defer func() {
				_ = p.Close()
			}()
		}

		return runConvert(cmd.Context(), input, opts, p, cmd.OutOrStdout())
	},
}

func init() {
	f := convertCmd.Flags()
	f.StringVar(&convertOpts.OutputDir, "output-dir", "", "Directory for the output file (default: the input file's directory)")
	f.StringVar(&convertOpts.Name, "name", "", "Character name (default: from the file)")
	f.StringVar(&convertOpts.Race, "race", "", "Race (default: from the file)")
	f.BoolVar(&convertOpts.DevilsSight, "devils-sight", false, "Character has Devil's Sight")
	f.BoolVar(&convertOpts.BlindFighting, "blind-fighting", false, "Character has the Blind Fighting style")
	f.BoolVar(&convertOpts.NightVision, "night-vision", false, "Character has Night Vision")
	f.StringVar(&convertOpts.Vision, "vision", "", "Manual vision mode: normal, darkvision, blindsight, truesight, tremorsense")
	f.IntVar(&convertOpts.VisionRange, "vision-range", 0, "Manual vision range in feet (default: per mode)")
	f.StringVar(&convertOpts.Portrait, "portrait", "", "Portrait image to embed")
	f.StringVar(&convertOpts.Token, "token", "", "Token image to embed (default: the portrait)")
	f.BoolVar(&convertOpts.NonInteractive, "non-interactive", false, "Never prompt; use flags and file values only")
}

// runConvert performs one conversion. p is nil when prompting is disabled.
func runConvert(ctx context.Context, inputPath string, opts convertOptions, p *prompts.Prompter, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	fmt.Fprintf(out, "%s\n%s\n", banner, strings.Repeat("=", len(banner)))

	if inputPath == "" && p != nil {
		answer, err := p.InputPath()
		if err != nil {
			return err
		}
		inputPath = answer
	}
	if inputPath == "" {
		return errors.InvalidArgument("an input file is required")
	}

	source, err := readInput(inputPath)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Loaded %s\n", filepath.Base(inputPath))

	resolver := vision.NewResolver()
	converter, err := conversion.NewOrchestrator(&conversion.Config{
		Extractor: extraction.New(),
		Resolver:  resolver,
	})
	if err != nil {
		return err
	}

	inspected, err := converter.Inspect(ctx, &conversion.InspectInput{Source: source})
	if err != nil {
		return err
	}
	printPreview(out, inspected)

	manual, err := manualOverride(opts)
	if err != nil {
		return err
	}

	name := strings.TrimSpace(opts.Name)
	race := strings.TrimSpace(opts.Race)
	features := vision.Features{
		BlindFighting: opts.BlindFighting,
		DevilsSight:   opts.DevilsSight,
		NightVision:   opts.NightVision,
	}

	if p != nil {
		if name == "" {
			if name, err = p.Name(inspected.Preview.Name); err != nil {
				return err
			}
		}
		if race == "" {
			if race, err = p.Race(inspected.DefaultRace); err != nil {
				return err
			}
		}
		if manual == nil {
			effective := race
			if effective == "" {
				effective = inspected.DefaultRace
			}
			auto, err := resolver.Resolve(&vision.ResolveInput{Race: effective, Features: features})
			if err != nil {
				return err
			}
			if manual, err = p.Vision(auto.Profile); err != nil {
				return err
			}
		}
	}

	portrait, err := readImage(opts.Portrait)
	if err != nil {
		return err
	}
	token, err := readImage(opts.Token)
	if err != nil {
		return err
	}

	result, err := converter.Convert(ctx, &conversion.ConvertInput{
		Source:   source,
		Name:     name,
		Race:     race,
		Features: features,
		Manual:   manual,
		Portrait: portrait,
		Token:    token,
	})
	if err != nil {
		return err
	}
	if result.Degraded {
		log.Printf("Warning: the embedded character data could not be read; defaults were used")
	}

	dir := opts.OutputDir
	if dir == "" {
		dir = filepath.Dir(inputPath)
	}
	path, err := artifact.Write(dir, result.FileName, result.JSON)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\n%s\nCONVERSION SUMMARY\n%s\n", strings.Repeat("=", 60), strings.Repeat("=", 60))
	fmt.Fprintln(out, result.Summary.String())
	fmt.Fprintf(out, "File: %s\n", path)
	return nil
}

func readInput(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundf("input file %s not found", path).WithMeta("path", path)
		}
		return nil, errors.Wrap(err, "failed to read input file")
	}
	return data, nil
}

func readImage(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundf("image %s not found", path)
		}
		return nil, errors.Wrap(err, "failed to read image")
	}
	return data, nil
}

func manualOverride(opts convertOptions) (*vision.ManualOverride, error) {
	if opts.Vision == "" {
		if opts.HasVisionRange {
			return nil, errors.InvalidArgument("--vision-range requires --vision")
		}
		return nil, nil
	}

	mode, ok := dnd5e.ParseVisionMode(opts.Vision)
	if !ok {
		return nil, errors.InvalidArgumentf("unknown vision mode %q", opts.Vision)
	}

	override := &vision.ManualOverride{Mode: mode}
	if opts.HasVisionRange {
		r := opts.VisionRange
		override.Range = &r
	}
	return override, nil
}

func printPreview(out io.Writer, inspected *conversion.InspectOutput) {
	preview := inspected.Preview
	fmt.Fprintf(out, "\nName:      %s\n", preview.Name)
	fmt.Fprintf(out, "Class:     %s\n", orDash(preview.Class))
	fmt.Fprintf(out, "Race:      %s\n", orDash(preview.Race))
	fmt.Fprintf(out, "Level:     %d\n", preview.Level)
	fmt.Fprintf(out, "Alignment: %s\n", preview.Alignment)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
