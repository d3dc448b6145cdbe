package client

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/lss-foundry/internal/handlers/converter/v1alpha1"
	"github.com/KirkDiggler/lss-foundry/internal/pkg/artifact"
)

var (
	convertName          string
	convertRace          string
	convertDevilsSight   bool
	convertBlindFighting bool
	convertNightVision   bool
	convertVision        string
	convertVisionRange   int
	convertPortrait      string
	convertToken         string
	convertOutputDir     string
)

var convertCmd = &cobra.Command{
	Use:   "convert <input.json>",
	Short: "Convert an export with a single request",
	Args:  cobra.ExactArgs(1),
	RunE:  runConvert,
}

func init() {
	f := convertCmd.Flags()
	f.StringVar(&convertName, "name", "", "Character name override")
	f.StringVar(&convertRace, "race", "", "Race override")
	f.BoolVar(&convertDevilsSight, "devils-sight", false, "Character has Devil's Sight")
	f.BoolVar(&convertBlindFighting, "blind-fighting", false, "Character has the Blind Fighting style")
	f.BoolVar(&convertNightVision, "night-vision", false, "Character has Night Vision")
	f.StringVar(&convertVision, "vision", "", "Manual vision mode")
	f.IntVar(&convertVisionRange, "vision-range", 0, "Manual vision range in feet")
	f.StringVar(&convertPortrait, "portrait", "", "Portrait image file")
	f.StringVar(&convertToken, "token", "", "Token image file")
	f.StringVar(&convertOutputDir, "output-dir", ".", "Directory for the output file")
}

func runConvert(cmd *cobra.Command, args []string) error {
	source, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	portrait, err := readBase64(convertPortrait)
	if err != nil {
		return err
	}
	token, err := readBase64(convertToken)
	if err != nil {
		return err
	}

	fields := map[string]any{
		v1alpha1.FieldSource:        string(source),
		v1alpha1.FieldName:          convertName,
		v1alpha1.FieldRace:          convertRace,
		v1alpha1.FieldDevilsSight:   convertDevilsSight,
		v1alpha1.FieldBlindFighting: convertBlindFighting,
		v1alpha1.FieldNightVision:   convertNightVision,
		v1alpha1.FieldPortrait:      portrait,
		v1alpha1.FieldToken:         token,
	}
	if convertVision != "" {
		fields[v1alpha1.FieldManualMode] = convertVision
		if cmd.Flags().Changed("vision-range") {
			fields[v1alpha1.FieldManualRange] = convertVisionRange
		}
	}

	req, err := newRequest(fields)
	if err != nil {
		return err
	}

	client, cleanup, err := createConverterClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.Convert(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to convert: %w", err)
	}

	return saveResult(resp)
}

// saveResult writes the actor of a conversion response and prints its summary
func saveResult(resp *structpb.Struct) error {
	fields := resp.GetFields()

	path, err := artifact.Write(convertOutputDir,
		fields[v1alpha1.FieldFileName].GetStringValue(),
		[]byte(fields[v1alpha1.FieldActorJSON].GetStringValue()))
	if err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}

	for _, line := range fields[v1alpha1.FieldSummary].GetListValue().GetValues() {
		fmt.Println(line.GetStringValue())
	}
	if fields[v1alpha1.FieldDegraded].GetBoolValue() {
		fmt.Println("Warning: embedded character data was unreadable; defaults were used")
	}
	fmt.Printf("File: %s\n", path)
	return nil
}
