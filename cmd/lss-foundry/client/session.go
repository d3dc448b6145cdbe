package client

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/lss-foundry/internal/handlers/converter/v1alpha1"
)

var (
	sessionID string

	updateName          string
	updateRace          string
	updateDevilsSight   bool
	updateBlindFighting bool
	updateNightVision   bool
	updateVision        string
	updateVisionRange   int
	updateClearManual   bool
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Session commands",
}

var sessionCreateCmd = &cobra.Command{
	Use:   "create <input.json>",
	Short: "Upload an export and start a session",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionCreate,
}

var sessionUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Change session settings",
	Long:  `Only flags that are given are sent; other settings keep their values.`,
	RunE:  runSessionUpdate,
}

var sessionConvertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a session and save the actor file",
	RunE:  runSessionConvert,
}

var sessionDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a session",
	RunE:  runSessionDelete,
}

func init() {
	for _, c := range []*cobra.Command{sessionUpdateCmd, sessionConvertCmd, sessionDeleteCmd} {
		c.Flags().StringVar(&sessionID, "session-id", "", "Session ID (required)")
		_ = c.MarkFlagRequired("session-id") // nolint:errcheck // safe to ignore in init
	}

	sessionCreateCmd.Flags().StringVar(&convertPortrait, "portrait", "", "Portrait image file")
	sessionCreateCmd.Flags().StringVar(&convertToken, "token", "", "Token image file")

	f := sessionUpdateCmd.Flags()
	f.StringVar(&updateName, "name", "", "Character name")
	f.StringVar(&updateRace, "race", "", "Race")
	f.BoolVar(&updateDevilsSight, "devils-sight", false, "Devil's Sight")
	f.BoolVar(&updateBlindFighting, "blind-fighting", false, "Blind Fighting")
	f.BoolVar(&updateNightVision, "night-vision", false, "Night Vision")
	f.StringVar(&updateVision, "vision", "", "Manual vision mode")
	f.IntVar(&updateVisionRange, "vision-range", 0, "Manual vision range in feet")
	f.BoolVar(&updateClearManual, "clear-manual", false, "Drop the manual vision override")

	sessionConvertCmd.Flags().StringVar(&convertOutputDir, "output-dir", ".", "Directory for the output file")

	sessionCmd.AddCommand(sessionCreateCmd)
	sessionCmd.AddCommand(sessionUpdateCmd)
	sessionCmd.AddCommand(sessionConvertCmd)
	sessionCmd.AddCommand(sessionDeleteCmd)
}

func runSessionCreate(_ *cobra.Command, args []string) error {
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

	req, err := newRequest(map[string]any{
		v1alpha1.FieldSource:   string(source),
		v1alpha1.FieldPortrait: portrait,
		v1alpha1.FieldToken:    token,
	})
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

	resp, err := client.CreateSession(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	printStruct(resp)
	return nil
}

func runSessionUpdate(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	fields := map[string]any{v1alpha1.FieldSessionID: sessionID}

	if flags.Changed("name") {
		fields[v1alpha1.FieldName] = updateName
	}
	if flags.Changed("race") {
		fields[v1alpha1.FieldRace] = updateRace
	}
	if flags.Changed("devils-sight") {
		fields[v1alpha1.FieldDevilsSight] = updateDevilsSight
	}
	if flags.Changed("blind-fighting") {
		fields[v1alpha1.FieldBlindFighting] = updateBlindFighting
	}
	if flags.Changed("night-vision") {
		fields[v1alpha1.FieldNightVision] = updateNightVision
	}
	if flags.Changed("vision") {
		fields[v1alpha1.FieldManualMode] = updateVision
	}
	if flags.Changed("vision-range") {
		fields[v1alpha1.FieldManualRange] = updateVisionRange
	}
	if updateClearManual {
		fields[v1alpha1.FieldClearManual] = true
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

	resp, err := client.UpdateSession(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	printStruct(resp)
	return nil
}

func runSessionConvert(_ *cobra.Command, _ []string) error {
	req, err := newRequest(map[string]any{v1alpha1.FieldSessionID: sessionID})
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

	resp, err := client.ConvertSession(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to convert session: %w", err)
	}

	return saveResult(resp)
}

func runSessionDelete(_ *cobra.Command, _ []string) error {
	req, err := newRequest(map[string]any{v1alpha1.FieldSessionID: sessionID})
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

	if _, err := client.DeleteSession(ctx, req); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	fmt.Printf("Session %s deleted\n", sessionID)
	return nil
}
