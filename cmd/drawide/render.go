package main

import (
	"fmt"
	"os"

	"github.com/ederatone/drawide/painter"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Render a command buffer to PNG",
	Long:  "Evaluate a command buffer (file or stdin) and write the resulting scene as a PNG image. Malformed lines are reported on stderr.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().StringP("out", "o", "scene.png", "Output PNG path")
	renderCmd.Flags().Bool("strict", false, "Fail if any line is malformed")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	out, _ := cmd.Flags().GetString("out")
	strict, _ := cmd.Flags().GetBool("strict")
	w, h, err := canvasSize()
	if err != nil {
		return err
	}

	text, err := readBuffer(cmd, args)
	if err != nil {
		return err
	}
	scene, errs := newBuilder().Rebuild(text)
	printDiagnostics(cmd.ErrOrStderr(), errs)
	if strict && len(errs) > 0 {
		return fmt.Errorf("%d malformed line(s)", len(errs))
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	if err := painter.EncodePNG(f, scene, style(), w, h); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", out, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%d shape(s) written to %s\n", len(scene), out)
	return nil
}
