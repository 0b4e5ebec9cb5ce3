package main

import (
	"errors"
	"net/http"

	"github.com/ederatone/drawide/painter"
	"github.com/ederatone/drawide/painter/lang"
	"github.com/ederatone/drawide/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var windowCmd = &cobra.Command{
	Use:   "window [file]",
	Short: "Open the editor window",
	Long:  "Open the canvas window. Type commands into it, or POST a buffer to the HTTP endpoint. An optional file preloads the buffer.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runWindow,
}

func init() {
	rootCmd.AddCommand(windowCmd)
}

func runWindow(cmd *cobra.Command, args []string) error {
	w, h, err := canvasSize()
	if err != nil {
		return err
	}
	log := painter.Logger()

	v := &ui.Visualizer{
		Title:   "DrawIDE",
		Width:   w,
		Height:  h,
		Builder: newBuilder(),
		Editor:  &ui.Editor{},
	}
	v.Loop = painter.NewLoop(v, w, h, style())

	if len(args) > 0 {
		text, err := readBuffer(cmd, args)
		if err != nil {
			return err
		}
		v.Editor.SetText(text)
	}

	addr := viper.GetString("addr")
	srv := &http.Server{Addr: addr, Handler: lang.HttpHandler(v.Loop, v.Builder, v.ReplaceText)}
	go func() {
		log.Info("http endpoint listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "err", err)
		}
	}()
	defer srv.Close()

	return v.Main()
}
