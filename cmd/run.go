package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/guruai/internal/app"
	"github.com/abhisek/guruai/internal/camera"
	"github.com/abhisek/guruai/internal/profile"
)

// runApp builds the services and launches the TUI.
func runApp(cmd *cobra.Command) error {
	svc, err := buildServices(cmd, cfg.Log)
	if err != nil {
		return err
	}
	defer svc.Close()

	if svc.authErr != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", svc.authErr)
		fmt.Fprintln(os.Stderr, "AI features will answer with a fallback until a key is set.")
	}

	dev, err := camera.NewDevice(cfg.Camera)
	if err != nil {
		svc.logger.Warn("camera disabled", zap.Error(err))
		dev = camera.Disabled{}
	}

	preset, err := presetProfile(cmd)
	if err != nil {
		return err
	}
	noSplash, _ := cmd.Flags().GetBool("no-splash")

	return app.Run(cmd.Context(), app.Options{
		Tutor:      svc.tutor,
		Solver:     svc.solver,
		Quiz:       svc.quiz,
		Camera:     dev,
		Logger:     svc.logger,
		Profile:    preset,
		SkipSplash: noSplash,
	})
}

// presetProfile returns the profile given on the command line, or nil
// when --name is not set.
func presetProfile(cmd *cobra.Command) (*profile.Profile, error) {
	name, _ := cmd.Flags().GetString("name")
	if name == "" {
		return nil, nil
	}
	gradeFlag, _ := cmd.Flags().GetString("grade")
	boardFlag, _ := cmd.Flags().GetString("board")

	grade, err := profile.ParseGrade(gradeFlag)
	if err != nil {
		return nil, err
	}
	board, err := profile.ParseBoard(boardFlag)
	if err != nil {
		return nil, err
	}
	p, err := profile.New(name, grade, board)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
