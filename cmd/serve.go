package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"

	"github.com/abhisek/guruai/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the tutor, quiz and solver as a JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}

		logCfg := cfg.Log
		logCfg.Console = true
		svc, err := buildServices(cmd, logCfg)
		if err != nil {
			return err
		}
		defer svc.Close()

		printStartupBanner()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := server.New(cfg.Server, server.Deps{
			Tutor:  svc.tutor,
			Solver: svc.solver,
			Quiz:   svc.quiz,
			Logger: svc.logger,
		})
		return srv.Run(ctx)
	},
}

func printStartupBanner() {
	figure.NewFigure("GuruAI", "", true).Print()
	fmt.Println("======================================================")
	fmt.Printf("GuruAI API (%s) on %s\n\n", buildVersion(), cfg.Server.Addr)
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
}
