package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/prasetyowira/qrgen/api"
	"github.com/prasetyowira/qrgen/config"
	"github.com/prasetyowira/qrgen/constant"
	"github.com/prasetyowira/qrgen/domain/generator"
	"github.com/prasetyowira/qrgen/infrastructure/clipboard"
	appLogger "github.com/prasetyowira/qrgen/infrastructure/logger"
	"github.com/prasetyowira/qrgen/infrastructure/qrcode"
)

var version = "v0.1.0"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		configPath string
		cfg        config.Config
	)

	root := &cobra.Command{
		Use:          "qrgen",
		Short:        "Turn links into QR codes",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(configPath)
			if err != nil {
				appLogger.Initialize("", false)
				appLogger.Error(constant.MsgFailedToLoadConfig, appLogger.LoggerInfo{
					ContextFunction: constant.CtxConfig,
					Error: &appLogger.CustomError{
						Code:    constant.ErrCodeAppConfig,
						Message: err.Error(),
						Type:    constant.ErrTypeConfig,
					},
					Data: map[string]interface{}{
						constant.DataConfigPath: configPath,
					},
				})
				return err
			}
			cfg = loaded
			appLogger.Initialize(cfg.LogLevel, cfg.IsProduction())
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			appLogger.Close()
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "qrgen.yaml", "Path to config file")

	// --- serve command -------------------------------------------------------
	var port int
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the generator UI on localhost",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			return runServe(cfg)
		},
	}
	serveCmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (overrides config)")
	root.AddCommand(serveCmd)

	// --- generate command ----------------------------------------------------
	var opts generateOptions
	generateCmd := &cobra.Command{
		Use:   "generate [text]",
		Short: "Generate qrcode.png for a link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.text = args[0]
			if !cmd.Flags().Changed("out") {
				opts.outDir = cfg.OutputDir
			}
			opts.clipboard = cfg.Clipboard
			return runGenerate(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}
	generateCmd.Flags().StringVar(&opts.color, "color", constant.DefaultForeground, "Foreground colour as #rrggbb")
	generateCmd.Flags().StringVarP(&opts.outDir, "out", "o", ".", "Directory to write qrcode.png into")
	generateCmd.Flags().BoolVar(&opts.preview, "preview", false, "Print the code to the terminal")
	generateCmd.Flags().BoolVar(&opts.copy, "copy", false, "Copy the link to the clipboard")
	root.AddCommand(generateCmd)

	// --- decode command ------------------------------------------------------
	decodeCmd := &cobra.Command{
		Use:   "decode [file.png]",
		Short: "Print the text stored in a QR code image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(cmd.OutOrStdout(), args[0])
		},
	}
	root.AddCommand(decodeCmd)

	// --- version command -----------------------------------------------------
	root.AddCommand(&cobra.Command{
		Use:               "version",
		Short:             "Print the version",
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "qrgen", version)
		},
	})

	return root
}

func runServe(cfg config.Config) error {
	appLogger.Info(constant.MsgApplicationStarting, appLogger.LoggerInfo{
		ContextFunction: constant.CtxMain,
		Data: map[string]interface{}{
			constant.DataPort:        cfg.Port,
			constant.DataEnvironment: cfg.Environment,
			constant.DataCapacity:    cfg.SessionCapacity,
		},
	})

	encoder := qrcode.NewGenerator()
	clip := clipboard.New(cfg.Clipboard)
	sessions := generator.NewSessions(cfg.SessionCapacity, func() *generator.Controller {
		return generator.NewController(encoder, clip)
	})
	defer sessions.Close()

	router := api.NewRouter(api.NewHandler(), sessions)
	router.SetupRoutes()

	server := &http.Server{
		Addr:         fmt.Sprintf("127.0.0.1:%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		appLogger.Info(constant.MsgServerStarting, appLogger.LoggerInfo{
			ContextFunction: constant.CtxMain,
			Data: map[string]interface{}{
				constant.DataPort: cfg.Port,
			},
		})

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error(constant.MsgServerFailedToStart, appLogger.LoggerInfo{
				ContextFunction: constant.CtxMain,
				Error: &appLogger.CustomError{
					Code:    constant.ErrCodeAppServerStart,
					Message: err.Error(),
					Type:    constant.ErrTypeApp,
				},
				Data: map[string]interface{}{
					constant.DataPort: cfg.Port,
				},
			})
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serverErr:
		return err
	}

	appLogger.Info(constant.MsgServerShuttingDown, appLogger.LoggerInfo{
		ContextFunction: constant.CtxMain,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error(constant.MsgServerShutdownError, appLogger.LoggerInfo{
			ContextFunction: constant.CtxMain,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAppServerShutdown,
				Message: err.Error(),
				Type:    constant.ErrTypeApp,
			},
		})
		return err
	}

	appLogger.Info(constant.MsgServerStopped, appLogger.LoggerInfo{
		ContextFunction: constant.CtxMain,
	})
	return nil
}
