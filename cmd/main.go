package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/skycodec/skycodec/pkg/app"
	"github.com/skycodec/skycodec/pkg/config"
	"github.com/skycodec/skycodec/pkg/logger"
	"github.com/spf13/cobra"
)

const version = "0.0.1" //FIXME: automatize this

var configPath *string
var outputDir *string

func main() {
	rootCmd := &cobra.Command{
		Use:   "skycodec",
		Short: "SkyCodec compression demo",
	}

	serveCmd := &cobra.Command{
		Use:   "serve --config <FILE_PATH>",
		Short: "Starts the compression server",
		Run:   serve,
	}

	compressCmd := &cobra.Command{
		Use:   "compress <FILE_PATH> --config <FILE_PATH>",
		Short: "Compresses a file through the remote service and downloads the artifact",
		Args:  cobra.ExactArgs(1),
		Run:   compress,
	}
	outputDir = compressCmd.Flags().StringP("output", "o", "",
		"directory to save the compressed file into (overrides the config)")

	setupCommandFlags(rootCmd)
	rootCmd.AddCommand(serveCmd, compressCmd)

	err := rootCmd.Execute()
	if err != nil {
		panic(fmt.Sprintf("Error on startup: %v", err))
	}
}

func setupCommandFlags(rootCmd *cobra.Command) {
	configPath = rootCmd.PersistentFlags().StringP("config", "c", "", "[required]The path for the config file")
	err := rootCmd.MarkPersistentFlagRequired("config")
	if err != nil {
		panic(fmt.Sprintf("err on flags setup: %v", err))
	}
}

func serve(cmd *cobra.Command, args []string) {
	conf := initializeConfig()
	l := initializeLogger(conf)

	app.New(conf, l).Start()
}

func compress(cmd *cobra.Command, args []string) {
	conf := initializeConfig()
	l := initializeLogger(conf)

	if *outputDir != "" {
		conf.Workflow.DownloadDir = *outputDir
	}

	err := app.RunClient(conf, l, args[0])
	if err != nil {
		l.Error("compression workflow failed", "error", err)
		os.Exit(1)
	}
}

func initializeConfig() *config.Config {
	confData, err := os.ReadFile(*configPath)
	if err != nil {
		panic(fmt.Errorf("error reading config file: %w", err))
	}

	c, err := config.New(confData)
	if err != nil {
		panic(fmt.Errorf("error initializing/parsing config: %w", err))
	}

	c.Version = version

	return c
}

func initializeLogger(c *config.Config) *slog.Logger {
	return logger.New(c.Log)
}
