// Package cmd provides the command-line interface for cmakegen.
//
// Configuration System:
//
//	The CLI layers its settings from multiple sources with clear precedence:
//	1. Command-line flags (--output, --log-level, --debug) - highest priority
//	2. Environment variables with the CMAKEGEN_ prefix (CMAKEGEN_OUTPUT,
//	   CMAKEGEN_LOG_LEVEL, ...)
//	3. Built-in defaults - lowest priority
//
// The scan configuration itself (paths and macros) is not layered: it is
// a single YAML document passed as a positional argument to generate and
// watch, and its validation failures carry dedicated exit codes.
package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vova-ivanov/cmakegen/internal/logging"
)

var (
	logLevel  string
	debugLogs bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cmakegen",
	Short: "CMake file generator for C/C++ projects",
	Long: `cmakegen scans a set of directory trees, classifies files by extension
into include directories and compilable sources, and writes a CMake build
description wiring everything into a single target.

Key Features:
  • Recursive project scanning with exclude patterns
  • Plain, valued and function-like macro definitions
  • Deterministic, sorted output
  • Watch mode with full regeneration on change

Quick Start:
  cmakegen generate scan.yaml          Generate CMakeLists.txt once
  cmakegen watch scan.yaml             Regenerate on filesystem changes
  cmakegen version                     Show version information

Exit codes:
  0  success
  1  configuration file does not exist
  2  configuration file is not valid
  3  any other failure`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Fatal errors are logged once here; the exit code mapping
// happens in main.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		newLogger().Error(rootCmd.Context(), err, "fatal")
	}

	return err
}

func init() {
	cobra.OnInitialize(initEnv)

	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVarP(&debugLogs, "debug", "d", false, "enable debug logs")
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
}

// initEnv enables automatic environment variable binding with the
// CMAKEGEN_ prefix (e.g. CMAKEGEN_OUTPUT, CMAKEGEN_LOG_LEVEL).
func initEnv() {
	viper.SetEnvPrefix("CMAKEGEN")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
}

// newLogger builds a logger from the layered log settings.
func newLogger() logging.Logger {
	level := logging.ParseLevel(viper.GetString("log-level"))
	if viper.GetBool("debug") {
		level = logging.LevelDebug
	}

	return logging.NewLogger(&logging.LoggerConfig{
		Level:  level,
		Format: "text",
		Output: os.Stderr,
	})
}

// resolveOutput applies the output name precedence: explicit flag, then
// CMAKEGEN_OUTPUT, then the flag's default.
func resolveOutput(flagChanged bool, flagValue string) string {
	if flagChanged {
		return flagValue
	}
	if env := viper.GetString("output"); env != "" {
		return env
	}

	return flagValue
}
