package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"agentview/config"
	"agentview/internal/cli"
	"agentview/version"
)

var (
	flagSourceURL    string
	flagRecord       string
	flagDebug        bool
	flagNoTranscript bool
)

var rootCmd = &cobra.Command{
	Use:   "agentview",
	Short: "Live terminal view of streaming agent events",
	Run: func(cmd *cobra.Command, args []string) {
		if err := config.EnsureConfigExists(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := cli.RunChat(chatOptions()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Full-screen chat interface",
	Run: func(cmd *cobra.Command, args []string) {
		if err := config.EnsureConfigExists(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := cli.RunTUI(chatOptions()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

var replayCmd = &cobra.Command{
	Use:   "replay [file]",
	Short: "Replay a recorded event log",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		follow, _ := cmd.Flags().GetBool("follow")
		if err := cli.RunReplay(args[0], follow); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the gateway token in the system keyring",
}

var authSetCmd = &cobra.Command{
	Use:   "set [token]",
	Short: "Store the gateway token (prompts when omitted)",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		value := ""
		if len(args) > 0 {
			value = args[0]
		}
		if err := cli.SetToken(value); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

var authClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored gateway token",
	Run: func(cmd *cobra.Command, args []string) {
		if err := cli.ClearToken(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check whether a gateway token is stored",
	Run: func(cmd *cobra.Command, args []string) {
		if err := cli.TokenStatus(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show current version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("agentview version %s\n", version.Get())
	},
}

func chatOptions() cli.ChatOptions {
	return cli.ChatOptions{
		SourceURL:    flagSourceURL,
		Record:       flagRecord,
		Debug:        flagDebug,
		NoTranscript: flagNoTranscript,
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&flagSourceURL, "source", "", "WebSocket URL of the agent gateway (empty runs the scripted demo)")
	rootCmd.PersistentFlags().StringVar(&flagRecord, "record", "", "Append raw events to a JSON-lines file for later replay")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log raw events and finalized panels to the event log")
	rootCmd.PersistentFlags().BoolVar(&flagNoTranscript, "no-transcript", false, "Skip transcript persistence for this run")

	replayCmd.Flags().BoolP("follow", "f", false, "Keep tailing the file for appended events")

	authCmd.AddCommand(authSetCmd)
	authCmd.AddCommand(authClearCmd)
	authCmd.AddCommand(authStatusCmd)

	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
