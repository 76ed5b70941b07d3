package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// capabilityCmd represents the capability command
var capabilityCmd = &cobra.Command{
	Use:   "capability",
	Short: "Probe the attached device's eSIM capability",
	RunE: func(cmd *cobra.Command, args []string) error {
		bridge := newBridge(cmd.Context())
		report := bridge.Capability(cmd.Context())

		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

// supportedCmd prints just the boolean projection, handy for scripting.
var supportedCmd = &cobra.Command{
	Use:   "supported",
	Short: "Print whether the attached device supports eSIM",
	RunE: func(cmd *cobra.Command, args []string) error {
		bridge := newBridge(cmd.Context())
		fmt.Println(bridge.Supported(cmd.Context()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(capabilityCmd)
	rootCmd.AddCommand(supportedCmd)
}
