package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/KwaminaWhyte/esimbridge/internal/utils"
	"github.com/KwaminaWhyte/esimbridge/pkg/lpa"
)

// setupCmd represents the setup command
var setupCmd = &cobra.Command{
	Use:   "setup [activation-code]",
	Short: "Trigger the native eSIM install flow on the attached device",
	Long: `Triggers the OS-native eSIM installation flow for an activation code in
LPA format (LPA:1$<SMDP_ADDRESS>$<MATCHING_ID>) and prints the normalized
outcome: success, fail, settings_opened, unsupported or unknown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		code := ""
		if len(args) == 1 {
			code = args[0]
		}

		if code != "" {
			parsed, err := lpa.Parse(code)
			if err != nil {
				return err
			}
			if err := parsed.Validate(); err != nil {
				utils.Log.Warnf("activation code looks suspicious: %v", err)
			}
		}

		timeout, _ := cmd.Flags().GetDuration("timeout")
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		bridge := newBridge(ctx)
		fmt.Println(bridge.OpenSetup(ctx, code))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(setupCmd)
	setupCmd.Flags().Duration("timeout", 2*time.Minute, "Give up waiting for the OS after this long")
}
