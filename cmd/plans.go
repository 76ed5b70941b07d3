package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// plansCmd represents the plans command
var plansCmd = &cobra.Command{
	Use:   "plans",
	Short: "List active cellular plans on the attached device",
	RunE: func(cmd *cobra.Command, args []string) error {
		bridge := newBridge(cmd.Context())
		plans := bridge.ActivePlans(cmd.Context())

		asJSON, _ := cmd.Flags().GetBool("json")
		if asJSON {
			out, err := json.MarshalIndent(plans, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		}

		if len(plans) == 0 {
			fmt.Println("No active plans.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "SLOT\tCARRIER\tMCC\tMNC\tCOUNTRY\tEMBEDDED")
		for _, p := range plans {
			embedded := "-"
			if p.Embedded != nil {
				embedded = fmt.Sprintf("%t", *p.Embedded)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				p.Slot, p.CarrierName, p.MCC, p.MNC, p.ISOCountryCode, embedded)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(plansCmd)
	plansCmd.Flags().Bool("json", false, "Output as JSON")
}
