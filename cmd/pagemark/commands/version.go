package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pagemark/pagemark/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE:  runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().Bool("json", false, "output version info as JSON")
	versionCmd.Flags().Bool("short", false, "print the version number only")
}

func runVersion(cmd *cobra.Command, args []string) error {
	if short, _ := cmd.Flags().GetBool("short"); short {
		fmt.Println(version.String())
		return nil
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		data, err := json.MarshalIndent(version.Get(), "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Println(version.Full())
	return nil
}
