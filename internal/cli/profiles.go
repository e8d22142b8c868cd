package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ctorralba/pgprobe/internal/adapters/profilestore"
)

// profilesCmd represents the profiles command
var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List saved connection profiles",
	Long: `List the names of all connection profiles saved in the profile store.

Examples:
  # List profiles from the default store
  pgprobe profiles

  # List profiles from a specific file
  pgprobe profiles --profile-file /etc/pgprobe/connections.json`,
	RunE: runProfiles,
}

func init() {
	rootCmd.AddCommand(profilesCmd)
}

func runProfiles(cmd *cobra.Command, args []string) error {
	store := profilestore.NewStore(profileFile)

	names, err := store.List()
	if err != nil {
		return fmt.Errorf("could not list profiles: %w", err)
	}

	if len(names) == 0 {
		fmt.Println("No saved profiles.")
		return nil
	}

	fmt.Println("Saved profiles:")
	for _, name := range names {
		fmt.Printf("  ◆ %s\n", name)
	}
	return nil
}
