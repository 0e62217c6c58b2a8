package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/lockbreak/internal/cli/styles"
)

var aboutShort bool

var aboutCmd = &cobra.Command{
	Use:     "about",
	Aliases: []string{"version"},
	Short:   "Show version and build information",
	Long:    `Display version, build info, repository URL, and contributors.`,
	RunE:    runAbout,
}

func init() {
	rootCmd.AddCommand(aboutCmd)
	aboutCmd.Flags().BoolVar(&aboutShort, "short", false, "print only the version and commit")
}

func runAbout(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	if aboutShort {
		fmt.Println(app.BuildInfo.Short())
		return nil
	}
	fmt.Println(styles.NewAboutRenderer(app.Theme).Render(app.BuildInfo))
	return nil
}
