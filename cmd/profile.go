package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kokostudy/koko/internal/profile"
	"github.com/kokostudy/koko/internal/ui/theme"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or change your profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your profile and theme",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()
		printProfile(cmd.OutOrStdout(), e.deps.Profile)
		return nil
	},
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change your display name or theme",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		p := e.deps.Profile
		if cmd.Flags().Changed("name") {
			name, _ := cmd.Flags().GetString("name")
			if p, err = e.profiles.SetDisplayName(ctx, name); err != nil {
				return err
			}
		}
		if cmd.Flags().Changed("gender") {
			s, _ := cmd.Flags().GetString("gender")
			g, err := profile.ParseGender(s)
			if err != nil {
				return err
			}
			if p, err = e.profiles.SetGender(ctx, g); err != nil {
				return err
			}
		}
		printProfile(cmd.OutOrStdout(), p)
		return nil
	},
}

func init() {
	profileSetCmd.Flags().String("name", "", "Name your companion calls you")
	profileSetCmd.Flags().String("gender", "", "female (Koko, princess theme) or male (Max, champion theme)")

	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileSetCmd)
}

func printProfile(out io.Writer, p profile.Profile) {
	th := theme.Resolve(p.Gender)
	fmt.Fprintf(out, "User:       %s\n", p.UserID)
	fmt.Fprintf(out, "Name:       %s\n", p.Greeting())
	fmt.Fprintf(out, "Gender:     %s\n", p.Gender)
	fmt.Fprintf(out, "Theme:      %s\n", th.Name)
	fmt.Fprintf(out, "Companion:  %s %s\n", th.Assets.Badge, th.Labels.Companion)
}
