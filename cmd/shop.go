package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kokostudy/koko/internal/rewards"
)

var shopCmd = &cobra.Command{
	Use:   "shop",
	Short: "Spend coins on outfits for your companion",
}

var shopListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the outfits on offer",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()
		return listShop(cmd.Context(), cmd.OutOrStdout(), e)
	},
}

var shopBuyCmd = &cobra.Command{
	Use:   "buy <outfit>",
	Short: "Buy an outfit and put it on",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()
		return buyOutfit(cmd.Context(), cmd.OutOrStdout(), e, args[0])
	},
}

var shopWearCmd = &cobra.Command{
	Use:   "wear <outfit|default>",
	Short: "Wear an outfit you own, or default to take it off",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()
		return wearOutfit(cmd.Context(), cmd.OutOrStdout(), e, args[0])
	},
}

func init() {
	shopCmd.AddCommand(shopListCmd)
	shopCmd.AddCommand(shopBuyCmd)
	shopCmd.AddCommand(shopWearCmd)
}

func listShop(ctx context.Context, out io.Writer, e *env) error {
	comp, err := e.deps.Rewards.Companion(ctx)
	if err != nil {
		return err
	}
	th := e.deps.Theme
	fmt.Fprintf(out, "%s has 🪙 %d %s\n\n", th.Labels.Companion, comp.Funds, th.Labels.Coins)

	fmt.Fprintf(out, "%-10s  %-22s  %5s  %s\n", "ID", "Outfit", "Cost", "")
	fmt.Fprintln(out, strings.Repeat("─", 60))
	for _, o := range e.deps.Rewards.Catalog() {
		state := ""
		switch {
		case comp.CurrentOutfit == o.ID:
			state = "wearing"
		case comp.Owns(o.ID):
			state = "owned"
		case !comp.CanAfford(o):
			state = fmt.Sprintf("need %d more", o.Cost-comp.Funds)
		}
		fmt.Fprintf(out, "%-10s  %-22s  %5d  %s\n", o.ID, o.Emoji+" "+o.Name, o.Cost, state)
	}
	return nil
}

func buyOutfit(ctx context.Context, out io.Writer, e *env, id string) error {
	comp, err := e.deps.Rewards.Buy(ctx, strings.ToLower(id))
	switch {
	case errors.Is(err, rewards.ErrUnknownOutfit):
		return fmt.Errorf("no outfit %q, see koko shop list: %w", id, err)
	case errors.Is(err, rewards.ErrAlreadyOwned):
		return fmt.Errorf("%w; wear it with: koko shop wear %s", err, id)
	case errors.Is(err, rewards.ErrInsufficientFunds):
		o, _ := e.deps.Rewards.Outfit(strings.ToLower(id))
		return fmt.Errorf("not enough coins yet, %s costs %d and you have %d: %w", o.Name, o.Cost, comp.Funds, rewards.ErrInsufficientFunds)
	case err != nil:
		return err
	}
	o, _ := e.deps.Rewards.Outfit(comp.CurrentOutfit)
	fmt.Fprintf(out, "Bought %s %s! %d coins left.\n", o.Emoji, o.Name, comp.Funds)
	return nil
}

func wearOutfit(ctx context.Context, out io.Writer, e *env, id string) error {
	comp, err := e.deps.Rewards.Wear(ctx, strings.ToLower(id))
	if errors.Is(err, rewards.ErrNotOwned) {
		return fmt.Errorf("%w; buy it with: koko shop buy %s", err, id)
	}
	if err != nil {
		return err
	}
	name := e.deps.Theme.Labels.Companion
	if o, ok := e.deps.Rewards.Outfit(comp.CurrentOutfit); ok {
		fmt.Fprintf(out, "%s is wearing %s %s\n", name, o.Emoji, o.Name)
	} else {
		fmt.Fprintf(out, "%s is back in the usual look\n", name)
	}
	return nil
}
