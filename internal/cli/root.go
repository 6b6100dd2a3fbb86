// Package cli provides the operator-facing command surface. Each command
// parses operator input into an app-facade request; an order submission is
// only ever reachable through an explicit `submit` invocation, so the core
// never sees a spurious default-value trigger.
package cli

import (
	"github.com/spf13/cobra"

	"ibTradeDesk/config"
	"ibTradeDesk/internal/app"
)

// NewRoot builds the root command with all subcommands attached.
func NewRoot(svc *app.Service, cfg *config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "ibtradedesk",
		Short:         "Validate instruments, fetch historical bars and submit orders through an IB gateway",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newBarsCmd(svc, cfg))
	root.AddCommand(newSubmitCmd(svc))
	root.AddCommand(newOrdersCmd(svc))
	return root
}
