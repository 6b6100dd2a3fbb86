package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"ibTradeDesk/internal/app"
)

func newSubmitCmd(svc *app.Service) *cobra.Command {
	var ticket app.OrderTicket

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Validate a contract and submit an order",
		Long: `Validate the instrument against the brokerage registry (two-tier check),
submit the order, and record it in the trade ledger. Every invocation that
passes validation places a new live order.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := svc.SubmitOrder(cmd.Context(), ticket)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Successfully %s %v %s (orderId=%d permId=%d conId=%d)\n",
				result.Action, result.Size, result.Symbol, result.OrderID, result.PermID, result.ConID)
			return nil
		},
	}

	cmd.Flags().StringVar(&ticket.Symbol, "symbol", "", "instrument symbol")
	cmd.Flags().StringVar(&ticket.SecType, "sec-type", "STK", "security type (STK, CASH, ...)")
	cmd.Flags().StringVar(&ticket.Exchange, "exchange", "", "routing exchange")
	cmd.Flags().StringVar(&ticket.PrimaryExchange, "primary-exchange", "", "listing exchange (optional)")
	cmd.Flags().StringVar(&ticket.Currency, "currency", "USD", "instrument currency")
	cmd.Flags().StringVar(&ticket.Action, "action", "", "BUY or SELL")
	cmd.Flags().StringVar(&ticket.OrderType, "order-type", "MKT", "MKT or LMT")
	cmd.Flags().Float64Var(&ticket.Quantity, "quantity", 0, "order quantity")
	cmd.Flags().Float64Var(&ticket.LimitPrice, "limit-price", 0, "limit price (LMT orders only)")

	_ = cmd.MarkFlagRequired("symbol")
	_ = cmd.MarkFlagRequired("exchange")
	_ = cmd.MarkFlagRequired("action")
	_ = cmd.MarkFlagRequired("quantity")
	return cmd
}
