package main

// route.go – Cobra CLI glue for routerd's /v1/route endpoint (spec §6.1
// GetRoute), grounded on the teacher's cmd/cli/amm.go structure: a thin
// Controller wrapping the call (here an HTTP round trip instead of a
// direct core.* call, since the routing core runs as its own routerd
// process rather than inside the CLI binary), a Cobra command built on top
// of it, and an init() registering flags and mounting the command.

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

type tokenRefWire struct {
	Chain   uint32 `json:"chain"`
	Address string `json:"address"`
}

type routeRequestWire struct {
	From         tokenRefWire `json:"from"`
	To           tokenRefWire `json:"to"`
	AmountIn     string       `json:"amountIn"`
	SlippageKind string       `json:"slippageKind"`
	SlippageBps  uint32       `json:"slippageBps"`
	DeadlineMs   int64        `json:"deadlineMs"`
}

// RouteController is the thin orchestrator route.go's commands call into.
type RouteController struct{ client *routerClient }

func (c *RouteController) GetRoute(ctx context.Context, req routeRequestWire) (map[string]any, error) {
	var out map[string]any
	if err := c.client.postJSON(ctx, "/v1/route", req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

var routeCmd = &cobra.Command{
	Use:   "route <fromChain> <fromToken> <toChain> <toToken> <amountIn>",
	Short: "Quote a swap route between two tokens, same-chain or cross-chain",
	Args:  cobra.ExactArgs(5),
	RunE: func(cmd *cobra.Command, args []string) error {
		fromChain, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("fromChain: %w", err)
		}
		toChain, err := strconv.ParseUint(args[2], 10, 32)
		if err != nil {
			return fmt.Errorf("toChain: %w", err)
		}
		slippageBps, _ := cmd.Flags().GetUint32("slippage-bps")
		slippageKind, _ := cmd.Flags().GetString("slippage-kind")
		deadlineMs, _ := cmd.Flags().GetInt64("deadline-ms")

		ctrl := &RouteController{client: newRouterClient(serverAddr(cmd))}
		resp, err := ctrl.GetRoute(cmd.Context(), routeRequestWire{
			From:         tokenRefWire{Chain: uint32(fromChain), Address: args[1]},
			To:           tokenRefWire{Chain: uint32(toChain), Address: args[3]},
			AmountIn:     args[4],
			SlippageKind: slippageKind,
			SlippageBps:  slippageBps,
			DeadlineMs:   deadlineMs,
		})
		if err != nil {
			return err
		}
		enc, _ := json.MarshalIndent(resp, "", "  ")
		fmt.Println(string(enc))
		return nil
	},
}

func init() {
	routeCmd.Flags().Uint32("slippage-bps", 50, "slippage tolerance in basis points")
	routeCmd.Flags().String("slippage-kind", "fixed", "slippage policy: fixed or auto")
	routeCmd.Flags().Int64("deadline-ms", 5000, "per-request deadline in milliseconds")
	rootCmd.AddCommand(routeCmd)
}
