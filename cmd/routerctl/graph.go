package main

// graph.go – Cobra CLI glue for routerd's /v1/graph/refresh endpoint (spec
// §4.2), grounded on the teacher's cmd/cli/amm.go "add"/"remove" commands
// (parse positional args, call the controller, print the result).

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"
)

type GraphController struct{ client *routerClient }

func (c *GraphController) Refresh(ctx context.Context, chain uint32) (map[string]any, error) {
	var out map[string]any
	q := url.Values{"chain": {strconv.FormatUint(uint64(chain), 10)}}
	if err := c.client.postJSON(ctx, "/v1/graph/refresh?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Operate on the routing graph",
}

var graphRefreshCmd = &cobra.Command{
	Use:   "refresh <chain>",
	Short: "Force an out-of-band refresh of one chain's liquidity graph",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		chain, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("chain: %w", err)
		}
		ctrl := &GraphController{client: newRouterClient(serverAddr(cmd))}
		out, err := ctrl.Refresh(cmd.Context(), uint32(chain))
		if err != nil {
			return err
		}
		enc, _ := json.MarshalIndent(out, "", "  ")
		fmt.Println(string(enc))
		return nil
	},
}

func init() {
	graphCmd.AddCommand(graphRefreshCmd)
	rootCmd.AddCommand(graphCmd)
}
