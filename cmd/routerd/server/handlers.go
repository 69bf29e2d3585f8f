package server

// handlers.go – HTTP handlers for the swap-routing core (spec §6.1),
// grounded on the teacher's cmd/xchainserver/server/handlers.go shape
// (decode request -> call core -> writeJSON) but calling into the new
// core.Core instead of the teacher's bridge/relayer globals.

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/synnergy-labs/swaprouter/core"
)

// Server holds the one Core instance every handler calls into.
type Server struct {
	Core *core.Core
}

func NewServer(c *core.Core) *Server { return &Server{Core: c} }

// writeJSON encodes v as the response body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// tokenRefWire is the wire shape for a TokenRef in requests/responses.
type tokenRefWire struct {
	Chain   uint32 `json:"chain"`
	Address string `json:"address"`
}

func parseTokenRef(reg *core.Registry, w tokenRefWire) (core.TokenRef, error) {
	chain := core.CanonicalChainId(w.Chain)
	ch := reg.GetChain(chain)
	if ch == nil {
		return core.TokenRef{}, core.Invalid("chain", "not registered")
	}
	if w.Address == "" || w.Address == core.NativeSentinel {
		return core.TokenRef{Chain: chain, Address: core.NativeAddress(ch.Kind)}, nil
	}
	switch ch.Kind {
	case core.ChainKindEVM:
		addr, err := core.EVMAddress(w.Address)
		if err != nil {
			return core.TokenRef{}, err
		}
		return core.TokenRef{Chain: chain, Address: addr}, nil
	case core.ChainKindSolana:
		addr, err := core.SolanaAddress(w.Address)
		if err != nil {
			return core.TokenRef{}, err
		}
		return core.TokenRef{Chain: chain, Address: addr}, nil
	case core.ChainKindCosmos:
		return core.TokenRef{Chain: chain, Address: core.CosmosDenom(w.Address)}, nil
	default:
		return core.TokenRef{Chain: chain, Address: core.OpaqueAddress(w.Address, ch.Kind)}, nil
	}
}

// routeRequestWire is the JSON body POST /v1/route accepts.
type routeRequestWire struct {
	From         tokenRefWire `json:"from"`
	To           tokenRefWire `json:"to"`
	AmountIn     string       `json:"amountIn"`
	SlippageKind string       `json:"slippageKind"`
	SlippageBps  uint32       `json:"slippageBps"`
	DeadlineMs   int64        `json:"deadlineMs"`
}

func routeStepWire(s core.RouteStep) map[string]any {
	return map[string]any{
		"kind":             s.Kind,
		"chain":            s.Chain,
		"inputToken":       s.InputToken.Address.String(),
		"outputToken":      s.OutputToken.Address.String(),
		"dex":              s.Dex,
		"fromChain":        s.FromChain,
		"toChain":          s.ToChain,
		"bridgeId":         s.BridgeID,
		"amountIn":         s.AmountIn.String(),
		"amountOutQuoted":  s.AmountOutQuoted.String(),
		"rawAmountOut":     s.RawAmountOut,
		"estimatedSeconds": s.EstimatedSeconds,
	}
}

func routeWire(r *core.Route) map[string]any {
	if r == nil {
		return nil
	}
	steps := make([]map[string]any, 0, len(r.Steps))
	for _, s := range r.Steps {
		steps = append(steps, routeStepWire(s))
	}
	return map[string]any{
		"id":                      r.ID,
		"source":                  r.Source,
		"steps":                   steps,
		"amountIn":                r.AmountIn.String(),
		"amountOutQuoted":         r.AmountOutQuoted.String(),
		"amountOutMin":            r.AmountOutMin.String(),
		"priceImpactBps":          r.PriceImpactBps,
		"gasEstimateUsd":          r.GasEstimateUsd,
		"totalFeesUsd":            r.TotalFeesUsd,
		"score":                   r.Score,
		"expiresAt":               r.ExpiresAt,
		"requiresExactSimulation": r.RequiresExactSimulation,
	}
}

// PostRoute handles POST /v1/route (spec §6.1 GetRoute).
func (s *Server) PostRoute(w http.ResponseWriter, r *http.Request) {
	var wire routeRequestWire
	if err := json.NewDecoder(r.Body).Decode(&wire); err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	from, err := parseTokenRef(s.Core.Registry, wire.From)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	to, err := parseTokenRef(s.Core.Registry, wire.To)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	amountIn, ok := core.AmountFromDecimalString(wire.AmountIn)
	if !ok {
		writeErr(w, http.StatusBadRequest, core.Invalid("amountIn", "not a valid integer amount"))
		return
	}
	var slippage core.SlippagePolicy
	switch wire.SlippageKind {
	case "":
		// left zero-valued: Core.GetRoute fills in the configured
		// defaultSlippageBps (spec §6.4) when the caller omits this field.
	case "fixed":
		slippage = core.FixedSlippage(wire.SlippageBps)
	case "auto":
		slippage = core.AutoSlippage(wire.SlippageBps)
	default:
		writeErr(w, http.StatusBadRequest, core.Invalid("slippageKind", "must be fixed or auto"))
		return
	}
	// A zero/omitted deadlineMs is left at zero; Core.GetRoute fills in the
	// configured perRequestDeadlineMs default (spec §6.4).
	deadline := time.Duration(wire.DeadlineMs) * time.Millisecond

	req := core.RouteRequest{From: from, To: to, AmountIn: amountIn, Slippage: slippage, Deadline: deadline}
	resp, err := s.Core.GetRoute(r.Context(), req)
	if err != nil {
		if ce, ok := core.AsCoreError(err); ok && ce.Code == core.CodeInvalidRequest {
			writeErr(w, http.StatusBadRequest, err)
			return
		}
		writeErr(w, http.StatusInternalServerError, err)
		return
	}

	alts := make([]map[string]any, 0, len(resp.Alternatives))
	for i := range resp.Alternatives {
		alts = append(alts, routeWire(&resp.Alternatives[i]))
	}
	diagnostics := make([]map[string]string, 0, len(resp.Diagnostics))
	for _, d := range resp.Diagnostics {
		diagnostics = append(diagnostics, map[string]string{"adapter": d.Adapter, "kind": string(d.Kind), "detail": d.Detail})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"best":         routeWire(resp.Best),
		"alternatives": alts,
		"diagnostics":  diagnostics,
	})
}

// ListChains handles GET /v1/chains (spec §6.1 ListSupportedChains).
func (s *Server) ListChains(w http.ResponseWriter, _ *http.Request) {
	chains := s.Core.ListSupportedChains()
	out := make([]map[string]any, 0, len(chains))
	for _, c := range chains {
		out = append(out, map[string]any{
			"id":   c.ID,
			"name": c.Name,
			"kind": c.Kind,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// Health handles GET /v1/health (spec §6.1 HealthCheck).
func (s *Server) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.Core.HealthCheck())
}

// RefreshGraph handles POST /v1/graph/refresh?chain=<id>, forcing an
// out-of-band GraphBuilder.RefreshChain outside the scheduler's own
// hot/warm cadence (spec §4.2) — operator-triggered, for use after a known
// liquidity event rather than on every request.
func (s *Server) RefreshGraph(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("chain")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		writeErr(w, http.StatusBadRequest, core.Invalid("chain", "missing or malformed chain query param"))
		return
	}
	chain := core.CanonicalChainId(id)
	report := s.Core.Builder.RefreshChain(r.Context(), chain, s.Core.Graph.Config().WarmTierMinLiquidityUsd)
	writeJSON(w, http.StatusOK, report)
}
