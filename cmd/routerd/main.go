package main

// cmd/routerd is the HTTP server exposing the swap-routing core (spec
// §6.1), grounded on the teacher's cmd/dexserver/main.go and
// cmd/xchainserver/main.go (load config, build the domain value, serve
// HTTP, log fatal on listen failure) but wired to the new core.Core
// instead of the teacher's package-level AMM/ledger singletons.

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/ethereum/go-ethereum/common"
	log "github.com/sirupsen/logrus"

	routerconfig "github.com/synnergy-labs/swaprouter/cmd/config"
	"github.com/synnergy-labs/swaprouter/cmd/routerd/server"
	"github.com/synnergy-labs/swaprouter/core"
	"github.com/synnergy-labs/swaprouter/core/adapters"
	pkgconfig "github.com/synnergy-labs/swaprouter/pkg/config"
	"github.com/synnergy-labs/swaprouter/pkg/utils"
)

func main() {
	logger := log.New()
	logger.SetFormatter(&log.JSONFormatter{})
	entry := log.NewEntry(logger)

	routerconfig.LoadConfig(utils.EnvOrDefault("ROUTER_ENV", ""))
	cfg := routerconfig.AppConfig
	if lvl, err := log.ParseLevel(cfg.Logging.Level); err == nil {
		logger.SetLevel(lvl)
	}

	reg := core.NewSeedRegistry()
	reg.Freeze()

	adapterList := buildAdapters(entry, cfg)
	sources := []core.PairSource{adapters.NewDexScreenerSource(entry, reg)}

	rc := core.NewCore(reg, sources, adapterList, toCoreConfig(cfg), entry)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rc.Start(ctx, clock.New())
	defer rc.Stop()

	metricsSrv := rc.Metrics.StartMetricsServer(valueOr(cfg.Server.MetricsAddr, ":9100"))

	srv := &http.Server{
		Addr:    valueOr(cfg.Server.ListenAddr, ":8080"),
		Handler: server.NewRouter(server.NewServer(rc)),
	}

	go func() {
		entry.WithField("addr", srv.Addr).Info("routerd listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			entry.WithError(err).Fatal("routerd stopped")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	grace := time.Duration(cfg.Server.ShutdownGraceS) * time.Second
	if grace <= 0 {
		grace = 10 * time.Second
	}
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), grace)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
	_ = rc.Metrics.ShutdownMetricsServer(shutdownCtx, metricsSrv)
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func toCoreConfig(cfg pkgconfig.Config) core.Config {
	enabled := make(map[string]bool, len(cfg.Adapters.Enabled))
	for _, name := range cfg.Adapters.Enabled {
		enabled[name] = true
	}
	c := core.DefaultConfig()
	if cfg.Router.MaxHops > 0 {
		c.MaxHops = cfg.Router.MaxHops
	}
	if cfg.Router.PerRequestDeadlineMs > 0 {
		c.PerRequestDeadlineMs = cfg.Router.PerRequestDeadlineMs
	}
	if cfg.Router.DefaultSlippageBps > 0 {
		c.DefaultSlippageBps = uint32(cfg.Router.DefaultSlippageBps)
	}
	if cfg.Adapters.ConcurrencyPerHost > 0 {
		c.AdapterConcurrencyPerHost = cfg.Adapters.ConcurrencyPerHost
	}
	if len(enabled) > 0 {
		c.EnabledAdapters = enabled
	}
	if cfg.Graph.HotTierMinLiquidityUsd > 0 {
		c.Graph.HotTierMinLiquidityUsd = cfg.Graph.HotTierMinLiquidityUsd
	}
	if cfg.Graph.WarmTierMinLiquidityUsd > 0 {
		c.Graph.WarmTierMinLiquidityUsd = cfg.Graph.WarmTierMinLiquidityUsd
	}
	if cfg.Graph.EvictThresholdUsd > 0 {
		c.Graph.EvictThresholdUsd = cfg.Graph.EvictThresholdUsd
	}
	if cfg.Graph.RefreshIntervalHotSec > 0 {
		c.Graph.RefreshIntervalHot = time.Duration(cfg.Graph.RefreshIntervalHotSec) * time.Second
	}
	if cfg.Graph.RefreshIntervalWarmSec > 0 {
		c.Graph.RefreshIntervalWarm = time.Duration(cfg.Graph.RefreshIntervalWarmSec) * time.Second
	}
	if cfg.Graph.ColdCacheTTLSec > 0 {
		c.Graph.ColdCacheTTL = time.Duration(cfg.Graph.ColdCacheTTLSec) * time.Second
	}
	if cfg.Graph.ColdCacheSize > 0 {
		c.Graph.ColdCacheSize = cfg.Graph.ColdCacheSize
	}
	return c
}

// buildAdapters wires every RouterAdapter spec §4.4 names. On-chain-quoter
// deployments (Uniswap v3, PancakeSwap) read their router/quoter addresses
// and RPC URL from the environment since those are deployment details, not
// routing policy, and so do not belong in the YAML config surface.
func buildAdapters(log *log.Entry, cfg pkgconfig.Config) []core.RouterAdapter {
	list := []core.RouterAdapter{
		adapters.NewLiFi(log),
		adapters.NewRelay(log),
		adapters.NewSquid(log),
		adapters.NewJupiter(log),
		adapters.NewStargate(log),
		adapters.NewSocket(log, cfg.Adapters.SocketAPIKey),
	}
	if rpcURL := os.Getenv("UNISWAP_V3_RPC_URL"); rpcURL != "" {
		list = append(list, adapters.NewUniswapV3(log, core.ChainEthereum, rpcURL,
			common.HexToAddress(os.Getenv("UNISWAP_V3_ROUTER")),
			common.HexToAddress(os.Getenv("UNISWAP_V3_QUOTER"))))
	}
	if rpcURL := os.Getenv("PANCAKESWAP_RPC_URL"); rpcURL != "" {
		list = append(list, adapters.NewPancakeSwap(log, core.ChainBSC, rpcURL,
			common.HexToAddress(os.Getenv("PANCAKESWAP_ROUTER")),
			common.HexToAddress(os.Getenv("PANCAKESWAP_QUOTER"))))
	}
	return list
}
