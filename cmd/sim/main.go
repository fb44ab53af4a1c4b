package main

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/tmarkov/limitbook/internal/config"
	"github.com/tmarkov/limitbook/internal/core"
	"github.com/tmarkov/limitbook/internal/domain"
	"github.com/tmarkov/limitbook/internal/gateway"
	"github.com/tmarkov/limitbook/internal/logging"
)

func main() {
	cfg := config.Load()

	logger, err := logging.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	gw := gateway.New(core.NewOrderBook(), logger)

	runScripted(gw)
	runRandom(gw, cfg.Sim, logger)

	fmt.Println()
	fmt.Print(gw.Snapshot())
}

// runScripted drives one small order lifecycle end to end so the log output
// is easy to follow by hand: queue buildup, a partial execution, an
// amendment that loses its queue position, a cancel, and a sweep of the
// whole level.
func runScripted(gw *gateway.Gateway) {
	ten := decimal.NewFromInt(10)
	eleven := decimal.NewFromInt(11)

	first, err := gw.SubmitOrder(ten, 20, domain.Buy)
	if err != nil {
		log.Fatalf("scripted flow: %v", err)
	}
	second, err := gw.SubmitOrder(ten, 5, domain.Buy)
	if err != nil {
		log.Fatalf("scripted flow: %v", err)
	}
	if _, err := gw.SubmitOrder(ten, 15, domain.Buy); err != nil {
		log.Fatalf("scripted flow: %v", err)
	}

	gw.ExecuteTrade(ten, 12, domain.Sell)

	gw.ModifyOrder(first.ID(), 25)
	gw.CancelOrder(second.ID())
	gw.CancelOrder(second.ID())

	gw.ExecuteTrade(ten, 40, domain.Sell)
	gw.ExecuteTrade(eleven, 7, domain.Sell)
}

// runRandom replays a seeded burst of submits, executions, cancels and
// amendments. The same seed always produces the same final book.
func runRandom(gw *gateway.Gateway, sim config.SimConfig, logger *zap.Logger) {
	rng := rand.New(rand.NewSource(sim.Seed))
	outcomes := make(map[domain.Outcome]int)
	var seen []uuid.UUID

	for i := 0; i < sim.Orders; i++ {
		price := decimal.NewFromInt(int64(100 + rng.Intn(sim.PriceLevels)))
		qty := 1 + rng.Int63n(sim.MaxQuantity)
		side := domain.Buy
		if rng.Intn(2) == 1 {
			side = domain.Sell
		}

		switch rng.Intn(10) {
		case 0, 1, 2:
			if o, err := gw.SubmitOrder(price, qty, side); err == nil {
				seen = append(seen, o.ID())
			}
		case 3:
			if len(seen) > 0 {
				gw.CancelOrder(seen[rng.Intn(len(seen))])
			}
		case 4:
			if len(seen) > 0 {
				gw.ModifyOrder(seen[rng.Intn(len(seen))], 1+rng.Int63n(sim.MaxQuantity))
			}
		default:
			outcomes[gw.ExecuteTrade(price, qty, side)]++
		}
	}

	logger.Info("random flow finished",
		zap.Int("requests", sim.Orders),
		zap.Int("full", outcomes[domain.OutcomeFull]),
		zap.Int("partial", outcomes[domain.OutcomePartial]),
		zap.Int("none", outcomes[domain.OutcomeNone]))
}
