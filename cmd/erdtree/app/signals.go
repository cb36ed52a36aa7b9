package app

import (
	"context"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/Knodis-c/erdtree-3-1/pkg/logger"
)

// withSignalHandling derives a context cancelled by SIGINT or SIGTERM. The
// first signal requests a graceful stop so the traversal can drain its
// workers; a second signal exits immediately.
func withSignalHandling(parent context.Context, log logger.Logger) (context.Context, func()) {
	ctx, cancel := context.WithCancel(parent)

	sigChan := make(chan os.Signal, 2)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	var interrupted atomic.Bool

	go func() {
		for sig := range sigChan {
			log.WithFields(logger.Fields{
				"signal": sig.String(),
			}).Debug("Received system signal")

			if interrupted.CompareAndSwap(false, true) {
				log.Info("Interrupt received, finishing up")
				cancel()
				continue
			}

			log.Warn("Second interrupt, exiting immediately")
			os.Exit(130)
		}
	}()

	stop := func() {
		signal.Stop(sigChan)
		close(sigChan)
		cancel()
	}

	return ctx, stop
}
