package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Apurer/delivery-console/internal/app/console"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := console.Run(ctx); err != nil {
		log.Fatalf("delivery console failed: %v", err)
	}
}
