package main

import (
	"context"
	"fmt"
	"os"

	"github.com/yungbote/competence-backend/internal/app"
	"github.com/yungbote/competence-backend/internal/platform/shutdown"
)

func main() {
	ctx, stop := shutdown.NotifyContext(context.Background())
	defer stop()

	a, err := app.New(ctx)
	if err != nil {
		fmt.Printf("failed to initialize app: %v\n", err)
		os.Exit(1)
	}

	err = a.Run(ctx)
	a.Close()
	if err != nil {
		fmt.Printf("server exited: %v\n", err)
		os.Exit(1)
	}
}
