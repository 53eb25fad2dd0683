package main

import (
	"context"
	"log"

	"github.com/shelfkeeper/shelfkeeper/internal/cli"
	"github.com/shelfkeeper/shelfkeeper/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
