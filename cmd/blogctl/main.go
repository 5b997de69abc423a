package main

import (
	"context"

	"github.com/mbelov/microblog/internal/client/cli"
	"github.com/mbelov/microblog/internal/client/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	app := cli.NewApp(cfg)
	app.Run(ctx)

}
