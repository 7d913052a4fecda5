package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/kabisa/ebmbridge/internal/config"
	"github.com/kabisa/ebmbridge/internal/migration"
	"github.com/kabisa/ebmbridge/internal/observability"
	"github.com/kabisa/ebmbridge/internal/server"
	"github.com/kabisa/ebmbridge/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
