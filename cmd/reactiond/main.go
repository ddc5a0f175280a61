package main

//go-build: CGO_ENABLED=0

import (
	"log"

	"github.com/golang/glog"

	"github.com/robotalks/reaction.go/pkg/env"
	fx "github.com/robotalks/reaction.go/pkg/framework"
	"github.com/robotalks/reaction.go/pkg/game"
	"github.com/robotalks/reaction.go/pkg/telemetry"
)

func init() {
	env.Default().Info.Meta = telemetry.Meta{Description: "Reaction Game Panel"}
	env.SetupFlags()
	game.SetupFlags()
}

func main() {
	if err := env.ParseFlags(); err != nil {
		log.Fatalln(err)
	}
	defer glog.Flush()

	e := env.NewConfig().MustNewEnv()
	defer e.Close()
	engine := game.NewConfig().NewEngine(e)
	if err := engine.Start(); err != nil {
		log.Fatalln(err)
	}
	glog.Infof("%s ready", e.Config.Info.Ref.Name())
	runner := fx.NewRunner().HandleSignals()
	fx.NewLoop().Add(e, engine).RunOrFail(runner.Context)
}
