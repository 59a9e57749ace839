package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli"
	"go.uber.org/zap"

	"github.com/LeaguesOfHoleHoleShoes/IndianPoker/duel"
	"github.com/LeaguesOfHoleHoleShoes/IndianPoker/duel/abstracts"
	"github.com/LeaguesOfHoleHoleShoes/IndianPoker/duel/core"
	"github.com/LeaguesOfHoleHoleShoes/IndianPoker/log"
	"github.com/LeaguesOfHoleHoleShoes/IndianPoker/metrics"
	"github.com/LeaguesOfHoleHoleShoes/IndianPoker/store"
)

const (
	PortFName        = "port"
	MetricsPortFName = "metrics_port"
	VariantFName     = "variant"
	MaxRoundsFName   = "max_rounds"
	LogFName         = "log"
	MongoHostsFName  = "mongo_hosts"
	MongoDBFName     = "mongo_db"
	MongoUserFName   = "mongo_user"
	MongoPwdFName    = "mongo_pwd"
)

func main() {
	app := cli.NewApp()
	app.Name = "duel_room"
	app.Usage = "two player indian poker room over websocket"
	app.Flags = []cli.Flag{
		cli.IntFlag{Name: PortFName, Value: 3030},
		cli.IntFlag{Name: MetricsPortFName, Value: 9110, Usage: "0 disables /metrics"},
		cli.StringFlag{Name: VariantFName, Value: core.DefaultVariant, Usage: "classic | ability"},
		cli.IntFlag{Name: MaxRoundsFName, Usage: "override rounds per game, 0 keeps the variant's"},
		cli.StringFlag{Name: LogFName, Value: "debug", Usage: "debug | prod"},
		cli.StringFlag{Name: MongoHostsFName, Usage: "comma separated, empty disables persistence"},
		cli.StringFlag{Name: MongoDBFName, Value: store.DefaultDBName},
		cli.StringFlag{Name: MongoUserFName},
		cli.StringFlag{Name: MongoPwdFName},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		panic(err)
	}
}

func run(c *cli.Context) error {
	log.InitLog(log.CfgByName(c.String(LogFName)))

	var recorder abstracts.Recorder = abstracts.NopRecorder{}
	if hosts := c.String(MongoHostsFName); hosts != "" {
		conf := store.NewDbConfig(strings.Split(hosts, ","), c.String(MongoDBFName), c.String(MongoUserFName), c.String(MongoPwdFName))
		gDB, err := store.NewGameDBByMongo(conf, conf.Database)
		if err != nil {
			return err
		}
		defer store.CloseDb()
		recorder = gDB
	}

	var m abstracts.Metrics = abstracts.NopMetrics{}
	if port := c.Int(MetricsPortFName); port > 0 {
		m = metrics.NewCollector(prometheus.DefaultRegisterer)
		go func() {
			if err := metrics.Serve(port); err != nil {
				log.L.Error("metrics server stopped", zap.Error(err))
			}
		}()
	}

	room, err := duel.NewRoomServer(duel.RoomConfig{
		Port:      c.Int(PortFName),
		Variant:   c.String(VariantFName),
		MaxRounds: c.Int(MaxRoundsFName),
		Recorder:  recorder,
		Metrics:   m,
	})
	if err != nil {
		return err
	}
	if err := room.Start(); err != nil {
		return err
	}
	log.L.Info("duel room started", zap.Int("port", c.Int(PortFName)), zap.String("variant", c.String(VariantFName)))

	signalListen(func() {
		if err := room.Stop(); err != nil {
			log.L.Error("stop room failed", zap.Error(err))
		}
		time.Sleep(1 * time.Second)
	})
	return nil
}

// listen stop signal
func signalListen(stopFunc func()) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	<-c

	stopFunc()
}
