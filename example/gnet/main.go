// FILE: example/gnet/main.go
package main

import (
	"github.com/lixenwraith/loclog"
	"github.com/lixenwraith/loclog/compat"
	"github.com/panjf2000/gnet/v2"
)

// Example gnet event handler
type echoServer struct {
	gnet.BuiltinEventEngine
	logger *loclog.Logger
}

func (es *echoServer) OnBoot(eng gnet.Engine) gnet.Action {
	es.logger.Info("echo server ready")
	return gnet.None
}

func (es *echoServer) OnTraffic(c gnet.Conn) gnet.Action {
	buf, _ := c.Next(-1)
	es.logger.Debug("echo", len(buf), "bytes to", c.RemoteAddr())
	c.Write(buf)
	return gnet.None
}

func main() {
	registry := loclog.NewRegistry()
	defer registry.Close()

	logger, err := loclog.NewBuilder().
		Name("gnet").
		File("./logs/gnet.log").
		LevelString("debug").
		EnableConsole(true).
		Build(registry)
	if err != nil {
		panic(err)
	}

	gnetAdapter := compat.NewGnetAdapter(logger)

	err = gnet.Run(
		&echoServer{logger: logger},
		"tcp://127.0.0.1:9000",
		gnet.WithMulticore(true),
		gnet.WithLogger(gnetAdapter),
		gnet.WithReusePort(true),
	)
	if err != nil {
		logger.Exception(err, "gnet stopped")
	}
}
