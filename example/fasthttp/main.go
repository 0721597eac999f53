// FILE: example/fasthttp/main.go
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/lixenwraith/loclog"
	"github.com/lixenwraith/loclog/compat"
	"github.com/valyala/fasthttp"
)

func main() {
	registry := loclog.NewRegistry()
	defer registry.Close()

	logger := registry.GetLogger("fasthttp", "./logs/fasthttp.log", loclog.LevelInfo)

	fasthttpAdapter := compat.NewFastHTTPAdapter(
		logger,
		compat.WithDefaultLevel(loclog.LevelInfo),
		compat.WithLevelDetector(customLevelDetector),
	)

	server := &fasthttp.Server{
		Handler: requestHandler(logger),
		Logger:  fasthttpAdapter,

		Name:              "MyServer",
		Concurrency:       fasthttp.DefaultConcurrency,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		TCPKeepalive:      true,
		ReduceMemoryUsage: true,
	}

	fmt.Println("Starting server on :8080")
	if err := server.ListenAndServe(":8080"); err != nil {
		logger.Exception(err, "server stopped")
	}
}

func requestHandler(logger *loclog.Logger) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		logger.Info(string(ctx.Method()), ctx.Path(), "from", ctx.RemoteAddr())
		ctx.SetContentType("text/plain")
		fmt.Fprintf(ctx, "Hello, world! Path: %s\n", ctx.Path())
	}
}

func customLevelDetector(msg string) int64 {
	if strings.Contains(msg, "connection cannot be served") {
		return loclog.LevelWarning
	}
	if strings.Contains(msg, "error when serving connection") {
		return loclog.LevelError
	}

	return compat.DetectLogLevel(msg)
}
