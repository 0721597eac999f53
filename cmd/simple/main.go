package main

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/lixenwraith/loclog"
)

const configFile = "simple_config.toml"

// Example TOML content
var tomlContent = `
# Example simple_config.toml
[log]
  name = "simple"
  file = "./simple_logs/simple.log"
  level = "debug"
  enable_file = true
  enable_console = true
  console_target = "stdout"
  color = "auto"
`

var registry = loclog.NewRegistry()

type worker struct {
	logger *loclog.Logger
}

func (w *worker) process(item string) {
	w.logger.Debug("call process()", "item:", item)
}

func divide(a, b int) (q int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("divide %d by %d: %v", a, b, r)
		}
	}()
	return a / b, nil
}

func failing(logger *loclog.Logger) {
	if _, err := divide(1, 0); err != nil {
		logger.Exception(err, "in exception")
	}
}

func main() {
	fmt.Println("--- Simple Logger Example ---")

	if err := os.WriteFile(configFile, []byte(tomlContent), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write example config: %v\n", err)
	} else {
		fmt.Printf("Created example config file: %s\n", configFile)
	}

	cfg, err := loclog.NewConfigFromFile(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := registry.Apply(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := registry.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Logger close error: %v\n", err)
		}
	}()

	// One line per severity
	logger.Debug("debug")
	logger.Info("info")
	logger.Warning("warning")
	logger.Error("error")
	logger.Critical("critical")

	// Same name, same logger: no second file handle
	same := registry.GetLogger("simple", cfg.File, cfg.Level)
	logger.Infof("registry returned the same logger: %t", same == logger)

	w := &worker{logger: logger}
	w.process("a")

	failing(logger)

	// Multi-line messages keep continuation lines indented
	logger.Warning("first line\nsecond line", errors.New("wrapped cause"))

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			logger.Info("goroutine", id, "done")
		}(i)
	}
	wg.Wait()

	// Raise the threshold at runtime
	logger.SetLevel(loclog.LevelWarning)
	logger.Info("not written")
	logger.Warning("threshold is now", "WARNING")

	logger.SetLevel(loclog.LevelInfo)
	logger.Heartbeat()

	fmt.Println("--- Example Finished ---")
	fmt.Printf("Check log files in './simple_logs' and the config '%s'.\n", configFile)
}
