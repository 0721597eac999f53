package main

import (
	"bufio"
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/lixenwraith/loclog"
	"github.com/urfave/cli/v3"
)

const maxMessageSize = 2000

var levels = []int64{
	loclog.LevelDebug,
	loclog.LevelInfo,
	loclog.LevelWarning,
	loclog.LevelError,
	loclog.LevelCritical,
}

func generateRandomMessage(r *rand.Rand, size int) string {
	const chars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 "
	var sb strings.Builder
	sb.Grow(size)
	for i := 0; i < size; i++ {
		sb.WriteByte(chars[r.Intn(len(chars))])
	}
	return sb.String()
}

// logBurst writes count records from one worker
func logBurst(logger *loclog.Logger, workerID, count int, stop <-chan struct{}) int {
	r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(workerID)))
	written := 0
	for i := 0; i < count; i++ {
		select {
		case <-stop:
			return written
		default:
		}
		msg := generateRandomMessage(r, r.Intn(maxMessageSize)+10)
		logger.Log(levels[r.Intn(len(levels))], "wkr", workerID, "seq", i, msg)
		written++
	}
	return written
}

// countLines counts the records in every file belonging to the log
func countLines(path string) (int, error) {
	matches, err := filepath.Glob(path + "*")
	if err != nil {
		return 0, err
	}
	total := 0
	for _, m := range matches {
		f, err := os.Open(m)
		if err != nil {
			return 0, err
		}
		scanner := bufio.NewScanner(f)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			// Continuation lines start with the indent
			if !strings.HasPrefix(scanner.Text(), " ") {
				total++
			}
		}
		f.Close()
		if err := scanner.Err(); err != nil {
			return 0, err
		}
	}
	return total, nil
}

func run(ctx context.Context, c *cli.Command) error {
	cfg := loclog.DefaultConfig()
	cfg.Name = "stress"
	cfg.File = filepath.Join(c.String("dir"), "stress.log")
	if err := cfg.ApplyOverride(c.StringSlice("set")...); err != nil {
		return err
	}

	if c.Bool("clean") {
		_ = os.RemoveAll(filepath.Dir(cfg.File))
	}

	registry := loclog.NewRegistry()
	logger, err := registry.Apply(cfg)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer registry.Close()

	workers := int(c.Int("workers"))
	count := int(c.Int("count"))
	fmt.Printf("Starting stress test: %d workers x %d records -> %s\n", workers, count, cfg.File)

	var wg sync.WaitGroup
	var written atomic.Int64
	start := time.Now()
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			written.Add(int64(logBurst(logger, id, count, ctx.Done())))
		}(i)
	}
	wg.Wait()
	duration := time.Since(start)

	logger.Heartbeat()

	fmt.Printf("Wrote %d records in %v", written.Load(), duration.Round(time.Millisecond))
	if duration.Seconds() > 0 {
		fmt.Printf(" (%.0f records/sec)", float64(written.Load())/duration.Seconds())
	}
	fmt.Println()

	if !cfg.EnableFile {
		return nil
	}

	if err := logger.Close(); err != nil {
		return err
	}
	lines, err := countLines(cfg.File)
	if err != nil {
		return fmt.Errorf("counting records: %w", err)
	}

	// Levels below the threshold are never written; the heartbeat adds one record
	fmt.Printf("Records on disk: %d\n", lines)
	return nil
}

func main() {
	app := &cli.Command{
		Name:  "stress",
		Usage: "Write records from many goroutines into one rotating log",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "dir",
				Usage: "log directory",
				Value: "./logs",
			},
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"w"},
				Usage:   "concurrent writers",
				Value:   50,
			},
			&cli.IntFlag{
				Name:    "count",
				Aliases: []string{"n"},
				Usage:   "records per writer",
				Value:   1000,
			},
			&cli.StringSliceFlag{
				Name:  "set",
				Usage: "configuration override as key=value (repeatable)",
			},
			&cli.BoolFlag{
				Name:  "clean",
				Usage: "remove the log directory before starting",
			},
		},
		Action: run,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "stress: %v\n", err)
		os.Exit(1)
	}
}
