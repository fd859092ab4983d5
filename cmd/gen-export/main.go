// Command gen-export writes a synthetic Health Auto Export file so the
// pipeline can be exercised without real watch data.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/loremdai/tennishealth/internal/exportgen"
	"github.com/loremdai/tennishealth/pkg/logger"
)

func main() {
	var (
		dateStr  = flag.String("date", time.Now().Format("2006-01-02"), "Export date (YYYY-MM-DD)")
		out      = flag.String("out", "exports", "Output directory")
		workouts = flag.Int("workouts", 2, "Number of tennis sessions")
		minutes  = flag.Int("minutes", 45, "Duration of each session in minutes")
		seed     = flag.Int64("seed", 1, "Random seed for reproducible output")
		noise    = flag.Bool("noise", true, "Include non-tennis and too-short records")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx := context.Background()
	log := logger.Get()

	date, err := time.Parse("2006-01-02", *dateStr)
	if err != nil {
		log.Fatal(ctx, "invalid date", logger.String("date", *dateStr), logger.Error(err))
	}

	opts := []exportgen.Option{
		exportgen.WithDate(date),
		exportgen.WithWorkouts(*workouts),
		exportgen.WithMinutes(*minutes),
		exportgen.WithSeed(*seed),
	}
	if *noise {
		opts = append(opts, exportgen.WithNoise())
	}

	if _, err := exportgen.New(opts...).WriteFile(ctx, *out); err != nil {
		log.Fatal(ctx, "failed to write export", logger.Error(err))
	}
}
