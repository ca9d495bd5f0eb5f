package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/partie/brandmatch-go/internal/app"
	"github.com/partie/brandmatch-go/internal/config"
	"github.com/partie/brandmatch-go/internal/domain"
	"github.com/partie/brandmatch-go/internal/fingerprint"
	"github.com/partie/brandmatch-go/internal/match"
	"github.com/partie/brandmatch-go/internal/util"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := util.NewLogger(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	buildCtx, buildCancel := context.WithTimeout(context.Background(), 30*time.Second)
	container, err := app.Build(buildCtx, cfg, logger)
	buildCancel()
	if err != nil {
		logger.Error("Failed to assemble services", zap.Error(err))
		os.Exit(1)
	}
	defer container.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	switch os.Args[1] {
	case "fingerprint":
		err = runFingerprint(ctx, container, os.Args[2:])
	case "match":
		err = runMatch(ctx, container, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		logger.Error("Command failed", zap.Error(err))
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage:
  matcher fingerprint --profile <id> [--name <name>] --urls <csv>
  matcher match --brand-file <synthesis.json> --urls <csv> [--min-score f] [--top n] [--all]`)
}

func runFingerprint(ctx context.Context, container *app.Container, args []string) error {
	fs := flag.NewFlagSet("fingerprint", flag.ExitOnError)
	profileID := fs.String("profile", "", "profile id")
	profileName := fs.String("name", "", "profile display name")
	urls := fs.String("urls", "", "comma-separated video URLs")
	if err := fs.Parse(args); err != nil {
		return err
	}

	fp, err := container.Builder.Build(ctx, fingerprint.BuildRequest{
		ProfileID:   *profileID,
		ProfileName: *profileName,
		URLs:        util.SplitCSV(*urls),
	})
	if err != nil {
		return err
	}

	return printJSON(fp)
}

func runMatch(ctx context.Context, container *app.Container, args []string) error {
	fs := flag.NewFlagSet("match", flag.ExitOnError)
	brandFile := fs.String("brand-file", "", "path to brand synthesis JSON")
	urls := fs.String("urls", "", "comma-separated candidate video URLs")
	top := fs.Int("top", 0, "truncate ranking to top N")
	minScore := fs.Float64("min-score", 0, "drop results scoring below this threshold")
	all := fs.Bool("all", false, "include candidates that failed hard filters")
	if err := fs.Parse(args); err != nil {
		return err
	}

	brand, err := loadBrand(*brandFile)
	if err != nil {
		return err
	}

	videos, err := container.Store.FindVideosByURLs(ctx, util.SplitCSV(*urls))
	if err != nil {
		return err
	}
	if len(videos) == 0 {
		return fmt.Errorf("no candidate videos resolved")
	}

	ids := make([]string, len(videos))
	for i, v := range videos {
		ids[i] = v.ID
	}

	signalRows, err := container.Store.FindSignalsByVideoIDs(ctx, ids)
	if err != nil {
		return err
	}

	candidates := make([]*domain.VideoFingerprint, 0, len(videos))
	for _, video := range videos {
		signals := domain.UnifySignals(signalRows[video.ID])
		candidates = append(candidates, fingerprint.SignalsToVideoFingerprint(video.ID, signals, video.Embedding))
	}

	ranked := container.Orchestrator.RankCandidates(ctx, candidates, brand, match.RankOptions{
		DropFailed: !*all,
		Limit:      *top,
		MinScore:   *minScore,
	})

	return printJSON(ranked)
}

func loadBrand(path string) (*domain.BrandFingerprint, error) {
	if path == "" {
		return nil, fmt.Errorf("--brand-file is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read brand synthesis: %w", err)
	}

	var doc domain.BrandSynthesis
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse brand synthesis: %w", err)
	}

	brand := fingerprint.ComputeBrandFingerprint(&doc)
	if brand == nil {
		return nil, fmt.Errorf("empty brand synthesis")
	}
	return brand, nil
}

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
