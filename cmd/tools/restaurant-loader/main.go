// cmd/tools/restaurant-loader/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"dining-concierge/internal/common/aws"
	"dining-concierge/internal/common/config"
	"dining-concierge/internal/common/database"
	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/etl"
	"dining-concierge/internal/repository"
	"dining-concierge/pkg/dataset"
)

const (
	rawFile     = "yelp_restaurants.json"
	cleanedFile = "yelp_restaurants_cleaned.json"
	bulkFile    = "restaurants_bulk_data.json"
)

func main() {
	fetchCmd := flag.NewFlagSet("fetch", flag.ExitOnError)
	cleanCmd := flag.NewFlagSet("clean", flag.ExitOnError)
	bulkCmd := flag.NewFlagSet("bulk", flag.ExitOnError)
	indexCmd := flag.NewFlagSet("index", flag.ExitOnError)
	uploadCmd := flag.NewFlagSet("upload", flag.ExitOnError)

	// Fetch command flags
	fetchOut := fetchCmd.String("out", rawFile, "Output file for collected restaurants")

	// Clean command flags
	cleanIn := cleanCmd.String("in", rawFile, "Collected restaurants file")
	cleanOut := cleanCmd.String("out", cleanedFile, "Output file for the cleaned dataset")
	cleanMax := cleanCmd.Int("max", 0, "Maximum records to keep (0 uses yelp.max_keep)")

	// Bulk command flags
	bulkIn := bulkCmd.String("in", cleanedFile, "Cleaned restaurants file")
	bulkOut := bulkCmd.String("out", bulkFile, "Output file for the bulk NDJSON body")

	// Index command flags
	indexIn := indexCmd.String("in", bulkFile, "Bulk NDJSON body to send")

	// Upload command flags
	uploadIn := uploadCmd.String("in", cleanedFile, "Cleaned restaurants file")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch os.Args[1] {
	case "fetch":
		fetchCmd.Parse(os.Args[2:])
		err = withConfig(func(cfg *config.Config, log logger.Logger) error {
			return fetch(ctx, cfg, log, *fetchOut)
		})

	case "clean":
		cleanCmd.Parse(os.Args[2:])
		err = withConfig(func(cfg *config.Config, log logger.Logger) error {
			max := *cleanMax
			if max <= 0 {
				max = cfg.Yelp.MaxKeep
			}
			return clean(*cleanIn, *cleanOut, max)
		})

	case "bulk":
		bulkCmd.Parse(os.Args[2:])
		err = bulk(*bulkIn, *bulkOut)

	case "index":
		indexCmd.Parse(os.Args[2:])
		err = withConfig(func(cfg *config.Config, log logger.Logger) error {
			return index(ctx, cfg, log, *indexIn)
		})

	case "upload":
		uploadCmd.Parse(os.Args[2:])
		err = withConfig(func(cfg *config.Config, log logger.Logger) error {
			return upload(ctx, cfg, log, *uploadIn)
		})

	case "help":
		help()
		return

	default:
		help()
		os.Exit(1)
	}

	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func withConfig(run func(*config.Config, logger.Logger) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log := logger.NewStructured(cfg.Logging.Level, "console", "stderr")
	return run(cfg, log)
}

func fetch(ctx context.Context, cfg *config.Config, log logger.Logger, out string) error {
	if cfg.Yelp.APIKey == "" {
		return fmt.Errorf("yelp.api_key or YELP_API_KEY is required")
	}
	cuisines := cfg.Yelp.Cuisines
	if len(cuisines) == 0 {
		cuisines = etl.DefaultCuisines
	}

	records, err := etl.NewYelpFetcher(cfg.Yelp, log).FetchAll(ctx, cuisines)
	if err != nil {
		return err
	}
	if err := dataset.Save(out, records); err != nil {
		return err
	}
	fmt.Printf("Collected %d restaurants, saved to %s\n", len(records), out)
	return nil
}

func clean(in, out string, max int) error {
	records, err := dataset.Load(in)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", in, err)
	}
	cleaned := etl.Clean(records, max)
	if err := dataset.Save(out, cleaned); err != nil {
		return err
	}
	fmt.Printf("Cleaning complete, %d restaurants saved to %s\n", len(cleaned), out)
	return nil
}

func bulk(in, out string) error {
	records, err := dataset.Load(in)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", in, err)
	}
	body, err := etl.BuildBulk(records)
	if err != nil {
		return err
	}
	if err := dataset.WriteFile(out, body); err != nil {
		return err
	}
	fmt.Printf("Bulk body for %d restaurants written to %s\n", len(records), out)
	return nil
}

func index(ctx context.Context, cfg *config.Config, log logger.Logger, in string) error {
	body, err := os.ReadFile(in)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", in, err)
	}

	es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
	if err != nil {
		return err
	}
	if err := es.EnsureIndex(ctx, cfg.Search.Index); err != nil {
		return err
	}

	res, err := etl.NewIndexer(es.Client, cfg.Search.Index, log).Index(ctx, body)
	if err != nil {
		return err
	}
	fmt.Printf("Indexed %d documents into %s (%d failed)\n", res.Indexed, cfg.Search.Index, res.Failed)
	if res.Failed > 0 {
		return fmt.Errorf("%d documents failed to index", res.Failed)
	}
	return nil
}

func upload(ctx context.Context, cfg *config.Config, log logger.Logger, in string) error {
	if err := cfg.ValidateFor(config.ComponentLoader); err != nil {
		return err
	}
	records, err := dataset.Load(in)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", in, err)
	}

	awsCfg, err := aws.LoadConfig(ctx, cfg.AWS)
	if err != nil {
		return err
	}
	if err := repository.EnsureRestaurantSchema(ctx, cfg); err != nil {
		return err
	}
	store, closeStore, err := repository.NewRestaurantStore(ctx, cfg, aws.NewDynamoDBClient(awsCfg))
	if err != nil {
		return err
	}
	defer closeStore()

	n, err := etl.Upload(ctx, store, records, log)
	fmt.Printf("Uploaded %d of %d restaurants\n", n, len(records))
	return err
}

func help() {
	fmt.Println(`
Usage: restaurant-loader <command> [flags]

Commands:
  fetch   Collect restaurants from the Yelp business search API
  clean   Drop duplicate business ids and cap the dataset
  bulk    Write the search index bulk NDJSON body
  index   Send the bulk body to the search index
  upload  Put every cleaned record into the restaurant store
  help    Show this help message

Examples:
  restaurant-loader fetch -out yelp_restaurants.json
  restaurant-loader clean -in yelp_restaurants.json -out yelp_restaurants_cleaned.json -max 150
  restaurant-loader bulk -in yelp_restaurants_cleaned.json -out restaurants_bulk_data.json
  restaurant-loader index -in restaurants_bulk_data.json
  restaurant-loader upload -in yelp_restaurants_cleaned.json

Use 'restaurant-loader <command> -h' for more information about a command.
`)
}
