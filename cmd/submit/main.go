// Command submit validates a place JSON file and uploads it to the intake
// bucket. The bucket's notification configuration then delivers the new
// object to the announcer through Kafka.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"

	"github.com/google/uuid"

	"placecast/internal/env"
	"placecast/internal/keys"
	"placecast/internal/logging"
	"placecast/internal/storage"
	"placecast/models"
	"placecast/pkg/graceful"
)

func main() {
	file := flag.String("file", "", "path to a place JSON file")
	ensureBucket := flag.Bool("ensure-bucket", false, "create the intake bucket if missing")
	flag.Parse()

	env.Load()
	log := logging.New()

	if *file == "" {
		log.Fatal().Msg("usage: submit -file place.json")
	}

	ctx, cancel := graceful.Context(context.Background(), log)
	defer cancel()

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read place file")
	}

	var place models.Place
	if err := json.Unmarshal(data, &place); err != nil {
		log.Fatal().Err(err).Msg("place file is not valid JSON")
	}
	if place.ID == "" {
		place.ID = uuid.NewString()
	}
	if err := place.Validate(); err != nil {
		log.Fatal().Err(err).Msg("place failed validation")
	}

	store, err := storage.NewPlaceStore(env.MustGet("PLACES_BUCKET"), keys.Place, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create place store")
	}

	if *ensureBucket {
		if err := store.EnsureBucket(ctx, env.Get("MINIO_REGION", "")); err != nil {
			log.Fatal().Err(err).Msg("failed to ensure bucket")
		}
	}

	if err := store.PutPlace(ctx, place); err != nil {
		log.Fatal().Err(err).Msg("failed to upload place")
	}

	log.Info().Str("id", place.ID).Str("name", place.Name).Msg("place submitted")
}
