package main

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/time/rate"

	"placecast/internal/announce"
	"placecast/internal/enrich"
	"placecast/internal/env"
	"placecast/internal/feed"
	"placecast/internal/keys"
	"placecast/internal/logging"
	"placecast/internal/storage"
	"placecast/internal/storage/postgres"
	"placecast/models"
	"placecast/pkg/forum"
	"placecast/pkg/geocode"
	"placecast/pkg/graceful"
	"placecast/pkg/kafkaclient"
	"placecast/pkg/webhook"
)

// outcomeEvent is published to the results topic after every announcement.
type outcomeEvent struct {
	PlaceID string    `json:"placeId"`
	Name    string    `json:"name"`
	Outcome string    `json:"outcome"`
	PostID  string    `json:"postId,omitempty"`
	At      time.Time `json:"at"`
}

func main() {
	env.Load()
	log := logging.New()

	ctx, cancel := graceful.Context(context.Background(), log)
	defer cancel()

	kafkaBroker := env.MustGet("KAFKA_BROKER")
	kafkaTopic := env.MustGet("KAFKA_TOPIC")
	kafkaGroupID := env.MustGet("KAFKA_GROUP_ID")

	log.Info().
		Str("broker", kafkaBroker).
		Str("topic", kafkaTopic).
		Str("group_id", kafkaGroupID).
		Msg("connecting to kafka")

	consumer := kafkaclient.NewConsumer(kafkaTopic, kafkaGroupID, kafkaBroker, log)

	store, err := storage.NewPlaceStore(env.MustGet("PLACES_BUCKET"), keys.Place, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create place store")
	}

	// The attempt log is optional; without a database the announcer records
	// attempts in the process log only.
	var recorder announce.Recorder
	if dsn := env.Get("DATABASE_URL", ""); dsn != "" {
		pool, err := pgxpool.New(ctx, dsn)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create postgres pool")
		}
		defer pool.Close()

		announcements := postgres.NewAnnouncementLog(pool)
		if err := announcements.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to ensure announcements schema")
		}
		recorder = announcements
		log.Info().Msg("announcement attempts will be recorded in postgres")
	}

	var fallback announce.FallbackSender
	if url := env.Get("FALLBACK_WEBHOOK_URL", ""); url != "" {
		fallback = webhook.NewSender(url)
	}

	poster := announce.NewPoster(
		announce.Config{
			ExperienceID:  env.MustGet("FORUM_EXPERIENCE_ID"),
			UserID:        env.MustGet("AGENT_USER_ID"),
			CompanyID:     env.MustGet("COMPANY_ID"),
			ViewerBaseURL: env.Get("VIEWER_BASE_URL", "https://app.example.com"),
		},
		forum.NewClient(env.MustGet("FORUM_API_URL"), env.MustGet("FORUM_API_KEY")),
		fallback,
		recorder,
		log,
	)

	var producer *kafkaclient.Producer
	if resultsTopic := env.Get("KAFKA_RESULTS_TOPIC", ""); resultsTopic != "" {
		producer = kafkaclient.NewProducer(resultsTopic, kafkaBroker, log)
		defer producer.Close()
	}

	consumer.Start(ctx)
	placeFeed := feed.New(consumer, store.GetPlace, log)

	pipeline := enrich.NewPipeline(log, enrich.NewStage(geocodeStep(geocode.NewClient())))

	in := make(chan *models.Place)
	go func() {
		defer close(in)
		for item := range placeFeed.Items(ctx) {
			select {
			case in <- item.Data:
			case <-ctx.Done():
				return
			}
		}
	}()

	// Token bucket over outbound forum posts; the hosted API is shared
	// infrastructure and a bulk import should not hammer it.
	perMinute := env.GetInt("ANNOUNCE_RATE_PER_MIN", 30)
	limiter := rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), 1)

	for place := range pipeline.Run(ctx, in) {
		if err := limiter.Wait(ctx); err != nil {
			break
		}
		res := poster.Announce(ctx, *place)

		if producer != nil {
			evt := outcomeEvent{
				PlaceID: place.ID,
				Name:    place.Name,
				Outcome: res.Outcome.String(),
				PostID:  res.PostID,
				At:      time.Now(),
			}
			if err := producer.Publish(ctx, place.ID, evt); err != nil {
				log.Warn().Err(err).Str("place_id", place.ID).Msg("failed to publish outcome event")
			}
		}
	}

	consumer.Stop()
	log.Info().Msg("announcer exiting")
}
