package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/scrabblesolver/solver/bot"
	"github.com/scrabblesolver/solver/config"
)

var cfg *config.Config
var nc *nats.Conn

// HandleRequest solves the request in the event and returns the report
// text. If the event names a reply subject, the same SolveResponse the solve
// service sends is also published there.
func HandleRequest(ctx context.Context, evt bot.SolveRequest) (string, error) {
	logger := log.With().
		Str("letters", evt.Letters).
		Str("lexicon", evt.Lexicon).
		Logger()

	b := bot.NewBot(cfg)
	resp, res, err := b.Answer(&evt)
	if err != nil {
		return "", err
	}
	logger.Info().Int("matches", res.Len()).Msg("solved")

	if evt.ReplySubject != "" && nc != nil {
		data, err := json.Marshal(resp)
		if err != nil {
			return "", err
		}
		logger.Info().Msg("sending-via-nats")
		err = retry.Do(
			func() error {
				// We're just waiting for an acknowledgement. The actual
				// data doesn't matter.
				_, err := nc.RequestWithContext(ctx, evt.ReplySubject, data)
				return err
			},
			retry.Context(ctx),
			retry.Attempts(bot.DefaultAttempts),
			retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
				logger.Err(err).Uint("n", n).
					Msg("did-not-receive-ack-try-again")
				return retry.BackOffDelay(n, err, config)
			}),
		)
		if err != nil {
			logger.Err(err).Msg("reply-failed")
		}
	}
	logger.Info().Msg("exiting-fn")
	return res.String(), nil
}

func main() {
	ex, err := os.Executable()
	if err != nil {
		panic(err)
	}
	exPath := filepath.Dir(ex)

	cfg = config.DefaultConfig()
	if err := cfg.Load(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("could-not-load-config")
	}
	cfg.AdjustRelativePaths(exPath)
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	nc, err = bot.Connect(context.Background(), cfg.GetString(config.ConfigNatsURL))
	if err != nil {
		// Replies over NATS are optional; solving still works.
		log.Warn().AnErr("natsConnectErr", err).Msg("no-nats-connection")
	}

	lambda.Start(HandleRequest)
}
