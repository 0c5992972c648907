package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/scrabblesolver/solver/anagrammer"
	"github.com/scrabblesolver/solver/config"
	"github.com/scrabblesolver/solver/lexicon"
)

// SolveRequest is what callers send to the solve service.
type SolveRequest struct {
	Letters  string `json:"letters"`
	Prefix   string `json:"prefix,omitempty"`
	Suffix   string `json:"suffix,omitempty"`
	Contains string `json:"contains,omitempty"`
	Sort     string `json:"sort,omitempty"`
	Lexicon  string `json:"lexicon,omitempty"`
	// ReplySubject is only used by the lambda, which publishes its result
	// there as well as returning it.
	ReplySubject string `json:"reply_subject,omitempty"`
}

type SolveResponse struct {
	Matches   []anagrammer.Match `json:"matches"`
	NoResults bool               `json:"no_results"`
	Sort      string             `json:"sort,omitempty"`
	Lexicon   string             `json:"lexicon,omitempty"`
	Error     string             `json:"error,omitempty"`
}

// Result converts a successful response back into a Result.
func (r *SolveResponse) Result() (*anagrammer.Result, error) {
	sort, err := anagrammer.ParseSortKey(r.Sort)
	if err != nil {
		return nil, err
	}
	return &anagrammer.Result{Matches: r.Matches, Sort: sort}, nil
}

type Bot struct {
	config *config.Config
}

func NewBot(cfg *config.Config) *Bot {
	return &Bot{config: cfg}
}

func errorResponse(message string, err error) *SolveResponse {
	msg := message
	if err != nil {
		msg = fmt.Sprintf("%s: %s", msg, err.Error())
	}
	return &SolveResponse{Matches: []anagrammer.Match{}, Error: msg}
}

// Query builds the solver query a request describes. An empty sort falls
// back to the configured default.
func (bot *Bot) Query(req *SolveRequest) (anagrammer.Query, error) {
	sortName := req.Sort
	if strings.TrimSpace(sortName) == "" {
		sortName = bot.config.GetString(config.ConfigDefaultSort)
	}
	sort, err := anagrammer.ParseSortKey(sortName)
	if err != nil {
		return anagrammer.Query{}, err
	}
	return anagrammer.Query{
		Letters: req.Letters,
		Constraints: anagrammer.Constraints{
			Prefix:   req.Prefix,
			Suffix:   req.Suffix,
			Contains: req.Contains,
		},
		Sort: sort,
	}, nil
}

// Solve answers a single request. The lexicon comes from the global cache,
// so only the first request for a lexicon pays for loading it.
func (bot *Bot) Solve(req *SolveRequest) (*anagrammer.Result, *lexicon.Lexicon, error) {
	name := req.Lexicon
	if name == "" {
		name = bot.config.GetString(config.ConfigDefaultLexicon)
	}
	lex, err := lexicon.Get(bot.config, name)
	if err != nil {
		return nil, nil, err
	}
	q, err := bot.Query(req)
	if err != nil {
		return nil, nil, err
	}
	res, err := anagrammer.SolveQuery(lex.Words, q)
	if err != nil {
		return nil, nil, err
	}
	return res, lex, nil
}

// Answer solves req and packages the outcome the way the service sends it.
// The full Result is returned as well; the response holds at most
// max-results matches.
func (bot *Bot) Answer(req *SolveRequest) (*SolveResponse, *anagrammer.Result, error) {
	res, lex, err := bot.Solve(req)
	if err != nil {
		return nil, nil, err
	}
	matches := res.Top(bot.config.GetInt(config.ConfigMaxResults)).Matches
	if matches == nil {
		matches = []anagrammer.Match{}
	}
	log.Info().Str("letters", req.Letters).Str("lexicon", lex.Name).
		Int("matches", res.Len()).Msg("solved-request")
	return &SolveResponse{
		Matches:   matches,
		NoResults: res.Empty(),
		Sort:      res.Sort.String(),
		Lexicon:   lex.Name,
	}, res, nil
}

func (bot *Bot) handle(data []byte) *SolveResponse {
	req := &SolveRequest{}
	if err := json.Unmarshal(data, req); err != nil {
		return errorResponse("Could not parse request", err)
	}
	resp, _, err := bot.Answer(req)
	if err != nil {
		return errorResponse("Could not solve", err)
	}
	return resp
}

// Handle decodes a request and returns the encoded response. It never
// fails; problems are reported in the response's error field.
func (bot *Bot) Handle(data []byte) []byte {
	resp := bot.handle(data)
	out, err := json.Marshal(resp)
	if err != nil {
		// Should never happen, ideally, but we need to do something sensible here.
		return []byte(`{"matches":[],"no_results":false,"error":"could not encode response"}`)
	}
	return out
}

// Main serves solve requests on subject until ctx is cancelled.
func Main(ctx context.Context, subject string, bot *Bot) error {
	nc, err := Connect(ctx, bot.config.GetString(config.ConfigNatsURL))
	if err != nil {
		return err
	}
	defer nc.Close()

	sub, err := nc.Subscribe(subject, func(m *nats.Msg) {
		log.Debug().Msgf("RECV: %d bytes", len(m.Data))
		if err := m.Respond(bot.Handle(m.Data)); err != nil {
			log.Err(err).Msg("could-not-respond")
		}
	})
	if err != nil {
		return err
	}
	if err := nc.Flush(); err != nil {
		return err
	}
	if err := nc.LastError(); err != nil {
		return err
	}
	log.Info().Msgf("Listening on [%s]", subject)

	<-ctx.Done()
	log.Info().Msg("draining subscription")
	if err := sub.Drain(); err != nil {
		log.Err(err).Msg("drain-failed")
	}
	return nil
}
