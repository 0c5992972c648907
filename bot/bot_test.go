package bot

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/scrabblesolver/solver/anagrammer"
	"github.com/scrabblesolver/solver/cache"
	"github.com/scrabblesolver/solver/config"
	"github.com/scrabblesolver/solver/lexicon"
	"github.com/scrabblesolver/solver/testhelpers"
)

func newTestBot(t *testing.T) *Bot {
	t.Helper()
	cache.Clear()
	lexicon.Set(testhelpers.SmallLexicon())
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigDefaultLexicon, "SMALL")
	cfg.Set(config.ConfigLexiconPath, t.TempDir())
	return NewBot(cfg)
}

func handleJSON(t *testing.T, bot *Bot, req string) *SolveResponse {
	t.Helper()
	resp := &SolveResponse{}
	if err := json.Unmarshal(bot.Handle([]byte(req)), resp); err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestHandle(t *testing.T) {
	is := is.New(t)
	bot := newTestBot(t)

	resp := handleJSON(t, bot, `{"letters":"CAT"}`)
	is.Equal(resp.Error, "")
	is.Equal(resp.Matches, []anagrammer.Match{{Word: "AT", Score: 2}, {Word: "TA", Score: 2}, {Word: "ACT", Score: 5}, {Word: "CAT", Score: 5}})
	is.Equal(resp.NoResults, false)
	is.Equal(resp.Lexicon, "SMALL")
	is.Equal(resp.Sort, "score")

	resp = handleJSON(t, bot, `{"letters":"TACS","prefix":"ca","sort":"length"}`)
	is.Equal(resp.Matches, []anagrammer.Match{{Word: "CAT", Score: 5}, {Word: "CATS", Score: 6}})
	is.Equal(resp.Sort, "length")

	res, err := resp.Result()
	is.NoErr(err)
	is.Equal(res.String(), "CAT (5)\nCATS (6)")
}

func TestHandleNoResults(t *testing.T) {
	is := is.New(t)
	bot := newTestBot(t)
	raw := string(bot.Handle([]byte(`{"letters":"Z"}`)))
	is.Equal(raw, `{"matches":[],"no_results":true,"sort":"score","lexicon":"SMALL"}`)
}

func TestHandleMaxResults(t *testing.T) {
	is := is.New(t)
	bot := newTestBot(t)
	bot.config.Set(config.ConfigMaxResults, 1)
	resp := handleJSON(t, bot, `{"letters":"CAT"}`)
	is.Equal(resp.Matches, []anagrammer.Match{{Word: "AT", Score: 2}})
}

func TestHandleErrors(t *testing.T) {
	is := is.New(t)
	bot := newTestBot(t)

	resp := handleJSON(t, bot, `{"letters":`)
	is.True(strings.HasPrefix(resp.Error, "Could not parse request: "))
	is.Equal(resp.Matches, []anagrammer.Match{})

	resp = handleJSON(t, bot, `{"letters":"CAT","sort":"sideways"}`)
	is.Equal(resp.Error, "Could not solve: "+anagrammer.ErrUnknownSortKey.Error())

	resp = handleJSON(t, bot, `{"letters":"CAT","lexicon":"NOPE"}`)
	is.True(strings.HasPrefix(resp.Error, "Could not solve: lexicon NOPE not found"))
}

func TestDecodeResponse(t *testing.T) {
	is := is.New(t)
	_, err := decodeResponse([]byte(`{"matches":[],"error":"Could not solve: boom"}`))
	is.Equal(err.Error(), "solver returned: Could not solve: boom")

	_, err = decodeResponse([]byte(`not json`))
	is.True(err != nil)

	resp, err := decodeResponse([]byte(`{"matches":[{"word":"QI","score":11}],"sort":"none"}`))
	is.NoErr(err)
	res, err := resp.Result()
	is.NoErr(err)
	is.Equal(res.Sort, anagrammer.SortNone)
	is.Equal(res.Words(), []string{"QI"})
}
