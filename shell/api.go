package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/scrabblesolver/solver/anagrammer"
	"github.com/scrabblesolver/solver/bot"
	"github.com/scrabblesolver/solver/config"
	"github.com/scrabblesolver/solver/lexicon"
)

// Racks longer than this still solve; we just let the user know.
const maxRackInput = 15

var errNoLexicon = errors.New("no lexicon loaded; use `lexicon <name>` or `set lexicon <name>`")

func (sc *ShellController) words() ([]string, error) {
	if sc.lexicon == nil || sc.lexicon.Len() == 0 {
		return nil, errNoLexicon
	}
	return sc.lexicon.Words, nil
}

// queryFromCmd turns `solve` arguments into a query. Positional arguments
// are joined together so that `solve AE INST ??` works too.
func (sc *ShellController) queryFromCmd(cmd *shellcmd) (anagrammer.Query, error) {
	letters := strings.Join(cmd.args, "")
	if letters == "" {
		return anagrammer.Query{}, errors.New("usage: solve <letters> [-prefix P] [-suffix S] [-contains C] [-sort score|length|none]")
	}
	if len(letters) > maxRackInput {
		log.Warn().Int("length", len(letters)).Msg("rack-longer-than-usual")
	}
	q := anagrammer.Query{
		Letters: letters,
		Constraints: anagrammer.Constraints{
			Prefix:   cmd.options.String("prefix"),
			Suffix:   cmd.options.String("suffix"),
			Contains: cmd.options.String("contains"),
		},
		Sort: sc.options.sort,
	}
	if s, ok := cmd.options["sort"]; ok && len(s) > 0 {
		k, err := anagrammer.ParseSortKey(s[0])
		if err != nil {
			return anagrammer.Query{}, err
		}
		q.Sort = k
	}
	return q, nil
}

func (sc *ShellController) displayResult(res *anagrammer.Result) string {
	shown := res.Top(sc.options.maxResults)
	out := shown.String()
	if shown.Len() < res.Len() {
		out += fmt.Sprintf("\n... showing %d of %d matches", shown.Len(), res.Len())
	}
	return out
}

func (sc *ShellController) solve(cmd *shellcmd) (*Response, error) {
	words, err := sc.words()
	if err != nil {
		return nil, err
	}
	q, err := sc.queryFromCmd(cmd)
	if err != nil {
		return nil, err
	}
	res, err := anagrammer.SolveQuery(words, q)
	if err != nil {
		return nil, err
	}
	sc.lastResult = res
	return msg(sc.displayResult(res)), nil
}

// remote sends the query to a solve service over NATS instead of solving
// it here. The service uses its own copy of the current lexicon.
func (sc *ShellController) remote(cmd *shellcmd) (*Response, error) {
	q, err := sc.queryFromCmd(cmd)
	if err != nil {
		return nil, err
	}
	ctx := context.Background()
	if sc.remoteClient == nil {
		nc, err := bot.Connect(ctx, sc.config.GetString(config.ConfigNatsURL))
		if err != nil {
			return nil, err
		}
		sc.remoteClient = bot.NewClient(nc, sc.config.GetString(config.ConfigNatsSubject))
	}
	res, err := sc.remoteClient.RequestSolve(ctx, &bot.SolveRequest{
		Letters:  q.Letters,
		Prefix:   q.Constraints.Prefix,
		Suffix:   q.Constraints.Suffix,
		Contains: q.Constraints.Contains,
		Sort:     q.Sort.String(),
		Lexicon:  sc.options.lexicon,
	})
	if err != nil {
		return nil, err
	}
	sc.lastResult = res
	return msg(sc.displayResult(res)), nil
}

// last shows the previous result again, optionally with more of it.
func (sc *ShellController) last(cmd *shellcmd) (*Response, error) {
	if sc.lastResult == nil {
		return nil, errors.New("nothing solved yet")
	}
	n, err := cmd.options.IntDefault("n", 0)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return msg(sc.lastResult.Top(n).String()), nil
	}
	return msg(sc.displayResult(sc.lastResult)), nil
}

func (sc *ShellController) set(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return msg(sc.options.ToDisplayText()), nil
	}
	opt := cmd.args[0]
	if len(cmd.args) == 1 {
		_, val := sc.options.Show(opt)
		return msg(val), nil
	}
	values := cmd.args[1:]
	ret, err := sc.Set(opt, values)
	if err != nil {
		return nil, err
	}
	return msg("set " + opt + " to " + ret), nil
}

func (sc *ShellController) lexiconCmd(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) > 0 {
		if _, err := sc.Set("lexicon", cmd.args); err != nil {
			return nil, err
		}
	}
	if sc.lexicon == nil {
		return nil, errNoLexicon
	}
	out := fmt.Sprintf("lexicon %s: %d words, checksum %016x",
		sc.lexicon.Name, sc.lexicon.Len(), sc.lexicon.Checksum())
	if len(cmd.args) == 0 {
		names, err := lexicon.Available(sc.config)
		if err != nil {
			log.Warn().Err(err).Msg("could-not-list-lexica")
		} else if len(names) > 0 {
			out += "\navailable: " + strings.Join(names, ", ")
		}
	}
	return msg(out), nil
}

// batch solves every line of a file, each line holding the arguments of a
// `solve` command. The queries run in parallel.
func (sc *ShellController) batch(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("usage: batch <file> [-threads n]")
	}
	words, err := sc.words()
	if err != nil {
		return nil, err
	}
	threads, err := cmd.options.IntDefault("threads", 0)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(cmd.args[0])
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	var queries []anagrammer.Query
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		qcmd, err := extractFields("solve " + line)
		if err != nil {
			return nil, fmt.Errorf("line %q: %w", line, err)
		}
		q, err := sc.queryFromCmd(qcmd)
		if err != nil {
			return nil, fmt.Errorf("line %q: %w", line, err)
		}
		lines = append(lines, line)
		queries = append(queries, q)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	results, err := anagrammer.SolveMany(context.Background(), words, queries, threads)
	if err != nil {
		return nil, err
	}
	log.Info().Int("queries", len(queries)).
		Int("matches", lo.SumBy(results, func(r *anagrammer.Result) int { return r.Len() })).
		Msg("batch-solved")

	blocks := lo.Map(results, func(r *anagrammer.Result, i int) string {
		return "> " + lines[i] + "\n" + sc.displayResult(r)
	})
	return msg(strings.Join(blocks, "\n\n")), nil
}

func (sc *ShellController) help(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		resp, err := usage("standard")
		if err != nil {
			return nil, err
		}
		if sc.gitVersion != "" {
			resp.message += "\n\nsolver " + sc.gitVersion
		}
		return resp, nil
	}
	return usageTopic(cmd.args[0])
}
