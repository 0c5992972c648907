package shell

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/scrabblesolver/solver/anagrammer"
	"github.com/scrabblesolver/solver/config"
	"github.com/scrabblesolver/solver/lexicon"
)

type CmdOptions map[string][]string

func (c CmdOptions) String(key string) string {
	v := c[key]
	if len(v) > 0 {
		return v[0]
	}
	return ""
}

func (c CmdOptions) IntDefault(key string, defaultI int) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return defaultI, nil
	}
	return strconv.Atoi(v[0])
}

// ShellOptions are the per-session settings changed with `set`.
type ShellOptions struct {
	lexicon    string
	sort       anagrammer.SortKey
	maxResults int
}

func NewShellOptions(cfg *config.Config) *ShellOptions {
	sort, err := anagrammer.ParseSortKey(cfg.GetString(config.ConfigDefaultSort))
	if err != nil {
		log.Warn().Err(err).Msg("bad default sort; sorting by score")
		sort = anagrammer.SortByScore
	}
	return &ShellOptions{
		lexicon:    cfg.GetString(config.ConfigDefaultLexicon),
		sort:       sort,
		maxResults: cfg.GetInt(config.ConfigMaxResults),
	}
}

var optionNames = []string{"lexicon", "sort", "maxresults"}

// Show returns the value of a single option.
func (opts *ShellOptions) Show(key string) (bool, string) {
	switch key {
	case "lexicon":
		return true, opts.lexicon
	case "sort":
		return true, opts.sort.String()
	case "maxresults":
		return true, strconv.Itoa(opts.maxResults)
	}
	return false, "No such option: " + key
}

func (opts *ShellOptions) ToDisplayText() string {
	var sb strings.Builder
	sb.WriteString("Settings:\n")
	for _, k := range optionNames {
		_, v := opts.Show(k)
		fmt.Fprintf(&sb, "  %-12s%s\n", k+":", v)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// Set changes an option and returns its new display value.
func (sc *ShellController) Set(key string, args []string) (string, error) {
	if len(args) == 0 {
		return "", errors.New("need a value for " + key)
	}
	val := args[0]
	switch key {
	case "lexicon":
		lex, err := lexicon.Get(sc.config, val)
		if err != nil {
			return "", err
		}
		sc.lexicon = lex
		sc.options.lexicon = val
		sc.lastResult = nil
		return val, nil
	case "sort":
		k, err := anagrammer.ParseSortKey(val)
		if err != nil {
			return "", err
		}
		sc.options.sort = k
		return k.String(), nil
	case "maxresults":
		n, err := strconv.Atoi(val)
		if err != nil {
			return "", err
		}
		if n < 0 {
			return "", errors.New("maxresults must not be negative")
		}
		sc.options.maxResults = n
		return strconv.Itoa(n), nil
	}
	return "", errors.New("option " + key + " not recognized")
}
