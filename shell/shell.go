package shell

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/scrabblesolver/solver/anagrammer"
	"github.com/scrabblesolver/solver/bot"
	"github.com/scrabblesolver/solver/config"
	"github.com/scrabblesolver/solver/lexicon"
)

var (
	errNoData            = errors.New("no data in this line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
	errQuit              = errors.New("sending quit signal")
)

type ShellController struct {
	l   *readline.Instance
	out io.Writer

	config     *config.Config
	gitVersion string

	options    *ShellOptions
	lexicon    *lexicon.Lexicon
	lastResult *anagrammer.Result

	// remoteClient is connected on the first `remote` command.
	remoteClient *bot.Client
}

type shellcmd struct {
	cmd     string
	args    []string
	options CmdOptions
}

type Response struct {
	message string
}

func msg(message string) *Response {
	return &Response{message: message}
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func NewShellController(cfg *config.Config, gitVersion string) *ShellController {
	prompt := "\033[31msolver>\033[0m "
	sc := newController(cfg, nil)
	sc.gitVersion = gitVersion

	l, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     filepath.Join(os.TempDir(), "solver-readline.tmp"),
		AutoComplete:    NewShellCompleter(sc),
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	sc.l = l
	sc.out = l.Stderr()
	return sc
}

// newController sets up a controller without a terminal. Output goes to w.
func newController(cfg *config.Config, w io.Writer) *ShellController {
	sc := &ShellController{
		out:     w,
		config:  cfg,
		options: NewShellOptions(cfg),
	}
	if name := sc.options.lexicon; name != "" {
		lex, err := lexicon.Get(cfg, name)
		if err != nil {
			log.Warn().Err(err).Str("lexicon", name).Msg("could-not-load-default-lexicon")
		} else {
			sc.lexicon = lex
		}
	}
	return sc
}

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.out)
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

// extractFields splits a command line into the command, its positional
// arguments and its `-option value` pairs. Quoting follows shell rules.
func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := fields[0]
	var args []string
	options := CmdOptions{}

	for idx := 1; idx < len(fields); idx++ {
		if strings.HasPrefix(fields[idx], "-") && len(fields[idx]) > 1 {
			if idx == len(fields)-1 {
				return nil, errWrongOptionSyntax
			}
			key := fields[idx][1:]
			options[key] = append(options[key], fields[idx+1])
			idx++
			continue
		}
		args = append(args, fields[idx])
	}
	return &shellcmd{
		cmd:     cmd,
		args:    args,
		options: options,
	}, nil
}

func (sc *ShellController) standardModeSwitch(line string, sig chan os.Signal) (*Response, error) {
	cmd, err := extractFields(line)
	if err != nil {
		return nil, err
	}
	switch cmd.cmd {
	case "exit", "bye":
		if sig != nil {
			sig <- syscall.SIGINT
		}
		return nil, errQuit
	case "help":
		return sc.help(cmd)
	case "solve", "s":
		return sc.solve(cmd)
	case "remote":
		return sc.remote(cmd)
	case "set":
		return sc.set(cmd)
	case "lexicon", "lex":
		return sc.lexiconCmd(cmd)
	case "last":
		return sc.last(cmd)
	case "batch":
		return sc.batch(cmd)
	case "script":
		return sc.script(cmd)
	case "clear":
		sc.lastResult = nil
		return msg("cleared"), nil
	default:
		log.Debug().Msgf("you said: %v", line)
		return nil, errors.New("unrecognized command: " + cmd.cmd)
	}
}

// Execute runs a single command line, as when arguments are given on the
// command line instead of an interactive session.
func (sc *ShellController) Execute(sig chan os.Signal, line string) {
	resp, err := sc.standardModeSwitch(line, sig)
	if err != nil {
		if err != errQuit {
			sc.showError(err)
		}
		return
	}
	if resp != nil && resp.message != "" {
		sc.showMessage(resp.message)
	}
}

func (sc *ShellController) Loop(sig chan os.Signal) {

	defer sc.l.Close()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			} else {
				continue
			}
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		resp, err := sc.standardModeSwitch(line, sig)
		if err == errQuit {
			break
		}
		if err != nil {
			sc.showError(err)
			continue
		}
		if resp != nil && resp.message != "" {
			sc.showMessage(resp.message)
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}

// Cleanup releases anything held by the shell.
func (sc *ShellController) Cleanup() {
	log.Debug().Msg("cleaning up shell")
	sc.lastResult = nil
	if sc.remoteClient != nil {
		sc.remoteClient.Close()
		sc.remoteClient = nil
	}
}
