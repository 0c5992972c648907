package shell

import (
	"strings"

	"github.com/kballard/go-shellquote"
)

// ShellCompleter provides context-aware autocomplete for shell commands
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

// CommandMetadata holds autocomplete information for a command
type CommandMetadata struct {
	Options []string // Available options for this command (e.g., "-prefix")
	Args    []string // Possible argument values (for non-option arguments)
}

var solveMetadata = CommandMetadata{
	Options: []string{"-prefix", "-suffix", "-contains", "-sort"},
}

var commandMetadata = map[string]CommandMetadata{
	"solve":  solveMetadata,
	"s":      solveMetadata,
	"remote": solveMetadata,
	"set": {
		Args: optionNames,
	},
	"last": {
		Options: []string{"-n"},
	},
	"batch": {
		Options: []string{"-threads"},
	},
	"help": {
		Args: []string{"solve", "remote", "set", "lexicon", "batch", "script"},
	},
}

var commandNames = []string{
	"solve", "s", "remote", "last", "clear", "lexicon", "set", "batch", "script",
	"help", "exit",
}

var sortValues = []string{"score", "length", "none"}

// Do implements the readline.AutoComplete interface
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])

	fields, err := shellquote.Split(text)
	if err != nil {
		// An unterminated quote, most likely.
		fields = strings.Fields(text)
	}
	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string

	if len(fields) == 0 || (len(fields) == 1 && !endsWithSpace) {
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = commandNames
	} else {
		cmdName := fields[0]

		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}

		var lastCompleteField string
		if endsWithSpace {
			lastCompleteField = fields[len(fields)-1]
		} else if len(fields) > 1 {
			lastCompleteField = fields[len(fields)-2]
		}

		switch {
		case lastCompleteField == "-sort":
			completions = sortValues
		case cmdName == "set" && lastCompleteField == "sort":
			completions = sortValues
		case cmdName == "set" && lastCompleteField == "lexicon" && c.sc.lexicon != nil:
			completions = []string{c.sc.lexicon.Name}
		}

		if completions == nil {
			if metadata, exists := commandMetadata[cmdName]; exists {
				if strings.HasPrefix(prefix, "-") || len(metadata.Args) == 0 {
					completions = metadata.Options
				} else if len(fields) <= 2 {
					completions = metadata.Args
				}
			}
		}
	}

	var matches [][]rune
	for _, completion := range completions {
		if strings.HasPrefix(completion, prefix) {
			matches = append(matches, []rune(completion[len(prefix):]))
		}
	}

	return matches, len(prefix)
}
