package shell

import (
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"
	lua "github.com/yuin/gopher-lua"
	luajson "layeh.com/gopher-json"

	"github.com/scrabblesolver/solver/anagrammer"
)

func getShell(L *lua.LState) *ShellController {
	shell := L.GetGlobal("solver_shell")
	ud, ok := shell.(*lua.LUserData)
	if !ok {
		panic("luserdata not right type")
	}
	sc, ok := ud.Value.(*ShellController)
	if !ok {
		panic("shellcontroller not right type")
	}
	return sc
}

func pushResponse(L *lua.LState, name string, r *Response, err error) int {
	if err != nil {
		log.Err(err).Msg("error-executing-" + name)
		L.Push(lua.LString("ERROR: " + err.Error()))
		return 1
	}
	L.Push(lua.LString(r.message))
	// return number of results pushed to stack.
	return 1
}

func Solve(L *lua.LState) int {
	lv := L.CheckString(1)
	sc := getShell(L)
	cmd, err := extractFields("solve " + lv)
	if err != nil {
		return pushResponse(L, "solve", nil, err)
	}
	r, err := sc.solve(cmd)
	return pushResponse(L, "solve", r, err)
}

func SolveJSON(L *lua.LState) int {
	lv := L.CheckString(1)
	sc := getShell(L)
	res, err := func() (*anagrammer.Result, error) {
		cmd, err := extractFields("solve " + lv)
		if err != nil {
			return nil, err
		}
		words, err := sc.words()
		if err != nil {
			return nil, err
		}
		q, err := sc.queryFromCmd(cmd)
		if err != nil {
			return nil, err
		}
		return anagrammer.SolveQuery(words, q)
	}()
	if err != nil {
		return pushResponse(L, "solve-json", nil, err)
	}
	sc.lastResult = res
	data, err := json.Marshal(res)
	if err != nil {
		return pushResponse(L, "solve-json", nil, err)
	}
	return pushResponse(L, "solve-json", msg(string(data)), nil)
}

func Set(L *lua.LState) int {
	opt := L.CheckString(1)
	val := L.CheckString(2)
	sc := getShell(L)
	r, err := sc.set(&shellcmd{
		cmd:     "set",
		args:    []string{opt, val},
		options: CmdOptions{},
	})
	return pushResponse(L, "set", r, err)
}

func Lexicon(L *lua.LState) int {
	name := L.OptString(1, "")
	sc := getShell(L)
	cmd := &shellcmd{cmd: "lexicon", options: CmdOptions{}}
	if name != "" {
		cmd.args = []string{name}
	}
	r, err := sc.lexiconCmd(cmd)
	return pushResponse(L, "lexicon", r, err)
}

func (sc *ShellController) script(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return nil, errors.New("need arguments for script")
	}

	filepath := cmd.args[0]

	L := lua.NewState()
	defer L.Close()
	luajson.Preload(L)

	lsc := L.NewUserData()
	lsc.Value = sc

	L.SetGlobal("solver_shell", lsc)
	L.SetGlobal("solver_solve", L.NewFunction(Solve))
	L.SetGlobal("solver_solve_json", L.NewFunction(SolveJSON))
	L.SetGlobal("solver_set", L.NewFunction(Set))
	L.SetGlobal("solver_lexicon", L.NewFunction(Lexicon))

	if err := L.DoFile(filepath); err != nil {
		log.Err(err).Msg("there was a error")
		return nil, err
	}
	return nil, nil
}
