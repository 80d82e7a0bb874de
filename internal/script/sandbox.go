package script

import (
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/keychord/internal/input/action"
	"github.com/dshills/keychord/internal/logging"
)

// unsafeGlobals are removed from the base library.
var unsafeGlobals = []string{"dofile", "loadfile", "load", "loadstring", "module", "require"}

// newState creates a sandboxed state exposing a and a log function.
func newState(logger *logging.Logger, a action.Action) *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})

	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range unsafeGlobals {
		L.SetGlobal(name, lua.LNil)
	}

	logFn := L.NewFunction(func(L *lua.LState) int {
		parts := make([]string, 0, L.GetTop())
		for i := 1; i <= L.GetTop(); i++ {
			parts = append(parts, L.ToStringMeta(L.Get(i)).String())
		}
		logger.Info("%s", strings.Join(parts, " "))
		return 0
	})
	L.SetGlobal("log", logFn)
	L.SetGlobal("print", logFn)

	L.SetGlobal("action", actionTable(L, a))
	return L
}

// actionTable builds a read-only table describing a.
func actionTable(L *lua.LState, a action.Action) *lua.LTable {
	fields := L.NewTable()
	fields.RawSetString("id", lua.LString(a.ID))
	fields.RawSetString("name", lua.LString(a.Label()))
	fields.RawSetString("shortcut", lua.LString(a.Serialized()))
	fields.RawSetString("section", lua.LString(a.Section))
	fields.RawSetString("description", lua.LString(a.Description))

	proxy := L.NewTable()
	meta := L.NewTable()
	meta.RawSetString("__index", fields)
	meta.RawSetString("__newindex", L.NewFunction(func(L *lua.LState) int {
		L.RaiseError("action is read-only")
		return 0
	}))
	L.SetMetatable(proxy, meta)
	return proxy
}
