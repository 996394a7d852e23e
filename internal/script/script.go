// Package script loads and calls Lua scripts with the extended standard library preloaded.
package script

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/dashgrab/dashgrab/filesystem"
	libs "github.com/metafates/mangal-lua-libs"
	"github.com/samber/lo"
	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"
)

var protoCache sync.Map

// NewState creates a state with the extended libraries and the http_tls module registered.
func NewState() *lua.LState {
	L := lua.NewState()
	libs.Preload(L)
	registerHTTP(L)
	return L
}

// Load runs the script at path in L. Compiled prototypes are cached per path.
func Load(L *lua.LState, path string) error {
	proto, err := compile(path)
	if err != nil {
		return err
	}

	L.Push(L.NewFunctionFromProto(proto))
	return L.PCall(0, lua.MultRet, nil)
}

func compile(path string) (*lua.FunctionProto, error) {
	if cached, ok := protoCache.Load(path); ok {
		return cached.(*lua.FunctionProto), nil
	}

	source, err := filesystem.API().ReadFile(path)
	if err != nil {
		return nil, err
	}

	chunk, err := parse.Parse(bytes.NewReader(source), path)
	if err != nil {
		return nil, err
	}

	proto, err := lua.Compile(chunk, path)
	if err != nil {
		return nil, err
	}

	protoCache.Store(path, proto)
	return proto, nil
}

// Forget drops the cached prototype of path, so the next Load recompiles it.
func Forget(path string) {
	protoCache.Delete(path)
}

// Call invokes the global function fn and checks the type of its single return value.
func Call(L *lua.LState, fn string, retType lua.LValueType, args ...lua.LValue) (lua.LValue, error) {
	luaFn := L.GetGlobal(fn)
	if luaFn.Type() != lua.LTFunction {
		return nil, fmt.Errorf("function %s is not defined", fn)
	}

	err := L.CallByParam(lua.P{
		Fn:      luaFn,
		NRet:    1,
		Protect: true,
	}, args...)
	if err != nil {
		return nil, err
	}

	ret := L.Get(-1)
	L.Pop(1)

	if ret.Type() != retType {
		return nil, fmt.Errorf("%s returned %s, expected %s", fn, ret.Type(), retType)
	}

	return ret, nil
}

// GetString reads a string field, empty when absent or of another type.
func GetString(table *lua.LTable, key string) string {
	val := table.RawGetString(key)
	if val.Type() == lua.LTString {
		return val.String()
	}
	return ""
}

// GetStringList reads either a comma separated string or an array of strings.
func GetStringList(table *lua.LTable, key string) []string {
	val := table.RawGetString(key)
	switch v := val.(type) {
	case lua.LString:
		return lo.Map(strings.Split(string(v), ","), func(s string, _ int) string {
			return strings.TrimSpace(s)
		})
	case *lua.LTable:
		var list []string
		v.ForEach(func(_, item lua.LValue) {
			if item.Type() == lua.LTString {
				list = append(list, item.String())
			}
		})
		return list
	}
	return nil
}
