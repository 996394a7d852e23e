package asset

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/dashgrab/dashgrab/constant"
	"github.com/dashgrab/dashgrab/filesystem"
	"github.com/dashgrab/dashgrab/internal/script"
	"github.com/dashgrab/dashgrab/media"
	"github.com/dashgrab/dashgrab/util"
	lua "github.com/yuin/gopher-lua"
)

// Lua is an asset provider backed by a script defining GetAssets(items).
type Lua struct {
	name        string
	description string
	path        string

	mu    sync.Mutex
	state *lua.LState
}

// LoadLua compiles and runs the script at path and checks it defines GetAssets.
func LoadLua(path string) (*Lua, error) {
	state := script.NewState()

	if err := script.Load(state, path); err != nil {
		state.Close()
		return nil, err
	}

	name := util.FileStem(path)
	if state.GetGlobal(constant.GetAssetsFn).Type() != lua.LTFunction {
		state.Close()
		return nil, fmt.Errorf("function %s is required but not defined in %s", constant.GetAssetsFn, name)
	}

	return &Lua{
		name:        name,
		description: header(path, "description"),
		path:        path,
		state:       state,
	}, nil
}

func (l *Lua) Name() string { return l.name }

func (l *Lua) Description() string {
	if l.description == "" {
		return "Lua script " + l.path
	}
	return l.description
}

// Assets calls GetAssets. A state is single threaded, so calls are serialized.
func (l *Lua) Assets(ctx context.Context, items []*media.ResolvedMedia) ([]media.Asset, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.state.SetContext(ctx)
	defer l.state.RemoveContext()

	ret, err := script.Call(l.state, constant.GetAssetsFn, lua.LTTable, itemsToTable(l.state, items))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l.name, err)
	}

	var (
		assets []media.Asset
		errs   []error
	)
	ret.(*lua.LTable).ForEach(func(k, v lua.LValue) {
		tbl, ok := v.(*lua.LTable)
		if k.Type() != lua.LTNumber || !ok {
			return
		}

		a, err := assetFromTable(tbl)
		if err != nil {
			errs = append(errs, err)
			return
		}
		assets = append(assets, a)
	})

	if len(errs) > 0 {
		return nil, fmt.Errorf("%s: %w", l.name, errs[0])
	}

	return assets, nil
}

func assetFromTable(tbl *lua.LTable) (media.Asset, error) {
	a := media.Asset{
		Name: script.GetString(tbl, "name"),
		URL:  script.GetString(tbl, "url"),
		Data: []byte(script.GetString(tbl, "data")),
	}

	if a.Name == "" {
		return media.Asset{}, fmt.Errorf("asset must have a name")
	}
	if a.URL == "" && len(a.Data) == 0 {
		return media.Asset{}, fmt.Errorf("asset %s must have url or data", a.Name)
	}
	if len(a.Data) == 0 {
		a.Data = nil
	}

	return a, nil
}

func itemsToTable(L *lua.LState, items []*media.ResolvedMedia) *lua.LTable {
	list := L.NewTable()
	for _, item := range items {
		fragments := L.NewTable()
		for _, f := range item.Fragments {
			frag := L.NewTable()
			frag.RawSetString("title", lua.LString(f.Title))
			frag.RawSetString("url", lua.LString(f.URL))
			frag.RawSetString("size", lua.LNumber(f.SizeBytes))
			frag.RawSetString("duration", lua.LNumber(f.DurationMs))
			frag.RawSetString("extension", lua.LString(f.Extension))
			fragments.Append(frag)
		}

		tbl := L.NewTable()
		tbl.RawSetString("title", lua.LString(item.Input.Title))
		tbl.RawSetString("aid", lua.LNumber(item.Input.AID))
		tbl.RawSetString("cid", lua.LNumber(item.Input.CID))
		tbl.RawSetString("quality", lua.LString(item.Granted.DisplayName))
		tbl.RawSetString("fragments", fragments)
		list.Append(tbl)
	}
	return list
}

// header reads a "-- @tag value" line from the top comment block of a script.
func header(path, tag string) string {
	content, err := filesystem.API().ReadFile(path)
	if err != nil {
		return ""
	}

	prefix := "-- @" + tag
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "--") {
			break
		}
		if strings.HasPrefix(line, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(line, prefix))
		}
	}
	return ""
}
