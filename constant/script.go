package constant

// Lua asset provider contract.
const (
	// GetAssetsFn is the global function every Lua asset script must define.
	GetAssetsFn = "GetAssets"

	// AssetScriptExtension is the file extension of Lua asset scripts.
	AssetScriptExtension = ".lua"
)

// AssetScriptTemplate scaffolds a new Lua asset provider.
const AssetScriptTemplate = `-- @name    {{ .Name }}
-- @author  {{ .Author }}
-- @description Attaches nothing yet

---@alias fragment { title: string, url: string, size: number, duration: number, extension: string }
---@alias item { title: string, aid: number, cid: number, quality: string, fragments: fragment[] }
---@alias asset { name: string, url: string|nil, data: string|nil }

--- Returns extra files to attach to a resolved batch.
-- @param items item[] Resolved items
-- @return asset[] Assets
function {{ .Fn }}(items)
	return {}
end
`
