package script

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dashgrab/dashgrab/constant"
	"github.com/dashgrab/dashgrab/internal/cache"
	"github.com/dashgrab/dashgrab/network"
	lua "github.com/yuin/gopher-lua"
)

// HTTPClient serves http_tls calls made by scripts.
var HTTPClient = network.FingerprintClient

// registerHTTP exposes the fingerprinted client as the global http_tls:
//
//	http_tls.get(url [, headers])  -> body
//	http_tls.request(options)      -> {status, body}
func registerHTTP(L *lua.LState) {
	mod := L.NewTable()
	L.SetField(mod, "get", L.NewFunction(httpGet))
	L.SetField(mod, "request", L.NewFunction(httpRequest))
	L.SetGlobal("http_tls", mod)
}

func httpGet(L *lua.LState) int {
	url := L.CheckString(1)
	headers := tableToHeaders(L.OptTable(2, nil))

	body, status, err := do(stateContext(L), http.MethodGet, url, headers, "")
	if err == nil && status >= 400 {
		err = fmt.Errorf("status %d", status)
	}
	if err != nil {
		L.RaiseError("http_tls.get failed: %s", err.Error())
		return 0
	}

	L.Push(lua.LString(body))
	return 1
}

type cachedResponse struct {
	Status int    `json:"status"`
	Body   string `json:"body"`
}

func httpRequest(L *lua.LState) int {
	opts := L.CheckTable(1)

	method := stringField(opts, "method", http.MethodGet)
	url := stringField(opts, "url", "")
	body := stringField(opts, "body", "")
	useCache := lua.LVAsBool(opts.RawGetString("cache"))

	if url == "" {
		L.RaiseError("http_tls.request: url is required")
		return 0
	}

	headers := map[string]string{}
	if tbl, ok := opts.RawGetString("headers").(*lua.LTable); ok {
		headers = tableToHeaders(tbl)
	}

	key := cache.GenerateKey("http_tls", method, url, body)

	var resp cachedResponse
	if !useCache || !cache.Read(key, &resp) {
		var err error
		resp.Body, resp.Status, err = do(stateContext(L), method, url, headers, body)
		if err != nil {
			L.RaiseError("http_tls.request failed: %s", err.Error())
			return 0
		}

		if useCache && resp.Status == http.StatusOK {
			_ = cache.Write(key, resp)
		}
	}

	result := L.NewTable()
	L.SetField(result, "status", lua.LNumber(resp.Status))
	L.SetField(result, "body", lua.LString(resp.Body))
	L.Push(result)
	return 1
}

// stateContext is the context set on L, so requests stop when the caller is cancelled.
func stateContext(L *lua.LState) context.Context {
	if ctx := L.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func do(ctx context.Context, method, url string, headers map[string]string, body string) (string, int, error) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return "", 0, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", constant.UserAgent)
	req.Header.Set("Referer", constant.Referer)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := HTTPClient.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", resp.StatusCode, fmt.Errorf("read body: %w", err)
	}

	return string(data), resp.StatusCode, nil
}

func tableToHeaders(tbl *lua.LTable) map[string]string {
	headers := map[string]string{}
	if tbl == nil {
		return headers
	}
	tbl.ForEach(func(k, v lua.LValue) {
		headers[k.String()] = v.String()
	})
	return headers
}

func stringField(tbl *lua.LTable, key, def string) string {
	val := tbl.RawGetString(key)
	if val == lua.LNil {
		return def
	}
	return val.String()
}
