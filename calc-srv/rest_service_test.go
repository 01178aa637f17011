package main

import (
	"encoding/json"
	"net/url"
	"path/filepath"
	"testing"

	"calc-build-go/model"

	"github.com/valyala/fasthttp"
)

func openTestDb(t *testing.T) {
	t.Helper()
	if err := OpenDb(filepath.Join(t.TempDir(), "calc.db")); err != nil {
		t.Fatalf("OpenDb: %v", err)
	}
	t.Cleanup(func() {
		gSessionCache = newSessionCache()
		if err := CloseDb(); err != nil {
			t.Errorf("CloseDb: %v", err)
		}
	})
}

func doRequest(t *testing.T, path string, params url.Values) *fasthttp.RequestCtx {
	t.Helper()
	var ctx fasthttp.RequestCtx
	uri := path
	if len(params) > 0 {
		uri += "?" + params.Encode()
	}
	ctx.Request.SetRequestURI(uri)
	requestHandler(&ctx)
	return &ctx
}

func decodeEval(t *testing.T, ctx *fasthttp.RequestCtx) evalResponse {
	t.Helper()
	if code := ctx.Response.StatusCode(); code != fasthttp.StatusOK {
		t.Fatalf("status %d: %s", code, ctx.Response.Body())
	}
	var resp evalResponse
	if err := json.Unmarshal(ctx.Response.Body(), &resp); err != nil {
		t.Fatalf("decode %q: %v", ctx.Response.Body(), err)
	}
	return resp
}

func kinds(resp evalResponse) []string {
	ret := []string{}
	for _, d := range resp.Diagnostics {
		ret = append(ret, d.Kind)
	}
	return ret
}

func TestStatelessEval(t *testing.T) {
	tests := []struct {
		acc, line string
		value     string
		kinds     []string
	}{
		{"2", "*3", "6", []string{}},
		{"", "+ 1.5", "1.5", []string{}},
		{"5", "/0", "5", []string{"InvalidDomain"}},
		{"5", "(+ 1 2 3)", "11", []string{}},
		{"5", "blah", "5", []string{"UnknownOperation"}},
		{"-8", "^0.5", "NaN", []string{}},
		{"NaN", "+1", "NaN", []string{}},
		{"+Inf", "_", "-Inf", []string{}},
	}
	for _, test := range tests {
		params := url.Values{"line": {test.line}}
		if test.acc != "" {
			params.Set("acc", test.acc)
		}
		resp := decodeEval(t, doRequest(t, "/eval", params))
		if resp.Value != test.value {
			t.Fatalf("acc %q line %q: value %q, want %q", test.acc, test.line, resp.Value, test.value)
		}
		if got := kinds(resp); len(got) != len(test.kinds) || (len(got) > 0 && got[0] != test.kinds[0]) {
			t.Fatalf("acc %q line %q: kinds %v, want %v", test.acc, test.line, got, test.kinds)
		}
		if resp.Session != "" {
			t.Fatalf("stateless eval returned session %q", resp.Session)
		}
	}
}

func TestEvalBadRequests(t *testing.T) {
	tests := []struct {
		path   string
		params url.Values
		code   int
	}{
		{"/eval", url.Values{}, fasthttp.StatusBadRequest},
		{"/eval", url.Values{"line": {"+1"}, "acc": {"abc"}}, fasthttp.StatusBadRequest},
		{"/session", url.Values{}, fasthttp.StatusBadRequest},
		{"/session/new", url.Values{"ttl": {"soon"}}, fasthttp.StatusBadRequest},
		{"/session/new", url.Values{"ttl": {"500ms"}}, fasthttp.StatusBadRequest},
		{"/session/new", url.Values{"ttl": {"-1m"}}, fasthttp.StatusBadRequest},
		{"/nope", url.Values{}, fasthttp.StatusNotFound},
	}
	for _, test := range tests {
		ctx := doRequest(t, test.path, test.params)
		if code := ctx.Response.StatusCode(); code != test.code {
			t.Fatalf("%s %v: status %d, want %d", test.path, test.params, code, test.code)
		}
	}
}

func TestSessionLifecycle(t *testing.T) {
	openTestDb(t)

	created := decodeEval(t, doRequest(t, "/session/new", url.Values{"acc": {"1"}}))
	if created.Session == "" || created.Value != "1" {
		t.Fatalf("new session: %+v", created)
	}
	id := created.Session

	steps := []struct {
		line, value string
	}{
		{"+2", "3"},
		{"(* 2 3)", "18"},
		{"_", "-18"},
		{"SQRT", "-18"},
	}
	for i, step := range steps {
		resp := decodeEval(t, doRequest(t, "/eval", url.Values{"session": {id}, "line": {step.line}}))
		if resp.Value != step.value || resp.Lines != int64(i+1) {
			t.Fatalf("line %q: %+v, want value %q lines %d", step.line, resp, step.value, i+1)
		}
	}

	// Drop the cache so the accumulator comes back from the db.
	gSessionCache = newSessionCache()
	shown := decodeEval(t, doRequest(t, "/session", url.Values{"session": {id}}))
	if shown.Value != "-18" || shown.Lines != 4 {
		t.Fatalf("show: %+v", shown)
	}

	ctx := doRequest(t, "/session/lines", url.Values{"session": {id}})
	var lines []*model.SessionLine
	if err := json.Unmarshal(ctx.Response.Body(), &lines); err != nil {
		t.Fatalf("decode lines %q: %v", ctx.Response.Body(), err)
	}
	if len(lines) != 4 {
		t.Fatalf("%d history lines, want 4", len(lines))
	}
	if lines[0].Line != "+2" || lines[0].Value != "3" || lines[0].Diagnostics != "" {
		t.Fatalf("first line: %+v", lines[0])
	}
	if lines[3].Diagnostics != "InvalidDomain" {
		t.Fatalf("last line diagnostics %q, want InvalidDomain", lines[3].Diagnostics)
	}

	if code := doRequest(t, "/session/close", url.Values{"session": {id}}).Response.StatusCode(); code != fasthttp.StatusOK {
		t.Fatalf("close: status %d", code)
	}
	for _, path := range []string{"/session", "/session/close", "/session/lines"} {
		if code := doRequest(t, path, url.Values{"session": {id}}).Response.StatusCode(); code != fasthttp.StatusNotFound {
			t.Fatalf("%s after close: status %d, want 404", path, code)
		}
	}
	ctx = doRequest(t, "/eval", url.Values{"session": {id}, "line": {"+1"}})
	if code := ctx.Response.StatusCode(); code != fasthttp.StatusNotFound {
		t.Fatalf("eval after close: status %d, want 404", code)
	}
}

func TestSessionKeepsNaN(t *testing.T) {
	openTestDb(t)
	id := decodeEval(t, doRequest(t, "/session/new", url.Values{"acc": {"-8"}})).Session
	for _, line := range []string{"^0.5", "+1"} {
		resp := decodeEval(t, doRequest(t, "/eval", url.Values{"session": {id}, "line": {line}}))
		if resp.Value != "NaN" {
			t.Fatalf("line %q: value %q, want NaN", line, resp.Value)
		}
	}
}

func TestOpsEndpoint(t *testing.T) {
	ctx := doRequest(t, "/ops", nil)
	var ops []opJSON
	if err := json.Unmarshal(ctx.Response.Body(), &ops); err != nil {
		t.Fatalf("decode %q: %v", ctx.Response.Body(), err)
	}
	arity := map[string]int{}
	for _, op := range ops {
		arity[op.Token] = op.Arity
	}
	want := map[string]int{"0-9": 2, "+": 2, "-": 2, "*": 2, "/": 2, "%": 2, "^": 2, "_": 1, "SQRT": 1}
	for token, n := range want {
		if got, ok := arity[token]; !ok || got != n {
			t.Fatalf("token %q: arity %d (listed %v), want %d", token, got, ok, n)
		}
	}
}

func TestNewCalcServer(t *testing.T) {
	server := NewCalcServer()
	if server.Name != "calc-srv" {
		t.Fatalf("server name %q", server.Name)
	}
	var ctx fasthttp.RequestCtx
	ctx.Request.SetRequestURI("/ops")
	server.Handler(&ctx)
	if code := ctx.Response.StatusCode(); code != fasthttp.StatusOK {
		t.Fatalf("/ops through the server handler: status %d", code)
	}
}

func TestSessionTTLInWholeSeconds(t *testing.T) {
	openTestDb(t)
	id := decodeEval(t, doRequest(t, "/session/new", url.Values{"ttl": {"1500ms"}})).Session
	session, err := LoadSession(id)
	if err != nil {
		t.Fatal(err)
	}
	if session.ExpiredDuration != 1 {
		t.Fatalf("ExpiredDuration = %d, want 1", session.ExpiredDuration)
	}
}
