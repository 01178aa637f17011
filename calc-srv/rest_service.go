package main

import (
	"context"
	"encoding/json"
	"errors"
	"expvar"
	"log"
	"time"

	"calc-build-go/calc-go"

	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/expvarhandler"
)

// Various counters - see https://pkg.go.dev/expvar for details.
var (
	evalCalls           = expvar.NewInt("evalCalls")
	diagnosticsReported = expvar.NewInt("diagnosticsReported")
	sessionsCreated     = expvar.NewInt("sessionsCreated")
	sessionsClosed      = expvar.NewInt("sessionsClosed")
	sessionsExpired     = expvar.NewInt("sessionsExpired")
)

type diagnosticJSON struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type evalResponse struct {
	Session     string           `json:"session,omitempty"`
	Value       string           `json:"value"`
	Lines       int64            `json:"lines,omitempty"`
	Diagnostics []diagnosticJSON `json:"diagnostics"`
}

type opJSON struct {
	Token string `json:"token"`
	Name  string `json:"name"`
	Arity int    `json:"arity"`
	Desc  string `json:"desc"`
}

func toDiagnosticsJSON(diags calc_go.Diagnostics) []diagnosticJSON {
	ret := make([]diagnosticJSON, 0, len(diags))
	for _, d := range diags {
		ret = append(ret, diagnosticJSON{Kind: d.Kind.String(), Message: d.Msg})
	}
	return ret
}

func writeJSON(ctx *fasthttp.RequestCtx, v interface{}) {
	buf, err := json.Marshal(v)
	if err != nil {
		ctx.Error(err.Error(), fasthttp.StatusInternalServerError)
		return
	}
	ctx.Success("application/json", buf)
}

func writeSessionError(ctx *fasthttp.RequestCtx, err error) {
	if errors.Is(err, ErrSessionNotFound) {
		ctx.Error(err.Error(), fasthttp.StatusNotFound)
		return
	}
	ctx.Error(err.Error(), fasthttp.StatusInternalServerError)
}

func parseAccumulator(ctx *fasthttp.RequestCtx) (float64, bool) {
	raw := string(ctx.FormValue("acc"))
	if raw == "" {
		return 0, true
	}
	acc, err := parseValue(raw)
	if err != nil {
		ctx.Error("acc parameter not numeric: '"+raw+"'", fasthttp.StatusBadRequest)
		return 0, false
	}
	return acc, true
}

func HandleEval(ctx *fasthttp.RequestCtx) {
	ctx.Response.Reset()
	if len(ctx.FormValue("line")) == 0 {
		ctx.Error("missing 'line' parameter", fasthttp.StatusBadRequest)
		return
	}
	line := string(ctx.FormValue("line"))

	if id := string(ctx.FormValue("session")); id != "" {
		session, diags, err := EvalSession(id, line)
		if err != nil {
			writeSessionError(ctx, err)
			return
		}
		writeJSON(ctx, &evalResponse{
			Session:     session.ID,
			Value:       session.Value,
			Lines:       session.Lines,
			Diagnostics: toDiagnosticsJSON(diags),
		})
		return
	}

	acc, ok := parseAccumulator(ctx)
	if !ok {
		return
	}
	diags := calc_go.Diagnostics{}
	value := calc_go.NewEvaluator(&diags).Evaluate(acc, line)
	evalCalls.Add(1)
	diagnosticsReported.Add(int64(len(diags)))
	writeJSON(ctx, &evalResponse{Value: formatValue(value), Diagnostics: toDiagnosticsJSON(diags)})
}

func HandleNewSession(ctx *fasthttp.RequestCtx) {
	ctx.Response.Reset()
	acc, ok := parseAccumulator(ctx)
	if !ok {
		return
	}
	ttl := *sessionTTL
	if raw := string(ctx.FormValue("ttl")); raw != "" {
		d, err := time.ParseDuration(raw)
		// Expiry is tracked in whole seconds.
		if err != nil || d < time.Second {
			ctx.Error("invalid ttl parameter, want at least 1s: '"+raw+"'", fasthttp.StatusBadRequest)
			return
		}
		ttl = d
	}
	session, err := CreateSession(NewSessionID(ctx.RemoteAddr().String()), acc, ttl)
	if err != nil {
		ctx.Error(err.Error(), fasthttp.StatusInternalServerError)
		return
	}
	sessionsCreated.Add(1)
	writeJSON(ctx, &evalResponse{Session: session.ID, Value: session.Value, Diagnostics: []diagnosticJSON{}})
}

func sessionParam(ctx *fasthttp.RequestCtx) (string, bool) {
	id := string(ctx.FormValue("session"))
	if id == "" {
		ctx.Error("missing 'session' parameter", fasthttp.StatusBadRequest)
		return "", false
	}
	return id, true
}

func HandleShowSession(ctx *fasthttp.RequestCtx) {
	ctx.Response.Reset()
	id, ok := sessionParam(ctx)
	if !ok {
		return
	}
	session, err := LoadSession(id)
	if err != nil {
		writeSessionError(ctx, err)
		return
	}
	writeJSON(ctx, &evalResponse{
		Session:     session.ID,
		Value:       session.Value,
		Lines:       session.Lines,
		Diagnostics: []diagnosticJSON{},
	})
}

func HandleSessionLines(ctx *fasthttp.RequestCtx) {
	ctx.Response.Reset()
	id, ok := sessionParam(ctx)
	if !ok {
		return
	}
	lines, err := FindSessionLines(id)
	if err != nil {
		writeSessionError(ctx, err)
		return
	}
	writeJSON(ctx, lines)
}

func HandleCloseSession(ctx *fasthttp.RequestCtx) {
	ctx.Response.Reset()
	id, ok := sessionParam(ctx)
	if !ok {
		return
	}
	if err := CloseSession(id); err != nil {
		writeSessionError(ctx, err)
		return
	}
	sessionsClosed.Add(1)
	ctx.Success("text/plain", []byte("closed"))
}

func HandleOps(ctx *fasthttp.RequestCtx) {
	ctx.Response.Reset()
	ops := []opJSON{{Token: "0-9", Name: calc_go.OpSet.String(), Arity: calc_go.Arity(calc_go.OpSet),
		Desc: "set the accumulator to the number"}}
	for _, t := range calc_go.OpTokens() {
		ops = append(ops, opJSON{Token: t.Token, Name: t.Op.String(), Arity: calc_go.Arity(t.Op), Desc: t.Desc})
	}
	writeJSON(ctx, ops)
}

func requestHandler(ctx *fasthttp.RequestCtx) {
	switch string(ctx.Path()) {
	case "/eval":
		HandleEval(ctx)
	case "/session/new":
		HandleNewSession(ctx)
	case "/session":
		HandleShowSession(ctx)
	case "/session/lines":
		HandleSessionLines(ctx)
	case "/session/close":
		HandleCloseSession(ctx)
	case "/ops":
		HandleOps(ctx)
	// /stats?r=session shows only the session counters.
	case "/stats":
		expvarhandler.ExpvarHandler(ctx)
	default:
		ctx.Error("unknown path "+string(ctx.Path()), fasthttp.StatusNotFound)
	}
}

func NewCalcServer() *fasthttp.Server {
	return &fasthttp.Server{
		Handler:      requestHandler,
		Name:         "calc-srv",
		ReadTimeout:  time.Minute,
		WriteTimeout: time.Minute,
		Concurrency:  256 * 1024,
	}
}

func ServeCalc(server *fasthttp.Server, addr string) {
	log.Printf("Starting HTTP server on %q", addr)
	if err := server.ListenAndServe(addr); err != nil {
		log.Fatalf("error in ListenAndServe: %v", err)
	}
}

func shutdown(ctx context.Context, server *fasthttp.Server) {
	StopScheduler()
	if server != nil {
		if err := server.ShutdownWithContext(ctx); err != nil {
			log.Println(err)
		}
	}
	if err := CloseDb(); err != nil {
		log.Println(err)
	}
}
