// Package uci is the external UCI command dispatcher described in
// spec §6/§7: a line-based ASCII protocol loop that drives Position
// construction, the search ThreadPool, and move generation, translating
// their results into "info"/"bestmove" output and reporting malformed
// input as "info string [error] ...".
package uci

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"corvid/board"
	"corvid/internal/search"
	"corvid/movegen"
)

const (
	EngineName   = "Corvid 1.0"
	EngineAuthor = "the corvid authors"
)

// Dispatcher owns the engine-side state (current position, thread pool,
// transposition table) driven by the UCI loop (spec 6). Input is read on
// the dispatcher's own goroutine (Run's scanner loop); a "go" command
// hands the search off to a background goroutine so that loop keeps
// reading stdin and can observe "stop" while a search is in flight
// (spec 5: "I/O is driven by the UCI dispatcher on a separate thread").
// stateMu guards every field a background search and the scanner loop
// might touch concurrently.
type Dispatcher struct {
	out   io.Writer
	outMu sync.Mutex

	log     *search.Logger
	threads int

	stateMu sync.Mutex
	tt      *search.TranspositionTable
	eval    *search.MaterialEvaluator
	engine  *search.AlphaBetaEngine
	pool    *search.ThreadPool
	pos     *search.Position
	active  *search.ThreadPool // non-nil only while a search goroutine is running

	searchWG sync.WaitGroup
}

// NewDispatcher builds a dispatcher writing UCI output to out.
func NewDispatcher(out io.Writer) *Dispatcher {
	tt := search.NewTranspositionTable(16)
	eval := search.NewMaterialEvaluator()
	engine := search.NewAlphaBetaEngine(tt, eval)
	log := search.NewLogger()
	d := &Dispatcher{
		out:     out,
		tt:      tt,
		eval:    eval,
		engine:  engine,
		log:     log,
		threads: 1,
	}
	d.pool = search.NewThreadPool(engine, d.threads, log)
	d.newGame()
	return d
}

// newGame must be called with stateMu held.
func (d *Dispatcher) newGame() {
	b, _ := board.ParseFEN(board.StartFEN)
	d.pos = search.NewPosition(b, d.eval)
}

func (d *Dispatcher) writeln(format string, args ...interface{}) {
	d.outMu.Lock()
	defer d.outMu.Unlock()
	fmt.Fprintf(d.out, format+"\n", args...)
}

func (d *Dispatcher) errorf(format string, args ...interface{}) {
	d.writeln("info string [error] "+format, args...)
	search.Warningf(format, args...)
}

// Run drives the read-eval loop over in until EOF or "quit", returning
// the process exit code (spec 6's "quit terminates with 0").
func (d *Dispatcher) Run(in io.Reader) int {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if d.dispatch(line) {
			return 0
		}
	}
	return 0
}

// dispatch handles a single command line, returning true if the loop
// should terminate (the "quit" command).
func (d *Dispatcher) dispatch(line string) bool {
	fields := strings.Fields(line)
	cmd := fields[0]
	rest := strings.TrimSpace(strings.TrimPrefix(line, cmd))

	switch cmd {
	case "uci":
		d.writeln("id name %s", EngineName)
		d.writeln("id author %s", EngineAuthor)
		d.writeln("option name Hash type spin default 16 min 1 max 1048576")
		d.writeln("option name Threads type spin default 1 min 1 max 512")
		d.writeln("uciok")
	case "isready":
		d.writeln("readyok")
	case "ucinewgame":
		d.stateMu.Lock()
		d.newGame()
		d.stateMu.Unlock()
	case "setoption":
		d.handleSetOption(rest)
	case "position":
		d.handlePosition(rest)
	case "go":
		d.handleGo(rest)
	case "stop":
		d.stateMu.Lock()
		active := d.active
		d.stateMu.Unlock()
		if active != nil {
			active.Stop()
		}
	case "perft":
		d.handlePerft(rest, false)
	case "dperft":
		d.handlePerft(rest, true)
	case "print":
		d.stateMu.Lock()
		b := d.pos.Board().Pretty()
		d.stateMu.Unlock()
		d.writeln("%s", b)
	case "eval":
		d.stateMu.Lock()
		v := d.pos.Evaluate()
		d.stateMu.Unlock()
		d.writeln("%d", v)
	case "quit":
		d.stateMu.Lock()
		active := d.active
		d.stateMu.Unlock()
		if active != nil {
			active.Stop()
		}
		d.searchWG.Wait()
		d.log.Close()
		return true
	default:
		d.errorf("unknown command %q", cmd)
	}
	return false
}

func (d *Dispatcher) handleSetOption(rest string) {
	fields := strings.Fields(rest)
	name, value, ok := parseNameValue(fields)
	if !ok {
		d.errorf("setoption missing name/value")
		return
	}
	switch name {
	case "Hash":
		mb, err := strconv.Atoi(value)
		if err != nil || mb < 1 || mb > 1048576 {
			d.errorf("invalid Hash value %q", value)
			return
		}
		d.stateMu.Lock()
		d.tt.Resize(mb)
		d.stateMu.Unlock()
		search.Infof("hash resized to %d MB", mb)
	case "Threads":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 || n > 512 {
			d.errorf("invalid Threads value %q", value)
			return
		}
		d.stateMu.Lock()
		d.threads = n
		d.pool = search.NewThreadPool(d.engine, n, d.log)
		d.stateMu.Unlock()
		search.Infof("pool resized to %d threads", n)
	default:
		d.errorf("unknown option %q", name)
	}
}

// parseNameValue extracts the name and value tokens from a
// "name <N...> value <V...>" field list.
func parseNameValue(fields []string) (name, value string, ok bool) {
	nameIdx, valueIdx := -1, -1
	for i, f := range fields {
		switch f {
		case "name":
			nameIdx = i
		case "value":
			valueIdx = i
		}
	}
	if nameIdx == -1 || valueIdx == -1 || valueIdx <= nameIdx {
		return "", "", false
	}
	name = strings.Join(fields[nameIdx+1:valueIdx], " ")
	value = strings.Join(fields[valueIdx+1:], " ")
	if name == "" || value == "" {
		return "", "", false
	}
	return name, value, true
}

func (d *Dispatcher) handlePosition(rest string) {
	var fenFields []string

	switch {
	case strings.HasPrefix(rest, "startpos"):
		rest = strings.TrimSpace(strings.TrimPrefix(rest, "startpos"))
		fenFields = strings.Fields(board.StartFEN)
	case strings.HasPrefix(rest, "fen"):
		rest = strings.TrimSpace(strings.TrimPrefix(rest, "fen"))
		fields := strings.Fields(rest)
		if len(fields) < 6 {
			d.errorf("invalid fen: too few fields")
			return
		}
		fenFields = fields[:6]
		rest = strings.TrimSpace(strings.Join(fields[6:], " "))
	default:
		d.errorf("invalid position format %q", rest)
		return
	}

	b, err := board.ParseFEN(strings.Join(fenFields, " "))
	if err != nil {
		d.errorf("invalid fen: %v", err)
		return
	}

	if strings.HasPrefix(rest, "moves") {
		rest = strings.TrimSpace(strings.TrimPrefix(rest, "moves"))
		for _, tok := range strings.Fields(rest) {
			m, err := parseUCIMove(&b, tok)
			if err != nil {
				d.errorf("illegal move %q: %v", tok, err)
				return
			}
			b = b.MakeMove(m)
		}
	}

	d.stateMu.Lock()
	d.pos = search.NewPosition(b, d.eval)
	d.stateMu.Unlock()
}

// parseUCIMove resolves a long-algebraic move token (e.g. "e2e4",
// "e7e8q") against the legal moves of b (spec 7's IllegalUciMove).
func parseUCIMove(b *board.Board, tok string) (board.Move, error) {
	if len(tok) < 4 || len(tok) > 5 {
		return board.NullMove, fmt.Errorf("malformed move token")
	}
	src, ok := board.ParseSquare(tok[0:2])
	if !ok {
		return board.NullMove, fmt.Errorf("bad source square %q", tok[0:2])
	}
	dest, ok := board.ParseSquare(tok[2:4])
	if !ok {
		return board.NullMove, fmt.Errorf("bad destination square %q", tok[2:4])
	}
	var promo board.PieceType
	if len(tok) == 5 {
		switch tok[4] {
		case 'q':
			promo = board.Queen
		case 'r':
			promo = board.Rook
		case 'b':
			promo = board.Bishop
		case 'n':
			promo = board.Knight
		default:
			return board.NullMove, fmt.Errorf("unknown promotion piece %q", tok[4:])
		}
	}

	for _, m := range movegen.LegalMoves(b) {
		if m.Src() != src || m.Dest() != dest {
			continue
		}
		if m.IsPromotion() {
			if promo == board.NoPieceType || m.PromotionPiece() != promo {
				continue
			}
		} else if promo != board.NoPieceType {
			continue
		}
		return m, nil
	}
	return board.NullMove, fmt.Errorf("not a legal move in this position")
}

func (d *Dispatcher) handlePerft(rest string, divide bool) {
	depth, err := strconv.Atoi(strings.TrimSpace(rest))
	if err != nil || depth < 0 {
		d.errorf("invalid perft depth %q", rest)
		return
	}
	d.stateMu.Lock()
	b := *d.pos.Board()
	d.stateMu.Unlock()
	if divide {
		results := movegen.Divide(&b, depth)
		var total uint64
		for mv, n := range results {
			d.writeln("%s: %d", mv, n)
			total += n
		}
		d.writeln("total: %d", total)
		return
	}
	d.writeln("%d", movegen.Perft(&b, depth))
}

// handleGo launches the search on its own goroutine and returns
// immediately, so Run's scanner loop keeps reading stdin and can reach
// a following "stop" command while the search is in flight (spec 5).
func (d *Dispatcher) handleGo(rest string) {
	tc := parseGoParams(rest)

	d.stateMu.Lock()
	pool := d.pool
	pos := d.pos
	d.active = pool
	d.stateMu.Unlock()

	search.Infof("search started")
	d.searchWG.Add(1)
	go func() {
		defer d.searchWG.Done()

		result := pool.StartSearch(pos, tc,
			func(r search.DepthReport) {
				d.writeln("info depth %d seldepth %d score %s time %d nodes %d nps %d hashfull %d pv %s",
					r.Depth, r.Seldepth, formatScore(r.Score), r.Elapsed, r.Nodes, nps(r.Nodes, r.Elapsed), r.HashFull, r.PV)
			},
			func(m search.NoLegalMoves) {
				if m.InCheck {
					d.writeln("info depth 0 score mate 0")
				} else {
					d.writeln("info depth 0 score cp 0")
				}
			},
		)

		d.stateMu.Lock()
		d.active = nil
		d.stateMu.Unlock()
		search.Infof("search stopped")

		if !result.Searched && result.BestMove.IsNull() {
			return
		}
		d.writeln("bestmove %s", result.BestMove.String())
	}()
}

func nps(nodes int64, elapsedMS int64) int64 {
	if elapsedMS <= 0 {
		return nodes * 1000
	}
	return nodes * 1000 / elapsedMS
}

// formatScore renders a centipawn or mate score per spec 6: cp v, or
// mate ±k with k = ceil((MATE - |v|)/2).
func formatScore(v int) string {
	if v >= search.Mate-search.MaxPly {
		k := (search.Mate - v + 1) / 2
		return fmt.Sprintf("mate %d", k)
	}
	if v <= -(search.Mate - search.MaxPly) {
		k := (search.Mate + v + 1) / 2
		return fmt.Sprintf("mate -%d", k)
	}
	return fmt.Sprintf("cp %d", v)
}

// parseGoParams parses the go-command parameters in the precedence order
// depth > movetime > time-control > nodes > infinite (spec 6).
func parseGoParams(rest string) search.TimeControl {
	fields := strings.Fields(rest)
	get := func(key string) (int64, bool) {
		for i, f := range fields {
			if f == key && i+1 < len(fields) {
				n, err := strconv.ParseInt(fields[i+1], 10, 64)
				if err == nil {
					return n, true
				}
			}
		}
		return 0, false
	}
	has := func(key string) bool {
		for _, f := range fields {
			if f == key {
				return true
			}
		}
		return false
	}

	if d, ok := get("depth"); ok {
		return search.TimeControl{Kind: search.TCDepth, Depth: int(d)}
	}
	if t, ok := get("movetime"); ok {
		return search.TimeControl{Kind: search.TCMoveTime, MoveTimeMS: t}
	}
	if has("wtime") || has("btime") {
		tc := search.TimeControl{Kind: search.TCDynamic}
		if v, ok := get("wtime"); ok {
			tc.WTimeMS = v
		}
		if v, ok := get("btime"); ok {
			tc.BTimeMS = v
		}
		if v, ok := get("winc"); ok {
			tc.WIncMS = v
		}
		if v, ok := get("binc"); ok {
			tc.BIncMS = v
		}
		if v, ok := get("movestogo"); ok {
			tc.MovesToGo = int(v)
		}
		return tc
	}
	if n, ok := get("nodes"); ok {
		return search.TimeControl{Kind: search.TCNodes, Nodes: n}
	}
	return search.TimeControl{Kind: search.TCInfinite}
}
