package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/techbar/internal/catalog"
	"github.com/roach88/techbar/internal/engine"
	"github.com/roach88/techbar/internal/swipe"
)

// session is a line-driven host for the order engine. It plays the part of
// the touch screen: it shows menu pages, turns cell taps into engine events
// and prints the effects of every event.
type session struct {
	catalog *catalog.Catalog
	engine  *engine.Engine
	swipe   *swipe.Interpreter
	out     *OutputFormatter
	logger  *slog.Logger

	page catalog.Category
}

func newSession(e *env, cat *catalog.Catalog, out *OutputFormatter, opts ...engine.Option) *session {
	s := &session{
		catalog: cat,
		engine:  e.newEngine(opts...),
		out:     out,
		logger:  e.logger,
	}
	s.swipe = swipe.New(cat.Keys(), swipe.NavigatorFunc(s.open),
		swipe.WithMinDistance(e.cfg.Swipe.MinDistance),
		swipe.WithLogger(e.logger),
	)
	return s
}

// serve executes lines from r until EOF, "quit" or ctx is done.
func (s *session) serve(ctx context.Context, r io.Reader) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		done, err := s.exec(ctx, line)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
	return sc.Err()
}

// exec runs one line. Operator mistakes are printed and the session goes
// on; only store and output failures are returned.
func (s *session) exec(ctx context.Context, line string) (bool, error) {
	word, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch word {
	case "quit", "exit":
		return true, nil
	case "page":
		if err := s.open(rest); err != nil {
			return false, s.reject(CodeNotFound, err)
		}
		return false, nil
	case "tap":
		return false, s.tap(ctx, rest)
	case "swipe":
		return false, s.gesture(rest)
	}

	ev, err := parseEvent(word, rest)
	if err != nil {
		return false, s.reject(CodeEvent, err)
	}
	return false, s.dispatch(ctx, ev)
}

// open shows the category page with the given key.
func (s *session) open(key string) error {
	cat, ok := s.catalog.Category(key)
	if !ok {
		return fmt.Errorf("unknown category %q", key)
	}
	s.page = cat
	return s.out.Success(pageView(cat))
}

// tap handles "tap <row> <column>" with rows numbered from 1 as printed.
func (s *session) tap(ctx context.Context, args string) error {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		return s.reject(CodeEvent, errors.New("usage: tap <row> <column>"))
	}
	row, err := strconv.Atoi(fields[0])
	if err != nil {
		return s.reject(CodeEvent, fmt.Errorf("row: %w", err))
	}
	col, err := strconv.Atoi(fields[1])
	if err != nil {
		return s.reject(CodeEvent, fmt.Errorf("column: %w", err))
	}
	t, err := s.page.Tap(row-1, col)
	if err != nil {
		return s.reject(CodeCatalog, err)
	}
	return s.dispatch(ctx, engine.TapPrice(t))
}

// gesture handles "swipe <from-x> <to-x> [element...]". The elements are the
// touched element followed by its ancestors.
func (s *session) gesture(args string) error {
	fields := strings.Fields(args)
	if len(fields) < 2 {
		return s.reject(CodeBadSwipe, errors.New("usage: swipe <from-x> <to-x> [element...]"))
	}
	from, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return s.reject(CodeBadSwipe, fmt.Errorf("from-x: %w", err))
	}
	to, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return s.reject(CodeBadSwipe, fmt.Errorf("to-x: %w", err))
	}

	if !s.swipe.Start(from, s.page.Key, fields[2:]...) {
		return s.out.Success(swipeView{From: s.page.Key, Ignored: true})
	}
	indicator := s.swipe.Move(to)
	next, err := s.swipe.End(to)
	if err != nil {
		return err
	}
	if next == "" {
		return s.out.Success(swipeView{From: s.page.Key, Indicator: indicator.String()})
	}
	return nil
}

func (s *session) dispatch(ctx context.Context, ev engine.Event) error {
	// The host knows which page the orders screen covers.
	if so, ok := ev.(engine.ShowOrders); ok && so.Category == "" {
		so.Category, so.Title = s.page.Key, s.page.Title
		ev = so
	}

	fx, err := s.engine.Dispatch(ctx, ev)
	var engErr *engine.Error
	if errors.As(err, &engErr) {
		return s.out.Error(string(engErr.Code), engErr.Message, map[string]string{
			"event": ev.Kind(),
			"state": engErr.State.String(),
		})
	}
	if err != nil {
		return err
	}

	for _, f := range fx {
		if lc, ok := f.(engine.LoadContent); ok {
			if cat, found := s.catalog.Category(lc.Category); found {
				s.page = cat
			}
		}
	}
	return s.out.Success(newStepView(s.engine.Seq(), ev, fx))
}

func (s *session) reject(code string, err error) error {
	s.logger.Debug("input rejected", "code", code, "error", err)
	return s.out.Error(code, err.Error(), nil)
}

// parseEvent decodes "<kind> [{field: value, ...}]". Unknown fields are
// rejected.
func parseEvent(kind, args string) (engine.Event, error) {
	if args == "" {
		return engine.DecodeEvent(kind, nil)
	}
	return engine.DecodeEvent(kind, func(target any) error {
		decoder := yaml.NewDecoder(strings.NewReader(args))
		decoder.KnownFields(true)
		return decoder.Decode(target)
	})
}

// pageView is a menu page as the session prints it.
type pageView catalog.Category

func (v pageView) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "page %s %q", v.Key, v.Title)
	if len(v.Headers) > 1 {
		fmt.Fprintf(&b, "\n  %s", strings.Join(v.Headers[1:], " | "))
	}
	for i, p := range v.Products {
		prices := make([]string, len(p.Prices))
		for j, price := range p.Prices {
			if price == "" {
				price = "-"
			}
			prices[j] = price
		}
		fmt.Fprintf(&b, "\n  %d. %s | %s", i+1, p.Name, strings.Join(prices, " | "))
	}
	return b.String()
}

// swipeView reports a gesture that did not change the page.
type swipeView struct {
	From      string `json:"from"`
	Ignored   bool   `json:"ignored,omitempty"`
	Indicator string `json:"indicator,omitempty"`
}

func (v swipeView) String() string {
	if v.Ignored {
		return "swipe ignored on " + v.From
	}
	return fmt.Sprintf("swipe too short on %s (indicator %s)", v.From, v.Indicator)
}

// stepView is one dispatched event and its effects.
type stepView struct {
	Seq     int64        `json:"seq"`
	Event   string       `json:"event"`
	Effects []effectView `json:"effects"`
}

type effectView struct {
	Kind   string        `json:"kind"`
	Effect engine.Effect `json:"effect"`
}

func newStepView(seq int64, ev engine.Event, fx engine.Effects) stepView {
	v := stepView{Seq: seq, Event: ev.Kind(), Effects: make([]effectView, len(fx))}
	for i, f := range fx {
		v.Effects[i] = effectView{Kind: f.Kind(), Effect: f}
	}
	return v
}

func (v stepView) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%d] %s", v.Seq, v.Event)
	if len(v.Effects) == 0 {
		b.WriteString("\n  (no effects)")
	}
	for _, f := range v.Effects {
		for _, line := range strings.Split(f.Effect.String(), "\n") {
			b.WriteString("\n  " + line)
		}
	}
	return b.String()
}
