package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/roach88/techbar/internal/ledger"
	"github.com/roach88/techbar/internal/menu"
	"github.com/roach88/techbar/internal/mixer"
	"github.com/roach88/techbar/internal/observability"
)

// Fixed texts shown by the engine.
const (
	NoticeNoAccompaniment = "Por favor seleccione al menos un acompañamiento"
	NoticeNoCookingTerm   = "Por favor seleccione un término de cocción primero"
	NoticeEmptyOrder      = "La orden está vacía. Por favor agregue productos."
	MessageOrderCompleted = "¡Orden completada con éxito!"

	LabelKeepIngredients = "Con todos los ingredientes"
	LabelStandardGarnish = "Guarnición estándar"
	labelWithout         = "Sin: "
	labelTerm            = "Término: "
	labelGarnish         = "Guarnición: "

	TitleOrders  = "Órdenes Guardadas"
	TitleHistory = "Historial de Órdenes"
	DefaultTitle = "Coctelería"
	EmptyOrders  = "No hay órdenes guardadas"
	EmptyHistory = "No hay órdenes en el historial"

	PromptSecret        = "Ingrese la clave para eliminar el historial"
	PlaceholderSecret   = "Ingrese la clave"
	PlaceholderRejected = "Clave incorrecta. Intente nuevamente"
)

// Product is the transient context between a price tap and the end of its
// customization.
type Product struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Tier     menu.PriceTier  `json:"tier"`
	Category string          `json:"category"`
	Protocol menu.Protocol   `json:"protocol"`
}

// Engine is the single-writer order engine of one session.
type Engine struct {
	ledger  *ledger.Ledger
	ids     IDGenerator
	clock   *Clock
	logger  *slog.Logger
	metrics *observability.Metrics

	state  State
	screen Screen
	items  []LineItem

	// Customization in progress. product is nil when no picker is open.
	product *Product
	drinks  mixer.Selection
	serving mixer.Serving
	term    menu.CookingTerm

	prevCategory string
	prevTitle    string
	promptOpen   bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithIDGenerator sets the generator of line item and order ids.
//
// Default: UUIDv7Generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(e *Engine) { e.ids = g }
}

// WithLogger sets the engine logger. Default: a discard logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithMetrics sets the collectors the engine records into.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithClock sets the logical clock stamping dispatched events.
func WithClock(c *Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// New creates an idle engine on the menu screen that persists through l.
func New(l *ledger.Ledger, opts ...Option) *Engine {
	e := &Engine{
		ledger: l,
		ids:    UUIDv7Generator{},
		clock:  NewClock(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Reset drops the running order and any customization in progress and
// returns to StateIdle. The current screen is kept.
func (e *Engine) Reset() {
	e.items = nil
	e.clearSelection()
	e.state = StateIdle
}

func (e *Engine) State() State   { return e.state }
func (e *Engine) Screen() Screen { return e.screen }
func (e *Engine) Seq() int64     { return e.clock.Current() }

// Items returns a copy of the running order.
func (e *Engine) Items() []LineItem {
	return slices.Clone(e.items)
}

// Total returns the sum of the unit prices of the running order.
func (e *Engine) Total() decimal.Decimal {
	return ledger.Sum(e.items)
}

// Product returns the product being customized, if any.
func (e *Engine) Product() (Product, bool) {
	if e.product == nil {
		return Product{}, false
	}
	return *e.product, true
}

// Drinks returns the bottle picker state while one is open.
func (e *Engine) Drinks() (mixer.Selection, bool) {
	if e.product == nil || e.product.Protocol != menu.ProtocolBottle {
		return mixer.Selection{}, false
	}
	return e.drinks, true
}

// Dispatch applies one event and returns the display updates it causes.
func (e *Engine) Dispatch(ctx context.Context, ev Event) (Effects, error) {
	if ev == nil {
		return nil, &Error{Code: ErrCodeUnknownEvent, Message: "nil event", State: e.state}
	}
	seq := e.clock.Next()
	e.logger.Debug("dispatch",
		"seq", seq,
		"event", ev.Kind(),
		"state", e.state.String(),
		"screen", e.screen.String(),
	)

	fx, err := e.dispatch(ctx, ev)
	if err != nil {
		e.logger.Warn("event refused",
			"seq", seq,
			"event", ev.Kind(),
			"error", err,
		)
		return nil, err
	}
	return fx, nil
}

func (e *Engine) dispatch(ctx context.Context, ev Event) (Effects, error) {
	switch ev := ev.(type) {
	case ToggleOrderMode:
		return e.toggle(), nil
	case TapPrice:
		return e.tap(ev)
	case IncrementDrink:
		return e.incrementDrink(ev)
	case DecrementDrink:
		return e.decrementDrink(ev)
	case ChooseNoDrinks:
		return e.chooseNoDrinks(ev)
	case ChooseServing:
		return e.chooseServing(ev)
	case ConfirmDrinks:
		return e.confirmDrinks(ev)
	case CancelSelection:
		e.clearSelection()
		return Effects{CloseModals{}}, nil
	case KeepIngredients:
		return e.keepIngredients(ev)
	case CustomizeIngredients:
		if err := e.requirePicker(ev, menu.ProtocolFood); err != nil {
			return nil, err
		}
		return Effects{ShowInput{Field: FieldIngredients}}, nil
	case ConfirmIngredients:
		return e.confirmIngredients(ev)
	case SelectCookingTerm:
		return e.selectCookingTerm(ev)
	case ChangeGarnish:
		return e.changeGarnish(ev)
	case KeepGarnish:
		return e.confirmMeat(ev, "")
	case ConfirmGarnish:
		return e.confirmMeat(ev, ev.Text)
	case RemoveItem:
		return e.removeItem(ev)
	case CompleteOrder:
		return e.complete(ev)
	case AcknowledgeCompletion:
		return e.acknowledge(ctx, ev)
	case ShowOrders:
		return e.showOrders(ctx, ev)
	case HideOrders:
		return e.hideOrders(ev)
	case DeleteOrder:
		return e.deleteOrder(ctx, ev)
	case ShowHistory:
		return e.showHistory(ctx)
	case HideHistory:
		return e.hideHistory(ctx, ev)
	case PromptClearHistory:
		return e.promptClear(ev)
	case SubmitHistorySecret:
		return e.submitSecret(ctx, ev)
	case DismissPrompt:
		if !e.promptOpen {
			return nil, nil
		}
		e.promptOpen = false
		return Effects{CloseSecretPrompt{}}, nil
	}
	return nil, &Error{
		Code:    ErrCodeUnknownEvent,
		Message: fmt.Sprintf("unhandled event type %T", ev),
		Event:   ev.Kind(),
		State:   e.state,
	}
}

// Order mode

func (e *Engine) toggle() Effects {
	switch e.state {
	case StateIdle:
		e.items = nil
		e.clearSelection()
		e.state = StateComposing
		return Effects{ModeChanged{On: true}, e.renderOrder()}
	case StateComposing, StateCompleting:
		e.Reset()
		return Effects{CloseModals{}, ModeChanged{On: false}, e.renderOrder()}
	}
	panic(fmt.Sprintf("engine: unmapped state %d", int(e.state)))
}

// Product selection

func (e *Engine) tap(ev TapPrice) (Effects, error) {
	switch e.state {
	case StateIdle:
		return nil, nil
	case StateCompleting:
		return nil, unexpected(ev, e.state, "tap while the completion confirmation is open")
	case StateComposing:
	}

	t := menu.Tap(ev)
	p := &Product{
		Name:     t.Product,
		Price:    menu.ParsePrice(t.Price),
		Tier:     t.Tier(),
		Category: t.Category,
		Protocol: menu.Classify(t),
	}
	e.clearSelection()

	switch p.Protocol {
	case menu.ProtocolPlain:
		e.product = p
		return e.addItem(false), nil
	case menu.ProtocolBottle:
		e.product = p
		e.drinks = mixer.New(menu.ClassifyLiquor(t.Category, t.Product))
		return Effects{
			OpenModal{Modal: ModalDrinks, Title: menu.DisplayName(p.Tier, p.Name), Message: e.drinks.Message()},
			e.drinkPanel(),
		}, nil
	case menu.ProtocolLiter, menu.ProtocolCup:
		e.product = p
		e.serving = mixer.NewServing(menu.ClassifyLiquor(t.Category, t.Product), p.Tier)
		return Effects{
			OpenModal{Modal: ModalServing, Title: menu.DisplayName(p.Tier, p.Name), Message: e.serving.Message()},
			e.servingPanel(),
		}, nil
	case menu.ProtocolFood:
		e.product = p
		return Effects{OpenModal{Modal: ModalFood, Title: p.Name}}, nil
	case menu.ProtocolMeat:
		e.product = p
		return Effects{OpenModal{Modal: ModalMeat, Title: p.Name}}, nil
	case menu.ProtocolUnpriced:
		e.metrics.GuardRejected(observability.ReasonUnpricedColumn)
		e.logger.Warn("liquor price column without tier marker",
			"product", t.Product,
			"category", t.Category,
			"column", t.Column,
		)
		return nil, nil
	}
	panic(fmt.Sprintf("engine: unmapped protocol %d", int(p.Protocol)))
}

// requirePicker checks that a picker for one of the given protocols is open.
func (e *Engine) requirePicker(ev Event, protocols ...menu.Protocol) error {
	if e.state != StateComposing {
		return unexpected(ev, e.state, "no order in progress")
	}
	if e.product == nil {
		return unexpected(ev, e.state, "no product selected")
	}
	if !slices.Contains(protocols, e.product.Protocol) {
		return unexpected(ev, e.state, "open picker is %s", e.product.Protocol)
	}
	return nil
}

func (e *Engine) clearSelection() {
	e.product = nil
	e.drinks = mixer.Selection{}
	e.serving = mixer.Serving{}
	e.term = ""
}

// Drinks

func (e *Engine) incrementDrink(ev IncrementDrink) (Effects, error) {
	if err := e.requirePicker(ev, menu.ProtocolBottle); err != nil {
		return nil, err
	}
	if _, ok := menu.MatchOption(e.drinks.Options(), ev.Option); !ok {
		return nil, unknownOption(ev, e.state, ev.Option)
	}
	if next, ok := e.drinks.Increment(ev.Option); ok {
		e.drinks = next
	}
	return Effects{e.drinkPanel()}, nil
}

func (e *Engine) decrementDrink(ev DecrementDrink) (Effects, error) {
	if err := e.requirePicker(ev, menu.ProtocolBottle); err != nil {
		return nil, err
	}
	if _, ok := menu.MatchOption(e.drinks.Options(), ev.Option); !ok {
		return nil, unknownOption(ev, e.state, ev.Option)
	}
	e.drinks = e.drinks.Decrement(ev.Option)
	return Effects{e.drinkPanel()}, nil
}

func (e *Engine) chooseNoDrinks(ev ChooseNoDrinks) (Effects, error) {
	if err := e.requirePicker(ev, menu.ProtocolBottle); err != nil {
		return nil, err
	}
	e.drinks = e.drinks.ChooseNone()
	return Effects{e.drinkPanel()}, nil
}

func (e *Engine) chooseServing(ev ChooseServing) (Effects, error) {
	if err := e.requirePicker(ev, menu.ProtocolLiter, menu.ProtocolCup); err != nil {
		return nil, err
	}
	next, ok := e.serving.Choose(ev.Option)
	if !ok {
		return nil, unknownOption(ev, e.state, ev.Option)
	}
	e.serving = next
	return Effects{e.servingPanel()}, nil
}

func (e *Engine) confirmDrinks(ev ConfirmDrinks) (Effects, error) {
	if err := e.requirePicker(ev, menu.ProtocolBottle, menu.ProtocolLiter, menu.ProtocolCup); err != nil {
		return nil, err
	}
	var (
		desc string
		err  error
	)
	if e.product.Protocol == menu.ProtocolBottle {
		desc, err = e.drinks.Describe()
	} else {
		desc, err = e.serving.Describe()
	}
	if errors.Is(err, mixer.ErrNothingSelected) {
		return e.reject(observability.ReasonNoAccompaniment, NoticeNoAccompaniment), nil
	}
	if err != nil {
		return nil, err
	}
	e.product.Name = menu.DisplayName(e.product.Tier, e.product.Name)
	return e.addItem(true, desc), nil
}

func (e *Engine) drinkPanel() RenderDrinkPanel {
	return RenderDrinkPanel{
		Category:   e.drinks.Category().Title(),
		Rule:       e.drinks.Rule().String(),
		Message:    e.drinks.Message(),
		Weighted:   e.drinks.WeightedTotal(),
		Max:        e.drinks.Max(),
		Controls:   e.drinks.Controls(),
		NoneChosen: e.drinks.NoneChosen(),
	}
}

func (e *Engine) servingPanel() RenderServingPanel {
	return RenderServingPanel{
		Category: e.serving.Category().Title(),
		Message:  e.serving.Message(),
		Options:  e.serving.Options(),
		Chosen:   e.serving.Chosen(),
	}
}

// Food and meat

func (e *Engine) keepIngredients(ev KeepIngredients) (Effects, error) {
	if err := e.requirePicker(ev, menu.ProtocolFood); err != nil {
		return nil, err
	}
	return e.addItem(true, LabelKeepIngredients), nil
}

func (e *Engine) confirmIngredients(ev ConfirmIngredients) (Effects, error) {
	if err := e.requirePicker(ev, menu.ProtocolFood); err != nil {
		return nil, err
	}
	text := strings.TrimSpace(ev.Text)
	if text == "" {
		return e.addItem(true, LabelKeepIngredients), nil
	}
	return e.addItem(true, labelWithout+text), nil
}

func (e *Engine) selectCookingTerm(ev SelectCookingTerm) (Effects, error) {
	if err := e.requirePicker(ev, menu.ProtocolMeat); err != nil {
		return nil, err
	}
	term, ok := menu.ParseCookingTerm(ev.Term)
	if !ok {
		return nil, unknownOption(ev, e.state, ev.Term)
	}
	e.term = term
	return Effects{TermSelected{Term: string(term), Label: term.Label()}}, nil
}

func (e *Engine) changeGarnish(ev ChangeGarnish) (Effects, error) {
	if err := e.requirePicker(ev, menu.ProtocolMeat); err != nil {
		return nil, err
	}
	if e.term == "" {
		return e.reject(observability.ReasonNoCookingTerm, NoticeNoCookingTerm), nil
	}
	return Effects{ShowInput{Field: FieldGarnish}}, nil
}

// confirmMeat adds the meat dish. An empty garnish keeps the standard one.
func (e *Engine) confirmMeat(ev Event, garnish string) (Effects, error) {
	if err := e.requirePicker(ev, menu.ProtocolMeat); err != nil {
		return nil, err
	}
	if e.term == "" {
		return e.reject(observability.ReasonNoCookingTerm, NoticeNoCookingTerm), nil
	}
	garnishLabel := LabelStandardGarnish
	if g := strings.TrimSpace(garnish); g != "" {
		garnishLabel = labelGarnish + g
	}
	return e.addItem(true, labelTerm+e.term.Label(), garnishLabel), nil
}

// Order lifecycle

// addItem appends the selected product with the given customizations and
// clears the selection.
func (e *Engine) addItem(closeModal bool, customizations ...string) Effects {
	p := e.product
	item := LineItem{
		ID:             ledger.ID(e.ids.Generate()),
		Name:           p.Name,
		Price:          p.Price,
		Customizations: append([]string{}, customizations...),
	}
	e.items = append(e.items, item)
	e.metrics.ItemAdded(p.Protocol.String())
	e.logger.Debug("item added",
		"id", string(item.ID),
		"name", item.Name,
		"protocol", p.Protocol.String(),
	)
	e.clearSelection()

	if closeModal {
		return Effects{CloseModals{}, e.renderOrder()}
	}
	return Effects{e.renderOrder()}
}

func (e *Engine) removeItem(ev RemoveItem) (Effects, error) {
	if e.state != StateComposing {
		return nil, unexpected(ev, e.state, "no order in progress")
	}
	e.items = slices.DeleteFunc(e.items, func(it LineItem) bool {
		return string(it.ID) == ev.ID
	})
	return Effects{e.renderOrder()}, nil
}

func (e *Engine) complete(ev CompleteOrder) (Effects, error) {
	if e.state != StateComposing {
		return nil, unexpected(ev, e.state, "no order in progress")
	}
	if len(e.items) == 0 {
		return e.reject(observability.ReasonEmptyOrder, NoticeEmptyOrder), nil
	}
	e.clearSelection()
	e.state = StateCompleting
	return Effects{OpenModal{Modal: ModalCompletion, Title: MessageOrderCompleted}}, nil
}

func (e *Engine) acknowledge(ctx context.Context, ev AcknowledgeCompletion) (Effects, error) {
	if e.state != StateCompleting {
		return nil, unexpected(ev, e.state, "no completion pending")
	}
	rec := ledger.Record{
		ID:    ledger.ID(e.ids.Generate()),
		Items: e.Items(),
		Total: e.Total(),
	}
	if err := e.ledger.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("complete order: %w", err)
	}
	e.metrics.OrderCompleted(rec.Total.InexactFloat64())
	e.logger.Info("order completed",
		"id", string(rec.ID),
		"items", len(rec.Items),
		"total", rec.Total.StringFixed(2),
	)

	e.Reset()
	fx := Effects{CloseModals{}, ModeChanged{On: false}, e.renderOrder()}
	if e.screen == ScreenOrders {
		orders, err := e.renderOrders(ctx)
		if err != nil {
			return nil, err
		}
		fx = append(fx, orders)
	}
	return fx, nil
}

func (e *Engine) renderOrder() RenderOrder {
	return RenderOrder{Items: e.Items(), Total: e.Total()}
}

// reject answers a guard condition with a notice. State is left unchanged.
func (e *Engine) reject(reason, text string) Effects {
	e.metrics.GuardRejected(reason)
	e.logger.Debug("guard rejected", "reason", reason)
	return Effects{Notice{Text: text}}
}
