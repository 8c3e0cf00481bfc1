package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/roach88/techbar/internal/ledger"
	"github.com/roach88/techbar/internal/observability"
)

func (e *Engine) showOrders(ctx context.Context, ev ShowOrders) (Effects, error) {
	if e.screen == ScreenMenu {
		e.prevCategory = ev.Category
		e.prevTitle = ev.Title
	}
	e.screen = ScreenOrders
	orders, err := e.renderOrders(ctx)
	if err != nil {
		return nil, err
	}
	return Effects{ShowScreen{Screen: ScreenOrders, Title: TitleOrders}, orders}, nil
}

func (e *Engine) hideOrders(ev HideOrders) (Effects, error) {
	if e.screen != ScreenOrders {
		return nil, unexpected(ev, e.state, "orders screen is not showing")
	}
	e.screen = ScreenMenu
	title := e.prevTitle
	if title == "" {
		title = DefaultTitle
	}
	fx := Effects{ShowScreen{Screen: ScreenMenu, Title: title}}
	if e.prevCategory != "" {
		fx = append(fx, LoadContent{Category: e.prevCategory})
	}
	return fx, nil
}

func (e *Engine) deleteOrder(ctx context.Context, ev DeleteOrder) (Effects, error) {
	moved, err := e.ledger.Delete(ctx, ledger.ID(ev.ID))
	if err != nil {
		return nil, err
	}
	if moved {
		e.metrics.OrderDeleted()
		e.logger.Info("order moved to history", "id", ev.ID)
	}
	if e.screen != ScreenOrders {
		return nil, nil
	}
	orders, err := e.renderOrders(ctx)
	if err != nil {
		return nil, err
	}
	return Effects{orders}, nil
}

func (e *Engine) showHistory(ctx context.Context) (Effects, error) {
	e.screen = ScreenHistory
	history, err := e.renderHistory(ctx)
	if err != nil {
		return nil, err
	}
	return Effects{ShowScreen{Screen: ScreenHistory, Title: TitleHistory}, history}, nil
}

func (e *Engine) hideHistory(ctx context.Context, ev HideHistory) (Effects, error) {
	if e.screen != ScreenHistory {
		return nil, unexpected(ev, e.state, "history screen is not showing")
	}
	var fx Effects
	if e.promptOpen {
		e.promptOpen = false
		fx = append(fx, CloseSecretPrompt{})
	}
	e.screen = ScreenOrders
	orders, err := e.renderOrders(ctx)
	if err != nil {
		return nil, err
	}
	return append(fx, ShowScreen{Screen: ScreenOrders, Title: TitleOrders}, orders), nil
}

func (e *Engine) promptClear(ev PromptClearHistory) (Effects, error) {
	if e.screen != ScreenHistory {
		return nil, unexpected(ev, e.state, "history screen is not showing")
	}
	e.promptOpen = true
	return Effects{OpenSecretPrompt{Title: PromptSecret, Placeholder: PlaceholderSecret}}, nil
}

func (e *Engine) submitSecret(ctx context.Context, ev SubmitHistorySecret) (Effects, error) {
	if !e.promptOpen {
		return nil, unexpected(ev, e.state, "secret prompt is not open")
	}
	err := e.ledger.ClearHistory(ctx, ev.Secret)
	if errors.Is(err, ledger.ErrSecretMismatch) {
		e.metrics.GuardRejected(observability.ReasonWrongSecret)
		return Effects{SecretRejected{Placeholder: PlaceholderRejected}}, nil
	}
	if err != nil {
		return nil, err
	}
	e.metrics.HistoryCleared()
	e.logger.Info("history cleared")
	e.promptOpen = false

	history, err := e.renderHistory(ctx)
	if err != nil {
		return nil, err
	}
	return Effects{CloseSecretPrompt{}, history}, nil
}

func (e *Engine) renderOrders(ctx context.Context) (RenderOrders, error) {
	recs, err := e.ledger.Orders(ctx)
	if err != nil {
		return RenderOrders{}, fmt.Errorf("load orders: %w", err)
	}
	views := OrderViews(recs)
	if len(views) == 0 {
		return RenderOrders{Orders: views, Empty: EmptyOrders}, nil
	}
	return RenderOrders{Orders: views}, nil
}

func (e *Engine) renderHistory(ctx context.Context) (RenderHistory, error) {
	recs, err := e.ledger.History(ctx)
	if err != nil {
		return RenderHistory{}, fmt.Errorf("load history: %w", err)
	}
	views := OrderViews(recs)
	if len(views) == 0 {
		return RenderHistory{Orders: views, Empty: EmptyHistory}, nil
	}
	return RenderHistory{Orders: views}, nil
}

// OrderViews lays out records for the orders and history screens. Headings
// are numbered from 1 in the given order.
func OrderViews(recs []ledger.Record) []OrderView {
	views := make([]OrderView, 0, len(recs))
	for i, r := range recs {
		v := OrderView{
			ID:      string(r.ID),
			Heading: fmt.Sprintf("ORDEN %d - %s", i+1, r.Date),
			Items:   make([]ItemView, 0, len(r.Items)),
			Total:   "Total: " + Money(r.Total),
		}
		if r.DeletedAt != "" {
			v.Deleted = "Eliminada: " + r.DeletedAt
		}
		for _, it := range r.Items {
			v.Items = append(v.Items, ItemView{
				Name:           it.Name,
				Price:          Money(it.Price),
				Customizations: it.Customizations,
			})
		}
		views = append(views, v)
	}
	return views
}
