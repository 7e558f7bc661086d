package dropdown

import (
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/xselect/internal/pubsub"
)

// PointerHub is the ambient scope that sees every click in the program.
// The host dispatches each tea.MouseMsg to it before routing the message to
// individual components.
type PointerHub = pubsub.Hub[tea.MouseMsg]

// NewPointerHub creates an empty ambient scope.
func NewPointerHub() *PointerHub {
	return pubsub.NewHub[tea.MouseMsg]()
}

// HitTester answers whether a mouse event lies within a rendered zone.
type HitTester interface {
	InBounds(zoneID string, msg tea.MouseMsg) bool
}

// ZoneHitTester resolves zones through the global bubblezone manager.
// The host must call zone.NewGlobal and zone.Scan its rendered view.
type ZoneHitTester struct{}

// InBounds implements HitTester.
func (ZoneHitTester) InBounds(zoneID string, msg tea.MouseMsg) bool {
	z := zone.Get(zoneID)
	return z != nil && z.InBounds(msg)
}

func isClick(msg tea.MouseMsg) bool {
	return msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionRelease
}

// OutsideWatcher is a cancellable subscription on a PointerHub that reports
// the first click landing outside its container.
type OutsideWatcher struct {
	hub   *PointerHub
	token pubsub.Token
}

// watchOutside subscribes to hub. The handler fires at most once: the first
// click for which inside returns false yields an OutsideClickMsg.
func watchOutside(hub *PointerHub, owner string, inside func(tea.MouseMsg) bool) OutsideWatcher {
	var (
		tok   pubsub.Token
		fired bool
	)
	tok = hub.Subscribe(func(msg tea.MouseMsg) tea.Msg {
		if fired || !isClick(msg) || inside(msg) {
			return nil
		}
		fired = true
		return OutsideClickMsg{ID: owner, Token: tok}
	})
	return OutsideWatcher{hub: hub, token: tok}
}

// Token returns the subscription token, empty when not watching.
func (w OutsideWatcher) Token() pubsub.Token { return w.token }

// Active reports whether the subscription is still registered.
func (w OutsideWatcher) Active() bool {
	return w.token != "" && w.hub.Active(w.token)
}

// Cancel removes the subscription. Safe to call repeatedly.
func (w OutsideWatcher) Cancel() OutsideWatcher {
	if w.hub != nil && w.token != "" {
		w.hub.Unsubscribe(w.token)
	}
	return OutsideWatcher{}
}
