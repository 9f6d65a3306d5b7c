package controls

// KeyTracker turns polled key state into Press/Release events. Several keys
// may drive one action; the action stays held while any of them is down.
type KeyTracker[K comparable] struct {
	Bindings map[K]Action

	down [numActions]bool
}

func NewKeyTracker[K comparable](bindings map[K]Action) *KeyTracker[K] {
	return &KeyTracker[K]{Bindings: bindings}
}

// Poll reads every bound key through isDown and forwards the edges to a.
func (k *KeyTracker[K]) Poll(a *Aggregator, isDown func(K) bool) {
	var now [numActions]bool
	for key, act := range k.Bindings {
		if act < 0 || act >= numActions {
			continue
		}
		if isDown(key) {
			now[act] = true
		}
	}

	for act := Action(0); act < numActions; act++ {
		switch {
		case now[act] && !k.down[act]:
			a.Press(act)
		case !now[act] && k.down[act]:
			a.Release(act)
		}
	}
	k.down = now
}

// ReleaseAll releases every held action, e.g. when focus moves to a text
// field.
func (k *KeyTracker[K]) ReleaseAll(a *Aggregator) {
	for act := Action(0); act < numActions; act++ {
		if k.down[act] {
			a.Release(act)
		}
	}
	k.down = [numActions]bool{}
}
