package cache

import "github.com/sarchlab/pcmcache/replacement"

// HookPos defines the enum of possible hooking positions.
type HookPos struct {
	Name string
}

// HookPosFill is a hook position that triggers after a line is filled.
var HookPosFill = &HookPos{Name: "Fill"}

// HookPosHit is a hook position that triggers when an access hits.
var HookPosHit = &HookPos{Name: "Hit"}

// HookPosEviction is a hook position that triggers when a resident line is
// picked as a victim, before its metadata is cleared.
var HookPosEviction = &HookPos{Name: "Eviction"}

// HookPosWriteBack is a hook position that triggers when a dirty line is
// written back, either on eviction or on flush.
var HookPosWriteBack = &HookPos{Name: "WriteBack"}

// HookCtx is the context that holds all the information about the event that
// triggered a hook.
type HookCtx struct {
	Domain *Comp
	Pos    *HookPos
	Now    replacement.Tick
	Block  *Block
}

// Hook is a short piece of program that can be invoked by a cache.
type Hook interface {
	// Func determines what to do if the hook is invoked.
	Func(ctx HookCtx)
}

// Hookable defines an object that accepts hooks.
type Hookable interface {
	// AcceptHook registers a hook.
	AcceptHook(hook Hook)
}

// A HookableBase provides the hook bookkeeping for types that implement the
// Hookable interface.
type HookableBase struct {
	Hooks []Hook
}

// AcceptHook registers a hook.
func (h *HookableBase) AcceptHook(hook Hook) {
	h.Hooks = append(h.Hooks, hook)
}

// InvokeHook triggers the registered hooks.
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.Hooks {
		hook.Func(ctx)
	}
}
