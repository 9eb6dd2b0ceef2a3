package session

import (
	"fmt"

	"github.com/axent-pl/security/common"
)

// Handle addresses one session. Once the session is invalidated or expired,
// every operation fails with common.ErrSessionExpired.
type Handle struct {
	id ID
	m  *Manager
}

func (h *Handle) ID() ID { return h.id }

func (h *Handle) Set(key string, value any) error {
	return h.m.with(h.id, func(rec *record) error {
		rec.attributes[key] = value
		return nil
	})
}

// Get returns common.ErrAttributeNotFound for a key that was never set.
func (h *Handle) Get(key string) (any, error) {
	var value any
	err := h.m.with(h.id, func(rec *record) error {
		v, ok := rec.attributes[key]
		if !ok {
			return fmt.Errorf("%w: %q", common.ErrAttributeNotFound, key)
		}
		value = v
		return nil
	})
	return value, err
}

func (h *Handle) Remove(key string) error {
	return h.m.with(h.id, func(rec *record) error {
		delete(rec.attributes, key)
		return nil
	})
}

// Keys returns the attribute keys in sorted order.
func (h *Handle) Keys() ([]string, error) {
	return h.m.keys(h.id)
}

// Touch refreshes the idle timer.
func (h *Handle) Touch() error {
	return h.m.with(h.id, func(*record) error { return nil })
}

// Invalidate drops the session and all its attributes. Invalidating an
// already invalid session does nothing.
func (h *Handle) Invalidate() {
	h.m.invalidate(h.id)
}

// GetAs reads key and asserts its type.
func GetAs[T any](h *Handle, key string) (T, error) {
	var zero T
	v, err := h.Get(key)
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %q is %T", ErrAttributeType, key, v)
	}
	return typed, nil
}
