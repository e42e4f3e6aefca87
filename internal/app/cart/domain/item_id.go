package domain

import (
	"fmt"
	"strings"
)

// IDKind classifies which backing store owns a cart item.
type IDKind string

const (
	// KindLocal ids are generated client-side and never sent to the remote store.
	KindLocal IDKind = "local"
	// KindRemote ids are assigned by the Remote Cart Service.
	KindRemote IDKind = "remote"
)

// ItemID is a cart item identifier tagged with its classification.
// The zero value is invalid.
type ItemID struct {
	kind  IDKind
	value string
}

// NewLocalID tags value as a client-generated id.
func NewLocalID(value string) ItemID {
	return ItemID{kind: KindLocal, value: value}
}

// NewRemoteID tags value as an id assigned by the remote store.
func NewRemoteID(value string) ItemID {
	return ItemID{kind: KindRemote, value: value}
}

// ParseItemID parses the "kind:value" form produced by String.
func ParseItemID(s string) (ItemID, error) {
	kind, value, ok := strings.Cut(s, ":")
	if !ok || value == "" {
		return ItemID{}, fmt.Errorf("%w: %q", ErrInvalidItemID, s)
	}
	switch IDKind(kind) {
	case KindLocal:
		return NewLocalID(value), nil
	case KindRemote:
		return NewRemoteID(value), nil
	default:
		return ItemID{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidItemID, kind)
	}
}

func (id ItemID) Kind() IDKind   { return id.kind }
func (id ItemID) Value() string  { return id.value }
func (id ItemID) IsLocal() bool  { return id.kind == KindLocal }
func (id ItemID) IsRemote() bool { return id.kind == KindRemote }

// IsZero reports whether the id was never assigned.
func (id ItemID) IsZero() bool {
	return id.kind == "" || id.value == ""
}

func (id ItemID) String() string {
	if id.IsZero() {
		return ""
	}
	return string(id.kind) + ":" + id.value
}
