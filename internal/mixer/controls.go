package mixer

import "context"

// Control is one entry of the hardware control inventory.
type Control struct {
	Name   string
	Handle int
}

// ControlReader is the read side of the external mixer-control collaborator.
// Each typed read fails with a type_mismatch error when the hardware reports a
// different control type.
type ControlReader interface {
	ListControls(ctx context.Context) ([]Control, error)
	ReadBoolean(ctx context.Context, handle int) (bool, error)
	ReadInteger(ctx context.Context, handle int) (int, error)
	ReadEnumerated(ctx context.Context, handle int) (int, []Item, error)
}
