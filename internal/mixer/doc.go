// Package mixer models the state of a Scarlett mixer as a typed tree and builds it
// from the flat list of ALSA control names the driver exposes.
//
// The tree has three layers:
//
//  1. Values: ScalarValue (bool or int) and EnumeratedValue, each remembering the
//     numeric control handle (ALSA numid) it was read from.
//  2. Containers: MatrixEntry, OutputGain and InputCapture, keyed by a canonical
//     two-digit row or channel string (see CanonicalKey).
//  3. The Mixer aggregate, owning global controls and the three container maps.
//
// Discover walks the control inventory in name order and classifies every control
// into its slot, creating containers on first reference. Any name it does not
// recognise aborts discovery with an unknown_control error.
package mixer
