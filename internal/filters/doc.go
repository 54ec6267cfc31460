// Package filters implements the basic, artistic and custom photo filters.
//
// A filter is described by a Spec, a closed tagged union of three variants:
//
//   - Basic: the legacy presets (none, vintage, blackwhite, warm, cool), each a
//     single fused colour-matrix pass equivalent to the CSS filter string it was
//     designed with.
//   - Artistic: eight named styles, each an ordered composition of primitive
//     pixel operations.
//   - Custom: a fully parameterised filter applied in a fixed order.
//
// Every filter is pure: it returns a new buffer and leaves its input untouched.
// Output channels are always clamped to [0,255].
//
// # Cache Keys
//
// Spec.Name and Spec.Params together identify a filter for memoisation.
// Params is a canonical serialisation, so two equal specs always produce equal
// keys.
package filters
