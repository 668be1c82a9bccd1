// Package filter decides, for a single relative path, whether a comparison
// includes it, ignores it entirely, or lists it without descending into it.
//
// Rules are applied in a fixed order:
//   - shallow ignore: the first component names a shallow-ignored directory
//   - full ignore: any component matches an ignore pattern
//   - include only: the path does not start with any include prefix
//   - depth: the path has more components than the depth bound
package filter
