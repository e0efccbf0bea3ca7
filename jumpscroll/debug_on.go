//go:build jumpdebug

package jumpscroll

// debugChecks turns list bookkeeping violations into panics.
const debugChecks = true
