//go:build !jumpdebug

package jumpscroll

const debugChecks = false
