// Package testutil provides test doubles shared by ironup's package tests:
// an in-memory types.FS and a recording types.Runner that returns scripted
// results instead of invoking real package managers.
package testutil
