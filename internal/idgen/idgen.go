// Package idgen generates human-readable entity codes and opaque reference ids.
// Codes are NOT guaranteed globally unique — the unique index on the backing
// column is the real guard; callers must treat a duplicate-key insert error as
// a collision and regenerate.
package idgen

import (
	"math/rand"
	"strconv"
	"strings"
	"time"
)

const (
	// PrefixProduct and PrefixCustomer are the code prefixes used across the app.
	PrefixProduct  = "P"
	PrefixCustomer = "C"

	codeSpace = 100000 // 5 decimal digits
)

// NewCode returns prefix + 5-digit zero-padded random decimal number,
// e.g. "P04213". Pure in-memory, no I/O.
func NewCode(prefix string) string {
	n := rand.Intn(codeSpace)
	s := strconv.Itoa(n)
	return prefix + strings.Repeat("0", 5-len(s)) + s
}

// NewProductCode returns a product code ("P#####").
func NewProductCode() string { return NewCode(PrefixProduct) }

// NewCustomerCode returns a customer code ("C#####").
func NewCustomerCode() string { return NewCode(PrefixCustomer) }

// NewReference returns an upper-cased opaque id of the form
// base36(unix millis) + "-" + base36(random). The time component keeps
// references roughly sortable and makes collisions unlikely, not impossible.
func NewReference() string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)
	rnd := strconv.FormatInt(rand.Int63n(36*36*36*36*36*36), 36)
	return strings.ToUpper(ts + "-" + rnd)
}
