package store

import "errors"

// ErrNotFound is returned when an operation targets a product id that
// does not exist. Delete tolerates it; SetAmount and AddAmount surface it.
var ErrNotFound = errors.New("product not found")

// ErrNegativeAmount is returned when an amount mutation would take a
// product's amount below zero. The stored record is left unchanged.
var ErrNegativeAmount = errors.New("amount cannot be negative")
