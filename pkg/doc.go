// Package pkg provides shared infrastructure for the rtl2832 driver:
// structured logging with per-component filtering, the sentinel errors
// returned across the module, and transfer completion status codes.
package pkg
