// Package preflight verifies runtime prerequisites before sortd mutates
// anything: directory access and a healthy ledger.
package preflight
