// Package readspeed implements the per-language character counting rules and
// the static authoring-limit tables (characters per line, characters per
// second) used for compliance checks and reflow budgets.
package readspeed
