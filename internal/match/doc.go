// Package match pairs loosely spelled wire names with Go struct fields.
//
// NormalizeIdent folds OperDate, oper_date and OPER-DATE to the same key, and
// Suggest ranks the known names closest to an unrecognized one by edit distance.
package match
