// Package features turns an accepted payload into typed feature columns.
//
// Each declared field becomes one column holding a list of values of the
// field's dtype: scalars become single-element lists and lists are converted
// element by element. Raw values are coerced with spf13/cast, so "42" is a
// valid int64 and 3 is a valid float. Absent optional fields produce no
// column; filling them is left to the model runtime.
package features
