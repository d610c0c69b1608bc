// Package validator checks an inference payload against a model's field registry.
//
// Validation is a pure, bounded computation: it never blocks, keeps no state
// between calls, and reports every violation of a payload in one pass.
//
//	res := validator.Validate(reg, domain.Payload{"query": "shoes"}, domain.ModeStrict)
//	if !res.OK() {
//	    for _, v := range res.Violations() {
//	        // report v.Field and v.Kind to the caller
//	    }
//	}
//	accepted := res.Accepted() // keys in declaration order
package validator
