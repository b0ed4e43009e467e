// Package formfile loads descriptor lists from JSON, YAML or TOML documents.
// A document maps form ids to their ordered field lists:
//
//	forms:
//	  signup:
//	    fields:
//	      - id: email
//	        type: email
//	        label: Email
//	        required: true
//
// Field types accept the canonical names and the inputText/inputEmail/
// inputPassword aliases. Labels are stripped of markup and fall back to a
// label derived from the id. Every form is validated when loaded, so a
// broken list fails here rather than on the first keystroke.
package formfile
