// Package document renders markup from YAML or JSON descriptions.
//
// A document is a tree of nodes. A node is either a string, rendered as
// encoded text, or a mapping:
//
//	tag: form
//	attrs:
//	  id: signup
//	  class: [form, wide]
//	  data: {endpoint: /api, retries: 3}
//	children:
//	  - tag: label
//	    text: Plan
//	  - tag: select
//	    attrs: {name: plan}
//	    prompt: Choose a plan
//	    items:
//	      free: Free
//	      Paid:
//	        pro: Pro
//	        team: Team
//	    selection: pro
//
// Attribute values follow the YAML types: null omits the attribute, bools
// are boolean attributes, sequences are lists and mappings are nested maps.
// Mapping order is kept, so attributes and select items render in the order
// they are written.
package document
