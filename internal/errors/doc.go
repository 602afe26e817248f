// Package errors provides structured, coded errors for htmlkit.
//
// Every error carries a code (e.g. "H020") that maps to a short message and
// a longer explanation. Errors raised while reading a document may also carry
// the input location and the surrounding lines:
//
//	err := errors.New("H020").
//	    WithSource("page.yaml", src, 3, 5).
//	    Wrap(yamlErr)
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR H020: Invalid document
//	//
//	//   page.yaml:3:5
//	//
//	//        1 │ tag: div
//	//        2 │ attrs:
//	//   →    3 │   id: [
//	//          │     ^
//	//
//	//   The document could not be parsed as YAML or JSON.
//
// # Error Categories
//
//   - validation: attribute expression errors
//   - config: htmlkit.json errors
//   - document: YAML/JSON document errors
//   - publish: object store errors
//   - cli: command line usage errors
package errors
