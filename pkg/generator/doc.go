// Package generator runs one quote-request invocation end to end.
//
// A Service reads the applicant profile from a storage.Reader, maps it with
// a quote.Mapper and, in generate mode, writes the document through a
// storage.Writer. Every run is tagged with a run ID, logged, counted in the
// metrics collector and, when an audit sink is configured, recorded in the
// audit trail. Nothing is written unless every step succeeds.
//
// Basic usage:
//
//	svc := generator.New(storage.NewLocal("."), quote.NewMapper())
//	result, err := svc.Generate(ctx, "applicant.json", "insurance_request.xml")
package generator
