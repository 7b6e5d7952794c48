/*
Package quote maps an applicant profile onto the quoting provider's
TarificacionThirdPartyRequest document.

The package has three steps, each usable on its own:

	applicant, err := quote.Decode(data)   // JSON -> Applicant
	err = quote.Validate(applicant)        // all field rules, every failure reported
	req, err := mapper.Map(applicant)      // Applicant -> Request (validates first)

Mapper.Generate runs all three and serializes the result:

	mapper := quote.NewMapper(quote.WithLocation(time.Local))
	doc, err := mapper.Generate(data)

Errors:

Decode returns a *MalformedInputError when the payload is not a JSON object.
Validate and Map return a *ValidationError carrying one FieldError per failing
field. Both match their sentinel with errors.Is:

	if errors.Is(err, quote.ErrValidationFailed) {
		var verr *quote.ValidationError
		errors.As(err, &verr)
		for _, fe := range verr.Errors {
			fmt.Println(fe)
		}
	}

Document order:

The provider parses DatosGenerales positionally. The field order of
DatosGenerales is the wire order and must not be changed.
*/
package quote
