// tarifa turns an applicant profile (JSON) into the
// TarificacionThirdPartyRequest XML document expected by the third-party
// quoting provider.
//
// Usage:
//
//	# Generate insurance_request.xml from applicant.json
//	tarifa generate applicant.json
//
//	# Write to a specific file, or print without writing
//	tarifa generate applicant.json quote.xml
//	tarifa generate applicant.json --stdout
//
//	# Check an input without generating anything
//	tarifa validate applicant.json
//
//	# Regenerate whenever the input changes
//	tarifa watch applicant.json
//
//	# Inspect and prune the audit trail
//	tarifa audit list --limit 20
//	tarifa audit prune --older-than 720h
package main

import (
	_ "time/tzdata" // clock.timezone must resolve on hosts without zoneinfo
)

func main() {
	Execute()
}
