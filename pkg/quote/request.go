package quote

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// Flag values used by the provider document.
const (
	FlagYes = "S"
	FlagNo  = "N"
)

// Request is the TarificacionThirdPartyRequest document sent to the quoting
// provider. It is built once by Mapper.Map and never modified afterwards.
type Request struct {
	XMLName xml.Name `xml:"TarificacionThirdPartyRequest"`
	Datos   Datos    `xml:"Datos"`
}

// Datos wraps the general data block.
type Datos struct {
	DatosGenerales DatosGenerales `xml:"DatosGenerales"`
}

// DatosGenerales holds the mapped applicant fields. Field order is wire order.
type DatosGenerales struct {
	// CondPpalEsTomador is "S" when the main driver is the policyholder.
	CondPpalEsTomador string `xml:"CondPpalEsTomador"`

	// ConductorUnico is "S" when no occasional driver is declared.
	ConductorUnico string `xml:"ConductorUnico"`

	// FecCot is the quote timestamp, formatted with TimestampLayout.
	FecCot string `xml:"FecCot"`

	// AnosSegAnte is the number of years of prior insurance.
	AnosSegAnte int64 `xml:"AnosSegAnte"`

	// NroCondOca is the number of occasional drivers, "0" or "1".
	NroCondOca string `xml:"NroCondOca"`

	// SeguroEnVigor is "S" when a prior policy is in force.
	SeguroEnVigor string `xml:"SeguroEnVigor"`
}

// MarshalOptions controls XML serialization.
type MarshalOptions struct {
	// Indent is the per-level indentation. Empty produces a single line.
	Indent string

	// Declaration prepends the <?xml ...?> header.
	Declaration bool
}

// DefaultMarshalOptions returns two-space indentation with an XML declaration.
func DefaultMarshalOptions() MarshalOptions {
	return MarshalOptions{
		Indent:      "  ",
		Declaration: true,
	}
}

// Marshal serializes the request as UTF-8 XML terminated by a newline.
func (r *Request) Marshal(opts MarshalOptions) ([]byte, error) {
	var buf bytes.Buffer
	if opts.Declaration {
		buf.WriteString(xml.Header)
	}

	enc := xml.NewEncoder(&buf)
	enc.Indent("", opts.Indent)
	if err := enc.Encode(r); err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	buf.WriteByte('\n')

	return buf.Bytes(), nil
}
