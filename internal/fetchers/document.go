package fetchers

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// feedDocument mirrors the hamqsl solar XML. The root element name is not
// checked; the document must contain a solardata child.
type feedDocument struct {
	XMLName   xml.Name
	SolarData *feedSolarData `xml:"solardata"`
}

type feedSolarData struct {
	CalculatedConditions struct {
		Bands []feedBand `xml:"band"`
	} `xml:"calculatedconditions"`

	CalculatedVHFConditions struct {
		Phenomena []feedPhenomenon `xml:"phenomenon"`
	} `xml:"calculatedvhfconditions"`

	// every other child element is a scalar leaf
	Leaves []feedLeaf `xml:",any"`
}

type feedLeaf struct {
	XMLName xml.Name
	Text    string `xml:",chardata"`
}

type feedBand struct {
	Name      string `xml:"name,attr"`
	Time      string `xml:"time,attr"`
	Condition string `xml:",chardata"`
}

type feedPhenomenon struct {
	Name      string `xml:"name,attr"`
	Location  string `xml:"location,attr"`
	Condition string `xml:",chardata"`
}

// decodeDocument decodes raw into a feedDocument. The feed declares
// ISO-8859-1, which encoding/xml does not handle on its own.
func decodeDocument(raw []byte) (*feedDocument, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrMalformedDocument)
	}

	dec := xml.NewDecoder(bytes.NewReader(raw))
	dec.CharsetReader = charsetReader

	var doc feedDocument
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if err := expectEOF(dec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if doc.SolarData == nil {
		return nil, fmt.Errorf("%w: <%s> has no solardata element", ErrMalformedDocument, doc.XMLName.Local)
	}
	return &doc, nil
}

// expectEOF reads the rest of the input after the root element. Only
// whitespace, comments and processing instructions may follow it.
func expectEOF(dec *xml.Decoder) error {
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.Comment, xml.ProcInst:
		case xml.CharData:
			if len(bytes.TrimSpace(t)) != 0 {
				return fmt.Errorf("unexpected text after root element at offset %d", dec.InputOffset())
			}
		default:
			return fmt.Errorf("unexpected %T after root element at offset %d", tok, dec.InputOffset())
		}
	}
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "", "utf-8", "utf8", "us-ascii", "ascii":
		return input, nil
	case "iso-8859-1", "iso8859-1", "latin1", "latin-1":
		return charmap.ISO8859_1.NewDecoder().Reader(input), nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252.NewDecoder().Reader(input), nil
	default:
		return nil, fmt.Errorf("unsupported charset %q", label)
	}
}
