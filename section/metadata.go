package section

import (
	"fmt"
	"strconv"
	"strings"
)

// MetaData is the textual key:value block embedded in the native header and
// mirrored (without fixed padding) in the compressed header.
type MetaData struct {
	PatientID   string
	PlanName    string
	PlanUID     string
	OriginalMU  float64
	RemainingMU float64
	Energy      string
	BeamName    string
}

// metadataFields lists the keys in wire order. Order is preserved on
// encode so round-tripped files are byte-identical.
var metadataFields = []string{"PatientID", "PlanName", "PlanUID", "OriginalMU", "RemainingMU", "Energy", "BeamName"}

func (m MetaData) fieldValue(key string) string {
	switch key {
	case "PatientID":
		return m.PatientID
	case "PlanName":
		return m.PlanName
	case "PlanUID":
		return m.PlanUID
	case "OriginalMU":
		return strconv.FormatFloat(m.OriginalMU, 'g', -1, 64)
	case "RemainingMU":
		return strconv.FormatFloat(m.RemainingMU, 'g', -1, 64)
	case "Energy":
		return m.Energy
	case "BeamName":
		return m.BeamName
	default:
		return ""
	}
}

func (m *MetaData) setField(key, value string) {
	switch key {
	case "PatientID":
		m.PatientID = value
	case "PlanName":
		m.PlanName = value
	case "PlanUID":
		m.PlanUID = value
	case "OriginalMU":
		m.OriginalMU, _ = strconv.ParseFloat(value, 64)
	case "RemainingMU":
		m.RemainingMU, _ = strconv.ParseFloat(value, 64)
	case "Energy":
		m.Energy = value
	case "BeamName":
		m.BeamName = value
	}
}

// Encode renders the metadata as CRLF-delimited "key:value" pairs. The
// caller (the native-header writer) is responsible for null-padding the
// result to MetadataBlockSize.
func (m MetaData) Encode() []byte {
	var b strings.Builder
	for _, key := range metadataFields {
		b.WriteString(key)
		b.WriteByte(':')
		b.WriteString(m.fieldValue(key))
		b.WriteString("\r\n")
	}

	return []byte(b.String())
}

// DecodeMetaData parses a (possibly null/tab padded) CRLF "key:value" block.
func DecodeMetaData(data []byte) MetaData {
	text := strings.TrimRight(string(data), "\x00\t \r\n")

	var m MetaData
	for _, line := range strings.Split(text, "\r\n") {
		line = strings.TrimRight(line, "\x00\t ")
		if line == "" {
			continue
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}

		m.setField(key, value)
	}

	return m
}

// String returns a compact human-readable summary, used in diagnostics.
func (m MetaData) String() string {
	return fmt.Sprintf("MetaData{PatientID=%q, PlanName=%q, BeamName=%q}", m.PatientID, m.PlanName, m.BeamName)
}
