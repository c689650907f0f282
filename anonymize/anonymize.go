// Package anonymize strips identifying metadata from a trajectory log:
// patient and plan identifiers, beam and sub-beam names, and (on request)
// the output file name.
package anonymize

import (
	"path/filepath"

	"github.com/clarityrt/trajlog"
	"github.com/clarityrt/trajlog/errs"
)

// Options names the replacement values. Empty fields leave the original
// value untouched, so a caller can anonymize selectively.
type Options struct {
	PatientID string
	PlanName  string

	// PlanUID and SOPInstanceUID both target the plan's SOP instance UID
	// stored as the log's plan UID; SOPInstanceUID wins when both are set.
	PlanUID        string
	SOPInstanceUID string

	BeamName string

	// FilePath replaces the base file name when rewriting a log's path via
	// Path; the directory is preserved.
	FilePath string

	// SubBeamName, when set, renames every sub-beam from its sequence
	// index.
	SubBeamName func(sequenceIndex int) string
}

// Apply rewrites log's metadata and sub-beam names in place.
func Apply(log *trajlog.TrajectoryLog, o Options) error {
	if log == nil {
		return errs.ErrInvalidArgument
	}

	meta := &log.Header.Meta

	if o.PatientID != "" {
		meta.PatientID = o.PatientID
	}
	if o.PlanName != "" {
		meta.PlanName = o.PlanName
	}
	if o.PlanUID != "" {
		meta.PlanUID = o.PlanUID
	}
	if o.SOPInstanceUID != "" {
		meta.PlanUID = o.SOPInstanceUID
	}
	if o.BeamName != "" {
		meta.BeamName = o.BeamName
	}

	if o.SubBeamName != nil {
		for i := range log.SubBeams {
			log.SubBeams[i].Name = o.SubBeamName(int(log.SubBeams[i].SequenceNumber))
		}
	}

	return nil
}

// Path returns the anonymized output path for a log originally at orig: the
// FilePath override replaces the base name, keeping the directory and
// original extension when the override carries none.
func Path(orig string, o Options) string {
	if o.FilePath == "" {
		return orig
	}

	base := o.FilePath
	if filepath.Ext(base) == "" {
		base += filepath.Ext(orig)
	}

	return filepath.Join(filepath.Dir(orig), base)
}
