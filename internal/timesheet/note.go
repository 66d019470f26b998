package timesheet

import "github.com/agmlego/novatime/internal/raw"

// EntryNote is the supervisor note attached to a line, with its reason
// code annotations.
type EntryNote struct {
	Seq         int
	Author      string
	Notes       string
	ReasonCode  string
	ReasonColor string
}

func parseNote(r raw.Record) (EntryNote, error) {
	var n EntryNote
	var err error
	if n.Seq, err = r.Int("iNoteSeq"); err != nil {
		return n, err
	}
	if n.Author, err = r.Str("cAuthor"); err != nil {
		return n, err
	}
	if n.Notes, err = r.Str("cNotes"); err != nil {
		return n, err
	}
	if n.ReasonCode, err = r.Str("cReasonCode"); err != nil {
		return n, err
	}
	if n.ReasonColor, err = r.Str("cReasonColor"); err != nil {
		return n, err
	}
	return n, nil
}

func (n EntryNote) writeTo(r raw.Record) {
	r["iNoteSeq"] = float64(n.Seq)
	r["cAuthor"] = n.Author
	r["cNotes"] = n.Notes
	r["cReasonCode"] = n.ReasonCode
	r["cReasonColor"] = n.ReasonColor
}
