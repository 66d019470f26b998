package timesheet

import (
	"time"

	"github.com/agmlego/novatime/internal/nvtime"
	"github.com/agmlego/novatime/internal/raw"
)

// EntryStatus is the workflow slice of a line: approval, pending/readonly
// flags, reversal and adjustment bookkeeping, and audit markers.
type EntryStatus struct {
	ApprovalStatus     int
	Approved           bool
	PendingCalc        bool
	Pending            bool
	ReadOnly           bool
	PayCodeReadOnly    bool
	ReadOnlyReasonDesc *string
	Reversed           bool
	ReverseDate        *time.Time
	ReverseStatus      int
	AdjustmentDate     *time.Time
	LastModified       *time.Time
	Audit              bool
	RefTime            bool
	TGARecord          bool
	ElapsedTime        bool
	CalcOverride       bool
	AutoPayNoDelete    bool
}

func parseStatus(r raw.Record) (EntryStatus, error) {
	var s EntryStatus
	var err error
	if s.ApprovalStatus, err = r.Int("nApprovalStatus"); err != nil {
		return s, err
	}
	if s.Approved, err = r.Bool("lApprovalStatus"); err != nil {
		return s, err
	}
	if s.PendingCalc, err = r.Bool("lPendingCalc"); err != nil {
		return s, err
	}
	if s.Pending, err = r.Bool("lPending"); err != nil {
		return s, err
	}
	if s.ReadOnly, err = r.Bool("lReadOnly"); err != nil {
		return s, err
	}
	if s.PayCodeReadOnly, err = r.Bool("lPayCodeReadOnly"); err != nil {
		return s, err
	}
	if s.ReadOnlyReasonDesc, err = r.NullStr("ReadOnlyReasonCodeDescription"); err != nil {
		return s, err
	}
	if s.Reversed, err = r.Bool("lReversed"); err != nil {
		return s, err
	}
	if s.ReverseDate, err = nullPunch(r, "dReverseDate"); err != nil {
		return s, err
	}
	if s.ReverseStatus, err = r.Int("nReverseStatus"); err != nil {
		return s, err
	}
	if s.AdjustmentDate, err = nullPunch(r, "dAdjustmentDate"); err != nil {
		return s, err
	}
	if s.LastModified, err = nullPunch(r, "tLastModified"); err != nil {
		return s, err
	}
	if s.Audit, err = r.Bool("lAudit"); err != nil {
		return s, err
	}
	if s.RefTime, err = r.Bool("lRefTime"); err != nil {
		return s, err
	}
	if s.TGARecord, err = r.Bool("lIsTGARecord"); err != nil {
		return s, err
	}
	if s.ElapsedTime, err = r.Bool("lElapsedTime"); err != nil {
		return s, err
	}
	if s.CalcOverride, err = r.Bool("lCalcOverride"); err != nil {
		return s, err
	}
	if s.AutoPayNoDelete, err = r.Bool("lAutoPayNoDelete"); err != nil {
		return s, err
	}
	return s, nil
}

func (s EntryStatus) writeTo(r raw.Record) {
	r["nApprovalStatus"] = float64(s.ApprovalStatus)
	r["lApprovalStatus"] = s.Approved
	r["lPendingCalc"] = s.PendingCalc
	r["lPending"] = s.Pending
	r["lReadOnly"] = s.ReadOnly
	r["lPayCodeReadOnly"] = s.PayCodeReadOnly
	r["ReadOnlyReasonCodeDescription"] = nullStr(s.ReadOnlyReasonDesc)
	r["lReversed"] = s.Reversed
	r["dReverseDate"] = nullTime(s.ReverseDate)
	r["nReverseStatus"] = float64(s.ReverseStatus)
	r["dAdjustmentDate"] = nullTime(s.AdjustmentDate)
	r["tLastModified"] = nullTime(s.LastModified)
	r["lAudit"] = s.Audit
	r["lRefTime"] = s.RefTime
	r["lIsTGARecord"] = s.TGARecord
	r["lElapsedTime"] = s.ElapsedTime
	r["lCalcOverride"] = s.CalcOverride
	r["lAutoPayNoDelete"] = s.AutoPayNoDelete
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return nvtime.FormatPunch(*t)
}
