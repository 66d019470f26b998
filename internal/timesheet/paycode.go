package timesheet

import (
	"fmt"

	"github.com/agmlego/novatime/internal/raw"
)

// PayCode identifies how a timesheet line is paid (regular, PTO, holiday…)
// together with the vendor's pay-policy annotations for the line.
type PayCode struct {
	Code              int
	Description       string
	CodeType          int
	ExpCode           string
	PayType           string
	Calculate         int
	ComputeNonCalc    bool
	NonComputeCalc    bool
	PayPolicy         float64
	PolicyDescription string
}

func parsePayCode(r raw.Record) (PayCode, error) {
	var p PayCode
	var err error
	if p.Code, err = r.Int("nPayCode"); err != nil {
		return p, err
	}
	if p.Description, err = r.Str("cPayCodeDescription"); err != nil {
		return p, err
	}
	if p.CodeType, err = r.Int("nCodeType"); err != nil {
		return p, err
	}
	if p.ExpCode, err = r.Str("cExpCode"); err != nil {
		return p, err
	}
	if p.PayType, err = r.Str("cPayType"); err != nil {
		return p, err
	}
	if p.Calculate, err = r.Int("nCalculate"); err != nil {
		return p, err
	}
	if p.ComputeNonCalc, err = r.Bool("lComputeNonCalc"); err != nil {
		return p, err
	}
	if p.NonComputeCalc, err = r.Bool("lNonComputeCalcPayCode"); err != nil {
		return p, err
	}
	if p.PayPolicy, err = r.Float("nPayPolicy"); err != nil {
		return p, err
	}
	if p.PolicyDescription, err = r.Str("cPayPolicyDescription"); err != nil {
		return p, err
	}
	return p, nil
}

func (p PayCode) writeTo(r raw.Record) {
	r["nPayCode"] = float64(p.Code)
	r["cPayCodeDescription"] = p.Description
	r["nCodeType"] = float64(p.CodeType)
	r["cExpCode"] = p.ExpCode
	r["cPayType"] = p.PayType
	r["nCalculate"] = float64(p.Calculate)
	r["lComputeNonCalc"] = p.ComputeNonCalc
	r["lNonComputeCalcPayCode"] = p.NonComputeCalc
	r["nPayPolicy"] = p.PayPolicy
	r["cPayPolicyDescription"] = p.PolicyDescription
}

// String renders the pay code as the portal displays it.
func (p PayCode) String() string {
	return fmt.Sprintf("%d[%s]", p.Code, p.Description)
}
