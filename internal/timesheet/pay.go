package timesheet

import (
	"time"

	"github.com/agmlego/novatime/internal/raw"
)

// PayInfo carries the vendor-computed pay amounts for one line. These are
// read-only outputs of the vendor's payroll rules; the write endpoint
// never accepts them.
type PayInfo struct {
	Amount           float64
	Rate             float64
	RegularPay       float64
	OvertimePay      [5]float64
	PremiumPay       float64
	TotalPay         float64
	OnePunchOvertime time.Duration
	QuantityGood     float64
	QuantityBad      float64
}

var overtimePayKeys = [5]string{"nOT1Pay", "nOT2Pay", "nOT3Pay", "nOT4Pay", "nOT5Pay"}

func parsePayInfo(r raw.Record) (PayInfo, error) {
	var p PayInfo
	var err error
	if p.Amount, err = r.Float("nPayAmount"); err != nil {
		return p, err
	}
	if p.Rate, err = r.Float("nPayRate"); err != nil {
		return p, err
	}
	if p.RegularPay, err = r.Float("nRegPay"); err != nil {
		return p, err
	}
	for i, key := range overtimePayKeys {
		if p.OvertimePay[i], err = r.Float(key); err != nil {
			return p, err
		}
	}
	if p.PremiumPay, err = r.Float("nPremiumPay"); err != nil {
		return p, err
	}
	if p.TotalPay, err = r.Float("nTotalPay"); err != nil {
		return p, err
	}
	if p.OnePunchOvertime, err = r.HoursDuration("OTTotalHoursOnePunch"); err != nil {
		return p, err
	}
	if p.QuantityGood, err = r.Float("nQuantityGood"); err != nil {
		return p, err
	}
	if p.QuantityBad, err = r.Float("nQuantityBad"); err != nil {
		return p, err
	}
	return p, nil
}

func (p PayInfo) writeTo(r raw.Record) {
	r["nPayAmount"] = p.Amount
	r["nPayRate"] = p.Rate
	r["nRegPay"] = p.RegularPay
	for i, key := range overtimePayKeys {
		r[key] = p.OvertimePay[i]
	}
	r["nPremiumPay"] = p.PremiumPay
	r["nTotalPay"] = p.TotalPay
	r["OTTotalHoursOnePunch"] = raw.Hours(p.OnePunchOvertime)
	r["nQuantityGood"] = p.QuantityGood
	r["nQuantityBad"] = p.QuantityBad
}
