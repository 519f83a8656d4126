package payroll

import "github.com/shopspring/decimal"

// DefaultWorkingDays stands in when a period yields no usable weekday
// count, matching the common 22-working-day month convention.
const DefaultWorkingDays = 22

// PayBreakdown is the deterministic money outcome for one employee in
// one period. All arithmetic runs on decimals; floats never touch pay.
type PayBreakdown struct {
	WorkingDays    int
	UnpaidDays     int
	LeaveDeduction decimal.Decimal
	NetPay         decimal.Decimal
}

// ComputePay prorates the base salary against unpaid leave days.
// The daily rate is base/workingDays; the deduction is rounded to a
// whole unit before it is applied so repeated runs agree to the cent.
// Net pay never goes below zero.
func ComputePay(base, bonus, otherDeduction decimal.Decimal, workingDays, unpaidDays int) PayBreakdown {
	if workingDays <= 0 {
		workingDays = DefaultWorkingDays
	}
	if unpaidDays < 0 {
		unpaidDays = 0
	}
	if unpaidDays > workingDays {
		unpaidDays = workingDays
	}

	dailyRate := base.Div(decimal.NewFromInt(int64(workingDays)))
	leaveDeduction := dailyRate.Mul(decimal.NewFromInt(int64(unpaidDays))).Round(0)

	netPay := base.Add(bonus).Sub(otherDeduction).Sub(leaveDeduction)
	if netPay.IsNegative() {
		netPay = decimal.Zero
	}

	return PayBreakdown{
		WorkingDays:    workingDays,
		UnpaidDays:     unpaidDays,
		LeaveDeduction: leaveDeduction,
		NetPay:         netPay,
	}
}
