package main

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

func TestSimulate_Breakeven(t *testing.T) {
	// Membership 6500, saving 2500 per trip, one trip a year: the
	// membership is paid back during year three.
	sim := simulate(dec(6500), dec(5000), dec(2500), dec(1), 5, decimal.Zero)

	if len(sim.Rows) != 5 {
		t.Fatalf("Expected 5 rows, got %d", len(sim.Rows))
	}
	if sim.BreakevenYear != 3 {
		t.Errorf("Expected breakeven in year 3, got %d", sim.BreakevenYear)
	}

	// 5 years of retail at 5000
	if !sim.TotalRetail.Equal(dec(25000)) {
		t.Errorf("Expected total retail 25000, got %s", sim.TotalRetail)
	}
	// 6500 upfront plus 5 years at 2500
	if !sim.TotalMember.Equal(dec(19000)) {
		t.Errorf("Expected total member 19000, got %s", sim.TotalMember)
	}
	if !sim.TotalSavings.Equal(dec(6000)) {
		t.Errorf("Expected total savings 6000, got %s", sim.TotalSavings)
	}
}

func TestSimulate_NoBreakeven(t *testing.T) {
	sim := simulate(dec(50000), dec(5000), dec(2500), dec(1), 5, decimal.Zero)

	if sim.BreakevenYear != 0 {
		t.Errorf("Expected no breakeven, got year %d", sim.BreakevenYear)
	}
	if !sim.TotalSavings.IsNegative() {
		t.Errorf("Expected negative savings, got %s", sim.TotalSavings)
	}
}

func TestSimulate_InflationCompoundsRetail(t *testing.T) {
	inflation := dec(0.10)
	sim := simulate(dec(0), dec(1000), dec(1000), dec(1), 3, inflation)

	// Year 1: 1000, year 2: 1100, year 3: 1210.
	if !sim.Rows[0].RetailSpend.Equal(dec(1000)) {
		t.Errorf("Year 1 retail: got %s", sim.Rows[0].RetailSpend)
	}
	if !sim.Rows[1].RetailSpend.Equal(dec(1100)) {
		t.Errorf("Year 2 retail: got %s", sim.Rows[1].RetailSpend)
	}
	if !sim.Rows[2].RetailSpend.Equal(dec(1210)) {
		t.Errorf("Year 3 retail: got %s", sim.Rows[2].RetailSpend)
	}

	// Member price stays flat.
	for i, row := range sim.Rows {
		if !row.MemberSpend.Equal(dec(1000)) {
			t.Errorf("Year %d member spend: got %s", i+1, row.MemberSpend)
		}
	}
}

func TestSimulate_FractionalTrips(t *testing.T) {
	sim := simulate(dec(1000), dec(2000), dec(1000), dec(1.5), 2, decimal.Zero)

	// 1.5 trips at 2000 retail is 3000 per year.
	if !sim.Rows[0].RetailSpend.Equal(dec(3000)) {
		t.Errorf("Expected retail spend 3000, got %s", sim.Rows[0].RetailSpend)
	}
	// 1000 upfront + 2 years * 1500
	if !sim.TotalMember.Equal(dec(4000)) {
		t.Errorf("Expected total member 4000, got %s", sim.TotalMember)
	}
}
