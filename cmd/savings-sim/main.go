// Command savings-sim projects the cumulative savings of a vacation
// club membership against paying retail, year over year, with optional
// retail price inflation.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	membershipCost = flag.Float64("membership", 6500, "Membership cost in USD, paid upfront")
	retailPrice    = flag.Float64("retail", 5000, "Retail price of one trip today in USD")
	memberPrice    = flag.Float64("member", 2500, "Member price for the same trip in USD")
	tripsPerYear   = flag.Float64("trips", 1, "Trips per year")
	years          = flag.Int("years", 5, "Years to simulate")
	inflationPct   = flag.Float64("inflation", 0, "Annual retail price inflation in percent")
)

// yearRow is one simulated year.
type yearRow struct {
	Year             int
	RetailSpend      decimal.Decimal
	MemberSpend      decimal.Decimal
	CumulativeRetail decimal.Decimal
	CumulativeMember decimal.Decimal
	Savings          decimal.Decimal
}

// simulation holds the full projection.
type simulation struct {
	Rows          []yearRow
	TotalRetail   decimal.Decimal
	TotalMember   decimal.Decimal
	TotalSavings  decimal.Decimal
	BreakevenYear int // 0 when the membership never pays for itself
}

// simulate runs the projection. The membership cost counts against the
// member side in year one; member trip prices stay flat while retail
// prices compound with inflation.
func simulate(membership, retail, member, trips decimal.Decimal, years int, inflation decimal.Decimal) simulation {
	cumulativeRetail := decimal.Zero
	cumulativeMember := membership

	growth := decimal.NewFromInt(1).Add(inflation)
	retailThisYear := retail

	sim := simulation{}
	for year := 1; year <= years; year++ {
		retailSpend := retailThisYear.Mul(trips)
		memberSpend := member.Mul(trips)

		cumulativeRetail = cumulativeRetail.Add(retailSpend)
		cumulativeMember = cumulativeMember.Add(memberSpend)

		savings := cumulativeRetail.Sub(cumulativeMember)
		if sim.BreakevenYear == 0 && !savings.IsNegative() {
			sim.BreakevenYear = year
		}

		sim.Rows = append(sim.Rows, yearRow{
			Year:             year,
			RetailSpend:      retailSpend.Round(2),
			MemberSpend:      memberSpend.Round(2),
			CumulativeRetail: cumulativeRetail.Round(2),
			CumulativeMember: cumulativeMember.Round(2),
			Savings:          savings.Round(2),
		})

		retailThisYear = retailThisYear.Mul(growth)
	}

	sim.TotalRetail = cumulativeRetail.Round(2)
	sim.TotalMember = cumulativeMember.Round(2)
	sim.TotalSavings = cumulativeRetail.Sub(cumulativeMember).Round(2)
	return sim
}

func main() {
	flag.Parse()

	if *years <= 0 || *retailPrice <= 0 || *memberPrice <= 0 || *tripsPerYear <= 0 {
		fmt.Fprintln(os.Stderr, "years, retail, member and trips must be positive")
		os.Exit(1)
	}

	sim := simulate(
		decimal.NewFromFloat(*membershipCost),
		decimal.NewFromFloat(*retailPrice),
		decimal.NewFromFloat(*memberPrice),
		decimal.NewFromFloat(*tripsPerYear),
		*years,
		decimal.NewFromFloat(*inflationPct).Div(decimal.NewFromInt(100)),
	)

	line := strings.Repeat("=", 90)
	fmt.Println(line)
	fmt.Printf("%-4s %13s %13s %13s %13s %18s\n",
		"Year", "Retail/yr", "Member/yr", "Cum retail", "Cum member", "Cumulative savings")
	fmt.Println(strings.Repeat("-", 90))

	for _, row := range sim.Rows {
		fmt.Printf("%-4d %13s %13s %13s %13s %18s\n",
			row.Year,
			row.RetailSpend.StringFixed(0),
			row.MemberSpend.StringFixed(0),
			row.CumulativeRetail.StringFixed(0),
			row.CumulativeMember.StringFixed(0),
			row.Savings.StringFixed(0))
	}

	fmt.Println(line)
	fmt.Printf("Total without membership: USD %s\n", sim.TotalRetail.StringFixed(0))
	fmt.Printf("Total with membership:    USD %s\n", sim.TotalMember.StringFixed(0))
	fmt.Printf("Savings over %d years:    USD %s\n", *years, sim.TotalSavings.StringFixed(0))

	if sim.BreakevenYear > 0 {
		fmt.Printf("\nThe membership pays for itself around year %d.\n", sim.BreakevenYear)
	} else {
		fmt.Println("\nThe membership does not pay for itself in the simulated period.")
	}
}
