// Package dashboard produces the synthetic revenue and activity figures the
// admin portal renders. The numbers are demonstration data, not live
// aggregates; a fixed seed always yields the same report.
package dashboard

import (
	"github.com/brianvoe/gofakeit/v7"
)

type StatCard struct {
	Title string
	Value int
}

type MonthlyPoint struct {
	Month    string
	Positive int
	Negative int
}

type DepartmentShare struct {
	Department string
	Value      int
}

type Report struct {
	Cards       []StatCard
	Revenue     []MonthlyPoint
	Departments []DepartmentShare
}

var (
	months      = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul"}
	departments = []string{"Cardiology", "Neurology", "Dermatology", "Orthopedics", "Pediatrics"}
)

// Synthetic builds a full dashboard report from a seed.
func Synthetic(seed uint64) Report {
	f := gofakeit.New(seed)

	cards := []StatCard{
		{Title: "Total Patients", Value: f.Number(1200, 2400)},
		{Title: "Reports", Value: f.Number(500, 1100)},
		{Title: "Surgeries", Value: f.Number(90, 260)},
	}

	revenue := make([]MonthlyPoint, 0, len(months))
	for _, m := range months {
		revenue = append(revenue, MonthlyPoint{
			Month:    m,
			Positive: f.Number(150, 450),
			Negative: f.Number(100, 990),
		})
	}

	shares := make([]DepartmentShare, 0, len(departments))
	remaining := 100
	for i, dep := range departments {
		var v int
		if i == len(departments)-1 {
			v = remaining
		} else {
			upper := remaining - (len(departments) - 1 - i)
			if upper < 1 {
				upper = 1
			}
			v = f.Number(1, upper)
		}
		remaining -= v
		shares = append(shares, DepartmentShare{Department: dep, Value: v})
	}

	return Report{Cards: cards, Revenue: revenue, Departments: shares}
}
