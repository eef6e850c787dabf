package deal

import "github.com/shopspring/decimal"

// Summary holds the pipeline KPIs shown on the dashboard.
type Summary struct {
	TotalPipelineValue decimal.Decimal
	TotalDeals         int
	SoldDeals          int
	AverageDealSize    decimal.Decimal
	ConversionRate     decimal.Decimal
	AverageAgeInStage  decimal.Decimal
	DealsByStage       map[Stage]int
	RevenueByStage     map[Stage]decimal.Decimal
}

// ActiveDeals counts the deals still in the pipeline.
func (s Summary) ActiveDeals() int {
	return s.TotalDeals - s.SoldDeals
}

// Summarize computes the dashboard KPIs over deals. Conversion rate is a
// percentage of sold deals over all deals.
func Summarize(deals []*Deal) Summary {
	s := Summary{
		TotalPipelineValue: decimal.Zero,
		AverageDealSize:    decimal.Zero,
		ConversionRate:     decimal.Zero,
		AverageAgeInStage:  decimal.Zero,
		DealsByStage:       make(map[Stage]int, len(Stages)),
		RevenueByStage:     make(map[Stage]decimal.Decimal, len(Stages)),
	}

	for _, st := range Stages {
		s.DealsByStage[st] = 0
		s.RevenueByStage[st] = decimal.Zero
	}

	if len(deals) == 0 {
		return s
	}

	var age int

	for _, d := range deals {
		s.TotalPipelineValue = s.TotalPipelineValue.Add(d.Revenue)
		s.DealsByStage[d.Stage]++
		s.RevenueByStage[d.Stage] = s.RevenueByStage[d.Stage].Add(d.Revenue)
		age += d.AgeInStage

		if d.Stage == StageSold {
			s.SoldDeals++
		}
	}

	n := decimal.NewFromInt(int64(len(deals)))

	s.TotalDeals = len(deals)
	s.AverageDealSize = s.TotalPipelineValue.Div(n).Round(2)
	s.ConversionRate = decimal.NewFromInt(int64(s.SoldDeals)).Mul(decimal.NewFromInt(100)).Div(n).Round(1)
	s.AverageAgeInStage = decimal.NewFromInt(int64(age)).Div(n).Round(1)

	return s
}
