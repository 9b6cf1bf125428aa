package schedule

import (
	"github.com/dcyoung23/balance-web/internal/models"
	"github.com/shopspring/decimal"
)

// Projection is the stored balance plus its derived and projected views.
// Net answers "what will checking hold once the current period's scheduled
// items clear"; NextNet extends that through the following pay period.
type Projection struct {
	Current   decimal.Decimal `json:"current"`
	Available decimal.Decimal `json:"available"`
	Pending   decimal.Decimal `json:"pending"`
	Net       decimal.Decimal `json:"net"`
	NextNet   decimal.Decimal `json:"next_net"`
}

// Project combines the stored balance with the classified schedule. Only
// checking-sourced items move the projection; amounts are stored positive
// and signed by the type factor.
func Project(b models.Balance, items []ClassifiedItem) Projection {
	p := Projection{
		Current:   b.Current,
		Available: b.Available,
		Pending:   b.Current.Sub(b.Available),
	}

	p.Net = b.Available.Add(bucketSum(items, BucketCurrent))
	p.NextNet = p.Net.Add(bucketSum(items, BucketNext))
	return p
}

func bucketSum(items []ClassifiedItem, bucket Bucket) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		if item.PmtSource != PmtSourceChecking || item.Bucket != bucket {
			continue
		}
		factor := decimal.NewFromInt(int64(item.Type.Factor))
		sum = sum.Add(item.Amount.Mul(factor))
	}
	return sum
}
