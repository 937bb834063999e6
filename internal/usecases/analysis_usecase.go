package usecases

import (
	"context"
	"sort"
	"time"

	"wallet-sentinel.backend/internal/domain/entities"
	domainerrors "wallet-sentinel.backend/internal/domain/errors"
	"wallet-sentinel.backend/internal/domain/repositories"
)

const (
	trendPeriodDays      = 30
	trendIncreasingRatio = 1.2
	trendDecreasingRatio = 0.8
	rapidSuccessionSec   = 60
	summarySampleLimit   = 1000
)

// AnalysisUsecase derives statistics from stored transactions and alerts.
// Amounts are chain-native units, so volume aggregates are reported per
// chain and never summed across chains.
type AnalysisUsecase struct {
	txRepo    repositories.TransactionRepository
	alertRepo repositories.AlertRepository
}

// NewAnalysisUsecase creates a new analysis usecase
func NewAnalysisUsecase(txRepo repositories.TransactionRepository, alertRepo repositories.AlertRepository) *AnalysisUsecase {
	return &AnalysisUsecase{txRepo: txRepo, alertRepo: alertRepo}
}

// AnalyzeWallet produces the full analysis payload for one wallet
func (u *AnalysisUsecase) AnalyzeWallet(ctx context.Context, address string, chain entities.ChainID) (*entities.WalletAnalysis, error) {
	address = NormalizeAddress(address)
	txs, err := u.txRepo.List(ctx, entities.TransactionFilter{
		WalletAddress: address,
		Chain:         chain,
		Limit:         summarySampleLimit,
	})
	if err != nil {
		return nil, err
	}
	if len(txs) == 0 {
		return nil, domainerrors.ErrNotFound
	}

	return &entities.WalletAnalysis{
		WalletAddress: address,
		Chain:         chain,
		Activity:      u.WalletActivity(address, txs),
		Trends:        u.TransactionTrends(txs, trendPeriodDays),
		Anomalies:     u.DetectAnomalies(txs),
	}, nil
}

// WalletActivity summarizes a wallet's stored history
func (u *AnalysisUsecase) WalletActivity(address string, txs []*entities.Transaction) *entities.WalletActivity {
	activity := &entities.WalletActivity{
		WalletAddress:         address,
		TotalTransactions:     len(txs),
		TransactionCountByDay: map[string]int{},
	}
	if len(txs) == 0 {
		return activity
	}

	volumeByChain := map[entities.ChainID]float64{}
	total := 0.0
	for _, tx := range txs {
		total += tx.Amount
		volumeByChain[tx.Chain] += tx.Amount

		if tx.FromAddress.Valid && tx.FromAddress.String == address {
			activity.TotalOutgoing += tx.Amount
		} else if tx.ToAddress.Valid && tx.ToAddress.String == address {
			activity.TotalIncoming += tx.Amount
		}

		if tx.Timestamp.Valid {
			day := time.Unix(tx.Timestamp.Int64, 0).UTC().Format("2006-01-02")
			activity.TransactionCountByDay[day]++
		}
		if tx.IsContractInteraction {
			activity.ContractInteractions++
		}
		if tx.RiskLevel == entities.RiskMedium || tx.RiskLevel == entities.RiskHigh {
			activity.AnomalyCount++
		}
	}

	activity.AvgTransactionAmount = total / float64(len(txs))
	activity.VolumeByChain = sortedVolumes(volumeByChain)

	maxCount := 0
	for day, count := range activity.TransactionCountByDay {
		if count > maxCount || (count == maxCount && day > activity.MostActiveDay) {
			maxCount = count
			activity.MostActiveDay = day
		}
	}
	return activity
}

// TransactionTrends analyzes activity over the trailing period
func (u *AnalysisUsecase) TransactionTrends(txs []*entities.Transaction, days int) *entities.TrendAnalysis {
	if days <= 0 {
		days = trendPeriodDays
	}
	cutoff := time.Now().AddDate(0, 0, -days).Unix()

	trends := &entities.TrendAnalysis{
		PeriodDays:        days,
		TransactionsByDay: map[string]entities.DailyTrend{},
		Trend:             "stable",
	}

	volumeByChain := map[entities.ChainID]float64{}
	for _, tx := range txs {
		if !tx.Timestamp.Valid || tx.Timestamp.Int64 < cutoff {
			continue
		}
		trends.TotalTransactions++
		volumeByChain[tx.Chain] += tx.Amount

		day := time.Unix(tx.Timestamp.Int64, 0).UTC().Format("2006-01-02")
		bucket := trends.TransactionsByDay[day]
		bucket.Count++
		bucket.Volume += tx.Amount
		trends.TransactionsByDay[day] = bucket
	}
	trends.VolumeByChain = sortedVolumes(volumeByChain)

	if len(trends.TransactionsByDay) > 0 {
		totalCount, totalVolume := 0, 0.0
		for _, bucket := range trends.TransactionsByDay {
			totalCount += bucket.Count
			totalVolume += bucket.Volume
		}
		activeDays := float64(len(trends.TransactionsByDay))
		trends.AvgDailyCount = float64(totalCount) / activeDays
		trends.AvgDailyVolume = totalVolume / activeDays
	}

	// Volume direction: compare the two halves of the active period.
	if len(trends.TransactionsByDay) >= 2 {
		days := make([]string, 0, len(trends.TransactionsByDay))
		for day := range trends.TransactionsByDay {
			days = append(days, day)
		}
		sort.Strings(days)

		firstHalf, secondHalf := 0.0, 0.0
		mid := len(days) / 2
		for i, day := range days {
			if i < mid {
				firstHalf += trends.TransactionsByDay[day].Volume
			} else {
				secondHalf += trends.TransactionsByDay[day].Volume
			}
		}

		if secondHalf > firstHalf*trendIncreasingRatio {
			trends.Trend = "increasing"
		} else if secondHalf < firstHalf*trendDecreasingRatio {
			trends.Trend = "decreasing"
		}
	}

	return trends
}

// DetectAnomalies lists suspicious observations in the history: amounts far
// above the wallet mean, and transactions in rapid succession
func (u *AnalysisUsecase) DetectAnomalies(txs []*entities.Transaction) []entities.WalletAnomaly {
	anomalies := []entities.WalletAnomaly{}
	if len(txs) == 0 {
		return anomalies
	}

	maxAmount, total, positive := 0.0, 0.0, 0
	for _, tx := range txs {
		if tx.Amount > 0 {
			total += tx.Amount
			positive++
			if tx.Amount > maxAmount {
				maxAmount = tx.Amount
			}
		}
	}
	if positive == 0 {
		return anomalies
	}
	avg := total / float64(positive)

	for _, tx := range txs {
		if tx.Amount > avg*largeAmountFactor {
			risk := entities.RiskMedium
			if tx.Amount > maxAmount*0.8 {
				risk = entities.RiskHigh
			}
			anomaly := entities.WalletAnomaly{
				Type:            "large_transaction",
				TransactionHash: tx.Hash,
				Amount:          tx.Amount,
				AverageAmount:   avg,
				RiskLevel:       risk,
			}
			if tx.Timestamp.Valid {
				anomaly.Timestamp = tx.Timestamp.Int64
			}
			anomalies = append(anomalies, anomaly)
		}
	}

	times := make([]int64, 0, len(txs))
	for _, tx := range txs {
		if tx.Timestamp.Valid {
			times = append(times, tx.Timestamp.Int64)
		}
	}
	sort.Slice(times, func(i, j int) bool { return times[i] < times[j] })
	for i := 1; i < len(times); i++ {
		if diff := times[i] - times[i-1]; diff < rapidSuccessionSec {
			anomalies = append(anomalies, entities.WalletAnomaly{
				Type:            "rapid_succession",
				TimeDiffSeconds: diff,
				Timestamp:       times[i],
				RiskLevel:       entities.RiskMedium,
			})
		}
	}

	return anomalies
}

// AlertPatterns aggregates stored alerts by risk level, type, wallet, chain
func (u *AnalysisUsecase) AlertPatterns(ctx context.Context) (*entities.AlertPatterns, error) {
	alerts, err := u.alertRepo.List(ctx, entities.AlertFilter{Limit: summarySampleLimit})
	if err != nil {
		return nil, err
	}

	patterns := &entities.AlertPatterns{
		TotalAlerts: len(alerts),
		ByRiskLevel: map[string]int{"low": 0, "medium": 0, "high": 0},
		ByType:      map[string]int{},
		ByWallet:    map[string]int{},
		ByChain:     map[string]int{},
	}
	for _, alert := range alerts {
		if _, ok := patterns.ByRiskLevel[string(alert.RiskLevel)]; ok {
			patterns.ByRiskLevel[string(alert.RiskLevel)]++
		}
		patterns.ByType[string(alert.AlertType)]++
		patterns.ByWallet[alert.WalletAddress]++
		patterns.ByChain[string(alert.Chain)]++
	}
	return patterns, nil
}

// TransactionSummary reports stored transaction totals per chain
func (u *AnalysisUsecase) TransactionSummary(ctx context.Context) (map[string]interface{}, error) {
	total, err := u.txRepo.Count(ctx, "", "")
	if err != nil {
		return nil, err
	}

	byChain := map[string]interface{}{}
	for _, chain := range entities.SupportedChains() {
		count, err := u.txRepo.Count(ctx, "", chain)
		if err != nil {
			return nil, err
		}
		byChain[string(chain)] = map[string]interface{}{"count": count}
	}

	return map[string]interface{}{
		"totalTransactions": total,
		"byChain":           byChain,
	}, nil
}

func sortedVolumes(byChain map[entities.ChainID]float64) []entities.ChainVolume {
	out := make([]entities.ChainVolume, 0, len(byChain))
	for chain, volume := range byChain {
		out = append(out, entities.ChainVolume{Chain: chain, Volume: volume})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Chain < out[j].Chain })
	return out
}
