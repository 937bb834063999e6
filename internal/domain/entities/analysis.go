package entities

// ChainVolume tags an amount with the chain whose native unit it is
// denominated in. Amounts from different chains are never summed into one
// number; callers get one entry per chain.
type ChainVolume struct {
	Chain  ChainID `json:"chain"`
	Volume float64 `json:"volume"`
}

// WalletActivity summarizes a wallet's stored transaction history
type WalletActivity struct {
	WalletAddress         string         `json:"walletAddress"`
	TotalTransactions     int            `json:"totalTransactions"`
	TotalIncoming         float64        `json:"totalIncoming"`
	TotalOutgoing         float64        `json:"totalOutgoing"`
	VolumeByChain         []ChainVolume  `json:"volumeByChain"`
	AvgTransactionAmount  float64        `json:"avgTransactionAmount"`
	MostActiveDay         string         `json:"mostActiveDay,omitempty"`
	TransactionCountByDay map[string]int `json:"transactionCountByDay"`
	ContractInteractions  int            `json:"contractInteractions"`
	AnomalyCount          int            `json:"anomalyCount"`
}

// DailyTrend aggregates one day's transactions
type DailyTrend struct {
	Count  int     `json:"count"`
	Volume float64 `json:"volume"`
}

// TrendAnalysis describes transaction activity over a trailing period
type TrendAnalysis struct {
	PeriodDays        int                   `json:"periodDays"`
	TotalTransactions int                   `json:"totalTransactions"`
	VolumeByChain     []ChainVolume         `json:"volumeByChain"`
	AvgDailyCount     float64               `json:"avgDailyCount"`
	AvgDailyVolume    float64               `json:"avgDailyVolume"`
	TransactionsByDay map[string]DailyTrend `json:"transactionsByDay"`
	Trend             string                `json:"trend"`
}

// WalletAnomaly is one suspicious observation from history inspection
type WalletAnomaly struct {
	Type            string    `json:"type"`
	TransactionHash string    `json:"transactionHash,omitempty"`
	Amount          float64   `json:"amount,omitempty"`
	AverageAmount   float64   `json:"averageAmount,omitempty"`
	TimeDiffSeconds int64     `json:"timeDiffSeconds,omitempty"`
	Timestamp       int64     `json:"timestamp,omitempty"`
	RiskLevel       RiskLevel `json:"riskLevel"`
}

// AlertPatterns aggregates stored alerts along several axes
type AlertPatterns struct {
	TotalAlerts int            `json:"totalAlerts"`
	ByRiskLevel map[string]int `json:"byRiskLevel"`
	ByType      map[string]int `json:"byType"`
	ByWallet    map[string]int `json:"byWallet"`
	ByChain     map[string]int `json:"byChain"`
}

// WalletAnalysis is the full analysis payload for one wallet
type WalletAnalysis struct {
	WalletAddress string          `json:"walletAddress"`
	Chain         ChainID         `json:"chain"`
	Activity      *WalletActivity `json:"activityAnalysis"`
	Trends        *TrendAnalysis  `json:"trendAnalysis"`
	Anomalies     []WalletAnomaly `json:"anomalies"`
}
