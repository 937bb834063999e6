package entities

// ChainID identifies a supported blockchain network
type ChainID string

const (
	ChainEthereum ChainID = "ethereum"
	ChainSolana   ChainID = "solana"
)

// SupportedChains lists every chain the monitor can watch
func SupportedChains() []ChainID {
	return []ChainID{ChainEthereum, ChainSolana}
}

// IsSupported reports whether the chain identifier is known
func (c ChainID) IsSupported() bool {
	switch c {
	case ChainEthereum, ChainSolana:
		return true
	}
	return false
}

// RawTransaction is a chain-specific transaction payload as returned by an
// adapter. Field names differ per chain; the normalizer owns the mapping.
type RawTransaction map[string]interface{}

// BlockInfo is the canonical view of a block header
type BlockInfo struct {
	Number    uint64  `json:"number"`
	Hash      string  `json:"hash,omitempty"`
	Timestamp int64   `json:"timestamp,omitempty"`
	Chain     ChainID `json:"chain"`
}
