package model

// Linux bonding driver parameter choices, as accepted by the inventory
// service's create-bond call.

// BondMode selects how a bond balances traffic across its members.
type BondMode string

const (
	BondModeBalanceRR    BondMode = "balance-rr"
	BondModeActiveBackup BondMode = "active-backup"
	BondModeBalanceXOR   BondMode = "balance-xor"
	BondModeBroadcast    BondMode = "broadcast"
	BondMode8023AD       BondMode = "802.3ad"
	BondModeBalanceTLB   BondMode = "balance-tlb"
	BondModeBalanceALB   BondMode = "balance-alb"
)

// BondModes lists every valid mode, in the order the UI presents them.
var BondModes = []BondMode{
	BondModeBalanceRR,
	BondModeActiveBackup,
	BondModeBalanceXOR,
	BondModeBroadcast,
	BondMode8023AD,
	BondModeBalanceTLB,
	BondModeBalanceALB,
}

// Valid reports whether m is a recognized bonding mode.
func (m BondMode) Valid() bool {
	for _, known := range BondModes {
		if m == known {
			return true
		}
	}
	return false
}

// LACPRate is the LACPDU transmit rate, meaningful only for 802.3ad.
type LACPRate string

const (
	LACPRateSlow LACPRate = "slow" // every 30s
	LACPRateFast LACPRate = "fast" // every 1s
)

// XmitHashPolicy selects the slave-selection hash for balance-xor,
// 802.3ad and balance-tlb modes.
type XmitHashPolicy string

const (
	XmitHashLayer2  XmitHashPolicy = "layer2"
	XmitHashLayer23 XmitHashPolicy = "layer2+3"
	XmitHashLayer34 XmitHashPolicy = "layer3+4"
	XmitHashEncap23 XmitHashPolicy = "encap2+3"
	XmitHashEncap34 XmitHashPolicy = "encap3+4"
)

// XmitHashPolicies lists every valid policy.
var XmitHashPolicies = []XmitHashPolicy{
	XmitHashLayer2,
	XmitHashLayer23,
	XmitHashLayer34,
	XmitHashEncap23,
	XmitHashEncap34,
}
