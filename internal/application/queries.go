package application

import "github.com/bnema/slotbot/internal/domain"

// Receipt is the outcome of a single operation. Ledger is the state after the
// operation, or the state it was rejected against.
type Receipt struct {
	Document  domain.DocumentID
	Operation domain.Operation
	Rejected  domain.RejectReason
	Ledger    domain.Ledger
}

func (r Receipt) Applied() bool {
	return r.Rejected == ""
}

type BatchItem struct {
	Slot     int
	Rejected domain.RejectReason
}

func (i BatchItem) Applied() bool {
	return i.Rejected == ""
}

type BatchResult struct {
	SessionID string
	Kind      domain.OpKind
	Items     []BatchItem
	Ledger    domain.Ledger
	Expired   bool
	Dismissed bool
	NoOptions bool
}

func (r BatchResult) Applied() []int {
	applied := make([]int, 0, len(r.Items))
	for _, item := range r.Items {
		if item.Applied() {
			applied = append(applied, item.Slot)
		}
	}
	return applied
}

func (r BatchResult) Rejections() []BatchItem {
	rejected := make([]BatchItem, 0)
	for _, item := range r.Items {
		if !item.Applied() {
			rejected = append(rejected, item)
		}
	}
	return rejected
}
