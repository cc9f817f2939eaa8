// Package accounting implements the FIFO lot-matching engine that every analytics view
// is derived from.
//
// A ledger is replayed once, in ascending date order, through one LotQueue per stock.
// The replay emits tagged events (BuyEvent, SellEvent, CycleClosedEvent) to
// Aggregators; the Realization aggregator is always attached and the terminal queue
// state is projected into Holdings. Advisors never re-implement the replay: they either
// consume its Result or attach their own Aggregator to the same run.
package accounting
