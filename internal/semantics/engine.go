package semantics

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"eventScope/internal/model"
)

// Engine turns the raw event logs and call data of one executed transaction
// into a deduplicated sequence of known events. It is a pure function of
// its inputs: no network, no shared state, safe to call concurrently for
// different transactions.
type Engine struct {
	cfg    Addresses
	logger *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger attaches a logger for classification diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New builds an Engine. The address configuration is validated up front;
// classifying against a zero fee manager would silently misfile every fee.
func New(cfg Addresses, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("engine config: %w", err)
	}
	e := &Engine{cfg: cfg, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Input is everything the engine consumes for one transaction. Metadata is
// a pre-resolved synchronous lookup; the engine never awaits anything.
type Input struct {
	Logs     []model.DecodedLog
	Tx       *model.Call
	Sender   common.Address
	Metadata model.MetadataFunc
}

// Validate fails fast on structurally invalid input. Malformed or partial
// event data is fine, the pipeline degrades; a nil amount value is not,
// because it would produce a financially wrong receipt.
func (in Input) Validate() error {
	for i, log := range in.Logs {
		if log.Name == "" {
			return fmt.Errorf("log %d: event name is empty", i)
		}
		for name, value := range log.Args {
			switch v := value.(type) {
			case *big.Int:
				if v == nil {
					return fmt.Errorf("log %d: argument %q is a nil integer", i, name)
				}
			case *common.Address:
				if v == nil {
					return fmt.Errorf("log %d: argument %q is a nil address", i, name)
				}
			}
		}
	}
	return nil
}

// outcome is the result of one detector: a narrative event, a fee transfer,
// or neither.
type outcome struct {
	event *model.KnownEvent
	fee   *model.FeeTransfer
}

type detector func(e *Engine, log model.DecodedLog, in Input, memos map[string]string) *outcome

// Family priority order. Some event names are legitimately emitted by more
// than one family; earlier families win by convention.
var detectors = []detector{
	(*Engine).detectToken,
	(*Engine).detectFactory,
	(*Engine).detectExchange,
	(*Engine).detectPolicyRegistry,
	(*Engine).detectFeeManager,
	(*Engine).detectNonce,
	(*Engine).detectFeePool,
}

// KnownEvents runs the full classification pipeline: dedup, memo harvest,
// swap matching, per-family detection, call-data liquidity fallback, and
// last-resort fee synthesis. Output order is detection order: the call-data
// event first, then swaps, then remaining events in log order.
func (e *Engine) KnownEvents(in Input) []model.KnownEvent {
	deduped, memos := dedupLogs(in.Logs)
	swaps, consumed := e.matchSwaps(deduped, in.Metadata)

	events := make([]model.KnownEvent, 0, len(deduped))
	events = append(events, swaps...)

	var fees []model.FeeTransfer
	for i, log := range deduped {
		if consumed[i] {
			continue
		}
		for _, detect := range detectors {
			result := detect(e, log, in, memos)
			if result == nil {
				continue
			}
			if result.event != nil {
				events = append(events, *result.event)
			}
			if result.fee != nil {
				fees = append(fees, *result.fee)
			}
			break
		}
	}

	if liquidity := e.liquidityFromCallData(in.Tx, in.Metadata); liquidity != nil {
		events = append([]model.KnownEvent{*liquidity}, events...)
	}

	if len(events) == 0 && len(fees) > 0 {
		events = append(events, synthesizeFeeEvent(fees))
	}

	e.logger.Debug("classified transaction",
		zap.Int("logs", len(in.Logs)),
		zap.Int("deduped", len(deduped)),
		zap.Int("events", len(events)),
		zap.Int("fee_transfers", len(fees)),
	)
	return events
}

// synthesizeFeeEvent folds the collected fee transfers into the single
// narrative event shown when nothing else classified.
func synthesizeFeeEvent(fees []model.FeeTransfer) model.KnownEvent {
	parts := make([]model.EventPart, 0, 2*len(fees))
	parts = append(parts, model.Action("Pay Fee"))
	for i, fee := range fees {
		if i > 0 {
			parts = append(parts, model.Text("and"))
		}
		parts = append(parts, model.AmountOf(fee.Amount))
	}
	return model.KnownEvent{Type: model.KnownFee, Parts: parts}
}
