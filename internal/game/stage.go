package game

import "fmt"

// Stage identifies one step of the turn pipeline. Stages run in declaration
// order, forward only.
type Stage int

const (
	StageCleanup Stage = iota + 1
	StageMinuteReset
	StageDemandAllocation
	StageCapacityClamp
	StageFIFOSale
	StageResultComputation
	StageLossAndNotoriety
	StageAccountingPost
	StageLoanService
	StageCashUpdate
	StageSatisfactionUpdate
	StageResultEmit
)

var stageNames = map[Stage]string{
	StageCleanup:            "cleanup",
	StageMinuteReset:        "minute_reset",
	StageDemandAllocation:   "demand_allocation",
	StageCapacityClamp:      "capacity_clamp",
	StageFIFOSale:           "fifo_sale",
	StageResultComputation:  "result_computation",
	StageLossAndNotoriety:   "loss_and_notoriety",
	StageAccountingPost:     "accounting_post",
	StageLoanService:        "loan_service",
	StageCashUpdate:         "cash_update",
	StageSatisfactionUpdate: "satisfaction_update",
	StageResultEmit:         "result_emit",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return "unknown"
}

// TurnError reports which stage a failed turn aborted in. A failed turn
// commits nothing: funds, stock, journals, and loans are exactly as they
// were before RunTurn.
type TurnError struct {
	Turn  int
	Stage Stage
	Err   error
}

func (e *TurnError) Error() string {
	return fmt.Sprintf("turn %d aborted at %s: %v", e.Turn, e.Stage, e.Err)
}

func (e *TurnError) Unwrap() error { return e.Err }
