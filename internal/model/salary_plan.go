package model

import "fmt"

// AllocationActionType discriminates what an allocation item does with its
// portion of the salary.
type AllocationActionType string

const (
	// ActionTransferToAccount moves the portion to another account.
	ActionTransferToAccount AllocationActionType = "transfer_to_account"
	// ActionExpenseToCategory books the portion as an expense.
	ActionExpenseToCategory AllocationActionType = "expense_to_category"
)

// AllocationAction describes the target of an allocation item. Exactly one
// of the payload fields is meaningful, selected by Type.
type AllocationAction struct {
	Type              AllocationActionType `json:"type"`
	TargetAccountName string               `json:"target_account_name,omitempty"`
	CategoryName      string               `json:"category_name,omitempty"`
}

// TransferToAccount builds a transfer action targeting the named account.
func TransferToAccount(accountName string) AllocationAction {
	return AllocationAction{Type: ActionTransferToAccount, TargetAccountName: accountName}
}

// ExpenseToCategory builds an expense action targeting the named category.
func ExpenseToCategory(categoryName string) AllocationAction {
	return AllocationAction{Type: ActionExpenseToCategory, CategoryName: categoryName}
}

// AllocationAmountType discriminates how an allocation item's portion is
// computed.
type AllocationAmountType string

const (
	// AmountPercent allocates a percentage of the salary.
	AmountPercent AllocationAmountType = "percent"
	// AmountFixedCents allocates a fixed number of minor units.
	AmountFixedCents AllocationAmountType = "fixed_cents"
)

// AllocationAmount is either a percentage (0..100) of the salary or a fixed
// amount in minor units, selected by Type.
type AllocationAmount struct {
	Type       AllocationAmountType `json:"type"`
	Percent    float64              `json:"percent,omitempty"`
	FixedCents int64                `json:"fixed_cents,omitempty"`
}

// Percent builds a percentage allocation amount.
func Percent(value float64) AllocationAmount {
	return AllocationAmount{Type: AmountPercent, Percent: value}
}

// FixedCents builds a fixed allocation amount in minor units.
func FixedCents(cents int64) AllocationAmount {
	return AllocationAmount{Type: AmountFixedCents, FixedCents: cents}
}

// SalaryAllocationItem is one line of a salary plan: a named portion of the
// salary directed at an account or a category.
type SalaryAllocationItem struct {
	ID     string           `json:"id"`
	Name   string           `json:"name"`
	Action AllocationAction `json:"action"`
	Amount AllocationAmount `json:"amount"`
}

// SalaryPlan splits a paycheck from a source account into transfers and
// budgeted expenses. It is persisted as a single user-editable JSON document,
// keyed by account/category display names.
//
// When the declared percentages sum past 100 they are scaled down
// proportionally; fixed amounts are applied at face value regardless.
type SalaryPlan struct {
	SourceAccountName string                 `json:"source_account_name"`
	Items             []SalaryAllocationItem `json:"items"`
}

// Validate checks the plan's structural invariants.
func (p *SalaryPlan) Validate() error {
	if p.SourceAccountName == "" {
		return fmt.Errorf("plan missing source account name")
	}
	for i, item := range p.Items {
		switch item.Action.Type {
		case ActionTransferToAccount:
			if item.Action.TargetAccountName == "" {
				return fmt.Errorf("item %d (%s): transfer missing target account name", i, item.Name)
			}
		case ActionExpenseToCategory:
			if item.Action.CategoryName == "" {
				return fmt.Errorf("item %d (%s): expense missing category name", i, item.Name)
			}
		default:
			return fmt.Errorf("item %d (%s): unknown action type %q", i, item.Name, item.Action.Type)
		}
		switch item.Amount.Type {
		case AmountPercent:
			if item.Amount.Percent < 0 || item.Amount.Percent > 100 {
				return fmt.Errorf("item %d (%s): percent must be in 0..100, got %v", i, item.Name, item.Amount.Percent)
			}
		case AmountFixedCents:
			if item.Amount.FixedCents < 0 {
				return fmt.Errorf("item %d (%s): fixed amount must be non-negative", i, item.Name)
			}
		default:
			return fmt.Errorf("item %d (%s): unknown amount type %q", i, item.Name, item.Amount.Type)
		}
	}
	return nil
}
