package model

import (
	"encoding/json"
	"testing"
)

func TestSalaryPlan_Validate(t *testing.T) {
	tests := []struct {
		name    string
		plan    SalaryPlan
		wantErr bool
	}{
		{
			name: "valid plan",
			plan: SalaryPlan{
				SourceAccountName: "Current Account",
				Items: []SalaryAllocationItem{
					{ID: "i1", Name: "Savings", Action: TransferToAccount("Savings"), Amount: Percent(60)},
					{ID: "i2", Name: "Credit Card", Action: ExpenseToCategory("Credit Card"), Amount: FixedCents(300_00)},
				},
			},
		},
		{
			name: "empty items is valid",
			plan: SalaryPlan{SourceAccountName: "Current Account"},
		},
		{
			name:    "missing source account",
			plan:    SalaryPlan{Items: []SalaryAllocationItem{}},
			wantErr: true,
		},
		{
			name: "transfer without target",
			plan: SalaryPlan{
				SourceAccountName: "Current Account",
				Items: []SalaryAllocationItem{
					{ID: "i1", Name: "Savings", Action: AllocationAction{Type: ActionTransferToAccount}, Amount: Percent(60)},
				},
			},
			wantErr: true,
		},
		{
			name: "expense without category",
			plan: SalaryPlan{
				SourceAccountName: "Current Account",
				Items: []SalaryAllocationItem{
					{ID: "i1", Name: "Card", Action: AllocationAction{Type: ActionExpenseToCategory}, Amount: FixedCents(100)},
				},
			},
			wantErr: true,
		},
		{
			name: "unknown action type",
			plan: SalaryPlan{
				SourceAccountName: "Current Account",
				Items: []SalaryAllocationItem{
					{ID: "i1", Name: "X", Action: AllocationAction{Type: "donate"}, Amount: Percent(10)},
				},
			},
			wantErr: true,
		},
		{
			name: "percent out of range",
			plan: SalaryPlan{
				SourceAccountName: "Current Account",
				Items: []SalaryAllocationItem{
					{ID: "i1", Name: "Savings", Action: TransferToAccount("Savings"), Amount: Percent(150)},
				},
			},
			wantErr: true,
		},
		{
			name: "negative fixed amount",
			plan: SalaryPlan{
				SourceAccountName: "Current Account",
				Items: []SalaryAllocationItem{
					{ID: "i1", Name: "Card", Action: ExpenseToCategory("Card"), Amount: FixedCents(-100)},
				},
			},
			wantErr: true,
		},
		{
			name: "unknown amount type",
			plan: SalaryPlan{
				SourceAccountName: "Current Account",
				Items: []SalaryAllocationItem{
					{ID: "i1", Name: "X", Action: TransferToAccount("Savings"), Amount: AllocationAmount{Type: "ratio"}},
				},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.plan.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// The plan document is user-editable JSON; the discriminator fields must
// survive a decode of hand-written input.
func TestSalaryPlan_DecodeDocument(t *testing.T) {
	raw := `{
		"source_account_name": "Current Account",
		"items": [
			{
				"id": "item-savings",
				"name": "Savings",
				"action": {"type": "transfer_to_account", "target_account_name": "Savings"},
				"amount": {"type": "percent", "percent": 60}
			},
			{
				"id": "item-card",
				"name": "Credit Card",
				"action": {"type": "expense_to_category", "category_name": "Credit Card"},
				"amount": {"type": "fixed_cents", "fixed_cents": 30000}
			}
		]
	}`

	var plan SalaryPlan
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		t.Fatalf("Failed to decode plan: %v", err)
	}
	if err := plan.Validate(); err != nil {
		t.Fatalf("Decoded plan failed validation: %v", err)
	}
	if plan.Items[0].Amount.Type != AmountPercent || plan.Items[0].Amount.Percent != 60 {
		t.Errorf("Item 0 amount mismatch: %+v", plan.Items[0].Amount)
	}
	if plan.Items[1].Action.Type != ActionExpenseToCategory || plan.Items[1].Action.CategoryName != "Credit Card" {
		t.Errorf("Item 1 action mismatch: %+v", plan.Items[1].Action)
	}
}
