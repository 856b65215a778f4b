package model

import (
	"testing"
	"time"
)

func TestTransaction_Validate(t *testing.T) {
	date := time.Date(2024, time.June, 5, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		txn     Transaction
		wantErr bool
	}{
		{
			name: "valid expense",
			txn: Transaction{
				ID: "txn-1", Date: date, Kind: KindExpense,
				Amount: NewMoney(45_50, "CHF"), AccountID: "acc-1", CategoryID: "cat-1",
			},
		},
		{
			name: "valid income without category",
			txn: Transaction{
				ID: "txn-1", Date: date, Kind: KindIncome,
				Amount: NewMoney(6500_00, "CHF"), AccountID: "acc-1",
			},
		},
		{
			name: "valid transfer",
			txn: Transaction{
				ID: "txn-1", Date: date, Kind: KindTransfer,
				Amount: NewMoney(500_00, "CHF"), AccountID: "acc-1", CounterpartyAccountID: "acc-2",
			},
		},
		{
			name: "missing id",
			txn: Transaction{
				Date: date, Kind: KindExpense,
				Amount: NewMoney(10_00, "CHF"), AccountID: "acc-1",
			},
			wantErr: true,
		},
		{
			name: "unknown kind",
			txn: Transaction{
				ID: "txn-1", Date: date, Kind: "refund",
				Amount: NewMoney(10_00, "CHF"), AccountID: "acc-1",
			},
			wantErr: true,
		},
		{
			name: "negative amount",
			txn: Transaction{
				ID: "txn-1", Date: date, Kind: KindExpense,
				Amount: NewMoney(-10_00, "CHF"), AccountID: "acc-1",
			},
			wantErr: true,
		},
		{
			name: "missing account",
			txn: Transaction{
				ID: "txn-1", Date: date, Kind: KindExpense,
				Amount: NewMoney(10_00, "CHF"),
			},
			wantErr: true,
		},
		{
			name: "missing date",
			txn: Transaction{
				ID: "txn-1", Kind: KindExpense,
				Amount: NewMoney(10_00, "CHF"), AccountID: "acc-1",
			},
			wantErr: true,
		},
		{
			name: "transfer without counterparty",
			txn: Transaction{
				ID: "txn-1", Date: date, Kind: KindTransfer,
				Amount: NewMoney(500_00, "CHF"), AccountID: "acc-1",
			},
			wantErr: true,
		},
		{
			name: "transfer with category",
			txn: Transaction{
				ID: "txn-1", Date: date, Kind: KindTransfer,
				Amount: NewMoney(500_00, "CHF"), AccountID: "acc-1",
				CounterpartyAccountID: "acc-2", CategoryID: "cat-1",
			},
			wantErr: true,
		},
		{
			name: "expense with counterparty",
			txn: Transaction{
				ID: "txn-1", Date: date, Kind: KindExpense,
				Amount: NewMoney(10_00, "CHF"), AccountID: "acc-1",
				CounterpartyAccountID: "acc-2",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.txn.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
