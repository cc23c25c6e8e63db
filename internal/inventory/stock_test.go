package inventory

import (
	"errors"
	"testing"
)

func TestAddLotValidation(t *testing.T) {
	t.Parallel()

	valid := Lot{
		Ingredient:   "chicken",
		Grade:        GradeFreshRaw,
		QtyKg:        2,
		UnitCost:     7.5,
		ReceivedTurn: 1,
		PerishTurn:   3,
	}

	testCases := []struct {
		name    string
		mutate  func(*Lot)
		wantErr error
	}{
		{
			name:   "valid lot",
			mutate: func(*Lot) {},
		},
		{
			name:    "empty ingredient",
			mutate:  func(l *Lot) { l.Ingredient = "" },
			wantErr: ErrIngredientEmpty,
		},
		{
			name:    "unspecified grade",
			mutate:  func(l *Lot) { l.Grade = GradeUnspecified },
			wantErr: ErrGradeUnknown,
		},
		{
			name:    "zero quantity",
			mutate:  func(l *Lot) { l.QtyKg = 0 },
			wantErr: ErrQuantityInvalid,
		},
		{
			name:    "negative unit cost",
			mutate:  func(l *Lot) { l.UnitCost = -1 },
			wantErr: ErrUnitCostInvalid,
		},
		{
			name:    "perish at received turn",
			mutate:  func(l *Lot) { l.PerishTurn = l.ReceivedTurn },
			wantErr: ErrPerishInvalid,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			stock := NewStock()
			lot := valid
			tc.mutate(&lot)

			err := stock.AddLot(lot)
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("AddLot: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("AddLot error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestAddBatchValidation(t *testing.T) {
	t.Parallel()

	valid := Batch{
		Recipe:       "burger",
		Portions:     10,
		UnitPrice:    8,
		UnitCost:     2.4,
		ProducedTurn: 1,
		ExpiresTurn:  2,
	}

	testCases := []struct {
		name    string
		mutate  func(*Batch)
		wantErr bool
	}{
		{name: "valid batch", mutate: func(*Batch) {}},
		{name: "empty recipe", mutate: func(b *Batch) { b.Recipe = "" }, wantErr: true},
		{name: "zero portions", mutate: func(b *Batch) { b.Portions = 0 }, wantErr: true},
		{name: "negative price", mutate: func(b *Batch) { b.UnitPrice = -1 }, wantErr: true},
		{name: "negative unit cost", mutate: func(b *Batch) { b.UnitCost = -0.5 }, wantErr: true},
		{name: "expires at production turn", mutate: func(b *Batch) { b.ExpiresTurn = b.ProducedTurn }, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			stock := NewStock()
			batch := valid
			tc.mutate(&batch)

			err := stock.AddBatch(batch)
			if tc.wantErr && err == nil {
				t.Fatal("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("AddBatch: %v", err)
			}
		})
	}
}

func TestAvailabilityExcludesExpired(t *testing.T) {
	t.Parallel()

	stock := NewStock()
	mustAddLot(t, stock, Lot{Ingredient: "salmon", Grade: GradeFreshRaw, QtyKg: 2, UnitCost: 18, ReceivedTurn: 1, PerishTurn: 3})
	mustAddLot(t, stock, Lot{Ingredient: "salmon", Grade: GradeFrozen, QtyKg: 5, UnitCost: 14.5, ReceivedTurn: 1, PerishTurn: 9})

	if got := stock.AvailableKg("salmon", 2); got != 7 {
		t.Fatalf("available at turn 2 = %v, want 7", got)
	}
	// Fresh lot perishes at turn 3; only the frozen lot remains usable.
	if got := stock.AvailableKg("salmon", 3); got != 5 {
		t.Fatalf("available at turn 3 = %v, want 5", got)
	}
	if got := stock.AvailableKg("unknown", 2); got != 0 {
		t.Fatalf("available for unknown ingredient = %v, want 0", got)
	}
}

func TestValueCoversRawAndFinished(t *testing.T) {
	t.Parallel()

	stock := NewStock()
	mustAddLot(t, stock, Lot{Ingredient: "potato", Grade: GradeFreshRaw, QtyKg: 10, UnitCost: 1.5, ReceivedTurn: 1, PerishTurn: 4})
	mustAddBatch(t, stock, Batch{Recipe: "fries", Portions: 20, UnitPrice: 4, UnitCost: 0.35, ProducedTurn: 1, ExpiresTurn: 2})

	if got, want := stock.Value(), 22.0; got != want {
		t.Fatalf("stock value = %v, want %v", got, want)
	}
}

func TestIngredientsSorted(t *testing.T) {
	t.Parallel()

	stock := NewStock()
	mustAddLot(t, stock, Lot{Ingredient: "salmon", Grade: GradeFreshRaw, QtyKg: 1, UnitCost: 18, ReceivedTurn: 1, PerishTurn: 2})
	mustAddLot(t, stock, Lot{Ingredient: "chicken", Grade: GradeFreshRaw, QtyKg: 1, UnitCost: 7.5, ReceivedTurn: 1, PerishTurn: 2})

	names := stock.Ingredients()
	if len(names) != 2 || names[0] != "chicken" || names[1] != "salmon" {
		t.Fatalf("ingredients = %v, want sorted [chicken salmon]", names)
	}
}

func mustAddLot(t *testing.T, stock *Stock, lot Lot) {
	t.Helper()
	if err := stock.AddLot(lot); err != nil {
		t.Fatalf("add lot %v: %v", lot, err)
	}
}

func mustAddBatch(t *testing.T, stock *Stock, batch Batch) {
	t.Helper()
	if err := stock.AddBatch(batch); err != nil {
		t.Fatalf("add batch %v: %v", batch, err)
	}
}
