package flatfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/KJ21-ENG/natraj-metallic/pkg/domain/entities"
	"github.com/KJ21-ENG/natraj-metallic/pkg/infrastructure/repositories/csv"
)

var testNow = time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

func newTestRepos(t *testing.T) (*Repositories, string) {
	t.Helper()
	dir := t.TempDir()
	store := csv.NewStore(dir, t.Logf)
	return New(store, Options{Now: func() time.Time { return testNow }}), dir
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestRollRepository_CreateLotWithRolls(t *testing.T) {
	repos, _ := newTestRepos(t)

	lot, rolls, err := repos.Rolls.CreateLotWithRolls("1001", testNow, []entities.RollSpec{
		{CustomerName: "Acme", ColorOrType: "Gold", Weight: d("12.5")},
		{CustomerName: "Acme", ColorOrType: "Silver", Weight: d("8.25")},
	})
	if err != nil {
		t.Fatalf("Failed to create lot: %v", err)
	}

	if lot.TotalRolls != 2 || !lot.TotalWeight.Equal(d("20.75")) {
		t.Errorf("Unexpected lot totals: %d rolls, %s", lot.TotalRolls, lot.TotalWeight)
	}
	for i, want := range []string{"1001-1", "1001-2"} {
		if rolls[i].RollID != want {
			t.Errorf("Roll %d: expected id %s, got %s", i, want, rolls[i].RollID)
		}
		if rolls[i].Status != entities.RollInStock {
			t.Errorf("Roll %s: expected in_stock, got %s", rolls[i].RollID, rolls[i].Status)
		}
	}

	stored, err := repos.Rolls.GetRollsByLot("1001")
	if err != nil {
		t.Fatalf("Failed to load rolls: %v", err)
	}
	if len(stored) != 2 {
		t.Errorf("Expected 2 stored rolls, got %d", len(stored))
	}

	_, _, err = repos.Rolls.CreateLotWithRolls("1001", testNow, []entities.RollSpec{{Weight: d("1")}})
	if !errors.Is(err, entities.ErrValidation) {
		t.Errorf("Expected duplicate lot to fail validation, got %v", err)
	}
}

func TestRollRepository_CreateLotRejectsBadInput(t *testing.T) {
	tests := []struct {
		name  string
		lot   string
		specs []entities.RollSpec
	}{
		{"empty_lot_number", "", []entities.RollSpec{{Weight: d("1")}}},
		{"suffixed_lot_number", "1001-A", []entities.RollSpec{{Weight: d("1")}}},
		{"alpha_lot_number", "legacy", []entities.RollSpec{{Weight: d("1")}}},
		{"zero_lot_number", "0", []entities.RollSpec{{Weight: d("1")}}},
		{"padded_lot_number", "01001", []entities.RollSpec{{Weight: d("1")}}},
		{"no_rolls", "1001", nil},
		{"zero_weight", "1001", []entities.RollSpec{{Weight: decimal.Zero}}},
		{"negative_weight", "1001", []entities.RollSpec{{Weight: d("-2")}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repos, _ := newTestRepos(t)
			_, _, err := repos.Rolls.CreateLotWithRolls(tt.lot, testNow, tt.specs)
			if !errors.Is(err, entities.ErrValidation) {
				t.Fatalf("Expected validation error, got %v", err)
			}
			lots, _ := repos.Rolls.GetAllLots()
			rolls, _ := repos.Rolls.GetAllRolls()
			if len(lots) != 0 || len(rolls) != 0 {
				t.Errorf("Expected nothing persisted, got %d lots and %d rolls", len(lots), len(rolls))
			}
		})
	}
}

func TestRollRepository_NextLotNumber(t *testing.T) {
	repos, _ := newTestRepos(t)

	first, err := repos.Rolls.NextLotNumber()
	if err != nil {
		t.Fatalf("Failed to get next lot number: %v", err)
	}
	if first != "1001" {
		t.Errorf("Expected 1001 on empty ledger, got %s", first)
	}

	for _, lot := range []string{"1001", "1004"} {
		if _, _, err := repos.Rolls.CreateLotWithRolls(lot, testNow, []entities.RollSpec{{Weight: d("1")}}); err != nil {
			t.Fatal(err)
		}
	}
	// hand-edited rows with other numbering are skipped
	err = repos.Rolls.lots.Mutate(func(lots []entities.Lot) ([]entities.Lot, error) {
		return append(lots, entities.Lot{LotNumber: "legacy", DateReceived: testNow, TotalRolls: 1, TotalWeight: d("1")}), nil
	})
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 2; i++ {
		next, err := repos.Rolls.NextLotNumber()
		if err != nil {
			t.Fatal(err)
		}
		if next != "1005" {
			t.Errorf("Expected 1005 without an intervening lot, got %s", next)
		}
	}
}

func TestRollRepository_DeleteLot(t *testing.T) {
	repos, _ := newTestRepos(t)
	for _, lot := range []string{"1001", "10011"} {
		if _, _, err := repos.Rolls.CreateLotWithRolls(lot, testNow, []entities.RollSpec{{Weight: d("1")}, {Weight: d("2")}}); err != nil {
			t.Fatal(err)
		}
	}

	if err := repos.Rolls.DeleteLot("1001"); err != nil {
		t.Fatalf("Failed to delete lot: %v", err)
	}

	if _, err := repos.Rolls.GetLot("1001"); !errors.Is(err, entities.ErrNotFound) {
		t.Errorf("Expected lot to be gone, got %v", err)
	}
	rolls, _ := repos.Rolls.GetAllRolls()
	if len(rolls) != 2 {
		t.Fatalf("Expected the other lot's 2 rolls to remain, got %d", len(rolls))
	}
	for _, r := range rolls {
		if r.LotNo != "10011" {
			t.Errorf("Unexpected surviving roll %s", r.RollID)
		}
	}

	if err := repos.Rolls.DeleteLot("1001"); !errors.Is(err, entities.ErrNotFound) {
		t.Errorf("Expected NotFound for missing lot, got %v", err)
	}
}

func TestRollRepository_SetStatus(t *testing.T) {
	repos, _ := newTestRepos(t)
	if _, _, err := repos.Rolls.CreateLotWithRolls("1001", testNow, []entities.RollSpec{{Weight: d("1")}}); err != nil {
		t.Fatal(err)
	}

	roll, err := repos.Rolls.SetStatus("1001-1", entities.RollIssuedToMachine)
	if err != nil {
		t.Fatalf("Failed to set status: %v", err)
	}
	if roll.Status != entities.RollIssuedToMachine {
		t.Errorf("Expected issued_to_machine, got %s", roll.Status)
	}

	issued, _ := repos.Rolls.GetRollsByStatus(entities.RollIssuedToMachine)
	if len(issued) != 1 {
		t.Errorf("Expected 1 issued roll, got %d", len(issued))
	}

	if _, err := repos.Rolls.SetStatus("9999-1", entities.RollCompleted); !errors.Is(err, entities.ErrNotFound) {
		t.Errorf("Expected NotFound, got %v", err)
	}
}

func intakeBobbins(t *testing.T, repos *Repositories, quantities ...int64) {
	t.Helper()
	var entries []entities.InboundBobbin
	for _, q := range quantities {
		entries = append(entries, entities.InboundBobbin{LotNo: "1001", BobbinType: "Small", Quantity: q})
	}
	if _, err := repos.Bobbins.Intake(entries); err != nil {
		t.Fatalf("Failed to intake bobbins: %v", err)
	}
}

func TestBobbinRepository_Intake(t *testing.T) {
	repos, _ := newTestRepos(t)
	intakeBobbins(t, repos, 10, 5)

	all, err := repos.Bobbins.GetAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(all))
	}
	if all[0].InboundBobbinID != "IB-0001" || all[1].InboundBobbinID != "IB-0002" {
		t.Errorf("Unexpected ids %s, %s", all[0].InboundBobbinID, all[1].InboundBobbinID)
	}
	if !all[0].DateReceived.Equal(entities.DateOf(testNow)) {
		t.Errorf("Expected default date %s, got %s", entities.DateOf(testNow), all[0].DateReceived)
	}

	if _, err := repos.Bobbins.Intake([]entities.InboundBobbin{{BobbinType: "Small", Quantity: 0}}); !errors.Is(err, entities.ErrValidation) {
		t.Errorf("Expected zero quantity to be rejected, got %v", err)
	}
}

func TestBobbinRepository_Deduct(t *testing.T) {
	tests := []struct {
		name         string
		stock        []int64
		deduct       int64
		wantQuantity []int64
		wantStatus   []entities.BobbinStatus
		wantConsumed []entities.BobbinConsumption
	}{
		{
			name:         "partial_first_entry",
			stock:        []int64{10, 5},
			deduct:       4,
			wantQuantity: []int64{6, 5},
			wantStatus:   []entities.BobbinStatus{entities.BobbinInStock, entities.BobbinInStock},
			wantConsumed: []entities.BobbinConsumption{{InboundBobbinID: "IB-0001", Quantity: 4}},
		},
		{
			name:         "spans_entries",
			stock:        []int64{10, 5},
			deduct:       12,
			wantQuantity: []int64{0, 3},
			wantStatus:   []entities.BobbinStatus{entities.BobbinInUse, entities.BobbinInStock},
			wantConsumed: []entities.BobbinConsumption{
				{InboundBobbinID: "IB-0001", Quantity: 10},
				{InboundBobbinID: "IB-0002", Quantity: 2},
			},
		},
		{
			name:         "exhausts_all",
			stock:        []int64{10, 5},
			deduct:       15,
			wantQuantity: []int64{0, 0},
			wantStatus:   []entities.BobbinStatus{entities.BobbinInUse, entities.BobbinInUse},
			wantConsumed: []entities.BobbinConsumption{
				{InboundBobbinID: "IB-0001", Quantity: 10},
				{InboundBobbinID: "IB-0002", Quantity: 5},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repos, _ := newTestRepos(t)
			intakeBobbins(t, repos, tt.stock...)

			consumed, err := repos.Bobbins.Deduct("Small", tt.deduct)
			if err != nil {
				t.Fatalf("Failed to deduct: %v", err)
			}
			if len(consumed) != len(tt.wantConsumed) {
				t.Fatalf("Expected %d consumptions, got %+v", len(tt.wantConsumed), consumed)
			}
			for i := range consumed {
				if consumed[i] != tt.wantConsumed[i] {
					t.Errorf("Consumption %d: expected %+v, got %+v", i, tt.wantConsumed[i], consumed[i])
				}
			}

			all, _ := repos.Bobbins.GetAll()
			var before, after int64
			for i, b := range all {
				before += tt.stock[i]
				after += b.Quantity
				if b.Quantity != tt.wantQuantity[i] || b.Status != tt.wantStatus[i] {
					t.Errorf("Entry %s: expected %d/%s, got %d/%s",
						b.InboundBobbinID, tt.wantQuantity[i], tt.wantStatus[i], b.Quantity, b.Status)
				}
			}
			if before-after != tt.deduct {
				t.Errorf("Expected stock to drop by exactly %d, dropped by %d", tt.deduct, before-after)
			}
		})
	}
}

func TestBobbinRepository_DeductInsufficientLeavesFileUnchanged(t *testing.T) {
	repos, dir := newTestRepos(t)
	intakeBobbins(t, repos, 3, 4)
	path := filepath.Join(dir, InboundBobbinsTable)
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	_, err = repos.Bobbins.Deduct("Small", 8)
	var stockErr *entities.InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("Expected InsufficientStockError, got %v", err)
	}
	if stockErr.Requested != 8 || stockErr.Available != 7 {
		t.Errorf("Unexpected error figures: %+v", stockErr)
	}

	after, _ := os.ReadFile(path)
	if string(before) != string(after) {
		t.Errorf("Expected inventory file unchanged.\nbefore: %q\nafter:  %q", before, after)
	}
}

func TestBobbinRepository_RestoreAndDeleteByLot(t *testing.T) {
	repos, _ := newTestRepos(t)
	intakeBobbins(t, repos, 10, 5)
	if _, err := repos.Bobbins.Intake([]entities.InboundBobbin{{LotNo: "1002", BobbinType: "Large", Quantity: 2}}); err != nil {
		t.Fatal(err)
	}

	consumed, err := repos.Bobbins.Deduct("small", 12)
	if err != nil {
		t.Fatalf("Failed to deduct with case-insensitive type: %v", err)
	}
	if err := repos.Bobbins.Restore(consumed); err != nil {
		t.Fatalf("Failed to restore: %v", err)
	}
	if qty, _ := repos.Bobbins.AvailableQuantity("Small"); qty != 15 {
		t.Errorf("Expected 15 after restore, got %d", qty)
	}

	removed, err := repos.Bobbins.DeleteByLot("1001")
	if err != nil {
		t.Fatal(err)
	}
	if removed != 2 {
		t.Errorf("Expected 2 entries removed, got %d", removed)
	}
	all, _ := repos.Bobbins.GetAll()
	if len(all) != 1 || all[0].LotNo != "1002" {
		t.Errorf("Expected only lot 1002 to remain, got %+v", all)
	}
}

func TestMachineAssignmentRepository_AssignAndUpdate(t *testing.T) {
	repos, _ := newTestRepos(t)

	details := entities.IssueDetails{Operator: "Ravi", MachineNumber: "M1", Cut: "0.5mm"}
	a, err := repos.Assignments.Assign("1001-1", details, d("12.5"))
	if err != nil {
		t.Fatalf("Failed to assign: %v", err)
	}
	if !a.WeightReceivedSoFar.IsZero() || a.WastageMarked {
		t.Errorf("Expected a fresh assignment, got %+v", a)
	}
	if !a.IssuedDate.Equal(entities.DateOf(testNow)) {
		t.Errorf("Expected issued date to default to today, got %s", a.IssuedDate)
	}

	received := d("5")
	updated, err := repos.Assignments.Update("1001-1", entities.AssignmentUpdate{WeightReceivedSoFar: &received})
	if err != nil {
		t.Fatalf("Failed to update: %v", err)
	}
	if !updated.Pending().Equal(d("7.5")) || updated.Operator != "Ravi" {
		t.Errorf("Unexpected assignment after update: %+v", updated)
	}

	// Re-assigning the same roll replaces rather than duplicates
	if _, err := repos.Assignments.Assign("1001-1", details, d("12.5")); err != nil {
		t.Fatal(err)
	}
	all, _ := repos.Assignments.GetAll()
	if len(all) != 1 {
		t.Errorf("Expected one record per roll, got %d", len(all))
	}

	if _, err := repos.Assignments.Update("9999-1", entities.AssignmentUpdate{}); !errors.Is(err, entities.ErrNotFound) {
		t.Errorf("Expected NotFound, got %v", err)
	}

	if err := repos.Assignments.Remove("1001-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := repos.Assignments.Get("1001-1"); !errors.Is(err, entities.ErrNotFound) {
		t.Errorf("Expected assignment to be removed, got %v", err)
	}
}

func TestMachineAssignmentRepository_AssignValidatesBobbins(t *testing.T) {
	repos, _ := newTestRepos(t)
	_, err := repos.Assignments.Assign("1001-1", entities.IssueDetails{BobbinQuantity: 3}, d("1"))
	if !errors.Is(err, entities.ErrValidation) {
		t.Errorf("Expected missing bobbin type to be rejected, got %v", err)
	}
}

func TestBoxRepository_CreateMany(t *testing.T) {
	repos, dir := newTestRepos(t)
	tare := d("0.5")

	boxes, err := repos.Boxes.CreateMany([]entities.BoxSpec{
		{RollID: "1001-1", GrossWeight: d("5.5"), TareWeight: &tare, BobbinCount: 10, BobbinType: "Small"},
		{RollID: "1001-1", GrossWeight: d("3")},
	})
	if err != nil {
		t.Fatalf("Failed to create boxes: %v", err)
	}
	if boxes[0].BoxID != "BOX-0001" || boxes[1].BoxID != "BOX-0002" {
		t.Errorf("Unexpected ids %s, %s", boxes[0].BoxID, boxes[1].BoxID)
	}
	if !boxes[0].NetWeight.Equal(d("5")) {
		t.Errorf("Expected derived net 5, got %s", boxes[0].NetWeight)
	}
	if boxes[1].Status != entities.BoxReadyToDispatch {
		t.Errorf("Expected ready_to_dispatch, got %s", boxes[1].Status)
	}

	// A fresh store continues numbering from the file
	reopened := New(csv.NewStore(dir, t.Logf), Options{Now: func() time.Time { return testNow }})
	box, err := reopened.Boxes.Create(entities.BoxSpec{RollID: "1001-2", GrossWeight: d("1")})
	if err != nil {
		t.Fatal(err)
	}
	if box.BoxID != "BOX-0003" {
		t.Errorf("Expected BOX-0003, got %s", box.BoxID)
	}

	byRoll, _ := reopened.Boxes.GetByRoll("1001-1")
	if len(byRoll) != 2 {
		t.Errorf("Expected 2 boxes for roll 1001-1, got %d", len(byRoll))
	}

	bad := d("9")
	if _, err := repos.Boxes.Create(entities.BoxSpec{GrossWeight: d("1"), TareWeight: &bad}); !errors.Is(err, entities.ErrValidation) {
		t.Errorf("Expected negative net weight to be rejected, got %v", err)
	}
}

func TestBoxRepository_CreateManyMixedIDs(t *testing.T) {
	tests := []struct {
		name    string
		ids     []string
		want    []string
		wantErr bool
	}{
		{"supplied_first", []string{"BOX-0001", ""}, []string{"BOX-0001", "BOX-0002"}, false},
		{"supplied_last", []string{"", "BOX-0001"}, []string{"BOX-0002", "BOX-0001"}, false},
		{"supplied_ahead", []string{"", "BOX-0002", ""}, []string{"BOX-0001", "BOX-0002", "BOX-0003"}, false},
		{"repeated_in_batch", []string{"BOX-0005", "BOX-0005"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repos, _ := newTestRepos(t)
			specs := make([]entities.BoxSpec, len(tt.ids))
			for i, id := range tt.ids {
				specs[i] = entities.BoxSpec{BoxID: id, RollID: "1001-1", GrossWeight: d("1")}
			}

			boxes, err := repos.Boxes.CreateMany(specs)
			if tt.wantErr {
				if !errors.Is(err, entities.ErrValidation) {
					t.Fatalf("Expected validation error, got %v", err)
				}
				if all, _ := repos.Boxes.GetAll(); len(all) != 0 {
					t.Errorf("Expected nothing persisted, got %d boxes", len(all))
				}
				return
			}
			if err != nil {
				t.Fatalf("Failed to create boxes: %v", err)
			}
			for i, want := range tt.want {
				if boxes[i].BoxID != want {
					t.Errorf("Box %d: expected %s, got %s", i, want, boxes[i].BoxID)
				}
			}

			next, err := repos.Boxes.Create(entities.BoxSpec{RollID: "1001-1", GrossWeight: d("1")})
			if err != nil {
				t.Fatal(err)
			}
			all, _ := repos.Boxes.GetAll()
			seen := make(map[string]bool, len(all))
			for _, b := range all {
				if seen[b.BoxID] {
					t.Errorf("Duplicate box id %s after creating %s", b.BoxID, next.BoxID)
				}
				seen[b.BoxID] = true
			}
		})
	}
}

func TestBobbinRepository_IntakeMixedIDs(t *testing.T) {
	repos, _ := newTestRepos(t)

	created, err := repos.Bobbins.Intake([]entities.InboundBobbin{
		{InboundBobbinID: "IB-0001", BobbinType: "Small", Quantity: 4},
		{BobbinType: "Small", Quantity: 6},
	})
	if err != nil {
		t.Fatalf("Failed to intake bobbins: %v", err)
	}
	if created[0].InboundBobbinID != "IB-0001" || created[1].InboundBobbinID != "IB-0002" {
		t.Errorf("Unexpected ids %s, %s", created[0].InboundBobbinID, created[1].InboundBobbinID)
	}

	created, err = repos.Bobbins.Intake([]entities.InboundBobbin{
		{BobbinType: "Small", Quantity: 1},
		{InboundBobbinID: "IB-0003", BobbinType: "Small", Quantity: 1},
	})
	if err != nil {
		t.Fatalf("Failed to intake bobbins: %v", err)
	}
	if created[0].InboundBobbinID != "IB-0004" || created[1].InboundBobbinID != "IB-0003" {
		t.Errorf("Unexpected ids %s, %s", created[0].InboundBobbinID, created[1].InboundBobbinID)
	}

	_, err = repos.Bobbins.Intake([]entities.InboundBobbin{
		{BobbinType: "Small", Quantity: 1},
		{InboundBobbinID: "IB-0002", BobbinType: "Small", Quantity: 1},
	})
	if !errors.Is(err, entities.ErrValidation) {
		t.Errorf("Expected existing id to be rejected, got %v", err)
	}

	all, _ := repos.Bobbins.GetAll()
	if len(all) != 4 {
		t.Errorf("Expected 4 entries, got %d", len(all))
	}
}

func TestDispatchRepository_Queries(t *testing.T) {
	repos, _ := newTestRepos(t)

	specs := []entities.DispatchSpec{
		{DispatchDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), CustomerName: "Acme Metals", BoxIDs: []string{"BOX-0001"}, TotalWeight: d("5")},
		{DispatchDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), CustomerName: "Zenith", BoxIDs: []string{"BOX-0002", "BOX-0003"}, TotalWeight: d("9")},
		{CustomerName: "acme metals", BoxIDs: []string{"BOX-0004"}},
	}
	for _, spec := range specs {
		if _, err := repos.Dispatches.Create(spec); err != nil {
			t.Fatalf("Failed to create dispatch: %v", err)
		}
	}

	all, _ := repos.Dispatches.GetAll()
	if all[2].DispatchID != "DISP-0003" || !all[2].DispatchDate.Equal(entities.DateOf(testNow)) {
		t.Errorf("Unexpected third dispatch: %+v", all[2])
	}

	acme, _ := repos.Dispatches.GetByCustomer("ACME")
	if len(acme) != 2 {
		t.Errorf("Expected 2 dispatches for acme, got %d", len(acme))
	}

	ranged, _ := repos.Dispatches.GetByDateRange(
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	)
	if len(ranged) != 2 {
		t.Errorf("Expected inclusive range to hold 2 dispatches, got %d", len(ranged))
	}

	found, err := repos.Dispatches.FindByBox("BOX-0003")
	if err != nil || found.DispatchID != "DISP-0002" {
		t.Errorf("Expected DISP-0002 for BOX-0003, got %+v, %v", found, err)
	}
	if _, err := repos.Dispatches.FindByBox("BOX-9999"); !errors.Is(err, entities.ErrNotFound) {
		t.Errorf("Expected NotFound, got %v", err)
	}
}

func TestDispatchRepository_ReturnsCopies(t *testing.T) {
	repos, _ := newTestRepos(t)
	created, err := repos.Dispatches.Create(entities.DispatchSpec{CustomerName: "Acme", BoxIDs: []string{"BOX-0001", "BOX-0002"}})
	if err != nil {
		t.Fatalf("Failed to create dispatch: %v", err)
	}

	created.BoxIDs[1] = "BOX-7777"
	got, err := repos.Dispatches.Get(created.DispatchID)
	if err != nil {
		t.Fatal(err)
	}
	got.BoxIDs[0] = "BOX-9999"
	all, _ := repos.Dispatches.GetAll()
	all[0].BoxIDs[1] = "BOX-8888"

	again, err := repos.Dispatches.Get(created.DispatchID)
	if err != nil {
		t.Fatal(err)
	}
	if again.BoxIDs[0] != "BOX-0001" || again.BoxIDs[1] != "BOX-0002" {
		t.Errorf("Expected stored box ids to be unaffected, got %v", again.BoxIDs)
	}
	if _, err := repos.Dispatches.FindByBox("BOX-9999"); !errors.Is(err, entities.ErrNotFound) {
		t.Errorf("Expected NotFound for an id only set on a returned copy, got %v", err)
	}
}

func TestReferenceRepository_AddAndFind(t *testing.T) {
	repos, _ := newTestRepos(t)

	boxType, err := repos.Reference.AddBoxType(entities.BoxType{TypeName: "Carton", TareWeight: d("0.75")})
	if err != nil {
		t.Fatalf("Failed to add box type: %v", err)
	}
	if boxType.BoxTypeID != "BX-0001" {
		t.Errorf("Expected BX-0001, got %s", boxType.BoxTypeID)
	}

	for _, key := range []string{"BX-0001", "carton"} {
		found, err := repos.Reference.FindBoxType(key)
		if err != nil {
			t.Errorf("FindBoxType(%q): %v", key, err)
			continue
		}
		if !found.TareWeight.Equal(d("0.75")) {
			t.Errorf("Unexpected tare %s", found.TareWeight)
		}
	}

	if _, err := repos.Reference.AddBoxType(entities.BoxType{TypeName: "CARTON"}); !errors.Is(err, entities.ErrValidation) {
		t.Errorf("Expected duplicate type name to be rejected, got %v", err)
	}

	machine, err := repos.Reference.AddMachine(entities.Machine{MachineNumber: "7"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := repos.Reference.FindMachine(machine.MachineID); err != nil {
		t.Errorf("Expected machine %s to be found: %v", machine.MachineID, err)
	}

	if _, err := repos.Reference.AddCustomer(entities.Customer{CustomerName: "Acme"}); err != nil {
		t.Fatal(err)
	}
	if _, err := repos.Reference.FindCustomer("nobody"); !errors.Is(err, entities.ErrNotFound) {
		t.Errorf("Expected NotFound, got %v", err)
	}
}

func TestNew_RegistersAllTables(t *testing.T) {
	repos, _ := newTestRepos(t)
	want := []string{
		BobbinTypesTable, BoxTypesTable, BoxesTable, CustomersTable, DispatchesTable,
		GoodsOnMachineTable, InboundBobbinsTable, LotsTable, MachinesTable, RollsTable,
	}
	got := repos.Store.Tables()
	if len(got) != len(want) {
		t.Fatalf("Expected %d tables, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Table %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}
