package workflow

import (
	"context"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/KJ21-ENG/natraj-metallic/pkg/application/dto"
	"github.com/KJ21-ENG/natraj-metallic/pkg/domain/entities"
)

// StockSummary aggregates rolls by status, available bobbins by type, work still
// on machines, packed boxes and dispatches.
func (s *WorkflowService) StockSummary(ctx context.Context) (*dto.StockSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	summary := &dto.StockSummary{
		GeneratedAt:      s.now(),
		PendingOnMachine: decimal.Zero,
		ReadyWeight:      decimal.Zero,
		DispatchedWeight: decimal.Zero,
	}

	rolls, err := s.ledgers.Rolls.GetAllRolls()
	if err != nil {
		return nil, err
	}
	byStatus := map[entities.RollStatus]*dto.RollStock{}
	for _, status := range []entities.RollStatus{entities.RollInStock, entities.RollIssuedToMachine, entities.RollCompleted} {
		summary.Rolls = append(summary.Rolls, dto.RollStock{Status: status, Weight: decimal.Zero})
	}
	for i := range summary.Rolls {
		byStatus[summary.Rolls[i].Status] = &summary.Rolls[i]
	}
	issued := make(map[string]bool)
	for _, roll := range rolls {
		if stock, ok := byStatus[roll.Status]; ok {
			stock.Count++
			stock.Weight = stock.Weight.Add(roll.Weight)
		}
		if roll.Status == entities.RollIssuedToMachine {
			issued[roll.RollID] = true
		}
	}

	assignments, err := s.ledgers.Assignments.GetAll()
	if err != nil {
		return nil, err
	}
	for _, a := range assignments {
		if !issued[a.RollID] {
			continue
		}
		summary.OnMachine++
		if pending := a.Pending(); pending.IsPositive() {
			summary.PendingOnMachine = summary.PendingOnMachine.Add(pending)
		}
	}

	bobbins, err := s.ledgers.Bobbins.GetAll()
	if err != nil {
		return nil, err
	}
	byType := map[string]*dto.BobbinStock{}
	for _, b := range bobbins {
		if b.Status != entities.BobbinInStock || b.Quantity <= 0 {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(b.BobbinType))
		stock, ok := byType[key]
		if !ok {
			stock = &dto.BobbinStock{BobbinType: strings.TrimSpace(b.BobbinType)}
			byType[key] = stock
		}
		stock.Quantity += b.Quantity
		stock.Entries++
	}
	for _, stock := range byType {
		summary.Bobbins = append(summary.Bobbins, *stock)
	}
	sort.Slice(summary.Bobbins, func(i, j int) bool {
		return summary.Bobbins[i].BobbinType < summary.Bobbins[j].BobbinType
	})

	boxes, err := s.ledgers.Boxes.GetAll()
	if err != nil {
		return nil, err
	}
	for _, b := range boxes {
		switch b.Status {
		case entities.BoxReadyToDispatch:
			summary.ReadyBoxes++
			summary.ReadyWeight = summary.ReadyWeight.Add(b.NetWeight)
		case entities.BoxDispatched:
			summary.DispatchedBoxes++
		}
	}

	dispatches, err := s.ledgers.Dispatches.GetAll()
	if err != nil {
		return nil, err
	}
	summary.Dispatches = len(dispatches)
	for _, d := range dispatches {
		summary.DispatchedWeight = summary.DispatchedWeight.Add(d.TotalWeight)
	}

	return summary, nil
}
