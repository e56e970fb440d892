package dashboard

import "finboard/internal/core"

const (
	flowSourceName  = "Inflow"
	flowSavingsName = "Savings"
)

// FlowLink is a directed edge between two node indices of a FlowGraph.
type FlowLink struct {
	Source int        `json:"source"`
	Target int        `json:"target"`
	Value  core.Money `json:"value"`
}

// FlowGraph models money flowing from a single Inflow source into outflow
// categories and, when income exceeds total outflow, an implied Savings
// sink. Node order is deterministic: Inflow first, then outflow categories
// in first-seen order, then Savings when present.
type FlowGraph struct {
	Nodes []string   `json:"nodes"`
	Links []FlowLink `json:"links"`
}

// Empty reports whether the graph has no links, in which case the display
// layer renders a "no data" state instead of a layout.
func (g FlowGraph) Empty() bool {
	return len(g.Links) == 0
}

// BuildFlowGraph aggregates every non-income transaction into a per-category
// outflow and wires each category to the Inflow node. A Savings node is
// appended only when income strictly exceeds the total outflow, carrying the
// difference.
func BuildFlowGraph(txns []core.Transaction) FlowGraph {
	var incomeTotal, totalOutflow int64
	order := make([]string, 0)
	sums := make(map[string]int64)
	for _, tx := range txns {
		if tx.Type == core.TxIncome {
			incomeTotal += tx.Amount.Cents
			continue
		}
		if _, ok := sums[tx.Category]; !ok {
			order = append(order, tx.Category)
		}
		sums[tx.Category] += tx.Amount.Cents
		totalOutflow += tx.Amount.Cents
	}

	g := FlowGraph{Nodes: []string{flowSourceName}}
	for _, category := range order {
		g.Nodes = append(g.Nodes, category)
		g.Links = append(g.Links, FlowLink{
			Source: 0,
			Target: len(g.Nodes) - 1,
			Value:  core.Money{Cents: sums[category]},
		})
	}
	if incomeTotal > totalOutflow {
		g.Nodes = append(g.Nodes, flowSavingsName)
		g.Links = append(g.Links, FlowLink{
			Source: 0,
			Target: len(g.Nodes) - 1,
			Value:  core.Money{Cents: incomeTotal - totalOutflow},
		})
	}
	return g
}
