package simulation

import (
	"github.com/greencart-logistics/internal/constants"

	"github.com/shopspring/decimal"
)

var (
	latePenalty   = decimal.NewFromInt(constants.SimulationLatePenalty)
	bonusRate     = decimal.RequireFromString(constants.SimulationBonusRate)
	fatigueFactor = decimal.RequireFromString(constants.SimulationFatigueFactor)
)

// OrderOutcome 单笔订单的规则计算结果（未舍入）
type OrderOutcome struct {
	Profit   decimal.Decimal
	Penalty  decimal.Decimal
	Bonus    decimal.Decimal
	FuelCost decimal.Decimal
}

// EvaluateOrder 按固定顺序应用公司规则
//
// 1. 迟到罚金：超出基准时长 10 分钟以上扣 50
// 2. 司机疲劳：最近一天超时工作使燃油因子降为 0.7（只作用于燃油）
// 3. 高价值奖励：金额 > 1000 且准时加 10%
// 4. 燃油成本：5/km，High 路线加收 2/km，乘疲劳因子
// 5. 订单利润：金额 + 奖励 − 罚金 − 燃油
func EvaluateOrder(order Order, driver Driver) OrderOutcome {
	outcome := OrderOutcome{
		Profit:   decimal.Zero,
		Penalty:  decimal.Zero,
		Bonus:    decimal.Zero,
		FuelCost: decimal.Zero,
	}

	if order.Late {
		outcome.Penalty = latePenalty
	}

	factor := decimal.NewFromInt(1)
	if driver.Overworked {
		factor = fatigueFactor
	}

	if order.HighValue && !order.Late {
		outcome.Bonus = order.Value.Mul(bonusRate)
	}

	outcome.FuelCost = order.Route.BaseFuelCost.Mul(factor)

	outcome.Profit = order.Value.
		Add(outcome.Bonus).
		Sub(outcome.Penalty).
		Sub(outcome.FuelCost)

	return outcome
}
