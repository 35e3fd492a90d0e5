package inventory

import "github.com/shopspring/decimal"

// WeightedAverageCost aplica el costo promedio ponderado tras una entrada:
// NuevoCosto = ((Stock * Costo) + (CantEntrada * PrecioEntrada)) / (Stock + CantEntrada)
// Si el stock resultante no es positivo, el costo de la entrada pasa a ser el vigente.
func WeightedAverageCost(stock, cost, inQty, inPrice decimal.Decimal) decimal.Decimal {
	sum := stock.Add(inQty)
	if sum.LessThanOrEqual(decimal.Zero) {
		return inPrice
	}
	if stock.LessThanOrEqual(decimal.Zero) {
		return inPrice
	}
	num := stock.Mul(cost).Add(inQty.Mul(inPrice))
	return num.Div(sum)
}
