package inventory

import "github.com/shopspring/decimal"

// CostCalculator implementa el costo promedio ponderado por gramo (servicio de dominio).
//
// Si existe un promedio previo y el stock previo supera la cantidad recibida:
//
//	NuevoCosto = (StockPrevio × CostoPrevio + CantEntrada × CostoEntrada) / (StockPrevio + CantEntrada)
//
// En cualquier otro caso (sin promedio previo, o la entrada es >= al stock previo) el costo de la
// entrada reemplaza al promedio.
func CostCalculator(stockPrevio decimal.Decimal, costoPrevio *decimal.Decimal, cantEntrada, costoEntrada decimal.Decimal) decimal.Decimal {
	if costoPrevio == nil || !stockPrevio.GreaterThan(cantEntrada) {
		return costoEntrada
	}
	sum := stockPrevio.Add(cantEntrada)
	num := stockPrevio.Mul(*costoPrevio).Add(cantEntrada.Mul(costoEntrada))
	return num.Div(sum)
}
