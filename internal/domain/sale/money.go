package sale

import "github.com/shopspring/decimal"

// Scale é o número de casas decimais dos valores monetários
const Scale = 2

// Discount calcula subtotal * percentual / 100 arredondado para 2 casas.
// decimal.Round arredonda a metade para longe do zero, o que para valores
// não negativos equivale a half-up.
func Discount(subtotal, percentage decimal.Decimal) decimal.Decimal {
	if percentage.IsZero() {
		return decimal.Zero
	}
	return subtotal.Mul(percentage).Shift(-2).Round(Scale)
}

// SumSubtotals soma os subtotais dos itens
func SumSubtotals(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal)
	}
	return total
}

// Format formata um valor com 2 casas decimais
func Format(v decimal.Decimal) string {
	return v.StringFixed(Scale)
}
