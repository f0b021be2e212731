package domain

// CashCount is a denomination breakdown recorded at pickup. Counts are note or
// coin quantities per bucket, not amounts.
type CashCount struct {
	Ones         int
	Fives        int
	Tens         int
	Twenties     int
	Forties      int
	Fifties      int
	Hundreds     int
	TwoHundreds  int
	FiveHundreds int
	Thousands    int
	SealNumber   string
}

// denomination values, in bucket order
var denominations = [...]int64{1, 5, 10, 20, 40, 50, 100, 200, 500, 1000}

func (c *CashCount) counts() [10]int {
	return [10]int{
		c.Ones, c.Fives, c.Tens, c.Twenties, c.Forties,
		c.Fifties, c.Hundreds, c.TwoHundreds, c.FiveHundreds, c.Thousands,
	}
}

// Valid reports whether every denomination count is non-negative.
func (c *CashCount) Valid() bool {
	for _, n := range c.counts() {
		if n < 0 {
			return false
		}
	}
	return true
}

// TotalAmount derives the total from the denomination counts. The stored total
// is always recomputed here and never trusted from a caller.
func (c *CashCount) TotalAmount() int64 {
	var total int64
	for i, n := range c.counts() {
		total += int64(n) * denominations[i]
	}
	return total
}
