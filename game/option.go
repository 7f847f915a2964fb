package game

// strikeDistanceTable maps duration (seconds) -> multiplier -> strike
// distance as a percent of current price. These are fixed protocol
// constants, not derived.
var strikeDistanceTable = map[int]map[int]float64{
	1:   {2: 0.020, 5: 0.694, 10: 1.052, 25: 1.422, 100: 1.880},
	5:   {2: 0.059, 5: 2.338, 10: 3.535, 25: 4.791, 100: 6.351},
	30:  {2: 0.213, 5: 6.446, 10: 9.705, 25: 13.243, 100: 17.644},
	60:  {2: 0.253, 5: 9.191, 10: 13.828, 25: 18.823, 100: 25.346},
	300: {2: 0.587, 5: 20.263, 10: 30.162, 25: 41.016, 100: 59.495},
}

// StrikePrice computes an option's strike from the current price, its
// direction, multiplier, and duration, per the table above. Calls strike
// above the current price; puts strike below it.
func StrikePrice(currentPrice float64, dir OptionDirection, multiplier, durationSeconds int) float64 {
	distance := strikeDistanceTable[durationSeconds][multiplier]
	if dir == Call {
		return currentPrice * (1 + distance/100)
	}
	return currentPrice * (1 - distance/100)
}

// IsInTheMoney reports whether an option would pay out at settlementPrice.
func IsInTheMoney(dir OptionDirection, strike, settlementPrice float64) bool {
	if dir == Call {
		return settlementPrice >= strike
	}
	return settlementPrice <= strike
}
