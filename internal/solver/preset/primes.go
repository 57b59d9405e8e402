package preset

// hashOffset skips the small primes so that a prime weight never equals a
// plausible material quantity.
const hashOffset = 20

// firstPrimes returns the first n primes, starting at 2.
func firstPrimes(n int) []int64 {
	if n <= 0 {
		return nil
	}
	// Sieve bound large enough for the first n primes (n < 6 handled by the floor).
	limit := 16
	for approxPrimeCount(limit) < n {
		limit *= 2
	}
	composite := make([]bool, limit+1)
	out := make([]int64, 0, n)
	for i := 2; i <= limit && len(out) < n; i++ {
		if composite[i] {
			continue
		}
		out = append(out, int64(i))
		for j := i * i; j <= limit; j += i {
			composite[j] = true
		}
	}
	return out
}

// approxPrimeCount is a lower bound on pi(x) for x >= 17.
func approxPrimeCount(x int) int {
	n := 0
	for v := x; v > 1; v >>= 1 {
		n++
	}
	return x / (n + 1)
}
