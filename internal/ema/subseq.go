package ema

// Subsequences enumerates every order-preserving selection of at least
// minLen elements from seq. Elements need not be contiguous. A sequence
// of n elements yields 2^n - 1 subsequences at minLen 1, so callers are
// expected to keep blocks short.
//
// Emission order is by increasing length, then index-combination order;
// ranking downstream sorts independently, so the order is not a contract.
func Subsequences(seq Seq, minLen int) []Seq {
	n := len(seq)
	if minLen < 1 {
		minLen = 1
	}
	if n == 0 || minLen > n {
		return nil
	}

	var out []Seq
	for length := minLen; length <= n; length++ {
		idx := make([]int, length)
		for i := range idx {
			idx[i] = i
		}
		for {
			sub := make(Seq, length)
			for i, j := range idx {
				sub[i] = seq[j]
			}
			out = append(out, sub)

			// Advance to the next increasing index combination.
			i := length - 1
			for i >= 0 && idx[i] == n-length+i {
				i--
			}
			if i < 0 {
				break
			}
			idx[i]++
			for j := i + 1; j < length; j++ {
				idx[j] = idx[j-1] + 1
			}
		}
	}
	return out
}
