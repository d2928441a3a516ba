package search

// Search runs a binary search for target over a sorted ascending array and
// reports the outcome. An empty array yields not-found with nil min/max.
// Values outside [arr[0], arr[len-1]] short-circuit to not-found without
// scanning. When the target occurs more than once, the returned index is
// whichever occurrence the midpoint comparisons land on.
func Search(arr []int, target int) Outcome {
	out := Outcome{
		Found:     false,
		Index:     -1,
		Value:     target,
		ArraySize: len(arr),
	}
	if len(arr) == 0 {
		return out
	}

	minV := arr[0]
	maxV := arr[len(arr)-1]
	out.ArrayMin = &minV
	out.ArrayMax = &maxV

	// Bounds pre-check: the loop below would reach the same conclusion,
	// this just skips it
	if target < minV || target > maxV {
		return out
	}

	lo, hi := 0, len(arr)-1
	for lo <= hi {
		mid := lo + (hi-lo)/2
		switch {
		case arr[mid] == target:
			out.Found = true
			out.Index = mid
			return out
		case arr[mid] < target:
			lo = mid + 1
		default:
			hi = mid - 1
		}
	}
	return out
}
