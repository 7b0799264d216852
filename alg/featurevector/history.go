package featurevector

// HistoryValue is a weight that lazily accumulates its own sum over
// generations, so averaging costs nothing for weights that never change.
type HistoryValue struct {
	Generation   int
	Value, Total float64
}

func (h *HistoryValue) IntegratedValue(generation int) float64 {
	return h.Total + float64(generation-h.Generation)*h.Value
}

func (h *HistoryValue) Add(generation int, amount float64) {
	if h.Generation < generation {
		h.Total += float64(generation-h.Generation) * h.Value
		h.Generation = generation
	}
	h.Value += amount
}
